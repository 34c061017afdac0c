package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/minaorangina/beggar/config"
	"github.com/minaorangina/beggar/display"
	"github.com/minaorangina/beggar/engine"
	"github.com/minaorangina/beggar/game"
	"github.com/minaorangina/beggar/results"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	numPlayers := flag.Int("players", cfg.DefaultPlayers, "number of players")
	seed := flag.Int64("seed", 0, "shuffle seed (0 picks one from the clock)")
	auto := flag.Bool("auto", false, "play the whole game without waiting for Enter")
	record := flag.Bool("record", false, "record the result in the configured ledger")
	noColour := flag.Bool("no-colour", false, "disable coloured output")
	flag.Parse()

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *noColour {
		pterm.DisableColor()
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	g, err := game.NewGame(*numPlayers, game.GameOpts{Rand: rand.New(rand.NewSource(*seed))})
	if err != nil {
		logger.Fatal("could not deal a new game", zap.Error(err))
	}

	opts := engine.GameEngineOpts{
		GameID:   engine.NewID(),
		Game:     g,
		MaxTicks: cfg.MaxTicks,
		Logger:   logger,
	}
	if *record {
		ledger, err := results.NewLedger(cfg.LedgerMode, cfg.SQLitePath, cfg.PostgresDSN)
		if err != nil {
			logger.Fatal("could not open results ledger", zap.Error(err))
		}
		defer ledger.Close()
		opts.Recorder = ledger
	}

	ge, err := engine.NewGameEngine(opts)
	if err != nil {
		logger.Fatal("could not create game engine", zap.Error(err))
	}
	logger.Debug("dealt", zap.Int64("seed", *seed))

	view := display.NewTableView(os.Stdout, g, !*noColour)
	view.Welcome()
	view.Render()

	if err := play(ge, view, *auto); err != nil {
		logger.Error("game stopped", zap.String("game_id", ge.ID()), zap.Error(err))
	}
}

// play advances ge until it finishes, rendering the table after each tick.
// Unless auto is set it waits for Enter before every tick.
func play(ge engine.GameEngine, view *display.TableView, auto bool) error {
	in := bufio.NewScanner(os.Stdin)

	for !ge.Finished() {
		if !auto {
			view.Prompt()
			if !in.Scan() {
				return in.Err()
			}
			if strings.EqualFold(strings.TrimSpace(in.Text()), "q") {
				return nil
			}
		}

		if _, err := ge.Advance(); err != nil {
			if errors.Is(err, game.ErrGameOver) {
				return nil
			}
			return err
		}

		if !auto || ge.Finished() {
			view.Render()
		}
	}
	return nil
}
