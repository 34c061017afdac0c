package engine

import (
	"github.com/minaorangina/beggar/game"
	"github.com/minaorangina/beggar/protocol"
)

func buildGameState(gameID string, g *game.Game) protocol.GameState {
	state := protocol.GameState{
		GameID:         gameID,
		NumPlayers:     g.NumPlayers(),
		HandSizes:      make([]int, g.NumPlayers()),
		Remaining:      g.RemainingPlayers(),
		CentrePileSize: g.CentrePileSize(),
		NextPlayer:     g.NextPlayer(),
		Finished:       g.IsFinished(),
		Ticks:          g.Ticks(),
	}

	for p := range state.HandSizes {
		state.HandSizes[p], _ = g.HandSize(p)
	}

	if top, ok := g.TopOfCentrePile(); ok {
		state.TopCard = &protocol.Card{
			Shorthand: top.Shorthand(),
			Name:      top.String(),
			Image:     top.ImageName(),
		}
	}

	if n, ok := g.PendingPenalty(); ok {
		state.PendingPenalty = &n
	}

	if winner, ok := g.Winner(); ok {
		state.Winner = &winner
	}

	return state
}
