package protocol

// Cmd represents a command sent between a GameEngine and a view
type Cmd int

const (
	Null Cmd = iota
	Snapshot
	Advance
	GameOver
	Error
)

var cmdNames = []string{
	"Null",
	"Snapshot",
	"Advance",
	"GameOver",
	"Error",
}

func (c Cmd) String() string {
	if c < 0 || int(c) >= len(cmdNames) {
		return ""
	}
	return cmdNames[c]
}
