package game

// State represents the lifecycle of a game
type State int

const (
	InProgress State = iota
	Finished
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "inProgress"
	case Finished:
		return "finished"
	}
	return ""
}
