package protocol

// Card is the wire form of a face-up card
type Card struct {
	Shorthand string `json:"shorthand"`
	Name      string `json:"name"`
	Image     string `json:"image"`
}

// GameState is a snapshot of everything a view may show about a game
type GameState struct {
	GameID         string `json:"gameID"`
	NumPlayers     int    `json:"numPlayers"`
	HandSizes      []int  `json:"handSizes"`
	Remaining      []int  `json:"remaining"`
	CentrePileSize int    `json:"centrePileSize"`
	TopCard        *Card  `json:"topCard,omitempty"`
	PendingPenalty *int   `json:"pendingPenalty,omitempty"`
	NextPlayer     int    `json:"nextPlayer"`
	Finished       bool   `json:"finished"`
	Winner         *int   `json:"winner,omitempty"`
	Ticks          int    `json:"ticks"`
}

// InboundMessage is a message from a view to a GameEngine
type InboundMessage struct {
	Command Cmd `json:"command"`
}

// OutboundMessage is a message from a GameEngine to a view
type OutboundMessage struct {
	Command Cmd       `json:"command"`
	State   GameState `json:"state"`
	Error   string    `json:"error,omitempty"`
}
