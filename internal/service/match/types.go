package match

import "time"

type Outcome string

const (
	OutcomeGoneOut   Outcome = "gone_out"
	OutcomeExhausted Outcome = "exhausted"
	// OutcomeAborted marks a round stopped by cancellation or the turn cap.
	OutcomeAborted Outcome = "aborted"
)

// Result describes a finished round. Winner is the winning seat name and
// stays empty unless the outcome is gone_out.
type Result struct {
	RoundID    string  `json:"roundId"`
	Outcome    Outcome `json:"outcome"`
	Winner     string  `json:"winner,omitempty"`
	WinnerSeat int     `json:"winnerSeat"`
	Score      int     `json:"score"`
	Knock      int     `json:"knock"`
	Turns      int     `json:"turns"`
	Deadwood   [2]int  `json:"deadwood"`
}

type EventType string

const (
	EventDeal        EventType = "deal"
	EventTakeDiscard EventType = "take_discard"
	EventDraw        EventType = "draw"
	EventDiscard     EventType = "discard"
	EventGoOut       EventType = "go_out"
	EventExhausted   EventType = "exhausted"
)

// Event is one observable step of a round. Cards drawn by the opponent are
// never revealed.
type Event struct {
	RoundID      string    `json:"roundId"`
	Turn         int       `json:"turn"`
	Seat         string    `json:"seat,omitempty"`
	Type         EventType `json:"type"`
	Card         string    `json:"card,omitempty"`
	Knock        int       `json:"knock,omitempty"`
	Deadwood     int       `json:"deadwood,omitempty"`
	Organization string    `json:"organization,omitempty"`
}

type Observer func(Event)

type MatchResult struct {
	Rounds    int    `json:"rounds"`
	Scores    [2]int `json:"scores"`
	Winner    string `json:"winner"`
	Wins      [2]int `json:"wins"`
	Exhausted int    `json:"exhausted"`
	Voided    int    `json:"voided"`
}

type BatchRequest struct {
	Matches  int    `json:"matches"`
	Seed     int64  `json:"seed"`
	Workers  int    `json:"workers"`
	Strategy string `json:"strategy"`
}

type BatchSummary struct {
	Matches         int           `json:"matches"`
	Strategy        string        `json:"strategy"`
	AgentMatches    int           `json:"agentMatches"`
	OpponentMatches int           `json:"opponentMatches"`
	Rounds          int           `json:"rounds"`
	AgentRounds     int           `json:"agentRounds"`
	OpponentRounds  int           `json:"opponentRounds"`
	Exhausted       int           `json:"exhausted"`
	Voided          int           `json:"voided"`
	AgentPoints     int           `json:"agentPoints"`
	OpponentPoints  int           `json:"opponentPoints"`
	Elapsed         time.Duration `json:"elapsed"`
}
