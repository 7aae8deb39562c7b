package models

// Status represents the current lifecycle state of a lobby. It is the single
// source of truth for which operations may legally mutate the lobby.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in-progress"
	StatusMeeting    Status = "meeting"
	StatusEnded      Status = "ended"
)

// Faction identifies a winning side.
type Faction string

const (
	FactionDevelopers Faction = "developers"
	FactionHackers    Faction = "hackers"
)

// Outcome records how a round ended. Set once, cleared only by a lobby reset.
type Outcome struct {
	Winner Faction `json:"winner"`
	Reason string  `json:"reason"`
}
