package game

import "errors"

// Structural failures surfaced verbatim to the caller. None of them leave
// the lobby mutated.
var (
	ErrLobbyNotFound    = errors.New("lobby not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrLobbyFull        = errors.New("lobby is full")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrInvalidState     = errors.New("invalid lobby state")
	ErrMeetingBlocked   = errors.New("cannot call meeting during meltdown")
	ErrSabotageActive   = errors.New("sabotage already active")
	ErrUnknownAbility   = errors.New("unknown sabotage ability")
)
