package models

import (
	"sync"
	"time"
)

// Lobby represents one independent game instance, identified by a short
// shareable code. All mutation goes through the game service, which holds
// the lobby lock for the whole operation and broadcasts snapshots only.
type Lobby struct {
	Code          string    `json:"code"`
	HostID        string    `json:"hostId"`
	Players       []*Player `json:"players"` // join order; relevant for host succession
	Settings      Settings  `json:"settings"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	TaskProgress  int       `json:"taskProgress"`
	TimeRemaining int       `json:"timeRemaining"`
	IsTimerPaused bool      `json:"isTimerPaused"`
	Outcome       *Outcome  `json:"outcome,omitempty"`
	Sabotage      *Sabotage `json:"sabotage,omitempty"`

	// PendingVotes is the transient meeting accumulator. Revealed only at
	// tally, never serialized to clients.
	PendingVotes []Vote `json:"-"`

	mu sync.Mutex
}

// Lock acquires the lobby's lock
func (l *Lobby) Lock() {
	l.mu.Lock()
}

// Unlock releases the lobby's lock
func (l *Lobby) Unlock() {
	l.mu.Unlock()
}

// FindPlayer returns the player with the given id, or nil.
func (l *Lobby) FindPlayer(id string) *Player {
	for _, p := range l.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// AliveByRole returns living players holding the given role.
func (l *Lobby) AliveByRole(role Role) []*Player {
	var out []*Player
	for _, p := range l.Players {
		if p.IsAlive && p.Role == role {
			out = append(out, p)
		}
	}
	return out
}

// AliveCount returns the number of living players.
func (l *Lobby) AliveCount() int {
	n := 0
	for _, p := range l.Players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

// HasVoted reports whether the player already voted this meeting.
func (l *Lobby) HasVoted(voterID string) bool {
	for _, v := range l.PendingVotes {
		if v.VoterID == voterID {
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy safe to serialize after the lock is
// released. Must be called with the lobby lock held.
func (l *Lobby) Snapshot() *Lobby {
	c := &Lobby{
		Code:          l.Code,
		HostID:        l.HostID,
		Settings:      l.Settings,
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		TaskProgress:  l.TaskProgress,
		TimeRemaining: l.TimeRemaining,
		IsTimerPaused: l.IsTimerPaused,
		Sabotage:      l.Sabotage.Clone(),
	}
	c.Players = make([]*Player, len(l.Players))
	for i, p := range l.Players {
		c.Players[i] = p.Clone()
	}
	if l.Outcome != nil {
		o := *l.Outcome
		c.Outcome = &o
	}
	return c
}
