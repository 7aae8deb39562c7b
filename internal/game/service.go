package game

import (
	"time"

	"github.com/pixelfault/meltdown/internal/models"
	"github.com/pixelfault/meltdown/internal/sandbox"
	"github.com/pixelfault/meltdown/internal/store"
)

// Service is the authoritative game-state machine. Every public method
// resolves a lobby by code, holds that lobby's lock for the whole mutation
// and returns a snapshot taken before unlocking, so callers broadcast
// consistent state. Lobbies are fully independent; different codes proceed
// in parallel.
type Service struct {
	lobbies *store.LobbyStore
	run     *sandbox.Runner
	catalog Catalog
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog replaces the default task catalog. Used by tests to install
// small fixed task sets.
func WithCatalog(c Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithClock replaces the wall clock. Used by tests to force deadline
// expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a game service over the given lobby store and
// sandbox runner.
func NewService(lobbies *store.LobbyStore, run *sandbox.Runner, opts ...Option) *Service {
	s := &Service{
		lobbies: lobbies,
		run:     run,
		catalog: DefaultCatalog(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lobby returns a snapshot of the lobby, or an error if the code is
// unknown.
func (s *Service) Lobby(code string) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()
	return lobby.Snapshot(), nil
}
