package store

import (
	"sync"

	"github.com/pixelfault/meltdown/internal/models"
)

// LobbyStore owns every active lobby, keyed by code. Lobbies have no
// lifetime outside the store: they are created here and removed when the
// last player leaves.
type LobbyStore struct {
	lobbies map[string]*models.Lobby
	mu      sync.RWMutex
}

// NewLobbyStore creates an empty lobby store
func NewLobbyStore() *LobbyStore {
	return &LobbyStore{
		lobbies: make(map[string]*models.Lobby),
	}
}

// Get retrieves a lobby by code
func (s *LobbyStore) Get(code string) (*models.Lobby, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lobby, exists := s.lobbies[code]
	return lobby, exists
}

// Set stores a lobby
func (s *LobbyStore) Set(code string, lobby *models.Lobby) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lobbies[code] = lobby
}

// Delete removes a lobby
func (s *LobbyStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lobbies, code)
}

// Exists checks if a lobby code is taken
func (s *LobbyStore) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.lobbies[code]
	return exists
}

// List returns all active lobbies. Consumed by the global tick; the slice
// is a copy, the lobbies are live and must be locked individually.
func (s *LobbyStore) List() []*models.Lobby {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Lobby, 0, len(s.lobbies))
	for _, l := range s.lobbies {
		out = append(out, l)
	}
	return out
}
