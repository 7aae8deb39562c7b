package game

import (
	"log"

	"github.com/pixelfault/meltdown/internal/models"
)

// CreateLobby builds a new lobby with the host as its only player and
// registers it under a fresh unique code. It never fails.
func (s *Service) CreateLobby(hostID, hostName string) *models.Lobby {
	code := GetUniqueRoomCode(s.lobbies)
	lobby := &models.Lobby{
		Code:      code,
		HostID:    hostID,
		Settings:  models.DefaultSettings(),
		Status:    models.StatusWaiting,
		CreatedAt: s.now(),
	}
	lobby.Players = append(lobby.Players, &models.Player{
		ID:       hostID,
		Username: hostName,
		IsHost:   true,
		IsAlive:  true,
		Color:    RandomColor(),
	})
	// Snapshot before Set: once the lobby is registered other goroutines
	// can reach it, and Snapshot requires the lock.
	lobby.Lock()
	snap := lobby.Snapshot()
	lobby.Unlock()
	s.lobbies.Set(code, lobby)
	log.Printf("Created lobby: code=%s host=%s", code, hostID)
	return snap
}

// JoinLobby appends a player to a waiting lobby.
func (s *Service) JoinLobby(code, playerID, username string) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	if len(lobby.Players) >= lobby.Settings.MaxPlayers {
		return nil, ErrLobbyFull
	}
	if lobby.Status != models.StatusWaiting {
		return nil, ErrAlreadyStarted
	}
	if lobby.FindPlayer(playerID) != nil {
		// Rejoin with the same id is a no-op.
		return lobby.Snapshot(), nil
	}
	lobby.Players = append(lobby.Players, &models.Player{
		ID:       playerID,
		Username: username,
		IsAlive:  true,
		Color:    RandomColor(),
	})
	log.Printf("Player joined lobby: code=%s playerID=%s name=%s", code, playerID, username)
	return lobby.Snapshot(), nil
}

// RemovePlayer takes a player out of the lobby. Removing the host promotes
// the next player in join order; removing the last player destroys the
// lobby and returns nil. Safe to call twice for the same player.
func (s *Service) RemovePlayer(code, playerID string) *models.Lobby {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil
	}
	lobby.Lock()
	defer lobby.Unlock()

	idx := -1
	for i, p := range lobby.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Already gone; second leave is a no-op.
		return lobby.Snapshot()
	}
	lobby.Players = append(lobby.Players[:idx], lobby.Players[idx+1:]...)

	if len(lobby.Players) == 0 {
		s.lobbies.Delete(code)
		log.Printf("Destroyed lobby: code=%s", code)
		return nil
	}
	if lobby.HostID == playerID {
		lobby.Players[0].IsHost = true
		lobby.HostID = lobby.Players[0].ID
		log.Printf("Host left, promoted: code=%s newHost=%s", code, lobby.HostID)
	}
	return lobby.Snapshot()
}

// UpdateSettings merges a partial settings update. Only legal while the
// lobby is waiting.
func (s *Service) UpdateSettings(code string, patch models.SettingsPatch) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	if lobby.Status != models.StatusWaiting {
		return nil, ErrInvalidState
	}
	patch.Apply(&lobby.Settings)
	return lobby.Snapshot(), nil
}
