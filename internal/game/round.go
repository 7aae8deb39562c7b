package game

import (
	"log"
	"math/rand"

	"github.com/pixelfault/meltdown/internal/models"
)

// StartGame assigns roles and tasks and moves the lobby into a running
// round.
func (s *Service) StartGame(code string) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	if len(lobby.Players) < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	s.assignRoles(lobby)
	s.assignTasks(lobby)

	lobby.Status = models.StatusInProgress
	lobby.TaskProgress = 0
	lobby.Outcome = nil
	lobby.Sabotage = nil
	lobby.PendingVotes = nil
	lobby.TimeRemaining = lobby.Settings.TimeLimit
	if lobby.TimeRemaining <= 0 {
		lobby.TimeRemaining = DefaultTimeLimit
	}
	lobby.IsTimerPaused = false

	log.Printf("Round started: code=%s players=%d hackers=%d", code, len(lobby.Players), len(lobby.AliveByRole(models.RoleHacker)))
	return lobby.Snapshot(), nil
}

// assignRoles shuffles a copy of the player slice (Fisher-Yates) and makes
// the first min(hackerCount, n/2) of it hackers. The lobby's own slice
// keeps join order, which host succession depends on.
func (s *Service) assignRoles(lobby *models.Lobby) {
	shuffled := make([]*models.Player, len(lobby.Players))
	copy(shuffled, lobby.Players)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	hackerCount := lobby.Settings.HackerCount
	if limit := len(shuffled) / 2; hackerCount > limit {
		hackerCount = limit
	}
	for i, p := range shuffled {
		if i < hackerCount {
			p.Role = models.RoleHacker
		} else {
			p.Role = models.RoleDeveloper
		}
		p.IsAlive = true
	}
}

// assignTasks deep-copies the configured task templates onto every
// developer. Hackers get no tasks.
func (s *Service) assignTasks(lobby *models.Lobby) {
	count := lobby.Settings.TaskCount
	if count <= 0 || count > len(s.catalog.Standard) {
		count = len(s.catalog.Standard)
	}
	for _, p := range lobby.Players {
		if p.Role != models.RoleDeveloper {
			p.Tasks = []*models.Task{}
			continue
		}
		tasks := make([]*models.Task, 0, count)
		for _, tpl := range s.catalog.Standard[:count] {
			tasks = append(tasks, tpl.Clone())
		}
		p.Tasks = tasks
	}
}

// TickUpdate is one lobby's state after a tick, flagged when the tick
// ended the round.
type TickUpdate struct {
	Lobby *models.Lobby
	Ended bool
}

// Tick advances every running countdown by one second. It is the only
// autonomous mutation in the system and must be driven externally at 1 Hz.
// It never fails; a panicking lobby would be caught by the caller's
// recoverer, and lobbies are processed independently.
func (s *Service) Tick() []TickUpdate {
	var updates []TickUpdate
	for _, lobby := range s.lobbies.List() {
		lobby.Lock()
		if lobby.Status != models.StatusInProgress || lobby.IsTimerPaused || lobby.TimeRemaining <= 0 {
			lobby.Unlock()
			continue
		}
		lobby.TimeRemaining--
		ended := false
		if lobby.TimeRemaining <= 0 {
			lobby.Status = models.StatusEnded
			lobby.Outcome = &models.Outcome{Winner: models.FactionHackers, Reason: "Time Limit Exceeded"}
			ended = true
			log.Printf("Round timed out: code=%s", lobby.Code)
		}
		snap := lobby.Snapshot()
		lobby.Unlock()
		updates = append(updates, TickUpdate{Lobby: snap, Ended: ended})
	}
	return updates
}

// StartMeeting pauses the round and opens voting. Legal only while a round
// is running, and blocked while a meltdown is active.
func (s *Service) StartMeeting(code string) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	if lobby.Status != models.StatusInProgress {
		return nil, ErrInvalidState
	}
	if lobby.Sabotage != nil && lobby.Sabotage.IsActive {
		return nil, ErrMeetingBlocked
	}
	lobby.Status = models.StatusMeeting
	lobby.IsTimerPaused = true
	log.Printf("Meeting started: code=%s", code)
	return lobby.Snapshot(), nil
}

// ResetLobby returns an ended (or running) lobby to the waiting state and
// wipes all round state from its players.
func (s *Service) ResetLobby(code string) (*models.Lobby, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	lobby.Status = models.StatusWaiting
	lobby.TaskProgress = 0
	lobby.TimeRemaining = 0
	lobby.IsTimerPaused = false
	lobby.Outcome = nil
	lobby.Sabotage = nil
	lobby.PendingVotes = nil
	for _, p := range lobby.Players {
		p.Role = ""
		p.IsAlive = true
		p.IsReady = false
		p.Tasks = []*models.Task{}
	}
	log.Printf("Lobby reset: code=%s", code)
	return lobby.Snapshot(), nil
}
