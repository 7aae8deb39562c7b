package game

import (
	"log"

	"github.com/pixelfault/meltdown/internal/models"
)

// VerifyResult is the outcome of a task submission. Rejections are routine
// game events, not errors; only an unknown lobby or player is fatal.
type VerifyResult struct {
	Accepted bool
	Message  string
	Lobby    *models.Lobby
}

// VerifyTask evaluates a submitted solution against the task's acceptance
// predicate and applies the consequences: task completion, aggregate
// progress, sabotage resolution and win conditions. Predicate faults never
// escape; they come back as rejection messages.
func (s *Service) VerifyTask(code, playerID, taskID, submission string) (VerifyResult, error) {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return VerifyResult{}, ErrLobbyNotFound
	}
	lobby.Lock()
	defer lobby.Unlock()

	player := lobby.FindPlayer(playerID)
	if player == nil {
		return VerifyResult{}, ErrPlayerNotFound
	}

	reject := func(msg string) VerifyResult {
		return VerifyResult{Message: msg, Lobby: lobby.Snapshot()}
	}
	accept := func(msg string) VerifyResult {
		return VerifyResult{Accepted: true, Message: msg, Lobby: lobby.Snapshot()}
	}

	if lobby.Status == models.StatusEnded {
		return reject("Round has ended"), nil
	}

	sab := lobby.Sabotage
	assignment := (*models.SabotageTask)(nil)
	if sab != nil && sab.IsActive {
		if a := sab.Tasks[playerID]; a != nil && a.TaskID == taskID {
			assignment = a
		}
	}
	task := player.FindTask(taskID)
	if task == nil && assignment == nil {
		return reject("Task not found"), nil
	}

	// Idempotent resubmission: done is done, the predicate is not re-run.
	if assignment != nil {
		if assignment.Completed {
			return accept("Task already completed"), nil
		}
	} else if task.Completed {
		return accept("Task already completed"), nil
	}

	check, ok := s.catalog.Check(taskID)
	if !ok {
		return reject("Unknown task"), nil
	}
	if err := check(s.run, submission); err != nil {
		return reject(err.Error()), nil
	}

	if task != nil {
		task.Completed = true
	}

	if assignment != nil {
		assignment.Completed = true
		log.Printf("Emergency task completed: code=%s player=%s task=%s", code, playerID, taskID)
		if sabotageStabilized(lobby) {
			s.resolveSabotage(lobby)
			return accept("SYSTEM STABILIZED"), nil
		}
		return accept("Emergency protocol executed. Waiting for others..."), nil
	}

	log.Printf("Task completed: code=%s player=%s task=%s", code, playerID, taskID)
	updateTaskProgress(lobby)
	return accept(""), nil
}

// updateTaskProgress recomputes the aggregate completion percentage across
// all developer task lists. Must be called with the lobby lock held.
func updateTaskProgress(lobby *models.Lobby) {
	total, completed := 0, 0
	for _, p := range lobby.Players {
		if p.Role != models.RoleDeveloper {
			continue
		}
		for _, t := range p.Tasks {
			total++
			if t.Completed {
				completed++
			}
		}
	}
	if total > 0 {
		lobby.TaskProgress = completed * 100 / total
	} else {
		lobby.TaskProgress = 0
	}
	if lobby.TaskProgress >= 100 {
		checkWinCondition(lobby)
	}
}
