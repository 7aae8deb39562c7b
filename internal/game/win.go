package game

import (
	"log"

	"github.com/pixelfault/meltdown/internal/models"
)

// checkWinCondition evaluates the win conditions in fixed priority order
// and records the first that matches. A no-op once an outcome is set.
// Must be called with the lobby lock held.
func checkWinCondition(lobby *models.Lobby) {
	if lobby.Status == models.StatusEnded || lobby.Outcome != nil {
		return
	}

	developers := lobby.AliveByRole(models.RoleDeveloper)
	hackers := lobby.AliveByRole(models.RoleHacker)

	switch {
	case lobby.TaskProgress >= 100:
		lobby.Outcome = &models.Outcome{Winner: models.FactionDevelopers, Reason: "Task Completion"}
	case len(hackers) == 0:
		lobby.Outcome = &models.Outcome{Winner: models.FactionDevelopers, Reason: "All Hackers Ejected"}
	case len(hackers) >= len(developers):
		lobby.Outcome = &models.Outcome{Winner: models.FactionHackers, Reason: "Sabotage Critical"}
	default:
		return
	}
	lobby.Status = models.StatusEnded
	log.Printf("Round ended: code=%s winner=%s reason=%q", lobby.Code, lobby.Outcome.Winner, lobby.Outcome.Reason)
}
