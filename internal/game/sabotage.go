package game

import (
	"log"

	"github.com/pixelfault/meltdown/internal/models"
)

// Effect describes a cosmetic sabotage ability. These are broadcast to
// clients and carry no server-side state.
type Effect struct {
	AbilityID string `json:"abilityId"`
	Duration  int    `json:"duration"` // seconds
}

var cosmeticDurations = map[string]int{
	"freeze": 10,
	"bug":    0,
	"swap":   15,
}

// CosmeticEffect resolves a non-meltdown ability to its broadcast payload.
func CosmeticEffect(abilityID string) (Effect, bool) {
	d, ok := cosmeticDurations[abilityID]
	return Effect{AbilityID: abilityID, Duration: d}, ok
}

// TriggerSabotage starts a meltdown: every living developer gets a
// mandatory remediation task drawn round-robin from the emergency pool,
// and the round countdown pauses until the emergency resolves. The caller
// owns scheduling the deadline check.
func (s *Service) TriggerSabotage(code, kind string) (*models.Lobby, error) {
	if kind != models.SabotageMeltdown {
		return nil, ErrUnknownAbility
	}
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
		return nil, ErrSabotageActive
	}

	developers := lobby.AliveByRole(models.RoleDeveloper)
	assignments := make(map[string]*models.SabotageTask, len(developers))
	for i, dev := range developers {
		tpl := s.catalog.Emergency[i%len(s.catalog.Emergency)]
		assignments[dev.ID] = &models.SabotageTask{TaskID: tpl.ID}
		// verifyTask resolves against the player's task list, so the
		// emergency task is appended there too (dedup by id).
		if dev.FindTask(tpl.ID) == nil {
			dev.Tasks = append(dev.Tasks, tpl.Clone())
		}
	}

	lobby.Sabotage = &models.Sabotage{
		IsActive: true,
		Kind:     kind,
		Deadline: s.now().Add(MeltdownDuration),
		Tasks:    assignments,
	}
	lobby.IsTimerPaused = true
	log.Printf("Meltdown triggered: code=%s developers=%d deadline=%s", code, len(developers), lobby.Sabotage.Deadline.Format("15:04:05"))
	return lobby.Snapshot(), nil
}

// CheckSabotageTimeout is invoked by the external deadline timer. It
// returns the ended lobby when the meltdown expired, nil when there is
// nothing to report (no active sabotage, or not yet expired). Resolution
// by completion and resolution by timeout race under the lobby lock;
// whichever flips the record first excludes the other.
func (s *Service) CheckSabotageTimeout(code string) *models.Lobby {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return nil
	}
	lobby.Lock()
	defer lobby.Unlock()

	if lobby.Status != models.StatusInProgress {
		return nil
	}
	if lobby.Sabotage == nil || !lobby.Sabotage.IsActive {
		return nil
	}
	if !s.now().After(lobby.Sabotage.Deadline) {
		return nil
	}
	lobby.Sabotage = nil
	lobby.Status = models.StatusEnded
	lobby.Outcome = &models.Outcome{Winner: models.FactionHackers, Reason: "Critical System Meltdown"}
	log.Printf("Meltdown expired: code=%s", code)
	return lobby.Snapshot()
}

// sabotageStabilized reports whether every living developer completed
// their remediation assignment. Lock held.
func sabotageStabilized(lobby *models.Lobby) bool {
	for _, dev := range lobby.AliveByRole(models.RoleDeveloper) {
		a := lobby.Sabotage.Tasks[dev.ID]
		if a == nil || !a.Completed {
			return false
		}
	}
	return true
}

// resolveSabotage clears the meltdown and resumes the countdown. Lock held.
func (s *Service) resolveSabotage(lobby *models.Lobby) {
	if lobby.Sabotage == nil {
		return
	}
	lobby.Sabotage = nil
	lobby.IsTimerPaused = false
	log.Printf("Meltdown resolved: code=%s", lobby.Code)
}
