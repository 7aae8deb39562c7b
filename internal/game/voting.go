package game

import (
	"log"

	"github.com/pixelfault/meltdown/internal/models"
)

// VoteResult reports a cast vote. Rejections (wrong phase, duplicate vote,
// dead voter) are soft: Accepted is false and Message says why.
type VoteResult struct {
	Accepted      bool
	Message       string
	Lobby         *models.Lobby
	MeetingOver   bool
	ResultMessage string // set once the tally ran
}

// CastVote records one ballot. When every living player has voted the
// tally runs immediately and the meeting ends.
func (s *Service) CastVote(code, voterID, targetID string) VoteResult {
	lobby, exists := s.lobbies.Get(code)
	if !exists {
		return VoteResult{Message: "Lobby not found"}
	}
	lobby.Lock()
	defer lobby.Unlock()

	if lobby.Status != models.StatusMeeting {
		return VoteResult{Message: "Not in meeting"}
	}
	voter := lobby.FindPlayer(voterID)
	if voter == nil {
		return VoteResult{Message: "Player not found"}
	}
	if !voter.IsAlive {
		return VoteResult{Message: "Dead players cannot vote"}
	}
	if lobby.HasVoted(voterID) {
		return VoteResult{Message: "Already voted"}
	}

	lobby.PendingVotes = append(lobby.PendingVotes, models.Vote{VoterID: voterID, TargetID: targetID})
	log.Printf("Vote cast: code=%s voter=%s votes=%d/%d", code, voterID, len(lobby.PendingVotes), lobby.AliveCount())

	if len(lobby.PendingVotes) >= lobby.AliveCount() {
		msg := tallyVotes(lobby)
		return VoteResult{Accepted: true, Lobby: lobby.Snapshot(), MeetingOver: true, ResultMessage: msg}
	}
	return VoteResult{Accepted: true, Lobby: lobby.Snapshot()}
}

// tallyVotes counts ballots per target and ejects the unique plurality
// winner, unless that winner is the skip sentinel or the top count is
// tied. Votes are cleared unconditionally; win conditions run after the
// ejection; the round resumes if the outcome is still open. Lock held.
func tallyVotes(lobby *models.Lobby) string {
	counts := make(map[string]int)
	for _, v := range lobby.PendingVotes {
		counts[v.TargetID]++
	}

	maxVotes := 0
	candidate := ""
	tie := false
	for target, count := range counts {
		if count > maxVotes {
			maxVotes = count
			candidate = target
			tie = false
		} else if count == maxVotes {
			tie = true
		}
	}

	result := "No one was ejected. (Tie or Skip)"
	if !tie && candidate != "" && candidate != models.VoteSkip {
		if ejected := lobby.FindPlayer(candidate); ejected != nil {
			ejected.IsAlive = false
			result = ejected.Username + " was ejected."
			log.Printf("Player ejected: code=%s player=%s role=%s", lobby.Code, ejected.ID, ejected.Role)
		}
	}

	lobby.PendingVotes = nil
	checkWinCondition(lobby)
	if lobby.Status != models.StatusEnded {
		lobby.Status = models.StatusInProgress
		lobby.IsTimerPaused = false
	}
	return result
}
