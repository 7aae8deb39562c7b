package models

import (
	"testing"
	"time"
)

func sampleLobby() *Lobby {
	return &Lobby{
		Code:     "ABC123",
		HostID:   "p0",
		Settings: DefaultSettings(),
		Status:   StatusInProgress,
		Players: []*Player{
			{ID: "p0", Username: "Ada", IsHost: true, IsAlive: true, Role: RoleDeveloper,
				Tasks: []*Task{{ID: "t1", Title: "One"}}},
			{ID: "p1", Username: "Bob", IsAlive: true, Role: RoleHacker, Tasks: []*Task{}},
		},
		Sabotage: &Sabotage{
			IsActive: true,
			Kind:     SabotageMeltdown,
			Deadline: time.Now().Add(45 * time.Second),
			Tasks:    map[string]*SabotageTask{"p0": {TaskID: "fix-1"}},
		},
		Outcome: &Outcome{Winner: FactionDevelopers, Reason: "Task Completion"},
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	lobby := sampleLobby()
	lobby.Lock()
	snap := lobby.Snapshot()
	lobby.Unlock()

	snap.Players[0].Tasks[0].Completed = true
	snap.Players[1].IsAlive = false
	snap.Sabotage.Tasks["p0"].Completed = true
	snap.Outcome.Reason = "changed"

	if lobby.Players[0].Tasks[0].Completed {
		t.Error("task mutation leaked into the live lobby")
	}
	if !lobby.Players[1].IsAlive {
		t.Error("player mutation leaked into the live lobby")
	}
	if lobby.Sabotage.Tasks["p0"].Completed {
		t.Error("sabotage mutation leaked into the live lobby")
	}
	if lobby.Outcome.Reason != "Task Completion" {
		t.Error("outcome mutation leaked into the live lobby")
	}
}

func TestAliveHelpers(t *testing.T) {
	lobby := sampleLobby()
	lobby.Players[1].IsAlive = false

	if got := lobby.AliveCount(); got != 1 {
		t.Errorf("AliveCount = %d, want 1", got)
	}
	if got := len(lobby.AliveByRole(RoleHacker)); got != 0 {
		t.Errorf("alive hackers = %d, want 0", got)
	}
	if got := len(lobby.AliveByRole(RoleDeveloper)); got != 1 {
		t.Errorf("alive developers = %d, want 1", got)
	}
}

func TestHasVoted(t *testing.T) {
	lobby := sampleLobby()
	lobby.PendingVotes = append(lobby.PendingVotes, Vote{VoterID: "p0", TargetID: VoteSkip})
	if !lobby.HasVoted("p0") {
		t.Error("recorded vote not detected")
	}
	if lobby.HasVoted("p1") {
		t.Error("phantom vote detected")
	}
}

func TestSettingsPatchApply(t *testing.T) {
	s := DefaultSettings()
	hackers := 3
	SettingsPatch{HackerCount: &hackers}.Apply(&s)
	if s.HackerCount != 3 {
		t.Errorf("hackerCount = %d, want 3", s.HackerCount)
	}
	if s.MaxPlayers != 10 || s.TaskCount != 5 {
		t.Errorf("unpatched fields changed: %+v", s)
	}
}
