package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pixelfault/meltdown/internal/models"
	"github.com/pixelfault/meltdown/internal/sandbox"
	"github.com/pixelfault/meltdown/internal/store"
)

// testCatalog avoids the Lua sandbox for state-machine tests: a
// submission containing "ok" passes, anything else is rejected.
func testCatalog() Catalog {
	ok := func(_ *sandbox.Runner, code string) error {
		if strings.Contains(code, "ok") {
			return nil
		}
		return errors.New("incorrect implementation")
	}
	standard := []*models.Task{
		{ID: "t-alpha", Title: "Alpha", Difficulty: "easy"},
		{ID: "t-beta", Title: "Beta", Difficulty: "easy"},
	}
	emergency := []*models.Task{
		{ID: "fix-a", Title: "Fix A", Difficulty: "easy"},
		{ID: "fix-b", Title: "Fix B", Difficulty: "easy"},
	}
	checks := map[string]CheckFunc{
		"t-alpha": ok,
		"t-beta":  ok,
		"fix-a":   ok,
		"fix-b":   ok,
	}
	return Catalog{Standard: standard, Emergency: emergency, Checks: checks}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestService(opts ...Option) *Service {
	base := []Option{WithCatalog(testCatalog())}
	return NewService(store.NewLobbyStore(), sandbox.NewRunner(time.Second), append(base, opts...)...)
}

// newLuaService keeps the default catalog, so predicates run through the
// real sandbox.
func newLuaService() *Service {
	return NewService(store.NewLobbyStore(), sandbox.NewRunner(time.Second))
}

// buildLobby creates a lobby with n players (ids p0..p{n-1}, p0 hosting).
func buildLobby(t *testing.T, svc *Service, n int) *models.Lobby {
	t.Helper()
	lobby := svc.CreateLobby("p0", "Player0")
	for i := 1; i < n; i++ {
		var err error
		lobby, err = svc.JoinLobby(lobby.Code, fmt.Sprintf("p%d", i), fmt.Sprintf("Player%d", i))
		if err != nil {
			t.Fatalf("join p%d: %v", i, err)
		}
	}
	return lobby
}

// startedLobby creates a lobby with n players and starts the round.
func startedLobby(t *testing.T, svc *Service, n int) *models.Lobby {
	t.Helper()
	lobby := buildLobby(t, svc, n)
	started, err := svc.StartGame(lobby.Code)
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	return started
}

func playersByRole(lobby *models.Lobby, role models.Role) []*models.Player {
	var out []*models.Player
	for _, p := range lobby.Players {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}
