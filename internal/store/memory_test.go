package store

import (
	"testing"

	"github.com/pixelfault/meltdown/internal/models"
)

func TestLobbyStore(t *testing.T) {
	s := NewLobbyStore()

	if _, exists := s.Get("ABC123"); exists {
		t.Error("empty store resolved a lobby")
	}
	if s.Exists("ABC123") {
		t.Error("empty store reports code taken")
	}

	lobby := &models.Lobby{Code: "ABC123"}
	s.Set("ABC123", lobby)

	got, exists := s.Get("ABC123")
	if !exists || got != lobby {
		t.Fatalf("Get returned (%v, %v), want stored lobby", got, exists)
	}
	if !s.Exists("ABC123") {
		t.Error("stored code not reported taken")
	}

	s.Set("XYZ789", &models.Lobby{Code: "XYZ789"})
	if got := len(s.List()); got != 2 {
		t.Errorf("List length = %d, want 2", got)
	}

	s.Delete("ABC123")
	if s.Exists("ABC123") {
		t.Error("deleted lobby still resolvable")
	}
	if got := len(s.List()); got != 1 {
		t.Errorf("List length after delete = %d, want 1", got)
	}
}
