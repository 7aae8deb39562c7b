package game

import (
	"strings"
	"testing"

	"github.com/pixelfault/meltdown/internal/models"
	"github.com/pixelfault/meltdown/internal/store"
)

func TestNormalizeRoomCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC123"},
		{"  ABC123  ", "ABC123"},
		{"\tAbC123\n", "ABC123"},
		{"ABC123", "ABC123"},
	}
	for _, tt := range tests {
		if got := NormalizeRoomCode(tt.in); got != tt.want {
			t.Errorf("NormalizeRoomCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateRoomCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateRoomCode()
		if len(code) != RoomCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), RoomCodeLength)
		}
		for _, c := range code {
			if !strings.ContainsRune(RoomCodeChars, c) {
				t.Fatalf("code %q contains %q, outside the alphabet", code, c)
			}
		}
	}
}

func TestGetUniqueRoomCodeSkipsTaken(t *testing.T) {
	lobbies := store.NewLobbyStore()
	taken := map[string]bool{}
	for i := 0; i < 20; i++ {
		code := GetUniqueRoomCode(lobbies)
		if taken[code] {
			t.Fatalf("code %q issued twice", code)
		}
		taken[code] = true
		lobbies.Set(code, &models.Lobby{Code: code})
	}
}

func TestRandomColorFromPalette(t *testing.T) {
	for i := 0; i < 20; i++ {
		color := RandomColor()
		found := false
		for _, c := range PlayerColors {
			if c == color {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("color %q not in palette", color)
		}
	}
}
