package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pixelfault/meltdown/internal/game"
	"github.com/pixelfault/meltdown/internal/models"
	"github.com/pixelfault/meltdown/internal/sandbox"
	"github.com/pixelfault/meltdown/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *game.Service) {
	t.Helper()
	svc := game.NewService(store.NewLobbyStore(), sandbox.NewRunner(time.Second))
	srv := httptest.NewServer(New(svc, "http://example.test").Routes())
	t.Cleanup(srv.Close)
	return srv, svc
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeLobby(t *testing.T, resp *http.Response) *models.Lobby {
	t.Helper()
	defer resp.Body.Close()
	var lobby models.Lobby
	if err := json.NewDecoder(resp.Body).Decode(&lobby); err != nil {
		t.Fatalf("decode lobby: %v", err)
	}
	return &lobby
}

func TestCreateLobbyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/lobbies", map[string]string{"username": "Ada"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	lobby := decodeLobby(t, resp)
	if len(lobby.Code) != 6 {
		t.Errorf("code = %q, want 6 characters", lobby.Code)
	}
	if len(lobby.Players) != 1 || lobby.Players[0].Username != "Ada" {
		t.Errorf("players = %+v, want single host Ada", lobby.Players)
	}
	// No userId supplied: the server mints one.
	if lobby.HostID == "" {
		t.Error("host id not generated")
	}
}

func TestCreateLobbyRequiresUsername(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := postJSON(t, srv.URL+"/lobbies", map[string]string{"username": "   "})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestJoinLobbyEndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	created := svc.CreateLobby("host-1", "Ada")

	t.Run("code is normalized", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/lobbies/join", map[string]string{
			"code":     "  " + strings.ToLower(created.Code) + "  ",
			"userId":   "p1",
			"username": "Bob",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		lobby := decodeLobby(t, resp)
		if len(lobby.Players) != 2 {
			t.Errorf("players = %d, want 2", len(lobby.Players))
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/lobbies/join", map[string]string{
			"code":     "ZZZZZZ",
			"username": "Eve",
		})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/lobbies/join", map[string]string{"code": created.Code})
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

func TestGetLobbyEndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	created := svc.CreateLobby("host-1", "Ada")

	resp, err := http.Get(srv.URL + "/lobbies/" + created.Code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	lobby := decodeLobby(t, resp)
	if lobby.Code != created.Code {
		t.Errorf("code = %q, want %q", lobby.Code, created.Code)
	}

	// The path parameter is normalized like the join body.
	lower, err := http.Get(srv.URL + "/lobbies/" + strings.ToLower(created.Code))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if lower.StatusCode != http.StatusOK {
		t.Errorf("lowercase code status = %d, want 200", lower.StatusCode)
	}
	lower.Body.Close()

	missing, err := http.Get(srv.URL + "/lobbies/ZZZZZZ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", missing.StatusCode)
	}
}

func TestLobbyQREndpoint(t *testing.T) {
	srv, svc := newTestServer(t)
	created := svc.CreateLobby("host-1", "Ada")

	resp, err := http.Get(srv.URL + "/lobbies/" + created.Code + "/qr")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
}
