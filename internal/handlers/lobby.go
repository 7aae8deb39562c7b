package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/pixelfault/meltdown/internal/game"
)

// Handler serves the REST lobby endpoints. Everything realtime goes over
// the websocket; this surface only creates, joins and inspects lobbies.
type Handler struct {
	svc       *game.Service
	publicURL string
}

// New creates the REST handler. publicURL is the externally reachable
// base used in the join QR code.
func New(svc *game.Service, publicURL string) *Handler {
	return &Handler{svc: svc, publicURL: strings.TrimRight(publicURL, "/")}
}

// Routes returns the router for mounting under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/lobbies", h.CreateLobby)
	r.Post("/lobbies/join", h.JoinLobby)
	r.Get("/lobbies/{code}", h.GetLobby)
	r.Get("/lobbies/{code}/qr", h.LobbyQR)
	return r
}

type createRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// CreateLobby builds a new lobby with the caller as host.
func (h *Handler) CreateLobby(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "missing username")
		return
	}
	if req.UserID == "" {
		req.UserID = uuid.New().String()
	}
	lobby := h.svc.CreateLobby(req.UserID, req.Username)
	writeJSON(w, http.StatusCreated, lobby)
}

type joinRequest struct {
	Code     string `json:"code"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// JoinLobby adds the caller to an existing waiting lobby.
func (h *Handler) JoinLobby(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Code = game.NormalizeRoomCode(req.Code)
	req.Username = strings.TrimSpace(req.Username)
	if req.Code == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "missing code or username")
		return
	}
	if req.UserID == "" {
		req.UserID = uuid.New().String()
	}
	lobby, err := h.svc.JoinLobby(req.Code, req.UserID, req.Username)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lobby)
}

// GetLobby returns the current lobby snapshot.
func (h *Handler) GetLobby(w http.ResponseWriter, r *http.Request) {
	lobby, err := h.svc.Lobby(game.NormalizeRoomCode(chi.URLParam(r, "code")))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lobby)
}

// LobbyQR renders a QR code for the lobby's join link.
func (h *Handler) LobbyQR(w http.ResponseWriter, r *http.Request) {
	code := game.NormalizeRoomCode(chi.URLParam(r, "code"))
	if _, err := h.svc.Lobby(code); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	png, err := qrcode.Encode(h.publicURL+"/lobby/"+code, qrcode.Medium, 256)
	if err != nil {
		log.Printf("qr encode failed: code=%s err=%v", code, err)
		writeError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrLobbyNotFound), errors.Is(err, game.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrLobbyFull), errors.Is(err, game.ErrAlreadyStarted),
		errors.Is(err, game.ErrInvalidState), errors.Is(err, game.ErrNotEnoughPlayers):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
