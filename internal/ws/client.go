package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pixelfault/meltdown/internal/game"
	"github.com/pixelfault/meltdown/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // submissions are source files, allow some room
	sendBufferSize = 32
)

// Message is one websocket frame in either direction.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client is one connected browser. After a lobby:join it carries the
// player identity used for disconnect cleanup.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	mu        sync.Mutex
	closed    bool
	lobbyCode string
	playerID  string
}

func (c *Client) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// trySend queues a frame without blocking. A client that cannot keep up
// is closed rather than stalling the room.
func (c *Client) trySend(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.closed = true
		close(c.send)
	}
}

func (c *Client) identity() (code, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lobbyCode, c.playerID
}

func (c *Client) setIdentity(code, playerID string) {
	c.mu.Lock()
	c.lobbyCode = code
	c.playerID = playerID
	c.mu.Unlock()
}

// readPump reads command frames until the connection drops, then removes
// the player from their lobby the way the original handled socket
// disconnects.
func (c *Client) readPump() {
	defer func() {
		c.disconnect()
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}
		c.dispatch(msg)
	}
}

// writePump drains the send channel onto the wire and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendEvent(event string, data any) {
	frame, err := json.Marshal(Message{Event: event, Data: marshalData(data)})
	if err != nil {
		return
	}
	c.trySend(frame)
}

func (c *Client) sendError(msg string) {
	c.sendEvent(EventError, msg)
}

type lobbyRef struct {
	LobbyID string `json:"lobbyId"`
}

type joinPayload struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
}

type settingsPayload struct {
	LobbyID  string               `json:"lobbyId"`
	Settings models.SettingsPatch `json:"settings"`
}

type verifyPayload struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
	TaskID   string `json:"taskId"`
	Code     string `json:"code"`
}

type sabotagePayload struct {
	LobbyID   string `json:"lobbyId"`
	PlayerID  string `json:"playerId"`
	AbilityID string `json:"abilityId"`
}

type votePayload struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
	TargetID string `json:"targetId"`
}

// dispatch routes one inbound command to the game service and broadcasts
// the resulting snapshots. Structural failures go back to the sender as an
// error event; nothing here may panic the pump.
func (c *Client) dispatch(msg Message) {
	switch msg.Event {
	case EventLobbyJoin:
		var p joinPayload
		if !c.decode(msg.Data, &p) {
			return
		}
		p.LobbyID = game.NormalizeRoomCode(p.LobbyID)
		snap, err := c.hub.svc.Lobby(p.LobbyID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.setIdentity(p.LobbyID, p.PlayerID)
		c.hub.subscribe(c, p.LobbyID)
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)

	case EventLobbyLeave:
		var p lobbyRef
		if !c.decode(msg.Data, &p) {
			return
		}
		c.leaveLobby(p.LobbyID)

	case EventSettingsUpdate:
		var p settingsPayload
		if !c.decode(msg.Data, &p) {
			return
		}
		snap, err := c.hub.svc.UpdateSettings(p.LobbyID, p.Settings)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)

	case EventGameStart:
		var p lobbyRef
		if !c.decode(msg.Data, &p) {
			return
		}
		snap, err := c.hub.svc.StartGame(p.LobbyID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)
		c.hub.Broadcast(p.LobbyID, EventGameStarted, snap)

	case EventTaskVerify:
		var p verifyPayload
		if !c.decode(msg.Data, &p) {
			return
		}
		c.handleVerify(p)

	case EventSabotage:
		var p sabotagePayload
		if !c.decode(msg.Data, &p) {
			return
		}
		c.handleSabotage(p)

	case EventMeetingStart:
		var p lobbyRef
		if !c.decode(msg.Data, &p) {
			return
		}
		snap, err := c.hub.svc.StartMeeting(p.LobbyID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)
		c.hub.Broadcast(p.LobbyID, EventMeetingStarted, snap)

	case EventVoteCast:
		var p votePayload
		if !c.decode(msg.Data, &p) {
			return
		}
		c.handleVote(p)

	case EventLobbyReset:
		var p lobbyRef
		if !c.decode(msg.Data, &p) {
			return
		}
		snap, err := c.hub.svc.ResetLobby(p.LobbyID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.CancelMeltdown(p.LobbyID)
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)

	default:
		c.sendError("unknown event: " + msg.Event)
	}
}

func (c *Client) handleVerify(p verifyPayload) {
	res, err := c.hub.svc.VerifyTask(p.LobbyID, p.PlayerID, p.TaskID, p.Code)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if !res.Accepted {
		c.sendEvent(EventTaskError, res.Message)
		return
	}
	c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, res.Lobby)
	c.sendEvent(EventTaskSuccess, map[string]string{"taskId": p.TaskID, "message": res.Message})

	// A successful submission may have stabilized the meltdown or ended
	// the round; either way the pending deadline check is moot.
	if res.Lobby.Sabotage == nil {
		c.hub.CancelMeltdown(p.LobbyID)
	}
	if res.Lobby.Status == models.StatusEnded {
		c.hub.CancelMeltdown(p.LobbyID)
		c.hub.Broadcast(p.LobbyID, EventGameEnded, res.Lobby)
	}
}

func (c *Client) handleSabotage(p sabotagePayload) {
	if p.AbilityID == models.SabotageMeltdown {
		snap, err := c.hub.svc.TriggerSabotage(p.LobbyID, p.AbilityID)
		if err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, snap)
		c.hub.ScheduleMeltdown(p.LobbyID, snap.Sabotage.Deadline)
		return
	}
	effect, ok := game.CosmeticEffect(p.AbilityID)
	if !ok {
		c.sendError(game.ErrUnknownAbility.Error())
		return
	}
	c.hub.Broadcast(p.LobbyID, EventSabotageEffect, effect)
}

func (c *Client) handleVote(p votePayload) {
	res := c.hub.svc.CastVote(p.LobbyID, p.PlayerID, p.TargetID)
	if !res.Accepted {
		c.sendError(res.Message)
		return
	}
	c.hub.Broadcast(p.LobbyID, EventLobbyUpdated, res.Lobby)
	if res.MeetingOver {
		c.hub.Broadcast(p.LobbyID, EventMeetingEnded, map[string]any{
			"lobby":   res.Lobby,
			"message": res.ResultMessage,
		})
		if res.Lobby.Status == models.StatusEnded {
			c.hub.Broadcast(p.LobbyID, EventGameEnded, res.Lobby)
		}
	}
}

func (c *Client) leaveLobby(code string) {
	snap := c.hub.svc.RemovePlayer(code, c.currentPlayer())
	c.hub.unsubscribe(c, code)
	c.setIdentity("", "")
	if snap != nil {
		c.hub.Broadcast(code, EventLobbyUpdated, snap)
	}
}

func (c *Client) disconnect() {
	code, playerID := c.identity()
	if code == "" {
		c.close()
		return
	}
	log.Printf("ws disconnect: code=%s player=%s", code, playerID)
	snap := c.hub.svc.RemovePlayer(code, playerID)
	c.hub.unsubscribe(c, code)
	c.close()
	if snap != nil {
		c.hub.Broadcast(code, EventLobbyUpdated, snap)
		c.hub.Broadcast(code, EventPlayerLeft, playerID)
	}
}

func (c *Client) currentPlayer() string {
	_, playerID := c.identity()
	return playerID
}

func (c *Client) decode(raw json.RawMessage, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		c.sendError("malformed payload")
		return false
	}
	return true
}
