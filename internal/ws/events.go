package ws

// Inbound command events
const (
	EventLobbyJoin      = "lobby:join"
	EventLobbyLeave     = "lobby:leave"
	EventSettingsUpdate = "lobby:settings:update"
	EventGameStart      = "game:start"
	EventTaskVerify     = "task:verify"
	EventSabotage       = "sabotage:trigger"
	EventMeetingStart   = "meeting:start"
	EventVoteCast       = "vote:cast"
	EventLobbyReset     = "lobby:reset"
)

// Outbound notification events
const (
	EventLobbyUpdated   = "lobby:updated"
	EventGameStarted    = "game:started"
	EventGameEnded      = "game:ended"
	EventMeetingStarted = "meeting:started"
	EventMeetingEnded   = "meeting:ended"
	EventTaskSuccess    = "task:success"
	EventTaskError      = "task:error"
	EventSabotageEffect = "sabotage:effect"
	EventPlayerLeft     = "player:left"
	EventError          = "error"
)
