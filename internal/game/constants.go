package game

import "time"

const (
	// MinPlayers is the minimum number of players required to start a round
	MinPlayers = 2

	// MeltdownDuration is how long developers have to stabilize the system
	MeltdownDuration = 45 * time.Second

	// DefaultTimeLimit is the round countdown used when settings carry none
	DefaultTimeLimit = 60

	// RoomCodeLength is the length of generated lobby codes
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for generating lobby codes (excluding ambiguous chars)
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// PlayerColors is the palette a joining player's color is drawn from.
// Repeats are allowed.
var PlayerColors = []string{
	"#FF0000", "#00FF00", "#0000FF", "#FFFF00", "#FF00FF", "#00FFFF",
}
