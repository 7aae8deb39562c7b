package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"strings"

	"github.com/pixelfault/meltdown/internal/store"
)

// NormalizeRoomCode maps user-supplied codes onto the generated form.
// Codes are minted uppercase; clients type them in any case.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GenerateRoomCode creates a random lobby code
func GenerateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := 0; i < RoomCodeLength; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// GetUniqueRoomCode generates a lobby code not present in the store
func GetUniqueRoomCode(lobbies *store.LobbyStore) string {
	for {
		code := GenerateRoomCode()
		if !lobbies.Exists(code) {
			return code
		}
	}
}

// RandomColor picks a player color uniformly from the palette
func RandomColor() string {
	return PlayerColors[rand.Intn(len(PlayerColors))]
}
