package redis

import (
	"fmt"

	"github.com/starkrivals/starkrivals/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "rivals"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// handKey returns the Redis key for a player's dealt Hand
func handKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:hand:%s", keyPrefix, playerID)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%d", keyPrefix, id)
}

// sessionCounterKey returns the Redis key for the session id allocator
func sessionCounterKey() string {
	return fmt.Sprintf("%s:session_counter", keyPrefix)
}

// eventsKey returns the Redis key for a session's event log (a LIST)
func eventsKey(id model.SessionID) string {
	return fmt.Sprintf("%s:events:%d", keyPrefix, id)
}
