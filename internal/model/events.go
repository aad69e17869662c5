package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventNewGameSession  EventType = "new_game_session"
	EventSessionJoined   EventType = "session_joined"
	EventAttackResolved  EventType = "attack_resolved"
	EventSessionFinished EventType = "session_finished"
)

// Event is the base structure for all session lifecycle events
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	PlayerID  PlayerID // The player who triggered the event
	Payload   any      // Type-specific data
}

// NewGameSessionPayload contains data for session creation events.
// SessionID comes first on the wire; the first session ever created
// reports id 0.
type NewGameSessionPayload struct {
	SessionID SessionID `json:"session_id"`
	OwnerID   PlayerID  `json:"owner_id"`
	CardIDs   []CardID  `json:"card_ids"`
}

// SessionJoinedPayload contains data for join events
type SessionJoinedPayload struct {
	SessionID SessionID `json:"session_id"`
	JoinerID  PlayerID  `json:"joiner_id"`
	TurnOwner PlayerID  `json:"turn_owner"`
}

// AttackResolvedPayload contains data for resolved attack events
type AttackResolvedPayload struct {
	SessionID    SessionID `json:"session_id"`
	Attacker     PlayerID  `json:"attacker"`
	CardID       CardID    `json:"card_id"`
	Batteries    int       `json:"batteries"`
	Damage       int       `json:"damage"`
	DefenderLife int       `json:"defender_life"`
	NextTurn     PlayerID  `json:"next_turn"`
}

// SessionFinishedPayload contains data for terminal session events
type SessionFinishedPayload struct {
	SessionID SessionID `json:"session_id"`
	Winner    PlayerID  `json:"winner"`
	Loser     PlayerID  `json:"loser"`
}
