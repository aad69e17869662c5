package model

import "time"

// SessionID uniquely identifies a game session.
// IDs are assigned sequentially in creation order starting at 0.
type SessionID uint64

// SessionState represents the current phase of a session
type SessionState string

const (
	SessionStateAwaitingOpponent SessionState = "awaiting_opponent" // Created, one player committed
	SessionStateInProgress       SessionState = "in_progress"       // Both players joined, attacks ongoing
	SessionStateFinished         SessionState = "finished"          // A player's life points reached zero
)

// SessionPlayer is one player's side of a session: the cards they committed
// at create/join time plus their life and battery balances.
type SessionPlayer struct {
	ID         PlayerID
	Cards      []Card
	LifePoints int
	Batteries  int
}

// CardByID returns a pointer to the committed card with the given id, or nil
func (p *SessionPlayer) CardByID(id CardID) *Card {
	for i := range p.Cards {
		if p.Cards[i].ID == id {
			return &p.Cards[i]
		}
	}
	return nil
}

// Session represents a single two-player battle from creation to a terminal
// won/lost outcome. Sessions are never deleted; a finished session persists
// for audit and read access.
type Session struct {
	ID    SessionID
	State SessionState

	Owner  SessionPlayer
	Joiner SessionPlayer // Zero value until a joiner commits

	// Turn management
	TurnOwner PlayerID // The player authorized to attack
	Turn      int      // 0-indexed turn number, incremented per resolved attack

	Winner  PlayerID // Empty until finished
	Attacks []Attack // Resolved attacks in order

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player returns the session player with the given id, or nil
func (s *Session) Player(id PlayerID) *SessionPlayer {
	switch id {
	case s.Owner.ID:
		return &s.Owner
	case s.Joiner.ID:
		return &s.Joiner
	}
	return nil
}

// Opponent returns the other session player, or nil if id is not a participant
func (s *Session) Opponent(id PlayerID) *SessionPlayer {
	switch id {
	case s.Owner.ID:
		return &s.Joiner
	case s.Joiner.ID:
		return &s.Owner
	}
	return nil
}

// IsParticipant reports whether the given player occupies one of the two slots
func (s *Session) IsParticipant(id PlayerID) bool {
	return s.Player(id) != nil
}

// Attack is a resolved play: one card plus a battery commitment, turned into
// damage against the defender's life points.
type Attack struct {
	ID           string // uuid, for audit references
	Attacker     PlayerID
	CardID       CardID
	Batteries    int
	Damage       int
	Turn         int // The turn this attack consumed
	DefenderLife int // Defender's life points after the damage applied
	ResolvedAt   time.Time
}
