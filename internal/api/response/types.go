package response

import (
	"time"

	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/identity"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// AuthResponseFromToken creates an AuthResponse from an identity token
func AuthResponseFromToken(t *identity.Token) AuthResponse {
	return AuthResponse{
		Player: PlayerFromModel(&t.Player),
		Token:  t.Value,
	}
}

// Card represents a card in API responses
type Card struct {
	ID         int  `json:"id"`
	Lasers     int  `json:"lasers"`
	Rockets    int  `json:"rockets"`
	PlayedTurn *int `json:"played_turn,omitempty"`
}

// CardFromModel converts model.Card
func CardFromModel(c model.Card) Card {
	return Card{
		ID:         int(c.ID),
		Lasers:     c.Lasers,
		Rockets:    c.Rockets,
		PlayedTurn: c.PlayedTurn,
	}
}

// Hand represents a dealt hand in API responses
type Hand struct {
	PlayerID string `json:"player_id"`
	Cards    []Card `json:"cards"`
}

// HandFromModel converts model.Hand
func HandFromModel(h *model.Hand) Hand {
	cards := make([]Card, len(h.Cards))
	for i, c := range h.Cards {
		cards[i] = CardFromModel(c)
	}
	return Hand{
		PlayerID: string(h.PlayerID),
		Cards:    cards,
	}
}

// SessionPlayer represents a participant's battle state
type SessionPlayer struct {
	PlayerID   string `json:"player_id"`
	Cards      []Card `json:"cards"`
	LifePoints int    `json:"life_points"`
	Batteries  int    `json:"batteries"`
}

// SessionPlayerFromModel converts model.SessionPlayer
func SessionPlayerFromModel(p *model.SessionPlayer) *SessionPlayer {
	if p == nil || p.ID == "" {
		return nil
	}
	cards := make([]Card, len(p.Cards))
	for i, c := range p.Cards {
		cards[i] = CardFromModel(c)
	}
	return &SessionPlayer{
		PlayerID:   string(p.ID),
		Cards:      cards,
		LifePoints: p.LifePoints,
		Batteries:  p.Batteries,
	}
}

// Attack represents a resolved attack
type Attack struct {
	ID           string    `json:"id"`
	Attacker     string    `json:"attacker"`
	CardID       int       `json:"card_id"`
	Batteries    int       `json:"batteries"`
	Damage       int       `json:"damage"`
	Turn         int       `json:"turn"`
	DefenderLife int       `json:"defender_life"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

// AttackFromModel converts model.Attack
func AttackFromModel(a model.Attack) Attack {
	return Attack{
		ID:           a.ID,
		Attacker:     string(a.Attacker),
		CardID:       int(a.CardID),
		Batteries:    a.Batteries,
		Damage:       a.Damage,
		Turn:         a.Turn,
		DefenderLife: a.DefenderLife,
		ResolvedAt:   a.ResolvedAt,
	}
}

// Session represents a game session in API responses
type Session struct {
	ID        uint64         `json:"id"`
	State     string         `json:"state"`
	Owner     *SessionPlayer `json:"owner"`
	Joiner    *SessionPlayer `json:"joiner,omitempty"`
	TurnOwner string         `json:"turn_owner,omitempty"`
	Turn      int            `json:"turn"`
	Winner    *string        `json:"winner,omitempty"`
	Attacks   []Attack       `json:"attacks"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s *model.Session) Session {
	attacks := make([]Attack, len(s.Attacks))
	for i, a := range s.Attacks {
		attacks[i] = AttackFromModel(a)
	}

	var winner *string
	if s.Winner != "" {
		w := string(s.Winner)
		winner = &w
	}

	return Session{
		ID:        uint64(s.ID),
		State:     string(s.State),
		Owner:     SessionPlayerFromModel(&s.Owner),
		Joiner:    SessionPlayerFromModel(&s.Joiner),
		TurnOwner: string(s.TurnOwner),
		Turn:      s.Turn,
		Winner:    winner,
		Attacks:   attacks,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Event represents a session event in API responses
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	SessionID uint64    `json:"session_id"`
	PlayerID  string    `json:"player_id,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

// EventFromModel converts model.Event
func EventFromModel(e model.Event) Event {
	return Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		SessionID: uint64(e.SessionID),
		PlayerID:  string(e.PlayerID),
		Payload:   e.Payload,
	}
}
