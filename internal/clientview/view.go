package clientview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/starkrivals/starkrivals/internal/model"
)

// Engine is the narrow slice of the session engine the view depends on:
// submit an intent, read a snapshot. The engine is the single authority;
// the view only mirrors confirmed state.
type Engine interface {
	PlayCard(ctx context.Context, id model.SessionID, playerID model.PlayerID, cardID model.CardID, batteries int, turn int) (*model.Attack, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
}

// Config holds view behavior settings
type Config struct {
	// SubmitTimeout bounds how long SubmitPlay waits for engine
	// confirmation. After the timeout the intent counts as
	// failed-unconfirmed and the selection is preserved for retry.
	SubmitTimeout time.Duration
}

// DefaultConfig returns default view configuration
func DefaultConfig() Config {
	return Config{
		SubmitTimeout: 10 * time.Second,
	}
}

// View is one player's local mirror of a session plus their in-progress
// card selection. The mirror updates only from confirmed engine output,
// never speculatively.
type View struct {
	engine    Engine
	sessionID model.SessionID
	playerID  model.PlayerID
	cfg       Config
	logger    *slog.Logger

	mu        sync.Mutex
	session   model.Session
	selection Selection
	inFlight  bool
}

// New creates a view for the given player and pulls the initial snapshot
func New(ctx context.Context, engine Engine, sessionID model.SessionID, playerID model.PlayerID, cfg Config, logger *slog.Logger) (*View, error) {
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = DefaultConfig().SubmitTimeout
	}

	v := &View{
		engine:    engine,
		sessionID: sessionID,
		playerID:  playerID,
		cfg:       cfg,
		logger:    logger,
	}

	if err := v.Refresh(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

// Refresh re-pulls the authoritative snapshot into the mirror
func (v *View) Refresh(ctx context.Context) error {
	session, err := v.engine.GetSession(ctx, v.sessionID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.session = cloneSession(session)
	v.mu.Unlock()
	return nil
}

// Select sets the pending selection to the given card id
func (v *View) Select(cardID model.CardID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection = Reduce(v.selection, SelectCard{CardID: cardID})
}

// Clear drops any pending selection
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selection = Reduce(v.selection, ClearSelection{})
}

// SelectedCard returns the selected card from this player's hand mirror,
// or nil if nothing is selected or the id is not in the hand
func (v *View) SelectedCard() *model.Card {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.selection.Active {
		return nil
	}
	player := v.session.Player(v.playerID)
	if player == nil {
		return nil
	}
	card := player.CardByID(v.selection.CardID)
	if card == nil {
		return nil
	}
	c := *card
	return &c
}

// ThisPlayer returns this player's side of the mirror
func (v *View) ThisPlayer() model.SessionPlayer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p := v.session.Player(v.playerID); p != nil {
		return clonePlayer(p)
	}
	return model.SessionPlayer{}
}

// OtherPlayer returns the opponent's side of the mirror
func (v *View) OtherPlayer() model.SessionPlayer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if p := v.session.Opponent(v.playerID); p != nil {
		return clonePlayer(p)
	}
	return model.SessionPlayer{}
}

// Session returns a copy of the mirrored session snapshot
func (v *View) Session() model.Session {
	v.mu.Lock()
	defer v.mu.Unlock()
	return cloneSessionValue(v.session)
}

// SubmitPlay forwards a play intent for the selected card to the engine.
// On success the selection clears and the mirror reconciles from the
// engine's confirmed state. On any failure the selection and mirror are
// untouched and the engine error is surfaced unchanged, so the action can
// be retried without re-selecting. A second SubmitPlay while one is
// outstanding is rejected.
func (v *View) SubmitPlay(ctx context.Context, batteries int) (*model.Attack, error) {
	v.mu.Lock()
	if !v.selection.Active {
		v.mu.Unlock()
		return nil, model.ErrNoSelection
	}
	if v.inFlight {
		v.mu.Unlock()
		return nil, model.ErrSubmitInFlight
	}
	v.inFlight = true
	cardID := v.selection.CardID
	turn := v.session.Turn
	v.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, v.cfg.SubmitTimeout)
	defer cancel()

	attack, err := v.engine.PlayCard(ctx, v.sessionID, v.playerID, cardID, batteries, turn)

	v.mu.Lock()
	v.inFlight = false
	if err != nil {
		v.mu.Unlock()
		return nil, err
	}
	v.selection = Reduce(v.selection, ClearSelection{})
	v.mu.Unlock()

	// Reconcile one-way from the engine's confirmed snapshot
	if err := v.Refresh(ctx); err != nil {
		v.logger.Warn("mirror refresh after play failed",
			slog.Uint64("session_id", uint64(v.sessionID)),
			slog.String("error", err.Error()),
		)
	}

	return attack, nil
}

// cloneSession deep-copies a session so the mirror never aliases engine
// state
func cloneSession(s *model.Session) model.Session {
	return cloneSessionValue(*s)
}

func cloneSessionValue(s model.Session) model.Session {
	out := s
	out.Owner = clonePlayer(&s.Owner)
	out.Joiner = clonePlayer(&s.Joiner)
	out.Attacks = make([]model.Attack, len(s.Attacks))
	copy(out.Attacks, s.Attacks)
	return out
}

func clonePlayer(p *model.SessionPlayer) model.SessionPlayer {
	out := *p
	out.Cards = make([]model.Card, len(p.Cards))
	for i, c := range p.Cards {
		out.Cards[i] = c
		if c.PlayedTurn != nil {
			turn := *c.PlayedTurn
			out.Cards[i].PlayedTurn = &turn
		}
	}
	return out
}
