package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/starkrivals/starkrivals/internal/dependencies/clock"
	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/combat"
	"github.com/starkrivals/starkrivals/internal/storage"
)

// EventSink receives session lifecycle events as they are committed.
// Implementations must not block; the engine calls it synchronously.
type EventSink interface {
	Publish(event model.Event)
}

// Controller is the authoritative owner of session state. All transitions
// validate fully against stored state before any mutation, so a rejected
// intent leaves the session untouched.
type Controller struct {
	storage storage.Storage
	policy  combat.Policy
	clock   clock.Clock
	logger  *slog.Logger
	sink    EventSink // optional

	// Mutations for a session id run one at a time. The turn check alone
	// cannot reject two near-simultaneous submissions from the same turn
	// owner racing the load-validate-save cycle.
	locksMu sync.Mutex
	locks   map[model.SessionID]*sync.Mutex
}

// NewController creates a new session engine controller
func NewController(
	storage storage.Storage,
	policy combat.Policy,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		policy:  policy,
		clock:   clock,
		logger:  logger,
		locks:   make(map[model.SessionID]*sync.Mutex),
	}
}

// lockSession returns the mutex serializing mutations of one session
func (c *Controller) lockSession(id model.SessionID) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()

	lock, ok := c.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[id] = lock
	}
	return lock
}

// SetEventSink attaches a sink for committed lifecycle events.
// Must be called before the controller handles intents.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// CreateSession opens a new session owned by ownerID, committing the given
// cards from the owner's dealt hand. The returned session carries the next
// monotonic id; the first session in a fresh store has id 0.
func (c *Controller) CreateSession(ctx context.Context, ownerID model.PlayerID, cardIDs []model.CardID) (*model.Session, error) {
	cards, err := c.committedCards(ctx, ownerID, cardIDs)
	if err != nil {
		return nil, err
	}

	id, err := c.storage.NextSessionID(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:    id,
		State: model.SessionStateAwaitingOpponent,
		Owner: model.SessionPlayer{
			ID:         ownerID,
			Cards:      cards,
			LifePoints: combat.DefaultLifePoints,
			Batteries:  combat.DefaultBatteries,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.Uint64("session_id", uint64(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.emit(ctx, model.Event{
		Type:      model.EventNewGameSession,
		Timestamp: now,
		SessionID: id,
		PlayerID:  ownerID,
		Payload: model.NewGameSessionPayload{
			SessionID: id,
			OwnerID:   ownerID,
			CardIDs:   cardIDs,
		},
	})

	c.logger.Info("session created",
		slog.Uint64("session_id", uint64(id)),
		slog.String("owner_id", string(ownerID)),
		slog.Int("cards", len(cards)),
	)

	return session, nil
}

// JoinSession commits joinerID and their cards to an awaiting session and
// starts play. The owner takes the first turn.
func (c *Controller) JoinSession(ctx context.Context, id model.SessionID, joinerID model.PlayerID, cardIDs []model.CardID) (*model.Session, error) {
	lock := c.lockSession(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Owner.ID == joinerID {
		return nil, model.ErrSelfJoin
	}
	if session.State != model.SessionStateAwaitingOpponent {
		return nil, model.ErrInvalidState
	}

	cards, err := c.committedCards(ctx, joinerID, cardIDs)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session.Joiner = model.SessionPlayer{
		ID:         joinerID,
		Cards:      cards,
		LifePoints: combat.DefaultLifePoints,
		Batteries:  combat.DefaultBatteries,
	}
	session.State = model.SessionStateInProgress
	session.TurnOwner = session.Owner.ID
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.emit(ctx, model.Event{
		Type:      model.EventSessionJoined,
		Timestamp: now,
		SessionID: id,
		PlayerID:  joinerID,
		Payload: model.SessionJoinedPayload{
			SessionID: id,
			JoinerID:  joinerID,
			TurnOwner: session.TurnOwner,
		},
	})

	c.logger.Info("session joined",
		slog.Uint64("session_id", uint64(id)),
		slog.String("joiner_id", string(joinerID)),
	)

	return session, nil
}

// PlayCard resolves an attack: the turn owner commits an unplayed card and
// a battery amount, damage is applied to the defender, and turn ownership
// passes. turn must equal the session's current turn index, which rejects
// a duplicate submission for a turn that has already been consumed.
func (c *Controller) PlayCard(ctx context.Context, id model.SessionID, playerID model.PlayerID, cardID model.CardID, batteries int, turn int) (*model.Attack, error) {
	lock := c.lockSession(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.State != model.SessionStateInProgress {
		return nil, model.ErrInvalidState
	}

	attacker := session.Player(playerID)
	if attacker == nil {
		return nil, model.ErrPlayerNotFound
	}
	// Turn index before turn owner: a player resubmitting the turn they
	// just consumed must see the double-submission guard, not a turn
	// ownership complaint.
	if turn != session.Turn {
		return nil, model.ErrStaleTurn
	}
	if session.TurnOwner != playerID {
		return nil, model.ErrNotYourTurn
	}

	card := attacker.CardByID(cardID)
	if card == nil {
		return nil, model.ErrCardNotFound
	}
	if card.IsPlayed() {
		return nil, model.ErrCardAlreadyPlayed
	}

	if batteries < 0 {
		return nil, model.ErrNegativeBatteries
	}
	if batteries > attacker.Batteries {
		return nil, model.ErrInsufficientBatteries
	}

	// All validations passed; apply the transition.
	defender := session.Opponent(playerID)
	damage := c.policy.Damage(card, batteries)

	defender.LifePoints -= damage
	if defender.LifePoints < 0 {
		defender.LifePoints = 0
	}

	playedTurn := session.Turn
	card.PlayedTurn = &playedTurn
	attacker.Batteries -= batteries

	now := c.clock.Now()
	attack := model.Attack{
		ID:           uuid.NewString(),
		Attacker:     playerID,
		CardID:       cardID,
		Batteries:    batteries,
		Damage:       damage,
		Turn:         playedTurn,
		DefenderLife: defender.LifePoints,
		ResolvedAt:   now,
	}
	session.Attacks = append(session.Attacks, attack)

	session.Turn++
	session.TurnOwner = defender.ID
	session.UpdatedAt = now

	finished := defender.LifePoints == 0
	if finished {
		session.State = model.SessionStateFinished
		session.Winner = playerID
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.emit(ctx, model.Event{
		Type:      model.EventAttackResolved,
		Timestamp: now,
		SessionID: id,
		PlayerID:  playerID,
		Payload: model.AttackResolvedPayload{
			SessionID:    id,
			Attacker:     playerID,
			CardID:       cardID,
			Batteries:    batteries,
			Damage:       damage,
			DefenderLife: defender.LifePoints,
			NextTurn:     session.TurnOwner,
		},
	})

	if finished {
		c.emit(ctx, model.Event{
			Type:      model.EventSessionFinished,
			Timestamp: now,
			SessionID: id,
			PlayerID:  playerID,
			Payload: model.SessionFinishedPayload{
				SessionID: id,
				Winner:    playerID,
				Loser:     defender.ID,
			},
		})
		c.logger.Info("session finished",
			slog.Uint64("session_id", uint64(id)),
			slog.String("winner", string(playerID)),
		)
	}

	return &attack, nil
}

// GetSession retrieves a session snapshot by id
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// Events returns the session's lifecycle event log in append order
func (c *Controller) Events(ctx context.Context, id model.SessionID) ([]model.Event, error) {
	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return nil, err
	}
	return c.storage.GetEvents(ctx, id)
}

// committedCards validates a card-id selection against the player's dealt
// hand and returns fresh copies to snapshot into the session.
func (c *Controller) committedCards(ctx context.Context, playerID model.PlayerID, cardIDs []model.CardID) ([]model.Card, error) {
	if len(cardIDs) == 0 {
		return nil, model.ErrEmptyCardSelection
	}

	seen := make(map[model.CardID]bool, len(cardIDs))
	for _, id := range cardIDs {
		if seen[id] {
			return nil, model.ErrDuplicateCard
		}
		seen[id] = true
	}

	hand, err := c.storage.GetHand(ctx, playerID)
	if err != nil {
		return nil, err
	}

	cards := make([]model.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		card := hand.CardByID(id)
		if card == nil {
			return nil, model.ErrCardNotFound
		}
		cards = append(cards, model.Card{
			ID:      card.ID,
			Lasers:  card.Lasers,
			Rockets: card.Rockets,
		})
	}
	return cards, nil
}

// emit records the event in the session log and forwards it to the sink
func (c *Controller) emit(ctx context.Context, event model.Event) {
	if err := c.storage.AppendEvent(ctx, &event); err != nil {
		c.logger.Error("failed to append event",
			slog.Uint64("session_id", uint64(event.SessionID)),
			slog.String("type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
	if c.sink != nil {
		c.sink.Publish(event)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, ownerID model.PlayerID, cardIDs []model.CardID) (*model.Session, error)
	JoinSession(ctx context.Context, id model.SessionID, joinerID model.PlayerID, cardIDs []model.CardID) (*model.Session, error)
	PlayCard(ctx context.Context, id model.SessionID, playerID model.PlayerID, cardID model.CardID, batteries int, turn int) (*model.Attack, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	Events(ctx context.Context, id model.SessionID) ([]model.Event, error)
}

var _ ControllerInterface = (*Controller)(nil)
