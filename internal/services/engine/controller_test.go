package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/starkrivals/starkrivals/internal/dependencies/mocks"
	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/combat"
	"github.com/starkrivals/starkrivals/internal/storage/memory"
	"github.com/starkrivals/starkrivals/internal/testutil"
)

// recordingSink captures published events for assertions
type recordingSink struct {
	events []model.Event
}

func (r *recordingSink) Publish(event model.Event) {
	r.events = append(r.events, event)
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	sink       *recordingSink
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.sink = &recordingSink{}
	s.controller = NewController(s.storage, combat.DefaultPolicy(), s.clock, testutil.NopLogger())
	s.controller.SetEventSink(s.sink)
	s.ctx = context.Background()
}

// saveHand persists a hand of 6 cards with uniform stats for the player
func (s *ControllerSuite) saveHand(playerID model.PlayerID, firstID, lasers, rockets int) []model.CardID {
	cards := make([]model.Card, 6)
	ids := make([]model.CardID, 6)
	for i := range cards {
		cards[i] = model.Card{
			ID:      model.CardID(firstID + i),
			Lasers:  lasers,
			Rockets: rockets,
		}
		ids[i] = cards[i].ID
	}
	s.Require().NoError(s.storage.SaveHand(s.ctx, &model.Hand{
		PlayerID: playerID,
		Cards:    cards,
	}))
	return ids
}

// startedSession creates and joins a session, returning its id.
// Owner's cards are 1..6 with lasers=5 rockets=3; joiner's are 7..12.
func (s *ControllerSuite) startedSession() model.SessionID {
	ownerIDs := s.saveHand("owner", 1, 5, 3)
	joinerIDs := s.saveHand("joiner", 7, 4, 2)

	session, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)
	_, err = s.controller.JoinSession(s.ctx, session.ID, "joiner", joinerIDs)
	s.Require().NoError(err)
	return session.ID
}

// CreateSession tests

func (s *ControllerSuite) TestCreateSessionSucceeds() {
	ids := s.saveHand("owner", 1, 5, 3)

	session, err := s.controller.CreateSession(s.ctx, "owner", ids)
	s.Require().NoError(err)

	s.Equal(model.SessionID(0), session.ID)
	s.Equal(model.SessionStateAwaitingOpponent, session.State)
	s.Equal(model.PlayerID("owner"), session.Owner.ID)
	s.Len(session.Owner.Cards, 6)
	s.Equal(combat.DefaultLifePoints, session.Owner.LifePoints)
	s.Equal(combat.DefaultBatteries, session.Owner.Batteries)
	s.Empty(session.TurnOwner)
	s.Equal(0, session.Turn)
}

func (s *ControllerSuite) TestCreateSessionIDsStartAtZeroAndIncrement() {
	ids := s.saveHand("owner", 1, 5, 3)

	for i := 0; i < 3; i++ {
		session, err := s.controller.CreateSession(s.ctx, "owner", ids)
		s.Require().NoError(err)
		s.Equal(model.SessionID(i), session.ID)
	}
}

func (s *ControllerSuite) TestCreateSessionEmitsNewGameSessionEvent() {
	ids := s.saveHand("owner", 1, 5, 3)

	session, err := s.controller.CreateSession(s.ctx, "owner", ids)
	s.Require().NoError(err)

	s.Require().Len(s.sink.events, 1)
	event := s.sink.events[0]
	s.Equal(model.EventNewGameSession, event.Type)
	s.Equal(session.ID, event.SessionID)

	payload, ok := event.Payload.(model.NewGameSessionPayload)
	s.Require().True(ok)
	s.Equal(model.SessionID(0), payload.SessionID)
	s.Equal(model.PlayerID("owner"), payload.OwnerID)
	s.Equal(ids, payload.CardIDs)
}

func (s *ControllerSuite) TestCreateSessionIsPersisted() {
	ids := s.saveHand("owner", 1, 5, 3)

	session, err := s.controller.CreateSession(s.ctx, "owner", ids)
	s.Require().NoError(err)

	retrieved, err := s.controller.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(model.SessionStateAwaitingOpponent, retrieved.State)
}

func (s *ControllerSuite) TestCreateSessionFailsWithEmptySelection() {
	s.saveHand("owner", 1, 5, 3)

	_, err := s.controller.CreateSession(s.ctx, "owner", nil)
	s.ErrorIs(err, model.ErrEmptyCardSelection)
}

func (s *ControllerSuite) TestCreateSessionFailsWithDuplicateCards() {
	s.saveHand("owner", 1, 5, 3)

	_, err := s.controller.CreateSession(s.ctx, "owner", []model.CardID{1, 2, 2})
	s.ErrorIs(err, model.ErrDuplicateCard)
}

func (s *ControllerSuite) TestCreateSessionFailsWithUnknownCard() {
	s.saveHand("owner", 1, 5, 3)

	_, err := s.controller.CreateSession(s.ctx, "owner", []model.CardID{1, 2, 99})
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *ControllerSuite) TestCreateSessionFailsWithoutDealtHand() {
	_, err := s.controller.CreateSession(s.ctx, "owner", []model.CardID{1})
	s.ErrorIs(err, model.ErrHandNotFound)
}

// JoinSession tests

func (s *ControllerSuite) TestJoinSessionStartsPlayWithOwnerFirst() {
	ownerIDs := s.saveHand("owner", 1, 5, 3)
	joinerIDs := s.saveHand("joiner", 7, 4, 2)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)

	session, err := s.controller.JoinSession(s.ctx, created.ID, "joiner", joinerIDs)
	s.Require().NoError(err)

	s.Equal(model.SessionStateInProgress, session.State)
	s.Equal(model.PlayerID("owner"), session.TurnOwner)
	s.Equal(model.PlayerID("joiner"), session.Joiner.ID)
	s.Equal(combat.DefaultLifePoints, session.Joiner.LifePoints)
	s.Equal(combat.DefaultBatteries, session.Joiner.Batteries)
}

func (s *ControllerSuite) TestJoinSessionRejectsSelfJoin() {
	ownerIDs := s.saveHand("owner", 1, 5, 3)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)

	_, err = s.controller.JoinSession(s.ctx, created.ID, "owner", ownerIDs)
	s.ErrorIs(err, model.ErrSelfJoin)
}

func (s *ControllerSuite) TestJoinSessionRejectsAlreadyJoined() {
	id := s.startedSession()
	thirdIDs := s.saveHand("third", 13, 2, 2)

	_, err := s.controller.JoinSession(s.ctx, id, "third", thirdIDs)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestJoinSessionFailsForUnknownSession() {
	joinerIDs := s.saveHand("joiner", 7, 4, 2)

	_, err := s.controller.JoinSession(s.ctx, 42, "joiner", joinerIDs)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestJoinSessionEmitsSessionJoinedEvent() {
	id := s.startedSession()

	events, err := s.controller.Events(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(model.EventSessionJoined, events[1].Type)

	payload, ok := events[1].Payload.(model.SessionJoinedPayload)
	s.Require().True(ok)
	s.Equal(model.PlayerID("joiner"), payload.JoinerID)
	s.Equal(model.PlayerID("owner"), payload.TurnOwner)
}

// PlayCard tests

func (s *ControllerSuite) TestPlayCardResolvesAttack() {
	id := s.startedSession()

	// damage = (5 + 3) * 4 / 4 = 8
	attack, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 4, 0)
	s.Require().NoError(err)

	s.Equal(model.PlayerID("owner"), attack.Attacker)
	s.Equal(model.CardID(1), attack.CardID)
	s.Equal(4, attack.Batteries)
	s.Equal(8, attack.Damage)
	s.Equal(0, attack.Turn)
	s.Equal(2, attack.DefenderLife)
	s.NotEmpty(attack.ID)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(2, session.Joiner.LifePoints)
	s.Equal(6, session.Owner.Batteries)
	s.Equal(model.PlayerID("joiner"), session.TurnOwner)
	s.Equal(1, session.Turn)
	s.Require().Len(session.Attacks, 1)

	card := session.Owner.CardByID(1)
	s.Require().NotNil(card)
	s.Require().NotNil(card.PlayedTurn)
	s.Equal(0, *card.PlayedTurn)
}

func (s *ControllerSuite) TestPlayCardZeroBatteriesIsLegalNoDamagePlay() {
	id := s.startedSession()

	attack, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 0, 0)
	s.Require().NoError(err)
	s.Equal(0, attack.Damage)
	s.Equal(10, attack.DefenderLife)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(10, session.Owner.Batteries)
	s.Equal(model.PlayerID("joiner"), session.TurnOwner)
}

func (s *ControllerSuite) TestPlayCardRejectsWrongTurnOwner() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "joiner", 7, 1, 0)
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestPlayCardRejectsNonParticipant() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "stranger", 1, 1, 0)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestPlayCardRejectsStaleTurnIndex() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 1, 0)
	s.Require().NoError(err)
	_, err = s.controller.PlayCard(s.ctx, id, "joiner", 7, 1, 1)
	s.Require().NoError(err)

	// A resubmission of the owner's turn-0 play targets a consumed turn
	_, err = s.controller.PlayCard(s.ctx, id, "owner", 2, 1, 0)
	s.ErrorIs(err, model.ErrStaleTurn)
}

func (s *ControllerSuite) TestPlayCardImmediateResubmissionReportsConsumedTurn() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 4, 0)
	s.Require().NoError(err)

	// The same player sending the same turn again must hit the
	// double-submission guard, not a turn ownership error
	_, err = s.controller.PlayCard(s.ctx, id, "owner", 1, 4, 0)
	s.ErrorIs(err, model.ErrStaleTurn)
	s.NotErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestPlayCardRejectsReplayedCard() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 1, 0)
	s.Require().NoError(err)
	_, err = s.controller.PlayCard(s.ctx, id, "joiner", 7, 1, 1)
	s.Require().NoError(err)

	_, err = s.controller.PlayCard(s.ctx, id, "owner", 1, 1, 2)
	s.ErrorIs(err, model.ErrCardAlreadyPlayed)
}

func (s *ControllerSuite) TestPlayCardRejectsUnknownCard() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 99, 1, 0)
	s.ErrorIs(err, model.ErrCardNotFound)
}

func (s *ControllerSuite) TestPlayCardRejectsNegativeBatteries() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, -1, 0)
	s.ErrorIs(err, model.ErrNegativeBatteries)
}

func (s *ControllerSuite) TestPlayCardRejectsOverBudgetBatteriesAndLeavesStateUnchanged() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 11, 0)
	s.ErrorIs(err, model.ErrInsufficientBatteries)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(10, session.Owner.Batteries)
	s.Equal(10, session.Joiner.LifePoints)
	s.Equal(model.PlayerID("owner"), session.TurnOwner)
	s.Equal(0, session.Turn)
	s.Empty(session.Attacks)
	s.Nil(session.Owner.CardByID(1).PlayedTurn)
}

func (s *ControllerSuite) TestPlayCardRejectedIntentLeavesBalancesIntact() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 4, 0)
	s.Require().NoError(err)

	// Joiner tries to replay the consumed turn; nothing moves
	_, err = s.controller.PlayCard(s.ctx, id, "joiner", 7, 2, 0)
	s.ErrorIs(err, model.ErrStaleTurn)

	session, err := s.controller.GetSession(s.ctx, id)
	s.Require().NoError(err)
	s.Equal(10, session.Joiner.Batteries)
	s.Equal(10, session.Owner.LifePoints)
	s.Len(session.Attacks, 1)
}

func (s *ControllerSuite) TestPlayCardRejectsBeforeJoin() {
	ownerIDs := s.saveHand("owner", 1, 5, 3)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)

	_, err = s.controller.PlayCard(s.ctx, created.ID, "owner", 1, 1, 0)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestPlayCardClampsLifeAtZeroAndFinishes() {
	// Owner cards hit for (9+9)*10/4 = 45, far past the joiner's 10 life
	ownerIDs := s.saveHand("owner", 1, 9, 9)
	joinerIDs := s.saveHand("joiner", 7, 2, 2)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)
	_, err = s.controller.JoinSession(s.ctx, created.ID, "joiner", joinerIDs)
	s.Require().NoError(err)

	attack, err := s.controller.PlayCard(s.ctx, created.ID, "owner", 1, 10, 0)
	s.Require().NoError(err)
	s.Equal(0, attack.DefenderLife)

	session, err := s.controller.GetSession(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(0, session.Joiner.LifePoints)
	s.Equal(model.SessionStateFinished, session.State)
	s.Equal(model.PlayerID("owner"), session.Winner)
}

func (s *ControllerSuite) TestFinishedSessionRejectsFurtherPlays() {
	ownerIDs := s.saveHand("owner", 1, 9, 9)
	joinerIDs := s.saveHand("joiner", 7, 2, 2)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)
	_, err = s.controller.JoinSession(s.ctx, created.ID, "joiner", joinerIDs)
	s.Require().NoError(err)
	_, err = s.controller.PlayCard(s.ctx, created.ID, "owner", 1, 10, 0)
	s.Require().NoError(err)

	_, err = s.controller.PlayCard(s.ctx, created.ID, "joiner", 7, 1, 1)
	s.ErrorIs(err, model.ErrInvalidState)
}

func (s *ControllerSuite) TestPlayCardEmitsAttackResolvedEvent() {
	id := s.startedSession()

	_, err := s.controller.PlayCard(s.ctx, id, "owner", 1, 4, 0)
	s.Require().NoError(err)

	events, err := s.controller.Events(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal(model.EventAttackResolved, events[2].Type)

	payload, ok := events[2].Payload.(model.AttackResolvedPayload)
	s.Require().True(ok)
	s.Equal(8, payload.Damage)
	s.Equal(2, payload.DefenderLife)
	s.Equal(model.PlayerID("joiner"), payload.NextTurn)
}

func (s *ControllerSuite) TestFinishingPlayEmitsSessionFinishedEvent() {
	ownerIDs := s.saveHand("owner", 1, 9, 9)
	joinerIDs := s.saveHand("joiner", 7, 2, 2)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)
	_, err = s.controller.JoinSession(s.ctx, created.ID, "joiner", joinerIDs)
	s.Require().NoError(err)
	_, err = s.controller.PlayCard(s.ctx, created.ID, "owner", 1, 10, 0)
	s.Require().NoError(err)

	events, err := s.controller.Events(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 4)
	s.Equal(model.EventAttackResolved, events[2].Type)
	s.Equal(model.EventSessionFinished, events[3].Type)

	payload, ok := events[3].Payload.(model.SessionFinishedPayload)
	s.Require().True(ok)
	s.Equal(model.PlayerID("owner"), payload.Winner)
	s.Equal(model.PlayerID("joiner"), payload.Loser)
}

func (s *ControllerSuite) TestEventsFailsForUnknownSession() {
	_, err := s.controller.Events(s.ctx, 42)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ControllerSuite) TestDamageFloorsFractionalResults() {
	// (3 + 2) * 3 / 4 = 3.75 -> 3
	ownerIDs := s.saveHand("owner", 1, 3, 2)
	joinerIDs := s.saveHand("joiner", 7, 2, 2)

	created, err := s.controller.CreateSession(s.ctx, "owner", ownerIDs)
	s.Require().NoError(err)
	_, err = s.controller.JoinSession(s.ctx, created.ID, "joiner", joinerIDs)
	s.Require().NoError(err)

	attack, err := s.controller.PlayCard(s.ctx, created.ID, "owner", 1, 3, 0)
	s.Require().NoError(err)
	s.Equal(3, attack.Damage)
}
