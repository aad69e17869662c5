package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/starkrivals/starkrivals/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) savePlayer(id, name string) model.Player {
	player := model.Player{
		ID:          model.PlayerID(id),
		DisplayName: name,
		IsGuest:     true,
		CreatedAt:   s.app.MockClock.Now(),
	}
	s.Require().NoError(s.app.Storage.SavePlayer(s.ctx, &player))
	return player
}

func (s *IntegrationSuite) saveHand(playerID model.PlayerID, firstID int, lasers, rockets int) []model.CardID {
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
	s.Require().NoError(s.app.Storage.SaveHand(s.ctx, &model.Hand{
		PlayerID: playerID,
		Cards:    cards,
	}))
	return ids
}

// Test: Complete battle flow from session creation to a resolved attack
func (s *IntegrationSuite) TestCompleteBattleFlow() {
	owner := s.savePlayer("owner", "Owner Player")
	joiner := s.savePlayer("joiner", "Joiner Player")

	// Owner's cards hit for lasers=5, rockets=3
	ownerCards := s.saveHand(owner.ID, 1, 5, 3)
	joinerCards := s.saveHand(joiner.ID, 7, 4, 2)

	// Step 1: Owner opens a session; a fresh store allocates id 0
	session, err := s.app.EngineController.CreateSession(s.ctx, owner.ID, ownerCards)
	s.Require().NoError(err)
	s.Equal(model.SessionID(0), session.ID)
	s.Equal(model.SessionStateAwaitingOpponent, session.State)

	events, err := s.app.EngineController.Events(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(model.EventNewGameSession, events[0].Type)
	payload, ok := events[0].Payload.(model.NewGameSessionPayload)
	s.Require().True(ok)
	s.Equal(model.SessionID(0), payload.SessionID)

	// Step 2: Joiner commits their own cards
	session, err = s.app.EngineController.JoinSession(s.ctx, session.ID, joiner.ID, joinerCards)
	s.Require().NoError(err)
	s.Equal(model.SessionStateInProgress, session.State)
	s.Equal(owner.ID, session.TurnOwner)

	// Step 3: Owner attacks with card 1 committing 4 batteries
	// damage = (5 + 3) * 4 / 4 = 8
	attack, err := s.app.EngineController.PlayCard(s.ctx, session.ID, owner.ID, 1, 4, 0)
	s.Require().NoError(err)
	s.Equal(8, attack.Damage)
	s.Equal(2, attack.DefenderLife)

	session, err = s.app.EngineController.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(2, session.Joiner.LifePoints)
	s.Equal(6, session.Owner.Batteries)
	s.Require().NotNil(session.Owner.CardByID(1))
	s.Require().NotNil(session.Owner.CardByID(1).PlayedTurn)
	s.Equal(0, *session.Owner.CardByID(1).PlayedTurn)
	s.Equal(joiner.ID, session.TurnOwner)
	s.Equal(model.SessionStateInProgress, session.State)
}

// Test: a battle played to the end reaches a terminal state with a winner
func (s *IntegrationSuite) TestBattleToFinish() {
	owner := s.savePlayer("owner", "Owner Player")
	joiner := s.savePlayer("joiner", "Joiner Player")

	// Each owner attack lands (6+6)*2/4 = 6 damage; two attacks end it
	ownerCards := s.saveHand(owner.ID, 1, 6, 6)
	joinerCards := s.saveHand(joiner.ID, 7, 2, 2)

	session, err := s.app.EngineController.CreateSession(s.ctx, owner.ID, ownerCards)
	s.Require().NoError(err)
	_, err = s.app.EngineController.JoinSession(s.ctx, session.ID, joiner.ID, joinerCards)
	s.Require().NoError(err)

	_, err = s.app.EngineController.PlayCard(s.ctx, session.ID, owner.ID, 1, 2, 0)
	s.Require().NoError(err)
	_, err = s.app.EngineController.PlayCard(s.ctx, session.ID, joiner.ID, 7, 1, 1)
	s.Require().NoError(err)
	attack, err := s.app.EngineController.PlayCard(s.ctx, session.ID, owner.ID, 2, 2, 2)
	s.Require().NoError(err)
	s.Equal(0, attack.DefenderLife)

	session, err = s.app.EngineController.GetSession(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStateFinished, session.State)
	s.Equal(owner.ID, session.Winner)

	// No transitions out of the terminal state
	_, err = s.app.EngineController.PlayCard(s.ctx, session.ID, joiner.ID, 8, 1, 3)
	s.ErrorIs(err, model.ErrInvalidState)

	events, err := s.app.EngineController.Events(s.ctx, session.ID)
	s.Require().NoError(err)
	s.Equal(model.EventSessionFinished, events[len(events)-1].Type)
}

// Test: dealt hands flow into sessions through the dealer service
func (s *IntegrationSuite) TestDealtHandFlow() {
	owner := s.savePlayer("owner", "Owner Player")
	joiner := s.savePlayer("joiner", "Joiner Player")

	// Stat rolls: six cards, lasers then rockets per card
	s.app.MockRandom.QueueIntn(5, 3, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2)
	hand, err := s.app.DealerService.Deal(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Require().Len(hand.Cards, 6)
	s.Equal(5, hand.Cards[0].Lasers)
	s.Equal(3, hand.Cards[0].Rockets)

	ids := make([]model.CardID, len(hand.Cards))
	for i, c := range hand.Cards {
		ids[i] = c.ID
	}

	session, err := s.app.EngineController.CreateSession(s.ctx, owner.ID, ids)
	s.Require().NoError(err)

	joinerIDs := s.saveHand(joiner.ID, 7, 2, 2)
	_, err = s.app.EngineController.JoinSession(s.ctx, session.ID, joiner.ID, joinerIDs)
	s.Require().NoError(err)

	attack, err := s.app.EngineController.PlayCard(s.ctx, session.ID, owner.ID, 1, 4, 0)
	s.Require().NoError(err)
	s.Equal(8, attack.Damage)
}

// Test: session ids allocate sequentially across sessions
func (s *IntegrationSuite) TestSequentialSessionIDs() {
	owner := s.savePlayer("owner", "Owner Player")
	ownerCards := s.saveHand(owner.ID, 1, 3, 3)

	for i := 0; i < 3; i++ {
		session, err := s.app.EngineController.CreateSession(s.ctx, owner.ID, ownerCards)
		s.Require().NoError(err)
		s.Equal(model.SessionID(i), session.ID)
	}
}
