package dealer

import (
	"context"
	"log/slog"

	"github.com/starkrivals/starkrivals/internal/dependencies/random"
	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/storage"
)

const (
	// HandSize is the number of cards dealt to a player
	HandSize = 6
	// Stat range for rolled cards
	minStat = 2
	maxStat = 7
)

// Service deals hands of battle cards to players
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new dealer service
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// Deal rolls a fresh hand for the player and persists it as their current
// hand, replacing any previous one. Card ids are 1-based within the hand.
func (s *Service) Deal(ctx context.Context, playerID model.PlayerID) (*model.Hand, error) {
	cards := make([]model.Card, HandSize)
	for i := range cards {
		cards[i] = model.Card{
			ID:      model.CardID(i + 1),
			Lasers:  s.random.IntnRange(minStat, maxStat),
			Rockets: s.random.IntnRange(minStat, maxStat),
		}
	}

	hand := &model.Hand{
		PlayerID: playerID,
		Cards:    cards,
	}

	if err := s.storage.SaveHand(ctx, hand); err != nil {
		return nil, err
	}

	s.logger.Info("hand dealt",
		slog.String("player_id", string(playerID)),
		slog.Int("cards", len(cards)),
	)

	return hand, nil
}

// GetHand retrieves the player's current hand
func (s *Service) GetHand(ctx context.Context, playerID model.PlayerID) (*model.Hand, error) {
	return s.storage.GetHand(ctx, playerID)
}
