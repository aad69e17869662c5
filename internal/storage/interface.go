package storage

import (
	"context"

	"github.com/starkrivals/starkrivals/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Hand operations
	SaveHand(ctx context.Context, hand *model.Hand) error
	GetHand(ctx context.Context, playerID model.PlayerID) (*model.Hand, error)

	// Session operations
	// NextSessionID allocates the next monotonic session id; the first
	// allocation in a fresh store returns 0.
	NextSessionID(ctx context.Context) (model.SessionID, error)
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)

	// Event operations
	AppendEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, sessionID model.SessionID) ([]model.Event, error)
}
