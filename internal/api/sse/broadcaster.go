package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/engine"
)

// Broadcaster forwards committed engine events to the session's SSE hub.
// It implements engine.EventSink.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

var _ engine.EventSink = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends the event's payload to all clients watching the session.
// A new_game_session event also creates the hub so later watchers attach
// to an existing stream.
func (b *Broadcaster) Publish(event model.Event) {
	var hub *Hub
	if event.Type == model.EventNewGameSession {
		hub = b.hubManager.GetOrCreateHub(event.SessionID)
	} else {
		hub = b.hubManager.GetHub(event.SessionID)
	}
	if hub == nil {
		return
	}

	data, err := json.Marshal(event.Payload)
	if err != nil {
		b.logger.Error("sse failed to encode event payload",
			slog.Uint64("session_id", uint64(event.SessionID)),
			slog.String("type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
