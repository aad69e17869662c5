package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/starkrivals/starkrivals/internal/api/middleware"
	"github.com/starkrivals/starkrivals/internal/api/request"
	"github.com/starkrivals/starkrivals/internal/api/response"
	"github.com/starkrivals/starkrivals/internal/api/sse"
	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/engine"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	engineController engine.ControllerInterface
	hubManager       *sse.HubManager
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(engineController engine.ControllerInterface, hubManager *sse.HubManager) *SessionHandler {
	return &SessionHandler{
		engineController: engineController,
		hubManager:       hubManager,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.engineController.CreateSession(r.Context(), player.ID, toCardIDs(req.CardIDs))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.engineController.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.engineController.JoinSession(r.Context(), id, player.ID, toCardIDs(req.CardIDs))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Attack handles POST /api/v1/sessions/{id}/attacks
func (h *SessionHandler) Attack(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.AttackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	attack, err := h.engineController.PlayCard(r.Context(), id, player.ID, model.CardID(req.CardID), req.Batteries, req.Turn)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AttackFromModel(*attack))
}

// Events handles GET /api/v1/sessions/{id}/events
// Returns the full event log for a session
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	events, err := h.engineController.Events(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Event, len(events))
	for i, e := range events {
		out[i] = response.EventFromModel(e)
	}
	response.JSON(w, http.StatusOK, out)
}

// Stream handles GET /api/v1/sessions/{id}/stream
// Streams live session events over SSE
func (h *SessionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	id, err := sessionID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Session must exist before a hub is handed out
	if _, err := h.engineController.GetSession(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(id)
	sse.ServeSSE(w, r, hub, player.ID)
}

// sessionID parses the session id path variable
func sessionID(r *http.Request) (model.SessionID, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, NewInvalidRequestError("invalid session id")
	}
	return model.SessionID(id), nil
}

// toCardIDs converts request card ids to model card ids
func toCardIDs(ids []int) []model.CardID {
	out := make([]model.CardID, len(ids))
	for i, id := range ids {
		out[i] = model.CardID(id)
	}
	return out
}
