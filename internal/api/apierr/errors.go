package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/starkrivals/starkrivals/internal/model"
	"github.com/starkrivals/starkrivals/internal/services/identity"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeHandNotFound          = "HAND_NOT_FOUND"
	CodeSessionNotFound       = "SESSION_NOT_FOUND"
	CodeCardNotFound          = "CARD_NOT_FOUND"
	CodeInvalidState          = "INVALID_STATE"
	CodeSelfJoin              = "SELF_JOIN"
	CodeNotYourTurn           = "NOT_YOUR_TURN"
	CodeStaleTurn             = "TURN_CONSUMED"
	CodeCardAlreadyPlayed     = "CARD_ALREADY_PLAYED"
	CodeInsufficientBatteries = "INSUFFICIENT_BATTERIES"
	CodeInvalidCardSelection  = "INVALID_CARD_SELECTION"
	CodeUsernameExists        = "USERNAME_EXISTS"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrHandNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeHandNotFound, "Hand has not been dealt"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "Card not found"}}
	case errors.Is(err, model.ErrInvalidState):
		return &httpError{http.StatusConflict, APIError{CodeInvalidState, "Session is not in a valid state for this action"}}
	case errors.Is(err, model.ErrSelfJoin):
		return &httpError{http.StatusConflict, APIError{CodeSelfJoin, "Cannot join your own session"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrStaleTurn):
		return &httpError{http.StatusConflict, APIError{CodeStaleTurn, "Turn has already been consumed"}}
	case errors.Is(err, model.ErrCardAlreadyPlayed):
		return &httpError{http.StatusConflict, APIError{CodeCardAlreadyPlayed, "Card has already been played"}}
	case errors.Is(err, model.ErrInsufficientBatteries):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientBatteries, "Battery commitment exceeds balance"}}
	case errors.Is(err, model.ErrNegativeBatteries):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Battery commitment must not be negative"}}
	case errors.Is(err, model.ErrEmptyCardSelection):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCardSelection, "Card selection must not be empty"}}
	case errors.Is(err, model.ErrDuplicateCard):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCardSelection, "Card selection contains duplicates"}}

	// Map identity errors
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, identity.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, identity.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
