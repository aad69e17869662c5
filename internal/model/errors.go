package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Hand errors
	ErrHandNotFound = errors.New("hand not dealt")

	// Session errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidState          = errors.New("session is not in a valid state for this action")
	ErrSelfJoin              = errors.New("joiner must differ from session owner")
	ErrNotYourTurn           = errors.New("not this player's turn")
	ErrStaleTurn             = errors.New("turn already consumed")
	ErrCardNotFound          = errors.New("card not found")
	ErrCardAlreadyPlayed     = errors.New("card has already been played")
	ErrInsufficientBatteries = errors.New("battery commitment exceeds balance")
	ErrNegativeBatteries     = errors.New("battery commitment must not be negative")
	ErrEmptyCardSelection    = errors.New("card selection must not be empty")
	ErrDuplicateCard         = errors.New("card selection contains duplicates")

	// Client view errors
	ErrNoSelection    = errors.New("no card selected")
	ErrSubmitInFlight = errors.New("a play submission is already outstanding")
)
