package handler

import (
	"net/http"

	"github.com/starkrivals/starkrivals/internal/api/middleware"
	"github.com/starkrivals/starkrivals/internal/api/response"
	"github.com/starkrivals/starkrivals/internal/services/dealer"
)

// HandHandler handles hand-related endpoints
type HandHandler struct {
	dealerService *dealer.Service
}

// NewHandHandler creates a new hand handler
func NewHandHandler(dealerService *dealer.Service) *HandHandler {
	return &HandHandler{
		dealerService: dealerService,
	}
}

// Deal handles POST /api/v1/hand
// Dealing again replaces the player's current hand
func (h *HandHandler) Deal(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	hand, err := h.dealerService.Deal(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.HandFromModel(hand))
}

// Get handles GET /api/v1/hand
func (h *HandHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	hand, err := h.dealerService.GetHand(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HandFromModel(hand))
}
