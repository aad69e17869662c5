package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSessionRequest is the request body for creating a game session
type CreateSessionRequest struct {
	CardIDs []int `json:"card_ids"`
}

// JoinSessionRequest is the request body for joining a game session
type JoinSessionRequest struct {
	CardIDs []int `json:"card_ids"`
}

// AttackRequest is the request body for playing a card
type AttackRequest struct {
	CardID    int `json:"card_id"`
	Batteries int `json:"batteries"`
	Turn      int `json:"turn"`
}
