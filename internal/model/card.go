package model

// CardID identifies a card within a player's hand
type CardID int

// Card is a battle card dealt into a hand. Stats are fixed at deal time;
// PlayedTurn is nil until the card is committed to an attack, then set once.
type Card struct {
	ID         CardID
	Lasers     int
	Rockets    int
	PlayedTurn *int
}

// IsPlayed returns true if the card has been committed to an attack
func (c *Card) IsPlayed() bool {
	return c.PlayedTurn != nil
}

// Hand is the ordered set of cards dealt to one player.
// Order is display order only and carries no gameplay meaning.
type Hand struct {
	PlayerID PlayerID
	Cards    []Card
}

// CardByID returns a pointer to the card with the given id, or nil
func (h *Hand) CardByID(id CardID) *Card {
	for i := range h.Cards {
		if h.Cards[i].ID == id {
			return &h.Cards[i]
		}
	}
	return nil
}

// Contains reports whether every given id references a card in the hand
func (h *Hand) Contains(ids []CardID) bool {
	for _, id := range ids {
		if h.CardByID(id) == nil {
			return false
		}
	}
	return true
}
