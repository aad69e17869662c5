package clientview

import "github.com/starkrivals/starkrivals/internal/model"

// Action is a tagged selection intent consumed by Reduce
type Action interface {
	isAction()
}

// SelectCard sets the pending selection to the given card id
type SelectCard struct {
	CardID model.CardID
}

// ClearSelection drops any pending selection
type ClearSelection struct{}

func (SelectCard) isAction()     {}
func (ClearSelection) isAction() {}

// Selection is the player's in-progress pick, local only, never sent to
// the engine except as an explicit play intent
type Selection struct {
	CardID model.CardID
	Active bool
}

// Reduce is the pure transition function over selection state. Selecting
// an already-selected card or clearing an empty selection is a no-op.
func Reduce(sel Selection, action Action) Selection {
	switch a := action.(type) {
	case SelectCard:
		return Selection{CardID: a.CardID, Active: true}
	case ClearSelection:
		return Selection{}
	}
	return sel
}
