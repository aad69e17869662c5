package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Hand:
		o.printHand(v)
	case Session:
		o.printSession(v)
	case Attack:
		o.printAttack(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player Player `json:"player"`
	Token  string `json:"token"`
}

// Card response type
type Card struct {
	ID         int  `json:"id"`
	Lasers     int  `json:"lasers"`
	Rockets    int  `json:"rockets"`
	PlayedTurn *int `json:"played_turn,omitempty"`
}

// Hand response type
type Hand struct {
	PlayerID string `json:"player_id"`
	Cards    []Card `json:"cards"`
}

// SessionPlayer response type
type SessionPlayer struct {
	PlayerID   string `json:"player_id"`
	Cards      []Card `json:"cards"`
	LifePoints int    `json:"life_points"`
	Batteries  int    `json:"batteries"`
}

// Attack response type
type Attack struct {
	ID           string `json:"id"`
	Attacker     string `json:"attacker"`
	CardID       int    `json:"card_id"`
	Batteries    int    `json:"batteries"`
	Damage       int    `json:"damage"`
	Turn         int    `json:"turn"`
	DefenderLife int    `json:"defender_life"`
}

// Session response type
type Session struct {
	ID        uint64         `json:"id"`
	State     string         `json:"state"`
	Owner     *SessionPlayer `json:"owner"`
	Joiner    *SessionPlayer `json:"joiner,omitempty"`
	TurnOwner string         `json:"turn_owner,omitempty"`
	Turn      int            `json:"turn"`
	Winner    *string        `json:"winner,omitempty"`
	Attacks   []Attack       `json:"attacks"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printHand(h Hand) {
	fmt.Printf("Hand for %s (%d cards):\n", h.PlayerID, len(h.Cards))
	o.printCards(h.Cards)
}

func (o *Output) printCards(cards []Card) {
	for _, c := range cards {
		playedStr := ""
		if c.PlayedTurn != nil {
			playedStr = fmt.Sprintf(" [played turn %d]", *c.PlayedTurn)
		}
		fmt.Printf("  #%d  lasers=%d rockets=%d%s\n", c.ID, c.Lasers, c.Rockets, playedStr)
	}
}

func (o *Output) printSessionPlayer(label string, p *SessionPlayer) {
	if p == nil {
		fmt.Printf("%s: (waiting)\n", label)
		return
	}
	fmt.Printf("%s: %s  life=%d batteries=%d\n", label, p.PlayerID, p.LifePoints, p.Batteries)
	o.printCards(p.Cards)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %d\n", s.ID)
	fmt.Printf("State: %s\n", s.State)
	fmt.Printf("Turn: %d\n", s.Turn)
	if s.TurnOwner != "" {
		fmt.Printf("Turn Owner: %s\n", s.TurnOwner)
	}
	o.printSessionPlayer("Owner", s.Owner)
	o.printSessionPlayer("Joiner", s.Joiner)

	if len(s.Attacks) > 0 {
		fmt.Printf("Attacks (%d):\n", len(s.Attacks))
		for _, a := range s.Attacks {
			fmt.Printf("  turn %d: %s played #%d with %d batteries for %d damage (defender life %d)\n",
				a.Turn, a.Attacker, a.CardID, a.Batteries, a.Damage, a.DefenderLife)
		}
	}

	if s.Winner != nil {
		fmt.Printf("Winner: %s\n", *s.Winner)
	}
}

func (o *Output) printAttack(a Attack) {
	fmt.Printf("Attack resolved on turn %d\n", a.Turn)
	fmt.Printf("Card: #%d with %d batteries\n", a.CardID, a.Batteries)
	fmt.Printf("Damage: %d\n", a.Damage)
	fmt.Printf("Defender life: %d\n", a.DefenderLife)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
