package combat

import "github.com/starkrivals/starkrivals/internal/model"

const (
	// DefaultBatteryScaling divides the stat-weighted battery commitment
	// when computing damage
	DefaultBatteryScaling = 4
	// DefaultLifePoints is the starting life total for each player
	DefaultLifePoints = 10
	// DefaultBatteries is the fixed battery pool for each player.
	// Batteries do not replenish over the course of a session.
	DefaultBatteries = 10
)

// Policy computes attack damage from card stats and committed batteries.
// The formula is deliberately a value on the engine rather than a constant
// so the scaling rule can change without touching the state machine.
type Policy struct {
	BatteryScaling int
}

// DefaultPolicy returns the standard damage policy
func DefaultPolicy() Policy {
	return Policy{BatteryScaling: DefaultBatteryScaling}
}

// Damage returns the damage dealt when the given card attacks with the
// given battery commitment: (lasers + rockets) * batteries / scaling,
// rounded down. Zero batteries is a legal no-damage play.
func (p Policy) Damage(card *model.Card, batteries int) int {
	scaling := p.BatteryScaling
	if scaling <= 0 {
		scaling = DefaultBatteryScaling
	}
	return (card.Lasers + card.Rockets) * batteries / scaling
}
