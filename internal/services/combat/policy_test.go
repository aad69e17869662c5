package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/starkrivals/starkrivals/internal/model"
)

func TestDamageScalesWithBatteries(t *testing.T) {
	policy := DefaultPolicy()
	card := &model.Card{ID: 1, Lasers: 5, Rockets: 3}

	assert.Equal(t, 0, policy.Damage(card, 0))
	assert.Equal(t, 2, policy.Damage(card, 1))
	assert.Equal(t, 8, policy.Damage(card, 4))
	assert.Equal(t, 20, policy.Damage(card, 10))
}

func TestDamageFloorsFractions(t *testing.T) {
	policy := DefaultPolicy()
	card := &model.Card{ID: 1, Lasers: 3, Rockets: 2}

	// (3 + 2) * 3 / 4 = 3.75
	assert.Equal(t, 3, policy.Damage(card, 3))
}

func TestDamageHonorsCustomScaling(t *testing.T) {
	policy := Policy{BatteryScaling: 2}
	card := &model.Card{ID: 1, Lasers: 4, Rockets: 4}

	assert.Equal(t, 12, policy.Damage(card, 3))
}

func TestDamageFallsBackToDefaultScaling(t *testing.T) {
	policy := Policy{}
	card := &model.Card{ID: 1, Lasers: 5, Rockets: 3}

	assert.Equal(t, 8, policy.Damage(card, 4))
}
