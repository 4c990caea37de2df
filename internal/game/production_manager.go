package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ProductionManager owns the village treasury: daily income and the cost of
// construction
type ProductionManager struct {
	gold        int
	dailyIncome int
	logger      zerolog.Logger
}

// NewProductionManager creates a treasury holding startingGold
func NewProductionManager(startingGold, dailyIncome int, logger zerolog.Logger) *ProductionManager {
	return &ProductionManager{
		gold:        startingGold,
		dailyIncome: dailyIncome,
		logger:      logger.With().Str("component", "production").Logger(),
	}
}

// Gold returns the current balance
func (pm *ProductionManager) Gold() int {
	return pm.gold
}

// Reset sets the balance back to gold
func (pm *ProductionManager) Reset(gold int) {
	pm.gold = gold
}

// CollectIncome pays the daily income and returns the new balance
func (pm *ProductionManager) CollectIncome(day int) int {
	pm.gold += pm.dailyIncome
	pm.logger.Debug().
		Int("day", day).
		Int("income", pm.dailyIncome).
		Int("gold", pm.gold).
		Msg("Daily income collected")
	return pm.gold
}

// Spend deducts cost, or fails without touching the balance
func (pm *ProductionManager) Spend(cost int) error {
	if cost > pm.gold {
		return fmt.Errorf("cost %d, have %d: %w", cost, pm.gold, ErrInsufficientGold)
	}
	pm.gold -= cost
	return nil
}
