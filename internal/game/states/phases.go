package states

import "fmt"

// GamePhase represents the current phase of the playing screen
type GamePhase int

const (
	// PhaseBuildingTurn - Daytime construction and economy
	PhaseBuildingTurn GamePhase = iota

	// PhaseDeployment - Dusk, player units are placed on the map
	PhaseDeployment

	// PhaseBattleTurn - Player units act
	PhaseBattleTurn

	// PhaseEnemyTurn - Enemy AI moves and attacks
	PhaseEnemyTurn

	// PhaseMerchant - Start-of-day interlude owned by the screen layer
	PhaseMerchant
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseBuildingTurn:
		return "BuildingTurn"
	case PhaseDeployment:
		return "Deployment"
	case PhaseBattleTurn:
		return "BattleTurn"
	case PhaseEnemyTurn:
		return "EnemyTurn"
	case PhaseMerchant:
		return "Merchant"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// AcceptsEndTurn returns true if the end-turn control is live in this phase
func (p GamePhase) AcceptsEndTurn() bool {
	return p == PhaseBuildingTurn || p == PhaseBattleTurn
}

// IsNight returns true for the phases that only happen after dusk
func (p GamePhase) IsNight() bool {
	return p == PhaseDeployment || p == PhaseBattleTurn || p == PhaseEnemyTurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseBuildingTurn:
		return []GamePhase{PhaseDeployment, PhaseMerchant}
	case PhaseDeployment:
		return []GamePhase{PhaseBattleTurn}
	case PhaseBattleTurn:
		return []GamePhase{PhaseEnemyTurn, PhaseMerchant}
	case PhaseEnemyTurn:
		return []GamePhase{PhaseBattleTurn, PhaseMerchant}
	case PhaseMerchant:
		return []GamePhase{PhaseBuildingTurn}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Deployment":
		return PhaseDeployment
	case "BattleTurn":
		return PhaseBattleTurn
	case "EnemyTurn":
		return PhaseEnemyTurn
	case "Merchant":
		return PhaseMerchant
	default:
		return PhaseBuildingTurn
	}
}
