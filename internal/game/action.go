package game

// TileAction is what a tile press ended up doing
type TileAction int

const (
	ActionNone TileAction = iota
	ActionDeploy
	ActionRecall
	ActionSelect
	ActionMove
	ActionAttack
	ActionBuild
)

func (a TileAction) String() string {
	switch a {
	case ActionDeploy:
		return "deploy"
	case ActionRecall:
		return "recall"
	case ActionSelect:
		return "select"
	case ActionMove:
		return "move"
	case ActionAttack:
		return "attack"
	case ActionBuild:
		return "build"
	default:
		return "none"
	}
}
