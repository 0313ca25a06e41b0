package core

// ActionType identifies an action variant.
type ActionType string

const (
	ActionSetGoal       ActionType = "SET_GOAL"
	ActionApplyDecision ActionType = "APPLY_DECISION"
)

// Action is a request to change the game state. Each variant carries its own
// payload; Reduce ignores variants it does not know.
type Action interface {
	Type() ActionType
}

// SetGoal replaces the goal text.
type SetGoal struct {
	Goal string
}

// Type implements Action.
func (SetGoal) Type() ActionType { return ActionSetGoal }

// ApplyDecision applies a decision's probability change and indicator
// overrides, and records it in the history.
type ApplyDecision struct {
	Decision Decision
}

// Type implements Action.
func (ApplyDecision) Type() ActionType { return ActionApplyDecision }
