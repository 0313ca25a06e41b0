package core

// Reduce returns the state that results from applying a to s.
// It never rejects input and never modifies s; unknown actions return s as is.
func Reduce(s GameState, a Action) GameState {
	switch act := a.(type) {
	case SetGoal:
		s.Goal = act.Goal
		return s

	case *SetGoal:
		if act == nil {
			return s
		}
		return Reduce(s, *act)

	case ApplyDecision:
		d := act.Decision.Clone()
		s.Probability += d.ProbChange
		s.Indicators = s.Indicators.Merge(d.Indicators)

		// Full slice expression forces append to copy.
		h := s.DecisionHistory
		s.DecisionHistory = append(h[:len(h):len(h)], d)
		return s

	case *ApplyDecision:
		if act == nil {
			return s
		}
		return Reduce(s, *act)
	}

	return s
}
