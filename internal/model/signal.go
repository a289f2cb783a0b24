package model

// Condition is one leg of the momentum signal predicate.
type Condition struct {
	Name       string
	Passed     bool
	Commentary string
}

// Signal is the evaluated predicate for the latest snapshot of a ticker.
type Signal struct {
	Conditions []Condition
	Qualified  bool
}

// Failed returns the names of the conditions that did not pass.
func (s *Signal) Failed() []string {
	var out []string
	for _, c := range s.Conditions {
		if !c.Passed {
			out = append(out, c.Name)
		}
	}
	return out
}
