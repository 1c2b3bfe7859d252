// Package testutil provides canned problem specs shared across package
// tests. Each helper returns a fresh spec so tests cannot interfere
// through shared state.
package testutil

import "github.com/ethche/BayesLP/internal/persuasion"

// Quadratic returns the reference test problem on [0, 1]: uniform
// prior, receiver utility s-r with unit conditional density, sender
// utility m². For n=3 the unique optimal mechanism is full revelation,
//
//	[[1/3, 0, 0], [0, 1/3, 0], [0, 0, 1/3]]
//
// with sender value 5/12.
func Quadratic(n int) *persuasion.ProblemSpec {
	return &persuasion.ProblemSpec{
		GridSize:                   n,
		Interval:                   persuasion.Interval{Lo: 0, Hi: 1},
		PriorDensity:               func(s float64) float64 { return 1 },
		ReceiverUtility:            func(s, r float64) float64 { return s - r },
		ReceiverConditionalDensity: func(s, r float64) float64 { return 1 },
		SenderUtility:              func(s, m float64) float64 { return m * m },
	}
}

// Contradictory returns a problem whose constraints cannot be
// satisfied: with u·g identically 1, the incentive rows demand zero
// total mass in every message column while the marginal rows demand the
// prior's mass.
func Contradictory(n int) *persuasion.ProblemSpec {
	spec := Quadratic(n)
	spec.ReceiverUtility = func(s, r float64) float64 { return 1 }
	return spec
}

// ZeroPrior returns a problem whose prior has no mass anywhere on the
// grid.
func ZeroPrior(n int) *persuasion.ProblemSpec {
	spec := Quadratic(n)
	spec.PriorDensity = func(s float64) float64 { return 0 }
	return spec
}
