package solver

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/ethche/BayesLP/internal/persuasion"
)

// Solve computes the sender-optimal disclosure mechanism for spec.
//
// Returns *persuasion.ConfigError for invalid specs,
// *persuasion.DegenerateDistributionError when the prior has no mass on
// the grid, *persuasion.EvalError when a problem function produces a
// non-finite sample, and *persuasion.SolverError when the LP solver
// reports infeasibility, unboundedness or a numerical breakdown. No
// SolutionRecord is returned on any failure.
func Solve(spec *persuasion.ProblemSpec) (*SolutionRecord, error) {
	if spec == nil {
		return nil, &persuasion.ConfigError{Field: "spec", Message: "problem spec is required"}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n := spec.GridSize
	grid := spec.Grid()

	prior, err := persuasion.SampleVector("prior", spec.PriorDensity, grid)
	if err != nil {
		return nil, err
	}
	total := floats.Sum(prior)
	if total == 0 {
		return nil, &persuasion.DegenerateDistributionError{
			GridSize: n,
			Interval: spec.Interval,
		}
	}
	if total != 1 {
		floats.Scale(1/total, prior)
	}

	// Zero-target incentive rows; see the package comment for why this
	// is an equality placeholder rather than true IC.
	ic := make([]float64, n)

	values, err := persuasion.SampleMatrix("sender.utility", spec.SenderUtility, grid)
	if err != nil {
		return nil, err
	}

	// The simplex minimizes, so negate sender utility to maximize it.
	cost := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cost[i*n+j] = -values[i][j]
		}
	}

	a, err := buildConstraints(spec, grid)
	if err != nil {
		return nil, err
	}

	b := make([]float64, 0, 2*n)
	b = append(b, prior...)
	b = append(b, ic...)

	opt, x, err := lp.Simplex(cost, a, b, 0, nil)
	if err != nil {
		return nil, classifySimplexError(err)
	}

	mechanism, err := reshapeMechanism(x, n)
	if err != nil {
		return nil, err
	}

	return &SolutionRecord{
		Grid:         grid,
		Mechanism:    mechanism,
		Prior:        prior,
		ICConstraint: ic,
		ValueMatrix:  values,
		Value:        -opt,
	}, nil
}

// reshapeMechanism folds the flat LP solution back into an n×n joint
// distribution (row-major, index = state·n + message) and renormalizes
// it to total mass 1 to absorb solver drift.
func reshapeMechanism(x []float64, n int) ([][]float64, error) {
	total := floats.Sum(x)
	if total <= 0 {
		return nil, &persuasion.SolverError{
			Status: persuasion.StatusNumericalFailure,
			Detail: "solution vector has no mass",
		}
	}
	mech := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = x[i*n+j] / total
		}
		mech[i] = row
	}
	return mech, nil
}

// classifySimplexError maps gonum simplex sentinels onto the solver
// status taxonomy.
func classifySimplexError(err error) error {
	switch {
	case errors.Is(err, lp.ErrInfeasible):
		return &persuasion.SolverError{Status: persuasion.StatusInfeasible, Err: err}
	case errors.Is(err, lp.ErrUnbounded):
		return &persuasion.SolverError{Status: persuasion.StatusUnbounded, Err: err}
	default:
		return &persuasion.SolverError{Status: persuasion.StatusNumericalFailure, Err: err}
	}
}
