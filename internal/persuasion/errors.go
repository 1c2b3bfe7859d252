package persuasion

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError reports an invalid problem parameter detected before any
// solving takes place.
type ConfigError struct {
	// Field names the offending parameter ("grid", "interval", ...).
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid problem: %s: %s", e.Field, e.Message)
}

// DegenerateDistributionError reports a prior density that evaluates to
// zero at every grid point, so no probability vector can be formed.
type DegenerateDistributionError struct {
	GridSize int
	Interval Interval
}

// Error implements the error interface.
func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("degenerate prior: zero mass at all %d grid points over [%g, %g]",
		e.GridSize, e.Interval.Lo, e.Interval.Hi)
}

// EvalError reports a problem function that produced a non-finite value
// at a grid point. The solver refuses to assemble an LP from NaN or
// infinite samples.
type EvalError struct {
	// Fn names the function ("prior", "sender.utility", ...).
	Fn string

	// Point is the grid point(s) at which evaluation failed.
	Point []float64

	// Value is the offending sample (NaN or ±Inf).
	Value float64
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	args := make([]string, len(e.Point))
	for i, p := range e.Point {
		args[i] = fmt.Sprintf("%g", p)
	}
	return fmt.Sprintf("%s(%s) is not finite: %g", e.Fn, strings.Join(args, ", "), e.Value)
}

// SolverStatus classifies terminal outcomes reported by the LP solver.
type SolverStatus string

const (
	// StatusInfeasible means no mechanism satisfies the marginal and
	// incentive-compatibility constraints on this grid.
	StatusInfeasible SolverStatus = "INFEASIBLE"

	// StatusUnbounded means the LP objective is unbounded. The feasible
	// region is a slice of the probability simplex, so this indicates a
	// numerical breakdown rather than a real economic outcome.
	StatusUnbounded SolverStatus = "UNBOUNDED"

	// StatusNumericalFailure covers singular bases, zero rows and other
	// breakdowns inside the simplex routine.
	StatusNumericalFailure SolverStatus = "NUMERICAL_FAILURE"
)

// SolverError wraps a failed LP solve. No SolutionRecord exists when a
// SolverError is returned; callers must treat the solve as failed.
//
// The solve is one-shot: there is no retry or refinement beyond the
// solver's internal algorithm, and no timeout is imposed.
type SolverError struct {
	// Status is the classified solver outcome.
	Status SolverStatus

	// Detail is an optional diagnostic message.
	Detail string

	// Err is the underlying solver error, if any.
	Err error
}

// Error implements the error interface.
func (e *SolverError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("lp solve failed: %s: %s", e.Status, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("lp solve failed: %s: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("lp solve failed: %s", e.Status)
}

// Unwrap returns the underlying solver error.
func (e *SolverError) Unwrap() error {
	return e.Err
}

// IsInfeasible reports whether err is a SolverError with infeasible
// status. Uses errors.As to handle wrapped errors.
func IsInfeasible(err error) bool {
	var se *SolverError
	return errors.As(err, &se) && se.Status == StatusInfeasible
}

// IsUnbounded reports whether err is a SolverError with unbounded status.
func IsUnbounded(err error) bool {
	var se *SolverError
	return errors.As(err, &se) && se.Status == StatusUnbounded
}

// IsDegenerate reports whether err is a DegenerateDistributionError.
func IsDegenerate(err error) bool {
	var de *DegenerateDistributionError
	return errors.As(err, &de)
}

// IsConfig reports whether err is a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
