package harness

import (
	"errors"
	"fmt"
	"math"

	"github.com/ethche/BayesLP/internal/compiler"
	"github.com/ethche/BayesLP/internal/persuasion"
	"github.com/ethche/BayesLP/internal/solver"
)

// evaluateCheck applies one assertion to a solve result.
func evaluateCheck(check Check, rec *solver.SolutionRecord) CheckResult {
	tol := check.tolerance()
	result := CheckResult{Type: check.Type, Passed: true}

	switch check.Type {
	case CheckMassTotal:
		total := 0.0
		for _, row := range rec.Mechanism {
			for _, p := range row {
				total += p
			}
		}
		if math.Abs(total-1) > tol {
			result.Passed = false
			result.Detail = fmt.Sprintf("mechanism mass %g, want 1 ± %g", total, tol)
		}

	case CheckNonNegative:
		for i, row := range rec.Mechanism {
			for j, p := range row {
				if p < -tol {
					result.Passed = false
					result.Detail = fmt.Sprintf("mechanism[%d][%d] = %g below zero", i, j, p)
					return result
				}
			}
		}

	case CheckMarginalMatchesPrior:
		for i, sum := range rec.RowSums() {
			if math.Abs(sum-rec.Prior[i]) > tol {
				result.Passed = false
				result.Detail = fmt.Sprintf("marginal[%d] = %g, prior %g ± %g", i, sum, rec.Prior[i], tol)
				return result
			}
		}

	case CheckValueAtLeast:
		if rec.Value < check.Value-tol {
			result.Passed = false
			result.Detail = fmt.Sprintf("value %g below %g", rec.Value, check.Value)
		}

	case CheckValueWithin:
		if math.Abs(rec.Value-check.Value) > tol {
			result.Passed = false
			result.Detail = fmt.Sprintf("value %g, want %g ± %g", rec.Value, check.Value, tol)
		}

	default:
		result.Passed = false
		result.Detail = fmt.Sprintf("unknown check type %q", check.Type)
	}

	return result
}

// evaluateErrorCheck matches a solve failure against the expected kind.
func evaluateErrorCheck(check Check, solveErr error) CheckResult {
	result := CheckResult{Type: check.Type}

	if solveErr == nil {
		result.Detail = fmt.Sprintf("solve succeeded, expected %s error", check.Error)
		return result
	}

	matched := false
	switch check.Error {
	case "config":
		matched = persuasion.IsConfig(solveErr) || isDefinitionError(solveErr)
	case "degenerate":
		matched = persuasion.IsDegenerate(solveErr)
	case "infeasible":
		matched = persuasion.IsInfeasible(solveErr)
	case "unbounded":
		matched = persuasion.IsUnbounded(solveErr)
	}

	result.Passed = matched
	if !matched {
		result.Detail = fmt.Sprintf("expected %s error, got: %v", check.Error, solveErr)
	}
	return result
}

// isDefinitionError matches failures originating in the problem
// definition itself, whether caught at CUE load time or at expression
// compile time.
func isDefinitionError(err error) bool {
	var ce *compiler.CompileError
	if errors.As(err, &ce) {
		return true
	}
	var le *compiler.LoadError
	return errors.As(err, &le)
}
