// Package harness runs conformance scenarios: YAML files pairing a
// problem definition with assertions on its solved mechanism. The CLI
// test command drives it; tests use it directly.
package harness

import (
	"fmt"

	"github.com/ethche/BayesLP/internal/compiler"
	"github.com/ethche/BayesLP/internal/solver"
)

// Result collects the outcomes of one scenario's checks.
type Result struct {
	Scenario string        `json:"scenario"`
	Checks   []CheckResult `json:"checks"`
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Type   CheckType `json:"type"`
	Passed bool      `json:"passed"`
	Detail string    `json:"detail,omitempty"`
}

// Passed reports whether every check passed.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Run executes a scenario: load the problem, solve it, evaluate every
// check. A failing check is a scenario failure, not an error; errors
// are reserved for scenarios that cannot be evaluated at all (missing
// files, broken definitions, or an unexpected solve failure).
func Run(sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Scenario: sc.Name}
	expectError := len(sc.Checks) == 1 && sc.Checks[0].Type == CheckExpectError

	// expect_error scenarios succeed precisely when loading, compiling
	// or solving fails with the named kind. Broken definitions count as
	// config failures.
	def, err := loadProblem(sc)
	if err != nil {
		if expectError {
			result.Checks = append(result.Checks, evaluateErrorCheck(sc.Checks[0], err))
			return result, nil
		}
		return nil, err
	}

	spec, err := def.Spec()
	if expectError {
		var solveErr error
		if err != nil {
			solveErr = err
		} else {
			_, solveErr = solver.Solve(spec)
		}
		result.Checks = append(result.Checks, evaluateErrorCheck(sc.Checks[0], solveErr))
		return result, nil
	}

	if err != nil {
		return nil, fmt.Errorf("compiling problem %q: %w", def.Name, err)
	}

	rec, err := solver.Solve(spec)
	if err != nil {
		return nil, fmt.Errorf("solving problem %q: %w", def.Name, err)
	}

	for _, check := range sc.Checks {
		result.Checks = append(result.Checks, evaluateCheck(check, rec))
	}
	return result, nil
}

// RunFile loads and executes the scenario at path.
func RunFile(path string) (*Result, error) {
	sc, err := LoadScenario(path)
	if err != nil {
		return nil, err
	}
	return Run(sc)
}

// loadProblem resolves the scenario's problem definition.
func loadProblem(sc *Scenario) (*compiler.ProblemDef, error) {
	result, errs := compiler.LoadProblems(sc.Problem, compiler.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading problem %s: %w", sc.Problem, errs[0])
	}

	if sc.ProblemName != "" {
		for i := range result.Problems {
			if result.Problems[i].Name == sc.ProblemName {
				return &result.Problems[i], nil
			}
		}
		return nil, fmt.Errorf("problem %q not found in %s", sc.ProblemName, sc.Problem)
	}
	if len(result.Problems) != 1 {
		return nil, fmt.Errorf("%s defines %d problems; set problem_name", sc.Problem, len(result.Problems))
	}
	return &result.Problems[0], nil
}
