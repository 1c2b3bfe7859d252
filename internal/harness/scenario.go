package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultTolerance is used by checks that omit an explicit tolerance.
const DefaultTolerance = 1e-6

// Scenario defines a conformance scenario: one problem definition plus
// assertions on the solved mechanism. Scenarios validate that a
// problem's optimal disclosure behaves the way its author expects.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Problem is the path to a CUE problem file or directory, relative
	// to the scenario file location.
	Problem string `yaml:"problem"`

	// ProblemName selects a definition when Problem contains several.
	// Optional when exactly one definition is present.
	ProblemName string `yaml:"problem_name,omitempty"`

	// Checks validate the solve outcome.
	Checks []Check `yaml:"checks"`
}

// CheckType identifies a scenario assertion.
type CheckType string

const (
	// CheckMassTotal asserts the mechanism's entries sum to 1.
	CheckMassTotal CheckType = "mass_total"

	// CheckNonNegative asserts no mechanism entry is below -tolerance.
	CheckNonNegative CheckType = "nonnegative"

	// CheckMarginalMatchesPrior asserts Bayes plausibility: each row
	// sum matches the normalized prior.
	CheckMarginalMatchesPrior CheckType = "marginal_matches_prior"

	// CheckValueAtLeast asserts the sender's optimal value is at least
	// the given value (minus tolerance).
	CheckValueAtLeast CheckType = "value_at_least"

	// CheckValueWithin asserts the sender's optimal value equals the
	// given value within tolerance.
	CheckValueWithin CheckType = "value_within"

	// CheckExpectError asserts the solve fails with the named error
	// kind instead of producing a mechanism. Must be a scenario's only
	// check.
	CheckExpectError CheckType = "expect_error"
)

// Check is a single scenario assertion.
type Check struct {
	Type CheckType `yaml:"type"`

	// Tolerance for numeric comparisons; DefaultTolerance when zero.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Value is the comparison target for value_at_least/value_within.
	Value float64 `yaml:"value,omitempty"`

	// Error names the expected failure for expect_error:
	// config | degenerate | infeasible | unbounded.
	Error string `yaml:"error,omitempty"`
}

var validCheckTypes = map[CheckType]bool{
	CheckMassTotal:            true,
	CheckNonNegative:          true,
	CheckMarginalMatchesPrior: true,
	CheckValueAtLeast:         true,
	CheckValueWithin:          true,
	CheckExpectError:          true,
}

var validErrorKinds = map[string]bool{
	"config":     true,
	"degenerate": true,
	"infeasible": true,
	"unbounded":  true,
}

// LoadScenario reads and validates a scenario file. The problem path is
// resolved relative to the scenario file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	if !filepath.IsAbs(sc.Problem) {
		sc.Problem = filepath.Join(filepath.Dir(path), sc.Problem)
	}
	return &sc, nil
}

// Validate checks the scenario's structural invariants.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Problem == "" {
		return fmt.Errorf("scenario problem path is required")
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("at least one check is required")
	}
	for i, check := range s.Checks {
		if !validCheckTypes[check.Type] {
			return fmt.Errorf("check %d: unknown type %q", i, check.Type)
		}
		if check.Type == CheckExpectError {
			if len(s.Checks) != 1 {
				return fmt.Errorf("expect_error must be the scenario's only check")
			}
			if !validErrorKinds[check.Error] {
				return fmt.Errorf("check %d: unknown error kind %q", i, check.Error)
			}
		}
		if check.Tolerance < 0 {
			return fmt.Errorf("check %d: tolerance must be non-negative", i)
		}
	}
	return nil
}

// tolerance returns the check's tolerance with the default applied.
func (c Check) tolerance() float64 {
	if c.Tolerance == 0 {
		return DefaultTolerance
	}
	return c.Tolerance
}
