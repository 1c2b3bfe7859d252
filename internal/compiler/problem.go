package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/ethche/BayesLP/internal/persuasion"
)

// ProblemDef is a compiled problem definition: grid parameters plus the
// four scalar functions as uncompiled CEL source. A ProblemDef is
// self-contained and serializable; Spec binds the expressions.
type ProblemDef struct {
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	GridSize        int                 `json:"grid_size"`
	Interval        persuasion.Interval `json:"interval"`
	Prior           string              `json:"prior"`
	ReceiverUtility string              `json:"receiver_utility"`
	ReceiverDensity string              `json:"receiver_density"`
	SenderUtility   string              `json:"sender_utility"`
}

// CompileProblem parses a CUE value into a ProblemDef.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
//
// The CUE value should be the problem struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`problem: quadratic: { ... }`)
//	def, err := CompileProblem(v.LookupPath(cue.ParsePath("problem.quadratic")))
//
// grid and interval are optional and default to 10 points over [0, 1].
func CompileProblem(v cue.Value) (*ProblemDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &ProblemDef{
		GridSize: persuasion.DefaultGridSize,
		Interval: persuasion.DefaultInterval,
	}

	// Problem name from the struct label (the path selector).
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Name = labels[len(labels)-1].String()
	}

	descVal := v.LookupPath(cue.ParsePath("description"))
	if descVal.Exists() {
		desc, err := descVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.Description = desc
	}

	gridVal := v.LookupPath(cue.ParsePath("grid"))
	if gridVal.Exists() {
		grid, err := gridVal.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		if grid < 1 {
			return nil, &CompileError{
				Field:   "grid",
				Message: fmt.Sprintf("grid size must be at least 1, got %d", grid),
				Pos:     gridVal.Pos(),
			}
		}
		def.GridSize = int(grid)
	}

	intervalVal := v.LookupPath(cue.ParsePath("interval"))
	if intervalVal.Exists() {
		interval, err := parseInterval(intervalVal)
		if err != nil {
			return nil, err
		}
		def.Interval = interval
	}

	prior, err := requiredString(v, "prior")
	if err != nil {
		return nil, err
	}
	def.Prior = prior

	def.ReceiverUtility, err = requiredString(v, "receiver.utility")
	if err != nil {
		return nil, err
	}

	// Receiver conditional density defaults to the unit weight.
	def.ReceiverDensity = "1.0"
	densityVal := v.LookupPath(cue.ParsePath("receiver.density"))
	if densityVal.Exists() {
		density, err := densityVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		def.ReceiverDensity = density
	}

	def.SenderUtility, err = requiredString(v, "sender.utility")
	if err != nil {
		return nil, err
	}

	return def, nil
}

// Spec compiles the definition's expressions and binds them into a
// validated ProblemSpec.
func (d *ProblemDef) Spec() (*persuasion.ProblemSpec, error) {
	ec, err := NewExprCompiler()
	if err != nil {
		return nil, err
	}
	return d.SpecWith(ec)
}

// SpecWith is Spec with an explicit expression compiler, so callers
// compiling many definitions can share one environment.
func (d *ProblemDef) SpecWith(ec *ExprCompiler) (*persuasion.ProblemSpec, error) {
	prior, err := ec.Univariate("prior", d.Prior)
	if err != nil {
		return nil, err
	}
	receiverUtility, err := ec.Bivariate("receiver.utility", d.ReceiverUtility)
	if err != nil {
		return nil, err
	}
	receiverDensity, err := ec.Bivariate("receiver.density", d.ReceiverDensity)
	if err != nil {
		return nil, err
	}
	senderUtility, err := ec.Bivariate("sender.utility", d.SenderUtility)
	if err != nil {
		return nil, err
	}
	return persuasion.NewProblemSpec(d.GridSize, d.Interval,
		prior, receiverUtility, receiverDensity, senderUtility)
}

// CanonicalJSON renders the definition deterministically for golden
// comparisons.
func (d *ProblemDef) CanonicalJSON() ([]byte, error) {
	m := map[string]any{
		"name":             d.Name,
		"grid_size":        d.GridSize,
		"interval":         d.Interval,
		"prior":            d.Prior,
		"receiver_utility": d.ReceiverUtility,
		"receiver_density": d.ReceiverDensity,
		"sender_utility":   d.SenderUtility,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	return persuasion.MarshalCanonical(m)
}

func requiredString(v cue.Value, path string) (string, error) {
	val := v.LookupPath(cue.ParsePath(path))
	if !val.Exists() {
		return "", &CompileError{
			Field:   path,
			Message: path + " expression is required",
			Pos:     v.Pos(),
		}
	}
	s, err := val.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func parseInterval(v cue.Value) (persuasion.Interval, error) {
	var bounds []float64
	iter, err := v.List()
	if err != nil {
		return persuasion.Interval{}, formatCUEError(err)
	}
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return persuasion.Interval{}, formatCUEError(err)
		}
		bounds = append(bounds, f)
	}
	if len(bounds) != 2 {
		return persuasion.Interval{}, &CompileError{
			Field:   "interval",
			Message: fmt.Sprintf("interval must be [lo, hi], got %d elements", len(bounds)),
			Pos:     v.Pos(),
		}
	}
	if !(bounds[0] < bounds[1]) {
		return persuasion.Interval{}, &CompileError{
			Field:   "interval",
			Message: fmt.Sprintf("interval lower bound must be strictly below upper bound, got [%g, %g]", bounds[0], bounds[1]),
			Pos:     v.Pos(),
		}
	}
	return persuasion.Interval{Lo: bounds[0], Hi: bounds[1]}, nil
}

// CompileError represents a definition error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
