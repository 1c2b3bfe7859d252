package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethche/BayesLP/internal/persuasion"
)

func compileProblemSource(t *testing.T, src, path string) (*ProblemDef, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileProblem(v.LookupPath(cue.ParsePath(path)))
}

const quadraticCUE = `
problem: quadratic: {
	description: "sender prefers extreme messages"
	grid:     3
	interval: [0.0, 1.0]
	prior: "1.0"
	receiver: {
		utility: "s - r"
		density: "1.0"
	}
	sender: utility: "m * m"
}
`

func TestCompileProblem_Full(t *testing.T) {
	def, err := compileProblemSource(t, quadraticCUE, "problem.quadratic")
	require.NoError(t, err)

	assert.Equal(t, "quadratic", def.Name)
	assert.Equal(t, "sender prefers extreme messages", def.Description)
	assert.Equal(t, 3, def.GridSize)
	assert.Equal(t, persuasion.Interval{Lo: 0, Hi: 1}, def.Interval)
	assert.Equal(t, "1.0", def.Prior)
	assert.Equal(t, "s - r", def.ReceiverUtility)
	assert.Equal(t, "1.0", def.ReceiverDensity)
	assert.Equal(t, "m * m", def.SenderUtility)
}

func TestCompileProblem_Defaults(t *testing.T) {
	src := `
problem: minimal: {
	prior: "1.0"
	receiver: utility: "s - r"
	sender: utility: "m"
}
`
	def, err := compileProblemSource(t, src, "problem.minimal")
	require.NoError(t, err)

	assert.Equal(t, persuasion.DefaultGridSize, def.GridSize)
	assert.Equal(t, persuasion.DefaultInterval, def.Interval)
	assert.Equal(t, "1.0", def.ReceiverDensity, "density defaults to unit weight")
}

func TestCompileProblem_MissingPrior(t *testing.T) {
	src := `
problem: broken: {
	receiver: utility: "s - r"
	sender: utility: "m"
}
`
	_, err := compileProblemSource(t, src, "problem.broken")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "prior", ce.Field)
}

func TestCompileProblem_MissingSenderUtility(t *testing.T) {
	src := `
problem: broken: {
	prior: "1.0"
	receiver: utility: "s - r"
}
`
	_, err := compileProblemSource(t, src, "problem.broken")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "sender.utility", ce.Field)
}

func TestCompileProblem_InvalidGrid(t *testing.T) {
	src := `
problem: broken: {
	grid: 0
	prior: "1.0"
	receiver: utility: "s - r"
	sender: utility: "m"
}
`
	_, err := compileProblemSource(t, src, "problem.broken")
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "grid", ce.Field)
}

func TestCompileProblem_InvalidInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval string
	}{
		{"reversed", "[1.0, 0.0]"},
		{"short", "[0.0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `
problem: broken: {
	interval: ` + tt.interval + `
	prior: "1.0"
	receiver: utility: "s - r"
	sender: utility: "m"
}
`
			_, err := compileProblemSource(t, src, "problem.broken")
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, "interval", ce.Field)
		})
	}
}

func TestProblemDef_Spec(t *testing.T) {
	def, err := compileProblemSource(t, quadraticCUE, "problem.quadratic")
	require.NoError(t, err)

	spec, err := def.Spec()
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.5, 1}, spec.Grid())
	assert.Equal(t, 1.0, spec.PriorDensity(0.3))
	assert.InDelta(t, -0.5, spec.ReceiverUtility(0, 0.5), 1e-15)
	assert.InDelta(t, 0.25, spec.SenderUtility(0.1, 0.5), 1e-15)
}

func TestProblemDef_SpecBadExpression(t *testing.T) {
	def, err := compileProblemSource(t, quadraticCUE, "problem.quadratic")
	require.NoError(t, err)

	def.SenderUtility = "m +"
	_, err = def.Spec()
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "sender.utility", ce.Field)
}
