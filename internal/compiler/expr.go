package compiler

import (
	"fmt"
	"math"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"gonum.org/v1/gonum/stat/distuv"
)

// exprCostLimit bounds evaluation cost so a pathological expression
// cannot stall grid sampling.
const exprCostLimit = 1_000_000

// ExprCompiler compiles problem expressions into Go closures over the
// shared CEL environment. One compiler may be reused across problems;
// compilation happens once per expression, evaluation once per grid
// point.
type ExprCompiler struct {
	env *cel.Env
}

// NewExprCompiler builds the CEL environment shared by all problem
// expressions.
func NewExprCompiler() (*ExprCompiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("s", cel.DoubleType),
		cel.Variable("m", cel.DoubleType),
		cel.Variable("r", cel.DoubleType),
		cel.Constant("pi", cel.DoubleType, types.Double(math.Pi)),
		cel.Constant("e", cel.DoubleType, types.Double(math.E)),
		unaryFunc("exp", math.Exp),
		unaryFunc("log", math.Log),
		unaryFunc("sqrt", math.Sqrt),
		unaryFunc("abs", math.Abs),
		unaryFunc("normpdf", distuv.UnitNormal.Prob),
		binaryFunc("pow", math.Pow),
		binaryFunc("min", math.Min),
		binaryFunc("max", math.Max),
	)
	if err != nil {
		return nil, fmt.Errorf("building expression environment: %w", err)
	}
	return &ExprCompiler{env: env}, nil
}

// Univariate compiles expr into a function of the state s. field names
// the definition field for diagnostics.
func (c *ExprCompiler) Univariate(field, expr string) (func(float64) float64, error) {
	prog, err := c.compile(field, expr)
	if err != nil {
		return nil, err
	}
	return func(s float64) float64 {
		return evalDouble(prog, map[string]any{"s": s})
	}, nil
}

// Bivariate compiles expr into a function of (state, message). Both
// message aliases are bound: sender expressions use m, receiver
// expressions use r; they name the same grid point.
func (c *ExprCompiler) Bivariate(field, expr string) (func(float64, float64) float64, error) {
	prog, err := c.compile(field, expr)
	if err != nil {
		return nil, err
	}
	return func(s, x float64) float64 {
		return evalDouble(prog, map[string]any{"s": s, "m": x, "r": x})
	}, nil
}

func (c *ExprCompiler) compile(field, expr string) (cel.Program, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("compile error: %v", issues.Err()),
		}
	}
	if !ast.OutputType().IsExactType(cel.DoubleType) {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expression must be double-valued, got %s (write literals as 1.0, not 1)", ast.OutputType()),
		}
	}
	prog, err := c.env.Program(ast,
		cel.EvalOptions(cel.OptTrackState),
		cel.CostLimit(exprCostLimit),
	)
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("program creation error: %v", err),
		}
	}
	return prog, nil
}

// evalDouble runs a compiled expression at one point. Evaluation faults
// (an unbound variable, cost blowout) surface as NaN, which the
// solver's finite checks convert into an EvalError naming the field.
func evalDouble(prog cel.Program, vars map[string]any) float64 {
	out, _, err := prog.Eval(vars)
	if err != nil {
		return math.NaN()
	}
	d, ok := out.Value().(float64)
	if !ok {
		return math.NaN()
	}
	return d
}

func unaryFunc(name string, fn func(float64) float64) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(name+"_double", []*cel.Type{cel.DoubleType}, cel.DoubleType,
			cel.UnaryBinding(func(v ref.Val) ref.Val {
				d, ok := v.(types.Double)
				if !ok {
					return types.MaybeNoSuchOverloadErr(v)
				}
				return types.Double(fn(float64(d)))
			})))
}

func binaryFunc(name string, fn func(float64, float64) float64) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(name+"_double_double", []*cel.Type{cel.DoubleType, cel.DoubleType}, cel.DoubleType,
			cel.BinaryBinding(func(a, b ref.Val) ref.Val {
				x, ok := a.(types.Double)
				if !ok {
					return types.MaybeNoSuchOverloadErr(a)
				}
				y, ok := b.(types.Double)
				if !ok {
					return types.MaybeNoSuchOverloadErr(b)
				}
				return types.Double(fn(float64(x), float64(y)))
			})))
}
