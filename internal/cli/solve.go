package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethche/BayesLP/internal/compiler"
	"github.com/ethche/BayesLP/internal/persuasion"
	"github.com/ethche/BayesLP/internal/solver"
	"github.com/ethche/BayesLP/internal/store"
)

// Solve-time error codes, extending the loader's table.
const (
	ErrCodeInfeasible = "E201" // constraints unsatisfiable on this grid
	ErrCodeUnbounded  = "E202" // LP objective unbounded (numerical breakdown)
	ErrCodeNumerical  = "E203" // simplex numerical failure
	ErrCodeDegenerate = "E204" // prior has no mass on the grid
	ErrCodeEvaluation = "E205" // expression evaluated to a non-finite value
)

// solveOutput is the JSON payload for a successful solve.
type solveOutput struct {
	Problem  string                 `json:"problem"`
	GridSize int                    `json:"grid_size"`
	Interval persuasion.Interval    `json:"interval"`
	RunID    string                 `json:"run_id,omitempty"`
	Record   *solver.SolutionRecord `json:"record"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(opts *RootOptions) *cobra.Command {
	var (
		problemName string
		dbPath      string
	)

	cmd := &cobra.Command{
		Use:   "solve <file.cue|dir>",
		Short: "Solve a problem definition and print the optimal mechanism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, opts)

			def, err := loadAndSelect(f, args[0], problemName)
			if err != nil {
				return err
			}
			f.VerboseLog("solving %q: grid %d over [%g, %g]",
				def.Name, def.GridSize, def.Interval.Lo, def.Interval.Hi)

			spec, err := def.Spec()
			if err != nil {
				f.Error(compiler.ErrCodeBadExpression, err.Error(), nil)
				return WrapExitError(ExitCommandError, "compiling expressions", err)
			}

			rec, err := solver.Solve(spec)
			if err != nil {
				code, exitCode := classifySolveError(err)
				f.Error(code, err.Error(), nil)
				return WrapExitError(exitCode, fmt.Sprintf("solving %q", def.Name), err)
			}

			out := solveOutput{
				Problem:  def.Name,
				GridSize: def.GridSize,
				Interval: def.Interval,
				Record:   rec,
			}

			if dbPath != "" {
				run := store.NewRun(def.Name, def.Interval, rec)
				if err := recordRun(dbPath, run); err != nil {
					f.Error(compiler.ErrCodeGeneric, err.Error(), nil)
					return WrapExitError(ExitCommandError, "recording run", err)
				}
				out.RunID = run.ID
				f.VerboseLog("recorded run %s in %s", run.ID, dbPath)
			}

			if done, err := f.SuccessJSON(out); done || err != nil {
				return err
			}
			printSolveText(f, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&problemName, "problem", "", "problem name when the path defines several")
	cmd.Flags().StringVar(&dbPath, "db", "", "record the run in this SQLite database")

	return cmd
}

// recordRun opens the run log just long enough to append one run.
func recordRun(dbPath string, run store.Run) error {
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.WriteRun(context.Background(), run)
}

// printSolveText renders the human-readable solve summary.
func printSolveText(f *OutputFormatter, out solveOutput) {
	rec := out.Record
	n := len(rec.Grid)

	fmt.Fprintf(f.Writer, "Problem:  %s (grid %d over [%g, %g])\n",
		out.Problem, out.GridSize, out.Interval.Lo, out.Interval.Hi)
	fmt.Fprintf(f.Writer, "Value:    %.6f\n", rec.Value)
	fmt.Fprintf(f.Writer, "Support:  %d of %d entries\n", rec.SupportSize(1e-9), n*n)
	if out.RunID != "" {
		fmt.Fprintf(f.Writer, "Run:      %s\n", out.RunID)
	}

	fmt.Fprintln(f.Writer, "Mechanism (rows = states, columns = messages):")
	for i, row := range rec.Mechanism {
		fmt.Fprintf(f.Writer, "  s=%-8.4g", rec.Grid[i])
		for _, p := range row {
			fmt.Fprintf(f.Writer, " %8.4f", p)
		}
		fmt.Fprintln(f.Writer)
	}
}

// classifySolveError maps solver failures onto error and exit codes.
// Solve failures are outcomes (exit 1); configuration problems are
// command errors (exit 2).
func classifySolveError(err error) (code string, exitCode int) {
	switch {
	case persuasion.IsInfeasible(err):
		return ErrCodeInfeasible, ExitFailure
	case persuasion.IsUnbounded(err):
		return ErrCodeUnbounded, ExitFailure
	case persuasion.IsDegenerate(err):
		return ErrCodeDegenerate, ExitCommandError
	case persuasion.IsConfig(err):
		return compiler.ErrCodeGeneric, ExitCommandError
	default:
		var ee *persuasion.EvalError
		if errors.As(err, &ee) {
			return ErrCodeEvaluation, ExitCommandError
		}
		return ErrCodeNumerical, ExitFailure
	}
}
