package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethche/BayesLP/internal/compiler"
)

// validateOutput is the JSON payload for a validate run.
type validateOutput struct {
	Path     string   `json:"path"`
	Files    int      `json:"files"`
	Problems []string `json:"problems"`
	Errors   []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command: compile-only checking
// of problem definitions, collecting every error before reporting.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.cue|dir>",
		Short: "Check problem definitions without solving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, opts)

			result, errs := compiler.LoadProblems(args[0], compiler.LoadModeCollectAll)
			if result == nil {
				reportLoadError(f, errs[0])
				return WrapExitError(ExitCommandError, "loading problems", errs[0])
			}

			out := validateOutput{Path: args[0], Files: result.FileCount}
			for _, err := range errs {
				out.Errors = append(out.Errors, err.Error())
			}

			// Definitions that parsed still need their expressions
			// compiled; collect those failures too.
			ec, err := compiler.NewExprCompiler()
			if err != nil {
				return WrapExitError(ExitCommandError, "building expression environment", err)
			}
			for i := range result.Problems {
				def := &result.Problems[i]
				if _, err := def.SpecWith(ec); err != nil {
					out.Errors = append(out.Errors, fmt.Sprintf("problem %q: %v", def.Name, err))
					continue
				}
				out.Problems = append(out.Problems, def.Name)
			}

			if done, err := f.SuccessJSON(out); done || err != nil {
				if len(out.Errors) > 0 {
					return NewExitError(ExitFailure, fmt.Sprintf("%d invalid definitions", len(out.Errors)))
				}
				return err
			}

			for _, name := range out.Problems {
				fmt.Fprintf(f.Writer, "ok\t%s\n", name)
			}
			for _, msg := range out.Errors {
				fmt.Fprintf(f.Writer, "error\t%s\n", msg)
			}
			fmt.Fprintf(f.Writer, "%d valid, %d invalid (%d files)\n",
				len(out.Problems), len(out.Errors), out.Files)

			if len(out.Errors) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d invalid definitions", len(out.Errors)))
			}
			return nil
		},
	}
	return cmd
}
