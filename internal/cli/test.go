package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethche/BayesLP/internal/compiler"
	"github.com/ethche/BayesLP/internal/harness"
)

// NewTestCommand creates the test command: run conformance scenarios
// against problem definitions.
func NewTestCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test <scenario.yaml...>",
		Short: "Run conformance scenarios",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, opts)

			var results []*harness.Result
			failed := 0
			for _, path := range args {
				result, err := harness.RunFile(path)
				if err != nil {
					f.Error(compiler.ErrCodeGeneric, fmt.Sprintf("%s: %v", path, err), nil)
					return WrapExitError(ExitCommandError, "running scenario", err)
				}
				results = append(results, result)
				if !result.Passed() {
					failed++
				}
			}

			if done, err := f.SuccessJSON(results); done || err != nil {
				if failed > 0 {
					return NewExitError(ExitFailure, fmt.Sprintf("%d scenarios failed", failed))
				}
				return err
			}

			for _, result := range results {
				status := "PASS"
				if !result.Passed() {
					status = "FAIL"
				}
				fmt.Fprintf(f.Writer, "%s\t%s\n", status, result.Scenario)
				for _, check := range result.Checks {
					if check.Passed {
						f.VerboseLog("  ok\t%s", check.Type)
						continue
					}
					fmt.Fprintf(f.Writer, "  fail\t%s: %s\n", check.Type, check.Detail)
				}
			}
			fmt.Fprintf(f.Writer, "%d scenarios, %d failed\n", len(results), failed)

			if failed > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d scenarios failed", failed))
			}
			return nil
		},
	}
}
