package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethche/BayesLP/internal/compiler"
	"github.com/ethche/BayesLP/internal/store"
)

// NewRunsCommand creates the runs command group for browsing the run
// log written by solve --db.
func NewRunsCommand(opts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse recorded solve runs",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "bayeslp.db", "SQLite run database")

	cmd.AddCommand(newRunsListCommand(opts, &dbPath))
	cmd.AddCommand(newRunsShowCommand(opts, &dbPath))
	return cmd
}

func newRunsListCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, opts)

			s, err := store.Open(*dbPath)
			if err != nil {
				f.Error(compiler.ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "opening run database", err)
			}
			defer s.Close()

			runs, err := s.ListRuns(context.Background(), limit)
			if err != nil {
				f.Error(compiler.ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "listing runs", err)
			}

			if done, err := f.SuccessJSON(runs); done || err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(f.Writer, "no runs recorded")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(f.Writer, "%s\t%s\tgrid=%d\tvalue=%.6f\t%s\n",
					run.ID, run.Problem, run.GridSize, run.Value,
					run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")
	return cmd
}

func newRunsShowCommand(opts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run including its mechanism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, opts)

			s, err := store.Open(*dbPath)
			if err != nil {
				f.Error(compiler.ErrCodeGeneric, err.Error(), nil)
				return WrapExitError(ExitCommandError, "opening run database", err)
			}
			defer s.Close()

			run, err := s.GetRun(context.Background(), args[0])
			if err != nil {
				code := compiler.ErrCodeGeneric
				if errors.Is(err, store.ErrRunNotFound) {
					code = compiler.ErrCodeNotFound
				}
				f.Error(code, err.Error(), nil)
				return WrapExitError(ExitCommandError, "fetching run", err)
			}

			if done, err := f.SuccessJSON(run); done || err != nil {
				return err
			}
			fmt.Fprintf(f.Writer, "Run:      %s\n", run.ID)
			fmt.Fprintf(f.Writer, "Problem:  %s (grid %d over [%g, %g])\n",
				run.Problem, run.GridSize, run.Interval.Lo, run.Interval.Hi)
			fmt.Fprintf(f.Writer, "Value:    %.6f\n", run.Value)
			fmt.Fprintf(f.Writer, "Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintln(f.Writer, "Mechanism:")
			for _, row := range run.Mechanism {
				fmt.Fprint(f.Writer, " ")
				for _, p := range row {
					fmt.Fprintf(f.Writer, " %8.4f", p)
				}
				fmt.Fprintln(f.Writer)
			}
			return nil
		},
	}
}
