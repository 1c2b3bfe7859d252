package cli

import (
	"errors"
	"fmt"

	"github.com/ethche/BayesLP/internal/compiler"
)

// loadAndSelect loads definitions from path and picks one: the named
// definition when name is set, otherwise the sole definition present.
// Errors are reported through f and returned as command errors.
func loadAndSelect(f *OutputFormatter, path, name string) (*compiler.ProblemDef, error) {
	result, errs := compiler.LoadProblems(path, compiler.LoadModeFailFast)
	if len(errs) > 0 {
		reportLoadError(f, errs[0])
		return nil, WrapExitError(ExitCommandError, "loading problems", errs[0])
	}

	if name != "" {
		for i := range result.Problems {
			if result.Problems[i].Name == name {
				return &result.Problems[i], nil
			}
		}
		msg := fmt.Sprintf("problem %q not found in %s", name, path)
		f.Error(compiler.ErrCodeGeneric, msg, problemNames(result))
		return nil, NewExitError(ExitCommandError, msg)
	}

	if len(result.Problems) != 1 {
		msg := fmt.Sprintf("%s defines %d problems; pick one with --problem", path, len(result.Problems))
		f.Error(compiler.ErrCodeGeneric, msg, problemNames(result))
		return nil, NewExitError(ExitCommandError, msg)
	}
	return &result.Problems[0], nil
}

// reportLoadError renders a load error with its code when available.
func reportLoadError(f *OutputFormatter, err error) {
	var le *compiler.LoadError
	if errors.As(err, &le) {
		f.Error(le.Code, le.Message, nil)
		return
	}
	f.Error(compiler.ErrCodeGeneric, err.Error(), nil)
}

func problemNames(result *compiler.LoadResult) []string {
	names := make([]string, 0, len(result.Problems))
	for _, p := range result.Problems {
		names = append(names, p.Name)
	}
	return names
}
