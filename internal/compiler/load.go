package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during definition loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the problem definitions loaded from a path.
type LoadResult struct {
	Problems  []ProblemDef
	FileCount int // number of CUE files found
}

// LoadError represents an error that occurred during definition loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeScanError   = "E002" // directory scan error
	ErrCodeNoFiles     = "E003" // no CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	// Definition validation errors
	ErrCodeMissingPrior   = "E101" // missing prior expression
	ErrCodeMissingUtility = "E102" // missing utility expression
	ErrCodeInvalidGrid    = "E103" // invalid grid size
	ErrCodeInvalidDomain  = "E104" // invalid interval
	ErrCodeBadExpression  = "E105" // expression failed to compile
)

// LoadProblems loads problem definitions from a .cue file or a
// directory of .cue files. Definitions live under the top-level
// "problem" field, keyed by name, and are returned sorted by name.
//
// In LoadModeFailFast the first error stops loading; LoadModeCollectAll
// gathers every definition error before returning.
func LoadProblems(path string, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("problem path not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing problem path: %v", err)}}
	}

	var (
		value     cue.Value
		fileCount int
	)
	ctx := cuecontext.New()

	if info.IsDir() {
		cueFiles, err := FindCUEFiles(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
		}
		if len(cueFiles) == 0 {
			return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}}
		}
		fileCount = len(cueFiles)

		instances := load.Instances([]string{"."}, &load.Config{Dir: path})
		if len(instances) == 0 {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
		}
		inst := instances[0]
		if inst.Err != nil {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
		}
		value = ctx.BuildInstance(inst)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}}
		}
		fileCount = 1
		value = ctx.CompileBytes(data, cue.Filename(path))
	}
	if err := value.Err(); err != nil {
		return nil, []error{buildError(err)}
	}

	result := &LoadResult{FileCount: fileCount}
	var errs []error

	problemsVal := value.LookupPath(cue.ParsePath("problem"))
	if !problemsVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: "no problem definitions found (expected a top-level \"problem\" field)"}}
	}

	iter, iterErr := problemsVal.Fields()
	if iterErr != nil {
		return result, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating problems: %v", iterErr)}}
	}
	for iter.Next() {
		def, compileErr := CompileProblem(iter.Value())
		if compileErr != nil {
			errs = append(errs, convertCompileError(compileErr, "problem."+iter.Label()))
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Problems = append(result.Problems, *def)
	}

	sort.Slice(result.Problems, func(i, j int) bool {
		return result.Problems[i].Name < result.Problems[j].Name
	})

	if len(result.Problems) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no problem definitions found"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// buildError converts a CUE build error into a LoadError with position.
func buildError(err error) *LoadError {
	positions := cueerrors.Positions(err)
	le := &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	if len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}

// convertCompileError maps a CompileError onto the load error-code
// table, preserving position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    mapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// mapFieldToErrorCode maps a definition field to its error code.
func mapFieldToErrorCode(field string) string {
	switch field {
	case "prior":
		return ErrCodeMissingPrior
	case "receiver.utility", "receiver.density", "sender.utility":
		return ErrCodeMissingUtility
	case "grid":
		return ErrCodeInvalidGrid
	case "interval":
		return ErrCodeInvalidDomain
	default:
		return ErrCodeGeneric
	}
}
