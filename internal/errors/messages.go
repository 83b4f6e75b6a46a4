package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/coronawarn/grenrc/internal/grenrc"
)

// Common error messages for the grenrc CLI.

// ConfigNotFound creates an error for a failed config discovery.
func ConfigNotFound(dir string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("no gren configuration found in %s or its repository root", dir),
		"Create one with: grenrc export --variant baseline",
		"Or point to a file with --config <path>",
	)
}

// ScriptConfig creates an error for an executable .grenrc.js file.
func ScriptConfig(path string) *CLIError {
	return &CLIError{
		Category: Configuration,
		Message:  fmt.Sprintf("%s is executable JavaScript and cannot be loaded", path),
		Remediation: []string{
			"Convert it to data with: grenrc export --format json -o .grenrc.json",
			"Then remove the .js file so gren picks up the JSON variant",
		},
		Err: grenrc.ErrScriptConfig,
	}
}

// InvalidConfig creates an error listing every validation failure in path.
func InvalidConfig(path string, err error) *CLIError {
	cliErr := &CLIError{
		Category:    Validation,
		Message:     fmt.Sprintf("%s is not a valid gren configuration", path),
		Remediation: []string{"Fix the fields listed above and run: grenrc validate " + path},
		Err:         err,
	}

	var errs grenrc.ValidationErrors
	if stderrors.As(err, &errs) {
		for _, e := range errs {
			cliErr.Details = append(cliErr.Details, e.Error())
		}
	} else {
		cliErr.Details = []string{err.Error()}
	}
	return cliErr
}

// FromLoadError maps an error returned by grenrc.Load to a CLIError.
func FromLoadError(path string, err error) *CLIError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, grenrc.ErrScriptConfig):
		return ScriptConfig(path)
	case grenrc.IsValidationError(err):
		return InvalidConfig(path, err)
	default:
		return WrapWithMessage(err, Configuration, "loading "+path,
			"Check that the file exists and is valid JSON or YAML")
	}
}

// UnknownVariant creates an error for an unknown --variant value.
func UnknownVariant(name string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown variant %q", name),
		"grenrc show --variant <name>",
		fmt.Sprintf("Available variants: %v", grenrc.PresetNames()),
	)
}
