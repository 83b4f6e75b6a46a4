package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// style holds the decorations of one output mode.
type style struct {
	label    func(a ...interface{}) string
	message  func(a ...interface{}) string
	category func(a ...interface{}) string
	detail   func(a ...interface{}) string
	heading  func(a ...interface{}) string
	usage    func(a ...interface{}) string
	step     func(a ...interface{}) string
}

// colored honours color.NoColor, which the CLI sets for non-terminals.
var colored = style{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	detail:   color.New(color.FgRed).SprintFunc(),
	heading:  color.New(color.FgGreen, color.Bold).SprintFunc(),
	usage:    color.New(color.FgCyan).SprintFunc(),
	step:     color.New(color.FgGreen).SprintFunc(),
}

var plain = style{
	label:    fmt.Sprint,
	message:  fmt.Sprint,
	category: fmt.Sprint,
	detail:   fmt.Sprint,
	heading:  fmt.Sprint,
	usage:    fmt.Sprint,
	step:     fmt.Sprint,
}

// FormatError renders err for the terminal:
//
//	Error [Validation Error]: .grenrc.yml is not a valid gren configuration
//	  - groupBy.Fixes: at least one label is required
//
//	To fix this:
//	  • Fix the fields listed above and run: grenrc validate .grenrc.yml
func FormatError(err *CLIError) string {
	return render(err, colored)
}

// FormatErrorPlain is FormatError without colors.
func FormatErrorPlain(err *CLIError) string {
	return render(err, plain)
}

func render(err *CLIError, s style) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n", s.label("Error"), s.category(err.Category.String()), s.message(err.Message))
	writeList(&sb, s.detail("-"), err.Details)

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", s.heading("Usage:"), s.usage(err.Usage))
	}
	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.heading("To fix this:"))
		writeList(&sb, s.step("•"), err.Remediation)
	}
	return sb.String()
}

func writeList(sb *strings.Builder, marker string, items []string) {
	for _, item := range items {
		fmt.Fprintf(sb, "  %s %s\n", marker, item)
	}
}

// FprintError writes the colored rendering of err to w.
func FprintError(w io.Writer, err *CLIError) {
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError renders a plain error under the given category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
