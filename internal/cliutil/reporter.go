package cliutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"brilopt/internal/cerr"
)

var kindLabel = map[cerr.Kind]string{
	cerr.InputNotFound:        "input not found",
	cerr.ParseError:           "parse error",
	cerr.UnknownPass:          "unknown pass",
	cerr.IRInvariantViolation: "internal invariant violation",
}

// ReportError writes a Rust-diagnostic-styled rendering of err to w: a
// bold red "error[kind]:" header followed by the message on one line, with
// the wrapped cause (if any) dimmed on the line beneath it.
func ReportError(w io.Writer, err error) {
	bold := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	var ce *cerr.Error
	if !errors.As(err, &ce) {
		fmt.Fprintf(w, "%s %s\n", bold("error:"), err.Error())
		return
	}

	fmt.Fprintf(w, "%s %s\n", bold(fmt.Sprintf("error[%s]:", kindLabel[ce.Kind])), ce.Msg)
	if cause := ce.Unwrap(); cause != nil {
		fmt.Fprintf(w, "  %s %s\n", dim("caused by:"), dim(cause.Error()))
	}
}

// ReportSuccess writes a bold green confirmation line, in the same
// register as ReportError's header.
func ReportSuccess(w io.Writer, format string, args ...any) {
	ok := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", ok("ok:"), fmt.Sprintf(format, args...))
}

// ListPasses writes every registered pass name, one per line, prefixed
// with a cyan bullet.
func ListPasses(w io.Writer) {
	bullet := color.New(color.FgCyan).SprintFunc()
	for _, name := range Names() {
		fmt.Fprintf(w, "  %s %s\n", bullet("-"), name)
	}
}
