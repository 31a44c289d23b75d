package synth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	clierrors "github.com/aledsdavies/cliarg/pkgs/errors"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

// Colorize wraps text in ANSI color codes if color is enabled
func Colorize(text, color string, useColor bool) string {
	if !useColor {
		return text
	}
	return color + text + ColorReset
}

// ShouldUseColor determines if color output should be used on w.
// Respects the NO_COLOR environment variable.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// FormatError writes err for the terminal. Usage errors are preceded by the
// usage line, dimmed, and followed by their hint.
func FormatError(w io.Writer, err error, usage string, useColor bool) {
	if err == nil {
		return
	}

	var cliErr *clierrors.CLIArgError
	if errors.As(err, &cliErr) && cliErr.Type == clierrors.ErrUsage {
		if usage != "" {
			_, _ = fmt.Fprintln(w, Colorize(strings.TrimRight(usage, "\n"), ColorGray, useColor))
		}
		_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
		if cliErr.Hint != "" {
			_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Hint: ", ColorYellow, useColor), cliErr.Hint)
		}
		return
	}

	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize("Error: ", ColorRed, useColor), err.Error())
}
