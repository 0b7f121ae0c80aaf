package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorScheme defines the colors used for different elements in the output
type ColorScheme struct {
	Method      *color.Color
	URL         *color.Color
	StatusOK    *color.Color
	StatusWarn  *color.Color
	StatusError *color.Color
	HeaderKey   *color.Color
	Label       *color.Color
	Success     *color.Color
	Error       *color.Color
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Method:      color.New(color.FgBlue, color.Bold),
		URL:         color.New(color.FgCyan),
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusWarn:  color.New(color.FgYellow, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
		HeaderKey:   color.New(color.FgYellow),
		Label:       color.New(color.FgMagenta, color.Bold),
		Success:     color.New(color.FgGreen),
		Error:       color.New(color.FgRed),
	}
}

// NoColorScheme returns a color scheme with all colors disabled
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range []*color.Color{
		scheme.Method, scheme.URL, scheme.StatusOK, scheme.StatusWarn, scheme.StatusError,
		scheme.HeaderKey, scheme.Label, scheme.Success, scheme.Error,
	} {
		c.DisableColor()
	}
	return scheme
}

// Status picks the status color for an HTTP status code.
func (s *ColorScheme) Status(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return s.StatusOK
	case code >= 300 && code < 400:
		return s.StatusWarn
	default:
		return s.StatusError
	}
}

// ColorDisabled reports whether output to f should be plain: either the
// user asked for it or f is not a terminal.
func ColorDisabled(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !IsTerminal(f)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SuccessIcon returns a checkmark symbol with appropriate color
func SuccessIcon(noColor bool) string {
	if noColor {
		return "✓"
	}
	return color.New(color.FgGreen).Sprint("✓")
}

// ErrorIcon returns an X symbol with appropriate color
func ErrorIcon(noColor bool) string {
	if noColor {
		return "✗"
	}
	return color.New(color.FgRed).Sprint("✗")
}
