package core

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color modes accepted by the configuration.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// ColorPrinter writes error messages, bold red when colour is enabled.
type ColorPrinter struct {
	mode     string
	out      *os.File
	errColor *color.Color
}

// NewColorPrinter creates a printer writing to out. Unknown modes behave
// like ColorAuto.
func NewColorPrinter(mode string, out *os.File) *ColorPrinter {
	p := &ColorPrinter{
		mode:     mode,
		out:      out,
		errColor: color.New(color.FgRed, color.Bold),
	}

	if p.ShouldColor() {
		p.errColor.EnableColor()
	} else {
		p.errColor.DisableColor()
	}

	return p
}

// ShouldColor reports whether output will be coloured.
func (p *ColorPrinter) ShouldColor() bool {
	switch p.mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal(p.out)
	}
}

// Sprintf formats an error message.
func (p *ColorPrinter) Sprintf(format string, a ...interface{}) string {
	return p.errColor.Sprintf(format, a...)
}

// Errorf writes a formatted error message followed by a newline.
func (p *ColorPrinter) Errorf(format string, a ...interface{}) {
	fmt.Fprintln(p.out, p.Sprintf(format, a...))
}
