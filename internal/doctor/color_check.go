package doctor

import (
	"io"
	"os"

	"github.com/thoreinstein/decimalog/pkg/logging"
)

// ColorCheck reports whether console output will be colored and why.
type ColorCheck struct {
	mode logging.ColorMode
	out  io.Writer
}

var _ Check = (*ColorCheck)(nil)

// NewColorCheck creates a check for console color on out under mode.
func NewColorCheck(mode logging.ColorMode, out io.Writer) *ColorCheck {
	return &ColorCheck{mode: mode, out: out}
}

// Name returns the unique identifier for this check.
func (c *ColorCheck) Name() string {
	return "console-color"
}

// Category returns the grouping for this check.
func (c *ColorCheck) Category() string {
	return "console"
}

// Run resolves the color mode against the environment.
func (c *ColorCheck) Run() *CheckResult {
	mode, err := logging.ParseColorMode(string(c.mode))
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  err.Error(),
			FixHint:  "decimalog config set color auto",
		}
	}

	_, noColor := os.LookupEnv("NO_COLOR")
	tty := logging.IsTTY(c.out)
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityInfo,
		Details: map[string]any{
			"mode":     string(mode),
			"tty":      tty,
			"no_color": noColor,
			"term":     os.Getenv("TERM"),
		},
	}

	switch {
	case mode == logging.ColorAlways:
		result.Status = SeverityPass
		result.Message = "color forced on"
	case mode == logging.ColorNever:
		result.Message = "color disabled by configuration"
	case noColor:
		result.Message = "color disabled by NO_COLOR"
	case os.Getenv("TERM") == "dumb":
		result.Message = "color disabled by TERM=dumb"
	case !tty:
		result.Message = "color disabled: console is not a terminal"
	default:
		result.Status = SeverityPass
		result.Message = "color enabled"
	}
	return result
}
