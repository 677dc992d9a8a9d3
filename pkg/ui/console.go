package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/bsp-cli/bsp/pkg/features"
	"github.com/bsp-cli/bsp/pkg/runner"
	"github.com/bsp-cli/bsp/pkg/style"
)

// Console writes user-facing output. Styling is dropped when output is
// piped, NO_COLOR is set, or the terminal lacks color support.
type Console struct {
	out    io.Writer
	format Format
}

// NewConsole creates a Console on stdout with auto-detected formatting.
func NewConsole() *Console {
	format := DetectFormat(os.Stdout)
	if format == FormatText {
		pterm.DisableStyling()
	}
	return &Console{out: os.Stdout, format: format}
}

// NewPlainConsole creates an unstyled Console writing to w. Used in
// tests for stable assertions.
func NewPlainConsole(w io.Writer) *Console {
	return &Console{out: w, format: FormatText}
}

func (c *Console) styled() bool {
	return c.format != FormatText
}

// Success prints a checkmarked success line.
func (c *Console) Success(format string, args ...interface{}) {
	fmt.Fprintln(c.out, c.check()+" "+fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (c *Console) Warn(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if c.styled() {
		fmt.Fprintln(c.out, style.WarningStyle.Render("⚠")+" "+msg)
		return
	}
	fmt.Fprintln(c.out, "⚠ "+msg)
}

// Error prints an error line.
func (c *Console) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if c.styled() {
		fmt.Fprintln(c.out, style.ErrorStyle.Render("✗")+" "+msg)
		return
	}
	fmt.Fprintln(c.out, "✗ "+msg)
}

// Step announces the start of a pipeline phase.
func (c *Console) Step(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if c.styled() {
		fmt.Fprintln(c.out, style.InfoStyle.Render(msg))
		return
	}
	fmt.Fprintln(c.out, msg)
}

// Detail prints supplementary muted text.
func (c *Console) Detail(format string, args ...interface{}) {
	fmt.Fprintln(c.out, c.muted(fmt.Sprintf(format, args...)))
}

// ErrorDetails prints each line of captured diagnostic output indented
// under the error message.
func (c *Console) ErrorDetails(output string) {
	output = strings.TrimSpace(output)
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		c.Detail("  %s", line)
	}
}

// ListFeatures prints the feature catalog with package lists and
// dependency information.
func (c *Console) ListFeatures() {
	fmt.Fprintln(c.out, c.heading("Available Features:"))
	for _, id := range features.All() {
		pkgs, _ := features.Packages(id)
		line := fmt.Sprintf("  %s: %s", c.featureName(id), strings.Join(pkgs, ", "))
		if deps := features.Deps(id); len(deps) > 0 {
			depNames := make([]string, len(deps))
			for i, dep := range deps {
				depNames[i] = string(dep)
			}
			line += c.muted(fmt.Sprintf(" (depends on: %s)", strings.Join(depNames, ", ")))
		}
		fmt.Fprintln(c.out, line)
	}
}

// FeatureSummary prints the resolved install plan: which features are
// included and why, plus any direct packages from metadata.
func (c *Console) FeatureSummary(plan runner.Plan) {
	fmt.Fprintln(c.out, c.heading("Feature Resolution Summary:"))
	for _, id := range plan.Features {
		pkgs, _ := features.Packages(id)
		fmt.Fprintf(c.out, "  %s %s: %s %s\n",
			c.check(),
			c.featureName(id),
			strings.Join(pkgs, ", "),
			c.muted("("+string(plan.Origins[id])+")"))
	}
	if len(plan.DirectPackages) > 0 {
		fmt.Fprintf(c.out, "  %s direct packages: %s %s\n",
			c.check(),
			strings.Join(plan.DirectPackages, ", "),
			c.muted("(from metadata)"))
	}
	fmt.Fprintf(c.out, "  Total features to install: %d\n", len(plan.Features))
}

// Progress returns a started progress bar sized for total steps, or
// nil when styling is off. Callers must handle the nil case.
func (c *Console) Progress(total int, title string) *pterm.ProgressbarPrinter {
	if !c.styled() {
		return nil
	}
	bar, err := pterm.DefaultProgressbar.WithTotal(total).WithTitle(title).Start()
	if err != nil {
		return nil
	}
	return bar
}

func (c *Console) heading(text string) string {
	if c.styled() {
		return style.TitleStyle.Render(text)
	}
	return text
}

func (c *Console) featureName(id features.Name) string {
	if c.styled() {
		return style.FeatureStyle.Render(string(id))
	}
	return string(id)
}

func (c *Console) muted(text string) string {
	if c.styled() {
		return style.MutedStyle.Render(text)
	}
	return text
}

func (c *Console) check() string {
	if c.styled() {
		return style.SuccessStyle.Render("✓")
	}
	return "✓"
}
