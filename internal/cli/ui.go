package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/coursemap/pkg/dag"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleKept     = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func (c *CLI) printSuccess(format string, args ...any) {
	fmt.Fprintln(c.out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printError(format string, args ...any) {
	fmt.Fprintln(c.out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (c *CLI) printWarning(format string, args ...any) {
	fmt.Fprintln(c.out, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func (c *CLI) printInfo(format string, args ...any) {
	fmt.Fprintln(c.out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func (c *CLI) printDetail(format string, args ...any) {
	fmt.Fprintln(c.out, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func (c *CLI) printFile(path string) {
	fmt.Fprintln(c.out, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func (c *CLI) printKeyValue(key, value string) {
	fmt.Fprintln(c.out, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printNextStep prints a suggested next command.
func (c *CLI) printNextStep(description, cmd string) {
	fmt.Fprintln(c.out, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Domain Output
// =============================================================================

// layoutStatus describes where a run's positions came from.
type layoutStatus int

const (
	statusKept layoutStatus = iota
	statusComputed
	statusCached
)

func (s layoutStatus) render() string {
	switch s {
	case statusCached:
		return styleCached.Render("cached")
	case statusComputed:
		return styleComputed.Render("computed")
	default:
		return styleKept.Render("kept")
	}
}

// printStats prints map statistics on a single line.
func (c *CLI) printStats(nodes, edges int, status layoutStatus) {
	parts := []string{
		styleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		styleDim.Render(fmt.Sprintf("%d prerequisites", edges)),
		status.render(),
	}
	fmt.Fprintln(c.out, "  "+strings.Join(parts, styleDim.Render(" · ")))
}

// printValidation prints a validation report: one line per issue, or a
// success line for a clean map.
func (c *CLI) printValidation(v dag.Validation) {
	if v.Valid {
		c.printSuccess("No cycles or dangling prerequisites")
		return
	}
	for _, is := range v.Issues {
		c.printError("%s", is.Message)
	}
	cycles, dangling := 0, 0
	for _, is := range v.Issues {
		if is.Kind == dag.IssueCycle {
			cycles++
		} else {
			dangling++
		}
	}
	c.printDetail("%d cycle(s), %d dangling prerequisite(s)", cycles, dangling)
}
