package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Outcome labels of generated files, as reported by the template copier
const (
	OutcomeWritten   = "written"
	OutcomeUnchanged = "unchanged"
	OutcomeSkipped   = "skipped"
)

// outcomeWidth pads labels so paths line up
const outcomeWidth = 9

// OutcomeStyle returns the pterm style for a file outcome
func OutcomeStyle(outcome string) *pterm.Style {
	switch outcome {
	case OutcomeWritten:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case OutcomeSkipped:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Outcome renders a padded outcome label
func (r *Renderer) Outcome(outcome string) string {
	label := fmt.Sprintf("%-*s", outcomeWidth, outcome)
	if r.noColor {
		return label
	}
	return OutcomeStyle(outcome).Sprint(label)
}
