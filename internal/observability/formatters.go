// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/keyword-atlas/internal/links"
	"github.com/jonathan/keyword-atlas/internal/movement"
	"github.com/jonathan/keyword-atlas/internal/resolver"
	"github.com/jonathan/keyword-atlas/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintClusters outputs a human-readable summary of the built clusters.
func (p *Printer) PrintClusters(clusters []types.KeywordCluster) {
	var sb strings.Builder

	shown := min(len(clusters), maxItemsToShow)
	for i := 0; i < shown; i++ {
		c := clusters[i]
		sb.WriteString(fmt.Sprintf("• %s", resolver.DisplayText(c.Parent)))
		if c.Parent.TrackingOnly {
			sb.WriteString(" (tracking only)")
		}
		sb.WriteString("\n")
		for _, child := range c.Children {
			sb.WriteString(fmt.Sprintf("    - %s\n", resolver.DisplayText(child)))
		}
	}
	if len(clusters) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(clusters)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("Clusters (%d)", len(clusters)), strings.TrimRight(sb.String(), "\n"))
}

// PrintMovement outputs per-engine movement for one keyword.
func (p *Printer) PrintMovement(keywordText string, results []types.MovementResult, changes map[types.Engine]movement.Change) {
	var sb strings.Builder

	for _, r := range results {
		sb.WriteString(fmt.Sprintf("%-8s %+5d", r.Engine, r.Delta))
		if label, ok := changes[r.Engine]; ok && label != movement.ChangeSteady {
			sb.WriteString(fmt.Sprintf("  [%s]", strings.ToUpper(string(label))))
		}
		sb.WriteString("\n")
	}

	p.printBox(fmt.Sprintf("Movement: %s", keywordText), strings.TrimRight(sb.String(), "\n"))
}

// PrintLinkSummary outputs how many links were judged relevant per keyword.
func (p *Printer) PrintLinkSummary(keywordText string, associated links.Associated) {
	content := fmt.Sprintf("inbound:  %d\noutbound: %d",
		len(associated.RelevantIn), len(associated.RelevantOut))
	p.printBox(fmt.Sprintf("Links: %s", keywordText), content)
}
