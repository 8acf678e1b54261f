// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-enhancer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

// PrintProjects outputs the detected projects with their bullet ranges.
func (p *Printer) PrintProjects(projects []types.Project) {
	if len(projects) == 0 {
		return
	}

	var sb strings.Builder
	for i, proj := range projects {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, proj.Title))
		if proj.Bullets.Empty() {
			sb.WriteString("   no existing bullets\n")
		} else {
			sb.WriteString(fmt.Sprintf("   bullets: paragraphs %d-%d\n", proj.Bullets.Start, proj.Bullets.End))
		}
	}

	p.printBox("DETECTED PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDistribution outputs the per-project point assignment summary.
func (p *Printer) PrintDistribution(dist *types.DistributionResult) {
	if dist == nil || len(dist.Projects) == 0 {
		return
	}

	var sb strings.Builder
	for _, a := range dist.Projects {
		sb.WriteString(fmt.Sprintf("%s (%d points)\n", a.Title, a.TotalPoints()))
		count := min(len(a.Points), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", a.Points[i].Tech, a.Points[i].Text))
		}
		if len(a.Points) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.Points)-maxItemsToShow))
		}
	}
	if len(dist.Dropped) > 0 {
		sb.WriteString(fmt.Sprintf("\nDropped as duplicates: %d\n", len(dist.Dropped)))
	}

	p.printBox("POINT DISTRIBUTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResult outputs the final processing summary.
func (p *Printer) PrintResult(result *types.ProcessResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	if result.Filename != "" {
		sb.WriteString(fmt.Sprintf("File:          %s\n", result.Filename))
	}
	sb.WriteString(fmt.Sprintf("Points added:  %d\n", result.PointsAdded))
	if result.PointsSkipped > 0 {
		sb.WriteString(fmt.Sprintf("Points skipped: %d\n", result.PointsSkipped))
	}
	sb.WriteString(fmt.Sprintf("Projects used: %d", result.ProjectsUsed))
	if !result.Success {
		sb.WriteString(fmt.Sprintf("\nError:         %s", result.Error))
	}

	title := "PROCESSING COMPLETE"
	if !result.Success {
		title = "PROCESSING FAILED"
	}
	p.printBox(title, sb.String())
}
