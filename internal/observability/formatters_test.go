package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-enhancer/internal/types"
)

func TestPrintProjects(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProjects([]types.Project{
		{Title: "Acme Corp", Bullets: types.BulletRange{Start: 2, End: 4}},
		{Title: "Beta Inc", Bullets: types.BulletRange{Start: 7, End: 6}},
	})

	out := buf.String()
	assert.Contains(t, out, "DETECTED PROJECTS")
	assert.Contains(t, out, "1. Acme Corp")
	assert.Contains(t, out, "bullets: paragraphs 2-4")
	assert.Contains(t, out, "2. Beta Inc")
	assert.Contains(t, out, "no existing bullets")
}

func TestPrintProjectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProjects(nil)
	assert.Zero(t, buf.Len())
}

func TestPrintDistribution(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	points := make([]types.TechPoint, 7)
	for i := range points {
		points[i] = types.TechPoint{Tech: "Go", Text: "point"}
	}
	p.PrintDistribution(&types.DistributionResult{
		Projects: []types.ProjectAssignment{{Title: "Acme Corp", Points: points}},
		Dropped:  []types.TechPoint{{Tech: "Go", Text: "dup"}},
	})

	out := buf.String()
	assert.Contains(t, out, "POINT DISTRIBUTION")
	assert.Contains(t, out, "Acme Corp (7 points)")
	assert.Contains(t, out, "... and 2 more")
	assert.Contains(t, out, "Dropped as duplicates: 1")
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.ProcessResult{
		Filename:     "resume.docx",
		Success:      true,
		PointsAdded:  4,
		ProjectsUsed: 2,
	})

	out := buf.String()
	assert.Contains(t, out, "PROCESSING COMPLETE")
	assert.Contains(t, out, "resume.docx")
	assert.Contains(t, out, "Points added:  4")
	assert.NotContains(t, out, "Points skipped", "skip line only appears when points were dropped")
}

func TestPrintResultReportsSkips(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.ProcessResult{
		Success:       true,
		PointsAdded:   3,
		PointsSkipped: 1,
		ProjectsUsed:  2,
	})

	assert.Contains(t, buf.String(), "Points skipped: 1")
}

func TestPrintResultFailure(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResult(&types.ProcessResult{Error: "no projects detected in document"})

	out := buf.String()
	assert.Contains(t, out, "PROCESSING FAILED")
	assert.Contains(t, out, "no projects detected")
}

func TestPrintBoxTruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
