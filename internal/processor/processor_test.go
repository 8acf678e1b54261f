package processor

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-enhancer/internal/docx"
	"github.com/jonathan/resume-enhancer/internal/format"
	"github.com/jonathan/resume-enhancer/internal/types"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`

// buildResume packages paragraph texts into a minimal DOCX.
func buildResume(t *testing.T, texts ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, text := range texts {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, text)
	}
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `<w:sectPr/></w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml": testContentTypes,
		"word/document.xml":   doc,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func texts(t *testing.T, content []byte) []string {
	t.Helper()
	doc, err := docx.Parse(content)
	require.NoError(t, err)
	var out []string
	for _, p := range doc.Paragraphs() {
		out = append(out, p.Text)
	}
	return out
}

func stacks(name string, points ...string) []types.TechStack {
	return []types.TechStack{{Name: name, Points: points}}
}

func TestProcessInsertsPoints(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"Responsibilities:",
		"•\tBuilt APIs",
		"Beta Inc | 2018 - 2019",
		"•\tLed team",
	)

	result, err := p.Process(content, stacks("Go", "Wrote Go services", "Profiled Go memory"))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.PointsAdded)
	assert.Equal(t, 0, result.PointsSkipped)
	assert.Equal(t, 2, result.ProjectsUsed)
	require.NotNil(t, result.ModifiedContent)

	got := texts(t, result.ModifiedContent)
	assert.Equal(t, []string{
		"Acme Corp | Jan 2020 - Present",
		"Responsibilities:",
		"•\tBuilt APIs",
		"•\tWrote Go services",
		"Beta Inc | 2018 - 2019",
		"•\tLed team",
		"•\tProfiled Go memory",
	}, got)
}

func TestProcessDistributionReport(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"•\tBuilt APIs",
	)

	result, err := p.Process(content, stacks("Go", "Point one", "Point two"))
	require.NoError(t, err)

	byTech, ok := result.Distribution["Acme Corp | Jan 2020 - Present"]
	require.True(t, ok)
	assert.Equal(t, []string{"Point one", "Point two"}, byTech["Go"])
}

func TestProcessClonesDashFormat(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"- Built APIs",
	)

	result, err := p.Process(content, stacks("Go", "New point"))
	require.NoError(t, err)

	got := texts(t, result.ModifiedContent)
	assert.Equal(t, "- New point", got[len(got)-1],
		"inserted bullets clone the dash marker and space separator")
}

func TestProcessHeadingOnlyProjectGetsBullets(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"Responsibilities:",
		"Beta Inc | 2018 - 2019",
		"•\tLed team",
	)

	result, err := p.Process(content, stacks("Go", "First point"))
	require.NoError(t, err)

	got := texts(t, result.ModifiedContent)
	assert.Equal(t, "Responsibilities:", got[1])
	assert.Equal(t, "•\tFirst point", got[2],
		"a heading with no bullets still anchors the insertion")
}

func TestProcessNoProjects(t *testing.T) {
	p := New(nil)
	content := buildResume(t, "Just a paragraph", "And another one")

	result, err := p.Process(content, stacks("Go", "Point"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoProjects)
	assert.False(t, result.Success)
	assert.Nil(t, result.ModifiedContent)
}

func TestProcessInvalidDocument(t *testing.T) {
	p := New(nil)

	result, err := p.Process([]byte("not a docx"), stacks("Go", "Point"))
	require.Error(t, err)
	assert.ErrorIs(t, err, docx.ErrInvalidDocument)
	assert.False(t, result.Success)
}

func TestProcessDeterministic(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"•\tBuilt APIs",
		"Beta Inc | 2018 - 2019",
		"•\tLed team",
	)
	pool := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2"}},
		{Name: "SQL", Points: []string{"s1"}},
	}

	first, err := p.Process(content, pool)
	require.NoError(t, err)
	second, err := p.Process(content, pool)
	require.NoError(t, err)

	assert.Equal(t, texts(t, first.ModifiedContent), texts(t, second.ModifiedContent))
	assert.Equal(t, first.Distribution, second.Distribution)
}

func TestProcessOriginalTextUntouched(t *testing.T) {
	p := New(nil)
	original := []string{
		"Jane Doe",
		"Acme Corp | Jan 2020 - Present",
		"•\tBuilt APIs",
		"Education",
		"BSc Computer Science",
	}
	content := buildResume(t, original...)

	result, err := p.Process(content, stacks("Go", "New point"))
	require.NoError(t, err)

	got := texts(t, result.ModifiedContent)
	var kept []string
	for _, text := range got {
		if text != "•\tNew point" {
			kept = append(kept, text)
		}
	}
	assert.Equal(t, original, kept, "every original paragraph survives in order")
}

func TestProcessNamedSetsFilename(t *testing.T) {
	p := New(nil)
	content := buildResume(t, "Acme Corp | Jan 2020 - Present", "•\tBuilt APIs")

	result, err := p.ProcessNamed("resume.docx", content, stacks("Go", "Point"))
	require.NoError(t, err)
	assert.Equal(t, "resume.docx", result.Filename)
}

func TestDetectProjects(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present",
		"•\tBuilt APIs",
	)

	projects, err := p.DetectProjects(content)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Acme Corp | Jan 2020 - Present", projects[0].Title)
}

func TestProcessMoreThanThreeProjects(t *testing.T) {
	p := New(nil)
	content := buildResume(t,
		"Acme Corp | Jan 2020 - Present", "•\tA bullet",
		"Beta Inc | 2018 - 2019", "•\tB bullet",
		"Gamma LLC | 2016 - 2018", "•\tC bullet",
		"Delta Co | 2014 - 2016", "•\tD bullet",
	)
	pool := stacks("Go", "p1", "p2", "p3", "p4")

	result, err := p.Process(content, pool)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ProjectsUsed, "only the top three projects receive points")
	got := texts(t, result.ModifiedContent)
	joined := strings.Join(got, "\n")
	assert.NotContains(t, strings.SplitAfter(joined, "Delta Co | 2014 - 2016")[1], "•\tp",
		"the fourth project stays untouched")
}

// rejectingBody refuses insertions at the listed call positions.
type rejectingBody struct {
	calls  int
	reject map[int]bool
	count  int
}

func (b *rejectingBody) insert() error {
	b.calls++
	if b.reject[b.calls] {
		return errors.New("splice refused")
	}
	b.count++
	return nil
}

func (b *rejectingBody) AppendParagraph(fragment []byte) error          { return b.insert() }
func (b *rejectingBody) InsertParagraphAfter(i int, fragment []byte) error { return b.insert() }
func (b *rejectingBody) ParagraphCount() int                            { return b.count }

func TestInsertPointsCountsSkips(t *testing.T) {
	p := New(nil)
	desc := format.Default("•")
	points := []types.TechPoint{
		{Tech: "Go", Text: "p1"},
		{Tech: "Go", Text: "p2"},
		{Tech: "Go", Text: "p3"},
		{Tech: "Go", Text: "p4"},
	}

	body := &rejectingBody{reject: map[int]bool{2: true, 4: true}}
	inserted, skipped := p.insertPoints(body, 0, desc, desc, "Acme Corp", points)

	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, skipped, "failed insertions are skipped, not fatal")
	assert.Equal(t, 4, body.calls, "every point is still attempted")
}
