// Package format captures the formatting profile of existing bullet
// paragraphs and replicates it when synthesizing new ones. A descriptor is
// extracted once per insertion site and reused read-only for every point
// inserted there; every field is explicitly optional so a partial read
// degrades the clone, never the insertion.
package format

import (
	"github.com/jonathan/resume-enhancer/internal/docx"
	"github.com/jonathan/resume-enhancer/internal/heuristics"
)

// ListLink is the native numbering linkage of a list paragraph: the
// document-level list definition id and the indent level. Raw OOXML
// string values.
type ListLink struct {
	NumID string
	Level string
}

// RunFormat is the captured typography of one run. Empty strings mean the
// attribute was absent on the source run and must not be written.
type RunFormat struct {
	FontName  string
	FontSize  string
	Underline string
	Color     string
	VertAlign string
	Bold      bool
	Italic    bool
	Strike    bool
	Caps      bool
	SmallCaps bool
}

// Descriptor is the portable formatting profile of a bullet paragraph.
type Descriptor struct {
	Marker    string
	Separator string
	Style     string
	Props     docx.ParagraphProps
	Runs      []RunFormat
	List      *ListLink
}

// Primary returns the typography used for new text: the first captured
// run, or nil when no run survived extraction.
func (d *Descriptor) Primary() *RunFormat {
	if d == nil || len(d.Runs) == 0 {
		return nil
	}
	return &d.Runs[0]
}

// Default returns the hard-coded fallback descriptor: the given marker
// (or "•") with a tab separator and no captured formatting.
func Default(marker string) *Descriptor {
	if marker == "" {
		marker = "•"
	}
	return &Descriptor{Marker: marker, Separator: "\t"}
}

// Minimal returns the descriptor used when a paragraph cannot be
// inspected at all: marker and space separator only.
func Minimal() *Descriptor {
	return &Descriptor{Marker: "•", Separator: " "}
}

// Extractor reads bullet format descriptors out of parsed documents.
type Extractor struct {
	rules *heuristics.Rules
}

// NewExtractor creates an extractor using the given heuristic rules for
// the shared bullet-marker predicate.
func NewExtractor(rules *heuristics.Rules) *Extractor {
	return &Extractor{rules: rules}
}

// Extract captures the formatting descriptor of the paragraph at the
// given index. Returns nil if the index is out of range or the paragraph
// is not itself a bullet line. Field reads are individually tolerant:
// whatever the paragraph model did not surface is simply left empty.
func (e *Extractor) Extract(doc *docx.Document, index int) *Descriptor {
	paras := doc.Paragraphs()
	if index < 0 || index >= len(paras) {
		return nil
	}
	return e.ExtractParagraph(paras[index])
}

// ExtractParagraph captures the descriptor of a single paragraph. Returns
// nil when the paragraph is not a bullet line.
func (e *Extractor) ExtractParagraph(p *docx.Paragraph) *Descriptor {
	if p == nil {
		return Minimal()
	}
	if !e.rules.IsBullet(p.Text) {
		return nil
	}

	d := &Descriptor{
		Marker:    e.rules.Marker(p.Text),
		Separator: e.rules.Separator(p.Text),
		Style:     p.StyleID,
		Props:     p.Props,
	}
	if d.Style == "" {
		d.Style = "Normal"
	}

	for _, r := range p.Runs {
		d.Runs = append(d.Runs, RunFormat{
			FontName:  r.FontName,
			FontSize:  r.FontSize,
			Underline: r.Underline,
			Color:     r.Color,
			VertAlign: r.VertAlign,
			Bold:      r.Bold,
			Italic:    r.Italic,
			Strike:    r.Strike,
			Caps:      r.Caps,
			SmallCaps: r.SmallCaps,
		})
	}

	if p.HasNumbering() {
		d.List = &ListLink{NumID: p.NumID, Level: p.NumLevel}
	}

	return d
}
