// Package processor orchestrates one document enhancement: parse the
// bytes, detect projects, distribute the point pool, clone the local
// bullet format, and splice the new paragraphs in. The input bytes are
// never mutated; only inserted paragraphs differ in the output.
package processor

import (
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-enhancer/internal/config"
	"github.com/jonathan/resume-enhancer/internal/detect"
	"github.com/jonathan/resume-enhancer/internal/distribute"
	"github.com/jonathan/resume-enhancer/internal/docx"
	"github.com/jonathan/resume-enhancer/internal/format"
	"github.com/jonathan/resume-enhancer/internal/heuristics"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// ErrNoProjects means the document parsed cleanly but no project with a
// usable insertion site was detected.
var ErrNoProjects = errors.New("no projects detected in document")

// formatSearchRadius is how many paragraphs around a project's bullet
// range are inspected when cloning the local bullet format.
const formatSearchRadius = 5

// Processor runs the full enhancement pipeline. Safe for concurrent use;
// all state is per-call.
type Processor struct {
	rules       *heuristics.Rules
	detector    *detect.Detector
	distributor *distribute.Distributor
	extractor   *format.Extractor
}

// New builds a processor from the parsing configuration. A nil
// configuration uses the built-in defaults.
func New(cfg *config.Parsing) *Processor {
	maxProjects := distribute.DefaultTopProjects
	if cfg != nil && cfg.MaxProjects > 0 {
		maxProjects = cfg.MaxProjects
	}
	rules := heuristics.New(cfg)
	return &Processor{
		rules:       rules,
		detector:    detect.New(rules),
		distributor: distribute.New(maxProjects),
		extractor:   format.NewExtractor(rules),
	}
}

// DetectProjects parses the document and returns the detected projects
// without modifying anything. Used by the preview endpoints and the CLI
// dry-run mode.
func (p *Processor) DetectProjects(content []byte) ([]types.Project, error) {
	doc, err := docx.Parse(content)
	if err != nil {
		return nil, err
	}
	return p.detector.FindProjects(doc.Paragraphs()), nil
}

// Process runs the pipeline on one document. The returned result carries
// the modified bytes on success. A parse failure or an empty project list
// is a hard failure: the error is returned and the result reports it, so
// callers can use either form.
func (p *Processor) Process(content []byte, stacks []types.TechStack) (*types.ProcessResult, error) {
	result := &types.ProcessResult{}

	doc, err := docx.Parse(content)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("parsing document: %w", err)
	}

	projects := p.detector.FindProjects(doc.Paragraphs())
	if len(projects) == 0 {
		result.Error = ErrNoProjects.Error()
		return result, ErrNoProjects
	}

	dist := p.distributor.Distribute(projects, stacks)
	result.Distribution = dist.ByTitle()
	result.ProjectsUsed = len(dist.Projects)

	offset := 0
	for i := range dist.Projects {
		a := &dist.Projects[i]
		inserted, skipped := p.applyAssignment(doc, a, offset)
		result.PointsAdded += inserted
		result.PointsSkipped += skipped
		offset += inserted
	}

	modified, err := doc.Save()
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("saving document: %w", err)
	}

	result.Success = true
	result.ModifiedContent = modified
	return result, nil
}

// ProcessNamed is Process with the source filename recorded for reports.
func (p *Processor) ProcessNamed(filename string, content []byte, stacks []types.TechStack) (*types.ProcessResult, error) {
	result, err := p.Process(content, stacks)
	result.Filename = filename
	return result, err
}

// paragraphWriter is the slice of docx.Document the insertion loop uses.
type paragraphWriter interface {
	AppendParagraph(fragment []byte) error
	InsertParagraphAfter(i int, fragment []byte) error
	ParagraphCount() int
}

// applyAssignment inserts one project's points into the document and
// returns how many landed and how many were skipped.
func (p *Processor) applyAssignment(doc *docx.Document, a *types.ProjectAssignment, offset int) (inserted, skipped int) {
	if len(a.Points) == 0 {
		return 0, 0
	}

	insertion := a.InsertionPoint + offset
	bulletEnd := a.BulletEnd + offset
	desc := p.resolveDescriptor(doc, insertion, bulletEnd)
	fallback := format.Default(desc.Marker)

	anchor := p.findAnchor(doc, insertion, bulletEnd)
	return p.insertPoints(doc, anchor, desc, fallback, a.Title, a.Points)
}

// insertPoints splices one rendered paragraph per point after the
// anchor. An insertion failure is logged, counted as skipped, and the
// loop moves on to the next point.
func (p *Processor) insertPoints(doc paragraphWriter, anchor int, desc, fallback *format.Descriptor, title string, points []types.TechPoint) (inserted, skipped int) {
	for _, point := range points {
		fragment := format.Render(desc, fallback, point.Text, p.rules)
		var err error
		if anchor < 0 {
			err = doc.AppendParagraph(fragment)
			anchor = doc.ParagraphCount() - 1
		} else {
			err = doc.InsertParagraphAfter(anchor, fragment)
			anchor++
		}
		if err != nil {
			log.Printf("Skipping point %q for project %q: %v", point.Text, title, err)
			skipped++
			continue
		}
		inserted++
	}
	return inserted, skipped
}

// findAnchor picks the paragraph the first new point is inserted after:
// the last existing bullet of the project's range, or the paragraph just
// before the insertion point when the range holds no bullets yet.
// Returns -1 when nothing in the document can anchor the insertion, in
// which case points are appended at the end of the body.
func (p *Processor) findAnchor(doc *docx.Document, insertion, bulletEnd int) int {
	paras := doc.Paragraphs()
	count := len(paras)
	if count == 0 {
		return -1
	}

	hi := bulletEnd
	if hi > count-1 {
		hi = count - 1
	}
	lo := insertion
	if lo < 0 {
		lo = 0
	}
	for i := hi; i >= lo && i < count; i-- {
		if p.rules.IsBullet(paras[i].Text) {
			return i
		}
	}
	if insertion-1 >= 0 && insertion-1 < count {
		return insertion - 1
	}
	return -1
}

// resolveDescriptor clones the bullet format nearest the insertion site.
// Bullets inside the search window are preferred, glyph-marker bullets
// first; with no bullet in the window the document-wide most frequent
// marker seeds a default descriptor; an empty document falls back to the
// minimal profile.
func (p *Processor) resolveDescriptor(doc *docx.Document, insertion, bulletEnd int) *format.Descriptor {
	paras := doc.Paragraphs()
	count := len(paras)
	if count == 0 {
		return format.Minimal()
	}

	lo := insertion - formatSearchRadius
	if lo < 0 {
		lo = 0
	}
	hi := bulletEnd + formatSearchRadius
	if hi > count-1 {
		hi = count - 1
	}

	var first *format.Descriptor
	for i := lo; i <= hi; i++ {
		desc := p.extractor.Extract(doc, i)
		if desc == nil {
			continue
		}
		if desc.List != nil || heuristics.IsGlyph(desc.Marker) {
			return desc
		}
		if first == nil {
			first = desc
		}
	}
	if first != nil {
		return first
	}

	if marker := p.dominantMarker(paras); marker != "" {
		return format.Default(marker)
	}
	return format.Default("")
}

// dominantMarker returns the most frequent bullet marker in the whole
// document, first seen winning ties. Empty when the document has no
// bullets at all.
func (p *Processor) dominantMarker(paras []*docx.Paragraph) string {
	counts := make(map[string]int)
	var order []string
	for _, para := range paras {
		if !p.rules.IsBullet(para.Text) {
			continue
		}
		m := p.rules.Marker(para.Text)
		if counts[m] == 0 {
			order = append(order, m)
		}
		counts[m]++
	}
	best := ""
	bestCount := 0
	for _, m := range order {
		if counts[m] > bestCount {
			best = m
			bestCount = counts[m]
		}
	}
	return best
}
