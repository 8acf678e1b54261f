// Package detect infers project spans from an ordered résumé paragraph
// stream. Detection is a single forward pass over heuristic predicates;
// it never mutates its input and degrades to an empty result on documents
// with no recognizable structure.
package detect

import (
	"strings"

	"github.com/jonathan/resume-enhancer/internal/docx"
	"github.com/jonathan/resume-enhancer/internal/heuristics"
	"github.com/jonathan/resume-enhancer/internal/types"
)

// Detector finds projects and their responsibility bullet ranges.
type Detector struct {
	rules *heuristics.Rules
}

// New creates a detector over the given heuristic rules.
func New(rules *heuristics.Rules) *Detector {
	return &Detector{rules: rules}
}

// openProject tracks the project currently being assembled.
type openProject struct {
	title       string
	titledExtra bool // a continuation job-title line was already absorbed
	startIndex  int
	bulletStart int // -1 until a heading or bullet gives evidence
	bulletEnd   int
}

// FindProjects walks the paragraphs once and returns the detected
// projects in document order. Projects with no bullet evidence at all
// (neither an explicit responsibilities heading nor a single bullet-like
// line) are discarded.
func (d *Detector) FindProjects(paragraphs []*docx.Paragraph) []types.Project {
	var projects []types.Project
	var current *openProject

	close := func(at int) {
		if current == nil {
			return
		}
		if current.bulletStart != -1 {
			end := lastContentIndex(paragraphs, at-1, current.startIndex)
			projects = append(projects, types.Project{
				Title:      current.title,
				StartIndex: current.startIndex,
				EndIndex:   end,
				Bullets: types.BulletRange{
					Start: current.bulletStart,
					End:   current.bulletEnd,
				},
			})
		}
		current = nil
	}

	for i, para := range paragraphs {
		text := strings.TrimSpace(para.Text)
		if text == "" {
			continue
		}

		switch {
		case d.rules.IsProjectHeader(text):
			close(i)
			current = &openProject{
				title:       text,
				startIndex:  i,
				bulletStart: -1,
				bulletEnd:   -1,
			}

		case current == nil:
			// Text before the first header belongs to no project.

		case d.rules.IsResponsibilitiesHeading(text):
			// The heading is evidence by itself; bullets start after it.
			// It wins over a preceding introductory paragraph and never
			// counts as a bullet.
			if current.bulletStart == -1 {
				current.bulletStart = i + 1
				current.bulletEnd = i
			}

		case d.rules.IsBullet(text):
			if current.bulletStart == -1 {
				current.bulletStart = i
			}
			current.bulletEnd = i

		case d.rules.IsIntroductory(text):
			// Skipped entirely: never titled, never bulleted.

		case d.rules.IsSectionEnd(text):
			close(i)

		case !current.titledExtra && current.bulletStart == -1:
			// First plain line under a fresh header is a job-title
			// continuation of the header itself.
			current.title = current.title + " - " + text
			current.titledExtra = true
		}
	}

	close(len(paragraphs))
	return projects
}

// lastContentIndex scans backwards from "from" to "floor" for the last
// non-empty paragraph, giving the closed project its end index.
func lastContentIndex(paragraphs []*docx.Paragraph, from, floor int) int {
	if from >= len(paragraphs) {
		from = len(paragraphs) - 1
	}
	for j := from; j >= floor; j-- {
		if strings.TrimSpace(paragraphs[j].Text) != "" {
			return j
		}
	}
	return floor
}
