// Package heuristics provides the pure text predicates used to infer
// résumé structure from an unstructured paragraph stream. Every predicate
// operates on a single paragraph's text, holds no state, and is driven by
// the keyword sets in config.Parsing: swapping keywords changes detection
// sensitivity, never the rules themselves.
package heuristics

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-enhancer/internal/config"
)

var (
	numberedRe  = regexp.MustCompile(`^\d+\.`)
	monthRe     = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\b`)
	yearRe      = regexp.MustCompile(`\b\d{4}\b`)
	dateSlashRe = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	presentRe   = regexp.MustCompile(`\b(present|current|now)\b`)
	normRe      = regexp.MustCompile(`[^a-z ]`)
	spaceRe     = regexp.MustCompile(`\s+`)
	numPrefixRe = regexp.MustCompile(`^\d+[.)][ \t]*`)
)

// glyphMarkers are the bullet glyphs preferred over plain dashes and
// asterisks when several markers appear in one document.
var glyphMarkers = []string{"•", "●", "◦", "▪", "▫", "‣"}

// Rules bundles the configured keyword sets behind the predicate methods.
type Rules struct {
	markers          []string
	jobTitleKeywords []string
	respHeadings     []string
	sectionEnds      []string
	projectExcludes  []string
}

// New builds a rule set from the given parsing configuration.
func New(cfg *config.Parsing) *Rules {
	if cfg == nil {
		cfg = config.DefaultParsing()
	}
	return &Rules{
		markers:          cfg.BulletMarkers,
		jobTitleKeywords: cfg.JobTitleKeywords,
		respHeadings:     cfg.ResponsibilityHeadings,
		sectionEnds:      cfg.SectionEndKeywords,
		projectExcludes:  cfg.ProjectExcludeKeywords,
	}
}

// IsBullet reports whether the text starts with a recognized bullet marker
// or a numbered-list prefix. Numbered lines count as bullets equivalently
// to marker bullets.
func (r *Rules) IsBullet(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for _, m := range r.markers {
		if strings.HasPrefix(text, m) {
			return true
		}
	}
	return numberedRe.MatchString(text)
}

// IsProjectHeader reports whether the text looks like a project/role
// header line opening a new work-experience block.
func (r *Rules) IsProjectHeader(text string) bool {
	text = strings.TrimSpace(text)
	if r.IsBullet(text) {
		return false
	}
	if len(strings.Fields(text)) < 2 {
		return false
	}
	lower := strings.ToLower(text)
	for _, kw := range r.projectExcludes {
		if strings.Contains(lower, kw) {
			return false
		}
	}

	// "Company | Jan 2020 - Present" style
	if strings.Contains(text, "|") && r.LooksLikeCompanyDate(text) {
		return true
	}
	// "Client - Company - Jan 2020" style
	if strings.Contains(text, " - ") && monthRe.MatchString(lower) {
		return true
	}
	// "Role at Company (Location)" style
	if strings.Contains(text, " at ") && strings.Contains(text, "(") && strings.Contains(text, ")") {
		return true
	}
	for _, kw := range r.jobTitleKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// LooksLikeCompanyDate reports whether the segment after the last "|"
// looks like a date range (month name, 4-digit year, mm/dd/yyyy, or a
// present/current marker).
func (r *Rules) LooksLikeCompanyDate(text string) bool {
	idx := strings.LastIndex(text, "|")
	if idx < 0 {
		return false
	}
	datePart := strings.ToLower(strings.TrimSpace(text[idx+1:]))
	return monthRe.MatchString(datePart) ||
		yearRe.MatchString(datePart) ||
		dateSlashRe.MatchString(datePart) ||
		presentRe.MatchString(datePart)
}

// IsResponsibilitiesHeading reports whether the text is a responsibilities
// section heading. The text is normalized (lower-cased, punctuation
// stripped, spaces collapsed) and prefix-matched against the configured
// heading set.
func (r *Rules) IsResponsibilitiesHeading(text string) bool {
	norm := normRe.ReplaceAllString(strings.ToLower(text), "")
	norm = strings.TrimSpace(spaceRe.ReplaceAllString(norm, " "))
	if norm == "" {
		return false
	}
	for _, h := range r.respHeadings {
		if strings.HasPrefix(norm, h) {
			return true
		}
	}
	return false
}

// IsIntroductory reports whether the text is an introductory sentence
// under a header: not a bullet, not all-caps, at least ten words, and
// free of responsibilities/role keywords. Such lines are skipped entirely,
// never titled, never bulleted.
func (r *Rules) IsIntroductory(text string) bool {
	text = strings.TrimSpace(text)
	if r.IsBullet(text) {
		return false
	}
	if isAllCaps(text) {
		return false
	}
	lower := strings.ToLower(text)
	for _, h := range r.respHeadings {
		if strings.Contains(lower, h) {
			return false
		}
	}
	return len(strings.Fields(text)) >= 10
}

// IsSectionEnd reports whether the text closes an open responsibilities
// section: a markdown-style heading marker or a configured end keyword.
func (r *Rules) IsSectionEnd(text string) bool {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "#") {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range r.sectionEnds {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsGlyph reports whether the marker is one of the bullet glyphs, as
// opposed to a plain dash, asterisk, or numbered prefix.
func IsGlyph(marker string) bool {
	for _, m := range glyphMarkers {
		if marker == m {
			return true
		}
	}
	return false
}

// Marker extracts the bullet marker from a bullet line, preferring glyph
// bullets, then the configured plain markers, then numbered prefixes.
// Defaults to "•".
func (r *Rules) Marker(text string) string {
	text = strings.TrimSpace(text)
	for _, m := range glyphMarkers {
		if strings.HasPrefix(text, m) && len(text) > len(m) {
			return m
		}
	}
	for _, m := range r.markers {
		if strings.HasPrefix(text, m) && len(text) > len(m) {
			return m
		}
	}
	if text != "" && unicode.IsDigit(rune(text[0])) {
		for i, c := range text {
			if c == '.' || c == ')' {
				return text[:i+1]
			}
		}
	}
	return "•"
}

// Separator reports whether a bullet line separates marker and text with
// a tab or a space. Defaults to tab.
func (r *Rules) Separator(text string) string {
	text = strings.TrimSpace(text)
	for _, m := range r.markers {
		if strings.HasPrefix(text, m+"\t") {
			return "\t"
		}
		if strings.HasPrefix(text, m+" ") {
			return " "
		}
	}
	return "\t"
}

// Clean strips any leading bullet-marker characters, numbered prefixes,
// and separator whitespace from the literal text.
func (r *Rules) Clean(text string) string {
	text = strings.TrimSpace(text)
	if numPrefixRe.MatchString(text) {
		return strings.TrimSpace(numPrefixRe.ReplaceAllString(text, ""))
	}
	return strings.TrimLeft(text, "-•*●◦▪▫‣ \t")
}

// isAllCaps reports whether the text contains letters and no lowercase.
func isAllCaps(text string) bool {
	hasLetter := false
	for _, c := range text {
		if unicode.IsLetter(c) {
			hasLetter = true
			if unicode.IsLower(c) {
				return false
			}
		}
	}
	return hasLetter
}
