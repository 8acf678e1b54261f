// Package parsing extracts technology names and bullet points from the
// free-text input accompanying a processing request. Two formats are
// accepted: the block format (a technology name line followed by its
// point lines, blocks separated by blank lines) and the legacy inline
// format ("Tech: • point • point").
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-enhancer/internal/config"
)

var (
	legacyStackRe = regexp.MustCompile(`(?m)^([A-Za-z0-9_+#\- ]+):\s*((?:•\s*.+\n?)+)`)
	legacyPointRe = regexp.MustCompile(`•\s*([^•\n]+)`)
)

// techKeywords mark a line as a technology name even when it is longer
// than a couple of words.
var techKeywords = []string{
	"python", "javascript", "java", "react", "node", "aws", "sql", "html",
	"css", "git", "docker", "kubernetes", "angular", "vue", "typescript",
	"c++", "c#", ".net", "php", "ruby", "go", "rust", "swift", "kotlin",
	"flutter", "django", "flask", "spring", "laravel", "express",
}

// Parser splits request text into bullet points and the technology names
// they belong to.
type Parser struct {
	excludeWords []string
}

// New builds a parser from the parsing configuration. A nil configuration
// uses the built-in defaults.
func New(cfg *config.Parsing) *Parser {
	if cfg == nil {
		cfg = config.DefaultParsing()
	}
	return &Parser{excludeWords: cfg.TechNameExcludeWords}
}

// Parse tries the block format first and falls back to the legacy inline
// format when the block form yields nothing. Returns the points and the
// technology names, both in input order.
func (p *Parser) Parse(text string) (points, techs []string) {
	points, techs = p.parseBlocks(text)
	if len(points) > 0 && len(techs) > 0 {
		return points, techs
	}
	return parseLegacy(text)
}

// parseBlocks handles the block format. The first line of each block is
// the technology name when it passes looksLikeTechName; otherwise the
// whole block is treated as loose points.
func (p *Parser) parseBlocks(text string) (points, techs []string) {
	var blocks [][]string
	var current []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	for _, block := range blocks {
		if p.looksLikeTechName(block[0]) {
			techs = append(techs, block[0])
			points = append(points, block[1:]...)
		} else {
			points = append(points, block...)
		}
	}
	return points, techs
}

// parseLegacy handles the "Tech: • point • point" format.
func parseLegacy(text string) (points, techs []string) {
	for _, m := range legacyStackRe.FindAllStringSubmatch(text, -1) {
		techs = append(techs, strings.TrimSpace(m[1]))
		for _, pm := range legacyPointRe.FindAllStringSubmatch(m[2], -1) {
			points = append(points, strings.TrimSpace(pm[1]))
		}
	}
	return points, techs
}

// looksLikeTechName distinguishes a technology name line from a bullet
// point line. Lines opening with an action word are points; short lines
// and lines mentioning a known technology are names.
func (p *Parser) looksLikeTechName(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}
	for _, word := range p.excludeWords {
		if strings.HasPrefix(lower, word) {
			return false
		}
	}
	if len(strings.Fields(line)) <= 3 {
		return true
	}
	for _, kw := range techKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return len(strings.Fields(line)) <= 2
}

// ParseManualPoints splits manually entered points, one per line, and
// strips any leading bullet markers the operator pasted in.
func ParseManualPoints(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.TrimLeft(line, "-•* "))
	}
	return out
}
