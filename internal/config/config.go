// Package config provides configuration loading and validation for the resume enhancer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Parsing holds the keyword sets driving the structural heuristics.
// Substituting a different set changes detection sensitivity only, never
// the algorithms themselves.
type Parsing struct {
	// BulletMarkers are the glyphs recognized as literal bullet markers,
	// in priority order (glyph bullets before plain dashes/asterisks).
	BulletMarkers []string `json:"bullet_markers,omitempty"`

	// JobTitleKeywords mark a line as a probable role/project header.
	JobTitleKeywords []string `json:"job_title_keywords,omitempty"`

	// ResponsibilityHeadings are prefix-matched (after normalization)
	// against candidate section headings.
	ResponsibilityHeadings []string `json:"responsibility_headings,omitempty"`

	// SectionEndKeywords close an open bullet range.
	SectionEndKeywords []string `json:"section_end_keywords,omitempty"`

	// ProjectExcludeKeywords veto header detection for summary-style lines.
	ProjectExcludeKeywords []string `json:"project_exclude_keywords,omitempty"`

	// TechNameExcludeWords are leading action verbs that mark an input
	// line as a bullet point rather than a technology name.
	TechNameExcludeWords []string `json:"tech_name_exclude_words,omitempty"`

	// MaxProjects caps how many leading projects receive new points.
	MaxProjects int `json:"max_projects,omitempty"`
}

// DefaultParsing returns the built-in keyword configuration.
func DefaultParsing() *Parsing {
	return &Parsing{
		BulletMarkers: []string{"•", "●", "◦", "▪", "▫", "‣", "*", "-"},
		JobTitleKeywords: []string{
			"developer", "engineer", "manager", "lead", "senior", "software",
			"full stack", "frontend", "backend", "architect", "analyst",
			"consultant", "specialist",
		},
		ResponsibilityHeadings: []string{
			"responsibilities", "key responsibilities", "duties", "tasks",
			"role", "position",
		},
		SectionEndKeywords: []string{
			"achievements", "technologies", "tools", "education", "certifications",
		},
		ProjectExcludeKeywords: []string{
			"summary", "skills", "education", "achievements", "responsibilities:",
		},
		TechNameExcludeWords: []string{
			"developed", "created", "implemented", "designed", "built",
			"worked", "managed", "used", "wrote", "configured",
		},
		MaxProjects: 3,
	}
}

// LoadParsing loads a keyword configuration from a JSON file and merges it
// over the defaults. Returns an error if the file cannot be read or parsed.
func LoadParsing(path string) (*Parsing, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Parsing
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	merged := cfg.MergeWithDefaults(DefaultParsing())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// MergeWithDefaults returns a new Parsing with empty fields filled from defaults.
func (p *Parsing) MergeWithDefaults(defaults *Parsing) *Parsing {
	result := *p

	if len(result.BulletMarkers) == 0 {
		result.BulletMarkers = defaults.BulletMarkers
	}
	if len(result.JobTitleKeywords) == 0 {
		result.JobTitleKeywords = defaults.JobTitleKeywords
	}
	if len(result.ResponsibilityHeadings) == 0 {
		result.ResponsibilityHeadings = defaults.ResponsibilityHeadings
	}
	if len(result.SectionEndKeywords) == 0 {
		result.SectionEndKeywords = defaults.SectionEndKeywords
	}
	if len(result.ProjectExcludeKeywords) == 0 {
		result.ProjectExcludeKeywords = defaults.ProjectExcludeKeywords
	}
	if len(result.TechNameExcludeWords) == 0 {
		result.TechNameExcludeWords = defaults.TechNameExcludeWords
	}
	if result.MaxProjects == 0 {
		result.MaxProjects = defaults.MaxProjects
	}

	return &result
}

// Validate checks that the configuration has usable values.
func (p *Parsing) Validate() error {
	if len(p.BulletMarkers) == 0 {
		return fmt.Errorf("config error: 'bullet_markers' must not be empty")
	}
	for _, m := range p.BulletMarkers {
		if m == "" {
			return fmt.Errorf("config error: empty bullet marker")
		}
	}
	if p.MaxProjects < 1 {
		return fmt.Errorf("config error: 'max_projects' must be at least 1")
	}
	return nil
}
