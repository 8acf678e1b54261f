package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlockFormat(t *testing.T) {
	p := New(nil)
	input := "Go\nWrote microservices in Go\nProfiled allocation hot spots\n\nPostgreSQL\nTuned slow queries with EXPLAIN"

	points, techs := p.Parse(input)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, techs)
	assert.Equal(t, []string{
		"Wrote microservices in Go",
		"Profiled allocation hot spots",
		"Tuned slow queries with EXPLAIN",
	}, points)
}

func TestParseBlockWithoutTechName(t *testing.T) {
	p := New(nil)
	// Blocks opening with action verbs carry no technology name, so block
	// parsing yields points but no techs and the legacy fallback finds
	// nothing either.
	input := "Developed the billing pipeline\nCreated the audit log"

	points, techs := p.Parse(input)

	assert.Empty(t, techs)
	assert.Empty(t, points)
}

func TestParseLegacyFormat(t *testing.T) {
	p := New(nil)
	input := "Developed: • Shipped the billing service • Cut p99 latency in half\nManaged: • Ran the on-call rotation"

	points, techs := p.Parse(input)

	assert.Equal(t, []string{"Developed", "Managed"}, techs)
	assert.Equal(t, []string{
		"Shipped the billing service",
		"Cut p99 latency in half",
		"Ran the on-call rotation",
	}, points)
}

func TestParseEmpty(t *testing.T) {
	p := New(nil)

	points, techs := p.Parse("")

	assert.Empty(t, points)
	assert.Empty(t, techs)
}

func TestLooksLikeTechName(t *testing.T) {
	p := New(nil)
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"short name", "Go", true},
		{"two words", "Spring Boot", true},
		{"three words", "React Native SDK", true},
		{"action verb prefix", "Developed the payments API", false},
		{"action verb alone", "Built", false},
		{"long line with keyword", "Frontend work with React and friends", true},
		{"long line no keyword", "Responsible for the quarterly planning cycle", false},
		{"empty", "   ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.looksLikeTechName(tc.line))
		})
	}
}

func TestParseManualPoints(t *testing.T) {
	input := "- First point\n• Second point\n* Third point\n\nFourth point"

	got := ParseManualPoints(input)

	assert.Equal(t, []string{
		"First point",
		"Second point",
		"Third point",
		"Fourth point",
	}, got)
}

func TestParseManualPointsEmpty(t *testing.T) {
	assert.Nil(t, ParseManualPoints("  \n  "))
}
