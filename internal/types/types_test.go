package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStacksFromMap(t *testing.T) {
	stacks := StacksFromMap(map[string][]string{
		"SQL":    {"Tuned queries"},
		"Go":     {"Wrote services", "Profiled memory"},
		"Docker": {"Containerized the build"},
	})

	assert.Equal(t, []TechStack{
		{Name: "Docker", Points: []string{"Containerized the build"}},
		{Name: "Go", Points: []string{"Wrote services", "Profiled memory"}},
		{Name: "SQL", Points: []string{"Tuned queries"}},
	}, stacks, "keys are sorted so the output is stable")
}

func TestStacksFromMapEmpty(t *testing.T) {
	assert.Empty(t, StacksFromMap(nil))
}

func TestTotalPoints(t *testing.T) {
	stacks := []TechStack{
		{Name: "Go", Points: []string{"a", "b"}},
		{Name: "SQL", Points: nil},
		{Name: "Docker", Points: []string{"c"}},
	}
	assert.Equal(t, 3, TotalPoints(stacks))
	assert.Zero(t, TotalPoints(nil))
}

func TestBulletRangeEmpty(t *testing.T) {
	assert.True(t, BulletRange{Start: 3, End: 2}.Empty(), "heading with no bullets yet")
	assert.False(t, BulletRange{Start: 2, End: 2}.Empty())
	assert.False(t, BulletRange{Start: 2, End: 5}.Empty())
}

func TestDistributionByTitle(t *testing.T) {
	d := DistributionResult{
		Projects: []ProjectAssignment{
			{Title: "Acme", ByTech: map[string][]string{"Go": {"p1"}}},
			{Title: "Beta", ByTech: map[string][]string{"SQL": {"p2", "p3"}}},
		},
	}

	view := d.ByTitle()
	assert.Equal(t, []string{"p1"}, view["Acme"]["Go"])
	assert.Equal(t, []string{"p2", "p3"}, view["Beta"]["SQL"])
}

func TestAssignmentTotalPoints(t *testing.T) {
	a := ProjectAssignment{Points: []TechPoint{
		{Tech: "Go", Text: "p1"},
		{Tech: "SQL", Text: "p2"},
	}}
	assert.Equal(t, 2, a.TotalPoints())
}
