package distribute

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-enhancer/internal/types"
)

func projects(n int) []types.Project {
	out := make([]types.Project, n)
	for i := range out {
		out[i] = types.Project{
			Title:      fmt.Sprintf("Project %d", i+1),
			StartIndex: i * 10,
			Bullets:    types.BulletRange{Start: i*10 + 2, End: i*10 + 4},
		}
	}
	return out
}

func TestDistributeRoundRobin(t *testing.T) {
	d := New(3)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2", "g3"}},
		{Name: "SQL", Points: []string{"s1", "s2", "s3"}},
	}

	result := d.Distribute(projects(3), stacks)

	require.Len(t, result.Projects, 3)
	assert.Equal(t, 6, result.TotalAssigned)
	assert.Empty(t, result.Dropped)

	// Rotating cursor interleaves technologies across projects.
	texts := func(i int) []string {
		var out []string
		for _, p := range result.Projects[i].Points {
			out = append(out, p.Text)
		}
		return out
	}
	assert.Equal(t, []string{"g1", "s1"}, texts(0))
	assert.Equal(t, []string{"g2", "s2"}, texts(1))
	assert.Equal(t, []string{"g3", "s3"}, texts(2))
}

func TestDistributeBalance(t *testing.T) {
	d := New(3)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2", "g3", "g4", "g5", "g6", "g7"}},
	}

	result := d.Distribute(projects(3), stacks)

	counts := []int{
		len(result.Projects[0].Points),
		len(result.Projects[1].Points),
		len(result.Projects[2].Points),
	}
	assert.Equal(t, 7, counts[0]+counts[1]+counts[2])
	for _, c := range counts {
		assert.InDelta(t, 7.0/3.0, float64(c), 1.0, "counts differ by at most one")
	}
}

func TestDistributeDeterministic(t *testing.T) {
	d := New(3)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2"}},
		{Name: "AWS", Points: []string{"a1"}},
		{Name: "SQL", Points: []string{"s1", "s2"}},
	}

	first := d.Distribute(projects(3), stacks)
	second := d.Distribute(projects(3), stacks)
	assert.Equal(t, first, second)
}

func TestDistributeDuplicateSkipsProject(t *testing.T) {
	d := New(2)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"same", "same"}},
	}

	result := d.Distribute(projects(2), stacks)

	assert.Equal(t, 2, result.TotalAssigned)
	require.Len(t, result.Projects[0].Points, 1)
	require.Len(t, result.Projects[1].Points, 1)
	assert.Empty(t, result.Dropped)
}

func TestDistributeDuplicateEverywhereDropped(t *testing.T) {
	d := New(2)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"same", "same", "same"}},
	}

	result := d.Distribute(projects(2), stacks)

	assert.Equal(t, 2, result.TotalAssigned)
	require.Len(t, result.Dropped, 1)
	assert.Equal(t, "same", result.Dropped[0].Text)
	assert.Equal(t, "Go", result.Dropped[0].Tech)
}

func TestDistributeTopProjectsOnly(t *testing.T) {
	d := New(3)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2", "g3", "g4"}},
	}

	result := d.Distribute(projects(5), stacks)

	require.Len(t, result.Projects, 3, "only the top three projects receive points")
	assert.Equal(t, 4, result.TotalAssigned)
}

func TestDistributeFewerProjectsThanCap(t *testing.T) {
	d := New(3)
	stacks := []types.TechStack{
		{Name: "Go", Points: []string{"g1", "g2", "g3"}},
	}

	result := d.Distribute(projects(1), stacks)

	require.Len(t, result.Projects, 1)
	assert.Equal(t, 3, result.TotalAssigned)
}

func TestDistributeNoProjects(t *testing.T) {
	d := New(3)
	result := d.Distribute(nil, []types.TechStack{{Name: "Go", Points: []string{"g1"}}})
	assert.Empty(t, result.Projects)
	assert.Zero(t, result.TotalAssigned)
}

func TestDistributeCarriesInsertionPoints(t *testing.T) {
	d := New(3)
	projs := projects(2)
	result := d.Distribute(projs, []types.TechStack{{Name: "Go", Points: []string{"g1"}}})

	require.Len(t, result.Projects, 2)
	assert.Equal(t, projs[0].Bullets.Start, result.Projects[0].InsertionPoint)
	assert.Equal(t, projs[0].Bullets.End, result.Projects[0].BulletEnd)
	assert.Equal(t, projs[1].Title, result.Projects[1].Title)
}

func TestNormalize(t *testing.T) {
	points := []string{
		"Built Go microservices",
		"Tuned SQL queries",
		"Improved deployment automation",
	}
	stacks := Normalize(points, []string{"Go", "SQL"})

	require.Len(t, stacks, 3)
	assert.Equal(t, "Go", stacks[0].Name)
	assert.Equal(t, []string{"Built Go microservices"}, stacks[0].Points)
	assert.Equal(t, "SQL", stacks[1].Name)
	assert.Equal(t, "General", stacks[2].Name)
	assert.Equal(t, []string{"Improved deployment automation"}, stacks[2].Points)
}

func TestNormalizeDropsEmptyStacks(t *testing.T) {
	stacks := Normalize([]string{"Used Python daily"}, []string{"Go", "Python"})
	require.Len(t, stacks, 1)
	assert.Equal(t, "Python", stacks[0].Name)
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil, nil))
	assert.Empty(t, Normalize([]string{"", "  "}, []string{"Go"}))
}
