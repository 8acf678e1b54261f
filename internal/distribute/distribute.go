// Package distribute assigns technology bullet points to detected
// projects. Assignment is deterministic round-robin in input order: every
// target project receives an interleaved mix of technologies and point
// counts differ by at most one, except where duplicate texts force drops.
package distribute

import (
	"strings"

	"github.com/jonathan/resume-enhancer/internal/types"
)

// DefaultTopProjects is how many leading projects receive new points.
const DefaultTopProjects = 3

// Distributor calculates point distributions. It never touches the
// document; the processor applies the result.
type Distributor struct {
	topProjects int
}

// New creates a distributor targeting the first n projects. n < 1 falls
// back to the default of 3.
func New(n int) *Distributor {
	if n < 1 {
		n = DefaultTopProjects
	}
	return &Distributor{topProjects: n}
}

// Distribute spreads the point pool across the top projects. Points are
// walked in stack order, then point order within a stack. Each point is
// offered to projects starting at a rotating cursor; the first project
// not already holding that exact text takes it and the cursor advances
// past it. A point every project already holds is dropped, never
// duplicated and never retried.
func (d *Distributor) Distribute(projects []types.Project, stacks []types.TechStack) types.DistributionResult {
	var result types.DistributionResult

	top := projects
	if len(top) > d.topProjects {
		top = top[:d.topProjects]
	}
	if len(top) == 0 {
		return result
	}

	n := len(top)
	assignments := make([]types.ProjectAssignment, n)
	seen := make([]map[string]bool, n)
	for i, p := range top {
		assignments[i] = types.ProjectAssignment{
			Title:          p.Title,
			ProjectIndex:   i,
			InsertionPoint: p.Bullets.Start,
			BulletEnd:      p.Bullets.End,
			ByTech:         make(map[string][]string),
		}
		seen[i] = make(map[string]bool)
	}

	next := 0
	for _, stack := range stacks {
		for _, point := range stack.Points {
			assigned := false
			for step := 0; step < n; step++ {
				idx := (next + step) % n
				if seen[idx][point] {
					continue
				}
				a := &assignments[idx]
				a.Points = append(a.Points, types.TechPoint{Tech: stack.Name, Text: point})
				a.ByTech[stack.Name] = append(a.ByTech[stack.Name], point)
				seen[idx][point] = true
				next = (idx + 1) % n
				assigned = true
				break
			}
			if !assigned {
				result.Dropped = append(result.Dropped, types.TechPoint{Tech: stack.Name, Text: point})
			}
		}
	}

	for _, a := range assignments {
		result.TotalAssigned += len(a.Points)
	}
	result.Projects = assignments
	return result
}

// Normalize converts the ordered-pair input form (points plus technology
// names) into ordered stacks by case-insensitive substring match of each
// point against the technology names. Points matching no technology fall
// into a trailing "General" stack so nothing is lost before distribution.
func Normalize(points, techNames []string) []types.TechStack {
	stacks := make([]types.TechStack, 0, len(techNames)+1)
	index := make(map[string]int, len(techNames))
	for _, name := range techNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := index[name]; ok {
			continue
		}
		index[name] = len(stacks)
		stacks = append(stacks, types.TechStack{Name: name})
	}

	var general []string
	for _, point := range points {
		point = strings.TrimSpace(point)
		if point == "" {
			continue
		}
		lower := strings.ToLower(point)
		matched := false
		for i := range stacks {
			if strings.Contains(lower, strings.ToLower(stacks[i].Name)) {
				stacks[i].Points = append(stacks[i].Points, point)
				matched = true
				break
			}
		}
		if !matched {
			general = append(general, point)
		}
	}

	if len(general) > 0 {
		stacks = append(stacks, types.TechStack{Name: "General", Points: general})
	}

	out := stacks[:0]
	for _, s := range stacks {
		if len(s.Points) > 0 {
			out = append(out, s)
		}
	}
	return out
}
