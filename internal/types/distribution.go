//nolint:revive // types is a standard Go package name pattern
package types

// ProjectAssignment holds the points assigned to one target project,
// both as an ordered list (insertion order) and grouped per technology
// (report/display order).
type ProjectAssignment struct {
	Title        string              `json:"title"`
	ProjectIndex int                 `json:"project_index"`
	// InsertionPoint is the project's bullet-range start as detected
	// before any insertion occurred. The processor corrects it with a
	// running offset as earlier projects receive paragraphs.
	InsertionPoint int                 `json:"insertion_point"`
	BulletEnd      int                 `json:"bullet_end"`
	Points         []TechPoint         `json:"points"`
	ByTech         map[string][]string `json:"by_tech"`
}

// TotalPoints returns the number of points assigned to this project.
func (a *ProjectAssignment) TotalPoints() int {
	return len(a.Points)
}

// DistributionResult is the outcome of distributing a point pool across
// the top projects. The multiset of assigned points plus Dropped is a
// partition of the input pool: nothing is duplicated and nothing is lost.
type DistributionResult struct {
	Projects      []ProjectAssignment `json:"projects"`
	TotalAssigned int                 `json:"total_assigned"`
	Dropped       []TechPoint         `json:"dropped,omitempty"`
}

// ByTitle returns the title→tech→points view consumed by the UI layer.
func (d *DistributionResult) ByTitle() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(d.Projects))
	for _, p := range d.Projects {
		out[p.Title] = p.ByTech
	}
	return out
}
