//nolint:revive // types is a standard Go package name pattern
package types

// ProcessResult is the outcome of one document processing request.
// ModifiedContent is nil when Success is false; PointsAdded counts the
// insertions that actually landed (may be lower than the distribution
// total when individual insertions failed).
type ProcessResult struct {
	Success         bool                           `json:"success"`
	Filename        string                         `json:"filename,omitempty"`
	ModifiedContent []byte                         `json:"-"`
	PointsAdded     int                            `json:"points_added"`
	PointsSkipped   int                            `json:"points_skipped,omitempty"`
	ProjectsUsed    int                            `json:"projects_used"`
	Distribution    map[string]map[string][]string `json:"distribution,omitempty"`
	Error           string                         `json:"error,omitempty"`
}
