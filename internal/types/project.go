//nolint:revive // types is a standard Go package name pattern
package types

// BulletRange is the paragraph-index interval holding a project's
// responsibility bullets. Start == -1 means no evidence was found yet;
// End < Start means an explicit responsibilities heading exists but no
// bullet lines were detected under it.
type BulletRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Empty reports whether the range holds no bullet paragraphs.
func (r BulletRange) Empty() bool {
	return r.Start < 0 || r.End < r.Start
}

// Project is an inferred work-experience block within the résumé: a header
// line (plus an optional job-title continuation line) and the span of its
// responsibility bullets. Indices are paragraph ordinals in document order.
type Project struct {
	Title      string      `json:"title"`
	StartIndex int         `json:"start_index"`
	EndIndex   int         `json:"end_index"`
	Bullets    BulletRange `json:"bullet_range"`
}
