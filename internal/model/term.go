package model

// Term is one node of the vehicle taxonomy. Root terms are brands, children
// of a brand are models. The catalog replica owns the lifecycle; this service
// only reads.
type Term struct {
	ID       int64  `db:"id" json:"id"`
	ParentID *int64 `db:"parent_id" json:"-"` // Nullable, nil for brands
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
}
