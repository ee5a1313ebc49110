package entschema

import "github.com/reoring/entschema/entity"

// TransformRoot is the diagnostic context attached to every violation raised
// while transforming one top-level entity.
type TransformRoot struct {
	// Row is the 1-based record number; 0 when unknown.
	Row int
	// Entity is the top-level entity being transformed.
	Entity entity.Entity
}

// NewTransformRoot returns the context for record e at row.
func NewTransformRoot(row int, e entity.Entity) TransformRoot {
	return TransformRoot{Row: row, Entity: e}
}
