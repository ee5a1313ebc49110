package node

import (
	"context"
	"fmt"

	"github.com/reoring/entschema"
	"github.com/reoring/entschema/entity"
	"github.com/reoring/entschema/format"
)

// TransformEntity validates the top-level entity e, read from row, against
// schema. It returns e unchanged with false when e already conforms.
func TransformEntity(schema Node, e entity.Entity, row int, s *format.TransformSettings) (entity.Entity, bool, error) {
	root := entschema.NewTransformRoot(row, e)
	out, changed, err := orTrue(schema).TryTransform(entschema.Root(), e, s, root)
	if err != nil {
		return e, false, err
	}
	if !changed {
		return e, false, nil
	}
	oe, ok := out.(entity.Entity)
	if !ok {
		return e, false, fmt.Errorf("node: row %d: schema produced %s, not an entity", row, out.Kind())
	}
	return oe, true, nil
}

// TransformAll transforms every entity, numbering rows from 1. Violations of
// all rows are aggregated; entities that fail are returned unchanged. ctx is
// checked between entities.
func TransformAll(ctx context.Context, schema Node, entities []entity.Entity, s *format.TransformSettings) ([]entity.Entity, error) {
	s = s.OrDefault()
	out := make([]entity.Entity, len(entities))
	var vs entschema.Violations
	for i, e := range entities {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("node: transform stopped at row %d: %w", i+1, err)
		}
		row := i + 1
		te, _, err := TransformEntity(schema, e, row, s)
		if err != nil {
			vs = entschema.Collect(vs, err, entschema.Root(), entschema.NewTransformRoot(row, e))
		}
		out[i] = te
	}
	if len(vs) > 0 {
		return out, vs
	}
	return out, nil
}
