// Package node implements the schema node lattice for entities.
//
// A Node describes the values acceptable at one position of an entity. Nodes
// form a lattice ordered by IsSuperset: TrueNode is the top, FalseNode the
// bottom, and Combine computes the join used to infer one schema from many
// records. TryTransform validates a value against a node, coercing loosely
// typed input (text holding numbers, dates, booleans or delimited lists) into
// correctly typed values, and reports every violation found in a nested
// entity at once.
//
//	schema := node.Object().
//		Field("id", node.Integer()).Required().
//		Field("tags", node.Array(node.String())).
//		MustBuild()
//	out, changed, err := node.TransformEntity(schema, e, 1, nil)
package node
