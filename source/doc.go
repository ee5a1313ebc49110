// Package source reads entities out of JSON and YAML documents, keeping
// property order.
package source
