// Package ast defines the node tree consumed by the analyzer.
//
// The tree is a tagged union over construct kinds. Nodes are produced by the
// bundled parser (or any compatible front end) and are borrowed read-only by
// analysis; no analysis state is stored in them.
package ast
