// Package ast defines the statement and expression trees produced by the
// parser. The node types are generated from nodes.adt.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go"
