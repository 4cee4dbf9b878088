// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package tree presents Congress resources as a lazily expanded tree of
// named nodes that can be navigated with slash separated paths.
//
// Nodes are produced on demand: every call to Children or Attributes asks the
// node's Kind, which in turn queries the API. Nothing is cached, so each
// navigation step reflects the current remote state.
//
// Example:
//
//	t := tree.New(client)
//	node, err := t.Change(ctx, "applications/00-09-09-00-00-00-00-01")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	attrs, err := node.Attributes(ctx)
package tree

import (
	"context"
	"strings"
)

// Kind produces the children and attributes of a node
//
// Implementations carry the identifiers they need to fetch their data.
// Errors are returned to the caller unchanged.
type Kind interface {
	// Children returns freshly built child nodes of n, in display order
	Children(ctx context.Context, n *Node) ([]*Node, error)

	// Attributes returns display lines describing the node itself
	Attributes(ctx context.Context) ([]string, error)
}

// Node is an entry in the resource tree
type Node struct {
	name   string
	parent *Node
	kind   Kind
}

// NewNode creates a node. A nil parent makes it a root; a nil kind makes it
// an empty leaf.
func NewNode(name string, parent *Node, kind Kind) *Node {
	return &Node{name: name, parent: parent, kind: kind}
}

// Name returns the path segment of the node
func (n *Node) Name() string {
	return n.name
}

// Parent returns the owning node, or nil for the root
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether n has no parent
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// FullPath returns "/" followed by the names from the root down to n,
// joined by "/". The root itself is "/".
func (n *Node) FullPath() string {
	var names []string
	for cur := n; cur.parent != nil; cur = cur.parent {
		names = append(names, cur.name)
	}
	if len(names) == 0 {
		return "/"
	}
	var builder strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		builder.WriteByte('/')
		builder.WriteString(names[i])
	}
	return builder.String()
}

// Children returns the current children of n
func (n *Node) Children(ctx context.Context) ([]*Node, error) {
	if n.kind == nil {
		return nil, nil
	}
	return n.kind.Children(ctx, n)
}

// Attributes returns the display lines of n
func (n *Node) Attributes(ctx context.Context) ([]string, error) {
	if n.kind == nil {
		return nil, nil
	}
	return n.kind.Attributes(ctx)
}

// Static is a Kind with a fixed set of child names and attributes
//
// Child nodes are built anew on every call, each with the Kind produced by
// the matching entry of Kinds (nil for an empty leaf).
type Static struct {
	Names []string
	Kinds []Kind
	Attrs []string
}

// Children implements Kind
func (s Static) Children(_ context.Context, n *Node) ([]*Node, error) {
	nodes := make([]*Node, 0, len(s.Names))
	for i, name := range s.Names {
		var kind Kind
		if i < len(s.Kinds) {
			kind = s.Kinds[i]
		}
		nodes = append(nodes, NewNode(name, n, kind))
	}
	return nodes, nil
}

// Attributes implements Kind
func (s Static) Attributes(context.Context) ([]string, error) {
	return append([]string(nil), s.Attrs...), nil
}
