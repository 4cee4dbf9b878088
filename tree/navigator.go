// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package tree

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/netascode/go-lassie"
)

// Navigation failures, wrapped in *NavigationError
var (
	// ErrNoSuchEntry means a path segment matched no child of the working node
	ErrNoSuchEntry = errors.New("no such entry")

	// ErrAboveRoot means ".." was applied to the root
	ErrAboveRoot = errors.New("cannot move above root")
)

// NavigationError reports a path that could not be resolved
//
// It is distinct from fetch errors, which Change returns unchanged.
type NavigationError struct {
	// Path is the path spec passed to Change
	Path string

	// Segment is the segment that failed to resolve
	Segment string

	// Working is the full path of the node the segment was applied to
	Working string

	// Err is ErrNoSuchEntry or ErrAboveRoot
	Err error
}

// Error implements the error interface
func (e *NavigationError) Error() string {
	return fmt.Sprintf("cd %s: %q at %s: %v", e.Path, e.Segment, e.Working, e.Err)
}

// Unwrap returns ErrNoSuchEntry or ErrAboveRoot
func (e *NavigationError) Unwrap() error {
	return e.Err
}

// IsNavigationError reports whether err is a *NavigationError
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// NodeTree is a navigable resource tree with a current node cursor
//
// Change calls are serialized. Change holds the tree lock while it fetches
// children, so Current blocks until a navigation in progress has finished.
// Children and Attributes of nodes may be called concurrently if the
// ResourceClient allows it.
type NodeTree struct {
	mu      sync.Mutex
	root    *Node
	current *Node
	logger  lassie.Logger
}

// WithLogger sets the logger used for navigation debug output
func WithLogger(logger lassie.Logger) func(*NodeTree) {
	return func(t *NodeTree) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New builds the Congress resource tree backed by client
//
// The root has two fixed children, "applications" and "gateways". The
// cursor starts at the root.
func New(client ResourceClient, opts ...func(*NodeTree)) *NodeTree {
	return NewWithRoot(newRoot(client), opts...)
}

// NewWithRoot builds a tree over an existing root node
func NewWithRoot(root *Node, opts ...func(*NodeTree)) *NodeTree {
	t := &NodeTree{
		root:    root,
		current: root,
		logger:  &lassie.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the root node
func (t *NodeTree) Root() *Node {
	return t.root
}

// Current returns the node under the cursor
//
// It waits for a concurrent Change to complete and then reports its result.
func (t *NodeTree) Current() *Node {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Change resolves pathSpec relative to the current node and moves the cursor
// to the result
//
// Segments are separated by "/" and trimmed; empty segments are skipped, so
// a leading "/" does not make the path absolute. ".." moves to the parent.
// Any other segment must equal the name of a child of the working node
// exactly; the first matching child wins.
//
// On failure the cursor is left unchanged. Unresolved segments yield a
// *NavigationError; errors from fetching children are returned as is.
//
// Example:
//
//	if _, err := t.Change(ctx, "applications/A1/devices"); err != nil {
//	    if tree.IsNavigationError(err) {
//	        fmt.Println("no such path")
//	    }
//	}
func (t *NodeTree) Change(ctx context.Context, pathSpec string) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	working := t.current
	for _, raw := range strings.Split(pathSpec, "/") {
		segment := strings.TrimSpace(raw)
		if segment == "" {
			continue
		}

		if segment == ".." {
			if working.parent == nil {
				return nil, t.navigationError(ctx, pathSpec, segment, working, ErrAboveRoot)
			}
			working = working.parent
			continue
		}

		children, err := working.Children(ctx)
		if err != nil {
			t.logger.Debug(ctx, "fetching children failed",
				"path", working.FullPath(),
				"error", err.Error())
			return nil, err
		}
		next := findChild(children, segment)
		if next == nil {
			return nil, t.navigationError(ctx, pathSpec, segment, working, ErrNoSuchEntry)
		}
		working = next
	}

	t.logger.Debug(ctx, "changed node",
		"from", t.current.FullPath(),
		"to", working.FullPath())
	t.current = working
	return working, nil
}

func (t *NodeTree) navigationError(ctx context.Context, pathSpec, segment string, working *Node, cause error) error {
	t.logger.Debug(ctx, "navigation failed",
		"path", pathSpec,
		"segment", segment,
		"error", cause.Error())
	return &NavigationError{
		Path:    pathSpec,
		Segment: segment,
		Working: working.FullPath(),
		Err:     cause,
	}
}

// findChild returns the first child named name, or nil
func findChild(children []*Node, name string) *Node {
	for _, c := range children {
		if c.name == name {
			return c
		}
	}
	return nil
}
