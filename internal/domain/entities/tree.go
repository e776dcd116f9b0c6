package entities

import "sort"

// WalkOptions controls a bounded tree walk
type WalkOptions struct {
	IgnoreDirs []string
	MaxDepth   int // <= 0 means unbounded
	MaxFiles   int // <= 0 means unbounded
}

// TreeIndex is what a tree walk observed: file names, counts and soft failures
type TreeIndex struct {
	Partial  bool
	Files    int
	Dirs     int
	Warnings []Warning

	names map[string]struct{}
}

// NewTreeIndex creates an empty index
func NewTreeIndex() *TreeIndex {
	return &TreeIndex{names: make(map[string]struct{})}
}

// AddFile records a visited file by its basename
func (t *TreeIndex) AddFile(name string) {
	t.Files++
	t.names[name] = struct{}{}
}

// AddWarning records a soft read failure for a path relative to the root
func (t *TreeIndex) AddWarning(path, message string) {
	t.Warnings = append(t.Warnings, Warning{Path: path, Message: message})
}

// HasName reports whether a file with exactly this basename was visited
func (t *TreeIndex) HasName(name string) bool {
	_, ok := t.names[name]
	return ok
}

// Names returns the visited basenames in sorted order
func (t *TreeIndex) Names() []string {
	out := make([]string, 0, len(t.names))
	for name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
