package repo

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/odvcencio/dit/pkg/textmerge"
	"github.com/odvcencio/dit/pkg/tree"
)

// ChangeType classifies a file in a Diff.
type ChangeType int

const (
	Added ChangeType = iota
	Modified
	Removed
)

func (t ChangeType) String() string {
	switch t {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// FileChange is one file the next commit would change.
type FileChange struct {
	Path   string
	Type   ChangeType
	Before []byte
	After  []byte
}

// Patch renders the change as a unified diff.
func (c FileChange) Patch() (string, error) {
	from, to := "a/"+c.Path, "b/"+c.Path
	switch c.Type {
	case Added:
		from = "/dev/null"
	case Removed:
		to = "/dev/null"
	}
	return textmerge.Unified(from, to, c.Before, c.After)
}

// Diff lists what the next commit would change relative to head: staged
// files that are new or differ, and pending deletions of files head has.
// Sorted by path.
func (r *Repo) Diff() ([]FileChange, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	last := tree.New()
	if !head.IsNull() {
		if last, err = r.commitTree(head); err != nil {
			return nil, fmt.Errorf("diff: %w", err)
		}
	}
	staged, err := r.StagedTree()
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	deleted, err := r.Deleted()
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}

	byPath := make(map[string]FileChange)
	_ = staged.Walk(func(p string, id tree.NodeID) error {
		if staged.Kind(id) != tree.KindBlob {
			return nil
		}
		after := staged.Content(id)
		old, ok := last.Lookup(p)
		if !ok || last.Kind(old) != tree.KindBlob {
			byPath[p] = FileChange{Path: p, Type: Added, After: after}
			return nil
		}
		if !bytes.Equal(last.Content(old), after) {
			byPath[p] = FileChange{Path: p, Type: Modified, Before: last.Content(old), After: after}
		}
		return nil
	})

	for _, d := range deleted {
		for p := range byPath {
			if underPath(p, d) {
				delete(byPath, p)
			}
		}
		id, ok := last.Lookup(d)
		if !ok {
			continue
		}
		for p, content := range blobsUnder(last, d, id) {
			byPath[p] = FileChange{Path: p, Type: Removed, Before: content}
		}
	}

	changes := make([]FileChange, 0, len(byPath))
	for _, c := range byPath {
		changes = append(changes, c)
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

// blobsUnder maps every blob at or below node id, found at path p, to its
// content.
func blobsUnder(a *tree.Arena, p string, id tree.NodeID) map[string][]byte {
	out := make(map[string][]byte)
	var visit func(string, tree.NodeID)
	visit = func(p string, id tree.NodeID) {
		if a.Kind(id) == tree.KindBlob {
			out[p] = a.Content(id)
			return
		}
		for _, c := range a.Children(id) {
			child := a.Name(c)
			if p != "" {
				child = p + "/" + child
			}
			visit(child, c)
		}
	}
	visit(p, id)
	return out
}

// underPath reports whether p is dir or lies below it.
func underPath(p, dir string) bool {
	return p == dir || strings.HasPrefix(p, dir+"/")
}
