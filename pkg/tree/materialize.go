package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Materialize writes the snapshot held by a into dir: each named subtree
// becomes a directory (created when absent) and each blob a file, replacing
// any file already there.
func Materialize(fsys afero.Fs, dir string, a *Arena) error {
	return materialize(fsys, dir, a, a.root)
}

func materialize(fsys afero.Fs, dir string, a *Arena, id NodeID) error {
	n := a.nodes[id]
	p := filepath.Join(dir, n.name)
	switch n.kind {
	case KindTree:
		if n.name != "" {
			if err := fsys.MkdirAll(p, 0o755); err != nil {
				return fmt.Errorf("materialize %s: %w", p, err)
			}
		}
		for _, c := range n.children {
			if err := materialize(fsys, p, a, c); err != nil {
				return err
			}
		}
	case KindBlob:
		if err := fsys.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("materialize %s: remove: %w", p, err)
		}
		if err := afero.WriteFile(fsys, p, n.content, 0o644); err != nil {
			return fmt.Errorf("materialize %s: %w", p, err)
		}
	}
	return nil
}

// Unmaterialize removes from dir everything the snapshot held by a would
// have written: named subtrees are removed recursively, blobs are removed
// when present. The root directory itself is kept.
func Unmaterialize(fsys afero.Fs, dir string, a *Arena) error {
	for _, c := range a.nodes[a.root].children {
		n := a.nodes[c]
		p := filepath.Join(dir, n.name)
		switch n.kind {
		case KindTree:
			if err := fsys.RemoveAll(p); err != nil {
				return fmt.Errorf("unmaterialize %s: %w", p, err)
			}
		case KindBlob:
			if err := fsys.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("unmaterialize %s: %w", p, err)
			}
		}
	}
	return nil
}
