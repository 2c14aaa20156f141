package repo

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/tree"
	"go.uber.org/zap"
)

// Staged returns the root hash of the staged tree, NullHash when nothing is
// staged.
func (r *Repo) Staged() (object.Hash, error) {
	return r.readHashFile(stagedFile)
}

func (r *Repo) setStaged(h object.Hash) error {
	if h == "" {
		h = object.NullHash
	}
	if err := r.writeFileAtomic(stagedFile, []byte(h)); err != nil {
		return fmt.Errorf("write staged: %w", err)
	}
	return nil
}

// StagedTree loads the staged tree; empty when nothing is staged.
func (r *Repo) StagedTree() (*tree.Arena, error) {
	h, err := r.Staged()
	if err != nil {
		return nil, err
	}
	return r.loadTree(h)
}

// Add stages the given paths (absolute, or relative to WorkDir).
// Directories are added recursively, minus anything matched by the
// repository's .ditignore. Paths that do not exist are skipped and
// returned; the rest of the batch is still staged.
func (r *Repo) Add(paths []string) (skipped []string, err error) {
	rels, err := r.repoRelPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	staged, err := r.StagedTree()
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	ignore, err := tree.LoadIgnore(r.fs, r.RootDir)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	b := tree.NewBuilder(r.fs, r.RootDir, r.log.Named("builder"))
	b.SetIgnore(ignore)
	skipped, err = b.Add(staged, rels...)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}

	if err := r.stage(staged); err != nil {
		return skipped, fmt.Errorf("add: %w", err)
	}
	return skipped, nil
}

// Remove takes the given paths out of the staged tree. It returns the
// paths that were not staged.
func (r *Repo) Remove(paths []string) (missing []string, err error) {
	h, err := r.Staged()
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}
	if h.IsNull() {
		return nil, fmt.Errorf("rm: %w", ErrNothingStaged)
	}
	rels, err := r.repoRelPaths(paths)
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}

	staged, err := r.loadTree(h)
	if err != nil {
		return nil, fmt.Errorf("rm: %w", err)
	}
	for _, p := range rels {
		if !staged.RemovePath(p) {
			missing = append(missing, p)
		}
	}

	if err := r.stage(staged); err != nil {
		return missing, fmt.Errorf("rm: %w", err)
	}
	return missing, nil
}

// stage persists a as the staged tree. An empty tree resets the pointer to
// NullHash.
func (r *Repo) stage(a *tree.Arena) error {
	if len(a.Children(a.Root())) == 0 {
		return r.setStaged(object.NullHash)
	}
	root := a.Rehash()
	if err := tree.WriteTo(r.Store, a); err != nil {
		return err
	}
	if err := r.setStaged(root); err != nil {
		return err
	}
	r.log.Debug("staged tree updated", zap.String("root", string(root)))
	return nil
}

// loadTree loads the tree h from the store, mapping missing or malformed
// objects to ErrUnexpected.
func (r *Repo) loadTree(h object.Hash) (*tree.Arena, error) {
	a, err := tree.Load(r.Store, h)
	if err != nil {
		return nil, unexpectedf("%w", err)
	}
	return a, nil
}

func (r *Repo) repoRelPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := r.repoRelPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

// repoRelPath converts a path (absolute, or relative to WorkDir) into a
// slash-separated path relative to the repository root.
func (r *Repo) repoRelPath(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(p) {
		abs = filepath.Join(r.WorkDir, p)
	}
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%q is outside repository %s", p, r.RootDir)
	}
	return rel, nil
}
