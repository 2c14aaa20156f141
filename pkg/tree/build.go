package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ControlDir is the name of the repository metadata directory. It is never
// added to a tree.
const ControlDir = ".dit"

// Builder inserts working-directory files into an Arena.
type Builder struct {
	fs     afero.Fs
	root   string
	log    *zap.Logger
	ignore *Ignore
}

// NewBuilder returns a Builder reading files below root on fsys.
func NewBuilder(fsys afero.Fs, root string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{fs: fsys, root: root, log: log}
}

// SetIgnore makes directory walks skip paths matched by ig. Paths named
// explicitly in Add are never ignored.
func (b *Builder) SetIgnore(ig *Ignore) {
	b.ignore = ig
}

// Add inserts each repository-relative, slash-separated path into a. A
// directory is added with every file below it. Paths that do not exist are
// logged and returned in skipped; any other read failure aborts the batch.
// Hashes are left stale; call Rehash afterwards.
func (b *Builder) Add(a *Arena, paths ...string) (skipped []string, err error) {
	for _, p := range paths {
		rel := path.Clean(filepath.ToSlash(p))
		if rel == "." || rel == "" {
			if err := b.addDir(a, ""); err != nil {
				return skipped, err
			}
			continue
		}
		if isControlPath(rel) {
			b.log.Debug("ignoring control directory", zap.String("path", rel))
			continue
		}

		info, err := b.fs.Stat(b.abs(rel))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				b.log.Warn("path does not exist, skipping", zap.String("path", rel))
				skipped = append(skipped, rel)
				continue
			}
			return skipped, fmt.Errorf("add %s: %w", rel, err)
		}

		if info.IsDir() {
			err = b.addDir(a, rel)
		} else {
			err = b.insertFile(a, rel)
		}
		if err != nil {
			return skipped, err
		}
	}
	return skipped, nil
}

// addDir inserts the directory rel and everything below it, in lexical
// order.
func (b *Builder) addDir(a *Arena, rel string) error {
	if rel != "" {
		a.ensureTrees(splitPath(rel))
	}
	var files []string
	err := afero.Walk(b.fs, b.abs(rel), func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		r, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		r = filepath.ToSlash(r)
		if info.IsDir() {
			if info.Name() == ControlDir {
				return filepath.SkipDir
			}
			if r == "." || r == rel {
				return nil
			}
			if b.ignore.Match(r, true) {
				b.log.Debug("ignoring directory", zap.String("path", r))
				return filepath.SkipDir
			}
			a.ensureTrees(splitPath(r))
			return nil
		}
		if b.ignore.Match(r, false) {
			b.log.Debug("ignoring file", zap.String("path", r))
			return nil
		}
		files = append(files, r)
		return nil
	})
	if err != nil {
		return fmt.Errorf("add %s: walk: %w", rel, err)
	}
	sort.Strings(files)
	for _, f := range files {
		if err := b.insertFile(a, f); err != nil {
			return err
		}
	}
	return nil
}

// insertFile reads rel and inserts it as a blob, creating or descending
// into trees for its parent directories. A same-named blob is replaced in
// place; siblings are untouched.
func (b *Builder) insertFile(a *Arena, rel string) error {
	content, err := afero.ReadFile(b.fs, b.abs(rel))
	if err != nil {
		return fmt.Errorf("add %s: read: %w", rel, err)
	}
	parts := splitPath(rel)
	dir := a.ensureTrees(parts[:len(parts)-1])
	a.PutBlob(dir, parts[len(parts)-1], content)
	b.log.Debug("staged file", zap.String("path", rel), zap.Int("size", len(content)))
	return nil
}

// PutBlob inserts a blob called name under the tree dir, replacing an
// existing same-named blob in place.
func (a *Arena) PutBlob(dir NodeID, name string, content []byte) NodeID {
	blob := a.NewBlob(name, content)
	if i, _ := a.Find(dir, name, KindBlob); i >= 0 {
		a.ReplaceAt(dir, i, blob)
	} else {
		a.Append(dir, blob)
	}
	return blob
}

// ensureTrees walks names from the root, creating each missing tree, and
// returns the last one.
func (a *Arena) ensureTrees(names []string) NodeID {
	cur := a.root
	for _, name := range names {
		_, next := a.Find(cur, name, KindTree)
		if next == NoNode {
			next = a.NewTree(name)
			a.Append(cur, next)
		}
		cur = next
	}
	return cur
}

func (b *Builder) abs(rel string) string {
	return filepath.Join(b.root, filepath.FromSlash(rel))
}

func isControlPath(rel string) bool {
	return rel == ControlDir || strings.HasPrefix(rel, ControlDir+"/")
}

// splitPath splits a slash-separated relative path into its components,
// dropping empty and "." elements.
func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}
