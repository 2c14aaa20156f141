package repo

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/odvcencio/dit/pkg/tree"
	"github.com/spf13/afero"
)

// FileStatus represents the state of a file in one comparison.
type FileStatus int

const (
	StatusClean     FileStatus = iota // nothing to report
	StatusNew                         // staged, not in the head tree
	StatusModified                    // staged, differs from the head tree
	StatusDeleted                     // pending deletion, or missing from the working directory
	StatusUntracked                   // in the working directory only
	StatusDirty                       // working copy differs from what the next commit records
)

func (s FileStatus) String() string {
	switch s {
	case StatusClean:
		return "clean"
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusUntracked:
		return "untracked"
	case StatusDirty:
		return "dirty"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// StatusEntry records the status of a single file.
type StatusEntry struct {
	Path        string     // repo-relative, slash-separated
	IndexStatus FileStatus // staged tree vs head tree
	WorkStatus  FileStatus // working directory vs staged-over-head
}

// Status compares the working directory, the staged tree and the head
// tree. Only files with something to report are returned, sorted by path.
//
//  1. Flatten the head and staged trees into path -> content maps.
//  2. Classify staged files against head, and pending deletions.
//  3. Walk the working directory (skipping .dit and ignored paths) and
//     compare each file with the staged version, or the head version when
//     it is not staged.
//  4. Report tracked files that are gone from disk.
func (r *Repo) Status() ([]StatusEntry, error) {
	head, err := r.Head()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	headFiles := map[string][]byte{}
	if !head.IsNull() {
		a, err := r.commitTree(head)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
		headFiles = blobsUnder(a, "", a.Root())
	}
	staged, err := r.StagedTree()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	stagedFiles := blobsUnder(staged, "", staged.Root())
	deleted, err := r.Deleted()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	entries := map[string]*StatusEntry{}
	entry := func(p string) *StatusEntry {
		e, ok := entries[p]
		if !ok {
			e = &StatusEntry{Path: p}
			entries[p] = e
		}
		return e
	}

	for p, content := range stagedFiles {
		old, ok := headFiles[p]
		switch {
		case !ok:
			entry(p).IndexStatus = StatusNew
		case !bytes.Equal(old, content):
			entry(p).IndexStatus = StatusModified
		}
	}
	isPending := func(p string) bool {
		for _, d := range deleted {
			if underPath(p, d) {
				return true
			}
		}
		return false
	}
	for _, d := range deleted {
		entry(d).IndexStatus = StatusDeleted
	}

	ignore, err := tree.LoadIgnore(r.fs, r.RootDir)
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	seen := map[string]bool{}
	err = afero.Walk(r.fs, r.RootDir, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			if info.Name() == DirName || (rel != "." && ignore.Match(rel, true)) {
				return filepath.SkipDir
			}
			return nil
		}
		if isPending(rel) {
			return nil
		}

		want, tracked := stagedFiles[rel]
		if !tracked {
			want, tracked = headFiles[rel]
		}
		if !tracked {
			if !ignore.Match(rel, false) {
				entry(rel).WorkStatus = StatusUntracked
			}
			return nil
		}
		seen[rel] = true
		got, err := afero.ReadFile(r.fs, p)
		if err != nil {
			return err
		}
		if !bytes.Equal(got, want) {
			entry(rel).WorkStatus = StatusDirty
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("status: walk: %w", err)
	}

	for _, files := range []map[string][]byte{stagedFiles, headFiles} {
		for p := range files {
			if !seen[p] && !isPending(p) {
				entry(p).WorkStatus = StatusDeleted
			}
		}
	}

	out := make([]StatusEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
