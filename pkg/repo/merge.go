package repo

import (
	"bytes"
	"fmt"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/textmerge"
	"github.com/odvcencio/dit/pkg/tree"
	"go.uber.org/zap"
)

// File statuses reported by Merge.
const (
	MergeAdded    = "added"
	MergeChanged  = "merged"
	MergeConflict = "conflict"
)

// FileMergeReport records the merge outcome for a single file that differs
// from the current head.
type FileMergeReport struct {
	Path   string
	Status string
}

// MergeReport is the overall result of a branch merge.
type MergeReport struct {
	Files        []FileMergeReport
	HasConflicts bool
	Commit       *object.Commit // nil when there was nothing to merge
}

// Merge folds the last commit of branch into the current branch. Blobs
// that differ are line-merged with conflict markers, and files only the
// other branch has are added. The result is committed on the current
// branch as "merge <current> and <branch>" and written to the working
// directory. Conflicts are reported, not fatal.
func (r *Repo) Merge(branch string) (*MergeReport, error) {
	if !r.BranchExists(branch) {
		return nil, fmt.Errorf("merge %q: %w", branch, ErrUnknownBranch)
	}
	info, err := r.Info()
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if info.Head.IsNull() {
		return nil, fmt.Errorf("merge: current branch %q: %w", info.Branch, ErrNothingCommitted)
	}
	tip, err := r.branchTip(branch)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	if tip.IsNull() {
		return nil, fmt.Errorf("merge: branch %q: %w", branch, ErrNothingCommitted)
	}

	current, err := r.commitTree(info.Head)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	incoming, err := r.commitTree(tip)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	report := &MergeReport{}
	if current.Hash(current.Root()) == incoming.Hash(incoming.Root()) {
		r.log.Info("already up to date", zap.String("branch", branch))
		return report, nil
	}

	merged, _, changed := tree.Merge(current, current.Root(), incoming, incoming.Root())
	if !changed {
		return report, nil
	}
	root := merged.Rehash()
	if err := tree.WriteTo(r.Store, merged); err != nil {
		return nil, fmt.Errorf("merge: write tree: %w", err)
	}

	report.Files = diffMerged(current, merged)
	for _, f := range report.Files {
		if f.Status == MergeConflict {
			report.HasConflicts = true
		}
	}

	desc := fmt.Sprintf("merge %s and %s", info.Branch, branch)
	c, err := r.recordCommit(info, root, desc)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	report.Commit = c

	if err := r.switchWorkingTree(info.Head, c.Hash); err != nil {
		return report, fmt.Errorf("merge: %w", err)
	}
	return report, nil
}

// diffMerged lists the blobs of merged that are new or different relative
// to current.
func diffMerged(current, merged *tree.Arena) []FileMergeReport {
	var files []FileMergeReport
	_ = merged.Walk(func(p string, id tree.NodeID) error {
		if merged.Kind(id) != tree.KindBlob {
			return nil
		}
		content := merged.Content(id)
		old, ok := current.Lookup(p)
		switch {
		case !ok || current.Kind(old) != tree.KindBlob:
			files = append(files, FileMergeReport{Path: p, Status: MergeAdded})
		case textmerge.HasConflicts(content):
			files = append(files, FileMergeReport{Path: p, Status: MergeConflict})
		case !bytes.Equal(current.Content(old), content):
			files = append(files, FileMergeReport{Path: p, Status: MergeChanged})
		}
		return nil
	})
	return files
}
