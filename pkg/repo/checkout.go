package repo

import (
	"fmt"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/tree"
	"go.uber.org/zap"
)

// Checkout switches to branch and replaces the working directory with its
// last commit.
//
//  1. Refuse unknown branches
//  2. Remove the files of the current head's tree, if any
//  3. Write the files of the branch tip's tree, if any
//  4. Point the info record at (branch, tip), tip being NullHash for a
//     branch without commits
func (r *Repo) Checkout(branch string) error {
	if !r.BranchExists(branch) {
		return fmt.Errorf("checkout %q: %w", branch, ErrUnknownBranch)
	}
	info, err := r.Info()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	tip, err := r.branchTip(branch)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	if err := r.switchWorkingTree(info.Head, tip); err != nil {
		return fmt.Errorf("checkout %q: %w", branch, err)
	}
	if err := r.writeInfo(Info{Branch: branch, Head: tip}); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	reason := fmt.Sprintf("checkout: moving from %s to %s", info.Branch, branch)
	if err := r.appendReflog(info.Head, tip, reason); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	r.log.Info("checked out", zap.String("branch", branch), zap.String("head", string(tip)))
	return nil
}

// Revert moves head to h, a commit of the current branch, and replaces the
// working directory with its tree. The branch log is left untouched.
func (r *Repo) Revert(h object.Hash) error {
	info, err := r.Info()
	if err != nil {
		return fmt.Errorf("revert: %w", err)
	}
	if info.Head.IsNull() {
		return fmt.Errorf("revert: %w", ErrNothingCommitted)
	}
	ok, err := r.CommitExists(h)
	if err != nil {
		return fmt.Errorf("revert: %w", err)
	}
	if !ok {
		return fmt.Errorf("revert %s: %w", h, ErrUnknownCommit)
	}

	if err := r.switchWorkingTree(info.Head, h); err != nil {
		return fmt.Errorf("revert %s: %w", h, err)
	}
	if err := r.writeInfo(Info{Branch: info.Branch, Head: h}); err != nil {
		return fmt.Errorf("revert: %w", err)
	}
	if err := r.appendReflog(info.Head, h, "revert: to "+h.Short()); err != nil {
		return fmt.Errorf("revert: %w", err)
	}
	r.log.Info("reverted", zap.String("branch", info.Branch), zap.String("head", string(h)))
	return nil
}

// switchWorkingTree removes the materialization of commit from, then writes
// the one of commit to. Either may be NullHash. Both trees are loaded
// before anything is touched.
func (r *Repo) switchWorkingTree(from, to object.Hash) error {
	var old, next *tree.Arena
	var err error
	if !from.IsNull() {
		if old, err = r.commitTree(from); err != nil {
			return err
		}
	}
	if !to.IsNull() {
		if next, err = r.commitTree(to); err != nil {
			return err
		}
	}

	if old != nil {
		if err := tree.Unmaterialize(r.fs, r.RootDir, old); err != nil {
			return err
		}
		r.log.Debug("removed working tree", zap.String("commit", string(from)))
	}
	if next != nil {
		if err := tree.Materialize(r.fs, r.RootDir, next); err != nil {
			return err
		}
		r.log.Debug("wrote working tree", zap.String("commit", string(to)))
	}
	return nil
}
