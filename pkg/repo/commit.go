package repo

import (
	"fmt"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/odvcencio/dit/pkg/tree"
	"go.uber.org/zap"
)

// Commit records the staged tree as a new commit on the current branch.
//
//  1. Load the staged tree; nothing staged is ErrNothingStaged
//  2. Drop every pending deletion from the staged tree and, when there is a
//     previous commit, from its tree too
//  3. Fuse the previous tree with the staged tree (additive); when fuse
//     reports no change the reconciled previous tree is used
//  4. Write the tree and a commit over (tree, head, description)
//  5. Append the commit to the branch log and move head
//  6. Reset the staged pointer, the deletion list and the message buffer
func (r *Repo) Commit(description string) (*object.Commit, error) {
	stagedHash, err := r.Staged()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if stagedHash.IsNull() {
		return nil, fmt.Errorf("commit: %w", ErrNothingStaged)
	}
	info, err := r.Info()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	deleted, err := r.Deleted()
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	staged, err := r.loadTree(stagedHash)
	if err != nil {
		return nil, fmt.Errorf("commit: staged tree: %w", err)
	}
	removePaths(staged, deleted)

	result := staged
	if !info.Head.IsNull() {
		last, err := r.commitTree(info.Head)
		if err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
		removePaths(last, deleted)
		last.Rehash()
		staged.Rehash()

		result = last
		if fused, _, changed := tree.Fuse(last, last.Root(), staged, staged.Root()); changed {
			result = fused
		}
	}

	root := result.Rehash()
	if err := tree.WriteTo(r.Store, result); err != nil {
		return nil, fmt.Errorf("commit: write tree: %w", err)
	}

	c, err := r.recordCommit(info, root, description)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	if err := r.setStaged(object.NullHash); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := r.clearDeleted(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	if err := r.clearMessage(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

// recordCommit persists a commit of root on top of info.Head, appends it to
// the current branch and moves head.
func (r *Repo) recordCommit(info Info, root object.Hash, description string) (*object.Commit, error) {
	c := object.NewCommit(root, info.Head, description)
	if _, err := r.Store.WriteCommit(c); err != nil {
		return nil, fmt.Errorf("write commit: %w", err)
	}
	if err := r.appendBranchLog(info.Branch, c.Hash); err != nil {
		return nil, err
	}
	if err := r.writeInfo(Info{Branch: info.Branch, Head: c.Hash}); err != nil {
		return nil, err
	}
	if err := r.appendReflog(info.Head, c.Hash, "commit: "+description); err != nil {
		return nil, err
	}
	r.log.Info("committed",
		zap.String("branch", info.Branch),
		zap.String("commit", string(c.Hash)),
		zap.String("tree", string(root)),
		zap.String("parent", string(c.Parent)))
	return c, nil
}

// commitTree loads the tree recorded by commit h.
func (r *Repo) commitTree(h object.Hash) (*tree.Arena, error) {
	c, err := r.readCommit(h)
	if err != nil {
		return nil, err
	}
	return r.loadTree(c.Tree)
}

// readCommit resolves h, mapping missing or malformed objects to
// ErrUnexpected.
func (r *Repo) readCommit(h object.Hash) (*object.Commit, error) {
	c, err := r.Store.ReadCommit(h)
	if err != nil {
		return nil, unexpectedf("commit %s: %w", h, err)
	}
	return c, nil
}

func removePaths(a *tree.Arena, paths []string) {
	for _, p := range paths {
		a.RemovePath(p)
	}
}
