package repo

import (
	"fmt"

	"github.com/odvcencio/dit/pkg/object"
)

// CommitList resolves every hash in a branch log, oldest first.
func (r *Repo) CommitList(branch string) ([]*object.Commit, error) {
	hashes, err := r.branchLog(branch)
	if err != nil {
		return nil, fmt.Errorf("commit list: %w", err)
	}
	commits := make([]*object.Commit, 0, len(hashes))
	for _, h := range hashes {
		c, err := r.readCommit(h)
		if err != nil {
			return nil, fmt.Errorf("commit list %q: %w", branch, err)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// CommitExists reports whether h is recorded on the current branch.
func (r *Repo) CommitExists(h object.Hash) (bool, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return false, err
	}
	commits, err := r.CommitList(branch)
	if err != nil {
		return false, err
	}
	for _, c := range commits {
		if c.Hash == h {
			return true, nil
		}
	}
	return false, nil
}

// CommitNode is one commit in the display graph built by CommitTree.
type CommitNode struct {
	Commit   *object.Commit `json:"commit" yaml:"commit"`
	Children []*CommitNode  `json:"children,omitempty" yaml:"children,omitempty"`
}

// find returns the first node in the subtree, pre-order, whose commit is h.
func (n *CommitNode) find(h object.Hash) *CommitNode {
	if n.Commit.Hash == h {
		return n
	}
	for _, c := range n.Children {
		if got := c.find(h); got != nil {
			return got
		}
	}
	return nil
}

// CommitTree arranges a branch's commits for display. Each commit hangs
// under the first earlier commit whose hash is its parent. The first commit
// is the root; a later commit whose parent is not on the branch starts a
// new root. Nil when the branch has no commits.
func (r *Repo) CommitTree(branch string) ([]*CommitNode, error) {
	commits, err := r.CommitList(branch)
	if err != nil {
		return nil, err
	}

	var roots []*CommitNode
	for _, c := range commits {
		node := &CommitNode{Commit: c}
		var parent *CommitNode
		for _, root := range roots {
			if parent = root.find(c.Parent); parent != nil {
				break
			}
		}
		if parent != nil {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}
	return roots, nil
}
