package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitList(t *testing.T) {
	r := initRepo(t)
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "1"})
	c2 := commitFiles(t, r, "c2", map[string]string{"a.txt": "2"})

	commits, err := r.CommitList("main")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, c1, commits[0])
	assert.Equal(t, c2, commits[1])

	_, err = r.CommitList("nope")
	assert.ErrorIs(t, err, ErrUnknownBranch)
}

func TestCommitList_MissingObject(t *testing.T) {
	r := initRepo(t)
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "1"})
	require.NoError(t, os.Remove(r.Store.Path(c1.Hash)))

	_, err := r.CommitList("main")
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestCommitExists(t *testing.T) {
	r := initRepo(t)
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "1"})

	ok, err := r.CommitExists(c1.Hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CommitExists(object.HashStrings("other"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommitTree(t *testing.T) {
	r := initRepo(t)
	c1 := commitFiles(t, r, "c1", map[string]string{"a.txt": "1"})
	c2 := commitFiles(t, r, "c2", map[string]string{"a.txt": "2"})

	// Revert then commit again: c3's parent is c1, so it branches off c1.
	require.NoError(t, r.Revert(c1.Hash))
	c3 := commitFiles(t, r, "c3", map[string]string{"a.txt": "3"})
	require.Equal(t, c1.Hash, c3.Parent)

	roots, err := r.CommitTree("main")
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, c1.Hash, root.Commit.Hash)
	require.Len(t, root.Children, 2)
	assert.Equal(t, c2.Hash, root.Children[0].Commit.Hash)
	assert.Equal(t, c3.Hash, root.Children[1].Commit.Hash)
}

func TestCommitTree_BranchFromOtherBranch(t *testing.T) {
	r := initRepo(t)
	commitFiles(t, r, "c1", map[string]string{"a.txt": "1"})
	require.NoError(t, r.CreateBranch("feature"))
	f1 := commitFiles(t, r, "f1", map[string]string{"b.txt": "1"})
	f2 := commitFiles(t, r, "f2", map[string]string{"b.txt": "2"})

	roots, err := r.CommitTree("feature")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, f1.Hash, roots[0].Commit.Hash)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, f2.Hash, roots[0].Children[0].Commit.Hash)

	empty, err := r.CommitTree("main")
	require.NoError(t, err)
	assert.Len(t, empty, 1)

	require.NoError(t, os.WriteFile(filepath.Join(r.DitDir, "refs", "blank"), nil, 0o644))
	none, err := r.CommitTree("blank")
	require.NoError(t, err)
	assert.Empty(t, none)
}
