package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	r := initRepo(t)
	commitFiles(t, r, "c1", map[string]string{
		"keep.txt": "same\n",
		"edit.txt": "a\nb\n",
		"gone.txt": "bye\n",
	})

	writeFile(t, r, "keep.txt", "same\n")
	writeFile(t, r, "edit.txt", "a\nc\n")
	writeFile(t, r, "new.txt", "hi\n")
	_, err := r.Add([]string{"keep.txt", "edit.txt", "new.txt"})
	require.NoError(t, err)
	require.NoError(t, r.MarkDeleted([]string{"gone.txt"}))

	changes, err := r.Diff()
	require.NoError(t, err)
	require.Len(t, changes, 3)

	assert.Equal(t, "edit.txt", changes[0].Path)
	assert.Equal(t, Modified, changes[0].Type)
	assert.Equal(t, "gone.txt", changes[1].Path)
	assert.Equal(t, Removed, changes[1].Type)
	assert.Equal(t, "new.txt", changes[2].Path)
	assert.Equal(t, Added, changes[2].Type)

	patch, err := changes[0].Patch()
	require.NoError(t, err)
	assert.Contains(t, patch, "--- a/edit.txt")
	assert.Contains(t, patch, "+++ b/edit.txt")
	assert.Contains(t, patch, "\n-b\n")
	assert.Contains(t, patch, "\n+c\n")

	patch, err = changes[2].Patch()
	require.NoError(t, err)
	assert.Contains(t, patch, "--- /dev/null")
	assert.Contains(t, patch, "\n+hi\n")
}

func TestDiff_Empty(t *testing.T) {
	r := initRepo(t)
	changes, err := r.Diff()
	require.NoError(t, err)
	assert.Empty(t, changes)
}
