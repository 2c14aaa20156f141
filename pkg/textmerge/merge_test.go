package textmerge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_Identity(t *testing.T) {
	for _, text := range []string{"", "one line", "a\nb\nc\n", "no\ntrailing"} {
		got := Merge([]byte(text), []byte(text))
		assert.Equal(t, text, string(got))
		assert.False(t, HasConflicts(got))
	}
}

func TestMerge_SingleChangedLine(t *testing.T) {
	got := Merge([]byte("a\nb\n"), []byte("a\nc\n"))

	want := strings.Join([]string{
		"a",
		MarkerCurrent,
		"b",
		MarkerSplit,
		"c",
		MarkerIncoming,
	}, "\n") + "\n"
	assert.Equal(t, want, string(got))
	assert.Equal(t, 1, strings.Count(string(got), MarkerCurrent))
	assert.True(t, HasConflicts(got))
}

func TestMerge_CommonLinesAroundConflict(t *testing.T) {
	got := Merge([]byte("a\nb\nc\n"), []byte("a\nx\nc\n"))

	want := "a\n" + MarkerCurrent + "\nb\n" + MarkerSplit + "\nx\n" + MarkerIncoming + "\nc\n"
	assert.Equal(t, want, string(got))
}

func TestMerge_IncomingOnly(t *testing.T) {
	got := Merge([]byte("a\n"), []byte("a\nb\n"))

	want := "a\n" + MarkerCurrent + "\n" + MarkerSplit + "\nb\n" + MarkerIncoming + "\n"
	assert.Equal(t, want, string(got))
}

func TestMerge_BlockClosedAtEnd(t *testing.T) {
	got := Merge([]byte("a\nb\n"), []byte("a\n"))

	want := "a\n" + MarkerCurrent + "\nb\n" + MarkerSplit + "\n" + MarkerIncoming + "\n"
	assert.Equal(t, want, string(got))
}

func TestMerge_EmptyCurrent(t *testing.T) {
	got := Merge(nil, []byte("x\n"))

	want := MarkerCurrent + "\n" + MarkerSplit + "\nx\n" + MarkerIncoming + "\n"
	assert.Equal(t, want, string(got))
}

func TestMerge_MarkersBalanced(t *testing.T) {
	left := []byte("def main():\n    print('hello')\n    return 0\n\nmain()\n")
	right := []byte("import sys\n\ndef main():\n    print('hello world')\n    sys.exit(0)\n\nmain()\n")

	got := string(Merge(left, right))

	opens := strings.Count(got, MarkerCurrent+"\n")
	assert.Greater(t, opens, 0)
	assert.Equal(t, opens, strings.Count(got, MarkerSplit+"\n"))
	assert.Equal(t, opens, strings.Count(got, MarkerIncoming+"\n"))
	assert.True(t, strings.HasSuffix(got, "main()\n"))
	assert.Contains(t, got, "def main():\n")
}

func TestHasConflicts(t *testing.T) {
	assert.False(t, HasConflicts(nil))
	assert.False(t, HasConflicts([]byte("plain text\n")))
	assert.False(t, HasConflicts([]byte("  "+MarkerCurrent+"\n")))
	assert.True(t, HasConflicts([]byte("x\n"+MarkerCurrent+"\ny\n")))
}

func TestUnified(t *testing.T) {
	same, err := Unified("a", "b", []byte("x\n"), []byte("x\n"))
	assert.NoError(t, err)
	assert.Empty(t, same)

	out, err := Unified("old/f.txt", "new/f.txt", []byte("a\nb\n"), []byte("a\nc\n"))
	assert.NoError(t, err)
	assert.Contains(t, out, "--- old/f.txt")
	assert.Contains(t, out, "+++ new/f.txt")
	assert.Contains(t, out, "\n-b\n")
	assert.Contains(t, out, "\n+c\n")
}
