package tree

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnore_Match(t *testing.T) {
	ig := ParseIgnore([]byte(`
# build output
*.log
!keep.log
build/
docs/*.tmp
**/cache
/rooted.txt
`))
	assert.Equal(t, 6, ig.Len())

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"debug.log", false, true},
		{"sub/trace.log", false, true},
		{"keep.log", false, false},
		{"build", true, true},
		{"build", false, false},
		{"src/build", true, true},
		{"docs/a.tmp", false, true},
		{"docs/sub/a.tmp", false, false},
		{"cache", true, true},
		{"a/b/cache", true, true},
		{"rooted.txt", false, true},
		{"sub/rooted.txt", false, false},
		{"main.go", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ig.Match(tt.path, tt.isDir))
		})
	}
}

func TestIgnore_Nil(t *testing.T) {
	var ig *Ignore
	assert.False(t, ig.Match("anything", false))
	assert.Equal(t, 0, ig.Len())
}

func TestLoadIgnore(t *testing.T) {
	fs := afero.NewMemMapFs()
	ig, err := LoadIgnore(fs, "/work")
	require.NoError(t, err)
	assert.Equal(t, 0, ig.Len())

	require.NoError(t, afero.WriteFile(fs, "/work/"+IgnoreFile, []byte("*.o\n"), 0o644))
	ig, err = LoadIgnore(fs, "/work")
	require.NoError(t, err)
	assert.True(t, ig.Match("x.o", false))
}

func TestBuilder_SkipsIgnoredDuringWalk(t *testing.T) {
	fs := afero.NewMemMapFs()
	for p, c := range map[string]string{
		"/work/a.txt":       "a",
		"/work/a.log":       "log",
		"/work/out/bin":     "bin",
		"/work/src/main.go": "package main",
	} {
		require.NoError(t, afero.WriteFile(fs, p, []byte(c), 0o644))
	}

	b := NewBuilder(fs, "/work", nil)
	b.SetIgnore(ParseIgnore([]byte("*.log\nout/\n")))
	a := New()
	_, err := b.Add(a, ".")
	require.NoError(t, err)

	for _, p := range []string{"a.txt", "src/main.go"} {
		_, ok := a.Lookup(p)
		assert.True(t, ok, p)
	}
	for _, p := range []string{"a.log", "out"} {
		_, ok := a.Lookup(p)
		assert.False(t, ok, p)
	}

	// Named explicitly, an ignored file is still added.
	_, err = b.Add(a, "a.log")
	require.NoError(t, err)
	_, ok := a.Lookup("a.log")
	assert.True(t, ok)
}
