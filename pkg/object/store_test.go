package object

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytesDeterminism(t *testing.T) {
	data := []byte("hello world")
	h1 := HashBytes(data)
	h2 := HashBytes(data)
	if h1 != h2 {
		t.Errorf("HashBytes not deterministic: %q != %q", h1, h2)
	}
	if len(h1) != HashLen {
		t.Errorf("Hash length: got %d, want %d", len(h1), HashLen)
	}
	if !h1.Valid() {
		t.Errorf("Hash %q is not valid hex", h1)
	}
}

func TestHashBytesConcatenation(t *testing.T) {
	// Parts are concatenated before hashing: name ++ content.
	assert.Equal(t, HashBytes([]byte("file.txthello")), HashBytes([]byte("file.txt"), []byte("hello")))
	assert.Equal(t, HashStrings("file.txt", "hello"), HashBytes([]byte("file.txt"), []byte("hello")))
	assert.NotEqual(t, HashBytes([]byte("aaa")), HashBytes([]byte("bbb")))
}

func TestHashHelpers(t *testing.T) {
	assert.True(t, NullHash.IsNull())
	assert.True(t, Hash("").IsNull())
	assert.True(t, NullHash.Valid())
	assert.False(t, Hash("xyz").Valid())
	assert.False(t, Hash("ABCDEF0123456789ABCDEF0123456789ABCDEF01").Valid())

	h, ok := ParseHash("  " + string(HashStrings("x")) + "\n")
	assert.True(t, ok)
	assert.Equal(t, HashStrings("x"), h)
	assert.Equal(t, string(h[:8]), h.Short())
}

func tempStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	return NewStore(afero.NewMemMapFs(), "/repo/.dit", opts...)
}

func TestStoreWriteRead(t *testing.T) {
	s := tempStore(t)
	data := []byte("hello world")
	h, err := s.Put(data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if h != HashBytes(data) {
		t.Errorf("Put hash = %q, want %q", h, HashBytes(data))
	}

	got, err := s.Read(h)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Data: got %q, want %q", got, data)
	}
}

func TestStoreHas(t *testing.T) {
	s := tempStore(t)
	h, err := s.Put([]byte("exists"))
	require.NoError(t, err)

	assert.True(t, s.Has(h))
	assert.False(t, s.Has(HashStrings("missing")))
	assert.False(t, s.Has(NullHash))
}

func TestStoreFanoutLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/repo/.dit")
	h, err := s.Put([]byte("fanout test"))
	require.NoError(t, err)

	objPath := filepath.Join("/repo/.dit", "objects", string(h[:2]), string(h[2:]))
	ok, err := afero.Exists(fs, objPath)
	require.NoError(t, err)
	assert.True(t, ok, "expected fan-out file at %s", objPath)
	assert.Equal(t, objPath, s.Path(h))
}

func TestStoreWriteIsIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/repo/.dit")
	h := HashStrings("a.txt", "content")

	written, err := s.Write(h, []byte("content\n"))
	require.NoError(t, err)
	assert.True(t, written)

	before, err := afero.ReadFile(fs, s.Path(h))
	require.NoError(t, err)

	// A second write under the same digest is a no-op, even with other bytes.
	written, err = s.Write(h, []byte("something else"))
	require.NoError(t, err)
	assert.False(t, written)

	after, err := afero.ReadFile(fs, s.Path(h))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// No temp files left behind in the shard.
	entries, err := afero.ReadDir(fs, filepath.Dir(s.Path(h)))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreWriteRejectsBadHash(t *testing.T) {
	s := tempStore(t)
	_, err := s.Write(NullHash, []byte("x"))
	assert.Error(t, err)
	_, err = s.Write("abc", []byte("x"))
	assert.Error(t, err)
}

func TestStoreOpenNotFound(t *testing.T) {
	s := tempStore(t)

	// Missing shard directory.
	_, err := s.Open(HashStrings("nothing"))
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	// Shard exists, file does not.
	h, err := s.Put([]byte("present"))
	require.NoError(t, err)
	sibling := Hash(string(h[:2]) + "00000000000000000000000000000000000000")
	_, err = s.Open(sibling)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	// The sentinel never resolves.
	_, err = s.Open(NullHash)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestStoreZstdRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "/repo/.dit", WithCompression(CompressionZstd))
	data := bytes.Repeat([]byte("compress me\n"), 200)

	h, err := s.Put(data)
	require.NoError(t, err)
	assert.Equal(t, HashBytes(data), h, "digest is computed over the plain payload")

	raw, err := afero.ReadFile(fs, s.Path(h))
	require.NoError(t, err)
	assert.Less(t, len(raw), len(data))

	got, err := s.Read(h)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStoreCommitRoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionZstd} {
		t.Run(string(c), func(t *testing.T) {
			s := tempStore(t, WithCompression(c))
			commit := NewCommit(HashStrings("tree"), NullHash, "first commit\n")

			written, err := s.WriteCommit(commit)
			require.NoError(t, err)
			assert.True(t, written)

			got, err := s.ReadCommit(commit.Hash)
			require.NoError(t, err)
			assert.Equal(t, commit, got)
			assert.True(t, got.IsRoot())
		})
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"", CompressionNone, false},
		{"none", CompressionNone, false},
		{"ZSTD", CompressionZstd, false},
		{"gzip", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
