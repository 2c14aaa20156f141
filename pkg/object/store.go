package object

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a digest has no object in the store.
var ErrNotFound = errors.New("object not found")

// Store is a content-addressed object store with a 2-character fan-out
// directory layout: objects/ab/cdef0123...
//
// Objects are write-once: a write whose target already exists is skipped,
// which keeps concurrent writers of the same content harmless without any
// locking.
type Store struct {
	fs          afero.Fs
	root        string
	compression Compression
	log         *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCompression sets the codec used for object payloads.
func WithCompression(c Compression) Option {
	return func(s *Store) {
		s.compression = c
	}
}

// WithLogger sets a logger for this store.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates a Store rooted at the given directory on fs. The objects/
// subdirectory and its shards are created lazily on first write.
func NewStore(fs afero.Fs, root string, opts ...Option) *Store {
	s := &Store{
		fs:          fs,
		root:        root,
		compression: CompressionNone,
		log:         zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Compression returns the codec the store writes with.
func (s *Store) Compression() Compression {
	return s.compression
}

func (s *Store) shardDir(h Hash) string {
	return filepath.Join(s.root, "objects", string(h[:2]))
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.shardDir(h), string(h[2:]))
}

// Path returns the on-disk location of the object named h.
func (s *Store) Path(h Hash) string {
	return s.objectPath(h)
}

// Has reports whether the store contains an object with the given hash.
// NullHash is never present.
func (s *Store) Has(h Hash) bool {
	if h.IsNull() || len(h) < 3 {
		return false
	}
	_, err := s.fs.Stat(s.objectPath(h))
	return err == nil
}

// Put hashes data and stores it under that digest.
func (s *Store) Put(data []byte) (Hash, error) {
	h := HashBytes(data)
	if _, err := s.Write(h, data); err != nil {
		return "", err
	}
	return h, nil
}

// Write stores data under the digest h, which the caller computed from the
// object's identity (for blobs that includes the file name, so the digest is
// not necessarily H(data)). It reports whether a file was written; an
// existing object is left untouched. Writes are atomic: data is written to
// a temp file in the shard and then renamed into place.
func (s *Store) Write(h Hash, data []byte) (bool, error) {
	if !h.Valid() || h == NullHash {
		return false, fmt.Errorf("object write: invalid hash %q", h)
	}
	if s.Has(h) {
		s.log.Debug("object exists, skipping write", zap.String("hash", string(h)))
		return false, nil
	}

	raw, err := s.compression.encode(data)
	if err != nil {
		return false, fmt.Errorf("object write %s: encode: %w", h, err)
	}

	dir := s.shardDir(h)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("object write mkdir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".tmp-*")
	if err != nil {
		return false, fmt.Errorf("object write tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		err = multierr.Append(err, tmp.Close())
		_ = s.fs.Remove(tmpName)
		return false, fmt.Errorf("object write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return false, fmt.Errorf("object write close: %w", err)
	}

	if err := s.fs.Rename(tmpName, s.objectPath(h)); err != nil {
		_ = s.fs.Remove(tmpName)
		return false, fmt.Errorf("object write rename: %w", err)
	}

	s.log.Debug("object written", zap.String("hash", string(h)), zap.Int("size", len(data)))
	return true, nil
}

// Open returns a reader over the decoded payload of the object h. It fails
// with ErrNotFound when the shard directory or the object file is absent.
func (s *Store) Open(h Hash) (io.ReadCloser, error) {
	if h.IsNull() || !h.Valid() {
		return nil, fmt.Errorf("object open %q: %w", h, ErrNotFound)
	}
	if _, err := s.fs.Stat(s.shardDir(h)); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object open %s: shard missing: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object open %s: %w", h, err)
	}
	f, err := s.fs.Open(s.objectPath(h))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("object open %s: %w", h, ErrNotFound)
		}
		return nil, fmt.Errorf("object open %s: %w", h, err)
	}
	rc, err := s.compression.reader(f)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("object open %s: decode: %w", h, err), f.Close())
	}
	return rc, nil
}

// Read retrieves the full decoded payload of the object h.
func (s *Store) Read(h Hash) (data []byte, err error) {
	rc, err := s.Open(h)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, rc.Close())
	}()

	data, err = io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return data, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// WriteCommit serializes and stores a Commit under its own hash.
func (s *Store) WriteCommit(c *Commit) (bool, error) {
	return s.Write(c.Hash, MarshalCommit(c))
}

// ReadCommit reads and deserializes a Commit. The returned commit's hash is
// recomputed from its fields and must match h.
func (s *Store) ReadCommit(h Hash) (*Commit, error) {
	data, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	if c.Hash != h {
		return nil, fmt.Errorf("object %s: %w: commit hashes to %s", h, ErrMalformed, c.Hash)
	}
	return c, nil
}
