package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Info is the repository's current position: the checked-out branch and
// the commit the working tree reflects.
type Info struct {
	Branch string
	Head   object.Hash
}

const infoPrefix = "HEAD "

// Info reads .dit/info, stored as "HEAD <hash> <branch>".
func (r *Repo) Info() (Info, error) {
	data, err := afero.ReadFile(r.fs, r.path(infoFile))
	if err != nil {
		return Info{}, fmt.Errorf("read info: %w", err)
	}
	line := strings.TrimRight(string(data), "\n")
	nameStart := len(infoPrefix) + object.HashLen + 1
	if len(line) <= nameStart || !strings.HasPrefix(line, infoPrefix) || line[nameStart-1] != ' ' {
		return Info{}, unexpectedf("read info: malformed record %q", line)
	}
	head := object.Hash(line[len(infoPrefix) : nameStart-1])
	if !head.Valid() {
		return Info{}, unexpectedf("read info: bad head %q", head)
	}
	return Info{Branch: line[nameStart:], Head: head}, nil
}

func (r *Repo) writeInfo(info Info) error {
	if info.Head == "" {
		info.Head = object.NullHash
	}
	data := fmt.Sprintf("%s%s %s\n", infoPrefix, info.Head, info.Branch)
	if err := r.writeFileAtomic(infoFile, []byte(data)); err != nil {
		return fmt.Errorf("write info: %w", err)
	}
	return nil
}

// Head returns the commit the working tree reflects, NullHash before the
// first commit.
func (r *Repo) Head() (object.Hash, error) {
	info, err := r.Info()
	if err != nil {
		return "", err
	}
	return info.Head, nil
}

// readHashFile reads a single-digest pointer file under .dit.
func (r *Repo) readHashFile(name string) (object.Hash, error) {
	data, err := afero.ReadFile(r.fs, r.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", unexpectedf("read %s: %w", name, err)
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	h, ok := object.ParseHash(string(data))
	if !ok {
		return "", unexpectedf("read %s: bad hash %q", name, strings.TrimSpace(string(data)))
	}
	return h, nil
}

// writeFileAtomic replaces .dit/<name> through a temp file and rename.
func (r *Repo) writeFileAtomic(name string, data []byte) error {
	tmp, err := afero.TempFile(r.fs, r.DitDir, "."+name+"-tmp-*")
	if err != nil {
		return fmt.Errorf("tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		err = multierr.Append(err, tmp.Close())
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := r.fs.Rename(tmpName, r.path(name)); err != nil {
		_ = r.fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
