package repo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func (r *Repo) branchPath(name string) string {
	return r.path(refsDir, name)
}

func validBranchName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("invalid branch name %q", name)
	case strings.ContainsAny(name, "/\\ \t\n\x00"):
		return fmt.Errorf("invalid branch name %q", name)
	}
	return nil
}

// BranchExists reports whether a log file exists for name.
func (r *Repo) BranchExists(name string) bool {
	if validBranchName(name) != nil {
		return false
	}
	ok, err := afero.Exists(r.fs, r.branchPath(name))
	return err == nil && ok
}

// CreateBranch creates an empty log for name and switches the info record
// to it, keeping the current head. Returns ErrBranchExists if the branch
// already has a log.
func (r *Repo) CreateBranch(name string) error {
	if err := validBranchName(name); err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	info, err := r.Info()
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}

	f, err := r.fs.OpenFile(r.branchPath(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create branch %q: %w", name, ErrBranchExists)
		}
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}

	if err := r.writeInfo(Info{Branch: name, Head: info.Head}); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	r.log.Info("created branch", zap.String("branch", name), zap.String("head", string(info.Head)))
	return nil
}

// Branches returns the branch names sorted alphabetically.
func (r *Repo) Branches() ([]string, error) {
	entries, err := afero.ReadDir(r.fs, r.path(refsDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list branches: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CurrentBranch returns the branch named in the info record.
func (r *Repo) CurrentBranch() (string, error) {
	info, err := r.Info()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return info.Branch, nil
}

// branchLog returns the hashes recorded in a branch log, oldest first.
func (r *Repo) branchLog(name string) ([]object.Hash, error) {
	if !r.BranchExists(name) {
		return nil, fmt.Errorf("branch %q: %w", name, ErrUnknownBranch)
	}
	data, err := afero.ReadFile(r.fs, r.branchPath(name))
	if err != nil {
		return nil, fmt.Errorf("read branch %q: %w", name, err)
	}

	var hashes []object.Hash
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		h, ok := object.ParseHash(line)
		if !ok {
			return nil, unexpectedf("branch %q line %d: bad hash %q", name, n, line)
		}
		hashes = append(hashes, h)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read branch %q: %w", name, err)
	}
	return hashes, nil
}

// branchTip returns the last hash in a branch log, or NullHash when the
// log is empty.
func (r *Repo) branchTip(name string) (object.Hash, error) {
	hashes, err := r.branchLog(name)
	if err != nil {
		return "", err
	}
	if len(hashes) == 0 {
		return object.NullHash, nil
	}
	return hashes[len(hashes)-1], nil
}

// appendBranchLog records h at the end of a branch log.
func (r *Repo) appendBranchLog(name string, h object.Hash) (err error) {
	f, err := r.fs.OpenFile(r.branchPath(name), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("append branch %q: %w", name, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	if _, err := f.WriteString(string(h) + "\n"); err != nil {
		return fmt.Errorf("append branch %q: %w", name, err)
	}
	r.log.Debug("branch log appended", zap.String("branch", name), zap.String("hash", string(h)))
	return nil
}
