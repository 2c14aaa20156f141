package repo

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// MarkDeleted records paths to drop from the tree at the next commit.
// Something must be staged or committed first.
func (r *Repo) MarkDeleted(paths []string) (err error) {
	staged, err := r.Staged()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	head, err := r.Head()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if staged.IsNull() && head.IsNull() {
		return fmt.Errorf("delete: %w", ErrNothingCommitted)
	}
	rels, err := r.repoRelPaths(paths)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	f, err := r.fs.OpenFile(r.path(deletedFile), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	w := bufio.NewWriter(f)
	for _, p := range rels {
		fmt.Fprintln(w, p)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Deleted returns the repository-relative paths pending deletion.
func (r *Repo) Deleted() ([]string, error) {
	data, err := afero.ReadFile(r.fs, r.path(deletedFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read deleted: %w", err)
	}
	var paths []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if p := strings.TrimSpace(sc.Text()); p != "" {
			paths = append(paths, p)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read deleted: %w", err)
	}
	return paths, nil
}

func (r *Repo) clearDeleted() error {
	if err := afero.WriteFile(r.fs, r.path(deletedFile), nil, 0o644); err != nil {
		return fmt.Errorf("clear deleted: %w", err)
	}
	return nil
}
