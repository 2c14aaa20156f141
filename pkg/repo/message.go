package repo

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// SetMessage writes the commit message buffer used by the next commit.
func (r *Repo) SetMessage(msg string) error {
	if err := afero.WriteFile(r.fs, r.path(messageFile), []byte(msg), 0o644); err != nil {
		return fmt.Errorf("set message: %w", err)
	}
	return nil
}

// Message returns the commit message buffer. A missing buffer is empty.
func (r *Repo) Message() (string, error) {
	data, err := afero.ReadFile(r.fs, r.path(messageFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read message: %w", err)
	}
	return string(data), nil
}

// MessagePath is the on-disk location of the message buffer, for editors.
func (r *Repo) MessagePath() string {
	return r.path(messageFile)
}

func (r *Repo) clearMessage() error {
	return r.SetMessage("")
}
