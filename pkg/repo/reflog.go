package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/dit/pkg/object"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// ReflogEntry records one movement of head.
type ReflogEntry struct {
	OldHash   object.Hash
	NewHash   object.Hash
	Timestamp int64
	Reason    string
}

// Time returns the entry timestamp.
func (e ReflogEntry) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// appendReflog records a head movement in logs/HEAD, one line per entry:
// "<old> <new> <unix-seconds> <reason>".
func (r *Repo) appendReflog(oldHash, newHash object.Hash, reason string) (err error) {
	if strings.TrimSpace(reason) == "" {
		reason = "update"
	}
	if oldHash == "" {
		oldHash = object.NullHash
	}
	if newHash == "" {
		newHash = object.NullHash
	}
	if err := r.fs.MkdirAll(r.path(logsDir), 0o755); err != nil {
		return fmt.Errorf("reflog mkdir: %w", err)
	}

	f, err := r.fs.OpenFile(r.path(logsDir, headLog), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("reflog open: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	reason = strings.ReplaceAll(reason, "\n", " ")
	if _, err := fmt.Fprintf(f, "%s %s %d %s\n", oldHash, newHash, time.Now().Unix(), reason); err != nil {
		return fmt.Errorf("reflog write: %w", err)
	}
	return nil
}

// Reflog returns head movements newest first. A non-positive limit returns
// every entry. A line that does not parse marks the log as corrupt.
func (r *Repo) Reflog(limit int) ([]ReflogEntry, error) {
	data, err := afero.ReadFile(r.fs, r.path(logsDir, headLog))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read reflog: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	var entries []ReflogEntry
	for i := len(lines) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) == limit {
			break
		}
		if lines[i] == "" {
			continue
		}
		e, err := parseReflogLine(lines[i])
		if err != nil {
			return nil, unexpectedf("reflog line %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// parseReflogLine reads "<old> <new> <unix-seconds> <reason>".
func parseReflogLine(line string) (ReflogEntry, error) {
	fields := strings.SplitN(line, " ", 4)
	if len(fields) != 4 {
		return ReflogEntry{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}
	oldHash, ok := object.ParseHash(fields[0])
	if !ok {
		return ReflogEntry{}, fmt.Errorf("bad old hash %q", fields[0])
	}
	newHash, ok := object.ParseHash(fields[1])
	if !ok {
		return ReflogEntry{}, fmt.Errorf("bad new hash %q", fields[1])
	}
	ts, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return ReflogEntry{}, fmt.Errorf("bad timestamp %q", fields[2])
	}
	return ReflogEntry{OldHash: oldHash, NewHash: newHash, Timestamp: ts, Reason: fields[3]}, nil
}
