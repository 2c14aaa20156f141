package object

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrMalformed is returned when an object's bytes do not parse.
var ErrMalformed = errors.New("malformed object")

const (
	commitTreePrefix   = "tree "
	commitParentPrefix = "pare "
)

// MarshalCommit serializes a Commit:
//
//	tree <hash>
//	pare <hash>
//	<description bytes>
//
// The description is written verbatim with no trailing newline added.
func MarshalCommit(c *Commit) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s%s\n", commitTreePrefix, c.Tree)
	fmt.Fprintf(&buf, "%s%s\n", commitParentPrefix, c.Parent)
	buf.WriteString(c.Description)
	return buf.Bytes()
}

// UnmarshalCommit parses a Commit and recomputes its hash from the parsed
// fields. Hash fields are read from fixed columns 5..45 of the first two
// lines.
func UnmarshalCommit(data []byte) (*Commit, error) {
	treeLine, rest, ok := bytes.Cut(data, []byte("\n"))
	if !ok {
		return nil, fmt.Errorf("unmarshal commit: %w: missing tree line", ErrMalformed)
	}
	tree, err := parseHeaderHash(treeLine, commitTreePrefix)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: tree: %w", err)
	}

	parentLine, description, ok := bytes.Cut(rest, []byte("\n"))
	if !ok {
		return nil, fmt.Errorf("unmarshal commit: %w: missing parent line", ErrMalformed)
	}
	parent, err := parseHeaderHash(parentLine, commitParentPrefix)
	if err != nil {
		return nil, fmt.Errorf("unmarshal commit: parent: %w", err)
	}

	return NewCommit(tree, parent, string(description)), nil
}

func parseHeaderHash(line []byte, prefix string) (Hash, error) {
	if len(line) < len(prefix)+HashLen || string(line[:len(prefix)]) != prefix {
		return "", fmt.Errorf("%w: bad header %q", ErrMalformed, line)
	}
	h := Hash(line[len(prefix) : len(prefix)+HashLen])
	if !h.Valid() {
		return "", fmt.Errorf("%w: bad hash %q", ErrMalformed, h)
	}
	return h, nil
}
