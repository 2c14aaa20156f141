package tree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/dit/pkg/object"
)

// ErrMalformedObject is returned when a stored tree object does not parse.
var ErrMalformedObject = errors.New("malformed tree object")

// Objects is the subset of the object store that trees are persisted to.
type Objects interface {
	Has(h object.Hash) bool
	Read(h object.Hash) ([]byte, error)
	Write(h object.Hash, data []byte) (bool, error)
}

// Tree line layout: "<kind> <40-hex hash> <name>".
const (
	lineHashStart = 5
	lineHashEnd   = lineHashStart + object.HashLen
	lineNameStart = lineHashEnd + 1
)

// MarshalNode returns the stored form of node id: one line per child for a
// tree, the raw content plus a trailing newline for a blob.
func (a *Arena) MarshalNode(id NodeID) []byte {
	n := a.nodes[id]
	if n.kind == KindBlob {
		out := make([]byte, 0, len(n.content)+1)
		out = append(out, n.content...)
		return append(out, '\n')
	}
	var buf bytes.Buffer
	for _, c := range n.children {
		child := a.nodes[c]
		fmt.Fprintf(&buf, "%s %s %s\n", child.kind, child.hash, child.name)
	}
	return buf.Bytes()
}

// WriteTo persists every node reachable from the root, children before
// their parent. A tree whose object already exists is skipped together
// with its subtree. Hashes must be current (see Rehash).
func WriteTo(objs Objects, a *Arena) error {
	return writeNode(objs, a, a.root)
}

func writeNode(objs Objects, a *Arena, id NodeID) error {
	n := a.nodes[id]
	if objs.Has(n.hash) {
		return nil
	}
	if n.kind == KindTree {
		for _, c := range n.children {
			if err := writeNode(objs, a, c); err != nil {
				return err
			}
		}
	}
	if _, err := objs.Write(n.hash, a.MarshalNode(id)); err != nil {
		return fmt.Errorf("write %s %q: %w", n.kind, n.name, err)
	}
	return nil
}

// Load rebuilds the tree stored under h into a new Arena. NullHash yields
// an empty root. The trailing newline added to blob content on write is
// stripped.
func Load(objs Objects, h object.Hash) (*Arena, error) {
	a := New()
	if h.IsNull() {
		return a, nil
	}
	if err := a.load(objs, a.root, h); err != nil {
		return nil, err
	}
	a.nodes[a.root].hash = h
	return a, nil
}

func (a *Arena) load(objs Objects, dir NodeID, h object.Hash) error {
	data, err := objs.Read(h)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", h, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if len(line) <= lineNameStart || line[lineHashStart-1] != ' ' || line[lineHashEnd] != ' ' {
			return fmt.Errorf("load tree %s line %d: %w: %q", h, lineNo, ErrMalformedObject, line)
		}
		childHash := object.Hash(line[lineHashStart:lineHashEnd])
		if !childHash.Valid() {
			return fmt.Errorf("load tree %s line %d: %w: bad hash %q", h, lineNo, ErrMalformedObject, childHash)
		}
		name := line[lineNameStart:]
		if !validName(name) {
			return fmt.Errorf("load tree %s line %d: %w: bad entry name %q", h, lineNo, ErrMalformedObject, name)
		}

		switch object.ObjectType(line[:lineHashStart-1]) {
		case object.TypeBlob:
			content, err := objs.Read(childHash)
			if err != nil {
				return fmt.Errorf("load blob %q: %w", name, err)
			}
			content = bytes.TrimSuffix(content, []byte("\n"))
			blob := a.NewBlob(name, content)
			a.nodes[blob].hash = childHash
			a.Append(dir, blob)
		case object.TypeTree:
			sub := a.NewTree(name)
			a.nodes[sub].hash = childHash
			a.Append(dir, sub)
			if err := a.load(objs, sub, childHash); err != nil {
				return err
			}
		default:
			return fmt.Errorf("load tree %s line %d: %w: unknown kind %q", h, lineNo, ErrMalformedObject, line[:lineHashStart-1])
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("load tree %s: %w", h, err)
	}
	return nil
}

// validName reports whether name can be a single path element of a working
// directory.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, "/\x00")
}
