// Package tree holds the in-memory Merkle model of a repository snapshot:
// an arena of Blob and Tree nodes, the bottom-up hash pass, conversion to
// and from stored objects, and the fuse/merge reconciliations.
package tree

import (
	"fmt"

	"github.com/odvcencio/dit/pkg/object"
)

// Kind discriminates the two node variants.
type Kind uint8

const (
	KindTree Kind = iota
	KindBlob
)

func (k Kind) String() string {
	switch k {
	case KindTree:
		return string(object.TypeTree)
	case KindBlob:
		return string(object.TypeBlob)
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// NodeID addresses a node inside its Arena.
type NodeID int

// NoNode is returned by lookups that find nothing.
const NoNode NodeID = -1

type node struct {
	kind     Kind
	name     string
	hash     object.Hash
	content  []byte   // blobs only
	children []NodeID // trees only, insertion order
}

// Arena owns every node of one snapshot. Relations between nodes are
// index slices, so subtrees can be searched and rewired in place.
// The zero value is not usable; call New.
type Arena struct {
	nodes []node
	root  NodeID
}

// New returns an arena holding a single empty, unnamed root Tree.
func New() *Arena {
	a := &Arena{}
	a.root = a.NewTree("")
	return a
}

// Root returns the root Tree.
func (a *Arena) Root() NodeID { return a.root }

// Len reports how many nodes the arena holds, reachable or not.
func (a *Arena) Len() int { return len(a.nodes) }

func (a *Arena) Kind(id NodeID) Kind { return a.nodes[id].kind }
func (a *Arena) Name(id NodeID) string { return a.nodes[id].name }
func (a *Arena) Hash(id NodeID) object.Hash { return a.nodes[id].hash }
func (a *Arena) Content(id NodeID) []byte { return a.nodes[id].content }
func (a *Arena) IsTree(id NodeID) bool { return a.nodes[id].kind == KindTree }

// Children returns a copy of id's child list in insertion order. Blobs
// have none.
func (a *Arena) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), a.nodes[id].children...)
}

// NewBlob allocates an unattached blob. Its hash is H(name ++ content).
func (a *Arena) NewBlob(name string, content []byte) NodeID {
	a.nodes = append(a.nodes, node{
		kind:    KindBlob,
		name:    name,
		hash:    hashBlob(name, content),
		content: content,
	})
	return NodeID(len(a.nodes) - 1)
}

// NewTree allocates an unattached, empty tree. Its hash is unset until
// the next Rehash.
func (a *Arena) NewTree(name string) NodeID {
	a.nodes = append(a.nodes, node{kind: KindTree, name: name})
	return NodeID(len(a.nodes) - 1)
}

// Append attaches child at the end of parent's child list.
func (a *Arena) Append(parent, child NodeID) {
	p := &a.nodes[parent]
	if p.kind != KindTree {
		panic(fmt.Sprintf("tree: append to %s %q", p.kind, p.name))
	}
	p.children = append(p.children, child)
}

// ReplaceAt swaps the child at position i of parent for child.
func (a *Arena) ReplaceAt(parent NodeID, i int, child NodeID) {
	a.nodes[parent].children[i] = child
}

// RemoveAt detaches the child at position i of parent, keeping the order
// of the remaining children.
func (a *Arena) RemoveAt(parent NodeID, i int) {
	p := &a.nodes[parent]
	p.children = append(p.children[:i:i], p.children[i+1:]...)
}

// Find returns the position and ID of parent's child with the given name
// and kind, or -1 and NoNode.
func (a *Arena) Find(parent NodeID, name string, kind Kind) (int, NodeID) {
	for i, c := range a.nodes[parent].children {
		if a.nodes[c].name == name && a.nodes[c].kind == kind {
			return i, c
		}
	}
	return -1, NoNode
}

// FindName returns the first child of parent called name, of either kind.
func (a *Arena) FindName(parent NodeID, name string) (int, NodeID) {
	for i, c := range a.nodes[parent].children {
		if a.nodes[c].name == name {
			return i, c
		}
	}
	return -1, NoNode
}

// Lookup resolves a slash-separated path from the root. The empty path is
// the root itself.
func (a *Arena) Lookup(p string) (NodeID, bool) {
	cur := a.root
	for _, name := range splitPath(p) {
		if a.nodes[cur].kind != KindTree {
			return NoNode, false
		}
		_, next := a.FindName(cur, name)
		if next == NoNode {
			return NoNode, false
		}
		cur = next
	}
	return cur, true
}

// Graft deep-copies the subtree rooted at id in src into a and returns the
// new, unattached ID.
func (a *Arena) Graft(src *Arena, id NodeID) NodeID {
	n := src.nodes[id]
	cp := node{kind: n.kind, name: n.name, hash: n.hash, content: n.content}
	a.nodes = append(a.nodes, cp)
	out := NodeID(len(a.nodes) - 1)
	for _, c := range n.children {
		a.Append(out, a.Graft(src, c))
	}
	return out
}

// Clone returns an independent copy of the reachable part of a, rooted at
// the same logical root.
func (a *Arena) Clone() *Arena {
	out := &Arena{nodes: make([]node, 0, len(a.nodes))}
	out.root = out.Graft(a, a.root)
	return out
}

// Equal compares node id of a with node bid of b. Blobs with both hashes
// set compare by hash, otherwise by name. Trees compare by hash. Nodes of
// different kinds are never equal.
func Equal(a *Arena, id NodeID, b *Arena, bid NodeID) bool {
	x, y := a.nodes[id], b.nodes[bid]
	if x.kind != y.kind {
		return false
	}
	switch x.kind {
	case KindBlob:
		if x.hash != "" && y.hash != "" {
			return x.hash == y.hash
		}
		return x.name == y.name
	case KindTree:
		return x.hash == y.hash
	}
	return false
}

// Walk visits every node below the root depth-first, parents before
// children, with its slash-separated path. Returning an error stops the
// walk.
func (a *Arena) Walk(fn func(path string, id NodeID) error) error {
	return a.walk("", a.root, fn)
}

func (a *Arena) walk(prefix string, id NodeID, fn func(string, NodeID) error) error {
	for _, c := range a.nodes[id].children {
		p := a.nodes[c].name
		if prefix != "" {
			p = prefix + "/" + p
		}
		if err := fn(p, c); err != nil {
			return err
		}
		if a.nodes[c].kind == KindTree {
			if err := a.walk(p, c, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
