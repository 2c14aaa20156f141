package tree

import (
	"github.com/odvcencio/dit/pkg/object"
)

// Rehash recomputes every hash reachable from the root, children before
// parents, and returns the root hash. A blob hashes as H(name ++ content);
// a tree as H of its children's hashes concatenated in order.
func (a *Arena) Rehash() object.Hash {
	return a.rehash(a.root)
}

func (a *Arena) rehash(id NodeID) object.Hash {
	n := &a.nodes[id]
	switch n.kind {
	case KindBlob:
		n.hash = hashBlob(n.name, n.content)
	case KindTree:
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = string(a.rehash(c))
		}
		n.hash = object.HashStrings(parts...)
	}
	return n.hash
}

func hashBlob(name string, content []byte) object.Hash {
	return object.HashBytes([]byte(name), content)
}
