package tree

import (
	"github.com/odvcencio/dit/pkg/textmerge"
)

// Merge reconciles node aID of a (current) with node bID of b (incoming)
// symmetrically. Two blobs become one blob whose content is the line merge
// of both, with conflict markers where they disagree. Two trees merge their
// same-name, same-kind children recursively and then gain every child only
// B has. Nodes of different kinds are not merged.
//
// Equal nodes with a non-empty name report no change. The returned arena
// is rooted at the result; its tree hashes are stale until Rehash.
func Merge(a *Arena, aID NodeID, b *Arena, bID NodeID) (*Arena, NodeID, bool) {
	if a.nodes[aID].kind != b.nodes[bID].kind {
		return nil, NoNode, false
	}
	if Equal(a, aID, b, bID) && a.nodes[aID].name != "" {
		return nil, NoNode, false
	}
	out := &Arena{}
	out.root = out.Graft(a, aID)
	out.merge(out.root, b, bID)
	return out, out.root, true
}

// merge folds b's node bid into id in place.
func (a *Arena) merge(id NodeID, b *Arena, bid NodeID) {
	n := &a.nodes[id]
	switch n.kind {
	case KindBlob:
		n.content = textmerge.Merge(n.content, b.nodes[bid].content)
		n.hash = hashBlob(n.name, n.content)
	case KindTree:
		for _, c := range n.children {
			name, kind := a.nodes[c].name, a.nodes[c].kind
			_, bc := b.Find(bid, name, kind)
			if bc == NoNode {
				continue
			}
			if Equal(a, c, b, bc) && name != "" {
				continue
			}
			a.merge(c, b, bc)
		}
		for _, bc := range b.nodes[bid].children {
			if _, c := a.Find(id, b.nodes[bc].name, b.nodes[bc].kind); c == NoNode {
				a.Append(id, a.Graft(b, bc))
			}
		}
	}
}
