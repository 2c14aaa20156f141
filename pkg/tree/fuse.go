package tree

// Fuse reconciles node aID of a with node bID of b additively: entries only
// in A are kept, entries only in B are added, and entries present in both
// (same name, same kind) are fused recursively. A blob of B replaces a
// same-named blob of A. Inputs must be hashed; neither is modified.
//
// When the two nodes are equal Fuse reports no change and returns a nil
// arena. Otherwise it returns a new arena rooted at the result, whose
// hashes are stale until Rehash.
func Fuse(a *Arena, aID NodeID, b *Arena, bID NodeID) (*Arena, NodeID, bool) {
	if Equal(a, aID, b, bID) {
		return nil, NoNode, false
	}
	out := &Arena{}
	out.root = out.Graft(a, aID)
	out.fuse(out.root, b, bID)
	return out, out.root, true
}

// fuse overlays b's node bid onto id in place and reports whether id
// changed.
func (a *Arena) fuse(id NodeID, b *Arena, bid NodeID) bool {
	if Equal(a, id, b, bid) {
		return false
	}
	if a.nodes[id].kind != KindTree {
		return true
	}

	for _, bc := range b.nodes[bid].children {
		name := b.nodes[bc].name
		if i, _ := a.FindName(id, name); i < 0 {
			a.Append(id, a.Graft(b, bc))
			continue
		}
		if b.nodes[bc].kind == KindBlob {
			if i, _ := a.Find(id, name, KindBlob); i >= 0 {
				a.ReplaceAt(id, i, a.Graft(b, bc))
			}
		}
	}

	for _, c := range a.nodes[id].children {
		if _, bc := b.Find(bid, a.nodes[c].name, a.nodes[c].kind); bc != NoNode {
			a.fuse(c, b, bc)
		}
	}
	return true
}
