package tree

// RemovePath detaches the node at the slash-separated path p. Intermediate
// components must name trees; the final component removes the first child
// with that name, whichever its kind. It reports whether a node was removed.
// Hashes are left stale; call Rehash afterwards.
func (a *Arena) RemovePath(p string) bool {
	names := splitPath(p)
	if len(names) == 0 {
		return false
	}
	cur := a.root
	for _, name := range names[:len(names)-1] {
		_, next := a.Find(cur, name, KindTree)
		if next == NoNode {
			return false
		}
		cur = next
	}
	i, _ := a.FindName(cur, names[len(names)-1])
	if i < 0 {
		return false
	}
	a.RemoveAt(cur, i)
	return true
}
