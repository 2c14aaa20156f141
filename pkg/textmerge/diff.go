package textmerge

import "strings"

// OpType classifies a line in an edit script.
type OpType int

const (
	Common    OpType = iota // Line is present on both sides.
	OnlyRight               // Line is present in the right (incoming) text only.
	OnlyLeft                // Line is present in the left (current) text only.
)

func (t OpType) String() string {
	switch t {
	case Common:
		return "common"
	case OnlyRight:
		return "right"
	case OnlyLeft:
		return "left"
	}
	return "unknown"
}

// Op is a single operation in an edit script produced by Diff.
type Op struct {
	Type OpType
	Line string
}

// Diff computes a shortest edit script turning left into right, comparing
// whole lines. Within a run of changed lines every OnlyLeft op comes before
// every OnlyRight op, so a merge sees each changed region as one block.
//
// Lines shared at the start and end are peeled off first. The remaining
// region is split at a middle snake and each half diffed recursively, which
// keeps memory linear in len(left)+len(right).
func Diff(left, right []string) []Op {
	if len(left) == 0 && len(right) == 0 {
		return nil
	}
	size := 2*((len(left)+len(right)+1)/2) + 2
	d := &differ{
		a:   left,
		b:   right,
		fwd: make([]int, size),
		rev: make([]int, size),
		ops: make([]Op, 0, max(len(left), len(right))),
	}
	d.compare(0, len(left), 0, len(right))
	d.flush()
	return d.ops
}

type differ struct {
	a, b []string

	// Furthest x reached per diagonal, scanning from the front and from
	// the back of the current region.
	fwd, rev []int

	ops []Op

	// Changed lines waiting for the next common line.
	lefts, rights []string
}

func (d *differ) common(line string) {
	d.flush()
	d.ops = append(d.ops, Op{Type: Common, Line: line})
}

func (d *differ) flush() {
	for _, l := range d.lefts {
		d.ops = append(d.ops, Op{Type: OnlyLeft, Line: l})
	}
	for _, l := range d.rights {
		d.ops = append(d.ops, Op{Type: OnlyRight, Line: l})
	}
	d.lefts = d.lefts[:0]
	d.rights = d.rights[:0]
}

// compare emits the edit script for a[a0:a1] against b[b0:b1].
func (d *differ) compare(a0, a1, b0, b1 int) {
	for a0 < a1 && b0 < b1 && d.a[a0] == d.b[b0] {
		d.common(d.a[a0])
		a0++
		b0++
	}
	suffix := 0
	for a1 > a0 && b1 > b0 && d.a[a1-1] == d.b[b1-1] {
		a1--
		b1--
		suffix++
	}

	switch {
	case a0 == a1:
		d.rights = append(d.rights, d.b[b0:b1]...)
	case b0 == b1:
		d.lefts = append(d.lefts, d.a[a0:a1]...)
	default:
		x, y, ok := d.split(a0, a1, b0, b1)
		if ok {
			d.compare(a0, a0+x, b0, b0+y)
			d.compare(a0+x, a1, b0+y, b1)
		} else {
			d.lefts = append(d.lefts, d.a[a0:a1]...)
			d.rights = append(d.rights, d.b[b0:b1]...)
		}
	}

	for i := 0; i < suffix; i++ {
		d.common(d.a[a1+i])
	}
}

// split finds a point (x, y), relative to (a0, b0), that lies on a shortest
// edit path through the region. ok is false when the two sides share no
// line at all.
func (d *differ) split(a0, a1, b0, b1 int) (x, y int, ok bool) {
	n, m := a1-a0, b1-b0
	maxD := (n + m + 1) / 2
	off := maxD
	width := 2*maxD + 2
	fwd, rev := d.fwd[:width], d.rev[:width]
	for i := range fwd {
		fwd[i] = -1
		rev[i] = -1
	}
	fwd[off+1] = 0
	rev[off+1] = 0

	delta := n - m
	odd := delta%2 != 0

	// Diagonals that ran off the edge of the region are trimmed from the
	// scan on the side they left.
	var fLo, fHi, rLo, rHi int

	for e := 0; e < maxD; e++ {
		for k := -e + fLo; k <= e-fHi; k += 2 {
			i := off + k
			var x1 int
			if k == -e || (k != e && fwd[i-1] < fwd[i+1]) {
				x1 = fwd[i+1]
			} else {
				x1 = fwd[i-1] + 1
			}
			y1 := x1 - k
			for x1 < n && y1 < m && d.a[a0+x1] == d.b[b0+y1] {
				x1++
				y1++
			}
			fwd[i] = x1
			switch {
			case x1 > n:
				fHi += 2
			case y1 > m:
				fLo += 2
			case odd:
				j := off + delta - k
				if j >= 0 && j < width && rev[j] != -1 && inRegion(rev[j], rev[j]-(j-off), n, m) && x1 >= n-rev[j] {
					return d.checked(x1, y1, n, m)
				}
			}
		}

		for k := -e + rLo; k <= e-rHi; k += 2 {
			i := off + k
			var x2 int
			if k == -e || (k != e && rev[i-1] < rev[i+1]) {
				x2 = rev[i+1]
			} else {
				x2 = rev[i-1] + 1
			}
			y2 := x2 - k
			for x2 < n && y2 < m && d.a[a1-1-x2] == d.b[b1-1-y2] {
				x2++
				y2++
			}
			rev[i] = x2
			switch {
			case x2 > n:
				rHi += 2
			case y2 > m:
				rLo += 2
			case !odd:
				j := off + delta - k
				if j >= 0 && j < width && fwd[j] != -1 {
					x1 := fwd[j]
					y1 := x1 - (j - off)
					if inRegion(x1, y1, n, m) && x1 >= n-x2 {
						return d.checked(x1, y1, n, m)
					}
				}
			}
		}
	}
	return 0, 0, false
}

// checked rejects split points that would not shrink the region.
func (d *differ) checked(x, y, n, m int) (int, int, bool) {
	if !inRegion(x, y, n, m) || (x == 0 && y == 0) || (x == n && y == m) {
		return 0, 0, false
	}
	return x, y, true
}

func inRegion(x, y, n, m int) bool {
	return x >= 0 && x <= n && y >= 0 && y <= m
}

// splitLines splits s into lines. A trailing newline does not produce
// an extra empty element.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineDiff computes a line-level edit script between two texts.
func LineDiff(left, right []byte) []Op {
	return Diff(splitLines(string(left)), splitLines(string(right)))
}
