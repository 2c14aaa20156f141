package textmerge

import (
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Basic(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}

	ops := Diff(a, b)

	want := []Op{
		{Type: Common, Line: "a"},
		{Type: OnlyLeft, Line: "b"},
		{Type: OnlyRight, Line: "x"},
		{Type: Common, Line: "c"},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d: %v", len(ops), len(want), ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op[%d] = %+v, want %+v", i, ops[i], want[i])
		}
	}
}

func TestDiff_Empty(t *testing.T) {
	if ops := Diff(nil, nil); len(ops) != 0 {
		t.Errorf("expected no ops, got %v", ops)
	}

	ops := Diff(nil, []string{"a", "b"})
	if len(ops) != 2 || ops[0].Type != OnlyRight || ops[1].Type != OnlyRight {
		t.Errorf("all-insert: got %v", ops)
	}

	ops = Diff([]string{"a", "b"}, nil)
	if len(ops) != 2 || ops[0].Type != OnlyLeft || ops[1].Type != OnlyLeft {
		t.Errorf("all-delete: got %v", ops)
	}
}

func TestDiff_Reconstructs(t *testing.T) {
	a := []string{"one", "two", "three", "four", "five"}
	b := []string{"zero", "one", "three", "four", "4.5", "five"}

	var left, right []string
	for _, op := range Diff(a, b) {
		switch op.Type {
		case Common:
			left = append(left, op.Line)
			right = append(right, op.Line)
		case OnlyLeft:
			left = append(left, op.Line)
		case OnlyRight:
			right = append(right, op.Line)
		}
	}
	if !equalLines(left, a) {
		t.Errorf("left side = %v, want %v", left, a)
	}
	if !equalLines(right, b) {
		t.Errorf("right side = %v, want %v", right, b)
	}
}

// lcsLen is the quadratic reference for the number of common lines in a
// shortest edit script.
func lcsLen(a, b []string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			switch {
			case a[i] == b[j]:
				cur[j+1] = prev[j] + 1
			case prev[j+1] > cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func TestDiff_RandomInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randLines := func() []string {
		lines := make([]string, rng.Intn(14))
		for i := range lines {
			lines[i] = string(rune('a' + rng.Intn(4)))
		}
		return lines
	}

	for iter := 0; iter < 2000; iter++ {
		a, b := randLines(), randLines()
		ops := Diff(a, b)

		var left, right []string
		common := 0
		for i, op := range ops {
			switch op.Type {
			case Common:
				common++
				left = append(left, op.Line)
				right = append(right, op.Line)
			case OnlyLeft:
				require.False(t, i > 0 && ops[i-1].Type == OnlyRight,
					"%q -> %q: left op after right op at %d", a, b, i)
				left = append(left, op.Line)
			case OnlyRight:
				right = append(right, op.Line)
			}
		}
		require.True(t, equalLines(left, a), "%q -> %q: left side %q", a, b, left)
		require.True(t, equalLines(right, b), "%q -> %q: right side %q", a, b, right)
		require.Equal(t, lcsLen(a, b), common, "%q -> %q: script is not minimal", a, b)
	}
}

func TestDiff_ChangedRunGrouped(t *testing.T) {
	ops := Diff([]string{"k", "a", "b", "k"}, []string{"k", "x", "y", "k"})

	var types []OpType
	for _, op := range ops {
		types = append(types, op.Type)
	}
	assert.Equal(t, []OpType{Common, OnlyLeft, OnlyLeft, OnlyRight, OnlyRight, Common}, types)
}

func TestMerge_DivergentMemoryIsLinear(t *testing.T) {
	const n = 4000
	var left, right strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&left, "current line %d\n", i)
		fmt.Fprintf(&right, "incoming line %d\n", i)
	}
	l, r := []byte(left.String()), []byte(right.String())

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	out := Merge(l, r)
	runtime.ReadMemStats(&after)

	assert.Equal(t, 1, strings.Count(string(out), MarkerCurrent))
	allocated := after.TotalAlloc - before.TotalAlloc
	assert.Less(t, allocated, uint64(16<<20), "merge of %d divergent lines allocated %d bytes", n, allocated)
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\nb\n", []string{"a", "b"}},
		{"a\n\nb", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.in); !equalLines(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
