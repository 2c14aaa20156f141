package textmerge

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff between two texts with three lines of
// context. Identical inputs produce an empty string.
func Unified(fromName, toName string, from, to []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	})
}
