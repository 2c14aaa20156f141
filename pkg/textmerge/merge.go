// Package textmerge implements the two-way line merge used when two
// versions of a file disagree, and a unified diff for display.
package textmerge

import (
	"bytes"
	"strings"
)

const (
	MarkerCurrent  = "<<<<<< HEAD (current change)"
	MarkerSplit    = "======"
	MarkerIncoming = ">>>>>> (incoming change)"
)

type blockState int

const (
	outside blockState = iota
	inLeft
	inRight
)

// Merge combines the current text left with the incoming text right.
// Lines common to both are emitted as-is. Each run of disagreeing lines is
// wrapped in a conflict block:
//
//	<<<<<< HEAD (current change)
//	<left lines>
//	======
//	<right lines>
//	>>>>>> (incoming change)
//
// Every emitted line ends with a newline. Merging a text with itself
// returns it unchanged.
func Merge(left, right []byte) []byte {
	if bytes.Equal(left, right) {
		return append([]byte(nil), left...)
	}

	var buf strings.Builder
	state := outside

	writeLine := func(s string) {
		buf.WriteString(s)
		buf.WriteByte('\n')
	}
	closeBlock := func() {
		switch state {
		case inLeft:
			writeLine(MarkerSplit)
			writeLine(MarkerIncoming)
		case inRight:
			writeLine(MarkerIncoming)
		}
		state = outside
	}

	for _, op := range LineDiff(left, right) {
		switch op.Type {
		case OnlyLeft:
			if state == inRight {
				closeBlock()
			}
			if state == outside {
				writeLine(MarkerCurrent)
			}
			state = inLeft
		case OnlyRight:
			switch state {
			case outside:
				writeLine(MarkerCurrent)
				writeLine(MarkerSplit)
			case inLeft:
				writeLine(MarkerSplit)
			}
			state = inRight
		case Common:
			closeBlock()
		}
		writeLine(op.Line)
	}
	closeBlock()

	return []byte(buf.String())
}

// HasConflicts reports whether data contains a conflict block written by
// Merge.
func HasConflicts(data []byte) bool {
	for _, line := range splitLines(string(data)) {
		if line == MarkerCurrent {
			return true
		}
	}
	return false
}
