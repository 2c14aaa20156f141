package object

import (
	"errors"
	"testing"
)

func TestCommitHash(t *testing.T) {
	tree := HashStrings("tree")
	c := NewCommit(tree, NullHash, "c1")
	want := HashStrings(string(tree), string(NullHash), "c1")
	if c.Hash != want {
		t.Errorf("commit hash = %s, want %s", c.Hash, want)
	}

	// An empty parent is normalized to the sentinel.
	if got := NewCommit(tree, "", "c1"); got.Parent != NullHash || got.Hash != want {
		t.Errorf("empty parent not normalized: %+v", got)
	}
}

func TestMarshalCommitFormat(t *testing.T) {
	tree := HashStrings("tree")
	parent := HashStrings("parent")
	c := NewCommit(tree, parent, "line one\nline two")

	got := string(MarshalCommit(c))
	want := "tree " + string(tree) + "\n" + "pare " + string(parent) + "\n" + "line one\nline two"
	if got != want {
		t.Errorf("MarshalCommit:\n got %q\nwant %q", got, want)
	}
}

func TestUnmarshalCommitRoundTrip(t *testing.T) {
	c := NewCommit(HashStrings("tree"), HashStrings("parent"), "multi\nline\ndescription\n")
	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if *got != *c {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, c)
	}
}

func TestUnmarshalCommitEmptyDescription(t *testing.T) {
	c := NewCommit(HashStrings("tree"), NullHash, "")
	got, err := UnmarshalCommit(MarshalCommit(c))
	if err != nil {
		t.Fatalf("UnmarshalCommit: %v", err)
	}
	if got.Description != "" || got.Hash != c.Hash {
		t.Errorf("got %+v, want %+v", got, c)
	}
}

func TestUnmarshalCommitMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"no parent line": "tree " + string(NullHash),
		"short tree":     "tree abc\npare " + string(NullHash) + "\n",
		"wrong prefix":   "tre  " + string(NullHash) + "\npare " + string(NullHash) + "\n",
		"bad parent":     "tree " + string(NullHash) + "\nparent " + string(NullHash) + "\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalCommit([]byte(in))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("UnmarshalCommit(%q) err = %v, want ErrMalformed", in, err)
			}
		})
	}
}
