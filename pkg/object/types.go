package object

// Hash is a 40-character hex-encoded SHA-1 digest.
type Hash string

// ObjectType identifies the kind of a tree entry line.
type ObjectType string

const (
	TypeBlob ObjectType = "blob"
	TypeTree ObjectType = "tree"
)

// Commit binds a root tree to its parent commit and a description.
// Hash is H(tree ++ parent ++ description); Parent is NullHash for a root
// commit.
type Commit struct {
	Hash        Hash   `json:"hash" yaml:"hash"`
	Tree        Hash   `json:"tree" yaml:"tree"`
	Parent      Hash   `json:"parent" yaml:"parent"`
	Description string `json:"description" yaml:"description"`
}

// NewCommit builds a Commit and computes its hash.
func NewCommit(tree, parent Hash, description string) *Commit {
	if parent == "" {
		parent = NullHash
	}
	return &Commit{
		Hash:        HashStrings(string(tree), string(parent), description),
		Tree:        tree,
		Parent:      parent,
		Description: description,
	}
}

// IsRoot reports whether c has no parent.
func (c *Commit) IsRoot() bool {
	return c.Parent.IsNull()
}
