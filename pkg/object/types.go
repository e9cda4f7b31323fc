package object

// Hash is a 40-character lowercase hex-encoded object digest.
type Hash string

// HashLen is the length of a hex-encoded Hash.
const HashLen = 40

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

// Valid reports whether t is one of the known object types.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeBlob, TypeTree, TypeCommit:
		return true
	}
	return false
}

// TreeEntry is one entry in a tree object. Type is TypeBlob or TypeTree.
type TreeEntry struct {
	Type ObjectType
	Hash Hash
	Name string
}

// TreeObj holds one directory level.
type TreeObj struct {
	Entries []TreeEntry // sorted by Name
}

// CommitObj records a tree snapshot, an optional parent and a message.
type CommitObj struct {
	TreeHash Hash
	Parent   Hash // empty for the first commit of a history
	Message  string
}
