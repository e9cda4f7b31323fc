package repo

import (
	"fmt"
	"strings"

	"github.com/loki9919/MyGit/pkg/object"
)

// HashObject stores data as an object of type objType and returns its hash.
func (r *Repo) HashObject(objType object.ObjectType, data []byte) (object.Hash, error) {
	h, err := r.Store.Put(objType, data)
	if err != nil {
		return "", fmt.Errorf("hash-object: %w", err)
	}
	return h, nil
}

// CatFile resolves name and returns the object it designates. A name of the
// form "<rev>:<path>" selects the entry at path inside rev's tree. When
// expected is non-empty the object must have that type.
func (r *Repo) CatFile(name string, expected object.ObjectType) (object.Hash, object.ObjectType, []byte, error) {
	resolve := r.GetOID
	if strings.Contains(name, ":") {
		resolve = r.resolvePath
	}
	h, err := resolve(name)
	if err != nil {
		return "", "", nil, err
	}
	typ, data, err := r.Store.Get(h, expected)
	if err != nil {
		return "", "", nil, fmt.Errorf("cat-file: %w", err)
	}
	return h, typ, data, nil
}
