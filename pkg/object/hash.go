package object

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/multiformats/go-multihash"
)

// Algorithm names the digest function used to address objects. Every
// supported algorithm produces a 20-byte digest, so a Hash is always
// HashLen hex characters whichever one a repository uses.
type Algorithm string

const (
	SHA1       Algorithm = "sha1"
	Blake2b160 Algorithm = "blake2b-160"

	DefaultAlgorithm = SHA1
)

// ParseAlgorithm validates an algorithm name. The empty string selects
// DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "":
		return DefaultAlgorithm, nil
	case SHA1, Blake2b160:
		return Algorithm(name), nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", name)
	}
}

func (a Algorithm) code() (uint64, error) {
	switch a {
	case SHA1, "":
		return multihash.SHA1, nil
	case Blake2b160:
		return multihash.BLAKE2B_MIN + 19, nil
	default:
		return 0, fmt.Errorf("unsupported hash algorithm %q", string(a))
	}
}

// Sum returns the hex digest of data.
func (a Algorithm) Sum(data []byte) (Hash, error) {
	code, err := a.code()
	if err != nil {
		return "", err
	}
	mh, err := multihash.Sum(data, code, -1)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", a, err)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return "", fmt.Errorf("hash %s: decode: %w", a, err)
	}
	return Hash(hex.EncodeToString(decoded.Digest)), nil
}

// Envelope returns the bytes an object is addressed by: "type len\0content".
func Envelope(objType ObjectType, data []byte) []byte {
	out := make([]byte, 0, len(objType)+len(data)+24)
	out = append(out, objType...)
	out = append(out, ' ')
	out = strconv.AppendInt(out, int64(len(data)), 10)
	out = append(out, 0)
	return append(out, data...)
}

// HashObject computes the identifier of an object of the given type and
// content.
func HashObject(alg Algorithm, objType ObjectType, data []byte) (Hash, error) {
	return alg.Sum(Envelope(objType, data))
}

// ValidHash reports whether s is a well-formed identifier: HashLen
// characters, all lowercase hexadecimal.
func ValidHash(s string) bool {
	return hexOfLen(s, false)
}

// LooksLikeHash reports whether s has the length of a hash and consists of
// hexadecimal digits in either case.
func LooksLikeHash(s string) bool {
	return hexOfLen(s, true)
}

func hexOfLen(s string, upper bool) bool {
	if len(s) != HashLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		case upper && c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
