package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/loki9919/MyGit/pkg/fsys"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Options configures a Store.
type Options struct {
	Algorithm Algorithm
	// Compress stores envelopes as zstd frames. Reads accept both forms.
	Compress bool
}

// Store is a content-addressed object store with a flat layout:
// <root>/objects/<hash>. Each file holds the envelope "type len\0content",
// optionally zstd-compressed.
type Store struct {
	fs   fsys.FS
	root string
	opts Options

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewStore creates a Store rooted at the given directory of files. The
// objects/ subdirectory is created lazily on first write.
func NewStore(files fsys.FS, root string, opts Options) (*Store, error) {
	alg, err := ParseAlgorithm(string(opts.Algorithm))
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}
	opts.Algorithm = alg

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("new store: zstd writer: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("new store: zstd reader: %w", err)
	}
	return &Store{fs: files, root: root, opts: opts, enc: enc, dec: dec}, nil
}

// Close releases the zstd encoder and decoder. The Store must not be used
// afterwards. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s.enc == nil {
		return nil
	}
	err := s.enc.Close()
	s.dec.Close()
	s.enc, s.dec = nil, nil
	return err
}

// Algorithm returns the digest algorithm objects are addressed by.
func (s *Store) Algorithm() Algorithm {
	return s.opts.Algorithm
}

func (s *Store) objectsDir() string {
	return fsys.Join(s.root, "objects")
}

func (s *Store) objectPath(h Hash) string {
	return fsys.Join(s.root, "objects", string(h))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if !ValidHash(string(h)) {
		return false
	}
	return fsys.Exists(s.fs, s.objectPath(h))
}

// Put stores an object and returns its content hash. Writing an object that
// already exists is a no-op.
func (s *Store) Put(objType ObjectType, data []byte) (Hash, error) {
	if s.enc == nil {
		return "", fmt.Errorf("object write: %w", ErrClosed)
	}
	if !objType.Valid() {
		return "", fmt.Errorf("object write: unknown type %q", objType)
	}
	envelope := Envelope(objType, data)
	h, err := s.opts.Algorithm.Sum(envelope)
	if err != nil {
		return "", fmt.Errorf("object write: %w", err)
	}

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	if err := s.fs.MkdirAll(s.objectsDir(), 0o755); err != nil {
		return "", fmt.Errorf("object write mkdir: %w", err)
	}
	raw := envelope
	if s.opts.Compress {
		raw = s.enc.EncodeAll(envelope, make([]byte, 0, len(envelope)))
	}
	if err := s.fs.WriteFile(s.objectPath(h), raw, 0o644); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}
	return h, nil
}

// Get retrieves an object by hash, returning its type and raw content. When
// expected is non-empty the stored type must match it.
func (s *Store) Get(h Hash, expected ObjectType) (ObjectType, []byte, error) {
	if s.dec == nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, ErrClosed)
	}
	if !ValidHash(string(h)) {
		return "", nil, fmt.Errorf("object read %q: %w", h, ErrNotFound)
	}
	raw, err := s.fs.ReadFile(s.objectPath(h))
	if err != nil {
		if fsys.IsNotExist(err) {
			return "", nil, fmt.Errorf("object read %s: %w", h, ErrNotFound)
		}
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	if bytes.HasPrefix(raw, zstdMagic) {
		raw, err = s.dec.DecodeAll(raw, nil)
		if err != nil {
			return "", nil, fmt.Errorf("object read %s: decompress: %w", h, err)
		}
	}

	objType, content, err := parseEnvelope(raw)
	if err != nil {
		return "", nil, fmt.Errorf("object read %s: %w", h, err)
	}
	if expected != "" && objType != expected {
		return "", nil, fmt.Errorf("object %s: %w: got %q, want %q", h, ErrTypeMismatch, objType, expected)
	}
	return objType, content, nil
}

func parseEnvelope(raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("invalid format (no NUL)")
	}
	header := string(raw[:nulIdx])
	content := raw[nulIdx+1:]

	typ, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("invalid header %q", header)
	}
	objType := ObjectType(typ)
	if !objType.Valid() {
		return "", nil, fmt.Errorf("unknown type %q", typ)
	}
	length, err := strconv.Atoi(lenStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid length %q: %w", lenStr, err)
	}
	if len(content) != length {
		return "", nil, fmt.Errorf("length mismatch (header=%d, actual=%d)", length, len(content))
	}
	return objType, content, nil
}

// ---------------------------------------------------------------------------
// Typed convenience methods
// ---------------------------------------------------------------------------

// ReadBlob reads a blob's content.
func (s *Store) ReadBlob(h Hash) ([]byte, error) {
	_, data, err := s.Get(h, TypeBlob)
	return data, err
}

// WriteTree serializes and stores a TreeObj.
func (s *Store) WriteTree(tr *TreeObj) (Hash, error) {
	data, err := MarshalTree(tr)
	if err != nil {
		return "", err
	}
	return s.Put(TypeTree, data)
}

// ReadTree reads and deserializes a TreeObj.
func (s *Store) ReadTree(h Hash) (*TreeObj, error) {
	_, data, err := s.Get(h, TypeTree)
	if err != nil {
		return nil, err
	}
	tr, err := UnmarshalTree(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return tr, nil
}

// WriteCommit serializes and stores a CommitObj.
func (s *Store) WriteCommit(c *CommitObj) (Hash, error) {
	return s.Put(TypeCommit, MarshalCommit(c))
}

// ReadCommit reads and deserializes a CommitObj.
func (s *Store) ReadCommit(h Hash) (*CommitObj, error) {
	_, data, err := s.Get(h, TypeCommit)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalCommit(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", h, err)
	}
	return c, nil
}
