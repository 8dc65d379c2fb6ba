package digest

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrUnknownDigest is returned for names no registered digest answers to.
var ErrUnknownDigest = fmt.Errorf("digest: unknown algorithm")

// Digest is a named message digest.
type Digest struct {
	Name string
	Hash crypto.Hash
	New  func() hash.Hash
}

// Size is the output length in bytes.
func (d Digest) Size() int { return d.Hash.Size() }

// Sum hashes msg in one shot.
func (d Digest) Sum(msg []byte) []byte {
	h := d.New()
	h.Write(msg)
	return h.Sum(nil)
}

var registry = map[string]Digest{
	"SHA256":   {Name: "SHA256", Hash: crypto.SHA256, New: sha256.New},
	"SHA384":   {Name: "SHA384", Hash: crypto.SHA384, New: sha512.New384},
	"SHA512":   {Name: "SHA512", Hash: crypto.SHA512, New: sha512.New},
	"SHA3-256": {Name: "SHA3-256", Hash: crypto.SHA3_256, New: sha3.New256},
	"SHA3-384": {Name: "SHA3-384", Hash: crypto.SHA3_384, New: sha3.New384},
	"SHA3-512": {Name: "SHA3-512", Hash: crypto.SHA3_512, New: sha3.New512},
}

var aliases = map[string]string{
	"SHA2-256": "SHA256",
	"SHA2-384": "SHA384",
	"SHA2-512": "SHA512",
	"SHA-256":  "SHA256",
	"SHA-384":  "SHA384",
	"SHA-512":  "SHA512",
}

// ByName looks a digest up case-insensitively, accepting the SHA2-* and
// SHA-* spellings as aliases.
func ByName(name string) (Digest, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	d, ok := registry[key]
	if !ok {
		return Digest{}, fmt.Errorf("%w: %q", ErrUnknownDigest, name)
	}
	return d, nil
}

// Names lists the canonical digest names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
