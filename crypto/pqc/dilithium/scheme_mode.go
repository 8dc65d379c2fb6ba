package dilithium

import (
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign"
)

// modeScheme adapts a circl sign.Scheme to Scheme, copying every buffer it
// hands out so callers can tamper with results freely.
type modeScheme struct {
	scheme sign.Scheme
	algoID string
}

func newModeScheme(scheme sign.Scheme, algo string) (Scheme, error) {
	if scheme == nil {
		return nil, errors.New("dilithium: scheme unavailable")
	}
	return &modeScheme{scheme: scheme, algoID: algo}, nil
}

func (s *modeScheme) Name() string {
	return s.algoID
}

func (s *modeScheme) PublicKeySize() int {
	return s.scheme.PublicKeySize()
}

func (s *modeScheme) PrivateKeySize() int {
	return s.scheme.PrivateKeySize()
}

func (s *modeScheme) SignatureSize() int {
	return s.scheme.SignatureSize()
}

func (s *modeScheme) SeedSize() int {
	return s.scheme.SeedSize()
}

func (s *modeScheme) GenerateKey(seed []byte) (PublicKey, PrivateKey, error) {
	var (
		pk  sign.PublicKey
		sk  sign.PrivateKey
		err error
	)

	switch len(seed) {
	case 0:
		pk, sk, err = s.scheme.GenerateKey()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: generate key: %w", s.algoID, err)
		}
	case s.scheme.SeedSize():
		seedCopy := make([]byte, len(seed))
		copy(seedCopy, seed)
		pk, sk = s.scheme.DeriveKey(seedCopy)
		wipe(seedCopy)
	default:
		return nil, nil, fmt.Errorf("dilithium: seed must be %d bytes", s.scheme.SeedSize())
	}

	pubBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium: marshal public key: %w", err)
	}
	privBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium: marshal private key: %w", err)
	}

	return PublicKey(clone(pubBytes)), PrivateKey(clone(privBytes)), nil
}

func (s *modeScheme) Sign(priv PrivateKey, msg []byte) (Signature, error) {
	if len(priv) != s.scheme.PrivateKeySize() {
		return nil, fmt.Errorf("dilithium: private key must be %d bytes", s.scheme.PrivateKeySize())
	}

	sk, err := s.scheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("dilithium: invalid private key: %w", err)
	}

	return Signature(clone(s.scheme.Sign(sk, msg, nil))), nil
}

func (s *modeScheme) Verify(pub PublicKey, msg []byte, sig Signature) bool {
	if len(pub) != s.scheme.PublicKeySize() {
		return false
	}
	if len(sig) != s.scheme.SignatureSize() {
		return false
	}

	pk, err := s.scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return false
	}
	return s.scheme.Verify(pk, msg, sig, nil)
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
