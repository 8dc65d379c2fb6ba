package kem

import (
	"fmt"
	"strings"

	circlkem "github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/frodo/frodo640shake"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
)

// ErrUnsupported is returned for group names whose primitives this build
// does not carry.
var ErrUnsupported = fmt.Errorf("kem: unsupported group")

// Scheme is a key encapsulation mechanism addressed by TLS group name.
// Hybrid shared secrets are classical || post-quantum.
type Scheme interface {
	Name() string
	GenerateKeyPair() (pub, priv []byte, err error)
	Encapsulate(pub []byte) (ct, ss []byte, err error)
	Decapsulate(priv, ct []byte) (ss []byte, err error)
}

var pqSchemes = map[string]func() circlkem.Scheme{
	"kyber512":      kyber512.Scheme,
	"kyber768":      kyber768.Scheme,
	"kyber1024":     kyber1024.Scheme,
	"frodo640shake": frodo640shake.Scheme,
}

// Names lists the pure KEMs this build implements.
func Names() []string {
	return []string{"frodo640shake", "kyber512", "kyber768", "kyber1024"}
}

// ByName resolves a pure group ("kyber768") or a hybrid group
// ("x448_kyber768").
func ByName(name string) (Scheme, error) {
	if prefix, rest, ok := strings.Cut(name, "_"); ok {
		curve, known := curves[prefix]
		if !known {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
		}
		pq, err := pqByName(rest)
		if err != nil {
			return nil, err
		}
		return &hybrid{full: name, classical: curve, pq: pq}, nil
	}
	pq, err := pqByName(name)
	if err != nil {
		return nil, err
	}
	return pq, nil
}

func pqByName(name string) (*pure, error) {
	ctor, ok := pqSchemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	return &pure{name: name, scheme: ctor()}, nil
}

type pure struct {
	name   string
	scheme circlkem.Scheme
}

func (p *pure) Name() string { return p.name }

func (p *pure) GenerateKeyPair() ([]byte, []byte, error) {
	pk, sk, err := p.scheme.GenerateKeyPair()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: generate key: %w", p.Name(), err)
	}
	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: marshal public key: %w", p.Name(), err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: marshal private key: %w", p.Name(), err)
	}
	return pub, priv, nil
}

func (p *pure) Encapsulate(pub []byte) ([]byte, []byte, error) {
	pk, err := p.scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: public key: %w", p.Name(), err)
	}
	return p.scheme.Encapsulate(pk)
}

func (p *pure) Decapsulate(priv, ct []byte) ([]byte, error) {
	sk, err := p.scheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%s: private key: %w", p.Name(), err)
	}
	if len(ct) != p.scheme.CiphertextSize() {
		return nil, fmt.Errorf("%s: ciphertext must be %d bytes", p.Name(), p.scheme.CiphertextSize())
	}
	return p.scheme.Decapsulate(sk, ct)
}

// hybrid runs an ephemeral-static DH next to the post-quantum KEM. The
// classical "ciphertext" is the ephemeral public key.
type hybrid struct {
	full      string
	classical dh
	pq        *pure
}

func (h *hybrid) Name() string { return h.full }

func (h *hybrid) GenerateKeyPair() ([]byte, []byte, error) {
	cPub, cPriv, err := h.classical.generate()
	if err != nil {
		return nil, nil, err
	}
	qPub, qPriv, err := h.pq.GenerateKeyPair()
	if err != nil {
		return nil, nil, err
	}
	return concat(cPub, qPub), concat(cPriv, qPriv), nil
}

func (h *hybrid) Encapsulate(pub []byte) ([]byte, []byte, error) {
	if len(pub) < h.classical.publicSize() {
		return nil, nil, fmt.Errorf("%s: public key too short", h.full)
	}
	peer, qPub := pub[:h.classical.publicSize()], pub[h.classical.publicSize():]

	ephPub, ephPriv, err := h.classical.generate()
	if err != nil {
		return nil, nil, err
	}
	cSS, err := h.classical.shared(ephPriv, peer)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", h.full, err)
	}
	qCT, qSS, err := h.pq.Encapsulate(qPub)
	if err != nil {
		return nil, nil, err
	}
	return concat(ephPub, qCT), concat(cSS, qSS), nil
}

func (h *hybrid) Decapsulate(priv, ct []byte) ([]byte, error) {
	if len(priv) < h.classical.privateSize() || len(ct) < h.classical.publicSize() {
		return nil, fmt.Errorf("%s: truncated input", h.full)
	}
	cPriv, qPriv := priv[:h.classical.privateSize()], priv[h.classical.privateSize():]
	ephPub, qCT := ct[:h.classical.publicSize()], ct[h.classical.publicSize():]

	cSS, err := h.classical.shared(cPriv, ephPub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", h.full, err)
	}
	qSS, err := h.pq.Decapsulate(qPriv, qCT)
	if err != nil {
		return nil, err
	}
	return concat(cSS, qSS), nil
}

func concat(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
