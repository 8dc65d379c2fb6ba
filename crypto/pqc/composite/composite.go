package composite

import (
	"encoding/binary"
	"fmt"
	"strings"

	"pqcprov/crypto/pqc/dilithium"
)

// ErrUnsupported is returned for names whose post-quantum or classical half
// this build cannot produce.
var ErrUnsupported = fmt.Errorf("composite: unsupported algorithm")

// Scheme signs and verifies under one signature algorithm name, either a
// pure post-quantum one ("dilithium2") or a hybrid ("p256_dilithium2").
type Scheme interface {
	Name() string
	GenerateKey() (pub, priv []byte, err error)
	Sign(priv, msg []byte) ([]byte, error)
	Verify(pub, msg, sig []byte) bool
}

// ByName resolves a signature algorithm name. Hybrid names are
// "<classical>_<pq>" with classical one of p256, p384, p521 or rsa3072.
func ByName(name string) (Scheme, error) {
	if prefix, rest, ok := strings.Cut(name, "_"); ok {
		if half, known := classicalByPrefix[prefix]; known {
			pq, err := pqByName(rest)
			if err != nil {
				return nil, err
			}
			return &hybrid{full: name, classical: half, pq: pq}, nil
		}
	}
	pq, err := pqByName(name)
	if err != nil {
		return nil, err
	}
	return pure{pq}, nil
}

func pqByName(name string) (dilithium.Scheme, error) {
	sch, err := dilithium.ByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupported, name, err)
	}
	return sch, nil
}

type pure struct {
	pq dilithium.Scheme
}

func (p pure) Name() string { return p.pq.Name() }

func (p pure) GenerateKey() ([]byte, []byte, error) {
	pub, priv, err := p.pq.GenerateKey(nil)
	return pub, priv, err
}

func (p pure) Sign(priv, msg []byte) ([]byte, error) {
	return p.pq.Sign(priv, msg)
}

func (p pure) Verify(pub, msg, sig []byte) bool {
	return p.pq.Verify(pub, msg, sig)
}

// hybrid concatenates a classical and a post-quantum key or signature as
// uint32be(len(classical)) || classical || pq. Both halves must verify.
type hybrid struct {
	full      string
	classical classical
	pq        dilithium.Scheme
}

func (h *hybrid) Name() string { return h.full }

func (h *hybrid) GenerateKey() ([]byte, []byte, error) {
	cPub, cPriv, err := h.classical.generate()
	if err != nil {
		return nil, nil, err
	}
	qPub, qPriv, err := h.pq.GenerateKey(nil)
	if err != nil {
		return nil, nil, err
	}
	return join(cPub, qPub), join(cPriv, qPriv), nil
}

func (h *hybrid) Sign(priv, msg []byte) ([]byte, error) {
	cPriv, qPriv, err := split(priv)
	if err != nil {
		return nil, fmt.Errorf("%s: private key: %w", h.full, err)
	}
	cSig, err := h.classical.sign(cPriv, msg)
	if err != nil {
		return nil, err
	}
	qSig, err := h.pq.Sign(qPriv, msg)
	if err != nil {
		return nil, err
	}
	return join(cSig, qSig), nil
}

func (h *hybrid) Verify(pub, msg, sig []byte) bool {
	cPub, qPub, err := split(pub)
	if err != nil {
		return false
	}
	cSig, qSig, err := split(sig)
	if err != nil {
		return false
	}
	return h.classical.verify(cPub, msg, cSig) && h.pq.Verify(qPub, msg, qSig)
}

const lengthPrefix = 4

func join(classical, pq []byte) []byte {
	out := make([]byte, lengthPrefix, lengthPrefix+len(classical)+len(pq))
	binary.BigEndian.PutUint32(out, uint32(len(classical)))
	out = append(out, classical...)
	return append(out, pq...)
}

func split(b []byte) ([]byte, []byte, error) {
	if len(b) < lengthPrefix {
		return nil, nil, fmt.Errorf("encoding shorter than length prefix")
	}
	n := binary.BigEndian.Uint32(b)
	rest := b[lengthPrefix:]
	if uint64(n) > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("classical length %d exceeds %d remaining bytes", n, len(rest))
	}
	return rest[:n], rest[n:], nil
}
