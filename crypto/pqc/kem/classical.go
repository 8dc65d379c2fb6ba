package kem

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/cloudflare/circl/dh/x448"
)

// dh is the classical half of a hybrid group. Public and private keys have a
// fixed encoded size per curve, which is what lets the hybrid encodings be
// plain concatenations.
type dh interface {
	name() string
	publicSize() int
	privateSize() int
	generate() (pub, priv []byte, err error)
	shared(priv, peerPub []byte) ([]byte, error)
}

type ecdhCurve struct {
	label   string
	curve   ecdh.Curve
	pubLen  int
	privLen int
}

func (c ecdhCurve) name() string     { return c.label }
func (c ecdhCurve) publicSize() int  { return c.pubLen }
func (c ecdhCurve) privateSize() int { return c.privLen }

func (c ecdhCurve) generate() ([]byte, []byte, error) {
	key, err := c.curve.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: generate key: %w", c.label, err)
	}
	return key.PublicKey().Bytes(), key.Bytes(), nil
}

func (c ecdhCurve) shared(priv, peerPub []byte) ([]byte, error) {
	key, err := c.curve.NewPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%s: private key: %w", c.label, err)
	}
	peer, err := c.curve.NewPublicKey(peerPub)
	if err != nil {
		return nil, fmt.Errorf("%s: peer key: %w", c.label, err)
	}
	return key.ECDH(peer)
}

type x25519Curve struct{}

func (x25519Curve) name() string     { return "x25519" }
func (x25519Curve) publicSize() int  { return x25519.Size }
func (x25519Curve) privateSize() int { return x25519.Size }

func (x25519Curve) generate() ([]byte, []byte, error) {
	var pub, priv x25519.Key
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, nil, fmt.Errorf("x25519: generate key: %w", err)
	}
	x25519.KeyGen(&pub, &priv)
	return pub[:], priv[:], nil
}

func (x25519Curve) shared(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != x25519.Size || len(peerPub) != x25519.Size {
		return nil, fmt.Errorf("x25519: keys must be %d bytes", x25519.Size)
	}
	var secret, public, out x25519.Key
	copy(secret[:], priv)
	copy(public[:], peerPub)
	if !x25519.Shared(&out, &secret, &public) {
		return nil, fmt.Errorf("x25519: low order peer key")
	}
	return out[:], nil
}

type x448Curve struct{}

func (x448Curve) name() string     { return "x448" }
func (x448Curve) publicSize() int  { return x448.Size }
func (x448Curve) privateSize() int { return x448.Size }

func (x448Curve) generate() ([]byte, []byte, error) {
	var pub, priv x448.Key
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, nil, fmt.Errorf("x448: generate key: %w", err)
	}
	x448.KeyGen(&pub, &priv)
	return pub[:], priv[:], nil
}

func (x448Curve) shared(priv, peerPub []byte) ([]byte, error) {
	if len(priv) != x448.Size || len(peerPub) != x448.Size {
		return nil, fmt.Errorf("x448: keys must be %d bytes", x448.Size)
	}
	var secret, public, out x448.Key
	copy(secret[:], priv)
	copy(public[:], peerPub)
	if !x448.Shared(&out, &secret, &public) {
		return nil, fmt.Errorf("x448: low order peer key")
	}
	return out[:], nil
}

var curves = map[string]dh{
	"p256":   ecdhCurve{label: "p256", curve: ecdh.P256(), pubLen: 65, privLen: 32},
	"p384":   ecdhCurve{label: "p384", curve: ecdh.P384(), pubLen: 97, privLen: 48},
	"p521":   ecdhCurve{label: "p521", curve: ecdh.P521(), pubLen: 133, privLen: 66},
	"x25519": x25519Curve{},
	"x448":   x448Curve{},
}
