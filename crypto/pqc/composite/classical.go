package composite

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"crypto/x509"
	"fmt"
)

// classical is the traditional half of a hybrid signature. Keys travel as
// DER (PKIX public, PKCS#8 private) so both halves are plain byte strings.
type classical interface {
	name() string
	generate() (pub, priv []byte, err error)
	sign(priv, msg []byte) ([]byte, error)
	verify(pub, msg, sig []byte) bool
}

type ecdsaHalf struct {
	label string
	curve elliptic.Curve
	hash  crypto.Hash
}

func (e ecdsaHalf) name() string { return e.label }

func (e ecdsaHalf) generate() ([]byte, []byte, error) {
	key, err := ecdsa.GenerateKey(e.curve, rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: generate key: %w", e.label, err)
	}
	return marshalPair(e.label, key, &key.PublicKey)
}

func (e ecdsaHalf) sign(priv, msg []byte) ([]byte, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid private key: %w", e.label, err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok || key.Curve != e.curve {
		return nil, fmt.Errorf("%s: private key is %T", e.label, parsed)
	}
	return ecdsa.SignASN1(rand.Reader, key, digest(e.hash, msg))
}

func (e ecdsaHalf) verify(pub, msg, sig []byte) bool {
	parsed, err := x509.ParsePKIXPublicKey(pub)
	if err != nil {
		return false
	}
	key, ok := parsed.(*ecdsa.PublicKey)
	if !ok || key.Curve != e.curve {
		return false
	}
	return ecdsa.VerifyASN1(key, digest(e.hash, msg), sig)
}

type rsaHalf struct {
	bits int
	hash crypto.Hash
}

func (r rsaHalf) name() string { return fmt.Sprintf("rsa%d", r.bits) }

func (r rsaHalf) generate() ([]byte, []byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, r.bits)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: generate key: %w", r.name(), err)
	}
	return marshalPair(r.name(), key, &key.PublicKey)
}

func (r rsaHalf) sign(priv, msg []byte) ([]byte, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid private key: %w", r.name(), err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok || key.N.BitLen() != r.bits {
		return nil, fmt.Errorf("%s: private key is %T", r.name(), parsed)
	}
	return rsa.SignPKCS1v15(rand.Reader, key, r.hash, digest(r.hash, msg))
}

func (r rsaHalf) verify(pub, msg, sig []byte) bool {
	parsed, err := x509.ParsePKIXPublicKey(pub)
	if err != nil {
		return false
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok || key.N.BitLen() != r.bits {
		return false
	}
	return rsa.VerifyPKCS1v15(key, r.hash, digest(r.hash, msg), sig) == nil
}

func marshalPair(label string, priv, pub any) ([]byte, []byte, error) {
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: marshal public key: %w", label, err)
	}
	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: marshal private key: %w", label, err)
	}
	return pubDER, privDER, nil
}

func digest(h crypto.Hash, msg []byte) []byte {
	hh := h.New()
	hh.Write(msg)
	return hh.Sum(nil)
}

var classicalByPrefix = map[string]classical{
	"p256":    ecdsaHalf{label: "p256", curve: elliptic.P256(), hash: crypto.SHA256},
	"p384":    ecdsaHalf{label: "p384", curve: elliptic.P384(), hash: crypto.SHA384},
	"p521":    ecdsaHalf{label: "p521", curve: elliptic.P521(), hash: crypto.SHA512},
	"rsa3072": rsaHalf{bits: 3072, hash: crypto.SHA256},
}
