package provider

import (
	"time"

	"pqcprov/app/metrics"
	"pqcprov/crypto/pqc/composite"
	"pqcprov/crypto/pqc/digest"
)

// SignatureContext binds a signature algorithm to an optional message
// digest. Without a digest the message is signed as is.
type SignatureContext struct {
	alg    composite.Scheme
	digest *digest.Digest
}

// NewSignatureContext fetches alg and, when mdName is non-empty, the digest
// from the default provider.
func (c *LibContext) NewSignatureContext(alg, mdName string) (*SignatureContext, error) {
	sch, err := c.SignatureAlgorithm(alg)
	if err != nil {
		return nil, err
	}
	sc := &SignatureContext{alg: sch}
	if mdName != "" {
		d, err := c.Digest(mdName)
		if err != nil {
			return nil, err
		}
		sc.digest = &d
	}
	return sc, nil
}

func (s *SignatureContext) Algorithm() composite.Scheme { return s.alg }

// DigestName is the bound digest, or "" when signing raw messages.
func (s *SignatureContext) DigestName() string {
	if s.digest == nil {
		return ""
	}
	return s.digest.Name
}

func (s *SignatureContext) tbs(msg []byte) []byte {
	if s.digest == nil {
		return msg
	}
	return s.digest.Sum(msg)
}

// Sign signs msg, hashing it first when a digest is bound.
func (s *SignatureContext) Sign(priv, msg []byte) ([]byte, error) {
	start := time.Now()
	sig, err := s.alg.Sign(priv, s.tbs(msg))
	if err == nil {
		metrics.SignObserver().Observe(time.Since(start).Seconds())
	}
	return sig, err
}

func (s *SignatureContext) Verify(pub, msg, sig []byte) bool {
	return s.alg.Verify(pub, s.tbs(msg), sig)
}
