package harness

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"pqcprov/app/metrics"
	"pqcprov/crypto/pqc/composite"
	"pqcprov/crypto/pqc/provider"
	"pqcprov/x/capabilities/keys"
	"pqcprov/x/capabilities/types"
)

// Message is signed by every round trip. The trailing NUL is part of it.
var Message = []byte("The quick brown fox jumps over... you know what\x00")

// DigestSHA512 is the explicit digest exercised when the default provider
// is loaded.
const DigestSHA512 = "SHA512"

// Digests returns the digest paths a run covers: SHA512 and then no digest
// with the default provider loaded, only no digest without it.
func Digests(lib *provider.LibContext) []string {
	if lib.Available(provider.DefaultName) {
		return []string{DigestSHA512, ""}
	}
	return []string{""}
}

type options struct {
	store *keys.Store
}

type Option func(*options)

// WithKeyStore reuses key pairs persisted in store and saves freshly
// generated ones. A stored signature over Message is re-verified before the
// key is reused.
func WithKeyStore(store *keys.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// RunSignatures round-trips every signature algorithm the oqsprovider
// advertises, over each digest path from Digests, and reports one result
// per algorithm. A failing algorithm is recorded and the run continues. The
// error is reserved for missing preconditions.
func RunSignatures(lib *provider.LibContext, logger log.Logger, opts ...Option) (*Report, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	oqs, err := lib.OQS()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.With("module", "x/"+types.ModuleName+"/harness")

	var names []string
	for params := range oqs.Keeper().SigAlgs() {
		names = append(names, params.Name())
	}

	report := &Report{}
	for _, name := range names {
		var paths []digestPath
		for _, md := range Digests(lib) {
			res, sig := signatureRoundTrip(lib, o.store, name, md)
			label := pathLabel(name, md)
			debugLogResult(label, res, sig)
			logResult(logger, label, res)
			paths = append(paths, digestPath{digest: md, res: res})
		}
		res := foldPaths(name, paths)
		report.add(res)
		metrics.SignatureTestsCounter().WithLabelValues(res.Status()).Inc()
	}
	return report, nil
}

type digestPath struct {
	digest string
	res    Result
}

func pathLabel(name, md string) string {
	if md == "" {
		return name
	}
	return name + "/" + md
}

func pathName(md string) string {
	if md == "" {
		return "no digest"
	}
	return "digest " + md
}

// foldPaths merges the digest paths of one algorithm. Any failing path
// fails the algorithm; otherwise a skipped path skips it.
func foldPaths(name string, paths []digestPath) Result {
	out := Result{Algorithm: name, Stage: StageDone}
	var skip *Result
	for i, p := range paths {
		switch p.res.Status() {
		case "fail":
			err := fmt.Errorf("%s, stage %s: %w", pathName(p.digest), p.res.Stage, p.res.Err)
			if out.Err == nil {
				out.Stage = p.res.Stage
				out.Err = err
			} else {
				out.Err = fmt.Errorf("%w; %w", out.Err, err)
			}
		case "skip":
			if skip == nil {
				skip = &paths[i].res
			}
		}
	}
	if out.Err == nil && skip != nil {
		out.Stage = skip.Stage
		out.Skipped = true
		out.Err = skip.Err
	}
	return out
}

// signer is the part of a signature context a round trip drives.
// *provider.SignatureContext implements it.
type signer interface {
	Algorithm() composite.Scheme
	Sign(priv, msg []byte) ([]byte, error)
	Verify(pub, msg, sig []byte) bool
}

func signatureRoundTrip(lib *provider.LibContext, store *keys.Store, name, md string) (Result, []byte) {
	res := Result{Algorithm: name, Stage: StageInit}

	sc, err := lib.NewSignatureContext(name, md)
	if err != nil {
		res.Err = err
		res.Skipped = errorsmod.IsOf(err, types.ErrNotImplemented)
		return res, nil
	}
	// stored keys belong to the no-digest path only
	if md != "" {
		store = nil
	}
	return signRoundTrip(res, sc, store)
}

func signRoundTrip(res Result, sc signer, store *keys.Store) (Result, []byte) {
	res.Stage = StageKeygen
	pub, priv, stored, err := keyPair(sc, store)
	if err != nil {
		res.Err = err
		return res, nil
	}
	if stored != nil && !sc.Verify(pub, Message, stored) {
		res.Stage = StageVerify
		res.Err = fmt.Errorf("stored signature rejected")
		return res, stored
	}

	res.Stage = StageSign
	sig, err := sc.Sign(priv, Message)
	if err != nil {
		res.Err = err
		return res, nil
	}
	if len(sig) == 0 {
		res.Err = fmt.Errorf("empty signature")
		return res, nil
	}

	res.Stage = StageVerify
	if !sc.Verify(pub, Message, sig) {
		res.Err = fmt.Errorf("valid signature rejected")
		return res, sig
	}

	res.Stage = StageTamperVerify
	tampered := append([]byte(nil), sig...)
	tampered[0] = ^tampered[0]
	if sc.Verify(pub, Message, tampered) {
		res.Err = fmt.Errorf("tampered signature accepted")
		return res, sig
	}

	if store != nil && stored == nil {
		record := keys.KeyRecord{Algorithm: sc.Algorithm().Name(), PublicKey: pub, PrivateKey: priv, Signature: sig}
		if err := store.SaveKey(record); err != nil {
			res.Err = err
			return res, sig
		}
	}

	res.Stage = StageDone
	return res, sig
}

// keyPair returns the stored key pair for the context's algorithm, or a
// fresh one. stored is the persisted signature, nil for fresh keys.
func keyPair(sc signer, store *keys.Store) (pub, priv, stored []byte, err error) {
	name := sc.Algorithm().Name()
	if store != nil {
		if rec, ok := store.GetKey(name); ok {
			return rec.PublicKey, rec.PrivateKey, rec.Signature, nil
		}
	}
	pub, priv, err = sc.Algorithm().GenerateKey()
	return pub, priv, nil, err
}

func logResult(logger log.Logger, label string, res Result) {
	switch res.Status() {
	case "pass":
		logger.Info("round trip passed", "alg", label)
	case "skip":
		logger.Info("round trip skipped", "alg", label, "reason", res.Err)
	default:
		logger.Error("round trip failed", "alg", label, "stage", res.Stage.String(), "err", res.Err)
	}
}
