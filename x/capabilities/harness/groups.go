package harness

import (
	"bytes"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"

	"pqcprov/app/metrics"
	"pqcprov/crypto/pqc/kem"
	"pqcprov/crypto/pqc/provider"
	"pqcprov/x/capabilities/types"
)

// RunGroups round-trips every key exchange group the oqsprovider
// advertises: keygen, encapsulate, decapsulate, and a tampered ciphertext
// that must not reproduce the shared secret. Groups without a backend are
// reported as skipped.
func RunGroups(lib *provider.LibContext, logger log.Logger) (*Report, error) {
	oqs, err := lib.OQS()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.With("module", "x/"+types.ModuleName+"/harness")

	var names []string
	for params := range oqs.Keeper().Groups() {
		names = append(names, params.Name())
	}

	report := &Report{}
	for _, name := range names {
		res := groupRoundTrip(lib, name)
		report.add(res)
		metrics.KEMTestsCounter().WithLabelValues(res.Status()).Inc()
		debugLogResult(res.Algorithm, res, nil)
		logResult(logger, res.Algorithm, res)
	}
	return report, nil
}

func groupRoundTrip(lib *provider.LibContext, name string) Result {
	res := Result{Algorithm: name, Stage: StageInit}

	sch, err := lib.KEM(name)
	if err != nil {
		res.Err = err
		res.Skipped = errorsmod.IsOf(err, types.ErrNotImplemented)
		return res
	}
	return kemRoundTrip(res, sch)
}

func kemRoundTrip(res Result, sch kem.Scheme) Result {
	res.Stage = StageKeygen
	pub, priv, err := sch.GenerateKeyPair()
	if err != nil {
		res.Err = err
		return res
	}

	res.Stage = StageEncapsulate
	ct, ss, err := sch.Encapsulate(pub)
	if err != nil {
		res.Err = err
		return res
	}
	if len(ct) == 0 {
		res.Err = fmt.Errorf("empty ciphertext")
		return res
	}

	res.Stage = StageDecapsulate
	got, err := sch.Decapsulate(priv, ct)
	if err != nil {
		res.Err = err
		return res
	}
	if !bytes.Equal(ss, got) {
		res.Err = fmt.Errorf("shared secrets differ")
		return res
	}

	res.Stage = StageTamperDecapsulate
	tampered := append([]byte(nil), ct...)
	tampered[len(tampered)-1] ^= 0x01
	if bad, err := sch.Decapsulate(priv, tampered); err == nil && bytes.Equal(ss, bad) {
		res.Err = fmt.Errorf("tampered ciphertext reproduced the shared secret")
		return res
	}

	res.Stage = StageDone
	return res
}
