package harness

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"pqcprov/app/metrics"
	"pqcprov/crypto/pqc/composite"
	"pqcprov/crypto/pqc/provider"
	"pqcprov/x/capabilities/keeper"
	"pqcprov/x/capabilities/keys"
	"pqcprov/x/capabilities/types"
)

func newLib(t *testing.T, withDefault bool, algs ...types.Algorithm) *provider.LibContext {
	t.Helper()
	lib := provider.NewLibContext(
		provider.WithEnv(keeper.MapEnv{}),
		provider.WithEnabled(types.NewEnabledSet(algs...)),
	)
	if withDefault {
		_, err := lib.Load(provider.DefaultName)
		require.NoError(t, err)
	}
	_, err := lib.Load(provider.OQSName)
	require.NoError(t, err)
	t.Cleanup(lib.Close)
	return lib
}

func TestMessageCarriesTrailingNUL(t *testing.T) {
	require.Len(t, Message, 48)
	require.Equal(t, byte(0), Message[len(Message)-1])
}

func TestDilithium2FromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oqs.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[providers.default]
activate = 1

[providers.oqsprovider]
activate = 1
algorithms = "dilithium2"
`), 0o600))

	lib := provider.NewLibContext(provider.WithEnv(keeper.MapEnv{}))
	defer lib.Close()
	require.NoError(t, lib.LoadConfigFile(path))

	report, err := RunSignatures(lib, nil)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.Equal(t, 3, report.Passed())

	var names []string
	for _, res := range report.Results {
		names = append(names, res.Algorithm)
		require.Equal(t, StageDone, res.Stage)
	}
	require.Equal(t, []string{"dilithium2", "p256_dilithium2", "rsa3072_dilithium2"}, names)
}

func TestWithoutDefaultProviderOnlyRawPath(t *testing.T) {
	lib := newLib(t, false, types.SigDilithium3)

	report, err := RunSignatures(lib, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		require.True(t, res.Passed(), res.Algorithm)
	}
	require.Equal(t, []string{""}, Digests(lib))
}

func TestUnimplementedSigAlgIsSkipped(t *testing.T) {
	lib := newLib(t, true, types.SigFalcon1024)

	report, err := RunSignatures(lib, nil)
	require.NoError(t, err)
	require.Equal(t, 2, report.Skipped())
	require.Len(t, report.Results, 2)
	require.Zero(t, report.Failures())
	require.NoError(t, report.Err())
	for _, res := range report.Results {
		require.Equal(t, StageInit, res.Stage)
		require.ErrorIs(t, res.Err, types.ErrNotImplemented)
	}
}

func TestMissingOQSProvider(t *testing.T) {
	lib := provider.NewLibContext()
	_, err := RunSignatures(lib, nil)
	require.ErrorIs(t, err, types.ErrProviderUnavailable)
	_, err = RunGroups(lib, nil)
	require.ErrorIs(t, err, types.ErrProviderUnavailable)
}

func TestRunGroups(t *testing.T) {
	lib := newLib(t, false, types.KEMKyber512, types.KEMHQC128)

	report, err := RunGroups(lib, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 6)
	require.Equal(t, 3, report.Passed())
	require.Equal(t, 3, report.Skipped())
	require.NoError(t, report.Err())

	for _, res := range report.Results[:3] {
		require.Equal(t, StageDone, res.Stage, res.Algorithm)
	}
	require.Equal(t, "hqc128", report.Results[3].Algorithm)
}

func TestReportErr(t *testing.T) {
	r := &Report{}
	r.add(Result{Algorithm: "dilithium2", Stage: StageDone})
	r.add(Result{Algorithm: "falcon512", Skipped: true, Err: types.ErrNotImplemented})
	require.NoError(t, r.Err())

	r.add(Result{Algorithm: "p256_dilithium2", Stage: StageTamperVerify, Err: errors.New("tampered signature accepted")})
	err := r.Err()
	require.ErrorIs(t, err, types.ErrRoundTripFailed)
	require.Contains(t, err.Error(), "p256_dilithium2 at tamper-verify")
	require.Equal(t, 1, r.Passed())
	require.Equal(t, 1, r.Failures())
	require.Equal(t, 1, r.Skipped())
}

func TestStageString(t *testing.T) {
	require.Equal(t, "tamper-verify", StageTamperVerify.String())
	require.Equal(t, "done", StageDone.String())
	require.Equal(t, "unknown", Stage(99).String())
}

func TestDebugLine(t *testing.T) {
	var buf bytes.Buffer
	restore := TestOnlySwapDebugWriter(&buf)
	defer restore()
	TestOnlySetDebug(true)
	defer TestOnlySetDebug(false)

	lib := newLib(t, true, types.SigDilithium2)
	_, err := RunSignatures(lib, nil)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "[oqs-harness] alg=dilithium2/SHA512 stage=done status=pass sig=")
	require.Contains(t, out, "[oqs-harness] alg=dilithium2 stage=done status=pass")
}

func TestSignatureMetrics(t *testing.T) {
	counter := metrics.SignatureTestsCounter().WithLabelValues("pass")
	before := testutil.ToFloat64(counter)

	lib := newLib(t, false, types.SigDilithium5)
	report, err := RunSignatures(lib, nil)
	require.NoError(t, err)
	require.Equal(t, before+float64(report.Passed()), testutil.ToFloat64(counter))
}

func TestKeyStoreReuse(t *testing.T) {
	dir := t.TempDir()
	store, err := keys.LoadStore(dir)
	require.NoError(t, err)

	lib := newLib(t, true, types.SigDilithium3)
	report, err := RunSignatures(lib, nil, WithKeyStore(store))
	require.NoError(t, err)
	require.NoError(t, report.Err())

	saved := store.ListKeys()
	require.Len(t, saved, 2)
	require.Equal(t, "dilithium3", saved[0].Algorithm)
	require.NotEmpty(t, saved[0].Signature)

	reopened, err := keys.LoadStore(dir)
	require.NoError(t, err)
	report, err = RunSignatures(lib, nil, WithKeyStore(reopened))
	require.NoError(t, err)
	require.Equal(t, 2, report.Passed())

	again, ok := reopened.GetKey("dilithium3")
	require.True(t, ok)
	require.Equal(t, saved[0].PublicKey, again.PublicKey)
	require.Equal(t, saved[0].Signature, again.Signature)
}

func TestKeyStoreDetectsBadStoredSignature(t *testing.T) {
	store, err := keys.LoadStore(t.TempDir())
	require.NoError(t, err)

	lib := newLib(t, false, types.SigDilithium2)
	_, err = RunSignatures(lib, nil, WithKeyStore(store))
	require.NoError(t, err)

	rec, ok := store.GetKey("dilithium2")
	require.True(t, ok)
	rec.Signature[0] = ^rec.Signature[0]
	require.NoError(t, store.SaveKey(rec))

	report, err := RunSignatures(lib, nil, WithKeyStore(store))
	require.NoError(t, err)
	require.Equal(t, 1, report.Failures())
	require.Equal(t, "dilithium2", report.Results[0].Algorithm)
	require.Equal(t, StageVerify, report.Results[0].Stage)
	require.Contains(t, report.Results[0].Err.Error(), "no digest, stage verify: stored signature rejected")
	require.ErrorIs(t, report.Err(), types.ErrRoundTripFailed)
}

func TestFoldPaths(t *testing.T) {
	pass := Result{Algorithm: "dilithium2", Stage: StageDone}
	verifyFail := Result{Algorithm: "dilithium2", Stage: StageVerify, Err: errors.New("valid signature rejected")}
	tamperFail := Result{Algorithm: "dilithium2", Stage: StageTamperVerify, Err: errors.New("tampered signature accepted")}
	skipped := Result{Algorithm: "falcon512", Stage: StageInit, Skipped: true, Err: types.ErrNotImplemented}

	res := foldPaths("dilithium2", []digestPath{{DigestSHA512, pass}, {"", pass}})
	require.True(t, res.Passed())

	res = foldPaths("dilithium2", []digestPath{{DigestSHA512, verifyFail}, {"", pass}})
	require.Equal(t, "fail", res.Status())
	require.Equal(t, StageVerify, res.Stage)
	require.EqualError(t, res.Err, "digest SHA512, stage verify: valid signature rejected")

	res = foldPaths("dilithium2", []digestPath{{DigestSHA512, pass}, {"", tamperFail}})
	require.Equal(t, StageTamperVerify, res.Stage)
	require.EqualError(t, res.Err, "no digest, stage tamper-verify: tampered signature accepted")

	res = foldPaths("dilithium2", []digestPath{{DigestSHA512, verifyFail}, {"", tamperFail}})
	require.Equal(t, StageVerify, res.Stage)
	require.ErrorIs(t, res.Err, verifyFail.Err)
	require.ErrorIs(t, res.Err, tamperFail.Err)

	res = foldPaths("falcon512", []digestPath{{DigestSHA512, skipped}, {"", skipped}})
	require.Equal(t, "skip", res.Status())
	require.ErrorIs(t, res.Err, types.ErrNotImplemented)

	r := &Report{}
	r.add(foldPaths("dilithium2", []digestPath{{DigestSHA512, verifyFail}, {"", tamperFail}}))
	require.Equal(t, 1, r.Failures())
}

func TestStoredKeysOnlyOnRawPath(t *testing.T) {
	store, err := keys.LoadStore(t.TempDir())
	require.NoError(t, err)

	// a stored pair whose halves do not belong together: its signature
	// replays, but fresh signatures fail to verify
	sch, err := composite.ByName("dilithium2")
	require.NoError(t, err)
	pubA, privA, err := sch.GenerateKey()
	require.NoError(t, err)
	_, privB, err := sch.GenerateKey()
	require.NoError(t, err)
	sigA, err := sch.Sign(privA, Message)
	require.NoError(t, err)
	require.NoError(t, store.SaveKey(keys.KeyRecord{
		Algorithm: "dilithium2", PublicKey: pubA, PrivateKey: privB, Signature: sigA,
	}))

	var buf bytes.Buffer
	restore := TestOnlySwapDebugWriter(&buf)
	defer restore()
	TestOnlySetDebug(true)
	defer TestOnlySetDebug(false)

	lib := newLib(t, true, types.SigDilithium2)
	report, err := RunSignatures(lib, nil, WithKeyStore(store))
	require.NoError(t, err)

	res := report.Results[0]
	require.Equal(t, "dilithium2", res.Algorithm)
	require.Equal(t, StageVerify, res.Stage)
	require.EqualError(t, res.Err, "no digest, stage verify: valid signature rejected")
	require.Contains(t, buf.String(), "alg=dilithium2/SHA512 stage=done status=pass")
}

type emptyScheme struct{}

func (emptyScheme) Name() string { return "empty" }
func (emptyScheme) GenerateKey() ([]byte, []byte, error) { return []byte{1}, []byte{2}, nil }
func (emptyScheme) Sign(_, _ []byte) ([]byte, error) { return nil, nil }
func (emptyScheme) Verify(_, _, _ []byte) bool { return true }
func (e emptyScheme) Algorithm() composite.Scheme { return e }
func (emptyScheme) GenerateKeyPair() ([]byte, []byte, error) { return []byte{1}, []byte{2}, nil }
func (emptyScheme) Encapsulate(_ []byte) ([]byte, []byte, error) {
	return nil, []byte{3}, nil
}
func (emptyScheme) Decapsulate(_, _ []byte) ([]byte, error) { return []byte{3}, nil }

func TestEmptyOutputsFail(t *testing.T) {
	res, sig := signRoundTrip(Result{Algorithm: "empty"}, emptyScheme{}, nil)
	require.Nil(t, sig)
	require.Equal(t, "fail", res.Status())
	require.Equal(t, StageSign, res.Stage)
	require.EqualError(t, res.Err, "empty signature")

	res = kemRoundTrip(Result{Algorithm: "empty"}, emptyScheme{})
	require.Equal(t, "fail", res.Status())
	require.Equal(t, StageEncapsulate, res.Stage)
	require.EqualError(t, res.Err, "empty ciphertext")
}
