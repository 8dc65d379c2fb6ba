package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pqcprov/x/capabilities/keeper"
	"pqcprov/x/capabilities/types"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const bothActive = `
log_level = "info"

[providers.default]
activate = 1

[providers.oqsprovider]
activate = "true"
algorithms = ["kyber512", "dilithium2"]

[codepoints]
kyber512 = 4660
`

func TestLoadConfigFile(t *testing.T) {
	ctx := NewLibContext()
	defer ctx.Close()

	require.NoError(t, ctx.LoadConfigFile(writeConfig(t, "oqs.toml", bothActive)))
	require.True(t, ctx.Available(DefaultName))
	require.True(t, ctx.Available(OQSName))
	require.Equal(t, []string{DefaultName, OQSName}, ctx.Loaded())
	require.Equal(t, "info", ctx.Config().GetString("log_level"))

	oqs, err := ctx.OQS()
	require.NoError(t, err)
	require.Equal(t, types.NewEnabledSet(types.KEMKyber512, types.SigDilithium2), oqs.Keeper().Enabled())

	var ids []uint32
	oqs.GetCapabilities(types.CapabilityTLSGroup, func(p types.Params, _ any) bool {
		ids = append(ids, p.Uint(types.ParamGroupID))
		return true
	}, nil)
	require.Equal(t, []uint32{4660, 0x2F3A, 0x2F39}, ids)
}

func TestInactiveProviderIsNotLoaded(t *testing.T) {
	path := writeConfig(t, "oqs.yaml", `
providers:
  default:
    activate: false
  oqsprovider:
    activate: true
`)
	ctx := NewLibContext(WithEnabled(types.NewEnabledSet(types.SigDilithium2)))
	require.NoError(t, ctx.LoadConfigFile(path))
	require.False(t, ctx.Available(DefaultName))
	require.True(t, ctx.Available(OQSName))

	_, err := ctx.Digest("SHA512")
	require.ErrorIs(t, err, types.ErrProviderUnavailable)

	_, err = ctx.NewSignatureContext("dilithium2", "SHA512")
	require.ErrorIs(t, err, types.ErrProviderUnavailable)

	sc, err := ctx.NewSignatureContext("dilithium2", "")
	require.NoError(t, err)
	require.Equal(t, "", sc.DigestName())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, err = LoadConfig(writeConfig(t, "bad.toml", "[providers.legacy]\nactivate = 1\n"))
	require.ErrorIs(t, err, types.ErrUnknownProvider)

	ctx := NewLibContext()
	err = ctx.LoadConfigFile(writeConfig(t, "algs.toml", "[providers.oqsprovider]\nactivate = 1\nalgorithms = \"kyber512,rainbow\"\n"))
	require.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestLoadUnknownProvider(t *testing.T) {
	ctx := NewLibContext()
	_, err := ctx.Load("fips")
	require.ErrorIs(t, err, types.ErrUnknownProvider)
}

func TestLoadIsIdempotent(t *testing.T) {
	ctx := NewLibContext(WithEnv(keeper.MapEnv{}))
	p1, err := ctx.Load(OQSName)
	require.NoError(t, err)
	p2, err := ctx.Load(OQSName)
	require.NoError(t, err)
	require.Same(t, p1, p2)

	ctx.Close()
	require.False(t, ctx.Available(OQSName))
	_, err = ctx.OQS()
	require.ErrorIs(t, err, types.ErrProviderUnavailable)
}

func TestFetchRequiresAdvertisedAlgorithm(t *testing.T) {
	ctx := NewLibContext(
		WithEnv(keeper.MapEnv{}),
		WithEnabled(types.NewEnabledSet(types.SigDilithium3, types.SigFalcon512, types.KEMKyber768, types.KEMHQC128)),
	)
	_, err := ctx.SignatureAlgorithm("dilithium3")
	require.ErrorIs(t, err, types.ErrProviderUnavailable)

	_, err = ctx.Load(OQSName)
	require.NoError(t, err)

	sch, err := ctx.SignatureAlgorithm("p384_dilithium3")
	require.NoError(t, err)
	require.Equal(t, "p384_dilithium3", sch.Name())

	_, err = ctx.SignatureAlgorithm("dilithium2")
	require.ErrorIs(t, err, types.ErrAlgorithmDisabled)

	_, err = ctx.SignatureAlgorithm("falcon512")
	require.ErrorIs(t, err, types.ErrNotImplemented)

	g, err := ctx.KEM("x448_kyber768")
	require.NoError(t, err)
	require.Equal(t, "x448_kyber768", g.Name())

	_, err = ctx.KEM("kyber512")
	require.ErrorIs(t, err, types.ErrAlgorithmDisabled)

	_, err = ctx.KEM("hqc128")
	require.ErrorIs(t, err, types.ErrNotImplemented)
}

func TestSignatureContextDigest(t *testing.T) {
	ctx := NewLibContext(WithEnv(keeper.MapEnv{}), WithEnabled(types.NewEnabledSet(types.SigDilithium2)))
	_, err := ctx.Load(DefaultName)
	require.NoError(t, err)
	_, err = ctx.Load(OQSName)
	require.NoError(t, err)

	hashed, err := ctx.NewSignatureContext("dilithium2", "sha512")
	require.NoError(t, err)
	require.Equal(t, "SHA512", hashed.DigestName())
	raw, err := ctx.NewSignatureContext("dilithium2", "")
	require.NoError(t, err)

	pub, priv, err := hashed.Algorithm().GenerateKey()
	require.NoError(t, err)
	msg := []byte("digest binding")

	sig, err := hashed.Sign(priv, msg)
	require.NoError(t, err)
	require.True(t, hashed.Verify(pub, msg, sig))
	require.False(t, raw.Verify(pub, msg, sig), "hashed signature must not verify over the raw message")

	_, err = ctx.NewSignatureContext("dilithium2", "MD5")
	require.ErrorIs(t, err, types.ErrNotImplemented)
}
