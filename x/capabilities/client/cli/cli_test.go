package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"pqcprov/x/capabilities/types"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := &cobra.Command{
		Use:           "oqstest",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return ApplyColor(cmd)
		},
	}
	AddPersistentFlags(root.PersistentFlags())
	AttachCommands(root)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// resultLines picks the PASS/FAIL/SKIP lines out of command stderr.
func resultLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "PASS ") || strings.HasPrefix(line, "FAIL ") || strings.HasPrefix(line, "SKIP ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oqs.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCapabilitiesText(t *testing.T) {
	out, _, err := run(t, "capabilities", "tls-sigalg", "--algorithms", "dilithium2")
	require.NoError(t, err)
	require.Contains(t, out, "# TLS-SIGALG (3)\n")
	require.Contains(t, out, `tls-sigalg-name="p256_dilithium2"`)
	require.Contains(t, out, "tls-sigalg-code-point=0xfea1")
	require.NotContains(t, out, "TLS-GROUP")
}

func TestCapabilitiesJSON(t *testing.T) {
	cfg := writeConfig(t, `
[providers.oqsprovider]
activate = 1
algorithms = ["kyber768"]

[codepoints]
x448_kyber768 = 1234
`)
	out, _, err := run(t, "capabilities", "--config", cfg, "--format", "json")
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc[types.CapabilityTLSGroup], 3)
	require.Empty(t, doc[types.CapabilityTLSSigAlg])

	hybrid := doc[types.CapabilityTLSGroup][2]
	require.Equal(t, "x448_kyber768", hybrid[types.ParamGroupName])
	require.Equal(t, float64(1234), hybrid[types.ParamGroupID])
	require.Equal(t, float64(1), hybrid[types.ParamGroupIsKEM])
}

func TestCapabilitiesRejectsUnknownKind(t *testing.T) {
	_, _, err := run(t, "capabilities", "TLS-FOO")
	require.ErrorIs(t, err, types.ErrUnknownCapability)

	_, _, err = run(t, "capabilities", "--format", "yaml")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, "validate", "--algorithms", "kyber512,dilithium2")
	require.NoError(t, err)
	require.Contains(t, out, "capability tables consistent: 3 groups, 3 sigalgs")

	cfg := writeConfig(t, `
[providers.oqsprovider]
activate = 1
algorithms = "kyber512,dilithium2"

[codepoints]
dilithium2 = 570
`)
	_, _, err = run(t, "validate", "--config", cfg)
	require.ErrorIs(t, err, types.ErrDuplicateCodepoint)
}

func TestSignatures(t *testing.T) {
	cfg := writeConfig(t, `
[providers.default]
activate = true

[providers.oqsprovider]
activate = true
`)
	_, errOut, err := run(t, "signatures", "oqsprovider", cfg, "--algorithms", "dilithium3")
	require.NoError(t, err)
	require.Equal(t, []string{"PASS dilithium3", "PASS p384_dilithium3"}, resultLines(errOut))
	require.Contains(t, errOut, "signatures: 2 passed, 0 failed, 0 skipped")
}

func TestSignaturesPreconditions(t *testing.T) {
	cfg := writeConfig(t, "[providers.default]\nactivate = 1\n")

	_, _, err := run(t, "signatures", "oqsprovider", cfg)
	require.ErrorIs(t, err, types.ErrProviderUnavailable)

	_, _, err = run(t, "signatures", "oqsprovider")
	require.Error(t, err)

	_, _, err = run(t, "signatures", "oqsprovider", filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, types.ErrInvalidConfig)

	_, _, err = run(t, "signatures", "oqsprovider", cfg, "--algorithms", "rainbow")
	require.ErrorIs(t, err, types.ErrUnknownAlgorithm)
}

func TestGroups(t *testing.T) {
	cfg := writeConfig(t, "[providers.oqsprovider]\nactivate = 1\n")
	_, errOut, err := run(t, "groups", "oqsprovider", cfg, "--algorithms", "kyber512,bikel1")
	require.NoError(t, err)
	require.Contains(t, errOut, "PASS x25519_kyber512\n")
	require.Contains(t, errOut, "SKIP bikel1")
	require.Contains(t, errOut, "groups: 3 passed, 0 failed, 3 skipped")
}

func TestSignaturesWithKeystore(t *testing.T) {
	t.Setenv("OQSTEST_KEYSTORE_PASSPHRASE", "")
	t.Setenv("OQSTEST_KEYSTORE_PASSPHRASE_FILE", "")

	cfg := writeConfig(t, "[providers.oqsprovider]\nactivate = 1\n")
	dir := t.TempDir()

	_, _, err := run(t, "signatures", "oqsprovider", cfg, "--algorithms", "dilithium5", "--keystore", dir)
	require.NoError(t, err)

	out, _, err := run(t, "keys", "--keystore", dir)
	require.NoError(t, err)
	require.Contains(t, out, "ALGORITHM")
	require.Contains(t, out, "dilithium5")
	require.Contains(t, out, "p521_dilithium5")

	_, _, err = run(t, "keys")
	require.Error(t, err)
}

func TestLibContextReleased(t *testing.T) {
	_, errOut, err := run(t, "validate", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, errOut, "providers unloaded")

	_, errOut, err = run(t, "capabilities", "tls-group", "--log-level", "debug")
	require.NoError(t, err)
	require.Contains(t, errOut, "providers unloaded")

	cfg := writeConfig(t, `
[providers.default]
activate = 1

[providers.oqsprovider]
activate = 1
algorithms = "rainbow"
`)
	_, errOut, err = run(t, "signatures", "oqsprovider", cfg, "--log-level", "debug")
	require.ErrorIs(t, err, types.ErrInvalidConfig)
	require.Contains(t, errOut, "providers unloaded")
}
