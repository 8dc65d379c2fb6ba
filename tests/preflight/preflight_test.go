package preflight_test

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	sdklog "cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"pqcprov/crypto/pqc/dilithium"
	"pqcprov/crypto/pqc/kem"
	"pqcprov/x/capabilities/harness"
	"pqcprov/x/capabilities/keeper"
	"pqcprov/x/capabilities/types"
)

var longHexSequence = regexp.MustCompile(`[0-9a-fA-F]{64,}`)

func readFileIfExists(t *testing.T, path string) (string, bool) {
	t.Helper()
	bz, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(bz), true
}

func TestPQCBackendApproved(t *testing.T) {
	_, err := dilithium.ByName(dilithium.ModeDilithium2)
	require.NoError(t, err)
	name := dilithium.ActiveBackend()
	switch name {
	case dilithium.BackendCircl:
	default:
		t.Fatalf("unapproved PQC backend linked: %s", name)
	}
}

func TestCompiledTablesConsistent(t *testing.T) {
	for label, set := range map[string]types.EnabledSet{
		"default": types.DefaultEnabled(),
		"full":    types.FullEnabled(),
	} {
		k := keeper.NewKeeper(sdklog.NewNopLogger(), keeper.WithEnabled(set), keeper.WithEnv(keeper.MapEnv{}))
		require.NoError(t, k.Validate(), label)
	}
}

func TestDefaultSetIsImplemented(t *testing.T) {
	if len(types.DefaultEnabled()) == len(types.AllAlgorithms()) {
		t.Skip("oqs_full advertises algorithms without a backend")
	}
	k := keeper.NewKeeper(sdklog.NewNopLogger(), keeper.WithEnv(keeper.MapEnv{}))
	for params := range k.SigAlgs() {
		name := params.Name()
		pq := name
		if _, rest, ok := strings.Cut(name, "_"); ok {
			pq = rest
		}
		_, err := dilithium.ByName(pq)
		require.NoError(t, err, "default build advertises %s without a backend", name)
	}
	for params := range k.Groups() {
		_, err := kem.ByName(params.Name())
		require.NoError(t, err, "default build advertises %s without a backend", params.Name())
	}
}

func TestPQCNoSensitiveLogs(t *testing.T) {
	harness.TestOnlySetDebug(false)
	buf := &bytes.Buffer{}
	restore := harness.TestOnlySwapDebugWriter(buf)
	defer restore()

	sig := bytes.Repeat([]byte{0xBB}, 2420)
	harness.TestOnlyEmitDebugLog("dilithium2", harness.Result{Algorithm: "dilithium2", Stage: harness.StageDone}, sig)
	require.Equal(t, "", buf.String(), "debug logs should be silent when disabled")

	harness.TestOnlySetDebug(true)
	defer harness.TestOnlySetDebug(false)
	buf.Reset()
	harness.TestOnlyEmitDebugLog("p256_dilithium2/SHA512", harness.Result{Algorithm: "p256_dilithium2", Stage: harness.StageDone}, sig)

	out := strings.ToLower(buf.String())
	require.Contains(t, out, "p256_dilithium2/sha512")
	require.NotContains(t, out, "priv")
	require.NotContains(t, out, "seed")
	if longHexSequence.MatchString(out) {
		t.Fatalf("debug log contains long hex payload: %s", out)
	}
}

func TestCodepointEnvPrefixDefinedOnce(t *testing.T) {
	repoRoot := findRepoRoot(t)
	var offenders []string
	walkGoFiles(t, repoRoot, func(rel string, data []byte) {
		if strings.HasSuffix(rel, "_test.go") || rel == "x/capabilities/types/keys.go" {
			return
		}
		if bytes.Contains(data, []byte(`"OQS_CODEPOINT`)) {
			offenders = append(offenders, rel)
		}
	})
	require.Empty(t, offenders, "env prefix must come from types.CodepointEnvPrefix")
}

func TestEnabledSetBuildTagsPaired(t *testing.T) {
	repoRoot := findRepoRoot(t)
	circl, ok := readFileIfExists(t, findFile(t, repoRoot, "x", "capabilities", "types", "enabled_circl.go"))
	require.True(t, ok)
	full, ok := readFileIfExists(t, findFile(t, repoRoot, "x", "capabilities", "types", "enabled_full.go"))
	require.True(t, ok)

	require.True(t, strings.HasPrefix(circl, "//go:build !oqs_full\n"))
	require.True(t, strings.HasPrefix(full, "//go:build oqs_full\n"))
	require.Contains(t, circl, "defaultEnabledAlgorithms")
	require.Contains(t, full, "defaultEnabledAlgorithms")
}

func TestNoPanicOnUnknownCapability(t *testing.T) {
	k := keeper.NewKeeper(sdklog.NewNopLogger(), keeper.WithEnv(keeper.MapEnv{}))
	for _, kind := range []string{"", "TLS-KEM", "tls-groups"} {
		require.False(t, k.GetCapabilities(kind, func(types.Params, any) bool {
			t.Fatalf("visitor called for %q", kind)
			return true
		}, nil))
	}
}

func findRepoRoot(t *testing.T) string {
	t.Helper()
	_, thisfile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(thisfile)
	return filepath.Clean(filepath.Join(dir, "../.."))
}

func findFile(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	t.Fatalf("file not found: %s", path)
	return ""
}

func walkGoFiles(t *testing.T, root string, fn func(rel string, data []byte)) {
	t.Helper()
	skip := map[string]bool{
		".git":      true,
		"_examples": true,
		"dist":      true,
		"build":     true,
		"vendor":    true,
	}

	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip[filepath.Base(path)] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		bz, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fn(filepath.ToSlash(rel), bz)
		return nil
	}); err != nil {
		t.Fatalf("walk go files: %v", err)
	}
}
