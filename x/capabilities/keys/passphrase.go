package keys

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	FlagKeystore       = "keystore"
	FlagPassphraseFile = "keystore-passphrase-file"

	envPassphrase     = "OQSTEST_KEYSTORE_PASSPHRASE"
	envPassphraseFile = "OQSTEST_KEYSTORE_PASSPHRASE_FILE"
)

// AddFlags registers the keystore location and passphrase flags.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(FlagKeystore, "", "Directory holding persisted signature keys; keys are generated and saved on first use")
	fs.String(FlagPassphraseFile, "", "Path to a file containing the keystore passphrase")
}

// OpenFromFlags opens the keystore named by --keystore, or returns nil when
// the flag is empty.
func OpenFromFlags(fs *pflag.FlagSet) (*Store, error) {
	dir, err := fs.GetString(FlagKeystore)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	passphrase, err := ReadPassphrase(fs)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(passphrase)
	return LoadStore(strings.TrimSpace(dir), WithPassphrase(passphrase))
}

// ReadPassphrase resolves the passphrase from --keystore-passphrase-file,
// then OQSTEST_KEYSTORE_PASSPHRASE_FILE, then OQSTEST_KEYSTORE_PASSPHRASE.
// An empty result means an unencrypted store.
func ReadPassphrase(fs *pflag.FlagSet) ([]byte, error) {
	filePath, err := fs.GetString(FlagPassphraseFile)
	if err != nil {
		return nil, err
	}
	if filePath == "" {
		filePath = os.Getenv(envPassphraseFile)
	}
	if strings.TrimSpace(filePath) != "" {
		data, err := os.ReadFile(strings.TrimSpace(filePath))
		if err != nil {
			return nil, err
		}
		if pass := strings.TrimSpace(string(data)); pass != "" {
			return []byte(pass), nil
		}
	}

	pass := strings.TrimSpace(os.Getenv(envPassphrase))
	if pass == "" {
		return nil, nil
	}
	return []byte(pass), nil
}
