package keys

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/scrypt"
)

const (
	storageDirName  = "oqstest_keys"
	keysFileName    = "keys.json"
	defaultFileMode = 0o600
)

// KeyRecord is a persisted signature key pair together with a signature
// over the harness message made when the pair was generated. Replaying the
// signature on later runs catches encoding drift between builds.
type KeyRecord struct {
	Algorithm  string    `json:"algorithm"`
	PublicKey  []byte    `json:"public_key"`
	PrivateKey []byte    `json:"private_key"`
	Signature  []byte    `json:"signature,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type StoreOptions struct {
	passphrase []byte
}

type StoreOption func(*StoreOptions)

// WithPassphrase encrypts key material on disk under the given passphrase.
func WithPassphrase(passphrase []byte) StoreOption {
	return func(o *StoreOptions) {
		if len(passphrase) == 0 {
			return
		}
		o.passphrase = append([]byte(nil), passphrase...)
	}
}

// Store keeps one key pair per signature algorithm under a directory.
type Store struct {
	dir        string
	keysPath   string
	passphrase []byte

	mu   sync.RWMutex
	keys map[string]KeyRecord
}

// LoadStore opens (creating if needed) the key store under homeDir.
func LoadStore(homeDir string, opts ...StoreOption) (*Store, error) {
	if homeDir == "" {
		return nil, errors.New("keystore directory is required")
	}

	dir := filepath.Join(homeDir, storageDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create key directory: %w", err)
	}

	optValues := StoreOptions{}
	for _, opt := range opts {
		opt(&optValues)
	}

	store := &Store{
		dir:        dir,
		keysPath:   filepath.Join(dir, keysFileName),
		passphrase: optValues.passphrase,
		keys:       make(map[string]KeyRecord),
	}

	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readFileMaybeEncrypted(s.keysPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read keys: %w", err)
	}

	var raw map[string]KeyRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal keys: %w", err)
	}
	s.keys = raw
	return nil
}

// SaveKey stores or replaces the key pair of record.Algorithm.
func (s *Store) SaveKey(record KeyRecord) error {
	if record.Algorithm == "" {
		return errors.New("algorithm cannot be empty")
	}
	if len(record.PublicKey) == 0 {
		return errors.New("public key cannot be empty")
	}
	if len(record.PrivateKey) == 0 {
		return errors.New("private key cannot be empty")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys[record.Algorithm] = record
	return s.persistLocked()
}

// GetKey retrieves the key pair stored for algorithm.
func (s *Store) GetKey(algorithm string) (KeyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.keys[algorithm]
	return record, ok
}

// ListKeys returns every stored record sorted by algorithm.
func (s *Store) ListKeys() []KeyRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]KeyRecord, 0, len(s.keys))
	for _, rec := range s.keys {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Algorithm < out[j].Algorithm })
	return out
}

// Encrypted reports whether the store writes encrypted files.
func (s *Store) Encrypted() bool {
	return len(s.passphrase) > 0
}

func (s *Store) persistLocked() error {
	plaintext, err := json.MarshalIndent(s.keys, "", "  ")
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}
	data := plaintext
	if len(s.passphrase) > 0 {
		data, err = encryptBytes(s.passphrase, plaintext)
		zeroBytes(plaintext)
		if err != nil {
			return err
		}
	}

	tmpFile, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write keystore: %w", err)
	}
	if err := tmpFile.Chmod(defaultFileMode); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("chmod tmp keystore: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close tmp keystore: %w", err)
	}
	if err := os.Rename(tmpPath, s.keysPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("persist keystore: %w", err)
	}
	return nil
}

const (
	encryptionMagic = "OQSKEY1"
	encryptionSalt  = 16
	encryptionNonce = 12
)

func (s *Store) readFileMaybeEncrypted(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte(encryptionMagic)) {
		if len(s.passphrase) == 0 {
			return nil, fmt.Errorf("%s is encrypted; provide a keystore passphrase", path)
		}
		return decryptBytes(s.passphrase, data)
	}
	return data, nil
}

func encryptBytes(passphrase, plaintext []byte) ([]byte, error) {
	salt := make([]byte, encryptionSalt)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, encryptionNonce)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(encryptionMagic)+encryptionSalt+encryptionNonce+len(plaintext)+gcm.Overhead())
	out = append(out, encryptionMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, []byte(encryptionMagic)), nil
}

func decryptBytes(passphrase, ciphertext []byte) ([]byte, error) {
	header := []byte(encryptionMagic)
	if len(ciphertext) < len(header)+encryptionSalt+encryptionNonce {
		return nil, errors.New("encrypted data truncated")
	}
	if !bytes.Equal(ciphertext[:len(header)], header) {
		return nil, errors.New("invalid encryption magic")
	}
	offset := len(header)
	salt := ciphertext[offset : offset+encryptionSalt]
	offset += encryptionSalt
	nonce := ciphertext[offset : offset+encryptionNonce]
	offset += encryptionNonce

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext[offset:], header)
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	return plaintext, nil
}

func newGCM(passphrase, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(passphrase, salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer zeroBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher gcm: %w", err)
	}
	return gcm, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Fingerprint is a short stable identifier for a public key.
func Fingerprint(pub []byte) string {
	hash := sha256.Sum256(pub)
	return hex.EncodeToString(hash[:8])
}
