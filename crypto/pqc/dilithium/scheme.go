package dilithium

// PublicKey represents a Dilithium public key.
type PublicKey []byte

// PrivateKey represents a Dilithium private key in packed form.
type PrivateKey []byte

// Signature represents a Dilithium signature.
type Signature []byte

const (
	ModeDilithium2 = "dilithium2"
	ModeDilithium3 = "dilithium3"
	ModeDilithium5 = "dilithium5"

	BackendCircl = "circl"
)

var activeBackend = "unknown"

func ActiveBackend() string { return activeBackend }

func setActiveBackend(name string) {
	activeBackend = name
}

// Scheme defines the minimal interface implemented by Dilithium backends.
type Scheme interface {
	// Name returns the scheme identifier (e.g. "dilithium3").
	Name() string
	// PublicKeySize returns the expected public key length in bytes.
	PublicKeySize() int
	// PrivateKeySize returns the expected packed private key length in bytes.
	PrivateKeySize() int
	// SignatureSize returns the expected signature length in bytes.
	SignatureSize() int
	// SeedSize returns the length of a deterministic keygen seed.
	SeedSize() int

	// GenerateKey derives a key pair from seed, or draws a fresh one when
	// seed is empty.
	GenerateKey(seed []byte) (PublicKey, PrivateKey, error)
	Sign(priv PrivateKey, msg []byte) (Signature, error)
	Verify(pub PublicKey, msg []byte, sig Signature) bool
}
