package types

const (
	ModuleName = "capabilities"

	// CodepointEnvPrefix prefixes every codepoint override variable,
	// e.g. OQS_CODEPOINT_X25519_KYBER512.
	CodepointEnvPrefix = "OQS_CODEPOINT"
)

// Capability kinds understood by the enumerator. Matching is case-insensitive.
const (
	CapabilityTLSGroup  = "TLS-GROUP"
	CapabilityTLSSigAlg = "TLS-SIGALG"
)

// Protocol version bounds as used in the records.
const (
	TLS13Version int32 = 0x0304

	VersionUnsupported int32 = -1
	VersionUnbounded   int32 = 0
)
