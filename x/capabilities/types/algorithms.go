package types

// Algorithm names one enablement flag. A group algorithm flag gates the pure
// group and both hybrids; a signature flag gates every composite built on the
// same post-quantum scheme.
type Algorithm string

const (
	KEMFrodo640AES    Algorithm = "frodo640aes"
	KEMFrodo640SHAKE  Algorithm = "frodo640shake"
	KEMFrodo976AES    Algorithm = "frodo976aes"
	KEMFrodo976SHAKE  Algorithm = "frodo976shake"
	KEMFrodo1344AES   Algorithm = "frodo1344aes"
	KEMFrodo1344SHAKE Algorithm = "frodo1344shake"
	KEMKyber512       Algorithm = "kyber512"
	KEMKyber768       Algorithm = "kyber768"
	KEMKyber1024      Algorithm = "kyber1024"
	KEMBikeL1         Algorithm = "bikel1"
	KEMBikeL3         Algorithm = "bikel3"
	KEMKyber90s512    Algorithm = "kyber90s512"
	KEMKyber90s768    Algorithm = "kyber90s768"
	KEMKyber90s1024   Algorithm = "kyber90s1024"
	KEMHQC128         Algorithm = "hqc128"
	KEMHQC192         Algorithm = "hqc192"
	KEMHQC256         Algorithm = "hqc256"

	SigDilithium2              Algorithm = "dilithium2"
	SigDilithium3              Algorithm = "dilithium3"
	SigDilithium5              Algorithm = "dilithium5"
	SigDilithium2AES           Algorithm = "dilithium2_aes"
	SigDilithium3AES           Algorithm = "dilithium3_aes"
	SigDilithium5AES           Algorithm = "dilithium5_aes"
	SigFalcon512               Algorithm = "falcon512"
	SigFalcon1024              Algorithm = "falcon1024"
	SigSphincsHaraka128fRobust Algorithm = "sphincsharaka128frobust"
	SigSphincsSHA256128fRobust Algorithm = "sphincssha256128frobust"
	SigSphincsSHAKE128fRobust  Algorithm = "sphincsshake256128frobust"
	SigSphincsSHAKE192fSimple  Algorithm = "sphincsshake256192fsimple"
	SigSphincsSHAKE256fSimple  Algorithm = "sphincsshake256256fsimple"
)

// GroupAlgorithm is one row of the compiled-in group table. The external
// name, internal name and algorithm tag coincide for every group.
type GroupAlgorithm struct {
	Algorithm Algorithm
	Defaults  GroupRecord
}

func (g GroupAlgorithm) Name() string { return string(g.Algorithm) }

// HasECP reports whether the NIST-curve hybrid exists for this algorithm.
func (g GroupAlgorithm) HasECP() bool {
	return g.Defaults.GroupIDECP != 0 && ECPCurve(g.Defaults.SecurityBits) != ""
}

// HasECX reports whether the Montgomery-curve hybrid exists. It is absent for
// every 256-bit algorithm and for some 192-bit ones (bikel3).
func (g GroupAlgorithm) HasECX() bool {
	return g.Defaults.GroupIDECX != 0 && ECXCurve(g.Defaults.SecurityBits) != ""
}

// Variants lists the descriptor variants in emission order.
func (g GroupAlgorithm) Variants() []Variant {
	out := []Variant{VariantPure}
	if g.HasECP() {
		out = append(out, VariantECP)
	}
	if g.HasECX() {
		out = append(out, VariantECX)
	}
	return out
}

// VariantName is the external name of variant v.
func (g GroupAlgorithm) VariantName(v Variant) string {
	switch v {
	case VariantECP:
		return HybridName(ECPCurve(g.Defaults.SecurityBits), g.Name())
	case VariantECX:
		return HybridName(ECXCurve(g.Defaults.SecurityBits), g.Name())
	default:
		return g.Name()
	}
}

// SigAlgComposite is one row of the compiled-in signature table.
type SigAlgComposite struct {
	Algorithm Algorithm
	Name      string
	OID       string
	Defaults  SigAlgRecord
}

func kemGroup(alg Algorithm, id, ecp, ecx, secbits uint32) GroupAlgorithm {
	return GroupAlgorithm{
		Algorithm: alg,
		Defaults: GroupRecord{
			GroupID:      id,
			GroupIDECP:   ecp,
			GroupIDECX:   ecx,
			SecurityBits: secbits,
			MinTLS:       TLS13Version,
			MaxTLS:       VersionUnbounded,
			MinDTLS:      VersionUnsupported,
			MaxDTLS:      VersionUnsupported,
			IsKEM:        true,
		},
	}
}

func sigalg(alg Algorithm, name, oid string, codePoint, secbits uint32) SigAlgComposite {
	return SigAlgComposite{
		Algorithm: alg,
		Name:      name,
		OID:       oid,
		Defaults: SigAlgRecord{
			CodePoint:    codePoint,
			SecurityBits: secbits,
			MinTLS:       TLS13Version,
			MaxTLS:       VersionUnbounded,
			MinDTLS:      VersionUnsupported,
			MaxDTLS:      VersionUnsupported,
		},
	}
}

var groupTable = [...]GroupAlgorithm{
	kemGroup(KEMFrodo640AES, 0x0200, 0x2F00, 0x2F80, 128),
	kemGroup(KEMFrodo640SHAKE, 0x0201, 0x2F01, 0x2F81, 128),
	kemGroup(KEMFrodo976AES, 0x0202, 0x2F02, 0x2F82, 192),
	kemGroup(KEMFrodo976SHAKE, 0x0203, 0x2F03, 0x2F83, 192),
	kemGroup(KEMFrodo1344AES, 0x0204, 0x2F04, 0, 256),
	kemGroup(KEMFrodo1344SHAKE, 0x0205, 0x2F05, 0, 256),
	kemGroup(KEMKyber512, 0x023A, 0x2F3A, 0x2F39, 128),
	kemGroup(KEMKyber768, 0x023C, 0x2F3C, 0x2F90, 192),
	kemGroup(KEMKyber1024, 0x023D, 0x2F3D, 0, 256),
	kemGroup(KEMBikeL1, 0x0238, 0x2F38, 0x2F37, 128),
	kemGroup(KEMBikeL3, 0x023B, 0x2F3B, 0, 192),
	kemGroup(KEMKyber90s512, 0x023E, 0x2F3E, 0x2FA9, 128),
	kemGroup(KEMKyber90s768, 0x023F, 0x2F3F, 0x2FAA, 192),
	kemGroup(KEMKyber90s1024, 0x0240, 0x2F40, 0, 256),
	kemGroup(KEMHQC128, 0x022C, 0x2F2C, 0x2FAC, 128),
	kemGroup(KEMHQC192, 0x022D, 0x2F2D, 0x2FAD, 192),
	kemGroup(KEMHQC256, 0x022E, 0x2F2E, 0, 256),
}

var sigAlgTable = [...]SigAlgComposite{
	sigalg(SigDilithium2, "dilithium2", "1.3.6.1.4.1.2.267.7.4.4", 0xfea0, 128),
	sigalg(SigDilithium2, "p256_dilithium2", "1.3.9999.2.7.1", 0xfea1, 128),
	sigalg(SigDilithium2, "rsa3072_dilithium2", "1.3.9999.2.7.2", 0xfea2, 128),
	sigalg(SigDilithium3, "dilithium3", "1.3.6.1.4.1.2.267.7.6.5", 0xfea3, 192),
	sigalg(SigDilithium3, "p384_dilithium3", "1.3.9999.2.7.3", 0xfea4, 192),
	sigalg(SigDilithium5, "dilithium5", "1.3.6.1.4.1.2.267.7.8.7", 0xfea5, 256),
	sigalg(SigDilithium5, "p521_dilithium5", "1.3.9999.2.7.4", 0xfea6, 256),
	sigalg(SigDilithium2AES, "dilithium2_aes", "1.3.6.1.4.1.2.267.11.4.4", 0xfea7, 128),
	sigalg(SigDilithium2AES, "p256_dilithium2_aes", "1.3.9999.2.11.1", 0xfea8, 128),
	sigalg(SigDilithium2AES, "rsa3072_dilithium2_aes", "1.3.9999.2.11.2", 0xfea9, 128),
	sigalg(SigDilithium3AES, "dilithium3_aes", "1.3.6.1.4.1.2.267.11.6.5", 0xfeaa, 192),
	sigalg(SigDilithium3AES, "p384_dilithium3_aes", "1.3.9999.2.11.3", 0xfeab, 192),
	sigalg(SigDilithium5AES, "dilithium5_aes", "1.3.6.1.4.1.2.267.11.8.7", 0xfeac, 256),
	sigalg(SigDilithium5AES, "p521_dilithium5_aes", "1.3.9999.2.11.4", 0xfead, 256),
	sigalg(SigFalcon512, "falcon512", "1.3.9999.3.1", 0xfe0b, 128),
	sigalg(SigFalcon512, "p256_falcon512", "1.3.9999.3.2", 0xfe0c, 128),
	sigalg(SigFalcon512, "rsa3072_falcon512", "1.3.9999.3.3", 0xfe0d, 128),
	sigalg(SigFalcon1024, "falcon1024", "1.3.9999.3.4", 0xfe0e, 256),
	sigalg(SigFalcon1024, "p521_falcon1024", "1.3.9999.3.5", 0xfe0f, 256),
	sigalg(SigSphincsHaraka128fRobust, "sphincsharaka128frobust", "1.3.9999.6.1.1", 0xfe42, 128),
	sigalg(SigSphincsHaraka128fRobust, "p256_sphincsharaka128frobust", "1.3.9999.6.1.2", 0xfe43, 128),
	sigalg(SigSphincsHaraka128fRobust, "rsa3072_sphincsharaka128frobust", "1.3.9999.6.1.3", 0xfe44, 128),
	sigalg(SigSphincsSHA256128fRobust, "sphincssha256128frobust", "1.3.9999.6.4.1", 0xfe5e, 128),
	sigalg(SigSphincsSHA256128fRobust, "p256_sphincssha256128frobust", "1.3.9999.6.4.2", 0xfe5f, 128),
	sigalg(SigSphincsSHA256128fRobust, "rsa3072_sphincssha256128frobust", "1.3.9999.6.4.3", 0xfe60, 128),
	sigalg(SigSphincsSHAKE128fRobust, "sphincsshake256128frobust", "1.3.9999.6.7.1", 0xfe7a, 128),
	sigalg(SigSphincsSHAKE128fRobust, "p256_sphincsshake256128frobust", "1.3.9999.6.7.2", 0xfe7b, 128),
	sigalg(SigSphincsSHAKE128fRobust, "rsa3072_sphincsshake256128frobust", "1.3.9999.6.7.3", 0xfe7c, 128),
	sigalg(SigSphincsSHAKE192fSimple, "sphincsshake256192fsimple", "1.3.9999.6.8.3", 0xfe88, 192),
	sigalg(SigSphincsSHAKE192fSimple, "p384_sphincsshake256192fsimple", "1.3.9999.6.8.4", 0xfe89, 192),
	sigalg(SigSphincsSHAKE256fSimple, "sphincsshake256256fsimple", "1.3.9999.6.9.3", 0xfe90, 256),
	sigalg(SigSphincsSHAKE256fSimple, "p521_sphincsshake256256fsimple", "1.3.9999.6.9.4", 0xfe91, 256),
}

// GroupTable returns a copy of the compiled-in group table in declaration
// order.
func GroupTable() []GroupAlgorithm {
	out := make([]GroupAlgorithm, len(groupTable))
	copy(out, groupTable[:])
	return out
}

// SigAlgTable returns a copy of the compiled-in signature table in
// declaration order.
func SigAlgTable() []SigAlgComposite {
	out := make([]SigAlgComposite, len(sigAlgTable))
	copy(out, sigAlgTable[:])
	return out
}

// AllAlgorithms lists every enablement flag the provider knows, groups first.
func AllAlgorithms() []Algorithm {
	out := make([]Algorithm, 0, len(groupTable)+len(sigAlgTable))
	for _, g := range groupTable {
		out = append(out, g.Algorithm)
	}
	seen := make(map[Algorithm]struct{})
	for _, s := range sigAlgTable {
		if _, ok := seen[s.Algorithm]; ok {
			continue
		}
		seen[s.Algorithm] = struct{}{}
		out = append(out, s.Algorithm)
	}
	return out
}

// IsKnown reports whether alg names a compiled-in algorithm.
func IsKnown(alg Algorithm) bool {
	for _, known := range AllAlgorithms() {
		if known == alg {
			return true
		}
	}
	return false
}
