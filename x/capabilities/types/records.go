package types

import (
	"fmt"
	"strings"
)

// GroupRecord holds the numeric metadata of one key-exchange algorithm. A
// zero hybrid id means the provider does not offer that combination.
type GroupRecord struct {
	GroupID      uint32
	GroupIDECP   uint32
	GroupIDECX   uint32
	SecurityBits uint32
	MinTLS       int32
	MaxTLS       int32
	MinDTLS      int32
	MaxDTLS      int32
	IsKEM        bool
}

// SigAlgRecord holds the numeric metadata of one signature composite.
type SigAlgRecord struct {
	CodePoint    uint32
	SecurityBits uint32
	MinTLS       int32
	MaxTLS       int32
	MinDTLS      int32
	MaxDTLS      int32
}

// Variant selects which of the three group flavours a descriptor stands for.
type Variant uint8

const (
	VariantPure Variant = iota
	VariantECP
	VariantECX
)

func (v Variant) String() string {
	switch v {
	case VariantPure:
		return "pure"
	case VariantECP:
		return "ecp"
	case VariantECX:
		return "ecx"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// ID returns the group id slot selected by v.
func (r GroupRecord) ID(v Variant) uint32 {
	switch v {
	case VariantECP:
		return r.GroupIDECP
	case VariantECX:
		return r.GroupIDECX
	default:
		return r.GroupID
	}
}

// Slot returns a pointer to the group id slot selected by v.
func (r *GroupRecord) Slot(v Variant) *uint32 {
	switch v {
	case VariantECP:
		return &r.GroupIDECP
	case VariantECX:
		return &r.GroupIDECX
	default:
		return &r.GroupID
	}
}

// ECPCurve is the NIST curve paired with a post-quantum group of the given
// security level.
func ECPCurve(securityBits uint32) string {
	switch securityBits {
	case 128:
		return "p256"
	case 192:
		return "p384"
	case 256:
		return "p521"
	default:
		return ""
	}
}

// ECXCurve is the Montgomery curve paired with a post-quantum group of the
// given security level. There is none at 256 bits.
func ECXCurve(securityBits uint32) string {
	switch securityBits {
	case 128:
		return "x25519"
	case 192:
		return "x448"
	default:
		return ""
	}
}

// HybridName prefixes name with the classical curve, e.g. p256_kyber512.
func HybridName(curve, name string) string {
	return curve + "_" + name
}

// CodepointEnvVar returns the override variable for an external name.
func CodepointEnvVar(name string) string {
	return CodepointEnvPrefix + "_" + strings.ToUpper(name)
}
