package types

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Capability parameter names, matching the names TLS stacks query.
const (
	ParamGroupName         = "tls-group-name"
	ParamGroupNameInternal = "tls-group-name-internal"
	ParamGroupAlg          = "tls-group-alg"
	ParamGroupID           = "tls-group-id"
	ParamGroupSecurityBits = "tls-group-sec-bits"
	ParamGroupIsKEM        = "tls-group-is-kem"

	ParamSigAlgName         = "tls-sigalg-name"
	ParamSigAlgNameInternal = "tls-sigalg-name-internal"
	ParamSigAlgAlg          = "tls-sigalg-alg"
	ParamSigAlgHashAlg      = "tls-sigalg-hashalg"
	ParamSigAlgOID          = "tls-sigalg-oid"
	ParamSigAlgCodePoint    = "tls-sigalg-code-point"
	ParamSigAlgSecurityBits = "tls-sigalg-sec-bits"

	ParamMinTLS  = "tls-min-tls"
	ParamMaxTLS  = "tls-max-tls"
	ParamMinDTLS = "tls-min-dtls"
	ParamMaxDTLS = "tls-max-dtls"
)

// Param is one named value. Values are string, uint32 or int32.
type Param struct {
	Key   string
	Value any
}

// Params is a fixed-shape, ordered list of named values describing one
// negotiable algorithm variant.
type Params []Param

func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

func (p Params) String(key string) string {
	v, _ := p.Get(key)
	s, _ := v.(string)
	return s
}

func (p Params) Uint(key string) uint32 {
	v, _ := p.Get(key)
	u, _ := v.(uint32)
	return u
}

func (p Params) Int(key string) int32 {
	v, _ := p.Get(key)
	i, _ := v.(int32)
	return i
}

// Name returns the external name of either a group or a sigalg.
func (p Params) Name() string {
	if name := p.String(ParamGroupName); name != "" {
		return name
	}
	return p.String(ParamSigAlgName)
}

// ToStruct renders the params as a protobuf Struct for JSON output.
func (p Params) ToStruct() (*structpb.Struct, error) {
	fields := make(map[string]any, len(p))
	for _, param := range p {
		fields[param.Key] = param.Value
	}
	return structpb.NewStruct(fields)
}

// Format renders the params as key=value pairs in declaration order.
func (p Params) Format() string {
	parts := make([]string, 0, len(p))
	for _, param := range p {
		switch v := param.Value.(type) {
		case string:
			parts = append(parts, fmt.Sprintf("%s=%q", param.Key, v))
		case uint32:
			if param.Key == ParamGroupID || param.Key == ParamSigAlgCodePoint {
				parts = append(parts, fmt.Sprintf("%s=0x%04x", param.Key, v))
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%d", param.Key, v))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", param.Key, v))
		}
	}
	return strings.Join(parts, " ")
}
