package keeper

import (
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"pqcprov/x/capabilities/types"
)

// EnvSource answers codepoint override lookups.
type EnvSource interface {
	LookupEnv(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is a fixed environment, mostly for tests.
type MapEnv map[string]string

func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// ViperEnv layers the `codepoints` section of a config file under the
// process environment: OQS_CODEPOINT_P256_KYBER512 falls back to the key
// codepoints.p256_kyber512.
type ViperEnv struct {
	V *viper.Viper
}

func (e ViperEnv) LookupEnv(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	if e.V == nil {
		return "", false
	}
	tag := strings.TrimPrefix(key, types.CodepointEnvPrefix+"_")
	cfgKey := "codepoints." + strings.ToLower(tag)
	if !e.V.IsSet(cfgKey) {
		return "", false
	}
	return cast.ToString(e.V.Get(cfgKey)), true
}

// atoi parses like C atoi: optional leading whitespace, an optional sign and
// a run of decimal digits. Anything unparsable yields 0. Magnitudes beyond
// 32 bits saturate and negative values wrap into the unsigned slot.
func atoi(s string) uint32 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var n int64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int64(c-'0')
		if n > math.MaxUint32 {
			n = math.MaxUint32
		}
	}
	if neg {
		n = -n
	}
	return uint32(n)
}
