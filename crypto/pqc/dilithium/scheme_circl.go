package dilithium

import (
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/dilithium/mode2"
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/cloudflare/circl/sign/dilithium/mode5"
)

var circlModes = map[string]func() sign.Scheme{
	ModeDilithium2: mode2.Scheme,
	ModeDilithium3: mode3.Scheme,
	ModeDilithium5: mode5.Scheme,
}

func init() {
	setActiveBackend(BackendCircl)
}

// Modes lists the Dilithium parameter sets this build can sign with, in
// ascending security order.
func Modes() []string {
	return []string{ModeDilithium2, ModeDilithium3, ModeDilithium5}
}

// ByName returns the backend for a Dilithium parameter set. Names the build
// does not carry (including the AES variants) yield ErrNotImplemented.
func ByName(name string) (Scheme, error) {
	ctor, ok := circlModes[name]
	if !ok {
		return nil, fmt.Errorf("dilithium: %s: %w", name, ErrNotImplemented)
	}
	sch := ctor()
	if sch == nil {
		return nil, fmt.Errorf("dilithium: circl scheme %s unavailable", name)
	}
	return newModeScheme(sch, name)
}
