package keeper

import (
	"fmt"

	"pqcprov/x/capabilities/types"
)

// PatchCodepoints overwrites compiled-in identifiers with values from env.
// For every identifier slot of every enabled algorithm it looks up
// OQS_CODEPOINT_<NAME>; presence is the only guard and the value is parsed
// as a decimal integer. No collision detection is done here, see
// ValidateCodepoints.
//
// It must complete before the first enumeration and may run only once per
// keeper.
func (k *Keeper) PatchCodepoints(env EnvSource) error {
	if k.patched {
		return types.ErrAlreadyPatched
	}
	k.patched = true

	applied := 0
	for i, g := range k.groupAlgs {
		rec := &k.groupRecords[i]
		for _, v := range g.Variants() {
			if k.patchSlot(env, g.VariantName(v), rec.Slot(v)) {
				applied++
			}
		}
	}
	for i, s := range k.sigAlgs {
		if k.patchSlot(env, s.Name, &k.sigRecords[i].CodePoint) {
			applied++
		}
	}

	if applied > 0 {
		k.logger.Info("codepoint overrides applied", "count", applied)
	}
	return nil
}

func (k *Keeper) patchSlot(env EnvSource, name string, slot *uint32) bool {
	key := types.CodepointEnvVar(name)
	raw, ok := env.LookupEnv(key)
	if !ok {
		return false
	}
	prev := *slot
	*slot = atoi(raw)
	k.logger.Info("codepoint override",
		"name", name,
		"env", key,
		"from", fmt.Sprintf("0x%04x", prev),
		"to", fmt.Sprintf("0x%04x", *slot),
	)
	return true
}

// Patched reports whether the codepoint patch has run.
func (k *Keeper) Patched() bool {
	return k.patched
}
