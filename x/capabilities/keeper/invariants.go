package keeper

import (
	"fmt"
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"pqcprov/x/capabilities/types"
)

// ValidateCodepoints checks that every live group id, hybrid id and sigalg
// code point is distinct. The patch engine does not detect collisions, so
// operators relocating codepoints should run this after patching.
func (k *Keeper) ValidateCodepoints() error {
	owners := make(map[uint32][]string)
	for params := range k.Groups() {
		id := params.Uint(types.ParamGroupID)
		owners[id] = append(owners[id], params.Name())
	}
	for params := range k.SigAlgs() {
		cp := params.Uint(types.ParamSigAlgCodePoint)
		owners[cp] = append(owners[cp], params.Name())
	}

	var dups []string
	for id, names := range owners {
		if len(names) > 1 {
			dups = append(dups, fmt.Sprintf("0x%04x: %s", id, strings.Join(names, ",")))
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	return errorsmod.Wrap(types.ErrDuplicateCodepoint, strings.Join(dups, "; "))
}

// Validate runs every consistency check the keeper knows about.
func (k *Keeper) Validate() error {
	if err := checkDescriptorCounts(k.groupAlgs, k.groupDescs, k.sigAlgs, k.sigAlgDescs); err != nil {
		return err
	}
	return k.ValidateCodepoints()
}
