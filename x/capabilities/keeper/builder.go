package keeper

import (
	errorsmod "cosmossdk.io/errors"

	"pqcprov/x/capabilities/types"
)

func (k *Keeper) buildDescriptors() {
	k.groupDescs = buildGroupDescriptors(k.groupAlgs)
	k.sigAlgDescs = buildSigAlgDescriptors(k.sigAlgs)

	if err := checkDescriptorCounts(k.groupAlgs, k.groupDescs, k.sigAlgs, k.sigAlgDescs); err != nil {
		panic(err)
	}
}

// buildGroupDescriptors emits, per algorithm and in table order, the pure
// variant followed by whichever hybrids the algorithm offers.
func buildGroupDescriptors(algs []types.GroupAlgorithm) []types.GroupDescriptor {
	out := make([]types.GroupDescriptor, 0, len(algs)*3)
	for idx, g := range algs {
		for _, v := range g.Variants() {
			name := g.VariantName(v)
			out = append(out, types.GroupDescriptor{
				Name:         name,
				InternalName: name,
				Algorithm:    name,
				Index:        idx,
				Variant:      v,
			})
		}
	}
	return out
}

func buildSigAlgDescriptors(composites []types.SigAlgComposite) []types.SigAlgDescriptor {
	out := make([]types.SigAlgDescriptor, 0, len(composites))
	for idx, s := range composites {
		out = append(out, types.SigAlgDescriptor{
			Name:         s.Name,
			InternalName: s.Name,
			Algorithm:    s.Name,
			HashAlg:      "",
			OID:          s.OID,
			Index:        idx,
		})
	}
	return out
}

// ExpectedGroupDescriptors derives the group descriptor count from the
// per-algorithm hybrid availability: one pure variant plus one descriptor
// per hybrid the algorithm offers.
func ExpectedGroupDescriptors(algs []types.GroupAlgorithm) int {
	n := 0
	for _, g := range algs {
		n++
		if g.HasECP() {
			n++
		}
		if g.HasECX() {
			n++
		}
	}
	return n
}

func checkDescriptorCounts(
	groupAlgs []types.GroupAlgorithm,
	groupDescs []types.GroupDescriptor,
	sigAlgs []types.SigAlgComposite,
	sigAlgDescs []types.SigAlgDescriptor,
) error {
	if want := ExpectedGroupDescriptors(groupAlgs); len(groupDescs) != want {
		return errorsmod.Wrapf(types.ErrDescriptorMismatch, "group descriptors %d != expected %d", len(groupDescs), want)
	}
	if len(sigAlgDescs) != len(sigAlgs) {
		return errorsmod.Wrapf(types.ErrDescriptorMismatch, "sigalg descriptors %d != records %d", len(sigAlgDescs), len(sigAlgs))
	}
	for _, d := range groupDescs {
		if d.Index < 0 || d.Index >= len(groupAlgs) {
			return errorsmod.Wrapf(types.ErrDescriptorMismatch, "group descriptor %s points outside the record store", d.Name)
		}
		if groupAlgs[d.Index].Defaults.ID(d.Variant) == 0 {
			return errorsmod.Wrapf(types.ErrAbsentHybridEmitted, "%s", d.Name)
		}
	}
	for _, d := range sigAlgDescs {
		if d.Index < 0 || d.Index >= len(sigAlgs) {
			return errorsmod.Wrapf(types.ErrDescriptorMismatch, "sigalg descriptor %s points outside the record store", d.Name)
		}
	}
	return nil
}
