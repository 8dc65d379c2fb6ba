package keeper

import (
	"iter"
	"strings"

	"pqcprov/app/metrics"
	"pqcprov/x/capabilities/types"
)

// Visitor receives one descriptor at a time together with the caller's
// argument. Returning false stops the enumeration.
type Visitor func(params types.Params, arg any) bool

// Groups yields the group descriptors in table order, resolved against the
// live records. The sequence can be ranged over any number of times.
func (k *Keeper) Groups() iter.Seq[types.Params] {
	return func(yield func(types.Params) bool) {
		for _, d := range k.groupDescs {
			rec := k.groupRecords[d.Index]
			// an operator may have patched a hybrid slot to 0
			if d.Variant != types.VariantPure && rec.ID(d.Variant) == 0 {
				continue
			}
			if !yield(d.Params(rec)) {
				return
			}
		}
	}
}

// SigAlgs yields the signature descriptors in table order.
func (k *Keeper) SigAlgs() iter.Seq[types.Params] {
	return func(yield func(types.Params) bool) {
		for _, d := range k.sigAlgDescs {
			if !yield(d.Params(k.sigRecords[d.Index])) {
				return
			}
		}
	}
}

// Capabilities selects the sequence for a capability kind. The second result
// is false for kinds this provider does not offer.
func (k *Keeper) Capabilities(kind string) (iter.Seq[types.Params], bool) {
	switch {
	case strings.EqualFold(kind, types.CapabilityTLSGroup):
		return k.Groups(), true
	case strings.EqualFold(kind, types.CapabilityTLSSigAlg):
		return k.SigAlgs(), true
	default:
		return nil, false
	}
}

// GetCapabilities feeds every descriptor of kind to visit. It returns false
// if visit rejected a descriptor or if the kind is not supported; the latter
// means "nothing offered", not a fault.
func (k *Keeper) GetCapabilities(kind string, visit Visitor, arg any) bool {
	seq, ok := k.Capabilities(kind)
	if !ok {
		return false
	}
	metrics.EnumerationsCounter().WithLabelValues(strings.ToUpper(kind)).Inc()

	for params := range seq {
		if !visit(params, arg) {
			return false
		}
	}
	return true
}
