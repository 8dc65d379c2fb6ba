package types

import (
	"fmt"
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// EnabledSet is the set of algorithms compiled into the provider. Disabled
// algorithms have no records and no descriptors.
type EnabledSet map[Algorithm]struct{}

// NewEnabledSet builds a set from the given flags.
func NewEnabledSet(algs ...Algorithm) EnabledSet {
	set := make(EnabledSet, len(algs))
	for _, alg := range algs {
		set[alg] = struct{}{}
	}
	return set
}

// DefaultEnabled returns the set selected at build time.
func DefaultEnabled() EnabledSet {
	return NewEnabledSet(defaultEnabledAlgorithms...)
}

// FullEnabled enables every compiled-in algorithm.
func FullEnabled() EnabledSet {
	return NewEnabledSet(AllAlgorithms()...)
}

// ParseEnabledSet parses a comma separated list of algorithm names.
func ParseEnabledSet(list string) (EnabledSet, error) {
	set := make(EnabledSet)
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		alg := Algorithm(name)
		if !IsKnown(alg) {
			return nil, errorsmod.Wrapf(ErrUnknownAlgorithm, "%q", name)
		}
		set[alg] = struct{}{}
	}
	return set, nil
}

func (s EnabledSet) Has(alg Algorithm) bool {
	_, ok := s[alg]
	return ok
}

// Sorted returns the flags in table declaration order.
func (s EnabledSet) Sorted() []Algorithm {
	order := make(map[Algorithm]int)
	for i, alg := range AllAlgorithms() {
		order[alg] = i
	}
	out := make([]Algorithm, 0, len(s))
	for alg := range s {
		out = append(out, alg)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

func (s EnabledSet) String() string {
	names := make([]string, 0, len(s))
	for _, alg := range s.Sorted() {
		names = append(names, string(alg))
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ","))
}
