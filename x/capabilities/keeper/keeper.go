package keeper

import (
	"cosmossdk.io/log"

	"pqcprov/x/capabilities/types"
)

// Keeper owns the metadata records of every enabled algorithm and the
// descriptor tables built over them. After NewKeeper returns (and the single
// codepoint patch has run) it is read-only and safe for concurrent readers.
type Keeper struct {
	logger  log.Logger
	enabled types.EnabledSet

	groupAlgs    []types.GroupAlgorithm
	groupRecords []types.GroupRecord
	sigAlgs      []types.SigAlgComposite
	sigRecords   []types.SigAlgRecord

	groupDescs  []types.GroupDescriptor
	sigAlgDescs []types.SigAlgDescriptor

	patched bool
}

type options struct {
	enabled   types.EnabledSet
	env       EnvSource
	skipPatch bool
}

type Option func(*options)

// WithEnabled replaces the build-time enablement set.
func WithEnabled(set types.EnabledSet) Option {
	return func(o *options) {
		o.enabled = set
	}
}

// WithEnv sets the source consulted by the codepoint patch.
func WithEnv(env EnvSource) Option {
	return func(o *options) {
		if env != nil {
			o.env = env
		}
	}
}

// WithDeferredPatch leaves the codepoint patch to the caller, who must run
// PatchCodepoints before the first enumeration.
func WithDeferredPatch() Option {
	return func(o *options) {
		o.skipPatch = true
	}
}

// NewKeeper builds the record store for the enabled algorithms, builds both
// descriptor tables and applies codepoint overrides from the environment.
// It panics if the descriptor tables are inconsistent with the records.
func NewKeeper(logger log.Logger, opts ...Option) *Keeper {
	o := options{
		enabled: types.DefaultEnabled(),
		env:     OSEnv{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	k := &Keeper{
		logger:  logger.With("module", "x/"+types.ModuleName),
		enabled: o.enabled,
	}
	k.loadRecords()
	k.buildDescriptors()

	if !o.skipPatch {
		if err := k.PatchCodepoints(o.env); err != nil {
			panic(err)
		}
	}

	k.logger.Debug("capability tables ready",
		"enabled", k.enabled.String(),
		"groups", len(k.groupDescs),
		"sigalgs", len(k.sigAlgDescs),
	)
	return k
}

func (k *Keeper) loadRecords() {
	for _, g := range types.GroupTable() {
		if !k.enabled.Has(g.Algorithm) {
			continue
		}
		k.groupAlgs = append(k.groupAlgs, g)
		k.groupRecords = append(k.groupRecords, g.Defaults)
	}
	for _, s := range types.SigAlgTable() {
		if !k.enabled.Has(s.Algorithm) {
			continue
		}
		k.sigAlgs = append(k.sigAlgs, s)
		k.sigRecords = append(k.sigRecords, s.Defaults)
	}
}

func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Enabled returns the enablement set the keeper was built with.
func (k *Keeper) Enabled() types.EnabledSet {
	return k.enabled
}

// GroupRecord returns the live record behind a group descriptor.
func (k *Keeper) GroupRecord(d types.GroupDescriptor) types.GroupRecord {
	return k.groupRecords[d.Index]
}

// SigAlgRecord returns the live record behind a sigalg descriptor.
func (k *Keeper) SigAlgRecord(d types.SigAlgDescriptor) types.SigAlgRecord {
	return k.sigRecords[d.Index]
}

// GroupDescriptors returns a copy of the group descriptor table.
func (k *Keeper) GroupDescriptors() []types.GroupDescriptor {
	return append([]types.GroupDescriptor(nil), k.groupDescs...)
}

// SigAlgDescriptors returns a copy of the sigalg descriptor table.
func (k *Keeper) SigAlgDescriptors() []types.SigAlgDescriptor {
	return append([]types.SigAlgDescriptor(nil), k.sigAlgDescs...)
}
