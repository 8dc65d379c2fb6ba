package provider

import (
	"pqcprov/x/capabilities/keeper"
)

// Names of the providers a library context can load.
const (
	DefaultName = "default"
	OQSName     = "oqsprovider"
)

// KnownProviders lists every loadable provider in load order.
func KnownProviders() []string {
	return []string{DefaultName, OQSName}
}

// Provider is a loaded algorithm provider.
type Provider interface {
	Name() string
}

// defaultProvider supplies the classical digests.
type defaultProvider struct{}

func (defaultProvider) Name() string { return DefaultName }

// OQSProvider advertises the post-quantum groups and signature algorithms
// through its capability keeper.
type OQSProvider struct {
	keeper *keeper.Keeper
}

func (*OQSProvider) Name() string { return OQSName }

func (p *OQSProvider) Keeper() *keeper.Keeper { return p.keeper }

// GetCapabilities is the provider's capability query entry point.
func (p *OQSProvider) GetCapabilities(kind string, visit keeper.Visitor, arg any) bool {
	return p.keeper.GetCapabilities(kind, visit, arg)
}
