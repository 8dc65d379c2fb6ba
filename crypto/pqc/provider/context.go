package provider

import (
	"iter"
	"slices"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/spf13/viper"

	"pqcprov/crypto/pqc/composite"
	"pqcprov/crypto/pqc/digest"
	"pqcprov/crypto/pqc/kem"
	"pqcprov/x/capabilities/keeper"
	"pqcprov/x/capabilities/types"
)

// LibContext is an isolated set of loaded providers together with the
// configuration they were loaded from.
type LibContext struct {
	logger  log.Logger
	env     keeper.EnvSource
	enabled types.EnabledSet

	mu        sync.RWMutex
	cfg       *viper.Viper
	providers map[string]Provider
}

type Option func(*LibContext)

func WithLogger(logger log.Logger) Option {
	return func(c *LibContext) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEnv overrides the codepoint source handed to the oqsprovider keeper.
// Without it the process environment is layered over the config file.
func WithEnv(env keeper.EnvSource) Option {
	return func(c *LibContext) {
		c.env = env
	}
}

// WithEnabled overrides both the build default and the config file's
// algorithm list.
func WithEnabled(set types.EnabledSet) Option {
	return func(c *LibContext) {
		c.enabled = set
	}
}

func NewLibContext(opts ...Option) *LibContext {
	c := &LibContext{
		logger:    log.NewNopLogger(),
		providers: make(map[string]Provider),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "provider")
	return c
}

// LoadConfigFile reads path and applies it with ApplyConfig.
func (c *LibContext) LoadConfigFile(path string) error {
	v, err := LoadConfig(path)
	if err != nil {
		return err
	}
	if err := c.ApplyConfig(v); err != nil {
		return err
	}
	c.logger.Info("configuration loaded", "path", path, "providers", c.Loaded())
	return nil
}

// ApplyConfig records v as the context configuration and loads every
// provider whose activate flag is set, in KnownProviders order.
func (c *LibContext) ApplyConfig(v *viper.Viper) error {
	c.mu.Lock()
	c.cfg = v
	c.mu.Unlock()

	for _, name := range KnownProviders() {
		if !activated(v, name) {
			continue
		}
		if _, err := c.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// Load activates a provider by name. Loading an already loaded provider
// returns the existing instance.
func (c *LibContext) Load(name string) (Provider, error) {
	if !slices.Contains(KnownProviders(), name) {
		return nil, errorsmod.Wrapf(types.ErrUnknownProvider, "%q", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.providers[name]; ok {
		return p, nil
	}

	var p Provider
	switch name {
	case DefaultName:
		p = defaultProvider{}
	case OQSName:
		oqs, err := c.newOQSProvider()
		if err != nil {
			return nil, err
		}
		p = oqs
	}
	c.providers[name] = p
	c.logger.Debug("provider loaded", "name", name)
	return p, nil
}

func (c *LibContext) newOQSProvider() (*OQSProvider, error) {
	enabled := c.enabled
	if enabled == nil && c.cfg != nil {
		set, err := configuredAlgorithms(c.cfg)
		if err != nil {
			return nil, err
		}
		enabled = set
	}
	if enabled == nil {
		enabled = types.DefaultEnabled()
	}

	env := c.env
	if env == nil {
		env = keeper.ViperEnv{V: c.cfg}
	}

	k := keeper.NewKeeper(c.logger, keeper.WithEnabled(enabled), keeper.WithEnv(env))
	return &OQSProvider{keeper: k}, nil
}

// Available reports whether the named provider is loaded.
func (c *LibContext) Available(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.providers[name]
	return ok
}

// Loaded lists the loaded providers in KnownProviders order.
func (c *LibContext) Loaded() []string {
	var out []string
	for _, name := range KnownProviders() {
		if c.Available(name) {
			out = append(out, name)
		}
	}
	return out
}

// Config returns the configuration the context was loaded from, if any.
func (c *LibContext) Config() *viper.Viper {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// OQS returns the loaded oqsprovider.
func (c *LibContext) OQS() (*OQSProvider, error) {
	c.mu.RLock()
	p, ok := c.providers[OQSName]
	c.mu.RUnlock()
	if !ok {
		return nil, errorsmod.Wrap(types.ErrProviderUnavailable, OQSName)
	}
	return p.(*OQSProvider), nil
}

// SignatureAlgorithm fetches a signature algorithm the oqsprovider
// advertises.
func (c *LibContext) SignatureAlgorithm(name string) (composite.Scheme, error) {
	oqs, err := c.OQS()
	if err != nil {
		return nil, err
	}
	if !advertised(oqs.keeper.SigAlgs(), name) {
		return nil, errorsmod.Wrapf(types.ErrAlgorithmDisabled, "sigalg %s", name)
	}
	sch, err := composite.ByName(name)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrNotImplemented, "%v", err)
	}
	return sch, nil
}

// KEM fetches a key exchange group the oqsprovider advertises.
func (c *LibContext) KEM(name string) (kem.Scheme, error) {
	oqs, err := c.OQS()
	if err != nil {
		return nil, err
	}
	if !advertised(oqs.keeper.Groups(), name) {
		return nil, errorsmod.Wrapf(types.ErrAlgorithmDisabled, "group %s", name)
	}
	sch, err := kem.ByName(name)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrNotImplemented, "%v", err)
	}
	return sch, nil
}

// Digest fetches a message digest from the default provider.
func (c *LibContext) Digest(name string) (digest.Digest, error) {
	if !c.Available(DefaultName) {
		return digest.Digest{}, errorsmod.Wrap(types.ErrProviderUnavailable, DefaultName)
	}
	d, err := digest.ByName(name)
	if err != nil {
		return digest.Digest{}, errorsmod.Wrapf(types.ErrNotImplemented, "%v", err)
	}
	return d, nil
}

// Close unloads every provider.
func (c *LibContext) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name := range c.providers {
		delete(c.providers, name)
	}
	c.logger.Debug("providers unloaded")
}

func advertised(seq iter.Seq[types.Params], name string) bool {
	for params := range seq {
		if params.Name() == name {
			return true
		}
	}
	return false
}
