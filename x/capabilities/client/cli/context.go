package cli

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pqcprov/crypto/pqc/provider"
	"pqcprov/x/capabilities/types"
)

// openLib builds a library context from an optional config file and the
// command flags. With a config file the activate flags decide what loads;
// without one only the oqsprovider is loaded.
func openLib(cmd *cobra.Command, configPath string) (*provider.LibContext, log.Logger, error) {
	var cfg *viper.Viper
	if configPath != "" {
		v, err := provider.LoadConfig(configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = v
	}

	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []provider.Option{provider.WithLogger(logger)}
	set, err := enabledFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}
	if set != nil {
		opts = append(opts, provider.WithEnabled(set))
	}

	lib := provider.NewLibContext(opts...)
	if cfg != nil {
		if err := lib.ApplyConfig(cfg); err != nil {
			lib.Close()
			return nil, nil, err
		}
		logger.Debug("configuration loaded", "path", configPath, "providers", lib.Loaded())
		return lib, logger, nil
	}
	if _, err := lib.Load(provider.OQSName); err != nil {
		lib.Close()
		return nil, nil, err
	}
	return lib, logger, nil
}

// openModule loads configPath and requires module to be available in it.
func openModule(cmd *cobra.Command, module, configPath string) (*provider.LibContext, log.Logger, error) {
	lib, logger, err := openLib(cmd, configPath)
	if err != nil {
		return nil, nil, err
	}
	if !lib.Available(module) {
		lib.Close()
		return nil, nil, errorsmod.Wrapf(types.ErrProviderUnavailable, "%s is not activated in %s", module, configPath)
	}
	return lib, logger, nil
}
