package provider

import (
	"slices"
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"pqcprov/x/capabilities/types"
)

// LoadConfig reads a provider configuration file. The format follows the
// file extension (toml, yaml, json). Sections under "providers" must name
// known providers.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "read %s: %v", path, err)
	}

	sections := v.GetStringMap("providers")
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !slices.Contains(KnownProviders(), name) {
			return nil, errorsmod.Wrapf(types.ErrUnknownProvider, "%s in %s", name, path)
		}
	}
	return v, nil
}

// activated reports whether providers.<name>.activate is truthy. Values such
// as "1", "true" and 1 are all accepted.
func activated(v *viper.Viper, name string) bool {
	return cast.ToBool(v.Get("providers." + name + ".activate"))
}

// configuredAlgorithms returns the providers.oqsprovider.algorithms list, or
// nil when the key is absent.
func configuredAlgorithms(v *viper.Viper) (types.EnabledSet, error) {
	key := "providers." + OQSName + ".algorithms"
	if !v.IsSet(key) {
		return nil, nil
	}
	list := strings.Join(cast.ToStringSlice(v.Get(key)), ",")
	set, err := types.ParseEnabledSet(list)
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrInvalidConfig, "%s: %v", key, err)
	}
	return set, nil
}
