package cli

import (
	"strings"

	"cosmossdk.io/log"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pqcprov/x/capabilities/types"
)

const (
	FlagLogLevel   = "log-level"
	FlagAlgorithms = "algorithms"
	FlagNoColor    = "no-color"
	FlagConfig     = "config"
	FlagFormat     = "format"

	FormatText = "text"
	FormatJSON = "json"

	defaultLogLevel = "info"
)

// AddPersistentFlags registers the flags every command understands.
func AddPersistentFlags(fs *pflag.FlagSet) {
	fs.String(FlagLogLevel, "", "Log level (trace, debug, info, warn, error); overrides log_level from the config file")
	fs.String(FlagAlgorithms, "", "Comma separated algorithms to enable instead of the build default")
	fs.Bool(FlagNoColor, false, "Disable coloured pass/fail output")
}

// ApplyColor honours --no-color for the whole process.
func ApplyColor(cmd *cobra.Command) error {
	noColor, err := cmd.Flags().GetBool(FlagNoColor)
	if err != nil {
		return err
	}
	if noColor {
		color.NoColor = true
	}
	return nil
}

// newLogger writes to the command's stderr at the level from --log-level,
// then log_level in cfg, then info.
func newLogger(cmd *cobra.Command, cfg *viper.Viper) (log.Logger, error) {
	level, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return nil, err
	}
	if level == "" && cfg != nil {
		level = cast.ToString(cfg.Get("log_level"))
	}
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	return log.NewLogger(cmd.ErrOrStderr(),
		log.LevelOption(lvl),
		log.ColorOption(!color.NoColor),
	), nil
}

// enabledFromFlags returns the --algorithms set, or nil when unset.
func enabledFromFlags(cmd *cobra.Command) (types.EnabledSet, error) {
	list, err := cmd.Flags().GetString(FlagAlgorithms)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	return types.ParseEnabledSet(list)
}
