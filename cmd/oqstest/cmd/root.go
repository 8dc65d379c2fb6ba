package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pqcprov/x/capabilities/client/cli"
	"pqcprov/x/capabilities/keys"
)

// EnvPrefix lets every flag be set from the environment, e.g.
// OQSTEST_LOG_LEVEL=debug.
const EnvPrefix = "OQSTEST"

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "oqstest <provider-module> <config-file>",
		Short: "Self-test for the post-quantum provider",
		Long: `Loads the providers activated in <config-file>, checks that <provider-module>
is available and round-trips every advertised signature algorithm with and
without an explicit digest. Exits non-zero if any algorithm fails.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			if err := bindEnv(cmd); err != nil {
				return err
			}
			return cli.ApplyColor(cmd)
		},
		RunE: cli.RunSignatures,
	}

	cli.AddPersistentFlags(rootCmd.PersistentFlags())
	keys.AddFlags(rootCmd.Flags())
	cli.AttachCommands(rootCmd)
	return rootCmd
}

// bindEnv copies OQSTEST_* environment values into flags the user did not
// set on the command line.
func bindEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		setErr = cmd.Flags().Set(f.Name, v.GetString(f.Name))
	})
	return setErr
}
