package cli

import (
	"github.com/spf13/cobra"

	"pqcprov/x/capabilities/harness"
	"pqcprov/x/capabilities/keys"
)

// AttachCommands adds the capability and harness commands to root.
func AttachCommands(root *cobra.Command) {
	root.AddCommand(
		NewCapabilitiesCmd(),
		NewValidateCmd(),
		NewSignaturesCmd(),
		NewGroupsCmd(),
		NewKeysCmd(),
	)
}

// NewSignaturesCmd runs the signature round-trip harness.
func NewSignaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signatures <provider-module> <config-file>",
		Short: "Sign, verify and tamper-check every advertised signature algorithm",
		Args:  cobra.ExactArgs(2),
		RunE:  RunSignatures,
	}
	keys.AddFlags(cmd.Flags())
	return cmd
}

// RunSignatures is the RunE of the signatures command and of the bare
// oqstest invocation.
func RunSignatures(cmd *cobra.Command, args []string) error {
	lib, logger, err := openModule(cmd, args[0], args[1])
	if err != nil {
		return err
	}
	defer lib.Close()

	store, err := keys.OpenFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	var opts []harness.Option
	if store != nil {
		opts = append(opts, harness.WithKeyStore(store))
	}

	report, err := harness.RunSignatures(lib, logger, opts...)
	if err != nil {
		return err
	}
	printReport(cmd.ErrOrStderr(), "signatures", report)
	return report.Err()
}

// NewGroupsCmd runs the group KEM round-trip harness.
func NewGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups <provider-module> <config-file>",
		Short: "Encapsulate and decapsulate over every advertised TLS group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, logger, err := openModule(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			defer lib.Close()

			report, err := harness.RunGroups(lib, logger)
			if err != nil {
				return err
			}
			printReport(cmd.ErrOrStderr(), "groups", report)
			return report.Err()
		},
	}
}
