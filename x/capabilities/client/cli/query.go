package cli

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"pqcprov/crypto/pqc/provider"
	"pqcprov/x/capabilities/keeper"
	"pqcprov/x/capabilities/types"
)

// NewCapabilitiesCmd lists the capability descriptors the oqsprovider
// advertises.
func NewCapabilitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capabilities [TLS-GROUP|TLS-SIGALG]",
		Short: "List advertised TLS groups and signature algorithms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmd.Flags().GetString(FlagFormat)
			if err != nil {
				return err
			}
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("--%s must be %s or %s", FlagFormat, FormatText, FormatJSON)
			}

			kinds := []string{types.CapabilityTLSGroup, types.CapabilityTLSSigAlg}
			if len(args) == 1 {
				kind := strings.ToUpper(args[0])
				if kind != types.CapabilityTLSGroup && kind != types.CapabilityTLSSigAlg {
					return errorsmod.Wrapf(types.ErrUnknownCapability, "%q", args[0])
				}
				kinds = []string{kind}
			}

			k, lib, err := oqsKeeper(cmd)
			if err != nil {
				return err
			}
			defer lib.Close()

			listed := make(map[string][]types.Params, len(kinds))
			for _, kind := range kinds {
				k.GetCapabilities(kind, func(params types.Params, arg any) bool {
					listed[arg.(string)] = append(listed[arg.(string)], params)
					return true
				}, kind)
			}

			if format == FormatJSON {
				return printJSON(cmd, kinds, listed)
			}
			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				fmt.Fprintf(out, "# %s (%d)\n", kind, len(listed[kind]))
				for _, params := range listed[kind] {
					fmt.Fprintln(out, params.Format())
				}
			}
			return nil
		},
	}

	cmd.Flags().String(FlagConfig, "", "Provider config file supplying codepoint overrides and the algorithm list")
	cmd.Flags().String(FlagFormat, FormatText, "Output format (text|json)")
	return cmd
}

func printJSON(cmd *cobra.Command, kinds []string, listed map[string][]types.Params) error {
	root := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(kinds))}
	for _, kind := range kinds {
		values := make([]*structpb.Value, 0, len(listed[kind]))
		for _, params := range listed[kind] {
			s, err := params.ToStruct()
			if err != nil {
				return err
			}
			values = append(values, structpb.NewStructValue(s))
		}
		root.Fields[kind] = structpb.NewListValue(&structpb.ListValue{Values: values})
	}

	bz, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(root)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

// NewValidateCmd checks descriptor counts and codepoint uniqueness after
// overrides are applied.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check capability tables for count mismatches and duplicate codepoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, lib, err := oqsKeeper(cmd)
			if err != nil {
				return err
			}
			defer lib.Close()
			if err := k.Validate(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "capability tables consistent: %d groups, %d sigalgs, enabled %s\n",
				len(k.GroupDescriptors()), len(k.SigAlgDescriptors()), k.Enabled())
			return nil
		},
	}

	cmd.Flags().String(FlagConfig, "", "Provider config file supplying codepoint overrides and the algorithm list")
	return cmd
}

// oqsKeeper opens the library context for cmd and returns the oqsprovider
// keeper. Callers close the returned context when done.
func oqsKeeper(cmd *cobra.Command) (*keeper.Keeper, *provider.LibContext, error) {
	path, err := cmd.Flags().GetString(FlagConfig)
	if err != nil {
		return nil, nil, err
	}
	lib, _, err := openLib(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	oqs, err := lib.OQS()
	if err != nil {
		lib.Close()
		return nil, nil, err
	}
	return oqs.Keeper(), lib, nil
}
