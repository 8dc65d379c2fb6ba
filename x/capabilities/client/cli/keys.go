package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pqcprov/x/capabilities/keys"
)

// NewKeysCmd lists the key pairs persisted by signature runs.
func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List signature keys persisted in a keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := keys.OpenFromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("--%s is required", keys.FlagKeystore)
			}

			records := store.ListKeys()
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No keys stored.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ALGORITHM\tFINGERPRINT\tSIGNATURE\tCREATED")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%d bytes\t%s\n",
					rec.Algorithm, keys.Fingerprint(rec.PublicKey), len(rec.Signature), rec.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}

	keys.AddFlags(cmd.Flags())
	return cmd
}
