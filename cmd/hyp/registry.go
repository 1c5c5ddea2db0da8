package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/hyperlane-go/sdk/registry"
)

func newRegistryCmd(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Work with a local chain registry",
	}
	cmd.AddCommand(newRegistryListCmd(cli))
	return cmd
}

func newRegistryListCmd(cli *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chains in the registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := cli.loadRegistry()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDOMAIN\tPROTOCOL\tMAILBOX")
			for _, name := range reg.ChainNames() {
				entry, err := reg.Chain(name)
				if err != nil {
					return err
				}
				mailbox := entry.Addresses[registry.KeyMailbox]
				if mailbox == "" {
					mailbox = "-"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					name, entry.Metadata.DomainID, entry.Metadata.Protocol, mailbox)
			}
			return w.Flush()
		},
	}
}
