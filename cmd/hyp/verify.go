package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/hyperlane-go/sdk/verify"
)

func newVerifyCmd(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Work with block explorer contract verification",
	}
	cmd.AddCommand(newVerifyStatusCmd(cli))
	return cmd
}

func newVerifyStatusCmd(cli *cliContext) *cobra.Command {
	var (
		chainName string
		guid      string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Wait for the result of a verification submission",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := cli.chain(chainName)
			if err != nil {
				return err
			}

			client, err := verify.NewClient(entry.Metadata, verify.WithLogger(cli.logger))
			if err != nil {
				return err
			}
			if err := client.WaitForResult(cmd.Context(), guid); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: verification %s passed\n", chainName, guid)
			return nil
		},
	}
	cmd.Flags().StringVar(&chainName, "chain", "", "chain name in the registry")
	cmd.Flags().StringVar(&guid, "guid", "", "verification GUID returned by submit")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("guid")
	return cmd
}
