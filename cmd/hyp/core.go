package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/celestiaorg/hyperlane-go/sdk/core"
	"github.com/celestiaorg/hyperlane-go/sdk/registry"
)

func newCoreCmd(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Check deployed core contracts against a config",
	}
	cmd.AddCommand(newCoreCheckCmd(cli))
	return cmd
}

func newCoreCheckCmd(cli *cliContext) *cobra.Command {
	var (
		chainName string
		file      string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Diff a chain's mailbox state against a core config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := cli.chain(chainName)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var expected core.Config
			if err := yaml.Unmarshal(raw, &expected); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			mailbox, err := entry.Addresses.Address(registry.KeyMailbox)
			if err != nil {
				return fmt.Errorf("chain %s: %w", chainName, err)
			}

			reader, err := cli.coreReaderFor(cmd.Context(), entry.Metadata)
			if err != nil {
				return err
			}

			violations, err := core.NewChecker(reader).Check(cmd.Context(), mailbox, expected)
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: no violations\n", chainName)
				return nil
			}

			for _, v := range violations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n  expected: %s\n  actual:   %s\n",
					chainName, v.Type, v.Expected, v.Actual)
			}
			return fmt.Errorf("%s: %d violation(s)", chainName, len(violations))
		},
	}
	cmd.Flags().StringVar(&chainName, "chain", "", "chain name in the registry")
	cmd.Flags().StringVarP(&file, "file", "f", "", "core config file (yaml)")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
