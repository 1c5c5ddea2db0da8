package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

func newISMCmd(cli *cliContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ism",
		Short: "Validate and derive interchain security module configs",
	}
	cmd.AddCommand(newISMValidateCmd(), newISMDeriveCmd(cli))
	return cmd
}

func newISMValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an ISM config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			cfg, err := ism.ParseConfig(raw)
			if err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if err := ism.Validate(cfg); err != nil {
				return fmt.Errorf("validate %s: %w", file, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s config\n", file, cfg.ConfigType())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "ISM config file (yaml or json)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newISMDeriveCmd(cli *cliContext) *cobra.Command {
	var (
		chainName string
		address   string
		origin    uint32
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the config tree of a deployed ISM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := cli.chain(chainName)
			if err != nil {
				return err
			}
			addr, err := types.ParseAddress(address)
			if err != nil {
				return err
			}

			reader, err := cli.ismReaderFor(cmd.Context(), entry.Metadata, types.Domain(origin))
			if err != nil {
				return err
			}

			deriver := ism.NewDeriver(reader, ism.WithLogger(cli.logger))
			cfg, err := deriver.Derive(cmd.Context(), addr)
			if err != nil {
				return err
			}
			cli.logger.Debug("derived ism",
				zap.String("chain", chainName),
				zap.String("address", addr.String()),
			)

			out, err := yaml.Marshal(ism.Node{Config: cfg})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&chainName, "chain", "", "chain name in the registry")
	cmd.Flags().StringVar(&address, "address", "", "ISM address")
	cmd.Flags().Uint32Var(&origin, "origin", 0, "origin domain (sealevel chains only)")
	_ = cmd.MarkFlagRequired("chain")
	_ = cmd.MarkFlagRequired("address")
	return cmd
}
