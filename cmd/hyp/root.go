package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/registry"
)

// Config is the TOML file loaded by every command.
type Config struct {
	Registry string                   `toml:"registry"`
	Chains   map[string]ChainOverride `toml:"chains"`
}

// ChainOverride replaces registry endpoints for one chain.
type ChainOverride struct {
	RPC    string `toml:"rpc"`
	GRPC   string `toml:"grpc"`
	APIKey string `toml:"api_key"`
}

type cliContext struct {
	configPath string
	verbose    bool

	config Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	cli := &cliContext{}

	root := &cobra.Command{
		Use:           "hyp",
		Short:         "Inspect and check hyperlane deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return cli.setup()
		},
	}
	root.PersistentFlags().StringVar(&cli.configPath, "config", "hyp.toml", "path to the TOML config file")
	root.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRegistryCmd(cli),
		newISMCmd(cli),
		newCoreCmd(cli),
		newVerifyCmd(cli),
	)
	return root
}

func (c *cliContext) setup() error {
	c.config = Config{Registry: "."}
	if _, err := os.Stat(c.configPath); err == nil {
		if _, err := toml.DecodeFile(c.configPath, &c.config); err != nil {
			return fmt.Errorf("load config %s: %w", c.configPath, err)
		}
	}

	logCfg := zap.NewProductionConfig()
	if c.verbose {
		logCfg = zap.NewDevelopmentConfig()
	}
	logger, err := logCfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	c.logger = logger
	return nil
}

// loadRegistry reads the registry directory from the config, applying any
// per-chain endpoint overrides.
func (c *cliContext) loadRegistry() (*registry.Registry, error) {
	reg, err := registry.Load(c.config.Registry)
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", c.config.Registry, err)
	}

	for name, override := range c.config.Chains {
		entry, ok := reg.Chains[name]
		if !ok {
			continue
		}
		if override.RPC != "" {
			entry.Metadata.RpcURLs = append(
				[]chains.Endpoint{{HTTP: override.RPC}},
				entry.Metadata.RpcURLs...,
			)
		}
		if override.GRPC != "" {
			entry.Metadata.GrpcURLs = append(
				[]chains.Endpoint{{HTTP: override.GRPC}},
				entry.Metadata.GrpcURLs...,
			)
		}
	}
	return reg, nil
}

func (c *cliContext) chain(name string) (*registry.Entry, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Chain(name)
}
