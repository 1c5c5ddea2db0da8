// Package core deploys and checks a chain's core protocol contracts: the
// mailbox plus its default ISM and default/required hooks.
package core

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"go.uber.org/zap"
)

// Config is the desired core setup of one chain.
type Config struct {
	Owner        string    `yaml:"owner" json:"owner"`
	DefaultISM   ism.Node  `yaml:"defaultIsm" json:"defaultIsm"`
	DefaultHook  hook.Node `yaml:"defaultHook" json:"defaultHook"`
	RequiredHook hook.Node `yaml:"requiredHook" json:"requiredHook"`
}

// Validate checks the config offline: owner parses and every sub-config
// passes its own validation.
func (c Config) Validate() error {
	owner, err := types.ParseAddress(c.Owner)
	if err != nil {
		return fmt.Errorf("core config owner: %w", err)
	}
	if types.IsZeroAddress(owner) {
		return fmt.Errorf("core config owner: zero address")
	}
	if err := ism.Validate(c.DefaultISM.Config); err != nil {
		return fmt.Errorf("core config default ism: %w", err)
	}
	if err := hook.Validate(c.DefaultHook.Config); err != nil {
		return fmt.Errorf("core config default hook: %w", err)
	}
	if err := hook.Validate(c.RequiredHook.Config); err != nil {
		return fmt.Errorf("core config required hook: %w", err)
	}
	return nil
}

// MailboxState is the readable on-chain state of a mailbox.
type MailboxState struct {
	LocalDomain  types.Domain
	Owner        types.Address
	DefaultISM   types.Address
	DefaultHook  types.Address
	RequiredHook types.Address
}

// ChainDeployer is the per-protocol write surface for core deployments.
type ChainDeployer interface {
	DeployMailbox(ctx context.Context, domain types.Domain) (types.Address, error)
	DeployISM(ctx context.Context, cfg ism.Config) (types.Address, error)
	DeployHook(ctx context.Context, cfg hook.Config, mailbox types.Address) (types.Address, error)
	// SetDefaults wires the deployed modules into the mailbox and transfers
	// ownership to owner.
	SetDefaults(ctx context.Context, mailbox, defaultISM, defaultHook, requiredHook, owner types.Address) error
}

// Reader is the per-protocol read surface for core checks.
type Reader interface {
	Mailbox(ctx context.Context, addr types.Address) (MailboxState, error)
	ISMReader() ism.ModuleReader
	HookReader() hook.Reader
}

// Artifacts are the addresses produced by a core deployment.
type Artifacts struct {
	Mailbox      types.Address
	DefaultISM   types.Address
	DefaultHook  types.Address
	RequiredHook types.Address
}

// Deployer orchestrates a core deployment on one chain.
type Deployer struct {
	chain  ChainDeployer
	reader Reader
	logger *zap.Logger
}

func NewDeployer(chain ChainDeployer, reader Reader, logger *zap.Logger) *Deployer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deployer{chain: chain, reader: reader, logger: logger}
}

// Deploy deploys the core contracts for domain per cfg. Existing artifacts
// are reused when their derived config already matches; pass the zero value
// for a fresh deployment.
func (d *Deployer) Deploy(ctx context.Context, domain types.Domain, cfg Config, existing Artifacts) (Artifacts, error) {
	if err := cfg.Validate(); err != nil {
		return Artifacts{}, err
	}
	owner, err := types.ParseAddress(cfg.Owner)
	if err != nil {
		return Artifacts{}, fmt.Errorf("core config owner: %w", err)
	}

	out := existing

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"deploy mailbox", func(ctx context.Context) error {
			if !types.IsZeroAddress(out.Mailbox) {
				return nil
			}
			addr, err := d.chain.DeployMailbox(ctx, domain)
			if err != nil {
				return err
			}
			out.Mailbox = addr
			return nil
		}},
		{"deploy default ism", func(ctx context.Context) error {
			if d.ismSatisfied(ctx, out.DefaultISM, cfg.DefaultISM.Config) {
				return nil
			}
			addr, err := d.chain.DeployISM(ctx, cfg.DefaultISM.Config)
			if err != nil {
				return err
			}
			out.DefaultISM = addr
			return nil
		}},
		{"deploy default hook", func(ctx context.Context) error {
			if d.hookSatisfied(ctx, out.DefaultHook, cfg.DefaultHook.Config) {
				return nil
			}
			addr, err := d.chain.DeployHook(ctx, cfg.DefaultHook.Config, out.Mailbox)
			if err != nil {
				return err
			}
			out.DefaultHook = addr
			return nil
		}},
		{"deploy required hook", func(ctx context.Context) error {
			if d.hookSatisfied(ctx, out.RequiredHook, cfg.RequiredHook.Config) {
				return nil
			}
			addr, err := d.chain.DeployHook(ctx, cfg.RequiredHook.Config, out.Mailbox)
			if err != nil {
				return err
			}
			out.RequiredHook = addr
			return nil
		}},
		{"set mailbox defaults", func(ctx context.Context) error {
			return d.chain.SetDefaults(ctx, out.Mailbox, out.DefaultISM, out.DefaultHook, out.RequiredHook, owner)
		}},
	}

	for _, step := range steps {
		d.logger.Info("executing step", zap.String("step", step.name), zap.Uint32("domain", uint32(domain)))
		if err := step.fn(ctx); err != nil {
			return Artifacts{}, fmt.Errorf("failed at step %s: %w", step.name, err)
		}
	}

	return out, nil
}

// ismSatisfied reports whether the module at addr already derives to want.
func (d *Deployer) ismSatisfied(ctx context.Context, addr types.Address, want ism.Config) bool {
	if types.IsZeroAddress(addr) {
		return false
	}
	got, err := ism.NewDeriver(d.reader.ISMReader(), ism.WithLogger(d.logger)).Derive(ctx, addr)
	if err != nil {
		d.logger.Debug("existing ism unreadable, redeploying",
			zap.String("address", addr.String()), zap.Error(err))
		return false
	}
	return ism.Equal(got, want)
}

func (d *Deployer) hookSatisfied(ctx context.Context, addr types.Address, want hook.Config) bool {
	if types.IsZeroAddress(addr) {
		return false
	}
	got, err := hook.NewDeriver(d.reader.HookReader(), hook.WithLogger(d.logger)).Derive(ctx, addr)
	if err != nil {
		d.logger.Debug("existing hook unreadable, redeploying",
			zap.String("address", addr.String()), zap.Error(err))
		return false
	}
	return hook.Equal(got, want)
}
