package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// ismReader adapts a Provider to the security module read surface.
type ismReader Provider

func (r *ismReader) provider() *Provider { return (*Provider)(r) }

func (r *ismReader) ModuleType(ctx context.Context, addr types.Address) (types.ModuleType, error) {
	out, err := r.provider().call(ctx, addr, ismABI, "moduleType")
	if err != nil {
		return types.ModuleTypeUnused, err
	}
	return types.ModuleType(out[0].(uint8)), nil
}

func (r *ismReader) ReadMultisig(ctx context.Context, addr types.Address) ([]types.Address, uint8, error) {
	// Static multisig ISMs return the same set for every message, so an
	// empty message body is enough.
	out, err := r.provider().call(ctx, addr, ismABI, "validatorsAndThreshold", []byte{})
	if err != nil {
		return nil, 0, err
	}
	return fromEVMAddresses(out[0].([]common.Address)), out[1].(uint8), nil
}

func (r *ismReader) ReadRouting(ctx context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, error) {
	p := r.provider()

	out, err := p.call(ctx, addr, ismABI, "owner")
	if err != nil {
		return types.Address{}, nil, err
	}
	owner := types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, ismABI, "domains")
	if err != nil {
		return types.Address{}, nil, err
	}
	domains := out[0].([]uint32)

	routes := make(map[types.Domain]types.Address, len(domains))
	for _, domain := range domains {
		out, err := p.call(ctx, addr, ismABI, "module", domain)
		if err != nil {
			return types.Address{}, nil, fmt.Errorf("route for domain %d: %w", domain, err)
		}
		routes[types.Domain(domain)] = types.AddressFromEVM(out[0].(common.Address))
	}
	return owner, routes, nil
}

func (r *ismReader) ReadAggregation(ctx context.Context, addr types.Address) ([]types.Address, uint8, error) {
	out, err := r.provider().call(ctx, addr, ismABI, "modulesAndThreshold", []byte{})
	if err != nil {
		return nil, 0, err
	}
	return fromEVMAddresses(out[0].([]common.Address)), out[1].(uint8), nil
}

// ReadNull distinguishes the null module variants by probing their views:
// a trusted relayer module exposes trustedRelayer(), a pausable module
// exposes paused(). Anything else is a test module.
func (r *ismReader) ReadNull(ctx context.Context, addr types.Address) (ism.Config, error) {
	p := r.provider()

	if out, err := p.call(ctx, addr, ismABI, "trustedRelayer"); err == nil {
		relayer := types.AddressFromEVM(out[0].(common.Address))
		if !types.IsZeroAddress(relayer) {
			return &ism.TrustedRelayerConfig{Type: ism.TypeTrustedRelayer, Relayer: relayer.String()}, nil
		}
	}

	if out, err := p.call(ctx, addr, ismABI, "paused"); err == nil {
		cfg := &ism.PausableConfig{Type: ism.TypePausable, Paused: out[0].(bool)}
		if out, err := p.call(ctx, addr, ismABI, "owner"); err == nil {
			cfg.Owner = types.AddressFromEVM(out[0].(common.Address)).String()
		}
		return cfg, nil
	}

	return &ism.TestConfig{Type: ism.TypeTest}, nil
}

func fromEVMAddresses(addrs []common.Address) []types.Address {
	out := make([]types.Address, len(addrs))
	for i, a := range addrs {
		out[i] = types.AddressFromEVM(a)
	}
	return out
}
