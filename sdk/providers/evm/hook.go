package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// hookReader adapts a Provider to the post-dispatch hook read surface.
type hookReader Provider

func (r *hookReader) provider() *Provider { return (*Provider)(r) }

func (r *hookReader) HookKind(ctx context.Context, addr types.Address) (types.HookKind, error) {
	out, err := r.provider().call(ctx, addr, hookABI, "hookType")
	if err != nil {
		return types.HookKindUnused, err
	}
	return types.HookKind(out[0].(uint8)), nil
}

// ReadIGP probes the configured destination domains since the paymaster
// does not enumerate them on-chain. Domains without a gas oracle are
// skipped.
func (r *hookReader) ReadIGP(ctx context.Context, addr types.Address) (hook.IGPState, error) {
	p := r.provider()
	state := hook.IGPState{
		Overhead: make(map[types.Domain]uint64),
		Oracles:  make(map[types.Domain]hook.OracleConfig),
	}

	out, err := p.call(ctx, addr, hookABI, "owner")
	if err != nil {
		return state, err
	}
	state.Owner = types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, hookABI, "beneficiary")
	if err != nil {
		return state, err
	}
	state.Beneficiary = types.AddressFromEVM(out[0].(common.Address))

	for _, domain := range p.igpDomains {
		out, err := p.call(ctx, addr, hookABI, "destinationGasConfigs", uint32(domain))
		if err != nil {
			return state, fmt.Errorf("gas config for domain %d: %w", domain, err)
		}
		oracle := out[0].(common.Address)
		if oracle == (common.Address{}) {
			continue
		}
		state.Overhead[domain] = out[1].(*big.Int).Uint64()

		out, err = p.call(ctx, types.AddressFromEVM(oracle), hookABI, "getExchangeRateAndGasPrice", uint32(domain))
		if err != nil {
			return state, fmt.Errorf("oracle data for domain %d: %w", domain, err)
		}
		state.Oracles[domain] = hook.OracleConfig{
			TokenExchangeRate: out[0].(*big.Int).String(),
			GasPrice:          out[1].(*big.Int).String(),
		}
	}
	return state, nil
}

func (r *hookReader) ReadProtocolFee(ctx context.Context, addr types.Address) (hook.ProtocolFeeState, error) {
	p := r.provider()
	var state hook.ProtocolFeeState

	out, err := p.call(ctx, addr, hookABI, "owner")
	if err != nil {
		return state, err
	}
	state.Owner = types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, hookABI, "beneficiary")
	if err != nil {
		return state, err
	}
	state.Beneficiary = types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, hookABI, "protocolFee")
	if err != nil {
		return state, err
	}
	state.ProtocolFee = out[0].(*big.Int).String()

	out, err = p.call(ctx, addr, hookABI, "MAX_PROTOCOL_FEE")
	if err != nil {
		return state, err
	}
	state.MaxProtocolFee = out[0].(*big.Int).String()

	return state, nil
}

func (r *hookReader) ReadAggregation(ctx context.Context, addr types.Address) ([]types.Address, error) {
	out, err := r.provider().call(ctx, addr, hookABI, "hooks", []byte{})
	if err != nil {
		return nil, err
	}
	return fromEVMAddresses(out[0].([]common.Address)), nil
}

func (r *hookReader) ReadRouting(ctx context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, *types.Address, error) {
	p := r.provider()

	out, err := p.call(ctx, addr, hookABI, "owner")
	if err != nil {
		return types.Address{}, nil, nil, err
	}
	owner := types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, hookABI, "domains")
	if err != nil {
		return types.Address{}, nil, nil, err
	}
	domains := out[0].([]uint32)

	routes := make(map[types.Domain]types.Address, len(domains))
	for _, domain := range domains {
		out, err := p.call(ctx, addr, hookABI, "hookForDomain", domain)
		if err != nil {
			return types.Address{}, nil, nil, fmt.Errorf("hook for domain %d: %w", domain, err)
		}
		routes[types.Domain(domain)] = types.AddressFromEVM(out[0].(common.Address))
	}

	// Only the fallback routing variant exposes fallbackHook().
	var fallback *types.Address
	if out, err := p.call(ctx, addr, hookABI, "fallbackHook"); err == nil {
		fb := types.AddressFromEVM(out[0].(common.Address))
		if !types.IsZeroAddress(fb) {
			fallback = &fb
		}
	}
	return owner, routes, fallback, nil
}

func (r *hookReader) ReadPausable(ctx context.Context, addr types.Address) (types.Address, bool, error) {
	p := r.provider()

	out, err := p.call(ctx, addr, hookABI, "owner")
	if err != nil {
		return types.Address{}, false, err
	}
	owner := types.AddressFromEVM(out[0].(common.Address))

	out, err = p.call(ctx, addr, hookABI, "paused")
	if err != nil {
		return types.Address{}, false, err
	}
	return owner, out[0].(bool), nil
}
