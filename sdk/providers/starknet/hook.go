package starknet

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// hookReader adapts a Provider to the post-dispatch hook read surface. The
// starknet deployment only ships merkle tree and protocol fee hooks.
type hookReader Provider

func (r *hookReader) provider() *Provider { return (*Provider)(r) }

func (r *hookReader) HookKind(ctx context.Context, addr types.Address) (types.HookKind, error) {
	out, err := r.provider().call(ctx, addr, "hook_type")
	if err != nil {
		return types.HookKindUnused, err
	}
	variant, err := feltToUint64(out, 0)
	if err != nil {
		return types.HookKindUnused, fmt.Errorf("hook %s kind: %w", addr, err)
	}
	return types.HookKind(variant), nil
}

func (r *hookReader) ReadProtocolFee(ctx context.Context, addr types.Address) (hook.ProtocolFeeState, error) {
	p := r.provider()
	var state hook.ProtocolFeeState

	out, err := p.call(ctx, addr, "owner")
	if err != nil {
		return state, err
	}
	state.Owner, err = feltToAddress(out, 0)
	if err != nil {
		return state, fmt.Errorf("hook %s owner: %w", addr, err)
	}

	out, err = p.call(ctx, addr, "get_beneficiary")
	if err != nil {
		return state, err
	}
	state.Beneficiary, err = feltToAddress(out, 0)
	if err != nil {
		return state, fmt.Errorf("hook %s beneficiary: %w", addr, err)
	}

	out, err = p.call(ctx, addr, "get_protocol_fee")
	if err != nil {
		return state, err
	}
	fee, err := feltToUint64(out, 0)
	if err != nil {
		return state, fmt.Errorf("hook %s fee: %w", addr, err)
	}
	state.ProtocolFee = fmt.Sprintf("%d", fee)

	out, err = p.call(ctx, addr, "get_max_protocol_fee")
	if err != nil {
		return state, err
	}
	maxFee, err := feltToUint64(out, 0)
	if err != nil {
		return state, fmt.Errorf("hook %s max fee: %w", addr, err)
	}
	state.MaxProtocolFee = fmt.Sprintf("%d", maxFee)

	return state, nil
}

func (r *hookReader) ReadIGP(_ context.Context, addr types.Address) (hook.IGPState, error) {
	return hook.IGPState{}, fmt.Errorf("hook %s: gas paymaster hooks are not supported on %s chains", addr, types.ProtocolStarknet)
}

func (r *hookReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, error) {
	return nil, fmt.Errorf("hook %s: aggregation hooks are not supported on %s chains", addr, types.ProtocolStarknet)
}

func (r *hookReader) ReadRouting(_ context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, *types.Address, error) {
	return types.Address{}, nil, nil, fmt.Errorf("hook %s: routing hooks are not supported on %s chains", addr, types.ProtocolStarknet)
}

func (r *hookReader) ReadPausable(_ context.Context, addr types.Address) (types.Address, bool, error) {
	return types.Address{}, false, fmt.Errorf("hook %s: pausable hooks are not supported on %s chains", addr, types.ProtocolStarknet)
}
