package cosmos

import (
	"context"
	"fmt"

	hooktypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/02_post_dispatch/types"

	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// hookReader adapts a Provider to the post-dispatch hook read surface. The
// cosmos module only implements merkle tree, gas paymaster and noop hooks.
type hookReader Provider

func (r *hookReader) provider() *Provider { return (*Provider)(r) }

// HookKind resolves the hook variant by probing the per-variant queries,
// since the module has no shared hook type query.
func (r *hookReader) HookKind(ctx context.Context, addr types.Address) (types.HookKind, error) {
	p := r.provider()
	id := addr.String()

	if _, err := p.hooks.MerkleTreeHook(ctx, &hooktypes.QueryMerkleTreeHookRequest{Id: id}); err == nil {
		return types.HookKindMerkleTree, nil
	}
	if _, err := p.hooks.Igp(ctx, &hooktypes.QueryIgpRequest{Id: id}); err == nil {
		return types.HookKindIGP, nil
	}
	if _, err := p.hooks.NoopHook(ctx, &hooktypes.QueryNoopHookRequest{Id: id}); err == nil {
		return types.HookKindUnused, nil
	}
	return types.HookKindUnused, fmt.Errorf("hook %s: not found", addr)
}

func (r *hookReader) ReadIGP(ctx context.Context, addr types.Address) (hook.IGPState, error) {
	p := r.provider()
	state := hook.IGPState{
		Overhead: make(map[types.Domain]uint64),
		Oracles:  make(map[types.Domain]hook.OracleConfig),
	}

	resp, err := p.hooks.Igp(ctx, &hooktypes.QueryIgpRequest{Id: addr.String()})
	if err != nil {
		return state, fmt.Errorf("query igp %s: %w", addr, err)
	}

	owner, err := addressFromBech32(resp.Igp.Owner)
	if err != nil {
		return state, fmt.Errorf("igp %s owner: %w", addr, err)
	}
	state.Owner = owner
	// Fees accrue to the owner; the module has no separate beneficiary.
	state.Beneficiary = owner

	gasResp, err := p.hooks.DestinationGasConfigs(ctx, &hooktypes.QueryDestinationGasConfigsRequest{Id: addr.String()})
	if err != nil {
		return state, fmt.Errorf("query gas configs %s: %w", addr, err)
	}
	for _, cfg := range gasResp.DestinationGasConfigs {
		domain := types.Domain(cfg.RemoteDomain)
		state.Overhead[domain] = cfg.GasOverhead.Uint64()
		if cfg.GasOracle != nil {
			state.Oracles[domain] = hook.OracleConfig{
				TokenExchangeRate: cfg.GasOracle.TokenExchangeRate.String(),
				GasPrice:          cfg.GasOracle.GasPrice.String(),
			}
		}
	}
	return state, nil
}

func (r *hookReader) ReadProtocolFee(_ context.Context, addr types.Address) (hook.ProtocolFeeState, error) {
	return hook.ProtocolFeeState{}, fmt.Errorf("hook %s: protocol fee hooks are not supported on %s chains", addr, types.ProtocolCosmos)
}

func (r *hookReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, error) {
	return nil, fmt.Errorf("hook %s: aggregation hooks are not supported on %s chains", addr, types.ProtocolCosmos)
}

func (r *hookReader) ReadRouting(_ context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, *types.Address, error) {
	return types.Address{}, nil, nil, fmt.Errorf("hook %s: routing hooks are not supported on %s chains", addr, types.ProtocolCosmos)
}

func (r *hookReader) ReadPausable(_ context.Context, addr types.Address) (types.Address, bool, error) {
	return types.Address{}, false, fmt.Errorf("hook %s: pausable hooks are not supported on %s chains", addr, types.ProtocolCosmos)
}
