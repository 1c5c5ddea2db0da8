package starknet

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// ismReader adapts a Provider to the security module read surface.
type ismReader Provider

func (r *ismReader) provider() *Provider { return (*Provider)(r) }

// ModuleType reads the module_type enum. Cairo serializes the enum as the
// variant index followed by the variant payload; only the index matters here.
func (r *ismReader) ModuleType(ctx context.Context, addr types.Address) (types.ModuleType, error) {
	out, err := r.provider().call(ctx, addr, "module_type")
	if err != nil {
		return types.ModuleTypeUnused, err
	}
	variant, err := feltToUint64(out, 0)
	if err != nil {
		return types.ModuleTypeUnused, fmt.Errorf("ism %s module type: %w", addr, err)
	}
	return types.ModuleType(variant), nil
}

// ReadMultisig decodes (Span<EthAddress>, threshold) from the raw felt array:
// a length prefix, the validators, then the threshold.
func (r *ismReader) ReadMultisig(ctx context.Context, addr types.Address) ([]types.Address, uint8, error) {
	out, err := r.provider().call(ctx, addr, "validators_and_threshold")
	if err != nil {
		return nil, 0, err
	}

	count, err := feltToUint64(out, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("ism %s validator count: %w", addr, err)
	}
	if uint64(len(out)) < count+2 {
		return nil, 0, fmt.Errorf("ism %s: result has %d felts, want %d validators plus threshold", addr, len(out), count)
	}

	validators := make([]types.Address, count)
	for i := range validators {
		validators[i], err = feltToAddress(out, 1+i)
		if err != nil {
			return nil, 0, fmt.Errorf("ism %s validator %d: %w", addr, i, err)
		}
	}

	threshold, err := feltToUint64(out, 1+int(count))
	if err != nil {
		return nil, 0, fmt.Errorf("ism %s threshold: %w", addr, err)
	}
	return validators, uint8(threshold), nil
}

func (r *ismReader) ReadRouting(ctx context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, error) {
	p := r.provider()

	out, err := p.call(ctx, addr, "owner")
	if err != nil {
		return types.Address{}, nil, err
	}
	owner, err := feltToAddress(out, 0)
	if err != nil {
		return types.Address{}, nil, fmt.Errorf("ism %s owner: %w", addr, err)
	}

	out, err = p.call(ctx, addr, "domains")
	if err != nil {
		return types.Address{}, nil, err
	}
	count, err := feltToUint64(out, 0)
	if err != nil {
		return types.Address{}, nil, fmt.Errorf("ism %s domain count: %w", addr, err)
	}
	if uint64(len(out)) < count+1 {
		return types.Address{}, nil, fmt.Errorf("ism %s: result has %d felts, want %d domains", addr, len(out), count)
	}

	routes := make(map[types.Domain]types.Address, count)
	for i := 0; i < int(count); i++ {
		domain, err := feltToUint64(out, 1+i)
		if err != nil {
			return types.Address{}, nil, fmt.Errorf("ism %s domain %d: %w", addr, i, err)
		}

		moduleOut, err := p.call(ctx, addr, "module", domainToFelt(types.Domain(domain)))
		if err != nil {
			return types.Address{}, nil, fmt.Errorf("route for domain %d: %w", domain, err)
		}
		routes[types.Domain(domain)], err = feltToAddress(moduleOut, 0)
		if err != nil {
			return types.Address{}, nil, fmt.Errorf("route for domain %d: %w", domain, err)
		}
	}
	return owner, routes, nil
}

// ReadAggregation always fails: the starknet deployment has no aggregation
// modules.
func (r *ismReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, uint8, error) {
	return nil, 0, fmt.Errorf("ism %s: aggregation modules are not supported on %s chains", addr, types.ProtocolStarknet)
}

func (r *ismReader) ReadNull(_ context.Context, _ types.Address) (ism.Config, error) {
	return &ism.TestConfig{Type: ism.TypeTest}, nil
}
