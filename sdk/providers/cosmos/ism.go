package cosmos

import (
	"context"
	"fmt"
	"strings"

	ismtypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/01_interchain_security/types"
	"github.com/cosmos/gogoproto/proto"

	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// ismReader adapts a Provider to the security module read surface. The
// query service returns modules as Any, so every read first resolves the
// concrete type by its type url.
type ismReader Provider

func (r *ismReader) provider() *Provider { return (*Provider)(r) }

func (r *ismReader) fetch(ctx context.Context, addr types.Address) (proto.Message, error) {
	resp, err := r.provider().isms.Ism(ctx, &ismtypes.QueryIsmRequest{Id: addr.String()})
	if err != nil {
		return nil, fmt.Errorf("query ism %s: %w", addr, err)
	}
	anyIsm := resp.Ism
	if anyIsm.TypeUrl == "" {
		return nil, fmt.Errorf("ism %s: empty response", addr)
	}

	var msg proto.Message
	switch {
	case strings.HasSuffix(anyIsm.TypeUrl, "MessageIdMultisigISM"):
		msg = &ismtypes.MessageIdMultisigISM{}
	case strings.HasSuffix(anyIsm.TypeUrl, "MerkleRootMultisigISM"):
		msg = &ismtypes.MerkleRootMultisigISM{}
	case strings.HasSuffix(anyIsm.TypeUrl, "RoutingISM"):
		msg = &ismtypes.RoutingISM{}
	case strings.HasSuffix(anyIsm.TypeUrl, "NoopISM"):
		msg = &ismtypes.NoopISM{}
	default:
		return nil, fmt.Errorf("ism %s: unknown type %s", addr, anyIsm.TypeUrl)
	}
	if err := proto.Unmarshal(anyIsm.Value, msg); err != nil {
		return nil, fmt.Errorf("decode ism %s: %w", addr, err)
	}
	return msg, nil
}

func (r *ismReader) ModuleType(ctx context.Context, addr types.Address) (types.ModuleType, error) {
	msg, err := r.fetch(ctx, addr)
	if err != nil {
		return types.ModuleTypeUnused, err
	}

	switch msg.(type) {
	case *ismtypes.MessageIdMultisigISM:
		return types.ModuleTypeMessageIDMultisig, nil
	case *ismtypes.MerkleRootMultisigISM:
		return types.ModuleTypeMerkleRootMultisig, nil
	case *ismtypes.RoutingISM:
		return types.ModuleTypeRouting, nil
	case *ismtypes.NoopISM:
		return types.ModuleTypeNull, nil
	}
	return types.ModuleTypeUnused, fmt.Errorf("ism %s: unknown module %T", addr, msg)
}

func (r *ismReader) ReadMultisig(ctx context.Context, addr types.Address) ([]types.Address, uint8, error) {
	msg, err := r.fetch(ctx, addr)
	if err != nil {
		return nil, 0, err
	}

	var rawValidators []string
	var threshold uint32
	switch m := msg.(type) {
	case *ismtypes.MessageIdMultisigISM:
		rawValidators, threshold = m.Validators, m.Threshold
	case *ismtypes.MerkleRootMultisigISM:
		rawValidators, threshold = m.Validators, m.Threshold
	default:
		return nil, 0, fmt.Errorf("ism %s: %T is not a multisig module", addr, msg)
	}

	validators := make([]types.Address, len(rawValidators))
	for i, raw := range rawValidators {
		validators[i], err = types.ParseAddress(raw)
		if err != nil {
			return nil, 0, fmt.Errorf("ism %s validator %d: %w", addr, i, err)
		}
	}
	return validators, uint8(threshold), nil
}

func (r *ismReader) ReadRouting(ctx context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, error) {
	msg, err := r.fetch(ctx, addr)
	if err != nil {
		return types.Address{}, nil, err
	}
	routing, ok := msg.(*ismtypes.RoutingISM)
	if !ok {
		return types.Address{}, nil, fmt.Errorf("ism %s: %T is not a routing module", addr, msg)
	}

	owner, err := addressFromBech32(routing.Owner)
	if err != nil {
		return types.Address{}, nil, fmt.Errorf("ism %s owner: %w", addr, err)
	}

	routes := make(map[types.Domain]types.Address, len(routing.Routes))
	for _, route := range routing.Routes {
		routes[types.Domain(route.Domain)] = route.Ism
	}
	return owner, routes, nil
}

// ReadAggregation always fails: the cosmos module has no aggregation ISM.
func (r *ismReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, uint8, error) {
	return nil, 0, fmt.Errorf("ism %s: aggregation modules are not supported on %s chains", addr, types.ProtocolCosmos)
}

func (r *ismReader) ReadNull(ctx context.Context, addr types.Address) (ism.Config, error) {
	msg, err := r.fetch(ctx, addr)
	if err != nil {
		return nil, err
	}
	if _, ok := msg.(*ismtypes.NoopISM); !ok {
		return nil, fmt.Errorf("ism %s: %T is not a noop module", addr, msg)
	}
	return &ism.TestConfig{Type: ism.TypeTest}, nil
}
