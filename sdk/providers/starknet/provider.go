// Package starknet implements the SDK read surface for starknet chains. Cairo
// contracts return felt arrays, so every read decodes the raw call result
// according to the contract's serde layout.
package starknet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
	"go.uber.org/zap"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/core"
	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Caller is the slice of the starknet rpc client the provider uses.
type Caller interface {
	Call(ctx context.Context, call rpc.FunctionCall, blockID rpc.BlockID) ([]*felt.Felt, error)
}

// Provider reads hyperlane contracts on a starknet chain.
type Provider struct {
	client Caller
	logger *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// Dial connects to the first RPC endpoint in the chain metadata.
func Dial(_ context.Context, meta chains.Metadata, opts ...Option) (*Provider, error) {
	if meta.Protocol != types.ProtocolStarknet {
		return nil, fmt.Errorf("chain %s: protocol %q is not a starknet chain", meta.Name, meta.Protocol)
	}
	if len(meta.RpcURLs) == 0 {
		return nil, fmt.Errorf("chain %s: no rpc url", meta.Name)
	}

	client, err := rpc.NewProvider(meta.RpcURLs[0].HTTP)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", meta.Name, err)
	}
	return NewProvider(client, opts...), nil
}

// NewProvider wraps an existing rpc caller.
func NewProvider(client Caller, opts ...Option) *Provider {
	p := &Provider{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ISMReader returns the security module read surface.
func (p *Provider) ISMReader() ism.ModuleReader {
	return (*ismReader)(p)
}

// HookReader returns the post-dispatch hook read surface.
func (p *Provider) HookReader() hook.Reader {
	return (*hookReader)(p)
}

// Mailbox reads the core mailbox state.
func (p *Provider) Mailbox(ctx context.Context, addr types.Address) (core.MailboxState, error) {
	var state core.MailboxState

	out, err := p.call(ctx, addr, "get_local_domain")
	if err != nil {
		return state, err
	}
	domain, err := feltToUint64(out, 0)
	if err != nil {
		return state, fmt.Errorf("mailbox %s local domain: %w", addr, err)
	}
	state.LocalDomain = types.Domain(domain)

	for _, field := range []struct {
		entrypoint string
		dst        *types.Address
	}{
		{"owner", &state.Owner},
		{"get_default_ism", &state.DefaultISM},
		{"get_default_hook", &state.DefaultHook},
		{"get_required_hook", &state.RequiredHook},
	} {
		out, err := p.call(ctx, addr, field.entrypoint)
		if err != nil {
			return state, err
		}
		*field.dst, err = feltToAddress(out, 0)
		if err != nil {
			return state, fmt.Errorf("mailbox %s %s: %w", addr, field.entrypoint, err)
		}
	}
	return state, nil
}

var _ core.Reader = (*Provider)(nil)

// call invokes a view entrypoint with felt-encoded arguments.
func (p *Provider) call(ctx context.Context, addr types.Address, entrypoint string, calldata ...*felt.Felt) ([]*felt.Felt, error) {
	contract := addressToFelt(addr)

	out, err := p.client.Call(ctx, rpc.FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: utils.GetSelectorFromNameFelt(entrypoint),
		Calldata:           calldata,
	}, rpc.WithBlockTag("latest"))
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", entrypoint, addr, err)
	}
	return out, nil
}

func addressToFelt(addr types.Address) *felt.Felt {
	return new(felt.Felt).SetBytes(addr.Bytes())
}

func domainToFelt(domain types.Domain) *felt.Felt {
	return new(felt.Felt).SetUint64(uint64(domain))
}

func feltToAddress(out []*felt.Felt, i int) (types.Address, error) {
	if i >= len(out) {
		return types.Address{}, fmt.Errorf("result too short: want index %d, have %d felts", i, len(out))
	}
	return types.Address(out[i].Bytes()), nil
}

func feltToUint64(out []*felt.Felt, i int) (uint64, error) {
	if i >= len(out) {
		return 0, fmt.Errorf("result too short: want index %d, have %d felts", i, len(out))
	}
	value := out[i].BigInt(new(big.Int))
	if !value.IsUint64() {
		return 0, fmt.Errorf("felt %s does not fit in uint64", out[i])
	}
	return value.Uint64(), nil
}
