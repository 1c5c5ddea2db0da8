// Package evm implements the SDK read and write surfaces for EVM chains
// using go-ethereum.
package evm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/core"
	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Provider reads and writes Hyperlane contracts on a single EVM chain.
type Provider struct {
	backend bind.ContractBackend
	signer  *bind.TransactOpts
	logger  *zap.Logger

	// igpDomains bounds the domains probed when reading gas paymaster
	// state, since the contract does not enumerate them.
	igpDomains []types.Domain
}

// Option configures a Provider.
type Option func(*Provider)

// WithSigner enables the write surface using the given transact opts.
func WithSigner(signer *bind.TransactOpts) Option {
	return func(p *Provider) { p.signer = signer }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// WithIGPDomains sets the destination domains probed when deriving
// interchain gas paymaster configs.
func WithIGPDomains(domains []types.Domain) Option {
	return func(p *Provider) { p.igpDomains = domains }
}

// Dial connects to the first RPC endpoint in the chain metadata.
func Dial(ctx context.Context, meta chains.Metadata, opts ...Option) (*Provider, error) {
	if meta.Protocol != types.ProtocolEthereum {
		return nil, fmt.Errorf("chain %s: protocol %q is not an evm chain", meta.Name, meta.Protocol)
	}
	if len(meta.RpcURLs) == 0 {
		return nil, fmt.Errorf("chain %s: no rpc url", meta.Name)
	}

	client, err := ethclient.DialContext(ctx, meta.RpcURLs[0].HTTP)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", meta.Name, err)
	}
	return NewProvider(client, opts...), nil
}

// NewProvider wraps an existing backend.
func NewProvider(backend bind.ContractBackend, opts ...Option) *Provider {
	p := &Provider{
		backend: backend,
		logger:  zap.NewNop(),
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

	out, err := p.call(ctx, addr, mailboxABI, "localDomain")
	if err != nil {
		return state, err
	}
	state.LocalDomain = types.Domain(out[0].(uint32))

	for _, field := range []struct {
		method string
		dst    *types.Address
	}{
		{"owner", &state.Owner},
		{"defaultIsm", &state.DefaultISM},
		{"defaultHook", &state.DefaultHook},
		{"requiredHook", &state.RequiredHook},
	} {
		out, err := p.call(ctx, addr, mailboxABI, field.method)
		if err != nil {
			return state, err
		}
		*field.dst = types.AddressFromEVM(out[0].(common.Address))
	}
	return state, nil
}

var _ core.Reader = (*Provider)(nil)

// call executes a read-only contract call and returns the unpacked outputs.
func (p *Provider) call(ctx context.Context, addr types.Address, parsed abi.ABI, method string, args ...any) ([]any, error) {
	contract := bind.NewBoundContract(types.EVMAddress(addr), parsed, p.backend, p.backend, nil)

	var out []any
	if err := contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, addr, err)
	}
	return out, nil
}

// transact submits a state-changing call and waits for it to be mined.
func (p *Provider) transact(ctx context.Context, addr types.Address, parsed abi.ABI, method string, args ...any) error {
	if p.signer == nil {
		return fmt.Errorf("transact %s: provider has no signer", method)
	}

	contract := bind.NewBoundContract(types.EVMAddress(addr), parsed, p.backend, p.backend, nil)

	opts := *p.signer
	opts.Context = ctx

	tx, err := contract.Transact(&opts, method, args...)
	if err != nil {
		return fmt.Errorf("transact %s on %s: %w", method, addr, err)
	}
	p.logger.Debug("transaction submitted",
		zap.String("method", method),
		zap.String("contract", addr.String()),
		zap.String("tx", tx.Hash().Hex()),
	)

	deployBackend, ok := p.backend.(bind.DeployBackend)
	if !ok {
		return nil
	}
	receipt, err := bind.WaitMined(ctx, deployBackend, tx)
	if err != nil {
		return fmt.Errorf("wait for %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status == 0 {
		return fmt.Errorf("transaction %s reverted", tx.Hash().Hex())
	}
	return nil
}
