// Package sealevel implements the SDK read surface for solana chains running
// the hyperlane sealevel programs. State lives in program derived accounts,
// so reads fetch raw account data and decode the borsh layouts.
package sealevel

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// AccountFetcher is the slice of the solana rpc client the provider uses.
type AccountFetcher interface {
	GetAccountInfo(ctx context.Context, account solana.PublicKey) (*rpc.GetAccountInfoResult, error)
}

// Provider reads hyperlane program accounts on a solana chain.
type Provider struct {
	client AccountFetcher
	logger *zap.Logger

	// origin selects which domain's validator set multisig reads return,
	// since the program keeps one account per origin domain.
	origin types.Domain
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// WithOriginDomain selects the origin domain for multisig reads.
func WithOriginDomain(domain types.Domain) Option {
	return func(p *Provider) { p.origin = domain }
}

// Dial connects to the first RPC endpoint in the chain metadata.
func Dial(_ context.Context, meta chains.Metadata, opts ...Option) (*Provider, error) {
	if meta.Protocol != types.ProtocolSealevel {
		return nil, fmt.Errorf("chain %s: protocol %q is not a sealevel chain", meta.Name, meta.Protocol)
	}
	if len(meta.RpcURLs) == 0 {
		return nil, fmt.Errorf("chain %s: no rpc url", meta.Name)
	}
	return NewProvider(rpc.New(meta.RpcURLs[0].HTTP), opts...), nil
}

// NewProvider wraps an existing rpc client.
func NewProvider(client AccountFetcher, opts ...Option) *Provider {
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

// fetchAccount returns the raw data of an account, or an error if the
// account does not exist.
func (p *Provider) fetchAccount(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	result, err := p.client.GetAccountInfo(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", account, err)
	}
	if result == nil || result.Value == nil || result.Value.Data == nil {
		return nil, fmt.Errorf("account %s: not found", account)
	}
	return result.Value.Data.GetBinary(), nil
}

func programKey(addr types.Address) solana.PublicKey {
	return solana.PublicKeyFromBytes(addr.Bytes())
}
