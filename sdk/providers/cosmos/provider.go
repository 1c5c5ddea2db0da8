// Package cosmos implements the SDK read surface for chains running the
// hyperlane-cosmos module, queried over grpc.
package cosmos

import (
	"context"
	"fmt"

	ismtypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/01_interchain_security/types"
	hooktypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/02_post_dispatch/types"
	coretypes "github.com/bcp-innovations/hyperlane-cosmos/x/core/types"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/core"
	"github.com/celestiaorg/hyperlane-go/sdk/hook"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// The provider depends on the narrow slice of the generated query clients it
// actually uses, so tests can stub them.

type coreQuerier interface {
	Mailbox(ctx context.Context, in *coretypes.QueryMailboxRequest, opts ...grpc.CallOption) (*coretypes.QueryMailboxResponse, error)
}

type ismQuerier interface {
	Ism(ctx context.Context, in *ismtypes.QueryIsmRequest, opts ...grpc.CallOption) (*ismtypes.QueryIsmResponse, error)
}

type hookQuerier interface {
	Igp(ctx context.Context, in *hooktypes.QueryIgpRequest, opts ...grpc.CallOption) (*hooktypes.QueryIgpResponse, error)
	DestinationGasConfigs(ctx context.Context, in *hooktypes.QueryDestinationGasConfigsRequest, opts ...grpc.CallOption) (*hooktypes.QueryDestinationGasConfigsResponse, error)
	MerkleTreeHook(ctx context.Context, in *hooktypes.QueryMerkleTreeHookRequest, opts ...grpc.CallOption) (*hooktypes.QueryMerkleTreeHookResponse, error)
	NoopHook(ctx context.Context, in *hooktypes.QueryNoopHookRequest, opts ...grpc.CallOption) (*hooktypes.QueryNoopHookResponse, error)
}

// Provider reads hyperlane state from a cosmos chain over grpc.
type Provider struct {
	conn   *grpc.ClientConn
	core   coreQuerier
	isms   ismQuerier
	hooks  hookQuerier
	logger *zap.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// Dial connects to the first grpc endpoint in the chain metadata.
func Dial(_ context.Context, meta chains.Metadata, opts ...Option) (*Provider, error) {
	if meta.Protocol != types.ProtocolCosmos {
		return nil, fmt.Errorf("chain %s: protocol %q is not a cosmos chain", meta.Name, meta.Protocol)
	}
	if len(meta.GrpcURLs) == 0 {
		return nil, fmt.Errorf("chain %s: no grpc url", meta.Name)
	}

	conn, err := grpc.NewClient(meta.GrpcURLs[0].HTTP, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", meta.Name, err)
	}

	p := &Provider{
		conn:   conn,
		core:   coretypes.NewQueryClient(conn),
		isms:   ismtypes.NewQueryClient(conn),
		hooks:  hooktypes.NewQueryClient(conn),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Close releases the grpc connection.
func (p *Provider) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
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

	resp, err := p.core.Mailbox(ctx, &coretypes.QueryMailboxRequest{Id: addr.String()})
	if err != nil {
		return state, fmt.Errorf("query mailbox %s: %w", addr, err)
	}
	mailbox := resp.Mailbox

	owner, err := addressFromBech32(mailbox.Owner)
	if err != nil {
		return state, fmt.Errorf("mailbox %s owner: %w", addr, err)
	}

	state.LocalDomain = types.Domain(mailbox.LocalDomain)
	state.Owner = owner
	state.DefaultISM = mailbox.DefaultIsm
	if mailbox.DefaultHook != nil {
		state.DefaultHook = *mailbox.DefaultHook
	}
	if mailbox.RequiredHook != nil {
		state.RequiredHook = *mailbox.RequiredHook
	}
	return state, nil
}

var _ core.Reader = (*Provider)(nil)
