package hook

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/internal/batch"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"go.uber.org/zap"
)

// IGPState is the readable on-chain state of an interchain gas paymaster.
type IGPState struct {
	Owner       types.Address
	Beneficiary types.Address
	Overhead    map[types.Domain]uint64
	Oracles     map[types.Domain]OracleConfig
}

// ProtocolFeeState is the readable state of a protocol fee hook.
type ProtocolFeeState struct {
	Owner          types.Address
	Beneficiary    types.Address
	MaxProtocolFee string
	ProtocolFee    string
}

// Reader is the per-protocol read surface the hook deriver walks.
type Reader interface {
	HookKind(ctx context.Context, addr types.Address) (types.HookKind, error)
	ReadIGP(ctx context.Context, addr types.Address) (IGPState, error)
	ReadProtocolFee(ctx context.Context, addr types.Address) (ProtocolFeeState, error)
	ReadAggregation(ctx context.Context, addr types.Address) ([]types.Address, error)
	// ReadRouting returns the owner, per-domain hooks and, for fallback
	// routing hooks, the fallback hook address.
	ReadRouting(ctx context.Context, addr types.Address) (owner types.Address, routes map[types.Domain]types.Address, fallback *types.Address, err error)
	ReadPausable(ctx context.Context, addr types.Address) (owner types.Address, paused bool, err error)
}

const defaultMaxDepth = 10

// Deriver reconstructs a hook config tree from a root address.
type Deriver struct {
	reader   Reader
	logger   *zap.Logger
	limit    int
	maxDepth int
}

type DeriverOption func(*Deriver)

func WithLogger(logger *zap.Logger) DeriverOption {
	return func(d *Deriver) { d.logger = logger }
}

func WithConcurrency(limit int) DeriverOption {
	return func(d *Deriver) { d.limit = limit }
}

func WithMaxDepth(depth int) DeriverOption {
	return func(d *Deriver) { d.maxDepth = depth }
}

func NewDeriver(reader Reader, opts ...DeriverOption) *Deriver {
	d := &Deriver{
		reader:   reader,
		logger:   zap.NewNop(),
		limit:    batch.DefaultLimit,
		maxDepth: defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type path struct {
	addr types.Address
	prev *path
}

func (p *path) contains(addr types.Address) bool {
	for n := p; n != nil; n = n.prev {
		if n.addr == addr {
			return true
		}
	}
	return false
}

func (p *path) depth() int {
	d := 0
	for n := p; n != nil; n = n.prev {
		d++
	}
	return d
}

// Derive walks the hook graph rooted at addr and returns its config tree.
func (d *Deriver) Derive(ctx context.Context, addr types.Address) (Config, error) {
	return d.derive(ctx, addr, nil)
}

func (d *Deriver) derive(ctx context.Context, addr types.Address, parents *path) (Config, error) {
	if types.IsZeroAddress(addr) {
		return nil, fmt.Errorf("derive hook: zero hook address")
	}
	if parents.contains(addr) {
		return nil, fmt.Errorf("derive hook: cycle through hook %s", addr)
	}
	if parents.depth() >= d.maxDepth {
		return nil, fmt.Errorf("derive hook: nesting exceeds depth %d", d.maxDepth)
	}
	p := &path{addr: addr, prev: parents}

	kind, err := d.reader.HookKind(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("hook kind of %s: %w", addr, err)
	}
	d.logger.Debug("deriving hook",
		zap.String("address", addr.String()),
		zap.String("hookKind", kind.String()),
		zap.Int("depth", p.depth()),
	)

	switch kind {
	case types.HookKindMerkleTree:
		return &MerkleTreeConfig{Type: types.HookTypeMerkleTree}, nil
	case types.HookKindIGP:
		return d.deriveIGP(ctx, addr)
	case types.HookKindProtocolFee:
		return d.deriveProtocolFee(ctx, addr)
	case types.HookKindAggregation:
		return d.deriveAggregation(ctx, addr, p)
	case types.HookKindRouting, types.HookKindFallbackRouting:
		return d.deriveRouting(ctx, addr, p)
	case types.HookKindPausable:
		owner, paused, err := d.reader.ReadPausable(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("read pausable hook %s: %w", addr, err)
		}
		return &PausableConfig{Type: types.HookTypePausable, Owner: owner.String(), Paused: paused}, nil
	}
	return nil, fmt.Errorf("derive hook %s: unsupported hook kind %s", addr, kind)
}

func (d *Deriver) deriveIGP(ctx context.Context, addr types.Address) (Config, error) {
	state, err := d.reader.ReadIGP(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read igp %s: %w", addr, err)
	}
	return &IGPConfig{
		Type:         types.HookTypeIGP,
		Owner:        state.Owner.String(),
		Beneficiary:  state.Beneficiary.String(),
		Overhead:     state.Overhead,
		OracleConfig: state.Oracles,
	}, nil
}

func (d *Deriver) deriveProtocolFee(ctx context.Context, addr types.Address) (Config, error) {
	state, err := d.reader.ReadProtocolFee(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read protocol fee hook %s: %w", addr, err)
	}
	return &ProtocolFeeConfig{
		Type:           types.HookTypeProtocolFee,
		Owner:          state.Owner.String(),
		Beneficiary:    state.Beneficiary.String(),
		MaxProtocolFee: state.MaxProtocolFee,
		ProtocolFee:    state.ProtocolFee,
	}, nil
}

func (d *Deriver) deriveAggregation(ctx context.Context, addr types.Address, p *path) (Config, error) {
	hooks, err := d.reader.ReadAggregation(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read aggregation hook %s: %w", addr, err)
	}
	children, err := batch.Map(ctx, d.limit, hooks, func(ctx context.Context, h types.Address) (Config, error) {
		return d.derive(ctx, h, p)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregation hook %s: %w", addr, err)
	}
	cfg := &AggregationConfig{Type: types.HookTypeAggregation}
	for _, child := range children {
		cfg.Hooks = append(cfg.Hooks, Node{child})
	}
	return cfg, nil
}

func (d *Deriver) deriveRouting(ctx context.Context, addr types.Address, p *path) (Config, error) {
	owner, routes, fallback, err := d.reader.ReadRouting(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read routing hook %s: %w", addr, err)
	}

	domains := make([]types.Domain, 0, len(routes))
	for domain := range routes {
		domains = append(domains, domain)
	}
	children, err := batch.Map(ctx, d.limit, domains, func(ctx context.Context, domain types.Domain) (Config, error) {
		return d.derive(ctx, routes[domain], p)
	})
	if err != nil {
		return nil, fmt.Errorf("routing hook %s: %w", addr, err)
	}

	cfg := &DomainRoutingConfig{
		Type:    types.HookTypeDomainRouting,
		Owner:   owner.String(),
		Domains: make(map[types.Domain]Node, len(domains)),
	}
	for i, domain := range domains {
		cfg.Domains[domain] = Node{children[i]}
	}
	if fallback != nil {
		fb, err := d.derive(ctx, *fallback, p)
		if err != nil {
			return nil, fmt.Errorf("routing hook %s fallback: %w", addr, err)
		}
		cfg.Fallback = &Node{fb}
	}
	return cfg, nil
}
