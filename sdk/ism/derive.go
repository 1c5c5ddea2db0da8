package ism

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/internal/batch"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"go.uber.org/zap"
)

// ModuleReader is the per-protocol read surface the deriver walks. Providers
// implement it for their virtual machine.
type ModuleReader interface {
	// ModuleType returns the on-chain module type discriminant.
	ModuleType(ctx context.Context, addr types.Address) (types.ModuleType, error)
	// ReadMultisig returns the validator set and threshold of a multisig module.
	ReadMultisig(ctx context.Context, addr types.Address) (validators []types.Address, threshold uint8, err error)
	// ReadRouting returns the owner and the per-domain sub-module table.
	ReadRouting(ctx context.Context, addr types.Address) (owner types.Address, routes map[types.Domain]types.Address, err error)
	// ReadAggregation returns the sub-modules and threshold of an aggregation module.
	ReadAggregation(ctx context.Context, addr types.Address) (modules []types.Address, threshold uint8, err error)
	// ReadNull resolves a null module into its concrete config variant
	// (trusted relayer, pausable or test).
	ReadNull(ctx context.Context, addr types.Address) (Config, error)
}

const defaultMaxDepth = 10

// Deriver reconstructs an ISM config tree by recursively reading the
// on-chain module graph from a root address.
type Deriver struct {
	reader   ModuleReader
	logger   *zap.Logger
	limit    int
	maxDepth int
}

// DeriverOption configures a Deriver.
type DeriverOption func(*Deriver)

// WithLogger sets the logger used during traversal.
func WithLogger(logger *zap.Logger) DeriverOption {
	return func(d *Deriver) { d.logger = logger }
}

// WithConcurrency bounds concurrent provider calls during fan-out.
func WithConcurrency(limit int) DeriverOption {
	return func(d *Deriver) { d.limit = limit }
}

// WithMaxDepth caps the module nesting depth the deriver will follow.
func WithMaxDepth(depth int) DeriverOption {
	return func(d *Deriver) { d.maxDepth = depth }
}

func NewDeriver(reader ModuleReader, opts ...DeriverOption) *Deriver {
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

// Derive walks the module graph rooted at addr and returns its config tree.
// Revisiting an address already on the traversal path is an error, as is
// exceeding the nesting depth cap.
func (d *Deriver) Derive(ctx context.Context, addr types.Address) (Config, error) {
	return d.derive(ctx, addr, nil)
}

// path holds the addresses of the ancestors of the current node. It is an
// immutable singly linked list so concurrent sibling branches never share
// mutable state.
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

func (d *Deriver) derive(ctx context.Context, addr types.Address, parents *path) (Config, error) {
	if types.IsZeroAddress(addr) {
		return nil, fmt.Errorf("derive ism: zero module address")
	}
	if parents.contains(addr) {
		return nil, fmt.Errorf("derive ism: cycle through module %s", addr)
	}
	if parents.depth() >= d.maxDepth {
		return nil, fmt.Errorf("derive ism: module nesting exceeds depth %d", d.maxDepth)
	}
	p := &path{addr: addr, prev: parents}

	moduleType, err := d.reader.ModuleType(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("module type of %s: %w", addr, err)
	}
	d.logger.Debug("deriving ism module",
		zap.String("address", addr.String()),
		zap.String("moduleType", moduleType.String()),
		zap.Int("depth", p.depth()),
	)

	switch moduleType {
	case types.ModuleTypeMerkleRootMultisig, types.ModuleTypeMessageIDMultisig:
		return d.deriveMultisig(ctx, addr, moduleType)
	case types.ModuleTypeRouting:
		return d.deriveRouting(ctx, addr, p)
	case types.ModuleTypeAggregation:
		return d.deriveAggregation(ctx, addr, p)
	case types.ModuleTypeNull:
		cfg, err := d.reader.ReadNull(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("read null ism %s: %w", addr, err)
		}
		return cfg, nil
	}
	return nil, fmt.Errorf("derive ism %s: unsupported module type %s", addr, moduleType)
}

func (d *Deriver) deriveMultisig(ctx context.Context, addr types.Address, moduleType types.ModuleType) (Config, error) {
	validators, threshold, err := d.reader.ReadMultisig(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read multisig ism %s: %w", addr, err)
	}

	cfgType := TypeMessageIDMultisig
	if moduleType == types.ModuleTypeMerkleRootMultisig {
		cfgType = TypeMerkleRootMultisig
	}
	cfg := &MultisigConfig{Type: cfgType, Threshold: threshold}
	for _, v := range validators {
		cfg.Validators = append(cfg.Validators, v.String())
	}
	return cfg, nil
}

func (d *Deriver) deriveRouting(ctx context.Context, addr types.Address, p *path) (Config, error) {
	owner, routes, err := d.reader.ReadRouting(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read routing ism %s: %w", addr, err)
	}

	domains := make([]types.Domain, 0, len(routes))
	for domain := range routes {
		domains = append(domains, domain)
	}

	children, err := batch.Map(ctx, d.limit, domains, func(ctx context.Context, domain types.Domain) (Config, error) {
		return d.derive(ctx, routes[domain], p)
	})
	if err != nil {
		return nil, fmt.Errorf("routing ism %s: %w", addr, err)
	}

	cfg := &RoutingConfig{
		Type:    TypeRouting,
		Owner:   owner.String(),
		Domains: make(map[types.Domain]Node, len(domains)),
	}
	for i, domain := range domains {
		cfg.Domains[domain] = Node{children[i]}
	}
	return cfg, nil
}

func (d *Deriver) deriveAggregation(ctx context.Context, addr types.Address, p *path) (Config, error) {
	modules, threshold, err := d.reader.ReadAggregation(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("read aggregation ism %s: %w", addr, err)
	}

	children, err := batch.Map(ctx, d.limit, modules, func(ctx context.Context, module types.Address) (Config, error) {
		return d.derive(ctx, module, p)
	})
	if err != nil {
		return nil, fmt.Errorf("aggregation ism %s: %w", addr, err)
	}

	cfg := &AggregationConfig{Type: TypeAggregation, Threshold: threshold}
	for _, child := range children {
		cfg.Modules = append(cfg.Modules, Node{child})
	}
	return cfg, nil
}
