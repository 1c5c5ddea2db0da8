// Package router manages remote router enrollment for application routers:
// reading the enrolled routers of a deployed contract, diffing them against a
// desired config and applying the difference.
package router

import (
	"context"
	"fmt"
	"sort"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"go.uber.org/zap"
)

// Config maps remote domains to the router address enrolled for them.
type Config struct {
	Routers map[types.Domain]types.Address
}

// Validate rejects zero domains and zero router addresses.
func (c Config) Validate() error {
	for domain, addr := range c.Routers {
		if domain == 0 {
			return fmt.Errorf("router config: zero domain")
		}
		if types.IsZeroAddress(addr) {
			return fmt.Errorf("router config: zero router for domain %d", domain)
		}
	}
	return nil
}

// ReadWriter is the per-protocol surface for router contracts.
type ReadWriter interface {
	// Routers returns the enrolled remote routers.
	Routers(ctx context.Context, router types.Address) (map[types.Domain]types.Address, error)
	// Enroll enrolls remote routers for the given domains.
	Enroll(ctx context.Context, router types.Address, routes map[types.Domain]types.Address) error
	// Unenroll removes the routers enrolled for the given domains.
	Unenroll(ctx context.Context, router types.Address, domains []types.Domain) error
}

// Diff is the difference between a desired config and the on-chain state.
type Diff struct {
	// Missing domains have no router enrolled but one is desired.
	Missing map[types.Domain]types.Address
	// Mismatched domains have a different router enrolled than desired.
	Mismatched map[types.Domain]types.Address
	// Extraneous domains are enrolled on-chain but absent from the config.
	Extraneous []types.Domain
}

// Empty reports whether the on-chain state already matches the config.
func (d Diff) Empty() bool {
	return len(d.Missing) == 0 && len(d.Mismatched) == 0 && len(d.Extraneous) == 0
}

// Client reconciles router enrollment against a desired config.
type Client struct {
	rw     ReadWriter
	logger *zap.Logger
}

func NewClient(rw ReadWriter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{rw: rw, logger: logger}
}

// Check computes the enrollment diff for router against cfg.
func (c *Client) Check(ctx context.Context, router types.Address, cfg Config) (Diff, error) {
	if err := cfg.Validate(); err != nil {
		return Diff{}, err
	}
	onchain, err := c.rw.Routers(ctx, router)
	if err != nil {
		return Diff{}, fmt.Errorf("read enrolled routers of %s: %w", router, err)
	}

	diff := Diff{
		Missing:    make(map[types.Domain]types.Address),
		Mismatched: make(map[types.Domain]types.Address),
	}
	for domain, want := range cfg.Routers {
		got, ok := onchain[domain]
		switch {
		case !ok:
			diff.Missing[domain] = want
		case got != want:
			diff.Mismatched[domain] = want
		}
	}
	for domain := range onchain {
		if _, ok := cfg.Routers[domain]; !ok {
			diff.Extraneous = append(diff.Extraneous, domain)
		}
	}
	sort.Slice(diff.Extraneous, func(i, j int) bool { return diff.Extraneous[i] < diff.Extraneous[j] })
	return diff, nil
}

// Apply reconciles the on-chain enrollment with cfg. Missing and mismatched
// routers are enrolled; extraneous ones are unenrolled.
func (c *Client) Apply(ctx context.Context, router types.Address, cfg Config) error {
	diff, err := c.Check(ctx, router, cfg)
	if err != nil {
		return err
	}
	if diff.Empty() {
		c.logger.Debug("router enrollment up to date", zap.String("router", router.String()))
		return nil
	}

	enroll := make(map[types.Domain]types.Address, len(diff.Missing)+len(diff.Mismatched))
	for domain, addr := range diff.Missing {
		enroll[domain] = addr
	}
	for domain, addr := range diff.Mismatched {
		enroll[domain] = addr
	}
	if len(enroll) > 0 {
		c.logger.Info("enrolling remote routers",
			zap.String("router", router.String()),
			zap.Int("count", len(enroll)),
		)
		if err := c.rw.Enroll(ctx, router, enroll); err != nil {
			return fmt.Errorf("enroll remote routers on %s: %w", router, err)
		}
	}

	if len(diff.Extraneous) > 0 {
		c.logger.Info("unenrolling extraneous routers",
			zap.String("router", router.String()),
			zap.Int("count", len(diff.Extraneous)),
		)
		if err := c.rw.Unenroll(ctx, router, diff.Extraneous); err != nil {
			return fmt.Errorf("unenroll routers on %s: %w", router, err)
		}
	}
	return nil
}
