package evm

import (
	"context"
	"fmt"
	"sort"

	"github.com/celestiaorg/hyperlane-go/sdk/router"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Routers returns the remote routers enrolled on an EVM router contract.
func (p *Provider) Routers(ctx context.Context, addr types.Address) (map[types.Domain]types.Address, error) {
	out, err := p.call(ctx, addr, routerABI, "domains")
	if err != nil {
		return nil, err
	}
	domains := out[0].([]uint32)

	routes := make(map[types.Domain]types.Address, len(domains))
	for _, domain := range domains {
		out, err := p.call(ctx, addr, routerABI, "routers", domain)
		if err != nil {
			return nil, fmt.Errorf("router for domain %d: %w", domain, err)
		}
		remote := types.Address(out[0].([32]byte))
		if types.IsZeroAddress(remote) {
			continue
		}
		routes[types.Domain(domain)] = remote
	}
	return routes, nil
}

// Enroll enrolls the given remote routers in a single transaction.
func (p *Provider) Enroll(ctx context.Context, addr types.Address, routes map[types.Domain]types.Address) error {
	if len(routes) == 0 {
		return nil
	}

	domains := make([]types.Domain, 0, len(routes))
	for domain := range routes {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i] < domains[j] })

	rawDomains := make([]uint32, len(domains))
	rawRouters := make([][32]byte, len(domains))
	for i, domain := range domains {
		rawDomains[i] = uint32(domain)
		rawRouters[i] = routes[domain]
	}
	return p.transact(ctx, addr, routerABI, "enrollRemoteRouters", rawDomains, rawRouters)
}

// Unenroll removes the routers enrolled for the given domains.
func (p *Provider) Unenroll(ctx context.Context, addr types.Address, domains []types.Domain) error {
	if len(domains) == 0 {
		return nil
	}

	rawDomains := make([]uint32, len(domains))
	for i, domain := range domains {
		rawDomains[i] = uint32(domain)
	}
	return p.transact(ctx, addr, routerABI, "unenrollRemoteRouters", rawDomains)
}

var _ router.ReadWriter = (*Provider)(nil)
