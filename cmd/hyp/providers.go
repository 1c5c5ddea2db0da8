package main

import (
	"context"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/core"
	"github.com/celestiaorg/hyperlane-go/sdk/ism"
	"github.com/celestiaorg/hyperlane-go/sdk/providers/cosmos"
	"github.com/celestiaorg/hyperlane-go/sdk/providers/evm"
	"github.com/celestiaorg/hyperlane-go/sdk/providers/sealevel"
	"github.com/celestiaorg/hyperlane-go/sdk/providers/starknet"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// ismReaderFor dials the chain and returns its security module read surface.
func (c *cliContext) ismReaderFor(ctx context.Context, meta chains.Metadata, origin types.Domain) (ism.ModuleReader, error) {
	switch meta.Protocol {
	case types.ProtocolEthereum:
		provider, err := evm.Dial(ctx, meta, evm.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider.ISMReader(), nil
	case types.ProtocolCosmos:
		provider, err := cosmos.Dial(ctx, meta, cosmos.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider.ISMReader(), nil
	case types.ProtocolStarknet:
		provider, err := starknet.Dial(ctx, meta, starknet.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider.ISMReader(), nil
	case types.ProtocolSealevel:
		provider, err := sealevel.Dial(ctx, meta,
			sealevel.WithLogger(c.logger),
			sealevel.WithOriginDomain(origin),
		)
		if err != nil {
			return nil, err
		}
		return provider.ISMReader(), nil
	}
	return nil, fmt.Errorf("chain %s: no provider for protocol %q", meta.Name, meta.Protocol)
}

// coreReaderFor dials the chain and returns its full core read surface.
// Sealevel chains only expose the ISM surface.
func (c *cliContext) coreReaderFor(ctx context.Context, meta chains.Metadata) (core.Reader, error) {
	switch meta.Protocol {
	case types.ProtocolEthereum:
		provider, err := evm.Dial(ctx, meta, evm.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider, nil
	case types.ProtocolCosmos:
		provider, err := cosmos.Dial(ctx, meta, cosmos.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider, nil
	case types.ProtocolStarknet:
		provider, err := starknet.Dial(ctx, meta, starknet.WithLogger(c.logger))
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
	return nil, fmt.Errorf("chain %s: core checks are not supported for protocol %q", meta.Name, meta.Protocol)
}
