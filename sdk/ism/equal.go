package ism

import (
	"strings"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Equal reports whether two config trees describe the same on-chain setup.
// Addresses are compared in canonical form, so a 20-byte EVM spelling matches
// its padded 32-byte spelling. Multisig validator sets are order-insensitive;
// aggregation module order is significant because it is significant on-chain.
func Equal(a, b Config) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch ca := a.(type) {
	case *MultisigConfig:
		cb, ok := b.(*MultisigConfig)
		if !ok || ca.Type != cb.Type || ca.Threshold != cb.Threshold {
			return false
		}
		return sameAddressSet(ca.Validators, cb.Validators)
	case *RoutingConfig:
		cb, ok := b.(*RoutingConfig)
		if !ok || !sameAddress(ca.Owner, cb.Owner) || len(ca.Domains) != len(cb.Domains) {
			return false
		}
		for domain, na := range ca.Domains {
			nb, ok := cb.Domains[domain]
			if !ok || !Equal(na.Config, nb.Config) {
				return false
			}
		}
		return true
	case *AggregationConfig:
		cb, ok := b.(*AggregationConfig)
		if !ok || ca.Threshold != cb.Threshold || len(ca.Modules) != len(cb.Modules) {
			return false
		}
		for i := range ca.Modules {
			if !Equal(ca.Modules[i].Config, cb.Modules[i].Config) {
				return false
			}
		}
		return true
	case *TrustedRelayerConfig:
		cb, ok := b.(*TrustedRelayerConfig)
		return ok && sameAddress(ca.Relayer, cb.Relayer)
	case *PausableConfig:
		cb, ok := b.(*PausableConfig)
		return ok && sameAddress(ca.Owner, cb.Owner) && ca.Paused == cb.Paused
	case *TestConfig:
		_, ok := b.(*TestConfig)
		return ok
	}
	return false
}

func sameAddress(a, b string) bool {
	pa, errA := types.ParseAddress(a)
	pb, errB := types.ParseAddress(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return pa == pb
}

func sameAddressSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[types.Address]int, len(a))
	for _, s := range a {
		addr, err := types.ParseAddress(s)
		if err != nil {
			return false
		}
		set[addr]++
	}
	for _, s := range b {
		addr, err := types.ParseAddress(s)
		if err != nil {
			return false
		}
		set[addr]--
		if set[addr] < 0 {
			return false
		}
	}
	return true
}
