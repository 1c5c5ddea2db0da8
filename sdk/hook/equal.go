package hook

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Equal reports whether two hook config trees describe the same on-chain
// setup. Addresses are compared in canonical form and amounts numerically.
func Equal(a, b Config) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch ca := a.(type) {
	case *MerkleTreeConfig:
		_, ok := b.(*MerkleTreeConfig)
		return ok
	case *IGPConfig:
		cb, ok := b.(*IGPConfig)
		if !ok || !sameAddress(ca.Owner, cb.Owner) || !sameAddress(ca.Beneficiary, cb.Beneficiary) {
			return false
		}
		if len(ca.Overhead) != len(cb.Overhead) || len(ca.OracleConfig) != len(cb.OracleConfig) {
			return false
		}
		for domain, v := range ca.Overhead {
			if cb.Overhead[domain] != v {
				return false
			}
		}
		for domain, oa := range ca.OracleConfig {
			ob, ok := cb.OracleConfig[domain]
			if !ok || !sameAmount(oa.GasPrice, ob.GasPrice) || !sameAmount(oa.TokenExchangeRate, ob.TokenExchangeRate) {
				return false
			}
		}
		return true
	case *ProtocolFeeConfig:
		cb, ok := b.(*ProtocolFeeConfig)
		return ok &&
			sameAddress(ca.Owner, cb.Owner) &&
			sameAddress(ca.Beneficiary, cb.Beneficiary) &&
			sameAmount(ca.MaxProtocolFee, cb.MaxProtocolFee) &&
			sameAmount(ca.ProtocolFee, cb.ProtocolFee)
	case *AggregationConfig:
		cb, ok := b.(*AggregationConfig)
		if !ok || len(ca.Hooks) != len(cb.Hooks) {
			return false
		}
		for i := range ca.Hooks {
			if !Equal(ca.Hooks[i].Config, cb.Hooks[i].Config) {
				return false
			}
		}
		return true
	case *DomainRoutingConfig:
		cb, ok := b.(*DomainRoutingConfig)
		if !ok || !sameAddress(ca.Owner, cb.Owner) || len(ca.Domains) != len(cb.Domains) {
			return false
		}
		for domain, na := range ca.Domains {
			nb, ok := cb.Domains[domain]
			if !ok || !Equal(na.Config, nb.Config) {
				return false
			}
		}
		if (ca.Fallback == nil) != (cb.Fallback == nil) {
			return false
		}
		if ca.Fallback != nil && !Equal(ca.Fallback.Config, cb.Fallback.Config) {
			return false
		}
		return true
	case *PausableConfig:
		cb, ok := b.(*PausableConfig)
		return ok && sameAddress(ca.Owner, cb.Owner) && ca.Paused == cb.Paused
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

func sameAmount(a, b string) bool {
	na, okA := math.NewIntFromString(a)
	nb, okB := math.NewIntFromString(b)
	if !okA || !okB {
		return a == b
	}
	return na.Equal(nb)
}
