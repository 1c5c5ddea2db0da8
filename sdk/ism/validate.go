package ism

import (
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Validate checks the protocol invariants of a config tree without any chain
// access: thresholds are positive and within bounds, addresses parse, and
// validator sets contain no duplicates.
func Validate(cfg Config) error {
	if cfg == nil {
		return fmt.Errorf("nil ism config")
	}

	switch c := cfg.(type) {
	case *MultisigConfig:
		return validateMultisig(c)
	case *RoutingConfig:
		return validateRouting(c)
	case *AggregationConfig:
		return validateAggregation(c)
	case *TrustedRelayerConfig:
		if err := validateAddress(c.Relayer); err != nil {
			return fmt.Errorf("trusted relayer: %w", err)
		}
		return nil
	case *PausableConfig:
		if err := validateAddress(c.Owner); err != nil {
			return fmt.Errorf("pausable ism owner: %w", err)
		}
		return nil
	case *TestConfig:
		return nil
	}
	return fmt.Errorf("unsupported ism config %T", cfg)
}

func validateMultisig(c *MultisigConfig) error {
	if c.Type != TypeMerkleRootMultisig && c.Type != TypeMessageIDMultisig {
		return fmt.Errorf("multisig ism: unexpected type %q", c.Type)
	}
	if len(c.Validators) == 0 {
		return fmt.Errorf("multisig ism: empty validator set")
	}
	if c.Threshold == 0 {
		return fmt.Errorf("multisig ism: threshold must be positive")
	}
	if int(c.Threshold) > len(c.Validators) {
		return fmt.Errorf("multisig ism: threshold %d exceeds validator count %d", c.Threshold, len(c.Validators))
	}

	seen := make(map[types.Address]struct{}, len(c.Validators))
	for _, v := range c.Validators {
		addr, err := types.ParseAddress(v)
		if err != nil {
			return fmt.Errorf("multisig ism validator: %w", err)
		}
		if types.IsZeroAddress(addr) {
			return fmt.Errorf("multisig ism: zero validator address")
		}
		if _, ok := seen[addr]; ok {
			return fmt.Errorf("multisig ism: duplicate validator %s", v)
		}
		seen[addr] = struct{}{}
	}
	return nil
}

func validateRouting(c *RoutingConfig) error {
	if err := validateAddress(c.Owner); err != nil {
		return fmt.Errorf("routing ism owner: %w", err)
	}
	for domain, node := range c.Domains {
		if domain == 0 {
			return fmt.Errorf("routing ism: zero domain route")
		}
		if err := Validate(node.Config); err != nil {
			return fmt.Errorf("routing ism domain %d: %w", domain, err)
		}
	}
	return nil
}

func validateAggregation(c *AggregationConfig) error {
	if len(c.Modules) == 0 {
		return fmt.Errorf("aggregation ism: no modules")
	}
	if c.Threshold == 0 {
		return fmt.Errorf("aggregation ism: threshold must be positive")
	}
	if int(c.Threshold) > len(c.Modules) {
		return fmt.Errorf("aggregation ism: threshold %d exceeds module count %d", c.Threshold, len(c.Modules))
	}
	for i, node := range c.Modules {
		if err := Validate(node.Config); err != nil {
			return fmt.Errorf("aggregation ism module %d: %w", i, err)
		}
	}
	return nil
}

func validateAddress(s string) error {
	addr, err := types.ParseAddress(s)
	if err != nil {
		return err
	}
	if types.IsZeroAddress(addr) {
		return fmt.Errorf("zero address")
	}
	return nil
}
