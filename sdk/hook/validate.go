package hook

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// Validate checks a hook config tree without any chain access.
func Validate(cfg Config) error {
	if cfg == nil {
		return fmt.Errorf("nil hook config")
	}

	switch c := cfg.(type) {
	case *MerkleTreeConfig:
		return nil
	case *IGPConfig:
		return validateIGP(c)
	case *ProtocolFeeConfig:
		return validateProtocolFee(c)
	case *AggregationConfig:
		if len(c.Hooks) == 0 {
			return fmt.Errorf("aggregation hook: no hooks")
		}
		for i, node := range c.Hooks {
			if err := Validate(node.Config); err != nil {
				return fmt.Errorf("aggregation hook %d: %w", i, err)
			}
		}
		return nil
	case *DomainRoutingConfig:
		return validateDomainRouting(c)
	case *PausableConfig:
		if err := validateAddress(c.Owner); err != nil {
			return fmt.Errorf("pausable hook owner: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported hook config %T", cfg)
}

func validateIGP(c *IGPConfig) error {
	if err := validateAddress(c.Owner); err != nil {
		return fmt.Errorf("igp owner: %w", err)
	}
	if err := validateAddress(c.Beneficiary); err != nil {
		return fmt.Errorf("igp beneficiary: %w", err)
	}
	// every destination with an overhead needs a configured oracle
	for domain := range c.Overhead {
		if _, ok := c.OracleConfig[domain]; !ok {
			return fmt.Errorf("igp: overhead set for domain %d but no gas oracle configured", domain)
		}
	}
	for domain, oracle := range c.OracleConfig {
		if domain == 0 {
			return fmt.Errorf("igp: zero destination domain")
		}
		if _, err := parseAmount(oracle.GasPrice); err != nil {
			return fmt.Errorf("igp oracle for domain %d: gas price: %w", domain, err)
		}
		if _, err := parseAmount(oracle.TokenExchangeRate); err != nil {
			return fmt.Errorf("igp oracle for domain %d: token exchange rate: %w", domain, err)
		}
	}
	return nil
}

func validateProtocolFee(c *ProtocolFeeConfig) error {
	if err := validateAddress(c.Owner); err != nil {
		return fmt.Errorf("protocol fee owner: %w", err)
	}
	if err := validateAddress(c.Beneficiary); err != nil {
		return fmt.Errorf("protocol fee beneficiary: %w", err)
	}
	maxFee, err := parseAmount(c.MaxProtocolFee)
	if err != nil {
		return fmt.Errorf("protocol fee: max fee: %w", err)
	}
	fee, err := parseAmount(c.ProtocolFee)
	if err != nil {
		return fmt.Errorf("protocol fee: fee: %w", err)
	}
	if fee.GT(maxFee) {
		return fmt.Errorf("protocol fee %s exceeds max fee %s", fee, maxFee)
	}
	return nil
}

func validateDomainRouting(c *DomainRoutingConfig) error {
	if err := validateAddress(c.Owner); err != nil {
		return fmt.Errorf("routing hook owner: %w", err)
	}
	for domain, node := range c.Domains {
		if domain == 0 {
			return fmt.Errorf("routing hook: zero domain route")
		}
		if err := Validate(node.Config); err != nil {
			return fmt.Errorf("routing hook domain %d: %w", domain, err)
		}
	}
	if c.Fallback != nil {
		if err := Validate(c.Fallback.Config); err != nil {
			return fmt.Errorf("routing hook fallback: %w", err)
		}
	}
	return nil
}

func parseAmount(s string) (math.Int, error) {
	if s == "" {
		return math.Int{}, fmt.Errorf("empty amount")
	}
	n, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	if n.IsNegative() {
		return math.Int{}, fmt.Errorf("negative amount %q", s)
	}
	return n, nil
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
