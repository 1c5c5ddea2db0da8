package hook

import (
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

const (
	ownerAddr       = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
	beneficiaryAddr = "0x45e5c228b38e1cf09e9a3423ed0cf4862c4bf3de"
)

func validIGP() *IGPConfig {
	return &IGPConfig{
		Type:        types.HookTypeIGP,
		Owner:       ownerAddr,
		Beneficiary: beneficiaryAddr,
		Overhead:    map[types.Domain]uint64{1000: 50000},
		OracleConfig: map[types.Domain]OracleConfig{
			1000: {TokenExchangeRate: "10000000000", GasPrice: "1500000000"},
		},
	}
}

func TestValidateIGP(t *testing.T) {
	require.NoError(t, Validate(validIGP()))

	missingOracle := validIGP()
	missingOracle.Overhead[2000] = 30000
	require.ErrorContains(t, Validate(missingOracle), "overhead set for domain 2000 but no gas oracle")

	badGasPrice := validIGP()
	badGasPrice.OracleConfig[1000] = OracleConfig{TokenExchangeRate: "1", GasPrice: "not-a-number"}
	require.ErrorContains(t, Validate(badGasPrice), "gas price")

	negativeRate := validIGP()
	negativeRate.OracleConfig[1000] = OracleConfig{TokenExchangeRate: "-5", GasPrice: "1"}
	require.ErrorContains(t, Validate(negativeRate), "negative amount")

	noOwner := validIGP()
	noOwner.Owner = ""
	require.ErrorContains(t, Validate(noOwner), "igp owner")
}

func TestValidateProtocolFee(t *testing.T) {
	valid := &ProtocolFeeConfig{
		Type:           types.HookTypeProtocolFee,
		Owner:          ownerAddr,
		Beneficiary:    beneficiaryAddr,
		MaxProtocolFee: "1000000000000000000",
		ProtocolFee:    "200000000000000",
	}
	require.NoError(t, Validate(valid))

	overMax := *valid
	overMax.ProtocolFee = "2000000000000000000"
	require.ErrorContains(t, Validate(&overMax), "exceeds max fee")

	emptyFee := *valid
	emptyFee.ProtocolFee = ""
	require.ErrorContains(t, Validate(&emptyFee), "empty amount")
}

func TestValidateAggregation(t *testing.T) {
	valid := &AggregationConfig{
		Type: types.HookTypeAggregation,
		Hooks: []Node{
			{&MerkleTreeConfig{Type: types.HookTypeMerkleTree}},
			{validIGP()},
		},
	}
	require.NoError(t, Validate(valid))

	empty := &AggregationConfig{Type: types.HookTypeAggregation}
	require.ErrorContains(t, Validate(empty), "no hooks")

	badChild := &AggregationConfig{
		Type:  types.HookTypeAggregation,
		Hooks: []Node{{&PausableConfig{Type: types.HookTypePausable}}},
	}
	require.ErrorContains(t, Validate(badChild), "aggregation hook 0")
}

func TestValidateDomainRouting(t *testing.T) {
	valid := &DomainRoutingConfig{
		Type:  types.HookTypeDomainRouting,
		Owner: ownerAddr,
		Domains: map[types.Domain]Node{
			1000: {&MerkleTreeConfig{Type: types.HookTypeMerkleTree}},
		},
		Fallback: &Node{&MerkleTreeConfig{Type: types.HookTypeMerkleTree}},
	}
	require.NoError(t, Validate(valid))

	zeroDomain := &DomainRoutingConfig{
		Type:    types.HookTypeDomainRouting,
		Owner:   ownerAddr,
		Domains: map[types.Domain]Node{0: {&MerkleTreeConfig{Type: types.HookTypeMerkleTree}}},
	}
	require.ErrorContains(t, Validate(zeroDomain), "zero domain route")

	badFallback := &DomainRoutingConfig{
		Type:     types.HookTypeDomainRouting,
		Owner:    ownerAddr,
		Fallback: &Node{&PausableConfig{Type: types.HookTypePausable}},
	}
	require.ErrorContains(t, Validate(badFallback), "routing hook fallback")
}

func TestValidateNil(t *testing.T) {
	require.ErrorContains(t, Validate(nil), "nil hook config")
}
