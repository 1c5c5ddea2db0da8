package ism

import (
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

const (
	validatorA = "0x05a9b5d099e1b9c16b2babc1ed23bd1ae9c95ba3"
	validatorB = "0x45e5c228b38e1cf09e9a3423ed0cf4862c4bf3de"
	validatorC = "0x6b1d09a97b813d53e9d4b7523da36604c0b52242"
	ownerAddr  = "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
)

func multisig(threshold uint8, validators ...string) *MultisigConfig {
	return &MultisigConfig{Type: TypeMessageIDMultisig, Validators: validators, Threshold: threshold}
}

func TestValidateMultisig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *MultisigConfig
		wantErr string
	}{
		{name: "valid", cfg: multisig(2, validatorA, validatorB, validatorC)},
		{name: "threshold equals count", cfg: multisig(3, validatorA, validatorB, validatorC)},
		{name: "zero threshold", cfg: multisig(0, validatorA), wantErr: "threshold must be positive"},
		{name: "threshold above count", cfg: multisig(3, validatorA, validatorB), wantErr: "threshold 3 exceeds validator count 2"},
		{name: "empty validators", cfg: multisig(1), wantErr: "empty validator set"},
		{name: "duplicate validator", cfg: multisig(1, validatorA, validatorA), wantErr: "duplicate validator"},
		{name: "zero validator", cfg: multisig(1, "0x0000000000000000000000000000000000000000"), wantErr: "zero validator address"},
		{name: "garbage validator", cfg: multisig(1, "not-an-address"), wantErr: "invalid address"},
		{
			name:    "wrong type tag",
			cfg:     &MultisigConfig{Type: TypeRouting, Validators: []string{validatorA}, Threshold: 1},
			wantErr: "unexpected type",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateAggregation(t *testing.T) {
	valid := &AggregationConfig{
		Type:      TypeAggregation,
		Threshold: 1,
		Modules: []Node{
			{multisig(1, validatorA)},
			{&TestConfig{Type: TypeTest}},
		},
	}
	require.NoError(t, Validate(valid))

	overThreshold := &AggregationConfig{
		Type:      TypeAggregation,
		Threshold: 3,
		Modules:   []Node{{multisig(1, validatorA)}},
	}
	require.ErrorContains(t, Validate(overThreshold), "threshold 3 exceeds module count 1")

	empty := &AggregationConfig{Type: TypeAggregation, Threshold: 1}
	require.ErrorContains(t, Validate(empty), "no modules")

	// invalid child surfaces with its position
	badChild := &AggregationConfig{
		Type:      TypeAggregation,
		Threshold: 1,
		Modules:   []Node{{multisig(0, validatorA)}},
	}
	require.ErrorContains(t, Validate(badChild), "aggregation ism module 0")
}

func TestValidateRouting(t *testing.T) {
	valid := &RoutingConfig{
		Type:  TypeRouting,
		Owner: ownerAddr,
		Domains: map[types.Domain]Node{
			1: {multisig(1, validatorA)},
			2: {&TrustedRelayerConfig{Type: TypeTrustedRelayer, Relayer: ownerAddr}},
		},
	}
	require.NoError(t, Validate(valid))

	noOwner := &RoutingConfig{Type: TypeRouting, Domains: map[types.Domain]Node{1: {multisig(1, validatorA)}}}
	require.ErrorContains(t, Validate(noOwner), "routing ism owner")

	zeroDomain := &RoutingConfig{Type: TypeRouting, Owner: ownerAddr, Domains: map[types.Domain]Node{0: {multisig(1, validatorA)}}}
	require.ErrorContains(t, Validate(zeroDomain), "zero domain route")

	badChild := &RoutingConfig{Type: TypeRouting, Owner: ownerAddr, Domains: map[types.Domain]Node{7: {multisig(9, validatorA)}}}
	require.ErrorContains(t, Validate(badChild), "routing ism domain 7")
}

func TestValidateNullVariants(t *testing.T) {
	require.NoError(t, Validate(&TestConfig{Type: TypeTest}))
	require.NoError(t, Validate(&PausableConfig{Type: TypePausable, Owner: ownerAddr}))
	require.ErrorContains(t, Validate(&PausableConfig{Type: TypePausable}), "pausable ism owner")
	require.ErrorContains(t, Validate(&TrustedRelayerConfig{Type: TypeTrustedRelayer}), "trusted relayer")
	require.ErrorContains(t, Validate(nil), "nil ism config")
}
