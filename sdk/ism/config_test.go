package ism

import (
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const nestedConfigYAML = `
type: routing
owner: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045"
domains:
  1000:
    type: aggregation
    threshold: 1
    modules:
      - type: messageIdMultisig
        threshold: 1
        validators:
          - "0x05a9b5d099e1b9c16b2babc1ed23bd1ae9c95ba3"
      - type: test
  2000:
    type: merkleRootMultisig
    threshold: 2
    validators:
      - "0x05a9b5d099e1b9c16b2babc1ed23bd1ae9c95ba3"
      - "0x45e5c228b38e1cf09e9a3423ed0cf4862c4bf3de"
`

func TestParseConfig_Nested(t *testing.T) {
	cfg, err := ParseConfig([]byte(nestedConfigYAML))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	routing, ok := cfg.(*RoutingConfig)
	require.True(t, ok)
	require.Len(t, routing.Domains, 2)

	agg, ok := routing.Domains[1000].Config.(*AggregationConfig)
	require.True(t, ok)
	require.Len(t, agg.Modules, 2)
	require.Equal(t, types.ModuleTypeAggregation, agg.ModuleType())

	ms, ok := routing.Domains[2000].Config.(*MultisigConfig)
	require.True(t, ok)
	require.Equal(t, types.ModuleTypeMerkleRootMultisig, ms.ModuleType())
	require.Equal(t, uint8(2), ms.Threshold)
}

func TestParseConfig_UnknownType(t *testing.T) {
	_, err := ParseConfig([]byte("type: optimisticIsm\n"))
	require.ErrorContains(t, err, `unknown ism type "optimisticIsm"`)
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg, err := ParseConfig([]byte(nestedConfigYAML))
	require.NoError(t, err)

	out, err := yaml.Marshal(Node{cfg})
	require.NoError(t, err)

	again, err := ParseConfig(out)
	require.NoError(t, err)
	require.True(t, Equal(cfg, again))
}
