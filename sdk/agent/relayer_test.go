package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/registry"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	reg.Chains = map[string]*registry.Entry{
		"sepolia": {
			Metadata: chains.Metadata{
				Name:     "sepolia",
				ChainID:  11155111,
				DomainID: 11155111,
				Protocol: types.ProtocolEthereum,
				RpcURLs:  []chains.Endpoint{{HTTP: "https://rpc.sepolia.org"}},
			},
			Addresses: registry.Addresses{
				registry.KeyMailbox:        "0xfFAEF09B3cd11D9b20d1a19bECca54EEC2884766",
				registry.KeyMerkleTreeHook: "0x4917a9746A7B6E0A57159cCb7F5a6744247f2d0d",
			},
		},
		"celestia": {
			Metadata: chains.Metadata{
				Name:         "celestia",
				ChainID:      "celestia-1",
				DomainID:     69420,
				Protocol:     types.ProtocolCosmos,
				Bech32Prefix: "celestia",
				Slip44:       118,
				GasPrice:     &chains.GasPrice{Denom: "utia", Amount: "0.2"},
				RpcURLs:      []chains.Endpoint{{HTTP: "http://rpc.celestia.test:26657"}},
				GrpcURLs:     []chains.Endpoint{{HTTP: "http://grpc.celestia.test:9090"}},
			},
			Addresses: registry.Addresses{
				registry.KeyMailbox: "0x68797065726c616e650000000000000000000000000000000000000000000000",
			},
		},
	}
	return reg
}

func TestBuildRelayerConfig(t *testing.T) {
	reg := testRegistry(t)

	config, err := BuildRelayerConfig(reg, map[string]string{
		"sepolia":  "0xdeadbeef",
		"celestia": "0xc0ffee",
	})
	require.NoError(t, err)
	require.Len(t, config.Chains, 2)
	require.Equal(t, "celestia,sepolia", config.RelayChains)
	require.Equal(t, "fallback", config.DefaultRpcConsensusType)

	sepolia := config.Chains["sepolia"]
	require.Equal(t, types.ProtocolEthereum, sepolia.Protocol)
	require.Equal(t, "0xfFAEF09B3cd11D9b20d1a19bECca54EEC2884766", sepolia.Mailbox)
	require.Equal(t, "0x4917a9746A7B6E0A57159cCb7F5a6744247f2d0d", sepolia.MerkleTreeHook)
	require.NotNil(t, sepolia.Signer)
	require.Equal(t, "hexKey", sepolia.Signer.Type)
	require.Equal(t, "0xdeadbeef", sepolia.Signer.Key)
	require.Empty(t, sepolia.Bech32Prefix)

	celestia := config.Chains["celestia"]
	require.Equal(t, types.ProtocolCosmos, celestia.Protocol)
	require.Equal(t, "celestia", celestia.Bech32Prefix)
	require.Equal(t, 118, celestia.Slip44)
	require.NotNil(t, celestia.GasPrice)
	require.Equal(t, "utia", celestia.GasPrice.Denom)
	require.Len(t, celestia.GrpcURLs, 1)
	require.NotNil(t, celestia.Signer)
	require.Equal(t, "cosmosKey", celestia.Signer.Type)
	require.Equal(t, "celestia", celestia.Signer.Prefix)
}

func TestBuildRelayerConfigNoSigner(t *testing.T) {
	reg := testRegistry(t)

	config, err := BuildRelayerConfig(reg, nil)
	require.NoError(t, err)
	require.Nil(t, config.Chains["sepolia"].Signer)
	require.Nil(t, config.Chains["celestia"].Signer)
}

func TestBuildRelayerConfigInvalidMetadata(t *testing.T) {
	reg := registry.New()
	reg.Chains = map[string]*registry.Entry{
		"bad": {Metadata: chains.Metadata{Name: "bad"}},
	}

	_, err := BuildRelayerConfig(reg, nil)
	require.Error(t, err)
}

func TestSerializeRelayerConfig(t *testing.T) {
	reg := testRegistry(t)

	config, err := BuildRelayerConfig(reg, nil)
	require.NoError(t, err)

	raw, err := SerializeRelayerConfig(config)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "chains")
	require.Contains(t, decoded, "relayChains")

	chainsSection := decoded["chains"].(map[string]any)
	sepolia := chainsSection["sepolia"].(map[string]any)
	require.NotContains(t, sepolia, "signer")
	require.NotContains(t, sepolia, "bech32Prefix")
}
