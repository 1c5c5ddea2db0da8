// Package agent generates configuration files for off-chain agents (relayer,
// validator) from a chain registry and its deployed addresses.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/registry"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// RelayerConfig is the agent-facing config file model.
type RelayerConfig struct {
	Chains                  map[string]ChainConfig `json:"chains" yaml:"chains"`
	DefaultRpcConsensusType string                 `json:"defaultRpcConsensusType" yaml:"defaultRpcConsensusType"`
	RelayChains             string                 `json:"relayChains" yaml:"relayChains"`
}

// ChainConfig is one chain's section of the relayer config.
type ChainConfig struct {
	Blocks      *chains.BlockConfig `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	ChainID     any                 `json:"chainId" yaml:"chainId"`
	DisplayName string              `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	DomainID    types.Domain        `json:"domainId" yaml:"domainId"`
	IsTestnet   bool                `json:"isTestnet" yaml:"isTestnet"`
	Name        string              `json:"name" yaml:"name"`
	NativeToken *chains.NativeToken `json:"nativeToken,omitempty" yaml:"nativeToken,omitempty"`
	Protocol    types.ProtocolType  `json:"protocol" yaml:"protocol"`
	Signer      *SignerConfig       `json:"signer,omitempty" yaml:"signer,omitempty"`

	RpcURLs  []chains.Endpoint `json:"rpcUrls,omitempty" yaml:"rpcUrls,omitempty"`
	RestURLs []chains.Endpoint `json:"restUrls,omitempty" yaml:"restUrls,omitempty"`
	GrpcURLs []chains.Endpoint `json:"grpcUrls,omitempty" yaml:"grpcUrls,omitempty"`

	// deployed core contracts
	Mailbox                  string `json:"mailbox,omitempty" yaml:"mailbox,omitempty"`
	InterchainSecurityModule string `json:"interchainSecurityModule,omitempty" yaml:"interchainSecurityModule,omitempty"`
	InterchainGasPaymaster   string `json:"interchainGasPaymaster,omitempty" yaml:"interchainGasPaymaster,omitempty"`
	MerkleTreeHook           string `json:"merkleTreeHook,omitempty" yaml:"merkleTreeHook,omitempty"`
	ProxyAdmin               string `json:"proxyAdmin,omitempty" yaml:"proxyAdmin,omitempty"`
	ValidatorAnnounce        string `json:"validatorAnnounce,omitempty" yaml:"validatorAnnounce,omitempty"`

	// Cosmos-only fields
	Bech32Prefix         string           `json:"bech32Prefix,omitempty" yaml:"bech32Prefix,omitempty"`
	CanonicalAsset       string           `json:"canonicalAsset,omitempty" yaml:"canonicalAsset,omitempty"`
	ContractAddressBytes int              `json:"contractAddressBytes,omitempty" yaml:"contractAddressBytes,omitempty"`
	GasPrice             *chains.GasPrice `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"`
	Slip44               int              `json:"slip44,omitempty" yaml:"slip44,omitempty"`
}

// SignerConfig is the per-chain signing key block.
type SignerConfig struct {
	Type   string `json:"type" yaml:"type"`
	Key    string `json:"key" yaml:"key"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// BuildRelayerConfig generates a relayer config covering every chain in the
// registry. signerKeys maps chain names to raw signing keys; chains without a
// key get no signer block.
func BuildRelayerConfig(reg *registry.Registry, signerKeys map[string]string) (*RelayerConfig, error) {
	names := reg.ChainNames()

	config := &RelayerConfig{
		Chains:                  make(map[string]ChainConfig, len(names)),
		DefaultRpcConsensusType: "fallback",
		RelayChains:             strings.Join(names, ","),
	}

	for _, name := range names {
		entry, err := reg.Chain(name)
		if err != nil {
			return nil, err
		}
		meta := entry.Metadata
		if err := meta.Validate(); err != nil {
			return nil, fmt.Errorf("relayer config: %w", err)
		}

		cc := ChainConfig{
			ChainID:     meta.ChainID,
			DomainID:    meta.DomainID,
			Name:        meta.Name,
			DisplayName: meta.DisplayName,
			Protocol:    meta.Protocol,
			IsTestnet:   meta.IsTestnet,
			NativeToken: meta.NativeToken,
			Blocks:      meta.Blocks,
			RpcURLs:     meta.RpcURLs,
			Signer:      buildSignerConfig(meta, signerKeys[name]),
		}

		applyAddresses(&cc, entry.Addresses)

		if meta.Protocol == types.ProtocolCosmos {
			applyCosmosFields(&cc, meta)
		}

		config.Chains[name] = cc
	}

	return config, nil
}

// SerializeRelayerConfig converts the config to the JSON the agent consumes.
func SerializeRelayerConfig(config *RelayerConfig) ([]byte, error) {
	return json.MarshalIndent(config, "", "    ")
}

func buildSignerConfig(meta chains.Metadata, key string) *SignerConfig {
	if key == "" {
		return nil
	}

	signer := &SignerConfig{Key: key}
	switch meta.Protocol {
	case types.ProtocolCosmos:
		signer.Type = "cosmosKey"
		signer.Prefix = meta.Bech32Prefix
	default:
		signer.Type = "hexKey"
	}
	return signer
}

func applyAddresses(cc *ChainConfig, addrs registry.Addresses) {
	cc.Mailbox = addrs[registry.KeyMailbox]
	cc.InterchainSecurityModule = addrs[registry.KeyInterchainSecurityModule]
	cc.InterchainGasPaymaster = addrs[registry.KeyInterchainGasPaymaster]
	cc.MerkleTreeHook = addrs[registry.KeyMerkleTreeHook]
	cc.ProxyAdmin = addrs[registry.KeyProxyAdmin]
	cc.ValidatorAnnounce = addrs[registry.KeyValidatorAnnounce]
}

func applyCosmosFields(cc *ChainConfig, meta chains.Metadata) {
	cc.Bech32Prefix = meta.Bech32Prefix
	cc.CanonicalAsset = meta.CanonicalAsset
	cc.ContractAddressBytes = meta.ContractAddressBytes
	cc.Slip44 = meta.Slip44
	cc.GasPrice = meta.GasPrice
	cc.RestURLs = meta.RestURLs
	cc.GrpcURLs = meta.GrpcURLs
}
