package chains

import (
	"fmt"
	"regexp"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
)

// chain names are lowercase alphanumeric, as required by the registry layout.
var nameRe = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Metadata describes a chain well enough for providers, agents and the
// registry. Field names follow the on-disk registry formats.
type Metadata struct {
	Name        string             `yaml:"name" json:"name"`
	ChainID     any                `yaml:"chainId" json:"chainId"`
	DomainID    types.Domain       `yaml:"domainId" json:"domainId"`
	DisplayName string             `yaml:"displayName,omitempty" json:"displayName,omitempty"`
	Protocol    types.ProtocolType `yaml:"protocol" json:"protocol"`
	IsTestnet   bool               `yaml:"isTestnet,omitempty" json:"isTestnet,omitempty"`
	NativeToken *NativeToken       `yaml:"nativeToken,omitempty" json:"nativeToken,omitempty"`

	RpcURLs  []Endpoint `yaml:"rpcUrls" json:"rpcUrls"`
	RestURLs []Endpoint `yaml:"restUrls,omitempty" json:"restUrls,omitempty"`
	GrpcURLs []Endpoint `yaml:"grpcUrls,omitempty" json:"grpcUrls,omitempty"`

	Blocks         *BlockConfig    `yaml:"blocks,omitempty" json:"blocks,omitempty"`
	BlockExplorers []BlockExplorer `yaml:"blockExplorers,omitempty" json:"blockExplorers,omitempty"`

	// Cosmos-specific fields
	Bech32Prefix         string    `yaml:"bech32Prefix,omitempty" json:"bech32Prefix,omitempty"`
	CanonicalAsset       string    `yaml:"canonicalAsset,omitempty" json:"canonicalAsset,omitempty"`
	ContractAddressBytes int       `yaml:"contractAddressBytes,omitempty" json:"contractAddressBytes,omitempty"`
	GasPrice             *GasPrice `yaml:"gasPrice,omitempty" json:"gasPrice,omitempty"`
	Slip44               int       `yaml:"slip44,omitempty" json:"slip44,omitempty"`
}

type NativeToken struct {
	Name     string `yaml:"name" json:"name"`
	Symbol   string `yaml:"symbol" json:"symbol"`
	Decimals int    `yaml:"decimals" json:"decimals"`
	Denom    string `yaml:"denom,omitempty" json:"denom,omitempty"`
}

type BlockConfig struct {
	Confirmations     int `yaml:"confirmations" json:"confirmations"`
	EstimateBlockTime int `yaml:"estimateBlockTime" json:"estimateBlockTime"`
	ReorgPeriod       int `yaml:"reorgPeriod" json:"reorgPeriod"`
}

type GasPrice struct {
	Denom  string `yaml:"denom" json:"denom"`
	Amount string `yaml:"amount" json:"amount"`
}

type Endpoint struct {
	HTTP string `yaml:"http" json:"http"`
}

type BlockExplorer struct {
	Name   string         `yaml:"name" json:"name"`
	URL    string         `yaml:"url" json:"url"`
	ApiURL string         `yaml:"apiUrl,omitempty" json:"apiUrl,omitempty"`
	ApiKey string         `yaml:"apiKey,omitempty" json:"apiKey,omitempty"`
	Family ExplorerFamily `yaml:"family" json:"family"`
}

// Validate checks that the metadata is complete enough for the SDK to use.
func (m Metadata) Validate() error {
	if !nameRe.MatchString(m.Name) {
		return fmt.Errorf("invalid chain name %q: must be lowercase alphanumeric", m.Name)
	}
	if m.DomainID == 0 {
		return fmt.Errorf("chain %s: domain id must be nonzero", m.Name)
	}
	if !m.Protocol.Valid() {
		return fmt.Errorf("chain %s: unknown protocol %q", m.Name, m.Protocol)
	}
	if len(m.RpcURLs) == 0 {
		return fmt.Errorf("chain %s: at least one rpc url required", m.Name)
	}
	for i, e := range m.RpcURLs {
		if e.HTTP == "" {
			return fmt.Errorf("chain %s: rpc url %d is empty", m.Name, i)
		}
	}
	if m.Protocol == types.ProtocolCosmos && m.Bech32Prefix == "" {
		return fmt.Errorf("chain %s: bech32 prefix required for cosmos chains", m.Name)
	}
	for _, e := range m.BlockExplorers {
		if e.URL == "" || e.Family == "" {
			return fmt.Errorf("chain %s: block explorer %q needs url and family", m.Name, e.Name)
		}
	}
	return nil
}
