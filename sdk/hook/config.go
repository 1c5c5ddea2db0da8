// Package hook models post-dispatch hook configuration and provides offline
// validation plus on-chain derivation, mirroring the ism package.
package hook

import (
	"encoding/json"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"gopkg.in/yaml.v3"
)

// Config is one node of a hook configuration tree.
type Config interface {
	HookType() types.HookType
}

// MerkleTreeConfig inserts dispatched message ids into an incremental merkle tree.
type MerkleTreeConfig struct {
	Type types.HookType `yaml:"type" json:"type"`
}

func (c *MerkleTreeConfig) HookType() types.HookType { return types.HookTypeMerkleTree }

// OracleConfig prices gas on a remote domain. Amounts are decimal strings
// since exchange rates routinely exceed 64 bits.
type OracleConfig struct {
	TokenExchangeRate string `yaml:"tokenExchangeRate" json:"tokenExchangeRate"`
	GasPrice          string `yaml:"gasPrice" json:"gasPrice"`
}

// IGPConfig configures an interchain gas paymaster.
type IGPConfig struct {
	Type         types.HookType                `yaml:"type" json:"type"`
	Owner        string                        `yaml:"owner" json:"owner"`
	Beneficiary  string                        `yaml:"beneficiary" json:"beneficiary"`
	Overhead     map[types.Domain]uint64       `yaml:"overhead" json:"overhead"`
	OracleConfig map[types.Domain]OracleConfig `yaml:"oracleConfig" json:"oracleConfig"`
}

func (c *IGPConfig) HookType() types.HookType { return types.HookTypeIGP }

// ProtocolFeeConfig charges a flat fee per dispatch.
type ProtocolFeeConfig struct {
	Type           types.HookType `yaml:"type" json:"type"`
	Owner          string         `yaml:"owner" json:"owner"`
	Beneficiary    string         `yaml:"beneficiary" json:"beneficiary"`
	MaxProtocolFee string         `yaml:"maxProtocolFee" json:"maxProtocolFee"`
	ProtocolFee    string         `yaml:"protocolFee" json:"protocolFee"`
}

func (c *ProtocolFeeConfig) HookType() types.HookType { return types.HookTypeProtocolFee }

// AggregationConfig dispatches to every sub-hook.
type AggregationConfig struct {
	Type  types.HookType `yaml:"type" json:"type"`
	Hooks []Node         `yaml:"hooks" json:"hooks"`
}

func (c *AggregationConfig) HookType() types.HookType { return types.HookTypeAggregation }

// DomainRoutingConfig picks a sub-hook by destination domain, optionally
// falling back to a default hook for unrouted domains.
type DomainRoutingConfig struct {
	Type     types.HookType        `yaml:"type" json:"type"`
	Owner    string                `yaml:"owner" json:"owner"`
	Domains  map[types.Domain]Node `yaml:"domains" json:"domains"`
	Fallback *Node                 `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

func (c *DomainRoutingConfig) HookType() types.HookType { return types.HookTypeDomainRouting }

// PausableConfig is a no-op hook that can be paused by its owner.
type PausableConfig struct {
	Type   types.HookType `yaml:"type" json:"type"`
	Owner  string         `yaml:"owner" json:"owner"`
	Paused bool           `yaml:"paused,omitempty" json:"paused,omitempty"`
}

func (c *PausableConfig) HookType() types.HookType { return types.HookTypePausable }

// Node wraps a Config for polymorphic decoding by the "type" field.
type Node struct {
	Config
}

func newConfig(t types.HookType) (Config, error) {
	switch t {
	case types.HookTypeMerkleTree:
		return &MerkleTreeConfig{}, nil
	case types.HookTypeIGP:
		return &IGPConfig{}, nil
	case types.HookTypeProtocolFee:
		return &ProtocolFeeConfig{}, nil
	case types.HookTypeAggregation:
		return &AggregationConfig{}, nil
	case types.HookTypeDomainRouting:
		return &DomainRoutingConfig{}, nil
	case types.HookTypePausable:
		return &PausableConfig{}, nil
	}
	return nil, fmt.Errorf("unknown hook type %q", t)
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type types.HookType `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	cfg, err := newConfig(head.Type)
	if err != nil {
		return err
	}
	if err := value.Decode(cfg); err != nil {
		return err
	}
	n.Config = cfg
	return nil
}

func (n Node) MarshalYAML() (any, error) {
	return n.Config, nil
}

func (n *Node) UnmarshalJSON(b []byte) error {
	var head struct {
		Type types.HookType `json:"type"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	cfg, err := newConfig(head.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return err
	}
	n.Config = cfg
	return nil
}

func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Config)
}

// ParseConfig decodes a YAML document into a hook config tree.
func ParseConfig(b []byte) (Config, error) {
	var n Node
	if err := yaml.Unmarshal(b, &n); err != nil {
		return nil, fmt.Errorf("parse hook config: %w", err)
	}
	return n.Config, nil
}
