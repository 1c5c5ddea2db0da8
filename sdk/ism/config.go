// Package ism models interchain security module configuration as a tree and
// provides offline validation plus on-chain derivation of that tree.
package ism

import (
	"encoding/json"
	"fmt"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"gopkg.in/yaml.v3"
)

// ConfigType is the string discriminant used in config files.
type ConfigType string

const (
	TypeMerkleRootMultisig ConfigType = "merkleRootMultisig"
	TypeMessageIDMultisig  ConfigType = "messageIdMultisig"
	TypeRouting            ConfigType = "routing"
	TypeAggregation        ConfigType = "aggregation"
	TypeTrustedRelayer     ConfigType = "trustedRelayer"
	TypePausable           ConfigType = "pausable"
	TypeTest               ConfigType = "test"
)

// Config is one node of an ISM configuration tree.
type Config interface {
	ConfigType() ConfigType
	ModuleType() types.ModuleType
}

// MultisigConfig is a validator set with a signing threshold. The variant
// (merkle root vs message id) decides which checkpoint part is attested.
type MultisigConfig struct {
	Type       ConfigType `yaml:"type" json:"type"`
	Validators []string   `yaml:"validators" json:"validators"`
	Threshold  uint8      `yaml:"threshold" json:"threshold"`
}

func (c *MultisigConfig) ConfigType() ConfigType { return c.Type }

func (c *MultisigConfig) ModuleType() types.ModuleType {
	if c.Type == TypeMerkleRootMultisig {
		return types.ModuleTypeMerkleRootMultisig
	}
	return types.ModuleTypeMessageIDMultisig
}

// RoutingConfig delegates verification to a different module per origin domain.
type RoutingConfig struct {
	Type    ConfigType            `yaml:"type" json:"type"`
	Owner   string                `yaml:"owner" json:"owner"`
	Domains map[types.Domain]Node `yaml:"domains" json:"domains"`
}

func (c *RoutingConfig) ConfigType() ConfigType       { return c.Type }
func (c *RoutingConfig) ModuleType() types.ModuleType { return types.ModuleTypeRouting }

// AggregationConfig requires a threshold of sub-modules to verify.
type AggregationConfig struct {
	Type      ConfigType `yaml:"type" json:"type"`
	Modules   []Node     `yaml:"modules" json:"modules"`
	Threshold uint8      `yaml:"threshold" json:"threshold"`
}

func (c *AggregationConfig) ConfigType() ConfigType       { return c.Type }
func (c *AggregationConfig) ModuleType() types.ModuleType { return types.ModuleTypeAggregation }

// TrustedRelayerConfig accepts any message delivered by a single relayer.
type TrustedRelayerConfig struct {
	Type    ConfigType `yaml:"type" json:"type"`
	Relayer string     `yaml:"relayer" json:"relayer"`
}

func (c *TrustedRelayerConfig) ConfigType() ConfigType       { return c.Type }
func (c *TrustedRelayerConfig) ModuleType() types.ModuleType { return types.ModuleTypeNull }

// PausableConfig accepts everything unless paused by its owner.
type PausableConfig struct {
	Type   ConfigType `yaml:"type" json:"type"`
	Owner  string     `yaml:"owner" json:"owner"`
	Paused bool       `yaml:"paused,omitempty" json:"paused,omitempty"`
}

func (c *PausableConfig) ConfigType() ConfigType       { return c.Type }
func (c *PausableConfig) ModuleType() types.ModuleType { return types.ModuleTypeNull }

// TestConfig accepts everything. Test deployments only.
type TestConfig struct {
	Type ConfigType `yaml:"type" json:"type"`
}

func (c *TestConfig) ConfigType() ConfigType       { return c.Type }
func (c *TestConfig) ModuleType() types.ModuleType { return types.ModuleTypeNull }

// Node wraps a Config so that nested modules can be decoded polymorphically
// from YAML and JSON by their "type" field.
type Node struct {
	Config
}

func newConfig(t ConfigType) (Config, error) {
	switch t {
	case TypeMerkleRootMultisig, TypeMessageIDMultisig:
		return &MultisigConfig{}, nil
	case TypeRouting:
		return &RoutingConfig{}, nil
	case TypeAggregation:
		return &AggregationConfig{}, nil
	case TypeTrustedRelayer:
		return &TrustedRelayerConfig{}, nil
	case TypePausable:
		return &PausableConfig{}, nil
	case TypeTest:
		return &TestConfig{}, nil
	}
	return nil, fmt.Errorf("unknown ism type %q", t)
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type ConfigType `yaml:"type"`
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
		Type ConfigType `json:"type"`
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

// ParseConfig decodes a YAML document into an ISM config tree.
func ParseConfig(b []byte) (Config, error) {
	var n Node
	if err := yaml.Unmarshal(b, &n); err != nil {
		return nil, fmt.Errorf("parse ism config: %w", err)
	}
	return n.Config, nil
}
