package types

import "fmt"

// Domain is a Hyperlane domain identifier. Domains are globally unique per
// deployment and are not always equal to the chain id of the underlying chain.
type Domain uint32

// ProtocolType identifies the virtual machine family a chain runs on.
type ProtocolType string

const (
	ProtocolEthereum ProtocolType = "ethereum"
	ProtocolCosmos   ProtocolType = "cosmosnative"
	ProtocolSealevel ProtocolType = "sealevel"
	ProtocolStarknet ProtocolType = "starknet"
)

// KnownProtocols lists every protocol the SDK has a provider for.
func KnownProtocols() []ProtocolType {
	return []ProtocolType{ProtocolEthereum, ProtocolCosmos, ProtocolSealevel, ProtocolStarknet}
}

// Valid reports whether p is a protocol the SDK knows about.
func (p ProtocolType) Valid() bool {
	switch p {
	case ProtocolEthereum, ProtocolCosmos, ProtocolSealevel, ProtocolStarknet:
		return true
	}
	return false
}

// ModuleType mirrors the uint8 discriminant returned by the on-chain
// moduleType() view of every interchain security module.
type ModuleType uint8

const (
	ModuleTypeUnused ModuleType = iota
	ModuleTypeRouting
	ModuleTypeAggregation
	ModuleTypeLegacyMultisig
	ModuleTypeMerkleRootMultisig
	ModuleTypeMessageIDMultisig
	ModuleTypeNull
	ModuleTypeCcipRead
)

func (m ModuleType) String() string {
	switch m {
	case ModuleTypeUnused:
		return "unused"
	case ModuleTypeRouting:
		return "routing"
	case ModuleTypeAggregation:
		return "aggregation"
	case ModuleTypeLegacyMultisig:
		return "legacyMultisig"
	case ModuleTypeMerkleRootMultisig:
		return "merkleRootMultisig"
	case ModuleTypeMessageIDMultisig:
		return "messageIdMultisig"
	case ModuleTypeNull:
		return "null"
	case ModuleTypeCcipRead:
		return "ccipRead"
	}
	return fmt.Sprintf("moduleType(%d)", uint8(m))
}

// HookType identifies a post-dispatch hook variant.
type HookType string

const (
	HookTypeMerkleTree    HookType = "merkleTreeHook"
	HookTypeIGP           HookType = "interchainGasPaymaster"
	HookTypeProtocolFee   HookType = "protocolFee"
	HookTypeAggregation   HookType = "aggregationHook"
	HookTypeDomainRouting HookType = "domainRoutingHook"
	HookTypePausable      HookType = "pausableHook"
)

// HookKind mirrors the uint8 discriminant returned by the on-chain hookType()
// view of every post-dispatch hook.
type HookKind uint8

const (
	HookKindUnused HookKind = iota
	HookKindRouting
	HookKindAggregation
	HookKindMerkleTree
	HookKindIGP
	HookKindFallbackRouting
	HookKindIDAuthISM
	HookKindPausable
	HookKindProtocolFee
)

func (k HookKind) String() string {
	switch k {
	case HookKindUnused:
		return "unused"
	case HookKindRouting:
		return "routing"
	case HookKindAggregation:
		return "aggregation"
	case HookKindMerkleTree:
		return "merkleTree"
	case HookKindIGP:
		return "interchainGasPaymaster"
	case HookKindFallbackRouting:
		return "fallbackRouting"
	case HookKindIDAuthISM:
		return "idAuthIsm"
	case HookKindPausable:
		return "pausable"
	case HookKindProtocolFee:
		return "protocolFee"
	}
	return fmt.Sprintf("hookKind(%d)", uint8(k))
}
