package ism

import (
	"context"
	"fmt"
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

// mockModule describes one on-chain module for the mock reader.
type mockModule struct {
	moduleType types.ModuleType
	validators []types.Address
	threshold  uint8
	owner      types.Address
	routes     map[types.Domain]types.Address
	modules    []types.Address
	nullConfig Config
}

type mockReader struct {
	modules map[types.Address]mockModule
}

func (r *mockReader) lookup(addr types.Address) (mockModule, error) {
	m, ok := r.modules[addr]
	if !ok {
		return mockModule{}, fmt.Errorf("no module at %s", addr)
	}
	return m, nil
}

func (r *mockReader) ModuleType(_ context.Context, addr types.Address) (types.ModuleType, error) {
	m, err := r.lookup(addr)
	return m.moduleType, err
}

func (r *mockReader) ReadMultisig(_ context.Context, addr types.Address) ([]types.Address, uint8, error) {
	m, err := r.lookup(addr)
	return m.validators, m.threshold, err
}

func (r *mockReader) ReadRouting(_ context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, error) {
	m, err := r.lookup(addr)
	return m.owner, m.routes, err
}

func (r *mockReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, uint8, error) {
	m, err := r.lookup(addr)
	return m.modules, m.threshold, err
}

func (r *mockReader) ReadNull(_ context.Context, addr types.Address) (Config, error) {
	m, err := r.lookup(addr)
	return m.nullConfig, err
}

func addr(t *testing.T, n byte) types.Address {
	t.Helper()
	var a types.Address
	a[31] = n
	return a
}

func TestDerive_NestedTree(t *testing.T) {
	rootAddr := addr(t, 1)
	aggAddr := addr(t, 2)
	multisigAddr := addr(t, 3)
	nullAddr := addr(t, 4)
	owner := addr(t, 9)
	validator := addr(t, 10)

	reader := &mockReader{modules: map[types.Address]mockModule{
		rootAddr: {
			moduleType: types.ModuleTypeRouting,
			owner:      owner,
			routes: map[types.Domain]types.Address{
				1000: aggAddr,
				2000: multisigAddr,
			},
		},
		aggAddr: {
			moduleType: types.ModuleTypeAggregation,
			modules:    []types.Address{multisigAddr, nullAddr},
			threshold:  1,
		},
		multisigAddr: {
			moduleType: types.ModuleTypeMessageIDMultisig,
			validators: []types.Address{validator},
			threshold:  1,
		},
		nullAddr: {
			moduleType: types.ModuleTypeNull,
			nullConfig: &TestConfig{Type: TypeTest},
		},
	}}

	cfg, err := NewDeriver(reader).Derive(context.Background(), rootAddr)
	require.NoError(t, err)

	routing, ok := cfg.(*RoutingConfig)
	require.True(t, ok)
	require.Equal(t, owner.String(), routing.Owner)
	require.Len(t, routing.Domains, 2)

	agg, ok := routing.Domains[1000].Config.(*AggregationConfig)
	require.True(t, ok)
	require.Equal(t, uint8(1), agg.Threshold)
	require.Len(t, agg.Modules, 2)

	ms, ok := agg.Modules[0].Config.(*MultisigConfig)
	require.True(t, ok)
	require.Equal(t, TypeMessageIDMultisig, ms.Type)
	require.Equal(t, []string{validator.String()}, ms.Validators)

	_, ok = agg.Modules[1].Config.(*TestConfig)
	require.True(t, ok)

	// the derived tree passes offline validation
	require.NoError(t, Validate(cfg))
}

func TestDerive_MerkleRootVariant(t *testing.T) {
	msAddr := addr(t, 1)
	reader := &mockReader{modules: map[types.Address]mockModule{
		msAddr: {
			moduleType: types.ModuleTypeMerkleRootMultisig,
			validators: []types.Address{addr(t, 10)},
			threshold:  1,
		},
	}}

	cfg, err := NewDeriver(reader).Derive(context.Background(), msAddr)
	require.NoError(t, err)
	require.Equal(t, TypeMerkleRootMultisig, cfg.ConfigType())
}

func TestDerive_LegacyMultisigUnsupported(t *testing.T) {
	// the legacy variant has no config representation and is never
	// derived as one of the current multisig types
	msAddr := addr(t, 1)
	reader := &mockReader{modules: map[types.Address]mockModule{
		msAddr: {
			moduleType: types.ModuleTypeLegacyMultisig,
			validators: []types.Address{addr(t, 10)},
			threshold:  1,
		},
	}}

	_, err := NewDeriver(reader).Derive(context.Background(), msAddr)
	require.ErrorContains(t, err, "unsupported module type")
}

func TestDerive_CycleDetected(t *testing.T) {
	a := addr(t, 1)
	b := addr(t, 2)
	reader := &mockReader{modules: map[types.Address]mockModule{
		a: {moduleType: types.ModuleTypeAggregation, modules: []types.Address{b}, threshold: 1},
		b: {moduleType: types.ModuleTypeRouting, owner: addr(t, 9), routes: map[types.Domain]types.Address{1: a}},
	}}

	_, err := NewDeriver(reader).Derive(context.Background(), a)
	require.ErrorContains(t, err, "cycle through module")
}

func TestDerive_DiamondIsNotACycle(t *testing.T) {
	// the same multisig referenced from two sibling branches is fine
	root := addr(t, 1)
	shared := addr(t, 2)
	reader := &mockReader{modules: map[types.Address]mockModule{
		root: {
			moduleType: types.ModuleTypeAggregation,
			modules:    []types.Address{shared, shared},
			threshold:  2,
		},
		shared: {
			moduleType: types.ModuleTypeMessageIDMultisig,
			validators: []types.Address{addr(t, 10)},
			threshold:  1,
		},
	}}

	cfg, err := NewDeriver(reader).Derive(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, cfg.(*AggregationConfig).Modules, 2)
}

func TestDerive_DepthCap(t *testing.T) {
	// each aggregation wraps the next, deeper than the cap allows
	reader := &mockReader{modules: map[types.Address]mockModule{}}
	const depth = 5
	for i := byte(1); i <= depth; i++ {
		reader.modules[addr(t, i)] = mockModule{
			moduleType: types.ModuleTypeAggregation,
			modules:    []types.Address{addr(t, i+1)},
			threshold:  1,
		}
	}
	reader.modules[addr(t, depth+1)] = mockModule{
		moduleType: types.ModuleTypeMessageIDMultisig,
		validators: []types.Address{addr(t, 100)},
		threshold:  1,
	}

	_, err := NewDeriver(reader, WithMaxDepth(3)).Derive(context.Background(), addr(t, 1))
	require.ErrorContains(t, err, "exceeds depth 3")

	_, err = NewDeriver(reader).Derive(context.Background(), addr(t, 1))
	require.NoError(t, err)
}

func TestDerive_ZeroAddress(t *testing.T) {
	reader := &mockReader{modules: map[types.Address]mockModule{}}
	_, err := NewDeriver(reader).Derive(context.Background(), types.Address{})
	require.ErrorContains(t, err, "zero module address")
}

func TestDerive_ReaderErrorWraps(t *testing.T) {
	root := addr(t, 1)
	reader := &mockReader{modules: map[types.Address]mockModule{
		root: {moduleType: types.ModuleTypeAggregation, modules: []types.Address{addr(t, 2)}, threshold: 1},
	}}

	_, err := NewDeriver(reader).Derive(context.Background(), root)
	require.ErrorContains(t, err, "no module at")
}
