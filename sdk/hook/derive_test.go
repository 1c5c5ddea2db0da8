package hook

import (
	"context"
	"fmt"
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

type mockHook struct {
	kind        types.HookKind
	igp         IGPState
	protocolFee ProtocolFeeState
	hooks       []types.Address
	owner       types.Address
	routes      map[types.Domain]types.Address
	fallback    *types.Address
	paused      bool
}

type mockReader struct {
	hooks map[types.Address]mockHook
}

func (r *mockReader) lookup(addr types.Address) (mockHook, error) {
	h, ok := r.hooks[addr]
	if !ok {
		return mockHook{}, fmt.Errorf("no hook at %s", addr)
	}
	return h, nil
}

func (r *mockReader) HookKind(_ context.Context, addr types.Address) (types.HookKind, error) {
	h, err := r.lookup(addr)
	return h.kind, err
}

func (r *mockReader) ReadIGP(_ context.Context, addr types.Address) (IGPState, error) {
	h, err := r.lookup(addr)
	return h.igp, err
}

func (r *mockReader) ReadProtocolFee(_ context.Context, addr types.Address) (ProtocolFeeState, error) {
	h, err := r.lookup(addr)
	return h.protocolFee, err
}

func (r *mockReader) ReadAggregation(_ context.Context, addr types.Address) ([]types.Address, error) {
	h, err := r.lookup(addr)
	return h.hooks, err
}

func (r *mockReader) ReadRouting(_ context.Context, addr types.Address) (types.Address, map[types.Domain]types.Address, *types.Address, error) {
	h, err := r.lookup(addr)
	return h.owner, h.routes, h.fallback, err
}

func (r *mockReader) ReadPausable(_ context.Context, addr types.Address) (types.Address, bool, error) {
	h, err := r.lookup(addr)
	return h.owner, h.paused, err
}

func addr(t *testing.T, n byte) types.Address {
	t.Helper()
	var a types.Address
	a[31] = n
	return a
}

func TestDerive_AggregationOfMerkleAndIGP(t *testing.T) {
	aggAddr := addr(t, 1)
	merkleAddr := addr(t, 2)
	igpAddr := addr(t, 3)
	owner := addr(t, 9)

	reader := &mockReader{hooks: map[types.Address]mockHook{
		aggAddr:    {kind: types.HookKindAggregation, hooks: []types.Address{merkleAddr, igpAddr}},
		merkleAddr: {kind: types.HookKindMerkleTree},
		igpAddr: {
			kind: types.HookKindIGP,
			igp: IGPState{
				Owner:       owner,
				Beneficiary: owner,
				Overhead:    map[types.Domain]uint64{1000: 50000},
				Oracles: map[types.Domain]OracleConfig{
					1000: {TokenExchangeRate: "10", GasPrice: "1"},
				},
			},
		},
	}}

	cfg, err := NewDeriver(reader).Derive(context.Background(), aggAddr)
	require.NoError(t, err)

	agg, ok := cfg.(*AggregationConfig)
	require.True(t, ok)
	require.Len(t, agg.Hooks, 2)
	require.IsType(t, &MerkleTreeConfig{}, agg.Hooks[0].Config)

	igp, ok := agg.Hooks[1].Config.(*IGPConfig)
	require.True(t, ok)
	require.Equal(t, owner.String(), igp.Owner)
	require.Equal(t, uint64(50000), igp.Overhead[1000])

	require.NoError(t, Validate(cfg))
}

func TestDerive_FallbackRouting(t *testing.T) {
	routingAddr := addr(t, 1)
	merkleAddr := addr(t, 2)
	feeAddr := addr(t, 3)
	owner := addr(t, 9)
	fallback := merkleAddr

	reader := &mockReader{hooks: map[types.Address]mockHook{
		routingAddr: {
			kind:     types.HookKindFallbackRouting,
			owner:    owner,
			routes:   map[types.Domain]types.Address{2000: feeAddr},
			fallback: &fallback,
		},
		merkleAddr: {kind: types.HookKindMerkleTree},
		feeAddr: {
			kind: types.HookKindProtocolFee,
			protocolFee: ProtocolFeeState{
				Owner:          owner,
				Beneficiary:    owner,
				MaxProtocolFee: "100",
				ProtocolFee:    "1",
			},
		},
	}}

	cfg, err := NewDeriver(reader).Derive(context.Background(), routingAddr)
	require.NoError(t, err)

	routing, ok := cfg.(*DomainRoutingConfig)
	require.True(t, ok)
	require.Equal(t, owner.String(), routing.Owner)
	require.IsType(t, &ProtocolFeeConfig{}, routing.Domains[2000].Config)
	require.NotNil(t, routing.Fallback)
	require.IsType(t, &MerkleTreeConfig{}, routing.Fallback.Config)
}

func TestDerive_HookCycle(t *testing.T) {
	a := addr(t, 1)
	b := addr(t, 2)
	reader := &mockReader{hooks: map[types.Address]mockHook{
		a: {kind: types.HookKindAggregation, hooks: []types.Address{b}},
		b: {kind: types.HookKindAggregation, hooks: []types.Address{a}},
	}}

	_, err := NewDeriver(reader).Derive(context.Background(), a)
	require.ErrorContains(t, err, "cycle through hook")
}

func TestDerive_UnsupportedKind(t *testing.T) {
	a := addr(t, 1)
	reader := &mockReader{hooks: map[types.Address]mockHook{
		a: {kind: types.HookKindIDAuthISM},
	}}

	_, err := NewDeriver(reader).Derive(context.Background(), a)
	require.ErrorContains(t, err, "unsupported hook kind")
}
