package router

import (
	"context"
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

type mockReadWriter struct {
	routers    map[types.Domain]types.Address
	enrolled   []map[types.Domain]types.Address
	unenrolled [][]types.Domain
}

func (m *mockReadWriter) Routers(_ context.Context, _ types.Address) (map[types.Domain]types.Address, error) {
	return m.routers, nil
}

func (m *mockReadWriter) Enroll(_ context.Context, _ types.Address, routes map[types.Domain]types.Address) error {
	m.enrolled = append(m.enrolled, routes)
	for domain, addr := range routes {
		m.routers[domain] = addr
	}
	return nil
}

func (m *mockReadWriter) Unenroll(_ context.Context, _ types.Address, domains []types.Domain) error {
	m.unenrolled = append(m.unenrolled, domains)
	for _, domain := range domains {
		delete(m.routers, domain)
	}
	return nil
}

func testAddr(n byte) types.Address {
	var a types.Address
	a[31] = n
	return a
}

func TestCheck(t *testing.T) {
	rw := &mockReadWriter{routers: map[types.Domain]types.Address{
		1: testAddr(1),
		2: testAddr(2),
		3: testAddr(3),
	}}
	client := NewClient(rw, nil)

	cfg := Config{Routers: map[types.Domain]types.Address{
		1: testAddr(1),  // enrolled as desired
		2: testAddr(22), // mismatched
		4: testAddr(4),  // missing
	}}

	diff, err := client.Check(context.Background(), testAddr(100), cfg)
	require.NoError(t, err)
	require.False(t, diff.Empty())
	require.Equal(t, map[types.Domain]types.Address{4: testAddr(4)}, diff.Missing)
	require.Equal(t, map[types.Domain]types.Address{2: testAddr(22)}, diff.Mismatched)
	require.Equal(t, []types.Domain{3}, diff.Extraneous)
}

func TestApply_Reconciles(t *testing.T) {
	rw := &mockReadWriter{routers: map[types.Domain]types.Address{
		2: testAddr(2),
		3: testAddr(3),
	}}
	client := NewClient(rw, nil)

	cfg := Config{Routers: map[types.Domain]types.Address{
		1: testAddr(1),
		2: testAddr(22),
	}}

	require.NoError(t, client.Apply(context.Background(), testAddr(100), cfg))
	require.Len(t, rw.enrolled, 1)
	require.Len(t, rw.unenrolled, 1)

	// state now matches, a second apply is a no-op
	diff, err := client.Check(context.Background(), testAddr(100), cfg)
	require.NoError(t, err)
	require.True(t, diff.Empty())

	require.NoError(t, client.Apply(context.Background(), testAddr(100), cfg))
	require.Len(t, rw.enrolled, 1)
	require.Len(t, rw.unenrolled, 1)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, Config{Routers: map[types.Domain]types.Address{1: testAddr(1)}}.Validate())
	require.ErrorContains(t, Config{Routers: map[types.Domain]types.Address{0: testAddr(1)}}.Validate(), "zero domain")
	require.ErrorContains(t, Config{Routers: map[types.Domain]types.Address{1: {}}}.Validate(), "zero router for domain 1")
}
