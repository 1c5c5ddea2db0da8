package chains

import (
	"testing"

	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

func validMetadata() Metadata {
	return Metadata{
		Name:     "rethlocal",
		ChainID:  1234,
		DomainID: 1234,
		Protocol: types.ProtocolEthereum,
		RpcURLs:  []Endpoint{{HTTP: "http://reth:8545"}},
	}
}

func TestMetadataValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Metadata)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(m *Metadata) {},
		},
		{
			name:    "uppercase name",
			mutate:  func(m *Metadata) { m.Name = "RethLocal" },
			wantErr: "invalid chain name",
		},
		{
			name:    "zero domain",
			mutate:  func(m *Metadata) { m.DomainID = 0 },
			wantErr: "domain id must be nonzero",
		},
		{
			name:    "unknown protocol",
			mutate:  func(m *Metadata) { m.Protocol = "movevm" },
			wantErr: "unknown protocol",
		},
		{
			name:    "no rpc urls",
			mutate:  func(m *Metadata) { m.RpcURLs = nil },
			wantErr: "at least one rpc url required",
		},
		{
			name: "cosmos without bech32 prefix",
			mutate: func(m *Metadata) {
				m.Protocol = types.ProtocolCosmos
				m.Bech32Prefix = ""
			},
			wantErr: "bech32 prefix required",
		},
		{
			name: "explorer missing family",
			mutate: func(m *Metadata) {
				m.BlockExplorers = []BlockExplorer{{Name: "scan", URL: "https://scan.io"}}
			},
			wantErr: "needs url and family",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := validMetadata()
			tc.mutate(&m)
			err := m.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestExplorer_PrefersApiKey(t *testing.T) {
	m := validMetadata()
	m.BlockExplorers = []BlockExplorer{
		{Name: "first", URL: "https://first.io", Family: FamilyBlockscout},
		{Name: "keyed", URL: "https://keyed.io", Family: FamilyEtherscan, ApiKey: "abc"},
	}

	e, err := m.Explorer()
	require.NoError(t, err)
	require.Equal(t, "keyed", e.Name)
}

func TestExplorer_FallsBackToFirst(t *testing.T) {
	m := validMetadata()
	m.BlockExplorers = []BlockExplorer{
		{Name: "first", URL: "https://first.io", Family: FamilyBlockscout},
		{Name: "second", URL: "https://second.io", Family: FamilyEtherscan},
	}

	e, err := m.Explorer()
	require.NoError(t, err)
	require.Equal(t, "first", e.Name)
}

func TestTxAndAddressURLs(t *testing.T) {
	m := validMetadata()
	m.BlockExplorers = []BlockExplorer{
		{Name: "scan", URL: "https://scan.io", Family: FamilyEtherscan},
	}

	txURL, err := m.TxURL("0xabc")
	require.NoError(t, err)
	require.Equal(t, "https://scan.io/tx/0xabc", txURL)

	addrURL, err := m.AddressURL("0xdef")
	require.NoError(t, err)
	require.Equal(t, "https://scan.io/address/0xdef", addrURL)
}

func TestAddressURL_Voyager(t *testing.T) {
	m := validMetadata()
	m.Protocol = types.ProtocolStarknet
	m.BlockExplorers = []BlockExplorer{
		{Name: "voyager", URL: "https://voyager.online", Family: FamilyVoyager},
	}

	addrURL, err := m.AddressURL("0x1")
	require.NoError(t, err)
	require.Equal(t, "https://voyager.online/contract/0x1", addrURL)
}

func TestApiURL(t *testing.T) {
	m := validMetadata()

	m.BlockExplorers = []BlockExplorer{
		{Name: "scan", URL: "https://scan.io", ApiURL: "https://scan.io/api/v2", Family: FamilyBlockscout},
	}
	u, err := m.ApiURL()
	require.NoError(t, err)
	require.Equal(t, "https://scan.io/api/v2", u)

	// etherscan family derives the conventional api subdomain
	m.BlockExplorers = []BlockExplorer{
		{Name: "scan", URL: "https://scan.io", Family: FamilyEtherscan},
	}
	u, err = m.ApiURL()
	require.NoError(t, err)
	require.Equal(t, "https://api.scan.io/api", u)

	// no api url available
	m.BlockExplorers = []BlockExplorer{
		{Name: "scan", URL: "https://scan.io", Family: FamilyOther},
	}
	_, err = m.ApiURL()
	require.ErrorContains(t, err, "no api url")
}
