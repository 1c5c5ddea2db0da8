package chains

import (
	"fmt"
	"net/url"
	"strings"
)

// ExplorerFamily identifies the API flavor of a block explorer.
type ExplorerFamily string

const (
	FamilyEtherscan  ExplorerFamily = "etherscan"
	FamilyBlockscout ExplorerFamily = "blockscout"
	FamilyRoutescan  ExplorerFamily = "routescan"
	FamilyVoyager    ExplorerFamily = "voyager"
	FamilyOther      ExplorerFamily = "other"
)

// Explorer selects the preferred block explorer for a chain: the first entry
// carrying an API key, falling back to the first entry.
func (m Metadata) Explorer() (BlockExplorer, error) {
	if len(m.BlockExplorers) == 0 {
		return BlockExplorer{}, fmt.Errorf("chain %s: no block explorers configured", m.Name)
	}
	for _, e := range m.BlockExplorers {
		if e.ApiKey != "" {
			return e, nil
		}
	}
	return m.BlockExplorers[0], nil
}

// TxURL returns the browser URL for a transaction hash.
func (m Metadata) TxURL(txHash string) (string, error) {
	e, err := m.Explorer()
	if err != nil {
		return "", err
	}
	return joinExplorerPath(e.URL, "tx", txHash)
}

// AddressURL returns the browser URL for an account or contract.
func (m Metadata) AddressURL(address string) (string, error) {
	e, err := m.Explorer()
	if err != nil {
		return "", err
	}
	segment := "address"
	if e.Family == FamilyVoyager {
		segment = "contract"
	}
	return joinExplorerPath(e.URL, segment, address)
}

// ApiURL returns the machine API endpoint of the preferred explorer. For
// etherscan-family explorers without an explicit apiUrl, the conventional
// api subdomain is derived from the browser URL.
func (m Metadata) ApiURL() (string, error) {
	e, err := m.Explorer()
	if err != nil {
		return "", err
	}
	if e.ApiURL != "" {
		return e.ApiURL, nil
	}
	if e.Family == FamilyEtherscan {
		u, err := url.Parse(e.URL)
		if err != nil {
			return "", fmt.Errorf("chain %s: invalid explorer url %q: %w", m.Name, e.URL, err)
		}
		u.Host = "api." + u.Host
		u.Path = "/api"
		return u.String(), nil
	}
	return "", fmt.Errorf("chain %s: explorer %q has no api url", m.Name, e.Name)
}

func joinExplorerPath(base string, segments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid explorer url %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.Join(segments, "/")
	return u.String(), nil
}
