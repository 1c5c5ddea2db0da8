// Package registry reads and writes the on-disk chain registry layout:
// chains/<name>/metadata.yaml and chains/<name>/addresses.yaml.
package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"gopkg.in/yaml.v3"
)

// Well-known address keys used by core deployments.
const (
	KeyMailbox                  = "mailbox"
	KeyInterchainSecurityModule = "interchainSecurityModule"
	KeyInterchainGasPaymaster   = "interchainGasPaymaster"
	KeyMerkleTreeHook           = "merkleTreeHook"
	KeyProxyAdmin               = "proxyAdmin"
	KeyValidatorAnnounce        = "validatorAnnounce"
)

// ErrChainNotFound is returned when a chain has no registry entry.
var ErrChainNotFound = errors.New("chain not found in registry")

// Addresses maps well-known contract names to their deployed addresses.
type Addresses map[string]string

// Address parses the named contract address into canonical form.
func (a Addresses) Address(key string) (types.Address, error) {
	raw, ok := a[key]
	if !ok || raw == "" {
		return types.Address{}, fmt.Errorf("address %q not set", key)
	}
	return types.ParseAddress(raw)
}

// Entry is a chain's registry content: metadata plus deployed addresses.
type Entry struct {
	Metadata  chains.Metadata
	Addresses Addresses
}

// Registry is an in-memory view of a file registry.
type Registry struct {
	Chains map[string]*Entry
}

func New() *Registry {
	return &Registry{Chains: make(map[string]*Entry)}
}

// ChainNames returns the registered chain names, sorted.
func (r *Registry) ChainNames() []string {
	names := make([]string, 0, len(r.Chains))
	for name := range r.Chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the entry for a chain name.
func (r *Registry) Chain(name string) (*Entry, error) {
	entry, ok := r.Chains[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrChainNotFound, name)
	}
	return entry, nil
}

// Merge overlays other on top of r. Overlay chains win wholesale; address
// maps of shared chains are merged key by key with the overlay winning.
func (r *Registry) Merge(other *Registry) {
	for name, overlay := range other.Chains {
		existing, ok := r.Chains[name]
		if !ok {
			r.Chains[name] = overlay
			continue
		}
		existing.Metadata = overlay.Metadata
		if existing.Addresses == nil {
			existing.Addresses = make(Addresses)
		}
		for k, v := range overlay.Addresses {
			existing.Addresses[k] = v
		}
	}
}

// Load reads every chain entry under dir. Chains without an addresses file
// get an empty address map.
func Load(dir string) (*Registry, error) {
	chainsDir := filepath.Join(dir, "chains")
	entries, err := os.ReadDir(chainsDir)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry dir %s: %w", chainsDir, err)
	}

	reg := New()
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		entry, err := LoadChain(dir, ent.Name())
		if err != nil {
			return nil, err
		}
		reg.Chains[ent.Name()] = entry
	}
	return reg, nil
}

// LoadChain reads a single chain's metadata and addresses from dir.
func LoadChain(dir, name string) (*Entry, error) {
	chainDir := filepath.Join(dir, "chains", name)

	var meta chains.Metadata
	if err := readYAML(filepath.Join(chainDir, "metadata.yaml"), &meta); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChainNotFound, name)
		}
		return nil, fmt.Errorf("load %s metadata: %w", name, err)
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("registry entry %s: %w", name, err)
	}

	addrs := make(Addresses)
	if err := readYAML(filepath.Join(chainDir, "addresses.yaml"), &addrs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s addresses: %w", name, err)
	}

	return &Entry{Metadata: meta, Addresses: addrs}, nil
}

// Write persists every entry of the registry under dir.
func Write(dir string, reg *Registry) error {
	for name, entry := range reg.Chains {
		if err := WriteChain(dir, name, entry); err != nil {
			return err
		}
	}
	return nil
}

// WriteChain persists a single chain entry under dir.
func WriteChain(dir, name string, entry *Entry) error {
	chainDir := filepath.Join(dir, "chains", name)
	if err := os.MkdirAll(chainDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", chainDir, err)
	}

	if err := writeYAML(filepath.Join(chainDir, "metadata.yaml"), entry.Metadata); err != nil {
		return fmt.Errorf("write %s metadata: %w", name, err)
	}
	if len(entry.Addresses) > 0 {
		if err := writeYAML(filepath.Join(chainDir, "addresses.yaml"), entry.Addresses); err != nil {
			return fmt.Errorf("write %s addresses: %w", name, err)
		}
	}
	return nil
}

func readYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, in any) error {
	b, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}
