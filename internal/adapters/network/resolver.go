package network

import (
	"fmt"
	"os"
	"sort"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
	"gopkg.in/yaml.v3"
)

// Resolver maps chain ids to display names and block explorers.
// The table is fixed once constructed.
type Resolver struct {
	networks map[uint64]domain.Network
}

// NewResolver creates a resolver over the default networks, with extra
// networks overriding defaults that share a chain id.
func NewResolver(extra ...domain.Network) *Resolver {
	r := &Resolver{
		networks: make(map[uint64]domain.Network),
	}
	for _, network := range DefaultNetworks() {
		r.networks[network.ChainID] = network
	}
	for _, network := range extra {
		r.networks[network.ChainID] = network
	}
	return r
}

// DefaultNetworks returns the well-known public networks
func DefaultNetworks() []domain.Network {
	return []domain.Network{
		{ChainID: 1, Name: "Mainnet", ExplorerURL: "https://etherscan.io"},
		{ChainID: 10, Name: "Optimism", ExplorerURL: "https://optimistic.etherscan.io"},
		{ChainID: 56, Name: "BSC", ExplorerURL: "https://bscscan.com"},
		{ChainID: 100, Name: "Gnosis", ExplorerURL: "https://gnosisscan.io"},
		{ChainID: 137, Name: "Polygon", ExplorerURL: "https://polygonscan.com"},
		{ChainID: 324, Name: "zkSync Era", ExplorerURL: "https://explorer.zksync.io"},
		{ChainID: 8453, Name: "Base", ExplorerURL: "https://basescan.org"},
		{ChainID: 31337, Name: "Anvil"},
		{ChainID: 42161, Name: "Arbitrum One", ExplorerURL: "https://arbiscan.io"},
		{ChainID: 43114, Name: "Avalanche", ExplorerURL: "https://snowtrace.io"},
		{ChainID: 59144, Name: "Linea", ExplorerURL: "https://lineascan.build"},
		{ChainID: 80002, Name: "Polygon Amoy", ExplorerURL: "https://amoy.polygonscan.com"},
		{ChainID: 81457, Name: "Blast", ExplorerURL: "https://blastscan.io"},
		{ChainID: 84532, Name: "Base Sepolia", ExplorerURL: "https://sepolia.basescan.org"},
		{ChainID: 421614, Name: "Arbitrum Sepolia", ExplorerURL: "https://sepolia.arbiscan.io"},
		{ChainID: 534351, Name: "Scroll Sepolia", ExplorerURL: "https://sepolia.scrollscan.com"},
		{ChainID: 534352, Name: "Scroll", ExplorerURL: "https://scrollscan.com"},
		{ChainID: 11155111, Name: "Sepolia", ExplorerURL: "https://sepolia.etherscan.io"},
		{ChainID: 11155420, Name: "Optimism Sepolia", ExplorerURL: "https://sepolia-optimism.etherscan.io"},
		{ChainID: 168587773, Name: "Blast Sepolia", ExplorerURL: "https://sepolia.blastscan.io"},
	}
}

// ChainName returns the display name for a chain, or "Chain <id>" when unknown
func (r *Resolver) ChainName(chainID uint64) string {
	if network, ok := r.networks[chainID]; ok && network.Name != "" {
		return network.Name
	}
	return fmt.Sprintf("Chain %d", chainID)
}

// ExplorerURL returns the block explorer base URL for a chain
func (r *Resolver) ExplorerURL(chainID uint64) (string, bool) {
	network, ok := r.networks[chainID]
	if !ok || network.ExplorerURL == "" {
		return "", false
	}
	return network.ExplorerURL, true
}

// Networks returns all configured networks ordered by chain id
func (r *Resolver) Networks() []domain.Network {
	networks := make([]domain.Network, 0, len(r.networks))
	for _, network := range r.networks {
		networks = append(networks, network)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i].ChainID < networks[j].ChainID })
	return networks
}

// networksFile is the YAML layout of a networks override file
type networksFile struct {
	Networks []domain.Network `yaml:"networks"`
}

// LoadNetworksFile reads extra networks from a YAML file
func LoadNetworksFile(path string) ([]domain.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks file: %w", err)
	}

	var file networksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse networks file %s: %w", path, err)
	}

	for i, network := range file.Networks {
		if network.ChainID == 0 {
			return nil, fmt.Errorf("networks file %s: entry %d has no chainId", path, i)
		}
	}

	return file.Networks, nil
}

// ProvideResolver creates the resolver for Wire, applying the configured networks file
func ProvideResolver(cfg *config.RuntimeConfig) (*Resolver, error) {
	if cfg.NetworksFile == "" {
		return NewResolver(), nil
	}
	extra, err := LoadNetworksFile(cfg.NetworksFile)
	if err != nil {
		return nil, err
	}
	return NewResolver(extra...), nil
}

// Ensure the resolver implements the interface
var _ usecase.ChainNameResolver = (*Resolver)(nil)
var _ usecase.NetworkCatalog = (*Resolver)(nil)
