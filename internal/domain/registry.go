package domain

import (
	"sort"
)

// UnknownContractName is used when a broadcast transaction has no contract name.
const UnknownContractName = "Unknown"

// BroadcastArtifact is one run-latest.json discovered under the broadcast directory.
type BroadcastArtifact struct {
	ScriptName string
	ChainID    uint64
	Path       string
}

// DeploymentRecord is a single contract creation extracted from a broadcast artifact.
// ContractAddress is never empty. TransactionHash and BlockNumber are nil when the
// source carried no hash or no receipt matched it.
type DeploymentRecord struct {
	ContractName    string
	ContractAddress string
	TransactionHash *string
	BlockNumber     *uint64
}

// Registry groups deployment records by chain, then by script.
type Registry struct {
	Chains map[uint64]*ChainEntry
}

// ChainEntry holds every script that deployed to one chain.
type ChainEntry struct {
	ChainID   uint64
	ChainName string

	// scriptOrder keeps scripts in first-seen order
	scriptOrder []string
	scripts     map[string][]DeploymentRecord
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{Chains: make(map[uint64]*ChainEntry)}
}

// Chain returns the entry for chainID, creating it with the given name if missing.
// The returned bool reports whether the entry was created.
func (r *Registry) Chain(chainID uint64, name func(uint64) string) (*ChainEntry, bool) {
	if entry, ok := r.Chains[chainID]; ok {
		return entry, false
	}
	entry := &ChainEntry{
		ChainID:   chainID,
		ChainName: name(chainID),
		scripts:   make(map[string][]DeploymentRecord),
	}
	r.Chains[chainID] = entry
	return entry, true
}

// ChainIDs returns the chain ids in ascending numeric order
func (r *Registry) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(r.Chains))
	for id := range r.Chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RecordCount returns the number of records across all chains and scripts
func (r *Registry) RecordCount() int {
	count := 0
	for _, chain := range r.Chains {
		for _, records := range chain.scripts {
			count += len(records)
		}
	}
	return count
}

// SetScript stores the records for a script. A script that is already present is
// replaced in place: re-running a script overwrites its previous broadcast.
func (c *ChainEntry) SetScript(scriptName string, records []DeploymentRecord) {
	if _, ok := c.scripts[scriptName]; !ok {
		c.scriptOrder = append(c.scriptOrder, scriptName)
	}
	c.scripts[scriptName] = records
}

// ScriptNames returns script names in first-seen order
func (c *ChainEntry) ScriptNames() []string {
	names := make([]string, len(c.scriptOrder))
	copy(names, c.scriptOrder)
	return names
}

// Records returns the records stored for a script
func (c *ChainEntry) Records(scriptName string) []DeploymentRecord {
	return c.scripts[scriptName]
}
