package usecase

import (
	"github.com/trebuchet-org/treb-addresses/internal/domain"
)

// ArtifactRecords pairs an artifact with the records extracted from it
type ArtifactRecords struct {
	Artifact domain.BroadcastArtifact
	Records  []domain.DeploymentRecord
}

// BuildRegistry folds extraction results into a registry, in the order given.
//
// Results without records are skipped, so every chain and script in the registry
// has at least one record. When the same (chain, script) pair appears twice the
// later result replaces the earlier one; records are never concatenated. The
// resolver is called once per distinct chain id.
func BuildRegistry(results []ArtifactRecords, names ChainNameResolver) *domain.Registry {
	registry := domain.NewRegistry()

	for _, result := range results {
		if len(result.Records) == 0 {
			continue
		}
		chain, _ := registry.Chain(result.Artifact.ChainID, names.ChainName)
		chain.SetScript(result.Artifact.ScriptName, result.Records)
	}

	return registry
}

// chainNameCache memoizes a resolver for the duration of one run
type chainNameCache struct {
	resolver ChainNameResolver
	names    map[uint64]string
}

func newChainNameCache(resolver ChainNameResolver) *chainNameCache {
	return &chainNameCache{
		resolver: resolver,
		names:    make(map[uint64]string),
	}
}

func (c *chainNameCache) ChainName(chainID uint64) string {
	if name, ok := c.names[chainID]; ok {
		return name
	}
	name := c.resolver.ChainName(chainID)
	c.names[chainID] = name
	return name
}
