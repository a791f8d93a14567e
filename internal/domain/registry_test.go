package domain_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
)

func chainLabel(id uint64) string {
	return fmt.Sprintf("Chain %d", id)
}

func TestRegistryChain(t *testing.T) {
	registry := domain.NewRegistry()

	entry, created := registry.Chain(137, chainLabel)
	assert.True(t, created)
	assert.Equal(t, "Chain 137", entry.ChainName)

	again, created := registry.Chain(137, func(uint64) string { return "ignored" })
	assert.False(t, created)
	assert.Same(t, entry, again)
	assert.Equal(t, "Chain 137", again.ChainName)
}

func TestRegistryChainIDsAscending(t *testing.T) {
	registry := domain.NewRegistry()
	for _, id := range []uint64{137, 1, 56, 11155111, 10} {
		registry.Chain(id, chainLabel)
	}
	assert.Equal(t, []uint64{1, 10, 56, 137, 11155111}, registry.ChainIDs())
}

func TestChainEntrySetScript(t *testing.T) {
	registry := domain.NewRegistry()
	entry, _ := registry.Chain(1, chainLabel)

	first := []domain.DeploymentRecord{{ContractName: "A", ContractAddress: "0x01"}}
	second := []domain.DeploymentRecord{{ContractName: "B", ContractAddress: "0x02"}}
	replacement := []domain.DeploymentRecord{{ContractName: "C", ContractAddress: "0x03"}}

	entry.SetScript("Deploy.s.sol", first)
	entry.SetScript("Upgrade.s.sol", second)
	entry.SetScript("Deploy.s.sol", replacement)

	assert.Equal(t, []string{"Deploy.s.sol", "Upgrade.s.sol"}, entry.ScriptNames())
	assert.Equal(t, replacement, entry.Records("Deploy.s.sol"))
	assert.Equal(t, 2, registry.RecordCount())

	names := entry.ScriptNames()
	names[0] = "mutated"
	assert.Equal(t, "Deploy.s.sol", entry.ScriptNames()[0])
}

func TestArtifactError(t *testing.T) {
	cause := fmt.Errorf("unexpected end of JSON input")
	err := &domain.ArtifactError{Path: "broadcast/Deploy.s.sol/1/run-latest.json", Err: cause}

	assert.Equal(t, "error reading broadcast/Deploy.s.sol/1/run-latest.json: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, cause)
}
