package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// ExplorerLookup returns the block explorer base URL for a chain
type ExplorerLookup interface {
	ExplorerURL(chainID uint64) (string, bool)
}

// MarkdownRenderer renders the registry as the narrative deployed-addresses.md
type MarkdownRenderer struct {
	explorers ExplorerLookup
}

// NewMarkdownRenderer creates a new markdown renderer
func NewMarkdownRenderer(explorers ExplorerLookup) *MarkdownRenderer {
	return &MarkdownRenderer{explorers: explorers}
}

// Extension returns the file extension of the rendered document
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Render writes one section per chain in ascending chain id order and one
// subsection per script in registry order.
func (r *MarkdownRenderer) Render(registry *domain.Registry, generatedAt time.Time) ([]byte, error) {
	var b bytes.Buffer

	fmt.Fprintln(&b, "# Deployed Contract Addresses")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Generated on: %s\n", generatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "This file contains the latest deployed smart contract addresses from the broadcast folder.")
	fmt.Fprintln(&b)

	chainIDs := registry.ChainIDs()
	if len(chainIDs) == 0 {
		fmt.Fprintln(&b, "No deployments found.")
	}

	for _, chainID := range chainIDs {
		chain := registry.Chains[chainID]
		fmt.Fprintf(&b, "## %s (Chain ID: %d)\n", chain.ChainName, chainID)
		fmt.Fprintln(&b)

		for _, script := range chain.ScriptNames() {
			fmt.Fprintf(&b, "### %s\n", script)
			fmt.Fprintln(&b)

			for _, record := range chain.Records(script) {
				r.writeRecord(&b, chainID, record)
				fmt.Fprintln(&b)
			}
		}
	}

	return append(bytes.TrimRight(b.Bytes(), "\n"), '\n'), nil
}

func (r *MarkdownRenderer) writeRecord(b *bytes.Buffer, chainID uint64, record domain.DeploymentRecord) {
	fmt.Fprintf(b, "- **%s**: `%s`\n", record.ContractName, record.ContractAddress)
	if record.TransactionHash != nil {
		fmt.Fprintf(b, "  - Transaction Hash: `%s`\n", *record.TransactionHash)
	}
	if record.BlockNumber != nil {
		fmt.Fprintf(b, "  - Block Number: `%d`\n", *record.BlockNumber)
	}
	if url, ok := r.addressURL(chainID, record.ContractAddress); ok {
		fmt.Fprintf(b, "  - Explorer: <%s>\n", url)
	}
}

// addressURL links EVM addresses only; other address formats use different explorer paths
func (r *MarkdownRenderer) addressURL(chainID uint64, address string) (string, bool) {
	if r.explorers == nil || !common.IsHexAddress(address) {
		return "", false
	}
	base, ok := r.explorers.ExplorerURL(chainID)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s/address/%s", base, address), true
}

// Ensure the renderer implements the interface
var _ usecase.NarrativeRenderer = (*MarkdownRenderer)(nil)
