package render

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// JSONRenderer renders the registry as the structured deployed-addresses.json.
//
// Contracts are flattened by name per chain, dropping the script grouping: when two
// scripts deploy a contract with the same name to the same chain, the script
// processed later wins. The markdown document keeps both.
type JSONRenderer struct{}

// NewJSONRenderer creates a new JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type structuredDocument struct {
	GeneratedAt string         `json:"generated_at"`
	Chains      chainDocuments `json:"chains"`
}

type chainDocument struct {
	chainID   uint64
	ChainName string                      `json:"chain_name"`
	Contracts map[string]contractDocument `json:"contracts"`
}

type contractDocument struct {
	Address         string  `json:"address"`
	TransactionHash *string `json:"transaction_hash"`
	BlockNumber     *uint64 `json:"block_number"`
}

// chainDocuments marshals as an object keyed by chain id, in slice order
type chainDocuments []chainDocument

func (c chainDocuments) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, chain := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(strconv.FormatUint(chain.chainID, 10))
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(chain)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(body)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Extension returns the file extension of the rendered document
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Render produces an indented document with chains in ascending chain id order
func (r *JSONRenderer) Render(registry *domain.Registry, generatedAt time.Time) ([]byte, error) {
	doc := structuredDocument{
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Chains:      make(chainDocuments, 0, len(registry.Chains)),
	}

	for _, chainID := range registry.ChainIDs() {
		chain := registry.Chains[chainID]
		entry := chainDocument{
			chainID:   chainID,
			ChainName: chain.ChainName,
			Contracts: make(map[string]contractDocument),
		}
		for _, script := range chain.ScriptNames() {
			for _, record := range chain.Records(script) {
				entry.Contracts[record.ContractName] = contractDocument{
					Address:         record.ContractAddress,
					TransactionHash: record.TransactionHash,
					BlockNumber:     record.BlockNumber,
				}
			}
		}
		doc.Chains = append(doc.Chains, entry)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Ensure the renderer implements the interface
var _ usecase.StructuredRenderer = (*JSONRenderer)(nil)
