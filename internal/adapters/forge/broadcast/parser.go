package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// Parser handles parsing of Foundry broadcast files
type Parser struct {
	aliases map[string]string
}

// NewParser creates a new broadcast file parser
func NewParser(cfg *config.RuntimeConfig) *Parser {
	aliases := make(map[string]string, len(cfg.ContractAliases))
	for from, to := range cfg.ContractAliases {
		aliases[from] = to
	}
	return &Parser{aliases: aliases}
}

// ParseBroadcastFile parses a broadcast file
func (p *Parser) ParseBroadcastFile(file string) (*domain.BroadcastFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read broadcast file: %w", err)
	}

	var broadcast domain.BroadcastFile
	if err := json.Unmarshal(data, &broadcast); err != nil {
		return nil, fmt.Errorf("failed to parse broadcast file: %w", err)
	}

	return &broadcast, nil
}

// ExtractRecords returns the contract creations in an artifact, in transaction order.
// Read and decode failures are returned as *domain.ArtifactError.
func (p *Parser) ExtractRecords(ctx context.Context, artifact domain.BroadcastArtifact) ([]domain.DeploymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	broadcast, err := p.ParseBroadcastFile(artifact.Path)
	if err != nil {
		return nil, &domain.ArtifactError{Path: artifact.Path, Err: err}
	}

	return p.Records(broadcast), nil
}

// Records joins transactions with receipts and keeps contract creations only
func (p *Parser) Records(broadcast *domain.BroadcastFile) []domain.DeploymentRecord {
	blocks := blockNumbersByHash(broadcast.Receipts)

	records := make([]domain.DeploymentRecord, 0)
	for _, tx := range broadcast.Transactions {
		if !tx.IsContractCreation() {
			continue
		}

		record := domain.DeploymentRecord{
			ContractName:    p.contractName(tx.ContractName),
			ContractAddress: checksumAddress(tx.ContractAddress),
		}
		if tx.Hash != "" {
			hash := tx.Hash
			record.TransactionHash = &hash
			if block, ok := blocks[tx.Hash]; ok {
				record.BlockNumber = &block
			}
		}
		records = append(records, record)
	}

	return records
}

func (p *Parser) contractName(name string) string {
	if name == "" {
		return domain.UnknownContractName
	}
	if alias, ok := p.aliases[name]; ok {
		return alias
	}
	return name
}

// blockNumbersByHash maps transaction hash to block number for receipts carrying both
func blockNumbersByHash(receipts []domain.BroadcastReceipt) map[string]uint64 {
	blocks := make(map[string]uint64, len(receipts))
	for _, receipt := range receipts {
		if receipt.TransactionHash == "" || !receipt.BlockNumber.Valid {
			continue
		}
		blocks[receipt.TransactionHash] = receipt.BlockNumber.Value
	}
	return blocks
}

// checksumAddress returns the EIP-55 form of 20-byte hex addresses and leaves
// anything else (non-EVM addresses) untouched.
func checksumAddress(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}

// Ensure the parser implements the interface
var _ usecase.RecordExtractor = (*Parser)(nil)
