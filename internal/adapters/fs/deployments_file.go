package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// DeploymentsScriptName is the script key records from deployments.json are filed under
const DeploymentsScriptName = "deployments.json"

// deploymentEntry is one contract in deployments.json
type deploymentEntry struct {
	Address         string             `json:"address"`
	TransactionHash string             `json:"transactionHash"`
	BlockNumber     domain.BlockNumber `json:"blockNumber"`
}

// DeploymentsFileAdapter reads a hand-maintained deployments.json laid out as
// { "<chainId>": { "<ContractName>": { "address", "transactionHash", "blockNumber" } } }
type DeploymentsFileAdapter struct {
	path string
}

// NewDeploymentsFileAdapter creates a new deployments.json reader
func NewDeploymentsFileAdapter(cfg *config.RuntimeConfig) *DeploymentsFileAdapter {
	return &DeploymentsFileAdapter{path: cfg.DeploymentsFile}
}

// Load returns one entry per chain, chains ascending and contracts by name.
// A missing file yields nothing. Keys that are not chain ids and values that
// are not contract objects with an address are skipped.
func (a *DeploymentsFileAdapter) Load(ctx context.Context) ([]usecase.ArtifactRecords, error) {
	if a.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.ArtifactError{Path: a.path, Err: err}
	}

	var chains map[string]json.RawMessage
	if err := json.Unmarshal(data, &chains); err != nil {
		return nil, &domain.ArtifactError{Path: a.path, Err: fmt.Errorf("failed to parse deployments file: %w", err)}
	}

	var results []usecase.ArtifactRecords
	for key, raw := range chains {
		chainID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}

		var contracts map[string]json.RawMessage
		if err := json.Unmarshal(raw, &contracts); err != nil {
			continue
		}

		records := make([]domain.DeploymentRecord, 0, len(contracts))
		for _, name := range lo.Keys(contracts) {
			var entry deploymentEntry
			if err := json.Unmarshal(contracts[name], &entry); err != nil || entry.Address == "" {
				continue
			}
			record := domain.DeploymentRecord{
				ContractName:    name,
				ContractAddress: entry.Address,
				BlockNumber:     entry.BlockNumber.Ptr(),
			}
			if entry.TransactionHash != "" {
				hash := entry.TransactionHash
				record.TransactionHash = &hash
			}
			records = append(records, record)
		}
		sort.Slice(records, func(i, j int) bool { return records[i].ContractName < records[j].ContractName })

		if len(records) == 0 {
			continue
		}
		results = append(results, usecase.ArtifactRecords{
			Artifact: domain.BroadcastArtifact{
				ScriptName: DeploymentsScriptName,
				ChainID:    chainID,
				Path:       a.path,
			},
			Records: records,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Artifact.ChainID < results[j].Artifact.ChainID
	})
	return results, nil
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentsSource = (*DeploymentsFileAdapter)(nil)
