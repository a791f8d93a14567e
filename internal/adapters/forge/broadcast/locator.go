package broadcast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// RunLatestFile is the name Foundry gives the most recent broadcast of a script
const RunLatestFile = "run-latest.json"

var chainDirPattern = regexp.MustCompile(`^[0-9]+$`)

// Locator discovers run-latest.json files laid out as
// <broadcast>/<script>/<chainId>/run-latest.json
type Locator struct{}

// NewLocator creates a new broadcast locator
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns one artifact per (script, chain) directory holding a run-latest.json.
// Directory names that are not purely numeric, and chain directories without the
// file, are skipped.
func (l *Locator) Locate(ctx context.Context, root string) ([]domain.BroadcastArtifact, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", domain.ErrBroadcastDirNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat broadcast directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w at %s (not a directory)", domain.ErrBroadcastDirNotFound, root)
	}

	scriptDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read broadcast directory: %w", err)
	}

	var artifacts []domain.BroadcastArtifact
	for _, scriptDir := range scriptDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Each script has its own directory (e.g., DeployHubPool.s.sol)
		scriptPath := filepath.Join(root, scriptDir.Name())
		if !isDir(scriptPath) {
			continue
		}

		chainDirs, err := os.ReadDir(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read script directory %s: %w", scriptPath, err)
		}

		for _, chainDir := range chainDirs {
			if !chainDirPattern.MatchString(chainDir.Name()) {
				continue
			}
			chainPath := filepath.Join(scriptPath, chainDir.Name())
			if !isDir(chainPath) {
				continue
			}
			chainID, err := strconv.ParseUint(chainDir.Name(), 10, 64)
			if err != nil {
				// out of uint64 range
				continue
			}

			runLatestPath := filepath.Join(chainPath, RunLatestFile)
			if fi, err := os.Stat(runLatestPath); err != nil || fi.IsDir() {
				continue
			}

			artifacts = append(artifacts, domain.BroadcastArtifact{
				ScriptName: scriptDir.Name(),
				ChainID:    chainID,
				Path:       runLatestPath,
			})
		}
	}

	return artifacts, nil
}

// isDir follows symlinks, unlike fs.DirEntry.IsDir
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Ensure the locator implements the interface
var _ usecase.ArtifactLocator = (*Locator)(nil)
