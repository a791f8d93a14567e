package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultBroadcastDir is Foundry's default broadcast output directory
const DefaultBroadcastDir = "broadcast"

// FoundryTOML represents the part of foundry.toml this tool reads
type FoundryTOML struct {
	Profile map[string]map[string]any `toml:"profile"`
}

// loadEnvFiles loads .env files from the project root. Variables already set in
// the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadFoundryBroadcastDir returns the broadcast directory configured in foundry.toml
// for the active FOUNDRY_PROFILE, falling back to the default profile and then
// to "broadcast". A project without foundry.toml uses the default.
func loadFoundryBroadcastDir(projectRoot string) (string, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return DefaultBroadcastDir, nil
	}

	var raw FoundryTOML
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return "", fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	profiles := []string{"default"}
	if active := os.Getenv("FOUNDRY_PROFILE"); active != "" && active != "default" {
		profiles = append([]string{active}, profiles...)
	}

	for _, name := range profiles {
		if dir, ok := raw.Profile[name]["broadcast"].(string); ok && dir != "" {
			return dir, nil
		}
	}
	return DefaultBroadcastDir, nil
}
