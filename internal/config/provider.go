package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
)

// DefaultOutputName is the base name of the generated documents
const DefaultOutputName = "deployed-addresses"

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot, err := resolveProjectRoot(v.GetString("project_root"))
	if err != nil {
		return nil, err
	}

	// .env values must be visible before viper reads TREB_* variables
	loadEnvFiles(projectRoot)

	if err := readConfigFile(v, projectRoot); err != nil {
		return nil, err
	}

	broadcastDir := v.GetString("broadcast_dir")
	if broadcastDir == "" {
		broadcastDir, err = loadFoundryBroadcastDir(projectRoot)
		if err != nil {
			return nil, err
		}
	}
	broadcastDir = resolvePath(projectRoot, broadcastDir)

	output := v.GetString("output")
	if output == "" {
		output = filepath.Join(broadcastDir, DefaultOutputName)
	}
	output = resolvePath(projectRoot, output)
	output = strings.TrimSuffix(output, filepath.Ext(output))

	deploymentsFile := v.GetString("deployments_file")
	if deploymentsFile == "" {
		deploymentsFile = filepath.Join("deployments", "deployments.json")
	}

	networksFile := v.GetString("networks_file")
	if networksFile != "" {
		networksFile = resolvePath(projectRoot, networksFile)
	}

	aliases, err := parseAliases(v.GetStringSlice("contract_aliases"))
	if err != nil {
		return nil, err
	}

	concurrency := v.GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}

	return &config.RuntimeConfig{
		ProjectRoot:     projectRoot,
		BroadcastDir:    broadcastDir,
		OutputBase:      output,
		DeploymentsFile: resolvePath(projectRoot, deploymentsFile),
		NetworksFile:    networksFile,
		ContractAliases: aliases,
		Concurrency:     concurrency,
		Debug:           v.GetBool("debug"),
	}, nil
}

// FindProjectRoot walks up from dir to find foundry.toml
func FindProjectRoot(dir string) (string, error) {
	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding foundry.toml
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// resolveProjectRoot uses the configured root, else the nearest Foundry project
// above the working directory, else the working directory itself.
func resolveProjectRoot(configured string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if configured != "" {
		return resolvePath(cwd, configured), nil
	}

	if root, err := FindProjectRoot(cwd); err == nil {
		return root, nil
	}
	return cwd, nil
}

// resolvePath makes path absolute relative to base
func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

// readConfigFile reads .treb/addresses.{json,yaml,toml} if present
func readConfigFile(v *viper.Viper, projectRoot string) error {
	v.SetConfigName("addresses")
	v.AddConfigPath(filepath.Join(projectRoot, ".treb"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// parseAliases parses "From=To" entries. Entries may also be comma separated,
// which is how they arrive from TREB_CONTRACT_ALIASES.
func parseAliases(entries []string) (map[string]string, error) {
	aliases := make(map[string]string)
	for _, entry := range entries {
		for _, pair := range strings.Split(entry, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			from, to, ok := strings.Cut(pair, "=")
			from, to = strings.TrimSpace(from), strings.TrimSpace(to)
			if !ok || from == "" || to == "" {
				return nil, fmt.Errorf("invalid contract alias %q (expected From=To)", pair)
			}
			aliases[from] = to
		}
	}
	return aliases, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("TREB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("project_root", "")
	v.SetDefault("broadcast_dir", "")
	v.SetDefault("output", "")
	v.SetDefault("deployments_file", "")
	v.SetDefault("networks_file", "")
	v.SetDefault("contract_aliases", []string{})
	v.SetDefault("concurrency", 1)
	v.SetDefault("debug", false)

	if cmd != nil {
		// Flags are kebab-case, config keys snake_case
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
