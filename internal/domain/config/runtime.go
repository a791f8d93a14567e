package config

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	BroadcastDir string

	// Output base path without extension; each renderer appends its own
	OutputBase string

	// Optional inputs
	DeploymentsFile string // supplemental deployments.json, ignored when missing
	NetworksFile    string // extra chain names/explorers (YAML)

	// ContractAliases renames extracted contracts (e.g. ERC1967Proxy -> SpokePool)
	ContractAliases map[string]string

	// Execution settings
	Concurrency int
	Debug       bool
}
