package domain

// Network describes a well-known chain
type Network struct {
	ChainID     uint64 `json:"chainId" yaml:"chainId"`
	Name        string `json:"name" yaml:"name"`
	ExplorerURL string `json:"explorerUrl,omitempty" yaml:"explorerUrl,omitempty"`
}
