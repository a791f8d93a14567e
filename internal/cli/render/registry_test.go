package render

import (
	"time"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
)

var testGeneratedAt = time.Date(2024, 6, 10, 12, 30, 45, 0, time.UTC)

type explorerTable map[uint64]string

func (e explorerTable) ExplorerURL(chainID uint64) (string, bool) {
	url, ok := e[chainID]
	return url, ok
}

var testExplorers = explorerTable{
	1:   "https://etherscan.io",
	137: "https://polygonscan.com",
}

func strPtr(s string) *string { return &s }

func blockPtr(n uint64) *uint64 { return &n }

func staticName(names map[uint64]string) func(uint64) string {
	return func(id uint64) string { return names[id] }
}

// testRegistry spans three chains, inserted out of numeric order
func testRegistry() *domain.Registry {
	names := staticName(map[uint64]string{1: "Mainnet", 56: "BSC", 137: "Polygon"})
	registry := domain.NewRegistry()

	polygon, _ := registry.Chain(137, names)
	polygon.SetScript("DeploySpokePool.s.sol", []domain.DeploymentRecord{
		{ContractName: "SpokePool", ContractAddress: "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB", TransactionHash: strPtr("0xbbbb")},
	})

	mainnet, _ := registry.Chain(1, names)
	mainnet.SetScript("DeployHubPool.s.sol", []domain.DeploymentRecord{
		{ContractName: "HubPool", ContractAddress: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", TransactionHash: strPtr("0xaaaa"), BlockNumber: blockPtr(19000000)},
		{ContractName: "LpTokenFactory", ContractAddress: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
	})

	bsc, _ := registry.Chain(56, names)
	bsc.SetScript("Deploy.s.sol", []domain.DeploymentRecord{
		{ContractName: "Program", ContractAddress: "JAJsYBQdcy7hhdN1hNSp7mGTaGLNX2swoKTtRvMvEhvN"},
	})

	return registry
}
