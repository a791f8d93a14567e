package usecase

import (
	"context"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
)

// NetworkCatalog lists the networks the resolver knows by name
type NetworkCatalog interface {
	Networks() []domain.Network
}

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []domain.Network
}

// ListNetworks is a use case for listing the known chain names
type ListNetworks struct {
	catalog NetworkCatalog
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(catalog NetworkCatalog) *ListNetworks {
	return &ListNetworks{
		catalog: catalog,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	return &ListNetworksResult{
		Networks: uc.catalog.Networks(),
	}, nil
}
