package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/treb-addresses/internal/domain"
)

// ArtifactLocator discovers run-latest.json files under a broadcast directory
type ArtifactLocator interface {
	Locate(ctx context.Context, root string) ([]domain.BroadcastArtifact, error)
}

// RecordExtractor turns one broadcast artifact into deployment records
type RecordExtractor interface {
	ExtractRecords(ctx context.Context, artifact domain.BroadcastArtifact) ([]domain.DeploymentRecord, error)
}

// DeploymentsSource provides records that did not come from broadcast files.
// Its entries are folded before broadcast artifacts so broadcasts take precedence.
type DeploymentsSource interface {
	Load(ctx context.Context) ([]ArtifactRecords, error)
}

// ChainNameResolver maps a chain id to a display name. It must never return "".
type ChainNameResolver interface {
	ChainName(chainID uint64) string
}

// RegistryRenderer projects a registry snapshot into a document
type RegistryRenderer interface {
	Render(registry *domain.Registry, generatedAt time.Time) ([]byte, error)
	Extension() string
}

// NarrativeRenderer renders the human-readable document
type NarrativeRenderer interface {
	RegistryRenderer
}

// StructuredRenderer renders the machine-readable document
type StructuredRenderer interface {
	RegistryRenderer
}

// OutputWriter persists rendered documents
type OutputWriter interface {
	WriteOutput(ctx context.Context, path string, content []byte) error
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
