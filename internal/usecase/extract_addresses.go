package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"golang.org/x/sync/errgroup"
)

// ExtractAddressesParams contains parameters for an extraction run
type ExtractAddressesParams struct {
	// GeneratedAt stamps both documents. Zero means now.
	GeneratedAt time.Time
}

// ArtifactSummary describes what happened to one discovered artifact
type ArtifactSummary struct {
	Artifact  domain.BroadcastArtifact
	ChainName string
	Records   int
	Err       error
}

// OutputFile is a document written by the run
type OutputFile struct {
	Extension string
	Path      string
}

// ExtractAddressesResult contains the result of an extraction run
type ExtractAddressesResult struct {
	BroadcastDir  string
	Artifacts     []ArtifactSummary
	Supplemental  []ArtifactRecords
	SupplementErr error
	Registry      *domain.Registry
	GeneratedAt   time.Time
	OutputFiles   []OutputFile
}

// Failures returns the artifacts that could not be read or decoded
func (r *ExtractAddressesResult) Failures() []ArtifactSummary {
	return lo.Filter(r.Artifacts, func(a ArtifactSummary, _ int) bool {
		return a.Err != nil
	})
}

// ExtractAddresses is the use case that builds the deployed-addresses documents
// from the broadcast directory.
type ExtractAddresses struct {
	config      *config.RuntimeConfig
	locator     ArtifactLocator
	extractor   RecordExtractor
	deployments DeploymentsSource
	names       ChainNameResolver
	narrative   NarrativeRenderer
	structured  StructuredRenderer
	writer      OutputWriter
	sink        ProgressSink
	log         *slog.Logger
}

// NewExtractAddresses creates a new ExtractAddresses use case
func NewExtractAddresses(
	cfg *config.RuntimeConfig,
	locator ArtifactLocator,
	extractor RecordExtractor,
	deployments DeploymentsSource,
	names ChainNameResolver,
	narrative NarrativeRenderer,
	structured StructuredRenderer,
	writer OutputWriter,
	sink ProgressSink,
	log *slog.Logger,
) *ExtractAddresses {
	return &ExtractAddresses{
		config:      cfg,
		locator:     locator,
		extractor:   extractor,
		deployments: deployments,
		names:       names,
		narrative:   narrative,
		structured:  structured,
		writer:      writer,
		sink:        sink,
		log:         log.With("component", "ExtractAddresses"),
	}
}

// Run executes the extraction pipeline: locate, extract, fold, render, write.
// Nothing is written when the broadcast directory is missing or holds no artifacts.
func (uc *ExtractAddresses) Run(ctx context.Context, params ExtractAddressesParams) (*ExtractAddressesResult, error) {
	generatedAt := params.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}
	generatedAt = generatedAt.UTC()

	broadcastDir := uc.config.BroadcastDir
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "scanning",
		Message: fmt.Sprintf("Scanning broadcast directory: %s", broadcastDir),
	})

	artifacts, err := uc.locator.Locate(ctx, broadcastDir)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoArtifacts, broadcastDir)
	}

	result := &ExtractAddressesResult{
		BroadcastDir: broadcastDir,
		GeneratedAt:  generatedAt,
	}

	supplemental, err := uc.deployments.Load(ctx)
	if err != nil {
		uc.log.Warn("skipping supplemental deployments", "error", err)
		result.SupplementErr = err
		supplemental = nil
	}
	result.Supplemental = supplemental
	if len(supplemental) > 0 {
		uc.sink.Info(fmt.Sprintf("Loaded %d chain entries from %s",
			len(supplemental), supplemental[0].Artifact.Path))
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "discovered",
		Total:   len(artifacts),
		Message: fmt.Sprintf("Found %d broadcast files", len(artifacts)),
	})

	extracted, err := uc.extractAll(ctx, artifacts)
	if err != nil {
		return nil, err
	}

	names := newChainNameCache(uc.names)
	results := make([]ArtifactRecords, 0, len(supplemental)+len(artifacts))
	results = append(results, supplemental...)

	for i, artifact := range artifacts {
		summary := ArtifactSummary{
			Artifact:  artifact,
			ChainName: names.ChainName(artifact.ChainID),
			Records:   len(extracted[i].records),
			Err:       extracted[i].err,
		}
		result.Artifacts = append(result.Artifacts, summary)

		if summary.Err != nil {
			uc.sink.Error(summary.Err.Error())
			continue
		}
		results = append(results, ArtifactRecords{Artifact: artifact, Records: extracted[i].records})
	}

	result.Registry = BuildRegistry(results, names)
	uc.log.Debug("registry built",
		"chains", len(result.Registry.Chains),
		"records", result.Registry.RecordCount())

	// Render both documents before writing either
	renderers := []RegistryRenderer{uc.narrative, uc.structured}
	documents := make([][]byte, len(renderers))
	for i, renderer := range renderers {
		content, err := renderer.Render(result.Registry, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s document: %w", renderer.Extension(), err)
		}
		documents[i] = content
	}

	for i, renderer := range renderers {
		path := uc.config.OutputBase + renderer.Extension()
		if err := uc.writer.WriteOutput(ctx, path, documents[i]); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.OutputFiles = append(result.OutputFiles, OutputFile{
			Extension: renderer.Extension(),
			Path:      path,
		})
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(artifacts),
		Total:   len(artifacts),
		Message: "Deployed addresses written",
	})

	return result, nil
}

type extraction struct {
	records []domain.DeploymentRecord
	err     error
}

// extractAll extracts every artifact, at most Concurrency at a time. Results are
// indexed by discovery position so the fold order never depends on scheduling.
func (uc *ExtractAddresses) extractAll(ctx context.Context, artifacts []domain.BroadcastArtifact) ([]extraction, error) {
	out := make([]extraction, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, uc.config.Concurrency))

	for i, artifact := range artifacts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := uc.extractor.ExtractRecords(gctx, artifact)
			if err != nil {
				uc.log.Debug("artifact skipped", "path", artifact.Path, "error", err)
				out[i].err = err
				return nil
			}
			out[i].records = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
