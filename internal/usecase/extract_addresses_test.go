package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treb-addresses/internal/cli/render"
	"github.com/trebuchet-org/treb-addresses/internal/domain"
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// MockArtifactLocator is a mock implementation of ArtifactLocator
type MockArtifactLocator struct {
	mock.Mock
}

func (m *MockArtifactLocator) Locate(ctx context.Context, root string) ([]domain.BroadcastArtifact, error) {
	args := m.Called(ctx, root)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BroadcastArtifact), args.Error(1)
}

// MockRecordExtractor is a mock implementation of RecordExtractor
type MockRecordExtractor struct {
	mock.Mock
}

func (m *MockRecordExtractor) ExtractRecords(ctx context.Context, artifact domain.BroadcastArtifact) ([]domain.DeploymentRecord, error) {
	args := m.Called(ctx, artifact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeploymentRecord), args.Error(1)
}

// MockDeploymentsSource is a mock implementation of DeploymentsSource
type MockDeploymentsSource struct {
	mock.Mock
}

func (m *MockDeploymentsSource) Load(ctx context.Context) ([]usecase.ArtifactRecords, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.ArtifactRecords), args.Error(1)
}

// memoryWriter keeps written documents in memory
type memoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{files: make(map[string][]byte)}
}

func (w *memoryWriter) WriteOutput(ctx context.Context, path string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.files[path] = content
	return nil
}

// fixtureExtractor derives records from the artifact itself
type fixtureExtractor struct {
	failing map[string]bool
}

func (e fixtureExtractor) ExtractRecords(ctx context.Context, artifact domain.BroadcastArtifact) ([]domain.DeploymentRecord, error) {
	if e.failing[artifact.Path] {
		return nil, &domain.ArtifactError{Path: artifact.Path, Err: errors.New("unexpected end of JSON input")}
	}
	hash := fmt.Sprintf("0x%064x", artifact.ChainID)
	block := artifact.ChainID * 100
	return []domain.DeploymentRecord{
		{ContractName: "HubPool", ContractAddress: fmt.Sprintf("0x%040x", artifact.ChainID), TransactionHash: &hash, BlockNumber: &block},
		{ContractName: artifact.ScriptName, ContractAddress: fmt.Sprintf("0x%040x", artifact.ChainID+1)},
	}, nil
}

var (
	generatedAt = time.Date(2024, 6, 10, 12, 30, 45, 0, time.UTC)
	testLogger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func testConfig(concurrency int) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		BroadcastDir: "/project/broadcast",
		OutputBase:   "/project/broadcast/deployed-addresses",
		Concurrency:  concurrency,
	}
}

func artifact(script string, chainID uint64) domain.BroadcastArtifact {
	return domain.BroadcastArtifact{
		ScriptName: script,
		ChainID:    chainID,
		Path:       fmt.Sprintf("/project/broadcast/%s/%d/run-latest.json", script, chainID),
	}
}

// recordingSink keeps the messages sent to a progress sink
type recordingSink struct {
	usecase.NopProgress
	mu    sync.Mutex
	infos []string
}

func (s *recordingSink) Info(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infos = append(s.infos, message)
}

type fixture struct {
	locator     *MockArtifactLocator
	deployments *MockDeploymentsSource
	names       *countingResolver
	writer      *memoryWriter
	sink        usecase.ProgressSink
}

func newFixture() *fixture {
	return &fixture{
		locator:     new(MockArtifactLocator),
		deployments: new(MockDeploymentsSource),
		names:       newCountingResolver(),
		writer:      newMemoryWriter(),
		sink:        usecase.NopProgress{},
	}
}

func (f *fixture) useCase(cfg *config.RuntimeConfig, extractor usecase.RecordExtractor) *usecase.ExtractAddresses {
	return usecase.NewExtractAddresses(
		cfg,
		f.locator,
		extractor,
		f.deployments,
		f.names,
		render.NewMarkdownRenderer(nil),
		render.NewJSONRenderer(),
		f.writer,
		f.sink,
		testLogger,
	)
}

func TestExtractAddresses(t *testing.T) {
	ctx := context.Background()

	t.Run("writes both documents", func(t *testing.T) {
		f := newFixture()
		artifacts := []domain.BroadcastArtifact{artifact("Deploy.s.sol", 137), artifact("Deploy.s.sol", 1)}
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		extractor := new(MockRecordExtractor)
		extractor.On("ExtractRecords", mock.Anything, artifacts[0]).
			Return([]domain.DeploymentRecord{record("SpokePool", "0x02")}, nil)
		extractor.On("ExtractRecords", mock.Anything, artifacts[1]).
			Return([]domain.DeploymentRecord{record("HubPool", "0x01")}, nil)

		result, err := f.useCase(testConfig(1), extractor).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)

		assert.Equal(t, []uint64{1, 137}, result.Registry.ChainIDs())
		assert.Empty(t, result.Failures())
		require.Len(t, result.Artifacts, 2)
		assert.Equal(t, "Polygon", result.Artifacts[0].ChainName)
		assert.Equal(t, 1, result.Artifacts[0].Records)
		assert.Equal(t, []usecase.OutputFile{
			{Extension: ".md", Path: "/project/broadcast/deployed-addresses.md"},
			{Extension: ".json", Path: "/project/broadcast/deployed-addresses.json"},
		}, result.OutputFiles)

		require.Contains(t, f.writer.files, "/project/broadcast/deployed-addresses.md")
		require.Contains(t, f.writer.files, "/project/broadcast/deployed-addresses.json")
		md := string(f.writer.files["/project/broadcast/deployed-addresses.md"])
		require.Contains(t, md, "## Mainnet (Chain ID: 1)")
		require.Contains(t, md, "## Polygon (Chain ID: 137)")
		assert.Less(t, strings.Index(md, "## Mainnet (Chain ID: 1)"), strings.Index(md, "## Polygon (Chain ID: 137)"))

		assert.Equal(t, map[uint64]int{1: 1, 137: 1}, f.names.calls)
		f.locator.AssertExpectations(t)
		extractor.AssertExpectations(t)
	})

	t.Run("bad artifact is skipped", func(t *testing.T) {
		f := newFixture()
		artifacts := []domain.BroadcastArtifact{artifact("Broken.s.sol", 1), artifact("Deploy.s.sol", 10)}
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		extractor := fixtureExtractor{failing: map[string]bool{artifacts[0].Path: true}}
		result, err := f.useCase(testConfig(2), extractor).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)

		failures := result.Failures()
		require.Len(t, failures, 1)
		assert.Equal(t, artifacts[0], failures[0].Artifact)
		assert.Contains(t, failures[0].Err.Error(), artifacts[0].Path)

		assert.Equal(t, []uint64{10}, result.Registry.ChainIDs())
		assert.Len(t, f.writer.files, 2)
	})

	t.Run("missing broadcast directory writes nothing", func(t *testing.T) {
		f := newFixture()
		notFound := fmt.Errorf("%w at /project/broadcast", domain.ErrBroadcastDirNotFound)
		f.locator.On("Locate", ctx, "/project/broadcast").Return(nil, notFound)

		_, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{})
		assert.ErrorIs(t, err, domain.ErrBroadcastDirNotFound)
		assert.Empty(t, f.writer.files)
		f.deployments.AssertNotCalled(t, "Load", mock.Anything)
	})

	t.Run("no artifacts is fatal", func(t *testing.T) {
		f := newFixture()
		f.locator.On("Locate", ctx, "/project/broadcast").Return([]domain.BroadcastArtifact{}, nil)

		_, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{})
		assert.ErrorIs(t, err, domain.ErrNoArtifacts)
		assert.Empty(t, f.writer.files)
	})

	t.Run("artifacts without creations still write documents", func(t *testing.T) {
		f := newFixture()
		artifacts := []domain.BroadcastArtifact{artifact("Configure.s.sol", 1)}
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		extractor := new(MockRecordExtractor)
		extractor.On("ExtractRecords", mock.Anything, artifacts[0]).Return([]domain.DeploymentRecord{}, nil)

		result, err := f.useCase(testConfig(1), extractor).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)
		assert.Zero(t, result.Registry.RecordCount())
		assert.Contains(t, string(f.writer.files["/project/broadcast/deployed-addresses.md"]), "No deployments found.")
	})

	t.Run("supplemental records are overridden by broadcasts", func(t *testing.T) {
		f := newFixture()
		sink := &recordingSink{}
		f.sink = sink
		artifacts := []domain.BroadcastArtifact{artifact("Deploy.s.sol", 1)}
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		supplement := artifactRecords("deployments.json", 1, record("HubPool", "0xold"), record("WETH", "0xweth"))
		supplement.Artifact.Path = "/project/deployments/deployments.json"
		f.deployments.On("Load", ctx).Return([]usecase.ArtifactRecords{supplement}, nil)

		extractor := new(MockRecordExtractor)
		extractor.On("ExtractRecords", mock.Anything, artifacts[0]).
			Return([]domain.DeploymentRecord{record("HubPool", "0xnew")}, nil)

		result, err := f.useCase(testConfig(1), extractor).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)
		assert.Equal(t, []string{"deployments.json", "Deploy.s.sol"}, result.Registry.Chains[1].ScriptNames())
		assert.Len(t, result.Supplemental, 1)
		assert.Equal(t, []string{"Loaded 1 chain entries from /project/deployments/deployments.json"}, sink.infos)

		var doc struct {
			Chains map[string]struct {
				Contracts map[string]struct {
					Address string `json:"address"`
				} `json:"contracts"`
			} `json:"chains"`
		}
		require.NoError(t, json.Unmarshal(f.writer.files["/project/broadcast/deployed-addresses.json"], &doc))
		assert.Equal(t, "0xnew", doc.Chains["1"].Contracts["HubPool"].Address)
		assert.Equal(t, "0xweth", doc.Chains["1"].Contracts["WETH"].Address)
	})

	t.Run("supplemental records alone are not enough", func(t *testing.T) {
		f := newFixture()
		f.locator.On("Locate", ctx, "/project/broadcast").Return([]domain.BroadcastArtifact{}, nil)
		f.deployments.On("Load", ctx).Return([]usecase.ArtifactRecords{
			artifactRecords("deployments.json", 137, record("SpokePool", "0x02")),
		}, nil)

		_, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		assert.ErrorIs(t, err, domain.ErrNoArtifacts)
		assert.Empty(t, f.writer.files)
		f.deployments.AssertNotCalled(t, "Load", mock.Anything)
	})

	t.Run("unreadable supplemental file is reported and skipped", func(t *testing.T) {
		f := newFixture()
		artifacts := []domain.BroadcastArtifact{artifact("Deploy.s.sol", 1)}
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		loadErr := &domain.ArtifactError{Path: "/project/deployments/deployments.json", Err: errors.New("invalid character")}
		f.deployments.On("Load", ctx).Return(nil, loadErr)

		result, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)
		assert.ErrorIs(t, result.SupplementErr, loadErr)
		assert.Empty(t, result.Supplemental)
		assert.Equal(t, []uint64{1}, result.Registry.ChainIDs())
	})

	t.Run("write failure is returned", func(t *testing.T) {
		f := newFixture()
		f.writer.err = errors.New("read-only file system")
		f.locator.On("Locate", ctx, "/project/broadcast").Return([]domain.BroadcastArtifact{artifact("Deploy.s.sol", 1)}, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		_, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read-only file system")
	})

	t.Run("zero timestamp defaults to now", func(t *testing.T) {
		f := newFixture()
		f.locator.On("Locate", ctx, "/project/broadcast").Return([]domain.BroadcastArtifact{artifact("Deploy.s.sol", 1)}, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		before := time.Now().UTC().Add(-time.Second)
		result, err := f.useCase(testConfig(1), fixtureExtractor{}).Run(ctx, usecase.ExtractAddressesParams{})
		require.NoError(t, err)
		assert.True(t, result.GeneratedAt.After(before))
		assert.Equal(t, time.UTC, result.GeneratedAt.Location())
	})
}

func TestExtractAddressesDeterministic(t *testing.T) {
	ctx := context.Background()

	var artifacts []domain.BroadcastArtifact
	for _, script := range []string{"DeployHubPool.s.sol", "DeploySpokePool.s.sol", "Upgrade.s.sol"} {
		for _, chainID := range []uint64{1, 10, 56, 137, 8453, 42161, 11155111} {
			artifacts = append(artifacts, artifact(script, chainID))
		}
	}
	failing := map[string]bool{artifacts[4].Path: true}

	run := func(concurrency int) map[string][]byte {
		f := newFixture()
		f.locator.On("Locate", ctx, "/project/broadcast").Return(artifacts, nil)
		f.deployments.On("Load", ctx).Return(nil, nil)

		_, err := f.useCase(testConfig(concurrency), fixtureExtractor{failing: failing}).
			Run(ctx, usecase.ExtractAddressesParams{GeneratedAt: generatedAt})
		require.NoError(t, err)
		return f.writer.files
	}

	sequential := run(1)
	for _, concurrency := range []int{1, 4, 16} {
		assert.Equal(t, sequential, run(concurrency), "concurrency %d", concurrency)
	}
}
