package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/treb-addresses/internal/adapters/forge/broadcast"
	"github.com/trebuchet-org/treb-addresses/internal/adapters/fs"
	"github.com/trebuchet-org/treb-addresses/internal/adapters/network"
	"github.com/trebuchet-org/treb-addresses/internal/adapters/progress"
	"github.com/trebuchet-org/treb-addresses/internal/cli/render"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// BroadcastSet provides broadcast discovery and extraction
var BroadcastSet = wire.NewSet(
	broadcast.NewLocator,
	wire.Bind(new(usecase.ArtifactLocator), new(*broadcast.Locator)),

	broadcast.NewParser,
	wire.Bind(new(usecase.RecordExtractor), new(*broadcast.Parser)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewDeploymentsFileAdapter,
	wire.Bind(new(usecase.DeploymentsSource), new(*fs.DeploymentsFileAdapter)),

	fs.NewFileWriterAdapter,
	wire.Bind(new(usecase.OutputWriter), new(*fs.FileWriterAdapter)),
)

// NetworkSet provides chain name and explorer resolution
var NetworkSet = wire.NewSet(
	network.ProvideResolver,
	wire.Bind(new(usecase.ChainNameResolver), new(*network.Resolver)),
	wire.Bind(new(usecase.NetworkCatalog), new(*network.Resolver)),
	wire.Bind(new(render.ExplorerLookup), new(*network.Resolver)),
)

// RenderSet provides the document renderers
var RenderSet = wire.NewSet(
	render.NewMarkdownRenderer,
	wire.Bind(new(usecase.NarrativeRenderer), new(*render.MarkdownRenderer)),

	render.NewJSONRenderer,
	wire.Bind(new(usecase.StructuredRenderer), new(*render.JSONRenderer)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.NewLogSink,
	wire.Bind(new(usecase.ProgressSink), new(*progress.LogSink)),
)

// AllAdapters combines all adapter sets
var AllAdapters = wire.NewSet(
	BroadcastSet,
	FSSet,
	NetworkSet,
	RenderSet,
	ProgressSet,
)
