package metrics

// Metric names recorded by the scalar generators.
const (
	NameSeedsDrawn     = "scalargen.seeds_drawn"
	NameExpansions     = "scalargen.expansions"
	NameBytesExpanded  = "scalargen.bytes_expanded"
	NameScalarsDerived = "scalargen.scalars_derived"
	NameScalarsSampled = "scalargen.scalars_sampled"
	NameChainEpochs    = "scalargen.chain_epochs"
	NameBatchSize      = "scalargen.batch_size"
	NameGenerateTime   = "scalargen.generate_us"
)

// Pre-defined metrics in DefaultRegistry. Generators built without an
// explicit registry update these.
var (
	// SeedsDrawn counts seeds read from the entropy source.
	SeedsDrawn = DefaultRegistry.Counter(NameSeedsDrawn)
	// Expansions counts expand_message invocations.
	Expansions = DefaultRegistry.Counter(NameExpansions)
	// BytesExpanded counts bytes requested from expand_message.
	BytesExpanded = DefaultRegistry.Counter(NameBytesExpanded)
	// ScalarsDerived counts scalars decoded from expander output.
	ScalarsDerived = DefaultRegistry.Counter(NameScalarsDerived)
	// ScalarsSampled counts scalars drawn directly from the field sampler.
	ScalarsSampled = DefaultRegistry.Counter(NameScalarsSampled)
	// ChainEpochs holds the epoch count of the most recent chained request.
	ChainEpochs = DefaultRegistry.Gauge(NameChainEpochs)
	// BatchSize records requested batch sizes.
	BatchSize = DefaultRegistry.Histogram(NameBatchSize)
	// GenerateTime records batch generation time in microseconds.
	GenerateTime = DefaultRegistry.Histogram(NameGenerateTime)
)
