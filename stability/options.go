package stability

// Defaults, the single source of truth for zero-option behavior.
const (
	// DefaultGridR and DefaultGridEps size the coarse stage (endpoints
	// included).
	DefaultGridR   = 48
	DefaultGridEps = 33

	// DefaultStarts is how many distinct grid candidates seed the
	// refinement stage.
	DefaultStarts = 8

	// DefaultMaxIter caps refinement iterations per start; hitting the
	// cap reports Converged=false rather than blocking.
	DefaultMaxIter = 500

	// DefaultGradTol is the relative projected-gradient criterion,
	// compared against gradTol·(1+|f|). It sits above the noise floor
	// of central differences on objectives with strong internal
	// cancellation.
	DefaultGradTol = 1e-5

	// DefaultBoundaryTol is the interior margin as a fraction of each
	// box edge: a minimizer closer than this to a bound counts as
	// pinned.
	DefaultBoundaryTol = 1e-2

	// DefaultAlphaTol separates "coupling off" from the refined α ≠ 0
	// regimes in Classify.
	DefaultAlphaTol = 1e-9

	// DefaultSectionSamples is the sampling density of the radial
	// sections used for well counting.
	DefaultSectionSamples = 96
)

// Option mutates search policy. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options is the resolved search configuration.
type Options struct {
	gridR          int
	gridEps        int
	starts         int
	maxIter        int
	gradTol        float64
	boundaryTol    float64
	alphaTol       float64
	sectionSamples int
}

// NewOptions resolves setters against the documented defaults,
// last-writer-wins.
func NewOptions(opts ...Option) Options {
	o := Options{
		gridR:          DefaultGridR,
		gridEps:        DefaultGridEps,
		starts:         DefaultStarts,
		maxIter:        DefaultMaxIter,
		gradTol:        DefaultGradTol,
		boundaryTol:    DefaultBoundaryTol,
		alphaTol:       DefaultAlphaTol,
		sectionSamples: DefaultSectionSamples,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithGrid sets the coarse-grid resolution per axis. Panics unless both
// are at least 2 (the grid must include distinct endpoints).
func WithGrid(nr, neps int) Option {
	if nr < 2 || neps < 2 {
		panic("stability: WithGrid: resolutions must be >= 2")
	}

	return func(o *Options) { o.gridR, o.gridEps = nr, neps }
}

// WithStarts sets how many grid candidates are refined. Panics unless
// positive.
func WithStarts(n int) Option {
	if n < 1 {
		panic("stability: WithStarts: need at least one start")
	}

	return func(o *Options) { o.starts = n }
}

// WithMaxIter caps refinement iterations per start. Panics unless
// positive.
func WithMaxIter(n int) Option {
	if n < 1 {
		panic("stability: WithMaxIter: need at least one iteration")
	}

	return func(o *Options) { o.maxIter = n }
}

// WithGradTol sets the relative gradient criterion. Panics unless
// positive.
func WithGradTol(tol float64) Option {
	if !(tol > 0) {
		panic("stability: WithGradTol: tolerance must be > 0")
	}

	return func(o *Options) { o.gradTol = tol }
}

// WithBoundaryTol sets the interior margin as a fraction of each box
// edge. Panics outside (0, 0.5): a margin of half an edge or more leaves
// no interior.
func WithBoundaryTol(frac float64) Option {
	if !(frac > 0) || frac >= 0.5 {
		panic("stability: WithBoundaryTol: fraction must lie in (0, 0.5)")
	}

	return func(o *Options) { o.boundaryTol = frac }
}

// WithAlphaTol sets the coupling activity threshold used by Classify.
// Panics unless positive.
func WithAlphaTol(tol float64) Option {
	if !(tol > 0) {
		panic("stability: WithAlphaTol: tolerance must be > 0")
	}

	return func(o *Options) { o.alphaTol = tol }
}
