package scan

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/katalvlaran/torsionwell/geometry"
	"github.com/katalvlaran/torsionwell/potential"
	"github.com/katalvlaran/torsionwell/stability"
)

// Sweeper runs the global search for batches of tuples over one fixed
// box. Construct with NewSweeper; the zero value is not usable.
// A Sweeper is safe for concurrent use.
type Sweeper struct {
	bounds     stability.Bounds
	workers    int
	cache      *potential.Cache
	searchOpts []stability.Option
	log        *slog.Logger
}

// Option adjusts sweep policy at construction time.
type Option func(*Sweeper)

// WithWorkers sets the pool size. Panics unless positive (programmer
// error).
func WithWorkers(n int) Option {
	if n < 1 {
		panic("scan: WithWorkers: need at least one worker")
	}

	return func(s *Sweeper) { s.workers = n }
}

// WithSearchOptions forwards options to every per-tuple search.
func WithSearchOptions(opts ...stability.Option) Option {
	return func(s *Sweeper) { s.searchOpts = append(s.searchOpts, opts...) }
}

// WithLogger routes progress logging through the given logger. Panics on
// nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("scan: WithLogger: nil logger")
	}

	return func(s *Sweeper) { s.log = l }
}

// NewSweeper fixes the search box and resolves the pool configuration.
// The box itself is validated lazily by the first search; a bad box
// surfaces identically in every row.
func NewSweeper(b stability.Bounds, opts ...Option) *Sweeper {
	s := &Sweeper{
		bounds:  b,
		workers: runtime.NumCPU(),
		cache:   potential.NewCache(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run sweeps the tuples and returns one row per tuple, in input order.
// Tuples are distributed over the pool; the shared curvature cache keeps
// repeated (family, r, eps) visits across tuples to a single tensor
// evaluation. Cancelling the context stops the pool between tuples and
// returns the context error.
//
// Errors: ErrNoTuples, ctx.Err().
func (s *Sweeper) Run(ctx context.Context, tuples []Tuple) ([]Row, error) {
	if len(tuples) == 0 {
		return nil, ErrNoTuples
	}

	rows := make([]Row, len(tuples))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(s.workers)
	for w := 0; w < s.workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rows[idx] = s.sweepOne(idx, tuples[idx])
			}
		}()
	}

	var cancelled error
feed:
	for i := range tuples {
		if cancelled = ctx.Err(); cancelled != nil {
			break feed
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()

			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	return rows, nil
}

// sweepOne evaluates a single tuple, converting every failure into the
// row's Err field.
func (s *Sweeper) sweepOne(idx int, t Tuple) Row {
	row := Row{Index: idx, Tuple: t}

	p, err := potential.New(t.Family, t.Mode, t.Variant, t.Couplings, potential.WithCache(s.cache))
	if err != nil {
		row.Err = err.Error()
		s.log.Warn("tuple rejected", "index", idx, "err", err)

		return row
	}

	res, class, err := stability.Analyze(p, s.bounds, s.searchOpts...)
	if err != nil {
		row.Err = err.Error()
		s.log.Warn("search failed", "index", idx, "err", err)

		return row
	}

	row.Result = res
	row.Class = class
	s.log.Debug("tuple done",
		"index", idx,
		"family", t.Family.String(),
		"alpha", t.Couplings.Alpha,
		"r", res.R,
		"class", class.String())

	return row
}

// AlphaSweep runs the base tuple once per coupling value, in order. This
// is the slice used to locate the sign-change transition of the Weyl
// coupling.
func (s *Sweeper) AlphaSweep(ctx context.Context, base Tuple, alphas []float64) ([]Row, error) {
	tuples := make([]Tuple, len(alphas))
	for i, a := range alphas {
		t := base
		t.Couplings.Alpha = a
		tuples[i] = t
	}

	return s.Run(ctx, tuples)
}

// FamilySweep runs the base couplings across all three families, in tag
// order.
func (s *Sweeper) FamilySweep(ctx context.Context, base Tuple) ([]Row, error) {
	families := []geometry.Family{geometry.Round, geometry.Flat, geometry.Nilpotent}
	tuples := make([]Tuple, len(families))
	for i, f := range families {
		t := base
		t.Family = f
		tuples[i] = t
	}

	return s.Run(ctx, tuples)
}
