// Package assess runs the impact pipeline over an assessable activity:
// inventory, characterization, adjustment, endpoints, score, data quality
// and the kind-specific analyses.
package assess

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/adjust"
	"github.com/sells-group/lca-cli/internal/characterize"
	"github.com/sells-group/lca-cli/internal/endpoint"
	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/inventory"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/quality"
	"github.com/sells-group/lca-cli/internal/score"
)

// DefaultReferenceYear dates facility age when no year is configured.
const DefaultReferenceYear = 2024

// Location is where an activity takes place, for regional factors.
type Location struct {
	Country  model.Country
	Northern bool
}

// Characterized is the output of an activity's characterization stage.
// Totals are absolute; Breakdown is keyed by item label.
type Characterized struct {
	Totals    model.Midpoints
	Breakdown map[string]model.Midpoints
	Warnings  []string
}

// Assessable is an activity the pipeline can evaluate. Each method is one
// stage; the engine calls them in a fixed order.
type Assessable interface {
	Kind() model.AssessmentKind
	Subject() string
	Location() Location
	Methodology() model.Methodology

	// Characterize builds inventories and absolute midpoints.
	Characterize(e *Engine) Characterized
	// Finalize converts absolute totals into reported midpoints.
	Finalize(totals model.Midpoints) model.Midpoints
	Score(e *Engine, eps model.Endpoints) model.SingleScore
	DataQuality(e *Engine) model.DataQuality
	// Analyze adds the kind-specific analyses. totals are the absolute
	// midpoints before Finalize.
	Analyze(e *Engine, totals model.Midpoints, r *model.Results)
}

// Engine holds the shared, read-only reference data and the stage
// components built on it. It is safe for concurrent use.
type Engine struct {
	tables        *factors.Tables
	repo          *factors.Repository
	builder       *inventory.Builder
	chars         *characterize.Characterizer
	composer      *score.Composer
	quality       *quality.Assessor
	referenceYear int
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceYear sets the year facility age is measured against.
func WithReferenceYear(year int) Option {
	return func(e *Engine) {
		if year > 0 {
			e.referenceYear = year
		}
	}
}

// NewEngine builds an Engine over the given tables and repository.
func NewEngine(tables *factors.Tables, repo *factors.Repository, opts ...Option) *Engine {
	e := &Engine{
		tables:        tables,
		repo:          repo,
		builder:       inventory.NewBuilder(tables, repo),
		chars:         characterize.New(tables, repo),
		composer:      score.New(tables),
		quality:       quality.New(repo),
		referenceYear: DefaultReferenceYear,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Tables returns the engine's reference tables.
func (e *Engine) Tables() *factors.Tables { return e.tables }

// Run evaluates one activity. The result is deterministic apart from the
// run id.
func (e *Engine) Run(ctx context.Context, a Assessable) (*model.Results, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "assess: run")
	}
	log := zap.L().With(
		zap.String("kind", string(a.Kind())),
		zap.String("subject", a.Subject()),
	)
	log.Info("assess: starting")

	c := a.Characterize(e)
	loc := a.Location()
	aware := e.tables.AWARE(a.Kind(), loc.Country, loc.Northern)
	totals := adjust.WaterScarcity(c.Totals, aware)

	mids := a.Finalize(totals)
	eps := endpoint.Aggregate(mids, e.tables.Endpoints(a.Kind()))
	single := a.Score(e, eps)

	dq := a.DataQuality(e)
	dq.Warnings = append(append([]string{}, c.Warnings...), dq.Warnings...)

	r := &model.Results{
		RunID:       uuid.NewString(),
		Kind:        a.Kind(),
		Subject:     a.Subject(),
		Country:     loc.Country,
		Methodology: a.Methodology(),
		Midpoints:   mids,
		Endpoints:   eps,
		SingleScore: single,
		DataQuality: dq,
		Breakdown:   c.Breakdown,
	}
	a.Analyze(e, totals, r)

	if err := checkFinite(r); err != nil {
		return nil, err
	}
	log.Info("assess: completed",
		zap.String("run_id", r.RunID),
		zap.Float64("score", r.SingleScore.Value),
		zap.String("confidence", string(r.DataQuality.Confidence)),
		zap.Int("warnings", len(r.DataQuality.Warnings)),
	)
	return r, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checkFinite rejects results carrying NaN or infinite numbers.
func checkFinite(r *model.Results) error {
	check := func(where string, vs ...float64) error {
		for _, v := range vs {
			if !finite(v) {
				return eris.Errorf("assess: non-finite value in %s", where)
			}
		}
		return nil
	}
	for cat, m := range r.Midpoints {
		if err := check(string(cat), m.Value, m.Range.Low, m.Range.High, m.Quality); err != nil {
			return err
		}
	}
	for cat, ep := range r.Endpoints {
		if err := check(string(cat), ep.Value, ep.Range.Low, ep.Range.High); err != nil {
			return err
		}
	}
	for item, ms := range r.Breakdown {
		for cat, m := range ms {
			if err := check(item+" "+string(cat), m.Value, m.Range.Low, m.Range.High); err != nil {
				return err
			}
		}
	}
	s := r.SingleScore
	return check("single score", s.Value, s.Range.Low, s.Range.High)
}
