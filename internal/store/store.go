// Package store persists impact factors and assessment run summaries in
// SQLite or Postgres.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/uncertainty"
)

// Store defines the persistence interface for factors and run history.
type Store interface {
	// Factors
	SaveFactors(ctx context.Context, fs []factors.Factor) (int64, error)
	ReplaceFactors(ctx context.Context, fs []factors.Factor) (int64, error)
	ListFactors(ctx context.Context, filter factors.Filter) ([]factors.Factor, error)

	// Runs
	SaveRuns(ctx context.Context, runs []RunSummary) (int64, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]RunSummary, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Subject string `json:"subject,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// RunSummary is the persisted headline of one assessment.
type RunSummary struct {
	ID            string                `json:"run_id" yaml:"run_id"`
	Kind          model.AssessmentKind  `json:"assessment_kind" yaml:"assessment_kind"`
	Subject       string                `json:"subject" yaml:"subject"`
	Country       model.Country         `json:"country" yaml:"country"`
	SingleScore   float64               `json:"single_score" yaml:"single_score"`
	GlobalWarming float64               `json:"global_warming" yaml:"global_warming"`
	Unit          string                `json:"unit" yaml:"unit"`
	Confidence    model.ConfidenceLevel `json:"overall_confidence" yaml:"overall_confidence"`
	CreatedAt     time.Time             `json:"created_at" yaml:"created_at"`
}

// SummaryOf extracts the run summary from assessment results.
func SummaryOf(r *model.Results) RunSummary {
	id := r.RunID
	if id == "" {
		id = uuid.NewString()
	}
	gw := r.Midpoints[model.GlobalWarming]
	return RunSummary{
		ID:            id,
		Kind:          r.Kind,
		Subject:       r.Subject,
		Country:       r.Country,
		SingleScore:   r.SingleScore.Value,
		GlobalWarming: gw.Value,
		Unit:          gw.Unit,
		Confidence:    r.DataQuality.Confidence,
		CreatedAt:     time.Now().UTC(),
	}
}

// factorColumns is the column order shared by both backends.
var factorColumns = []string{
	"id", "factor_key", "scope", "grp", "country", "item", "impact", "value", "unit",
	"confidence", "source", "year", "low", "high",
	"reliability", "completeness", "temporal", "geographical", "technological", "updated_at",
}

// factorUpdateColumns are rewritten when a factor key already exists.
var factorUpdateColumns = factorColumns[2:]

var runColumns = []string{
	"id", "kind", "subject", "country", "single_score", "global_warming", "unit", "confidence", "created_at",
}

func factorRow(f factors.Factor, now time.Time) []any {
	return []any{
		uuid.NewString(),
		f.Key().String(),
		string(f.Scope),
		f.Group,
		string(f.Country),
		f.Item,
		string(f.Impact),
		f.Value,
		f.Unit,
		string(f.Confidence),
		f.Source,
		f.Year,
		f.Range.Low,
		f.Range.High,
		f.Pedigree.Reliability,
		f.Pedigree.Completeness,
		f.Pedigree.TemporalCorrelation,
		f.Pedigree.GeographicalCorrelation,
		f.Pedigree.TechnologicalCorrelation,
		now,
	}
}

func runRow(r RunSummary) []any {
	return []any{
		r.ID, string(r.Kind), r.Subject, string(r.Country),
		r.SingleScore, r.GlobalWarming, r.Unit, string(r.Confidence), r.CreatedAt,
	}
}

type scannable interface {
	Scan(dest ...any) error
}

// factorSelect lists the columns scanFactor reads.
const factorSelect = `SELECT scope, grp, country, item, impact, value, unit, confidence, source, year, low, high,
	reliability, completeness, temporal, geographical, technological`

// scanFactor rebuilds a factor through the same validation as file imports.
func scanFactor(row scannable) (factors.Factor, error) {
	var (
		scope, group, country, item, impact, unit, confidence, source string
		value, low, high                                              float64
		year, rel, comp, temp, geo, tech                              int
	)
	if err := row.Scan(&scope, &group, &country, &item, &impact, &value, &unit, &confidence, &source, &year,
		&low, &high, &rel, &comp, &temp, &geo, &tech); err != nil {
		return factors.Factor{}, err
	}
	return factors.Fields{
		Scope:      factors.Scope(scope),
		Group:      group,
		Country:    country,
		Item:       item,
		Impact:     impact,
		Value:      value,
		Unit:       unit,
		Confidence: confidence,
		Source:     source,
		Year:       year,
		Range:      uncertainty.Range{Low: low, High: high},
		Pedigree:   uncertainty.NewPedigree(rel, comp, temp, geo, tech),
	}.Build()
}

const runSelect = `SELECT id, kind, subject, country, single_score, global_warming, unit, confidence, created_at`

func scanRun(row scannable) (RunSummary, error) {
	var (
		r                   RunSummary
		kind, country, conf string
	)
	if err := row.Scan(&r.ID, &kind, &r.Subject, &country, &r.SingleScore, &r.GlobalWarming, &r.Unit, &conf, &r.CreatedAt); err != nil {
		return RunSummary{}, err
	}
	r.Kind = model.AssessmentKind(kind)
	r.Country = model.Country(country)
	r.Confidence = model.ConfidenceLevel(conf)
	return r, nil
}

// factorWhere renders the filter as a WHERE clause using the backend's
// placeholder style.
func factorWhere(f factors.Filter, placeholder func(n int) string) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, placeholder(len(args))))
	}
	if f.Scope != "" {
		add("scope = %s", string(f.Scope))
	}
	if f.Country != "" {
		add("lower(country) = lower(%s)", strings.TrimSpace(string(f.Country)))
	}
	if f.Group != "" {
		add("lower(grp) = lower(%s)", strings.TrimSpace(f.Group))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
