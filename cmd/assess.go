package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/lca-cli/internal/assess"
	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/input"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/report"
	"github.com/sells-group/lca-cli/internal/store"
)

var assessCmd = &cobra.Command{
	Use:   "assess <input.json|input.yaml|-> ...",
	Short: "Run assessments on one or more input documents",
	Long:  "Detects the assessment kind of each input (simple, comprehensive or processing), runs the impact pipeline and writes the results.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts, err := assessOptionsFromFlags(cmd)
		if err != nil {
			return err
		}

		var st store.Store
		if opts.useStore {
			if st, err = openStore(ctx); err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
		}

		eng, err := newEngine(ctx, st)
		if err != nil {
			return err
		}

		results, runErr := assessFiles(ctx, eng, args, opts)
		if len(results) > 0 {
			if err := writeResults(os.Stdout, opts.out, opts.format, results); err != nil {
				return err
			}
			if st != nil {
				if err := saveRuns(ctx, st, results); err != nil {
					return err
				}
			}
		}
		return runErr
	},
}

type assessOptions struct {
	format        report.Format
	out           string
	weighting     model.WeightingMethod
	normalization model.NormalizationMethod
	concurrency   int
	useStore      bool
}

func assessOptionsFromFlags(cmd *cobra.Command) (assessOptions, error) {
	f := cmd.Flags()
	if f.Changed("weighting") {
		cfg.Assessment.Weighting, _ = f.GetString("weighting")
	}
	if f.Changed("normalization") {
		cfg.Assessment.Normalization, _ = f.GetString("normalization")
	}
	if f.Changed("concurrency") {
		cfg.Assessment.Concurrency, _ = f.GetInt("concurrency")
	}
	if f.Changed("store") {
		cfg.Factors.UseStore, _ = f.GetBool("store")
	}
	if err := cfg.Validate("assess"); err != nil {
		return assessOptions{}, err
	}

	formatName, _ := f.GetString("format")
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return assessOptions{}, err
	}
	out, _ := f.GetString("out")
	if format == report.FormatXLSX && out == "" {
		return assessOptions{}, eris.New("xlsx output requires --out")
	}

	opts := assessOptions{
		format:      format,
		out:         out,
		concurrency: cfg.Assessment.Concurrency,
		useStore:    cfg.Factors.UseStore,
	}
	// Validate has already rejected unknown names.
	if cfg.Assessment.Weighting != "" {
		opts.weighting, _ = model.ParseWeightingMethod(cfg.Assessment.Weighting)
	}
	if cfg.Assessment.Normalization != "" {
		opts.normalization, _ = model.ParseNormalizationMethod(cfg.Assessment.Normalization)
	}
	return opts, nil
}

func newEngine(ctx context.Context, st store.Store) (*assess.Engine, error) {
	tables, err := factors.LoadTables(cfg.Factors.TablesPath)
	if err != nil {
		return nil, eris.Wrap(err, "load reference tables")
	}
	repo, err := loadRepository(ctx, st)
	if err != nil {
		return nil, err
	}
	return assess.NewEngine(tables, repo, assess.WithReferenceYear(cfg.Assessment.ReferenceYear)), nil
}

// assessFiles runs every input concurrently. Results keep argument order;
// a failed input is logged and skipped, and the returned error counts the
// failures.
func assessFiles(ctx context.Context, eng *assess.Engine, paths []string, opts assessOptions) ([]*model.Results, error) {
	concurrency := opts.concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	zap.L().Info("assessing inputs",
		zap.Int("inputs", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	slots := make([]*model.Results, len(paths))
	var failed atomic.Int64
	for i, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("input", path))

			r, err := assessFile(gctx, eng, path, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				failed.Add(1)
				log.Error("assessment failed", zap.Error(err))
				return nil // don't abort the batch on one bad input
			}
			slots[i] = r
			log.Info("assessment complete",
				zap.String("run_id", r.RunID),
				zap.String("kind", string(r.Kind)),
				zap.Float64("single_score", r.SingleScore.Value),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "assess")
	}

	results := make([]*model.Results, 0, len(paths))
	for _, r := range slots {
		if r != nil {
			results = append(results, r)
		}
	}
	if n := failed.Load(); n > 0 {
		return results, eris.Errorf("assess: %d of %d inputs failed", n, len(paths))
	}
	return results, nil
}

func assessFile(ctx context.Context, eng *assess.Engine, path string, opts assessOptions) (*model.Results, error) {
	doc, err := input.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	doc.Override(opts.weighting, opts.normalization)
	for _, w := range doc.Warnings {
		zap.L().Warn("input warning", zap.String("input", path), zap.String("warning", w))
	}
	return eng.Run(ctx, doc.Activity())
}

// writeResults writes to path when set, otherwise to stdout.
func writeResults(stdout io.Writer, path string, f report.Format, rs []*model.Results) error {
	if f == report.FormatXLSX {
		return report.WriteXLSX(path, rs)
	}
	if path == "" {
		return report.Write(stdout, f, rs)
	}
	file, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := report.Write(file, f, rs); err != nil {
		file.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(file.Close(), "close %s", path)
}

func saveRuns(ctx context.Context, st store.Store, rs []*model.Results) error {
	summaries := make([]store.RunSummary, len(rs))
	for i, r := range rs {
		summaries[i] = store.SummaryOf(r)
	}
	n, err := st.SaveRuns(ctx, summaries)
	if err != nil {
		return eris.Wrap(err, "save runs")
	}
	zap.L().Info("runs recorded", zap.Int64("rows", n))
	return nil
}

func init() {
	f := assessCmd.Flags()
	f.String("format", "json", "output format (json, yaml, table, xlsx)")
	f.String("out", "", "write results to this file instead of stdout")
	f.String("weighting", "", "override the weighting method (e.g. EqualWeights, ExpertJudgment)")
	f.String("normalization", "", "override the normalization method")
	f.Int("concurrency", 0, "inputs assessed in parallel (default from config)")
	f.Bool("store", false, "load factors from and record runs in the configured store")
	rootCmd.AddCommand(assessCmd)
}
