package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/lca-cli/internal/model"
)

// WriteTable prints a human-readable summary of each result.
func WriteTable(out io.Writer, rs []*model.Results) error {
	p := message.NewPrinter(language.English)
	for i, r := range rs {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		if err := writeOne(out, p, r); err != nil {
			return eris.Wrapf(err, "report: table for %s", r.Subject)
		}
	}
	return nil
}

func writeOne(out io.Writer, p *message.Printer, r *model.Results) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Subject:\t%s\n", r.Subject)
	_, _ = fmt.Fprintf(w, "Assessment:\t%s (%s)\n", r.Kind, r.Country)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", r.RunID)
	_, _ = fmt.Fprintf(w, "Functional unit:\t%s\n", r.Methodology.FunctionalUnit)
	_, _ = p.Fprintf(w, "Single score:\t%.4f %s [%.4f, %.4f]\n",
		r.SingleScore.Value, r.SingleScore.Unit, r.SingleScore.Range.Low, r.SingleScore.Range.High)
	_, _ = fmt.Fprintf(w, "Confidence:\t%s\n", r.DataQuality.Confidence)
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "CATEGORY\tVALUE\tUNIT\tLOW\tHIGH\tQUALITY")
	_, _ = fmt.Fprintln(w, "--------\t-----\t----\t---\t----\t-------")
	for _, c := range midpointOrder(r) {
		m := r.Midpoints[c]
		_, _ = p.Fprintf(w, "%s\t%.4f\t%s\t%.4f\t%.4f\t%.2f\n", c, m.Value, m.Unit, m.Range.Low, m.Range.High, m.Quality)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintln(w, "ENDPOINT\tVALUE\tUNIT")
	_, _ = fmt.Fprintln(w, "--------\t-----\t----")
	for _, e := range model.EndpointCategories() {
		ep, ok := r.Endpoints[e]
		if !ok {
			continue
		}
		_, _ = p.Fprintf(w, "%s\t%.6g\t%s\n", e, ep.Value, ep.Unit)
	}

	if r.Benchmarking != nil {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintf(w, "Benchmark:\t%s\n", r.Benchmarking.Reference)
		for _, b := range r.Benchmarking.Intensities {
			_, _ = p.Fprintf(w, "  %s\t%.1f %s\t%s\n", b.Metric, b.Value, b.Unit, b.Performance)
		}
	}
	if len(r.Recommendations) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Recommendations:")
		for _, rec := range r.Recommendations {
			_, _ = fmt.Fprintf(w, "  [%s]\t%s\n", rec.Priority, rec.Title)
		}
	}
	if len(r.DataQuality.Warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.DataQuality.Warnings {
			_, _ = fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
	return w.Flush()
}
