package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/store"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Inspect and manage impact factors",
	Long:  "Commands for listing the effective factor set, importing CSV/XLSX factor files into the store, and exporting factors.",
}

// -- factors list --

var factorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effective impact factors",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fs, err := effectiveFactors(cmd)
		if err != nil {
			return err
		}
		if len(fs) == 0 {
			fmt.Fprintln(os.Stderr, "No factors found.")
			return nil
		}
		formatFactorsList(os.Stdout, fs)
		return nil
	},
}

// -- factors import --

var factorsImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx> ...",
	Short: "Import factor files into the configured store",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var all []factors.Factor
		for _, path := range args {
			fs, err := factors.ReadFile(ctx, path)
			if err != nil {
				return eris.Wrap(err, "factors import")
			}
			all = append(all, fs...)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		replace, _ := cmd.Flags().GetBool("replace")
		save := st.SaveFactors
		if replace {
			save = st.ReplaceFactors
		}
		n, err := save(ctx, all)
		if err != nil {
			return eris.Wrap(err, "factors import")
		}

		zap.L().Info("import complete",
			zap.Int("files", len(args)),
			zap.Int("rows", len(all)),
			zap.Int64("written", n),
			zap.Bool("replace", replace),
		)
		return nil
	},
}

// -- factors export --

var factorsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the effective impact factors as CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fs, err := effectiveFactors(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		return exportFactors(os.Stdout, out, format, fs)
	},
}

// -- factors migrate --

var factorsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the store schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		zap.L().Info("store migrated", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{factorsListCmd, factorsExportCmd} {
		c.Flags().String("scope", "", "filter by scope (production, processing)")
		c.Flags().String("country", "", "filter by country")
		c.Flags().String("category", "", "filter by food category or facility type")
		c.Flags().Bool("store", false, "include factors from the configured store")
	}
	factorsExportCmd.Flags().String("format", "csv", "export format (csv, xlsx)")
	factorsExportCmd.Flags().String("out", "", "output file (required for xlsx)")
	factorsImportCmd.Flags().Bool("replace", false, "replace all stored factors instead of upserting")

	factorsCmd.AddCommand(factorsListCmd)
	factorsCmd.AddCommand(factorsImportCmd)
	factorsCmd.AddCommand(factorsExportCmd)
	factorsCmd.AddCommand(factorsMigrateCmd)
	rootCmd.AddCommand(factorsCmd)
}

// effectiveFactors loads the repository the assess command would use and
// applies the filter flags.
func effectiveFactors(cmd *cobra.Command) ([]factors.Factor, error) {
	ctx := cmd.Context()
	filter, err := factorFilterFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	useStore := cfg.Factors.UseStore
	if cmd.Flags().Changed("store") {
		useStore, _ = cmd.Flags().GetBool("store")
	}
	var st store.Store
	if useStore {
		if st, err = openStore(ctx); err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck
	}

	repo, err := loadRepository(ctx, st)
	if err != nil {
		return nil, err
	}
	return repo.All(filter), nil
}

func factorFilterFromFlags(cmd *cobra.Command) (factors.Filter, error) {
	scope, _ := cmd.Flags().GetString("scope")
	country, _ := cmd.Flags().GetString("country")
	category, _ := cmd.Flags().GetString("category")

	var filter factors.Filter
	switch s := factors.Scope(strings.ToLower(strings.TrimSpace(scope))); s {
	case "", factors.ScopeProduction, factors.ScopeProcessing:
		filter.Scope = s
	default:
		return filter, eris.Errorf("unknown scope %q", scope)
	}
	if country != "" {
		c, err := model.ParseCountry(country)
		if err != nil {
			return filter, err
		}
		filter.Country = c
	}
	filter.Group = category
	return filter, nil
}

func exportFactors(stdout io.Writer, path, format string, fs []factors.Factor) error {
	switch strings.ToLower(format) {
	case "csv":
		if path == "" {
			return factors.WriteCSV(stdout, fs)
		}
		file, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create %s", path)
		}
		if err := factors.WriteCSV(file, fs); err != nil {
			file.Close() //nolint:errcheck
			return err
		}
		return eris.Wrapf(file.Close(), "close %s", path)
	case "xlsx":
		if path == "" {
			return eris.New("xlsx export requires --out")
		}
		return factors.WriteXLSX(path, fs)
	default:
		return eris.Errorf("unknown export format %q", format)
	}
}

// formatFactorsList writes a tabular list of factors to w.
func formatFactorsList(out io.Writer, fs []factors.Factor) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SCOPE\tGROUP\tCOUNTRY\tITEM\tIMPACT\tVALUE\tUNIT\tCONFIDENCE\tSOURCE")
	_, _ = fmt.Fprintln(w, "-----\t-----\t-------\t----\t------\t-----\t----\t----------\t------")

	for _, f := range fs {
		item := f.Item
		if item == "" {
			item = "*"
		}
		source := f.Source
		if len(source) > 40 {
			source = source[:37] + "..."
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.4g\t%s\t%s\t%s\n",
			f.Scope, f.Group, f.Country, item, f.Impact, f.Value, f.Unit, f.Confidence, source)
	}
	_ = w.Flush()
}
