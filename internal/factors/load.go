package factors

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadFile loads factors from a .csv or .xlsx file.
func ReadFile(ctx context.Context, path string) ([]Factor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "factors: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f)
	case ".xlsx":
		return ReadXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("factors: unsupported file type %q", filepath.Ext(path))
	}
}

// Build returns a repository holding the embedded seeds followed by the
// factors in each of paths, so file rows override seeds with the same key.
func Build(ctx context.Context, paths ...string) (*Repository, error) {
	repo, err := NewSeeded()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		fs, err := ReadFile(ctx, p)
		if err != nil {
			return nil, err
		}
		n := repo.Load(fs)
		zap.L().Info("factors: imported file",
			zap.String("path", p),
			zap.Int("rows", len(fs)),
			zap.Int("total", n),
		)
	}
	return repo, nil
}
