package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/lca-cli/internal/factors"
	"github.com/sells-group/lca-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "lca.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// openStore connects and makes sure the schema exists.
func openStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadRepository builds the effective factor repository: embedded seeds,
// then configured import files, then stored factors when st is non-nil.
// Later sources win on equal keys.
func loadRepository(ctx context.Context, st store.Store) (*factors.Repository, error) {
	repo, err := factors.Build(ctx, cfg.Factors.ImportPaths...)
	if err != nil {
		return nil, eris.Wrap(err, "load factors")
	}
	if st == nil {
		return repo, nil
	}
	stored, err := st.ListFactors(ctx, factors.Filter{})
	if err != nil {
		return nil, eris.Wrap(err, "load stored factors")
	}
	n := repo.Load(stored)
	zap.L().Info("factors: loaded from store",
		zap.String("driver", cfg.Store.Driver),
		zap.Int("rows", len(stored)),
		zap.Int("total", n),
	)
	return repo, nil
}
