package db

import (
	"context"
	"database/sql"
	"sort"

	"github.com/Zia971/immo-opportunit-s/internal/history"
	"github.com/Zia971/immo-opportunit-s/internal/util"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DbConnectionString.Value)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func EnsureSchema(ctx context.Context, connection *bun.DB) error {
	_, err := connection.NewCreateTable().
		Model((*HistorySnapshotModel)(nil)).
		IfNotExists().
		Exec(ctx)

	return err
}

// LoadSnapshot reads the previous run's history store.
func LoadSnapshot(ctx context.Context, connection bun.IDB) (history.Store, error) {
	var models []*HistorySnapshotModel
	err := connection.NewSelect().Model(&models).Order("listing_id").Scan(ctx)
	if err != nil {
		return nil, err
	}

	store := make(history.Store, len(models))
	for _, m := range models {
		store[m.ListingId] = history.Record{
			FirstSeen:    m.FirstSeen,
			LastSeen:     m.LastSeen,
			LastPrice:    m.LastPrice,
			Status:       m.Status,
			PriceDropPct: m.PriceDropPct,
		}
	}

	return store, nil
}

// ReplaceSnapshot swaps the whole history store in one transaction, so a
// failed run leaves the previous snapshot intact.
func ReplaceSnapshot(ctx context.Context, connection *bun.DB, store history.Store) error {
	models := make([]*HistorySnapshotModel, 0, len(store))
	for id, rec := range store {
		models = append(models, &HistorySnapshotModel{
			ListingId:    id,
			FirstSeen:    rec.FirstSeen,
			LastSeen:     rec.LastSeen,
			LastPrice:    rec.LastPrice,
			Status:       rec.Status,
			PriceDropPct: rec.PriceDropPct,
		})
	}

	// deterministic insert order
	sort.Slice(models, func(i, j int) bool { return models[i].ListingId < models[j].ListingId })

	return connection.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*HistorySnapshotModel)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return err
		}

		if len(models) == 0 {
			return nil
		}

		_, err := tx.NewInsert().Model(&models).Exec(ctx)
		return err
	})
}
