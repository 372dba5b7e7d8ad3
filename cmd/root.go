package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"time"

	"github.com/Zia971/immo-opportunit-s/internal/criteria"
	"github.com/Zia971/immo-opportunit-s/internal/db"
	"github.com/Zia971/immo-opportunit-s/internal/export"
	"github.com/Zia971/immo-opportunit-s/internal/history"
	"github.com/Zia971/immo-opportunit-s/internal/log"
	"github.com/Zia971/immo-opportunit-s/internal/normalize"
	"github.com/Zia971/immo-opportunit-s/internal/ranking"
	"github.com/Zia971/immo-opportunit-s/internal/source"
	"github.com/Zia971/immo-opportunit-s/internal/util"
	"github.com/uptrace/bun"
)

func Run(ctx context.Context, connection *bun.DB, config *util.Config) error {
	var dryRun bool
	var topN int
	flag.BoolVar(&dryRun, "dry", false, "dry run: skip snapshot write and csv export")
	flag.IntVar(&topN, "top", 10, "number of ranked listings to print")
	flag.Parse()

	logger := log.GetLogger()

	if dryRun {
		logger = log.AddGlobalField("DryRun", dryRun)
	}

	logger.Debug("loading calibration workbook")
	catalog, catWeights, err := criteria.LoadCalibration(config.CalibrationPath.Value)
	if err != nil {
		// a renamed or absent workbook degrades to empty calibration, it never stops a run
		logger.Warnf("scoring with empty calibration: %v", err)
	}

	targets := criteria.BuildTargets(catalog)
	logger.WithField("CriteriaCount", len(targets)).WithField("CategoryCount", len(catWeights)).Info("resolved scoring criteria")

	sourcesCfg, err := source.LoadConfig(config.SourcesConfigPath.Value)
	if err != nil {
		logger.Warnf("collecting nothing: %v", err)
		sourcesCfg = &source.Config{}
	}

	raw := source.Collect(sourcesCfg, logger)
	listings := normalize.Records(raw)
	logger.WithField("RawCount", len(raw)).WithField("ListingCount", len(listings)).Info("collected and normalized listings")

	if err := db.EnsureSchema(ctx, connection); err != nil {
		return err
	}

	logger.Debug("loading history snapshot")
	previous, err := db.LoadSnapshot(ctx, connection)
	if err != nil {
		return err
	}
	logger.WithField("HistoryCount", len(previous)).Info("loaded history snapshot")

	now := time.Now().UTC()
	next := history.UpdateHistory(now, listings, previous, history.Options{
		RetainStaleIds: config.RetainStaleIds.Bool(),
	})
	history.Enrich(now, listings, next)

	ranked := ranking.Rank(listings, targets, catWeights)

	if dryRun {
		logger.Debug("skipping snapshot write and export")
	} else {
		if err := db.ReplaceSnapshot(ctx, connection, next); err != nil {
			return err
		}
		logger.WithField("SnapshotCount", len(next)).Info("replaced history snapshot")

		csvPath := filepath.Join(config.OutputDir.Value, "all_listings.csv")
		if err := export.WriteCSV(csvPath, ranked); err != nil {
			return err
		}
		logger.WithField("Path", csvPath).WithField("RankedCount", len(ranked)).Info("wrote ranked listings")
	}

	export.PrintTop(ranked, topN)

	return nil
}
