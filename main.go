package main

import (
	"fmt"
	"os"
	"time"

	"skool-scraper/browser"
	"skool-scraper/config"
	"skool-scraper/pipeline"
	"skool-scraper/scraper/skool"
	"skool-scraper/services"
	"skool-scraper/storage"
	"skool-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Skool Community Scraper starting ===")
	logger.Info("Config — base: %s | stage: %s | profile: %q | waits: %.1fs/%.1fs",
		cfg.BaseURL, cfg.Stage, cfg.ChromeProfile, cfg.ListingWaitSec, cfg.RecordWaitSec)

	store, err := storage.NewCSVStore(cfg.OutputDir)
	if err != nil {
		logger.Error("Failed to create CSV store: %v", err)
		os.Exit(1)
	}

	var nav skool.Navigator
	if pipeline.NeedsBrowser(cfg.Stage) {
		session, err := browser.NewSession(browser.Options{
			ChromeBin:   cfg.ChromeBin,
			UserDataDir: cfg.UserDataDir,
			Profile:     cfg.ChromeProfile,
			Headless:    cfg.Headless,
			Settle:      2 * time.Second,
		})
		if err != nil {
			logger.Error("Failed to start browser session: %v", err)
			os.Exit(1)
		}
		defer session.Close()
		nav = session
	}

	scraper := skool.New(cfg, logger, nav)
	normalizer := services.NewNormalizer(logger)

	p := pipeline.New(cfg, logger, scraper, store, normalizer)
	profiles, err := p.Run(cfg.Stage)
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		logger.Error("No communities in the final dataset. Exiting.")
		os.Exit(1)
	}

	// The database sink is best-effort: the CSV outputs are the canonical
	// result of a run.
	var sink storage.ProfileSink
	if pgWriter, err := storage.NewPostgresWriter(cfg.DSN()); err != nil {
		logger.Warn("PostgreSQL unavailable, skipping database sink: %v", err)
	} else {
		sink = pgWriter
	}
	if sink != nil {
		defer sink.Close()
		if err := sink.Write(profiles); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Final dataset stored in PostgreSQL (table: communities)")
			if dbProfiles, err := sink.FetchAll(); err == nil {
				profiles = dbProfiles
			} else {
				logger.Error("Failed to fetch communities from DB for insights: %v", err)
			}
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(profiles)
	insightSvc.Print(report)

	fmt.Printf("  Done. Final dataset → %s (%d communities)\n\n",
		cfg.FinalPath(), report.TotalCommunities)
}
