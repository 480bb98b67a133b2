// Package pipeline sequences the extraction stages and the persistence
// between them.
package pipeline

import (
	"fmt"

	"skool-scraper/config"
	"skool-scraper/models"
	"skool-scraper/scraper/skool"
	"skool-scraper/services"
	"skool-scraper/storage"
	"skool-scraper/utils"
)

// Stage names a run can start from. "all" is an alias for StageDiscover.
const (
	StageAll       = "all"
	StageDiscover  = "discover"
	StageResolve   = "resolve"
	StageDetails   = "details"
	StageNormalize = "normalize"
)

// Pipeline runs discover → resolve → details → normalize, persisting the
// table after every stage.
//
// Stages are merged positionally: each stage emits exactly one output row
// per input row, in input order, so row N of every table describes the same
// community all the way through. ResolveAll and ExtractAll guarantee this
// by construction, and the CSV store preserves row order. Every table also
// carries Full URL, so misalignment would be detectable after the fact.
type Pipeline struct {
	cfg        *config.Config
	logger     *utils.Logger
	scraper    *skool.Scraper
	store      *storage.CSVStore
	normalizer *services.Normalizer
}

// New creates a Pipeline over the given collaborators.
func New(cfg *config.Config, logger *utils.Logger, scraper *skool.Scraper,
	store *storage.CSVStore, normalizer *services.Normalizer) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		logger:     logger,
		scraper:    scraper,
		store:      store,
		normalizer: normalizer,
	}
}

// NeedsBrowser reports whether the given start stage performs any fetches.
func NeedsBrowser(stage string) bool {
	return stage != StageNormalize
}

func stageIndex(stage string) (int, error) {
	switch stage {
	case StageAll, StageDiscover:
		return 0, nil
	case StageResolve:
		return 1, nil
	case StageDetails:
		return 2, nil
	case StageNormalize:
		return 3, nil
	default:
		return 0, fmt.Errorf("unknown stage %q", stage)
	}
}

// Run executes the pipeline from the given start stage onward. A later
// start stage reads its input from the previous stage's file; a missing or
// unreadable input file is the one fatal condition besides failing to open
// the discovery index. Per-record failures inside a stage degrade to
// absent fields and never abort the run.
func (p *Pipeline) Run(stage string) ([]*models.CommunityProfile, error) {
	start, err := stageIndex(stage)
	if err != nil {
		return nil, err
	}

	var (
		listings []*models.Listing
		links    []*models.CreatorLink
		profiles []*models.CommunityProfile
	)

	if start <= 0 {
		p.logger.Info("[pipeline] Stage 1/4: discovering listings")
		listings, err = p.scraper.DiscoverAll()
		if err != nil {
			return nil, fmt.Errorf("discover: %w", err)
		}
		if err := p.store.WriteListings(p.cfg.ListingsPath(), listings); err != nil {
			return nil, fmt.Errorf("persist listings: %w", err)
		}
		p.logger.Info("[pipeline] %d listings saved to %s", len(listings), p.cfg.ListingsPath())
	} else if start == 1 {
		listings, err = p.store.ReadListings(p.cfg.ListingsPath())
		if err != nil {
			return nil, fmt.Errorf("load listings: %w", err)
		}
	}

	if start <= 1 {
		p.logger.Info("[pipeline] Stage 2/4: resolving creator profiles for %d listings", len(listings))
		links = p.scraper.ResolveAll(listings)
		if err := p.store.WriteCreatorLinks(p.cfg.ProfilesPath(), links); err != nil {
			return nil, fmt.Errorf("persist creator links: %w", err)
		}
		p.logger.Info("[pipeline] Creator profile URLs saved to %s", p.cfg.ProfilesPath())
	} else if start == 2 {
		links, err = p.store.ReadCreatorLinks(p.cfg.ProfilesPath())
		if err != nil {
			return nil, fmt.Errorf("load creator links: %w", err)
		}
	}

	if start <= 2 {
		p.logger.Info("[pipeline] Stage 3/4: extracting details for %d profiles", len(links))
		profiles = p.scraper.ExtractAll(links)
		if err := p.store.WriteProfiles(p.cfg.DetailsPath(), profiles); err != nil {
			return nil, fmt.Errorf("persist profile details: %w", err)
		}
		p.logger.Info("[pipeline] Profile details saved to %s", p.cfg.DetailsPath())
	} else {
		profiles, err = p.store.ReadProfiles(p.cfg.DetailsPath())
		if err != nil {
			return nil, fmt.Errorf("load profile details: %w", err)
		}
	}

	p.logger.Info("[pipeline] Stage 4/4: normalizing %d records", len(profiles))
	p.normalizer.Apply(profiles)
	if err := p.store.WriteProfiles(p.cfg.FinalPath(), profiles); err != nil {
		return nil, fmt.Errorf("persist final dataset: %w", err)
	}
	p.logger.Info("[pipeline] Final dataset saved to %s", p.cfg.FinalPath())

	return profiles, nil
}
