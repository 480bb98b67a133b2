// Package skool extracts community listings, creator profile links and
// profile details from the Skool discovery directory.
package skool

import (
	"errors"
	"math/rand"
	"time"

	"github.com/PuerkitoBio/goquery"

	"skool-scraper/config"
	"skool-scraper/utils"
)

// ErrElementNotFound reports a DOM region that the current page does not
// have. It is non-fatal everywhere: callers degrade to a sentinel or
// absent value.
var ErrElementNotFound = errors.New("element not found")

// Navigator is the browser capability the scraper consumes: load a URL,
// get back the rendered document.
type Navigator interface {
	Navigate(url string) (*goquery.Document, error)
}

// Scraper drives the three extraction stages over one browser session.
// All methods are sequential; the session is never shared between
// in-flight calls.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	nav     Navigator
	visited *utils.URLSet
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger, nav Navigator) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		nav:     nav,
		visited: utils.NewURLSet(),
	}
}

// firstMatch probes selectors in declared order against root and returns
// the first selector's first match. Ordered capability probe, not nested
// conditionals.
func firstMatch(root *goquery.Selection, selectors ...string) (*goquery.Selection, bool) {
	for _, sel := range selectors {
		if m := root.Find(sel); m.Length() > 0 {
			return m.First(), true
		}
	}
	return nil, false
}

// pauseRandom sleeps up to ListingWaitSec to keep discovery fetches off a
// fixed cadence.
func (s *Scraper) pauseRandom() {
	time.Sleep(time.Duration(rand.Float64() * s.cfg.ListingWaitSec * float64(time.Second)))
}

// pauseFixed sleeps the fixed inter-record delay used by the resolve and
// detail stages.
func (s *Scraper) pauseFixed() {
	time.Sleep(time.Duration(s.cfg.RecordWaitSec * float64(time.Second)))
}
