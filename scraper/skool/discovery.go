package skool

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"skool-scraper/models"
	"skool-scraper/services"
)

// PageCount opens the discovery index and reads the total page count from
// the last pagination control. A missing pagination region or page button
// is a normal single-page directory, never an error; only the initial
// navigation itself can fail.
func (s *Scraper) PageCount() (int, error) {
	s.logger.Info("[skool] Fetching last page number from %s", s.cfg.BaseURL)

	doc, err := s.nav.Navigate(s.cfg.BaseURL)
	if err != nil {
		return 0, fmt.Errorf("open discovery page: %w", err)
	}

	pagination, ok := firstMatch(doc.Selection, paginationSelector)
	if !ok {
		s.logger.Info("[skool] Pagination not found — defaulting to page 1")
		return 1, nil
	}

	buttons := pagination.Find(pageButtonSelector)
	if buttons.Length() == 0 {
		s.logger.Info("[skool] No page buttons found — defaulting to page 1")
		return 1, nil
	}

	last := strings.TrimSpace(buttons.Last().Text())
	n, err := strconv.Atoi(last)
	if err != nil {
		s.logger.Warn("[skool] Last page button text %q is not a number — defaulting to page 1", last)
		return 1, nil
	}

	s.logger.Info("[skool] Last page number: %d", n)
	return n, nil
}

// ExtractListingPage loads one directory page and returns its listing
// records in card order. A missing card grid yields an empty slice, and a
// card without an href is skipped; both are normal.
func (s *Scraper) ExtractListingPage(pageURL string) ([]*models.Listing, error) {
	s.logger.Info("[skool] Extracting data from %s", pageURL)

	doc, err := s.nav.Navigate(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	grid, ok := firstMatch(doc.Selection, cardGridSelector)
	if !ok {
		s.logger.Warn("[skool] Card grid not found on %s", pageURL)
		return nil, nil
	}

	var listings []*models.Listing
	grid.Find(cardLinkSelector).Each(func(_ int, card *goquery.Selection) {
		href, exists := card.Attr("href")
		if !exists || href == "" {
			s.logger.Debug("[skool] Card without href — skipping")
			return
		}

		fullURL := s.cfg.SiteOrigin + href
		if !s.visited.Add(fullURL) {
			s.logger.Debug("[skool] Duplicate listing skipped: %s", fullURL)
			return
		}

		listings = append(listings, s.parseCard(fullURL, card))
	})

	s.logger.Info("[skool] Page yielded %d listings", len(listings))
	return listings, nil
}

// parseCard reads name, status, member count and price from one discovery
// card. Missing positions keep the sentinel value.
func (s *Scraper) parseCard(fullURL string, card *goquery.Selection) *models.Listing {
	listing := &models.Listing{
		FullURL: fullURL,
		Name:    models.Sentinel,
		Status:  models.Sentinel,
		Members: models.Sentinel,
		Price:   models.Sentinel,
	}

	content, ok := firstMatch(card, cardContentSelector)
	if !ok {
		return listing
	}

	if name, ok := firstMatch(content, typographySelector); ok {
		listing.Name = strings.TrimSpace(name.Text())
	}

	meta, ok := firstMatch(content, cardMetaSelector)
	if !ok {
		return listing
	}

	// Meta text reads "status • members • price"; trailing positions may
	// be absent.
	parts := strings.Split(strings.TrimSpace(meta.Text()), metaDelimiter)
	if len(parts) > 0 {
		listing.Status = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		raw := strings.TrimSpace(parts[1])
		if v, err := services.NormalizeMemberLabel(raw); err == nil {
			listing.Members = services.FormatCount(v)
		} else {
			s.logger.Warn("[skool] %s: member count %v — keeping raw text", fullURL, err)
			listing.Members = raw
		}
	}
	if len(parts) > 2 {
		listing.Price = services.NormalizePrice(strings.TrimSpace(parts[2]))
	}

	return listing
}

// DiscoverAll walks every directory page in order and concatenates the
// per-page listings: page order first, card order within a page. Fetches
// are spaced by a randomized delay. A failed page is logged and skipped;
// only the initial page-count fetch aborts the run.
func (s *Scraper) DiscoverAll() ([]*models.Listing, error) {
	count, err := s.PageCount()
	if err != nil {
		return nil, err
	}

	s.logger.Info("[skool] Total number of pages: %d", count)

	var all []*models.Listing
	for page := 1; page <= count; page++ {
		s.pauseRandom()

		pageURL := fmt.Sprintf("%s?p=%d", s.cfg.BaseURL, page)
		listings, err := s.ExtractListingPage(pageURL)
		if err != nil {
			s.logger.Error("[skool] Page %d failed: %v", page, err)
			continue
		}
		all = append(all, listings...)
	}

	s.logger.Info("[skool] Discovery complete — %d listings across %d pages", len(all), count)
	return all, nil
}
