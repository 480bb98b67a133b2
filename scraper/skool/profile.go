package skool

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"skool-scraper/models"
)

// ResolveProfileURL opens the community's about page and returns the
// absolute URL of the creator's profile. Every failure mode — fetch error,
// missing group-info region, no info items, no link — is returned as an
// error for the caller to degrade to an absent value.
func (s *Scraper) ResolveProfileURL(listingURL string) (string, error) {
	aboutURL := listingURL + aboutSuffix

	doc, err := s.nav.Navigate(aboutURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", aboutURL, err)
	}

	info, ok := firstMatch(doc.Selection, groupInfoSelectors...)
	if !ok {
		return "", fmt.Errorf("%w: group info region", ErrElementNotFound)
	}

	href, ok := lastInfoItemLink(info)
	if !ok {
		return "", fmt.Errorf("%w: creator link", ErrElementNotFound)
	}

	return s.cfg.SiteOrigin + href, nil
}

// lastInfoItemLink returns the href of the first link inside the last
// info item. The creator link is always the last item in the group-info
// list; that positional contract lives here and nowhere else.
func lastInfoItemLink(info *goquery.Selection) (string, bool) {
	items := info.Find(infoItemSelector)
	if items.Length() == 0 {
		return "", false
	}

	href, exists := items.Last().Find(linkSelector).First().Attr("href")
	if !exists || href == "" {
		return "", false
	}
	return href, true
}

// ResolveAll maps every listing through ResolveProfileURL with a fixed
// delay between records. The output has exactly one record per input
// record, in input order; a failed resolution leaves that record's
// CreatorProfileURL empty and touches nothing else.
func (s *Scraper) ResolveAll(listings []*models.Listing) []*models.CreatorLink {
	links := make([]*models.CreatorLink, 0, len(listings))

	for i, listing := range listings {
		s.logger.Record(i+1, "Fetching URL: %s%s", listing.FullURL, aboutSuffix)

		profileURL, err := s.ResolveProfileURL(listing.FullURL)
		if err != nil {
			s.logger.Warn("[skool] Profile resolution failed for %s: %v", listing.FullURL, err)
			profileURL = ""
		} else {
			s.logger.Info("[skool] Scraped profile URL: %s", profileURL)
		}

		links = append(links, &models.CreatorLink{
			Listing:           *listing,
			CreatorProfileURL: profileURL,
		})

		s.pauseFixed()
	}

	return links
}
