package skool

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"skool-scraper/models"
)

// ExtractDetails opens the creator profile and fills the record's metric
// and social fields in place. A fetch error is returned and the record
// stays all-absent; missing regions are normal and leave their fields
// absent.
func (s *Scraper) ExtractDetails(profile *models.CommunityProfile) error {
	doc, err := s.nav.Navigate(profile.CreatorProfileURL)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", profile.CreatorProfileURL, err)
	}

	profile.Contributions, profile.Followers = metricsByPosition(doc)

	if social, ok := firstMatch(doc.Selection, socialLinksSelector); ok {
		classifySocialLinks(social, profile)
	}

	return nil
}

// metricsByPosition reads the two engagement counters from the profile's
// typography elements. The page renders contributions before followers in
// document order; that positional contract lives here and nowhere else.
func metricsByPosition(doc *goquery.Document) (contributions, followers string) {
	metrics := doc.Find(typographySelector)
	if metrics.Length() == 0 {
		return "", ""
	}
	contributions = strings.TrimSpace(metrics.Eq(0).Text())
	followers = strings.TrimSpace(metrics.Eq(1).Text())
	return contributions, followers
}

// classifySocialLinks buckets each outbound link by platform domain, with
// anything unmatched landing in Website. A later link of the same platform
// overwrites an earlier one.
func classifySocialLinks(social *goquery.Selection, profile *models.CommunityProfile) {
	social.Find(linkSelector).Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists || href == "" {
			return
		}

		switch {
		case strings.Contains(href, "instagram.com"):
			profile.Instagram = href
		case strings.Contains(href, "twitter.com") || strings.Contains(href, "x.com"):
			profile.Twitter = href
		case strings.Contains(href, "youtube.com"):
			profile.YouTube = href
		case strings.Contains(href, "facebook.com"):
			profile.Facebook = href
		case strings.Contains(href, "linkedin.com"):
			profile.LinkedIn = href
		default:
			profile.Website = href
		}
	})
}

// ExtractAll maps every linkage through ExtractDetails with a fixed delay
// between records, one output record per input record in input order.
// Records without a resolved profile URL, and records whose fetch fails,
// keep every detail field absent. Metric text is kept raw here; the final
// normalization pass converts it.
func (s *Scraper) ExtractAll(links []*models.CreatorLink) []*models.CommunityProfile {
	profiles := make([]*models.CommunityProfile, 0, len(links))

	for i, link := range links {
		profile := &models.CommunityProfile{CreatorLink: *link}

		if link.CreatorProfileURL == "" {
			s.logger.Warn("[skool] Record %d has no creator profile URL — skipping fetch", i+1)
		} else {
			s.logger.Record(i+1, "Fetching details for: %s", link.CreatorProfileURL)
			if err := s.ExtractDetails(profile); err != nil {
				s.logger.Warn("[skool] Detail extraction failed for %s: %v",
					link.CreatorProfileURL, err)
			}
		}

		profiles = append(profiles, profile)
		s.pauseFixed()
	}

	return profiles
}
