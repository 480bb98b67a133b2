package models

// Sentinel marks a listing-card field whose element was missing on the page.
// It is distinct from the empty string, which marks a failed resolution or
// extraction (a CSV null).
const Sentinel = "N/A"

// Listing is one community entry scraped from a discovery page.
// FullURL is the canonical key and the only field later stages depend on.
type Listing struct {
	FullURL string
	Name    string
	Status  string
	Members string // numeric text after inline normalization, or Sentinel
	Price   string // "/month" suffix stripped, or Sentinel
}

// CreatorLink extends a Listing with the creator profile URL resolved from
// the community's about page. Empty means resolution failed for this record.
type CreatorLink struct {
	Listing
	CreatorProfileURL string
}

// CommunityProfile is the fully extended record after the profile-detail
// stage. Followers and Contributions hold the raw scraped text until the
// final normalization pass rewrites them as numerics.
type CommunityProfile struct {
	CreatorLink
	Followers     string
	Contributions string
	Instagram     string
	Twitter       string
	YouTube       string
	Facebook      string
	LinkedIn      string
	Website       string
}

// InsightReport holds the computed analytics over the final dataset.
type InsightReport struct {
	TotalCommunities int
	ResolvedProfiles int
	FreeCommunities  int
	PaidCommunities  int
	TotalMembers     float64
	AverageMembers   float64
	Largest          *CommunityProfile
	TopByFollowers   []*CommunityProfile
	ByStatus         map[string]int
}
