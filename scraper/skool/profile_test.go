package skool

import (
	"errors"
	"testing"

	"skool-scraper/models"
)

func TestResolveProfileURL(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]string{
		"https://www.skool.com/ai-academy/about": aboutPage("gdabfl",
			"12 courses",
			creatorItem("/@jane", "Jane"),
		),
	}}
	s := newTestScraper(nav)

	got, err := s.ResolveProfileURL("https://www.skool.com/ai-academy")
	if err != nil {
		t.Fatalf("ResolveProfileURL: %v", err)
	}
	if got != "https://www.skool.com/@jane" {
		t.Errorf("profile URL: got %q, want %q", got, "https://www.skool.com/@jane")
	}
}

func TestResolveProfileURLFallbackSelector(t *testing.T) {
	// Second group-info variant class; the first selector finds nothing.
	nav := &fakeNavigator{pages: map[string]string{
		"https://www.skool.com/beta/about": aboutPage("hJcEW",
			creatorItem("/@bob", "Bob"),
		),
	}}
	s := newTestScraper(nav)

	got, err := s.ResolveProfileURL("https://www.skool.com/beta")
	if err != nil {
		t.Fatalf("ResolveProfileURL: %v", err)
	}
	if got != "https://www.skool.com/@bob" {
		t.Errorf("profile URL: got %q, want %q", got, "https://www.skool.com/@bob")
	}
}

func TestResolveProfileURLPicksLastInfoItem(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]string{
		"https://www.skool.com/gamma/about": aboutPage("gdabfl",
			creatorItem("/not-the-creator", "Linked course"),
			"340 members",
			creatorItem("/@carol", "Carol"),
		),
	}}
	s := newTestScraper(nav)

	got, err := s.ResolveProfileURL("https://www.skool.com/gamma")
	if err != nil {
		t.Fatalf("ResolveProfileURL: %v", err)
	}
	if got != "https://www.skool.com/@carol" {
		t.Errorf("profile URL: got %q, want %q", got, "https://www.skool.com/@carol")
	}
}

func TestResolveProfileURLMissingRegion(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]string{
		"https://www.skool.com/bare/about": "<html><body></body></html>",
	}}
	s := newTestScraper(nav)

	_, err := s.ResolveProfileURL("https://www.skool.com/bare")
	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("got err %v, want ErrElementNotFound", err)
	}
}

func TestResolveProfileURLLastItemWithoutLink(t *testing.T) {
	nav := &fakeNavigator{pages: map[string]string{
		"https://www.skool.com/nolink/about": aboutPage("gdabfl", "just text"),
	}}
	s := newTestScraper(nav)

	_, err := s.ResolveProfileURL("https://www.skool.com/nolink")
	if !errors.Is(err, ErrElementNotFound) {
		t.Errorf("got err %v, want ErrElementNotFound", err)
	}
}

func TestResolveAllKeepsRowOrderOnFailure(t *testing.T) {
	nav := &fakeNavigator{
		pages: map[string]string{
			"https://www.skool.com/a/about": aboutPage("gdabfl", creatorItem("/@a", "A")),
			"https://www.skool.com/c/about": aboutPage("gdabfl", creatorItem("/@c", "C")),
		},
		failing: map[string]bool{"https://www.skool.com/b/about": true},
	}
	s := newTestScraper(nav)

	listings := []*models.Listing{
		{FullURL: "https://www.skool.com/a"},
		{FullURL: "https://www.skool.com/b"},
		{FullURL: "https://www.skool.com/c"},
	}

	links := s.ResolveAll(listings)
	if len(links) != 3 {
		t.Fatalf("output rows: got %d, want 3", len(links))
	}
	for i := range listings {
		if links[i].FullURL != listings[i].FullURL {
			t.Errorf("row %d: got %q, want %q", i, links[i].FullURL, listings[i].FullURL)
		}
	}
	if links[0].CreatorProfileURL != "https://www.skool.com/@a" {
		t.Errorf("row 0 profile: got %q", links[0].CreatorProfileURL)
	}
	if links[1].CreatorProfileURL != "" {
		t.Errorf("failed row should have empty profile URL, got %q", links[1].CreatorProfileURL)
	}
	if links[2].CreatorProfileURL != "https://www.skool.com/@c" {
		t.Errorf("row 2 profile: got %q", links[2].CreatorProfileURL)
	}
}
