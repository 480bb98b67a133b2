package skool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"skool-scraper/config"
	"skool-scraper/utils"
)

// fakeNavigator serves static HTML per URL so extraction logic can be
// tested without a browser.
type fakeNavigator struct {
	pages   map[string]string
	failing map[string]bool
	visits  []string
}

func (f *fakeNavigator) Navigate(url string) (*goquery.Document, error) {
	f.visits = append(f.visits, url)
	if f.failing[url] {
		return nil, errors.New("net::ERR_CONNECTION_RESET")
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no such page: %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:    "https://www.skool.com/discovery",
		SiteOrigin: "https://www.skool.com",
	}
}

func newTestScraper(nav *fakeNavigator) *Scraper {
	return New(testConfig(), utils.NewLogger(), nav)
}

func discoveryPage(cards ...string) string {
	return fmt.Sprintf(`<html><body>
		<div class="styled__DiscoveryCards-sc-jt9hr-7 lnuLcQ">%s</div>
	</body></html>`, strings.Join(cards, "\n"))
}

func card(href, name, meta string) string {
	return fmt.Sprintf(`
		<a class="styled__ChildrenLink-sc-i4j3i6-1 kbNjnr styled__DiscoveryCardLink-sc-13ysp3k-0 eyLtsl" href=%q>
			<div class="styled__DiscoveryCardContent-sc-13ysp3k-4 cggWfX">
				<div class="styled__TypographyWrapper-sc-m28jfn-0 eoHmvk">%s</div>
				<div class="styled__DiscoveryCardMeta-sc-13ysp3k-7 jjNZwk">%s</div>
			</div>
		</a>`, href, name, meta)
}

func paginatedPage(lastPage int, cards ...string) string {
	var buttons strings.Builder
	for i := 1; i <= lastPage; i++ {
		fmt.Fprintf(&buttons,
			`<div class="styled__ButtonWrapper-sc-dscagy-1 ikjxol">%d</div>`, i)
	}
	return fmt.Sprintf(`<html><body>
		<div class="styled__DesktopPaginationControls-sc-4zz1jl-1 iBxcTJ">%s</div>
		<div class="styled__DiscoveryCards-sc-jt9hr-7 lnuLcQ">%s</div>
	</body></html>`, buttons.String(), strings.Join(cards, "\n"))
}

func aboutPage(groupInfoClass string, items ...string) string {
	var infoItems strings.Builder
	for _, item := range items {
		fmt.Fprintf(&infoItems,
			`<div class="styled__InfoItem-sc-ahd4cu-5 bSfAkV">%s</div>`, item)
	}
	return fmt.Sprintf(`<html><body>
		<div class="styled__GroupInfo-sc-ahd4cu-3 %s">%s</div>
	</body></html>`, groupInfoClass, infoItems.String())
}

func creatorItem(href, label string) string {
	return fmt.Sprintf(
		`By <a class="styled__ChildrenLink-sc-i4j3i6-1 kbNjnr" href=%q>%s</a>`, href, label)
}

func profilePage(metrics []string, socialHrefs []string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, m := range metrics {
		fmt.Fprintf(&b,
			`<div class="styled__TypographyWrapper-sc-m28jfn-0 eoHmvk">%s</div>`, m)
	}
	if socialHrefs != nil {
		b.WriteString(`<div class="styled__UserSocialLinksWrapper-sc-vbxyw2-0 kILtEf">`)
		for _, href := range socialHrefs {
			fmt.Fprintf(&b,
				`<a class="styled__ChildrenLink-sc-i4j3i6-1 kbNjnr" href=%q></a>`, href)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}
