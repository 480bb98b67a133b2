package skool

// CSS selectors for the discovery, about and profile pages. The site uses
// styled-components classes, so each selector carries both the stable
// component class and its current hash suffix.
const (
	paginationSelector = ".styled__DesktopPaginationControls-sc-4zz1jl-1.iBxcTJ"
	pageButtonSelector = ".styled__ButtonWrapper-sc-dscagy-1.ikjxol"

	cardGridSelector    = ".styled__DiscoveryCards-sc-jt9hr-7.lnuLcQ"
	cardLinkSelector    = "a.styled__DiscoveryCardLink-sc-13ysp3k-0.eyLtsl"
	cardContentSelector = ".styled__DiscoveryCardContent-sc-13ysp3k-4.cggWfX"
	cardMetaSelector    = ".styled__DiscoveryCardMeta-sc-13ysp3k-7.jjNZwk"

	typographySelector = ".styled__TypographyWrapper-sc-m28jfn-0.eoHmvk"

	infoItemSelector = ".styled__InfoItem-sc-ahd4cu-5.bSfAkV"
	linkSelector     = "a.styled__ChildrenLink-sc-i4j3i6-1.kbNjnr"

	socialLinksSelector = ".styled__UserSocialLinksWrapper-sc-vbxyw2-0.kILtEf"

	// metaDelimiter splits card meta text into status, members and price.
	metaDelimiter = "•"

	aboutSuffix = "/about"
)

// groupInfoSelectors is the fallback chain for the about page's group-info
// region; the hash suffix differs between page variants. Probed in order,
// first match wins.
var groupInfoSelectors = []string{
	".styled__GroupInfo-sc-ahd4cu-3.gdabfl",
	".styled__GroupInfo-sc-ahd4cu-3.hJcEW",
}
