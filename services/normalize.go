package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"skool-scraper/models"
	"skool-scraper/utils"
)

// ErrMalformedCount reports count text that is not numeric after stripping
// the known scale and label markers.
var ErrMalformedCount = errors.New("malformed count")

const monthSuffix = " /month"

// NormalizePrice strips a "/month" billing suffix from price text.
// Text without the marker is returned unchanged; no currency parsing is done.
func NormalizePrice(s string) string {
	if strings.Contains(s, "/month") {
		before, _, _ := strings.Cut(s, monthSuffix)
		return before
	}
	return s
}

// NormalizeCount converts compact count text to its numeric value.
// A "k" marker scales the preceding number by 1000 ("2.3k" -> 2300);
// plain decimal text parses as-is, so already-normalized values pass
// through unscaled and the conversion is idempotent.
func NormalizeCount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "k"); i >= 0 {
		n, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedCount, s)
		}
		return n * 1000, nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCount, s)
	}
	return n, nil
}

// NormalizeMemberLabel converts listing-page member text where the count is
// immediately followed by a "Members" label, e.g. "1.2kMembers" or
// "340Members".
func NormalizeMemberLabel(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "Members")
	return NormalizeCount(s)
}

// FormatCount renders a normalized count for tabular output without
// trailing zeros ("1200", not "1200.000000").
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Normalizer applies the final normalization pass over the assembled dataset.
type Normalizer struct {
	logger *utils.Logger
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Apply rewrites Price, Followers and Contributions in place with their
// normalized values. Absent values stay absent and malformed values are kept
// raw, so a record never blocks the pass and re-running it is a no-op.
func (n *Normalizer) Apply(records []*models.CommunityProfile) {
	var malformed int
	for i, r := range records {
		r.Price = NormalizePrice(r.Price)
		r.Followers = n.normalizeField(i+1, "followers", r.Followers, &malformed)
		r.Contributions = n.normalizeField(i+1, "contributions", r.Contributions, &malformed)
	}
	n.logger.Info("[normalize] Pass complete — %d records, %d malformed counts kept raw",
		len(records), malformed)
}

func (n *Normalizer) normalizeField(index int, name, raw string, malformed *int) string {
	if raw == "" || raw == models.Sentinel {
		return raw
	}
	v, err := NormalizeCount(raw)
	if err != nil {
		n.logger.Warn("[normalize] Record %d: %s %v", index, name, err)
		*malformed++
		return raw
	}
	return FormatCount(v)
}
