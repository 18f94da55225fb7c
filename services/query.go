package services

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"fairhuur/models"
	"fairhuur/utils"
)

// QueryEngine turns a listing collection and filter criteria into the
// visible order, and computes the dashboard statistics.
type QueryEngine struct {
	logger *utils.Logger
	now    func() time.Time
}

// NewQueryEngine creates a QueryEngine using the wall clock.
func NewQueryEngine(logger *utils.Logger) *QueryEngine {
	return &QueryEngine{logger: logger, now: time.Now}
}

// WithClock returns a copy of the engine that reads "now" from clock.
func (q *QueryEngine) WithClock(clock func() time.Time) *QueryEngine {
	return &QueryEngine{logger: q.logger, now: clock}
}

// FilterAndSort returns the listings matching c in the order c.Sort asks for.
// The input slice is left untouched; ties keep their input order.
func (q *QueryEngine) FilterAndSort(listings []*models.Listing, c models.FilterCriteria) []*models.Listing {
	c = c.Canonical()

	result := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if l != nil && matches(l, c) {
			result = append(result, l)
		}
	}

	slices.SortStableFunc(result, comparator(c.Sort))

	if q.logger != nil {
		q.logger.Debug("[query] %d of %d listings match (sort=%s)", len(result), len(listings), c.Sort)
	}
	return result
}

// matches expects canonical criteria.
func matches(l *models.Listing, c models.FilterCriteria) bool {
	if c.Query != "" && !strings.Contains(haystack(l), c.Query) {
		return false
	}
	if c.City != "" && NormalizeText(l.City) != c.City {
		return false
	}
	if c.Type != "" && NormalizeText(l.Type) != c.Type {
		return false
	}

	// absent numbers never fail a threshold
	if p, ok := CoerceNumber(l.Price); ok {
		if c.MinPrice > 0 && p < c.MinPrice {
			return false
		}
		if c.MaxPrice > 0 && p > c.MaxPrice {
			return false
		}
	}
	if s, ok := CoerceNumber(l.Sqm); ok && c.MinSqm > 0 && s < c.MinSqm {
		return false
	}
	if b, ok := CoerceNumber(l.Bedrooms); ok && c.MinBedrooms > 0 && b < c.MinBedrooms {
		return false
	}
	return true
}

func haystack(l *models.Listing) string {
	return NormalizeText(strings.Join([]string{
		string(l.Title),
		string(l.City),
		string(l.Type),
		string(l.Short),
		string(l.Description),
	}, " "))
}

func comparator(key models.SortKey) func(a, b *models.Listing) int {
	switch key {
	case models.SortPriceAsc:
		return func(a, b *models.Listing) int {
			return cmp.Compare(numberOr(a.Price, 0), numberOr(b.Price, 0))
		}
	case models.SortPriceDesc:
		return func(a, b *models.Listing) int {
			return cmp.Compare(numberOr(b.Price, 0), numberOr(a.Price, 0))
		}
	case models.SortSqmDesc:
		return func(a, b *models.Listing) int {
			return cmp.Compare(numberOr(b.Sqm, 0), numberOr(a.Sqm, 0))
		}
	default:
		return func(a, b *models.Listing) int {
			return postedTime(b).Compare(postedTime(a))
		}
	}
}

// postedTime is the sort key for newest-first; unparseable dates are oldest.
func postedTime(l *models.Listing) time.Time {
	t, _ := ParsePostedAt(string(l.PostedAt))
	return t
}

// SortNewest returns a newest-first copy of listings.
func SortNewest(listings []*models.Listing) []*models.Listing {
	out := slices.Clone(listings)
	slices.SortStableFunc(out, comparator(models.SortNewest))
	return out
}
