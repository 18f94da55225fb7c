package models

import (
	"math"
	"strings"
)

// SortKey selects the ordering of a filtered result.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortSqmDesc   SortKey = "sqm_desc"
)

// ParseSortKey maps user input onto a known key. Anything unknown is newest.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.TrimSpace(s)); k {
	case SortPriceAsc, SortPriceDesc, SortSqmDesc:
		return k
	default:
		return SortNewest
	}
}

// FilterCriteria is the set of user-chosen constraints applied to a collection.
// Zero, negative or non-finite bounds mean "no bound".
type FilterCriteria struct {
	Query       string  `json:"q,omitempty"`
	City        string  `json:"city,omitempty"`
	Type        string  `json:"type,omitempty"`
	MinPrice    float64 `json:"minPrice,omitempty"`
	MaxPrice    float64 `json:"maxPrice,omitempty"`
	MinSqm      float64 `json:"minSqm,omitempty"`
	MinBedrooms float64 `json:"minBeds,omitempty"`
	Sort        SortKey `json:"sort,omitempty"`
}

// DefaultCriteria is the reset state of the filter form.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Sort: SortNewest}
}

// Canonical returns an equivalent criteria value with text normalised and
// unusable bounds zeroed, suitable as a map key.
func (c FilterCriteria) Canonical() FilterCriteria {
	return FilterCriteria{
		Query:       canonicalText(c.Query),
		City:        canonicalText(c.City),
		Type:        canonicalText(c.Type),
		MinPrice:    Bound(c.MinPrice),
		MaxPrice:    Bound(c.MaxPrice),
		MinSqm:      Bound(c.MinSqm),
		MinBedrooms: Bound(c.MinBedrooms),
		Sort:        ParseSortKey(string(c.Sort)),
	}
}

// Bound returns v when it is a usable threshold, otherwise 0.
func Bound(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func canonicalText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
