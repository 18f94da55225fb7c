package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Text is a free-text listing field. Scalars of any JSON type decode to
// their string form; null and composite values decode to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case string:
		*t = Text(x)
	case json.Number:
		*t = Text(formatNumber(x))
	case bool:
		*t = Text(strconv.FormatBool(x))
	default:
		*t = ""
	}
	return nil
}

func (t Text) String() string { return string(t) }

func formatNumber(n json.Number) string {
	f, err := n.Float64()
	if err != nil {
		return n.String()
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Listing is one property record as supplied by the listings document.
// Numeric fields stay untyped; services.CoerceNumber decides what they mean.
type Listing struct {
	ID          Text `json:"id"`
	Title       Text `json:"title,omitempty"`
	City        Text `json:"city,omitempty"`
	Type        Text `json:"type,omitempty"`
	Short       Text `json:"short,omitempty"`
	Description Text `json:"description,omitempty"`

	Price    any `json:"price,omitempty"`
	Sqm      any `json:"sqm,omitempty"`
	Bedrooms any `json:"bedrooms,omitempty"`
	Deposit  any `json:"deposit,omitempty"`

	PostedAt Text `json:"postedAt,omitempty"`
	Active   any  `json:"active,omitempty"`

	ImageURL      Text `json:"imageUrl,omitempty"`
	ContactEmail  Text `json:"contactEmail,omitempty"`
	ContactPhone  Text `json:"contactPhone,omitempty"`
	ContactURL    Text `json:"contactUrl,omitempty"`
	AvailableFrom Text `json:"availableFrom,omitempty"`
}

// Stats holds the dashboard figures over the active collection.
type Stats struct {
	LiveCount    int    `json:"liveCount"`
	TodayCount   int    `json:"todayCount"`
	AveragePrice *int64 `json:"averagePrice"`
}

// FilterOptions lists the values a filter form can offer for the loaded collection.
type FilterOptions struct {
	Cities   []string `json:"cities"`
	Types    []string `json:"types"`
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
}
