package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"fairhuur/models"
	"fairhuur/services"
	"fairhuur/utils"
)

var errInvalidDocument = errors.New("invalid listings document")

// Decoder turns a listings document into the active collection.
type Decoder struct {
	logger *utils.Logger
}

// NewDecoder creates a Decoder with the given logger.
func NewDecoder(logger *utils.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode reads {"listings": [...]}. A missing or null listings key yields an
// empty collection. Empty entries, non-objects, inactive listings and repeated
// ids are dropped; the rest keep document order.
func (d *Decoder) Decode(data []byte) ([]*models.Listing, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("storage: decode: %w: malformed JSON", errInvalidDocument)
	}

	arr := gjson.GetBytes(data, "listings")
	if !truthy(arr) {
		d.logger.Warn("[decoder] Document has no listings")
		return []*models.Listing{}, nil
	}
	if !arr.IsArray() {
		return nil, fmt.Errorf("storage: decode: %w: listings is %s, not an array", errInvalidDocument, arr.Type)
	}

	seen := utils.NewKeySet()
	result := make([]*models.Listing, 0, len(arr.Array()))
	total := 0

	arr.ForEach(func(_, entry gjson.Result) bool {
		total++
		if !truthy(entry) {
			return true
		}
		if !entry.IsObject() {
			d.logger.Warn("[decoder] Skipping non-object entry: %s", entry.Raw)
			return true
		}

		l, err := decodeListing([]byte(entry.Raw))
		if err != nil {
			d.logger.Warn("[decoder] Skipping undecodable entry: %v", err)
			return true
		}
		if !services.IsActive(l.Active) {
			d.logger.Debug("[decoder] Inactive listing skipped: %s", l.ID)
			return true
		}
		if l.ID != "" && !seen.Add(string(l.ID)) {
			d.logger.Debug("[decoder] Duplicate id skipped: %s", l.ID)
			return true
		}

		result = append(result, l)
		return true
	})

	d.logger.Info("[decoder] Decoded %d entries → %d active listings (dropped %d)",
		total, len(result), total-len(result))
	return result, nil
}

// decodeListing reads one entry, keeping numbers as written so a value
// outside float64 range degrades that field instead of failing the entry.
func decodeListing(raw []byte) (*models.Listing, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	l := &models.Listing{}
	if err := dec.Decode(l); err != nil {
		return nil, err
	}
	l.Price = settleNumber(l.Price)
	l.Sqm = settleNumber(l.Sqm)
	l.Bedrooms = settleNumber(l.Bedrooms)
	l.Deposit = settleNumber(l.Deposit)
	l.Active = settleNumber(l.Active)
	return l, nil
}

// settleNumber turns representable numbers into float64. Out-of-range
// literals stay json.Number and coerce to absent.
func settleNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return n
	}
	return f
}

// truthy applies JavaScript truthiness to a JSON value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Float() != 0
	case gjson.String:
		return r.Str != ""
	case gjson.True, gjson.JSON:
		return true
	}
	return false
}

// DocumentSource loads listings by fetching and decoding a document.
type DocumentSource struct {
	fetcher DocumentFetcher
	decoder *Decoder
}

// NewDocumentSource combines a fetcher with a decoder.
func NewDocumentSource(fetcher DocumentFetcher, logger *utils.Logger) *DocumentSource {
	return &DocumentSource{fetcher: fetcher, decoder: NewDecoder(logger)}
}

// Load fetches the document and returns the active listings.
func (s *DocumentSource) Load(ctx context.Context) ([]*models.Listing, error) {
	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.decoder.Decode(data)
}
