package services

import (
	"io"
	"math"
	"testing"
	"time"

	"fairhuur/models"
	"fairhuur/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LogOptions{Writer: io.Discard})
}

func newTestEngine() *QueryEngine { return NewQueryEngine(newTestLogger()) }

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{ID: "1", Title: "Ruime loft aan de gracht", City: "Amsterdam", Type: "Appartement", Price: float64(2100), Sqm: float64(85), Bedrooms: float64(2), PostedAt: "2024-05-01T09:00:00.000Z"},
		{ID: "2", Title: "Studio centrum", City: "Utrecht", Type: "Studio", Price: "950", Sqm: "28", Bedrooms: "1", PostedAt: "2024-05-03T09:00:00.000Z"},
		{ID: "3", Title: "Eengezinswoning", City: "Rotterdam", Type: "Huis", Price: float64(1650), Sqm: float64(120), Bedrooms: float64(4), PostedAt: "2024-05-02T09:00:00.000Z"},
		{ID: "4", Title: "Kamer prijs op aanvraag", City: " amsterdam ", Type: "Kamer", Short: "Gemeubileerd", PostedAt: "onbekend"},
		{ID: "5", Title: "Bovenwoning", City: "Utrecht", Type: "Appartement", Price: float64(1400), Sqm: float64(70), Description: "Lichte LOFT-achtige ruimte", PostedAt: "2024-05-03T09:00:00.000Z"},
	}
}

func ids(listings []*models.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, string(l.ID))
	}
	return out
}

func assertIDs(t *testing.T, got []*models.Listing, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids: got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids: got %v, want %v", g, want)
		}
	}
}

func TestFilterEmptyCriteriaSortsNewestStable(t *testing.T) {
	got := newTestEngine().FilterAndSort(sampleListings(), models.FilterCriteria{})
	// 2 and 5 share a timestamp and keep input order; 4 has no usable date.
	assertIDs(t, got, "2", "5", "3", "1", "4")
}

func TestFilterDoesNotReorderInput(t *testing.T) {
	in := sampleListings()
	newTestEngine().FilterAndSort(in, models.FilterCriteria{Sort: models.SortPriceDesc})
	assertIDs(t, in, "1", "2", "3", "4", "5")
}

func TestFilterQueryIsNormalised(t *testing.T) {
	e := newTestEngine()
	for _, q := range []string{"loft", "LOFT ", "  Loft"} {
		got := e.FilterAndSort(sampleListings(), models.FilterCriteria{Query: q})
		assertIDs(t, got, "5", "1")
	}
}

func TestFilterQuerySearchesAllTextFields(t *testing.T) {
	e := newTestEngine()
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Query: "gemeubileerd"}), "4")
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Query: "rotterdam huis"}), "3")
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Query: "penthouse"}))
}

func TestFilterCityAndTypeExact(t *testing.T) {
	e := newTestEngine()
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{City: "AMSTERDAM"}), "1", "4")
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{City: "Amster"}))
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Type: "appartement"}), "5", "1")
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{City: "utrecht", Type: "studio"}), "2")
}

func TestFilterPriceBoundsSkipAbsentPrice(t *testing.T) {
	e := newTestEngine()

	got := e.FilterAndSort(sampleListings(), models.FilterCriteria{MinPrice: 1500})
	assertIDs(t, got, "3", "1", "4")

	got = e.FilterAndSort(sampleListings(), models.FilterCriteria{MaxPrice: 1500})
	assertIDs(t, got, "2", "5", "4")

	got = e.FilterAndSort(sampleListings(), models.FilterCriteria{MinPrice: 1000, MaxPrice: 2000, City: "amsterdam"})
	assertIDs(t, got, "4")
}

func TestFilterAreaAndBedrooms(t *testing.T) {
	e := newTestEngine()
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{MinSqm: 80}), "3", "1", "4")
	// listing 5 has no bedroom count and passes
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{MinBedrooms: 2}), "5", "3", "1", "4")
}

func TestFilterIgnoresUnusableBounds(t *testing.T) {
	e := newTestEngine()
	c := models.FilterCriteria{MinPrice: -5, MaxPrice: math.NaN(), MinSqm: math.Inf(1), MinBedrooms: 0}
	if got := e.FilterAndSort(sampleListings(), c); len(got) != 5 {
		t.Errorf("expected all 5 listings, got %v", ids(got))
	}
}

func TestSortPriceAscAbsentIsZero(t *testing.T) {
	in := []*models.Listing{
		{ID: "a", Price: float64(3000)},
		{ID: "b"},
		{ID: "c", Price: "1000"},
	}
	got := newTestEngine().FilterAndSort(in, models.FilterCriteria{Sort: models.SortPriceAsc})
	assertIDs(t, got, "b", "c", "a")
}

func TestSortPriceDescAndSqmDesc(t *testing.T) {
	e := newTestEngine()
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Sort: models.SortPriceDesc}), "1", "3", "5", "2", "4")
	assertIDs(t, e.FilterAndSort(sampleListings(), models.FilterCriteria{Sort: models.SortSqmDesc}), "3", "1", "5", "2", "4")
}

func TestSortUnknownKeyFallsBackToNewest(t *testing.T) {
	got := newTestEngine().FilterAndSort(sampleListings(), models.FilterCriteria{Sort: "cheapest"})
	assertIDs(t, got, "2", "5", "3", "1", "4")
}

func TestSortNewestHelper(t *testing.T) {
	in := sampleListings()
	assertIDs(t, SortNewest(in), "2", "5", "3", "1", "4")
	assertIDs(t, in, "1", "2", "3", "4", "5")
}

func TestFilterSkipsNilEntries(t *testing.T) {
	in := []*models.Listing{nil, {ID: "x", PostedAt: models.Text(time.Now().UTC().Format(time.RFC3339))}}
	assertIDs(t, newTestEngine().FilterAndSort(in, models.FilterCriteria{}), "x")
}
