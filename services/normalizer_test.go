package services

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"fairhuur/models"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"  Loft Amsterdam ", "loft amsterdam"},
		{models.Text(" UTRECHT"), "utrecht"},
		{float64(12), "12"},
		{true, "true"},
		{[]string{"x"}, ""},
	}

	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%#v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{float64(1450), 1450, true},
		{"1450", 1450, true},
		{" 72.5 ", 72.5, true},
		{json.Number("3"), 3, true},
		{models.Text("2"), 2, true},
		{7, 7, true},
		{"0x10", 16, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"op aanvraag", 0, false},
		{"1_000", 0, false},
		{"Infinity", 0, false},
		{"NaN", 0, false},
		{json.Number("1e400"), 0, false},
		{"-1e400", 0, false},
		{json.Number("1e-400"), 0, true},
		{math.Inf(1), 0, false},
		{math.NaN(), 0, false},
		{nil, 0, false},
		{true, 0, false},
		{map[string]any{"amount": 1}, 0, false},
	}

	for _, tt := range tests {
		got, ok := CoerceNumber(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CoerceNumber(%#v) = (%v, %v); want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSameCalendarDay(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2024-05-01T10:00:00Z", "2024-05-01T23:59:59Z", true},
		{"2024-05-01T23:59:59Z", "2024-05-02T00:00:01Z", false},
		{"2024-05-01", "2024-05-01T08:00:00.000Z", true},
		{"", "2024-05-01T08:00:00Z", false},
		{"2024-05-01T08:00:00Z", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		if got := SameCalendarDay(tt.a, tt.b); got != tt.want {
			t.Errorf("SameCalendarDay(%q, %q) = %v; want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParsePostedAt(t *testing.T) {
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for _, in := range []string{"2024-05-01T10:00:00Z", "2024-05-01T10:00:00.000Z", "2024-05-01T12:00:00+02:00", "2024-05-01T10:00:00"} {
		got, ok := ParsePostedAt(in)
		if !ok || !got.Equal(want) {
			t.Errorf("ParsePostedAt(%q) = (%v, %v); want %v", in, got, ok, want)
		}
	}

	for _, in := range []string{"", "gisteren", "01-05-2024"} {
		if _, ok := ParsePostedAt(in); ok {
			t.Errorf("ParsePostedAt(%q) should fail", in)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{float64(1500), "€1.500"},
		{"950", "€950"},
		{float64(1250000), "€1.250.000"},
		{nil, ""},
		{"", ""},
		{"n.v.t.", ""},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%#v) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2024-05-01T10:00:00Z"); got != "1-5-2024" {
		t.Errorf("FormatDate: got %q, want %q", got, "1-5-2024")
	}
	if got := FormatDate(""); got != "" {
		t.Errorf("FormatDate(empty): got %q", got)
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		in   any
		want bool
	}{
		{nil, true},
		{true, true},
		{false, false},
		{float64(0), false},
		{float64(1), true},
		{"", false},
		{"yes", true},
		{json.Number("0"), false},
		{json.Number("1e400"), true},
		{json.Number("1e-400"), false},
	}

	for _, tt := range tests {
		if got := IsActive(tt.in); got != tt.want {
			t.Errorf("IsActive(%#v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func TestISOString(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	if got := ISOString(ts); got != "2024-05-01T10:30:00.000Z" {
		t.Errorf("ISOString: got %q", got)
	}
}
