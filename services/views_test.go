package services

import (
	"strings"
	"testing"

	"fairhuur/models"
)

func TestCardMetaAndFallbacks(t *testing.T) {
	c := NewCard(&models.Listing{ID: "12", City: "Delft", Sqm: float64(45), Bedrooms: "0", Price: float64(1200)})

	if c.Title != "Onbekende titel" {
		t.Errorf("Title: got %q", c.Title)
	}
	if c.Type != "Woning" {
		t.Errorf("Type: got %q", c.Type)
	}
	if strings.Join(c.Meta, "|") != "Delft|45 m²" {
		t.Errorf("Meta: got %v", c.Meta)
	}
	if c.Price != "€1.200" {
		t.Errorf("Price: got %q", c.Price)
	}
	if c.Link != "/woning.html?id=12" {
		t.Errorf("Link: got %q", c.Link)
	}
	if c.ImageURL != "" || c.ImageAlt != "" {
		t.Errorf("expected no image, got %q / %q", c.ImageURL, c.ImageAlt)
	}
}

func TestCardBedroomsNeedPositiveValue(t *testing.T) {
	tests := []struct {
		beds any
		want string
	}{
		{float64(3), "3 slk"},
		{"2", "2 slk"},
		{float64(0), ""},
		{"-1", ""},
		{"veel", ""},
		{nil, ""},
	}
	for _, tt := range tests {
		c := NewCard(&models.Listing{ID: "1", Bedrooms: tt.beds})
		got := strings.Join(c.Meta, "")
		if got != tt.want {
			t.Errorf("bedrooms %#v: got meta %q, want %q", tt.beds, got, tt.want)
		}
	}
}

func TestCardTruncatesShortText(t *testing.T) {
	long := strings.Repeat("é", 150)
	c := NewCard(&models.Listing{ID: "1", Title: "Huis", Short: models.Text(long), ImageURL: "https://img/1.jpg"})
	if n := len([]rune(c.Short)); n != 120 {
		t.Errorf("Short length: got %d runes, want 120", n)
	}
	if c.ImageAlt != "Foto van Huis" {
		t.Errorf("ImageAlt: got %q", c.ImageAlt)
	}
}

func TestDetailLinkEscapesID(t *testing.T) {
	if got := DetailLink("a b/c"); got != "/woning.html?id=a%20b%2Fc" {
		t.Errorf("DetailLink: got %q", got)
	}
}

func TestDetailFields(t *testing.T) {
	d := NewDetail(&models.Listing{
		ID:           "7",
		City:         "Leiden",
		Short:        "Kort",
		PostedAt:     "2024-05-01T10:00:00Z",
		Price:        float64(1750),
		Deposit:      "3500",
		Sqm:          float64(60),
		ContactPhone: "06 12 34 56 78",
		ContactEmail: "verhuur@example.nl",
		ContactURL:   "https://example.nl/7",
	})

	if d.Title != "Woning" || d.PageTitle != "Woning - FairHuur" {
		t.Errorf("titles: got %q / %q", d.Title, d.PageTitle)
	}
	if d.Description != "Kort" {
		t.Errorf("Description should fall back to short, got %q", d.Description)
	}
	if d.Posted != "1-5-2024" {
		t.Errorf("Posted: got %q", d.Posted)
	}
	if d.Sqm != "60 m²" || d.Bedrooms != "-" {
		t.Errorf("Sqm/Bedrooms: got %q / %q", d.Sqm, d.Bedrooms)
	}
	if d.Deposit != "€3.500" {
		t.Errorf("Deposit: got %q", d.Deposit)
	}
	if d.AvailableFrom != "-" {
		t.Errorf("AvailableFrom: got %q", d.AvailableFrom)
	}
	if len(d.Contacts) != 3 {
		t.Fatalf("Contacts: got %d, want 3", len(d.Contacts))
	}
	if d.Contacts[0].Href != "mailto:verhuur%40example.nl" {
		t.Errorf("email href: got %q", d.Contacts[0].Href)
	}
	if d.Contacts[1].Href != "tel:0612345678" {
		t.Errorf("phone href: got %q", d.Contacts[1].Href)
	}
	if d.Contacts[2].Label != "Open" {
		t.Errorf("url label: got %q", d.Contacts[2].Label)
	}
}

func TestDetailWithoutContacts(t *testing.T) {
	d := NewDetail(&models.Listing{ID: "8", Title: "Villa"})
	if len(d.Contacts) != 0 {
		t.Errorf("expected no contacts, got %v", d.Contacts)
	}
	if d.Deposit != "-" || d.Price != "" {
		t.Errorf("Deposit/Price: got %q / %q", d.Deposit, d.Price)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"a b", "a%20b"},
		{"it's (ok)!*~", "it's%20(ok)!*~"},
		{"a+b=c&d", "a%2Bb%3Dc%26d"},
		{"m²", "m%C2%B2"},
	}
	for _, tt := range tests {
		if got := EncodeURIComponent(tt.in); got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
