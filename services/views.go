package services

import (
	"strconv"
	"strings"
	"unicode"

	"fairhuur/models"
)

const shortLimit = 120

// NewCard builds the overview card for one listing.
func NewCard(l *models.Listing) models.Card {
	title := orDefault(string(l.Title), "Onbekende titel")
	card := models.Card{
		ID:    string(l.ID),
		Title: title,
		Type:  orDefault(string(l.Type), "Woning"),
		Short: truncateRunes(string(l.Short), shortLimit),
		Price: FormatCurrency(l.Price),
		Link:  DetailLink(string(l.ID)),
		Meta:  make([]string, 0, 3),
	}
	if l.ImageURL != "" {
		card.ImageURL = string(l.ImageURL)
		card.ImageAlt = "Foto van " + orDefault(string(l.Title), "woning")
	}

	if l.City != "" {
		card.Meta = append(card.Meta, string(l.City))
	}
	if sqm, ok := positive(l.Sqm); ok {
		card.Meta = append(card.Meta, formatPlain(sqm)+" m²")
	}
	if beds, ok := positive(l.Bedrooms); ok {
		card.Meta = append(card.Meta, formatPlain(beds)+" slk")
	}
	return card
}

// NewCards maps NewCard over a result set.
func NewCards(listings []*models.Listing) []models.Card {
	cards := make([]models.Card, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, NewCard(l))
	}
	return cards
}

// NewDetail builds the single-listing page record.
func NewDetail(l *models.Listing) models.Detail {
	title := orDefault(string(l.Title), "Woning")
	d := models.Detail{
		ID:            string(l.ID),
		PageTitle:     title + " - FairHuur",
		Title:         title,
		City:          string(l.City),
		Posted:        FormatDate(string(l.PostedAt)),
		Description:   orDefault(string(l.Description), string(l.Short)),
		Price:         FormatCurrency(l.Price),
		Type:          string(l.Type),
		Sqm:           "-",
		Bedrooms:      "-",
		Deposit:       "-",
		AvailableFrom: orDefault(string(l.AvailableFrom), "-"),
		ImageURL:      string(l.ImageURL),
		Contacts:      contacts(l),
	}
	if sqm, ok := positive(l.Sqm); ok {
		d.Sqm = formatPlain(sqm) + " m²"
	}
	if beds, ok := positive(l.Bedrooms); ok {
		d.Bedrooms = formatPlain(beds)
	}
	if dep, ok := CoerceNumber(l.Deposit); ok && dep != 0 {
		d.Deposit = FormatAmount(dep)
	}
	return d
}

// DetailLink is the page URL for a listing id.
func DetailLink(id string) string {
	return "/woning.html?id=" + EncodeURIComponent(id)
}

func contacts(l *models.Listing) []models.Contact {
	var out []models.Contact
	if l.ContactEmail != "" {
		out = append(out, models.Contact{
			Kind:  "email",
			Label: string(l.ContactEmail),
			Href:  "mailto:" + EncodeURIComponent(string(l.ContactEmail)),
		})
	}
	if l.ContactPhone != "" {
		out = append(out, models.Contact{
			Kind:  "phone",
			Label: string(l.ContactPhone),
			Href:  "tel:" + stripSpace(string(l.ContactPhone)),
		})
	}
	if l.ContactURL != "" {
		out = append(out, models.Contact{
			Kind:  "url",
			Label: "Open",
			Href:  string(l.ContactURL),
		})
	}
	return out
}

func positive(v any) (float64, bool) {
	f, ok := CoerceNumber(v)
	return f, ok && f > 0
}

func formatPlain(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
