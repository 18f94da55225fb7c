package cmd

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"fairhuur/models"
	"fairhuur/services"
)

const width = 60

func header(w io.Writer, title string) {
	sep := strings.Repeat("═", width)
	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  %s\033[0m\n", title)
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", width))
}

func printCards(w io.Writer, listings []*models.Listing) {
	header(w, fmt.Sprintf("🏠 %d woningen", len(listings)))
	if len(listings) == 0 {
		fmt.Fprintln(w, "  Geen woningen gevonden")
		fmt.Fprintln(w)
		return
	}
	for i, card := range services.NewCards(listings) {
		fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%s\033[0m\n", i+1, truncate(card.Title, 38), card.Price)
		fmt.Fprintf(w, "     %s · %s\n", card.Type, strings.Join(card.Meta, " · "))
		fmt.Fprintf(w, "     %s\n", card.Link)
	}
	fmt.Fprintln(w)
}

func printStats(w io.Writer, s models.Stats, opts models.FilterOptions) {
	header(w, "📊 FAIRHUUR OVERZICHT")

	section(w, "Overview")
	fmt.Fprintf(w, "  Live listings     : \033[1m%d\033[0m\n", s.LiveCount)
	fmt.Fprintf(w, "  Posted today      : \033[1m%d\033[0m\n", s.TodayCount)
	fmt.Fprintf(w, "  Average price     : \033[1;32m%s\033[0m\n", services.AveragePriceText(s))
	fmt.Fprintln(w)

	section(w, "Filter options")
	fmt.Fprintf(w, "  Cities : %s\n", joinOrDash(opts.Cities))
	fmt.Fprintf(w, "  Types  : %s\n", joinOrDash(opts.Types))
	if opts.MinPrice != nil && opts.MaxPrice != nil {
		fmt.Fprintf(w, "  Prices : %s – %s\n", services.FormatCurrency(*opts.MinPrice), services.FormatCurrency(*opts.MaxPrice))
	}
	fmt.Fprintln(w)
}

func printDetail(w io.Writer, d models.Detail) {
	header(w, d.PageTitle)

	section(w, d.Title)
	fmt.Fprintf(w, "  Plaats        : %s\n", d.City)
	fmt.Fprintf(w, "  Geplaatst     : %s\n", d.Posted)
	fmt.Fprintf(w, "  Prijs         : \033[1;32m%s\033[0m\n", d.Price)
	fmt.Fprintf(w, "  Type          : %s\n", d.Type)
	fmt.Fprintf(w, "  Oppervlakte   : %s\n", d.Sqm)
	fmt.Fprintf(w, "  Slaapkamers   : %s\n", d.Bedrooms)
	fmt.Fprintf(w, "  Borg          : %s\n", d.Deposit)
	fmt.Fprintf(w, "  Beschikbaar   : %s\n", d.AvailableFrom)
	fmt.Fprintln(w)

	if d.Description != "" {
		section(w, "Omschrijving")
		fmt.Fprintf(w, "  %s\n\n", d.Description)
	}

	if len(d.Contacts) > 0 {
		section(w, "Contact")
		for _, c := range d.Contacts {
			fmt.Fprintf(w, "  %-6s %s (%s)\n", c.Kind, c.Label, c.Href)
		}
		fmt.Fprintln(w)
	}
}

func printDraft(w io.Writer, d models.Draft) {
	header(w, "✉️  WONING PLAATSEN")
	fmt.Fprintf(w, "  Aan       : %s\n", d.To)
	fmt.Fprintf(w, "  Onderwerp : %s\n\n", d.Subject)
	for _, line := range strings.Split(d.Body, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
	fmt.Fprintf(w, "\n  %s\n\n", d.Mailto)
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
