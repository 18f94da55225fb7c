package services

import (
	"errors"
	"strings"
	"testing"

	"fairhuur/models"
)

func TestBuildBodyOptionalLines(t *testing.T) {
	body := BuildBody(models.Submission{
		Title:       "Zonnig appartement",
		City:        "Haarlem",
		Type:        "Appartement",
		Price:       "1600",
		Description: "Op loopafstand van het station.",
	})

	want := strings.Join([]string{
		"Nieuwe woningplaatsing via FairHuur",
		"",
		"Titel: Zonnig appartement",
		"Plaats: Haarlem",
		"Type: Appartement",
		"Prijs p/m: 1600",
		"",
		"Beschrijving:",
		"Op loopafstand van het station.",
		"",
		"",
		"Let op: Toon contactgegevens direct op de listing.",
	}, "\n")
	if body != want {
		t.Errorf("body mismatch:\ngot:\n%s\nwant:\n%s", body, want)
	}
}

func TestBuildBodyWithAllFields(t *testing.T) {
	body := BuildBody(models.Submission{
		Title:        "Huis",
		City:         "Zwolle",
		Sqm:          "90",
		Bedrooms:     "3",
		ContactEmail: "a@b.nl",
		ContactPhone: "0612345678",
		ImageURL:     "https://img/1.jpg",
	})
	for _, line := range []string{"m²: 90", "Slaapkamers: 3", "Contact e-mail: a@b.nl", "Contact telefoon: 0612345678", "Foto link: https://img/1.jpg"} {
		if !strings.Contains(body, line+"\n") {
			t.Errorf("body missing line %q", line)
		}
	}
}

func TestDraftComposesMailto(t *testing.T) {
	svc := NewSubmissionService("")
	d, err := svc.Draft(models.Submission{Title: "  Loft ", City: "Den Haag", Price: "1200"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.To != DefaultSubmitAddress {
		t.Errorf("To: got %q", d.To)
	}
	if d.Subject != "Woning plaatsen: Den Haag - Loft" {
		t.Errorf("Subject: got %q", d.Subject)
	}
	wantPrefix := "mailto:plaatsing@fairhuur.ai?subject=Woning+plaatsen%3A+Den+Haag+-+Loft&body=Nieuwe+woningplaatsing+via+FairHuur%0A%0ATitel%3A+Loft%0A"
	if !strings.HasPrefix(d.Mailto, wantPrefix) {
		t.Errorf("Mailto: got %q", d.Mailto)
	}
}

func TestDraftValidation(t *testing.T) {
	svc := NewSubmissionService("test@fairhuur.ai")
	_, err := svc.Draft(models.Submission{Title: "   ", ContactEmail: "geen-email"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Rule
	}
	if got["title"] != "required" || got["city"] != "required" || got["contactEmail"] != "email" {
		t.Errorf("unexpected field errors: %v", verr.Fields)
	}
}
