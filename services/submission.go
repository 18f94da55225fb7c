package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"fairhuur/models"
)

// DefaultSubmitAddress receives new listing requests.
const DefaultSubmitAddress = "plaatsing@fairhuur.ai"

// SubmissionService composes mail drafts for the "place a listing" form.
type SubmissionService struct {
	to       string
	validate *validator.Validate
}

// NewSubmissionService creates a SubmissionService addressing drafts to to.
func NewSubmissionService(to string) *SubmissionService {
	if to == "" {
		to = DefaultSubmitAddress
	}
	return &SubmissionService{to: to, validate: validator.New()}
}

// FieldError names one invalid form field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return "submission: invalid fields: " + strings.Join(parts, ", ")
}

// Draft validates the form and returns the composed mail draft.
func (s *SubmissionService) Draft(sub models.Submission) (models.Draft, error) {
	sub = trimSubmission(sub)
	if err := s.check(sub); err != nil {
		return models.Draft{}, err
	}

	subject := Subject(sub)
	body := BuildBody(sub)
	return models.Draft{
		To:      s.to,
		Subject: subject,
		Body:    body,
		Mailto:  "mailto:" + s.to + "?subject=" + encodeMailto(subject) + "&body=" + encodeMailto(body),
	}, nil
}

func (s *SubmissionService) check(sub models.Submission) error {
	err := s.validate.Struct(sub)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("submission: validate: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: jsonName(fe.Field()), Rule: fe.Tag()})
	}
	return out
}

// Subject is the mail subject line for a submission.
func Subject(sub models.Submission) string {
	return "Woning plaatsen: " + sub.City + " - " + sub.Title
}

// BuildBody renders the plain-text mail body. Optional lines are left out
// when their field is empty.
func BuildBody(sub models.Submission) string {
	lines := []string{
		"Nieuwe woningplaatsing via FairHuur",
		"",
		"Titel: " + sub.Title,
		"Plaats: " + sub.City,
		"Type: " + sub.Type,
		"Prijs p/m: " + sub.Price,
	}
	lines = appendIf(lines, "m²: ", sub.Sqm)
	lines = appendIf(lines, "Slaapkamers: ", sub.Bedrooms)
	lines = append(lines, "", "Beschrijving:", sub.Description, "")
	lines = appendIf(lines, "Contact e-mail: ", sub.ContactEmail)
	lines = appendIf(lines, "Contact telefoon: ", sub.ContactPhone)
	lines = appendIf(lines, "Foto link: ", sub.ImageURL)
	lines = append(lines, "", "Let op: Toon contactgegevens direct op de listing.")
	return strings.Join(lines, "\n")
}

func appendIf(lines []string, label, value string) []string {
	if value == "" {
		return lines
	}
	return append(lines, label+value)
}

func trimSubmission(sub models.Submission) models.Submission {
	return models.Submission{
		Title:        strings.TrimSpace(sub.Title),
		City:         strings.TrimSpace(sub.City),
		Type:         strings.TrimSpace(sub.Type),
		Price:        strings.TrimSpace(sub.Price),
		Sqm:          strings.TrimSpace(sub.Sqm),
		Bedrooms:     strings.TrimSpace(sub.Bedrooms),
		Description:  strings.TrimSpace(sub.Description),
		ContactEmail: strings.TrimSpace(sub.ContactEmail),
		ContactPhone: strings.TrimSpace(sub.ContactPhone),
		ImageURL:     strings.TrimSpace(sub.ImageURL),
	}
}

// jsonName lower-cases the first letter of a struct field name.
func jsonName(field string) string {
	switch field {
	case "ImageURL":
		return "imageUrl"
	case "":
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
