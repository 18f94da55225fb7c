package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"fairhuur/models"
	"fairhuur/services"
	"fairhuur/utils"
)

// Catalog is the read side the handlers need.
type Catalog interface {
	Load(ctx context.Context) error
	Loaded() bool
	LoadedAt() time.Time
	Query(criteria models.FilterCriteria) ([]*models.Listing, error)
	Stats() (models.Stats, error)
	Lookup(id string) (*models.Listing, bool)
	FilterOptions() (models.FilterOptions, error)
}

// Handler serves the listings overview, detail pages and submissions as JSON.
type Handler struct {
	catalog     Catalog
	submissions *services.SubmissionService
	logger      *utils.Logger
}

// NewHandler wires the handlers to their collaborators.
func NewHandler(catalog Catalog, submissions *services.SubmissionService, logger *utils.Logger) *Handler {
	return &Handler{catalog: catalog, submissions: submissions, logger: logger}
}

type listingsResponse struct {
	Count     int                   `json:"count"`
	CountText string                `json:"countText"`
	Criteria  models.FilterCriteria `json:"criteria"`
	Listings  []models.Card         `json:"listings"`
}

type statsResponse struct {
	models.Stats
	AveragePriceText string    `json:"averagePriceText"`
	LoadedAt         time.Time `json:"loadedAt"`
}

type validationResponse struct {
	Error  string                `json:"error"`
	Fields []services.FieldError `json:"fields"`
}

// ListListings handles GET /api/listings.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	criteria := CriteriaFromQuery(r.URL.Query())

	result, err := h.catalog.Query(criteria)
	if err != nil {
		h.unavailable(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, listingsResponse{
		Count:     len(result),
		CountText: fmt.Sprintf("%d woningen", len(result)),
		Criteria:  criteria.Canonical(),
		Listings:  services.NewCards(result),
	})
}

// GetListing handles GET /api/listings/{id}.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when it is set, leaving the segment escaped.
	id := chi.URLParam(r, "id")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(id); err == nil {
			id = unescaped
		}
	}

	l, ok := h.catalog.Lookup(id)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "Woning niet gevonden")
		return
	}
	RespondWithJSON(w, http.StatusOK, services.NewDetail(l))
}

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.Stats()
	if err != nil {
		h.unavailable(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, statsResponse{
		Stats:            stats,
		AveragePriceText: services.AveragePriceText(stats),
		LoadedAt:         h.catalog.LoadedAt(),
	})
}

// GetFilters handles GET /api/filters.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.catalog.FilterOptions()
	if err != nil {
		h.unavailable(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, opts)
}

// Reload handles POST /api/reload.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Load(r.Context()); err != nil {
		h.logger.Error("[api] Reload failed: %v", err)
		h.unavailable(w, err)
		return
	}
	h.GetStats(w, r)
}

// CreateSubmission handles POST /api/submissions.
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var sub models.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&sub); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Ongeldig formulier: "+err.Error())
		return
	}

	draft, err := h.submissions.Draft(sub)
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		RespondWithJSON(w, http.StatusBadRequest, validationResponse{Error: "Controleer de gemarkeerde velden", Fields: verr.Fields})
		return
	case err != nil:
		h.logger.Error("[api] Draft failed: %v", err)
		WriteJSONError(w, http.StatusInternalServerError, "Kon aanvraag niet opstellen")
		return
	}
	RespondWithJSON(w, http.StatusOK, draft)
}

// requireLoaded answers 503 until the catalog holds a collection.
func (h *Handler) requireLoaded(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.catalog.Loaded() {
			WriteJSONError(w, http.StatusServiceUnavailable, "Kon woningen niet laden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) unavailable(w http.ResponseWriter, err error) {
	WriteJSONError(w, http.StatusServiceUnavailable, "Kon woningen niet laden: "+err.Error())
}
