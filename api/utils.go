package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"fairhuur/models"
	"fairhuur/services"
)

// WriteJSONError sends a JSON body with an "error" field and the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

// RespondWithJSON sends payload as JSON.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// CriteriaFromQuery builds filter criteria from the overview form's query
// parameters. Blank or non-numeric bounds mean "no bound".
func CriteriaFromQuery(q url.Values) models.FilterCriteria {
	return models.FilterCriteria{
		Query:       q.Get("q"),
		City:        q.Get("city"),
		Type:        q.Get("type"),
		MinPrice:    numberParam(q, "minPrice"),
		MaxPrice:    numberParam(q, "maxPrice"),
		MinSqm:      numberParam(q, "minSqm"),
		MinBedrooms: numberParam(q, "minBeds"),
		Sort:        models.ParseSortKey(q.Get("sort")),
	}
}

func numberParam(q url.Values, name string) float64 {
	f, _ := services.CoerceNumber(q.Get(name))
	return f
}
