package server

import (
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

// OptionsResponse lists the values a client can select.
type OptionsResponse struct {
	Periods    []string                   `json:"periods"`
	Platforms  []string                   `json:"platforms"`
	Sentiments []model.Sentiment          `json:"sentiments"`
	Colors     map[model.Sentiment]string `json:"colors"`
}

// Handler serves the read-only dataset endpoints.
type Handler struct {
	data    *dataset.Dataset
	records []model.Record
}

// NewHandler creates a handler over d.
func NewHandler(d *dataset.Dataset) *Handler {
	return &Handler{
		data:    d,
		records: d.Records(),
	}
}

// GetOptions returns the known periods, platforms and sentiment palette.
func (h *Handler) GetOptions(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, OptionsResponse{
		Periods:    h.data.Periods(),
		Platforms:  h.data.Platforms(),
		Sentiments: model.Sentiments,
		Colors:     model.SentimentColors,
	})
}

// GetSeries returns both series for the selection in the query string.
// A missing parameter selects every known value; an empty one selects nothing.
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromQuery(h.data, r.URL.Query())
	respondWithJSON(w, http.StatusOK, engine.Compute(h.records, sel))
}

// GetQuotes returns the highlighted quotes.
func (h *Handler) GetQuotes(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.data.Quotes())
}

func selectionFromQuery(d *dataset.Dataset, q url.Values) model.Selection {
	return d.Restrict(queryValues(q, "period"), queryValues(q, "platform"))
}

// queryValues returns nil when key is absent and the non-empty values otherwise.
func queryValues(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		respondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	response, _ := json.Marshal(map[string]string{"error": message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
