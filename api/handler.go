package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"ticker-search/catalog"
	"ticker-search/search"
)

type Handler struct {
	Engine  search.Engine
	Catalog *catalog.Catalog
	Pulse   PulseFetcher // nil disables /api/market-pulse
	Metrics *Metrics     // optional
}

func NewHandler(engine search.Engine, cat *catalog.Catalog, pulse PulseFetcher, metrics *Metrics) *Handler {
	return &Handler{Engine: engine, Catalog: cat, Pulse: pulse, Metrics: metrics}
}

// Search answers GET /search?q=. A blank q yields an empty array.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	if !values.Has("q") {
		http.Error(w, "Missing query parameter 'q'", http.StatusBadRequest)
		return
	}

	start := time.Now()
	results := h.Engine.Search(values.Get("q"))
	if h.Metrics != nil {
		h.Metrics.searchDuration.Observe(time.Since(start).Seconds())
		tier := "none"
		if len(results) > 0 {
			tier = results[0].Tier.String()
		}
		h.Metrics.searches.WithLabelValues(tier).Inc()
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *Handler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if strings.TrimSpace(symbol) == "" {
		http.Error(w, "Missing symbol parameter", http.StatusBadRequest)
		return
	}

	inst, ok := h.Catalog.BySymbol(symbol)
	if !ok {
		http.Error(w, "Instrument not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, inst)
}

// MarketPulse proxies GET /api/market-pulse?ticker= to the sentiment backend.
func (h *Handler) MarketPulse(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "Missing ticker parameter", http.StatusBadRequest)
		return
	}
	if h.Pulse == nil {
		http.Error(w, "Market pulse backend not configured", http.StatusServiceUnavailable)
		return
	}

	pulse, err := h.Pulse.Fetch(r.Context(), ticker)
	if err != nil {
		h.countPulse("error")
		log.Warn().Err(err).Str("ticker", ticker).Msg("market pulse request failed")

		status := http.StatusBadGateway
		var pe *PulseError
		if errors.As(err, &pe) && pe.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"detail": err.Error()})
		return
	}

	h.countPulse("ok")
	writeJSON(w, http.StatusOK, pulse)
}

func (h *Handler) countPulse(result string) {
	if h.Metrics != nil {
		h.Metrics.pulseRequests.WithLabelValues(result).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
