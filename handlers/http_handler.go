package handlers

import (
	"errors"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"

	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/logging"
	"github.com/giygas/lactancia-api/lookup"
)

// HTTPHandlerImpl implements interfaces.HTTPHandler
type HTTPHandlerImpl struct {
	lookup    interfaces.MedicationLookup
	validator interfaces.InputValidator
	health    interfaces.HealthChecker
}

func NewHTTPHandler(lookup interfaces.MedicationLookup, validator interfaces.InputValidator, health interfaces.HealthChecker) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		lookup:    lookup,
		validator: validator,
		health:    health,
	}
}

var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// Search resolves ?q= into a record (one match) or suggestions (several)
func (h *HTTPHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	query, err := h.validator.ValidateQuery(r.URL.Query().Get("q"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.lookup.Search(r.Context(), query)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		RespondWithError(w, http.StatusNotFound, "Nenhum medicamento encontrado. Tente buscar por outro nome.")
		return
	case errors.Is(err, lookup.ErrUpstream):
		logging.Warn("Search failed", "query", query, "error", err)
		RespondWithError(w, http.StatusBadGateway, "Erro ao buscar informações do medicamento. Tente novamente.")
		return
	case err != nil:
		logging.Error("Unexpected search error", "query", query, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	RespondWithJSON(w, http.StatusOK, out)
}

// Suggestions always answers 200, with an empty list when nothing matches
func (h *HTTPHandlerImpl) Suggestions(w http.ResponseWriter, r *http.Request) {
	query, err := h.validator.ValidateQuery(r.URL.Query().Get("q"))
	if err != nil {
		RespondWithJSON(w, http.StatusOK, []entities.Suggestion{})
		return
	}
	RespondWithJSON(w, http.StatusOK, h.lookup.Suggestions(r.Context(), query))
}

// MedicationByID serves /v1/medications/{termType}/{id}?name=
func (h *HTTPHandlerImpl) MedicationByID(w http.ResponseWriter, r *http.Request) {
	kind, err := entities.ParseTermType(chi.URLParam(r, "termType"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.validator.ValidateTermID(chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := r.URL.Query().Get("name")
	if name != "" {
		if name, err = h.validator.ValidateQuery(name); err != nil {
			RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	RespondWithJSON(w, http.StatusOK, h.lookup.LookupByID(r.Context(), id, kind, name))
}

// CacheStatus lists the cached identifiers
func (h *HTTPHandlerImpl) CacheStatus(w http.ResponseWriter, r *http.Request) {
	c := h.lookup.Cache()
	RespondWithJSON(w, http.StatusOK, map[string]any{
		"size": c.Size(),
		"keys": c.Keys(),
	})
}

// ClearCache empties the result cache
func (h *HTTPHandlerImpl) ClearCache(w http.ResponseWriter, r *http.Request) {
	n := h.lookup.Cache().Clear()
	logging.Info("Result cache cleared", "entries", n)
	RespondWithJSON(w, http.StatusOK, map[string]any{"cleared": n})
}

// HealthResponse keeps the /health fields in a stable order
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
	System map[string]any `json:"system"`
}

func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, code := h.health.HealthCheck()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	RespondWithJSON(w, code, HealthResponse{
		Status: status,
		Data:   data,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	})
}
