// Package interfaces defines the contracts shared between the lookup pipeline,
// its upstream clients and the HTTP layer.
package interfaces

import (
	"context"
	"net/http"

	"github.com/giygas/lactancia-api/entities"
)

// ChunkTranslator performs one remote translation call.
// An empty result with a nil error means the service had nothing to offer.
type ChunkTranslator interface {
	TranslateChunk(ctx context.Context, text, from, to string) (string, error)
}

// Pacer spaces consecutive upstream calls. Pause returns the context error
// when the wait is cancelled.
type Pacer interface {
	Pause(ctx context.Context) error
}

// TextTranslator translates free text and never fails
type TextTranslator interface {
	Translate(ctx context.Context, text, from, to string) string
}

// RecordLocalizer rewrites the free-text fields of a record in the target language
type RecordLocalizer interface {
	Localize(ctx context.Context, record entities.MedicationRecord) entities.MedicationRecord
}

// MedicationSource talks to the remote medication database.
type MedicationSource interface {
	// Search returns the candidates for query in upstream order
	Search(ctx context.Context, query string) ([]entities.SearchItem, error)

	// FetchDetail returns the decoded detail page HTML
	FetchDetail(ctx context.Context, id string, kind entities.TermType) ([]byte, error)
}

// RecordCache stores at most one record per key for the life of the process.
// compute returns the record and whether it may be stored.
type RecordCache interface {
	GetOrCompute(key string, compute func() (entities.MedicationRecord, bool)) entities.MedicationRecord
	Clear() int
	Size() int
	Keys() []string
}

// MedicationLookup is the application controller used by the HTTP handlers and the CLI
type MedicationLookup interface {
	Search(ctx context.Context, query string) (entities.SearchOutcome, error)
	Suggestions(ctx context.Context, query string) []entities.Suggestion
	LookupByID(ctx context.Context, id string, kind entities.TermType, name string) entities.MedicationRecord
	Cache() RecordCache
}

// Prober checks that the upstream services are reachable
type Prober interface {
	Probe(ctx context.Context) error
}

// Scheduler manages background jobs
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker reports the service health
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// InputValidator validates user supplied values
type InputValidator interface {
	ValidateQuery(input string) (string, error)
	ValidateTermID(input string) (string, error)
}

// HTTPHandler defines the API endpoints
type HTTPHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
	Suggestions(w http.ResponseWriter, r *http.Request)
	MedicationByID(w http.ResponseWriter, r *http.Request)
	CacheStatus(w http.ResponseWriter, r *http.Request)
	ClearCache(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}
