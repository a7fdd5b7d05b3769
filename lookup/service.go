// Package lookup resolves medication queries into breastfeeding-safety records.
// It owns the flow search, detail fetch, extraction, localization and caching.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/logging"
	"github.com/giygas/lactancia-api/scraper"
)

var (
	// ErrNotFound means the search returned no usable candidate
	ErrNotFound = errors.New("medication not found")
	// ErrUpstream means the search endpoint could not be reached and no fallback matched
	ErrUpstream = errors.New("medication search unavailable")
)

const (
	// MaxSearchResults caps the candidates returned by Search
	MaxSearchResults = 20
	// MinSuggestionLength is the shortest query that produces suggestions
	MinSuggestionLength = 3
)

// Service is the medication lookup controller
type Service struct {
	source    interfaces.MedicationSource
	extractor *scraper.Extractor
	assembler *scraper.Assembler
	localizer interfaces.RecordLocalizer
	cache     interfaces.RecordCache
	fallback  *FallbackDB
}

// Option customizes a Service
type Option func(*Service)

// WithLocalizer translates records before they are cached
func WithLocalizer(l interfaces.RecordLocalizer) Option {
	return func(s *Service) { s.localizer = l }
}

// WithFallback serves records from db when the search endpoint is down
func WithFallback(db *FallbackDB) Option {
	return func(s *Service) { s.fallback = db }
}

// WithExtractor replaces the default selector chains
func WithExtractor(e *scraper.Extractor) Option {
	return func(s *Service) { s.extractor = e }
}

func NewService(source interfaces.MedicationSource, assembler *scraper.Assembler, cache interfaces.RecordCache, opts ...Option) *Service {
	s := &Service{
		source:    source,
		extractor: scraper.NewExtractor(),
		assembler: assembler,
		cache:     cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ interfaces.MedicationLookup = (*Service)(nil)

func (s *Service) Cache() interfaces.RecordCache {
	return s.cache
}

// Search resolves query. A single candidate is looked up right away, several
// candidates come back as suggestions in upstream order.
func (s *Service) Search(ctx context.Context, query string) (entities.SearchOutcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.SearchOutcome{}, fmt.Errorf("%w: empty query", ErrNotFound)
	}

	items, err := s.source.Search(ctx, query)
	if err != nil {
		if record, ok := s.fallback.Find(query); ok {
			logging.Warn("Search unavailable, serving fallback record", "query", query, "error", err)
			record = s.localize(ctx, record)
			return entities.SearchOutcome{Medication: &record}, nil
		}
		return entities.SearchOutcome{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if len(items) > MaxSearchResults {
		items = items[:MaxSearchResults]
	}

	switch len(items) {
	case 0:
		return entities.SearchOutcome{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	case 1:
		item := items[0]
		record := s.LookupByID(ctx, item.ID, item.Term, item.DisplayName())
		return entities.SearchOutcome{Medication: &record}, nil
	}

	suggestions := make([]entities.Suggestion, len(items))
	for i, item := range items {
		suggestions[i] = item.ToSuggestion()
	}
	return entities.SearchOutcome{Suggestions: suggestions}, nil
}

// Suggestions returns every candidate for query sorted by name in pt-BR
// order. Short queries and upstream failures yield an empty list.
func (s *Service) Suggestions(ctx context.Context, query string) []entities.Suggestion {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSuggestionLength {
		return []entities.Suggestion{}
	}

	items, err := s.source.Search(ctx, query)
	if err != nil {
		logging.Debug("Suggestion search failed", "query", query, "error", err)
		return []entities.Suggestion{}
	}

	out := make([]entities.Suggestion, len(items))
	for i, item := range items {
		out[i] = item.ToSuggestion()
	}

	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// LookupByID returns the record for id, fetching it at most once per process.
// A failed detail fetch yields a record built from name and the defaults.
// Records produced after ctx ended are returned but never cached.
func (s *Service) LookupByID(ctx context.Context, id string, kind entities.TermType, name string) entities.MedicationRecord {
	return s.cache.GetOrCompute(id, func() (entities.MedicationRecord, bool) {
		var fields *scraper.ExtractedFields

		body, err := s.source.FetchDetail(ctx, id, kind)
		if err != nil {
			logging.Warn("Detail fetch failed, using fallback record", "id", id, "type", string(kind), "error", err)
		} else {
			extracted := s.extractor.ExtractHTML(body)
			fields = &extracted
		}

		record := s.localize(ctx, s.assembler.Assemble(fields, id, kind, name))
		if ctx.Err() != nil {
			logging.Debug("Lookup cancelled, record not cached", "id", id, "error", ctx.Err())
			return record, false
		}
		return record, true
	})
}

func (s *Service) localize(ctx context.Context, record entities.MedicationRecord) entities.MedicationRecord {
	if s.localizer == nil {
		return record
	}
	return s.localizer.Localize(ctx, record)
}
