package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giygas/lactancia-api/cache"
	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/scraper"
	"github.com/giygas/lactancia-api/translation"
)

// mockSource is a hand-written MedicationSource
type mockSource struct {
	mu          sync.Mutex
	items       []entities.SearchItem
	searchErr   error
	pages       map[string]string
	detailErr   error
	detailCalls int
}

func (m *mockSource) Search(_ context.Context, _ string) ([]entities.SearchItem, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.items, nil
}

func (m *mockSource) FetchDetail(_ context.Context, id string, _ entities.TermType) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detailCalls++
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	return []byte(m.pages[id]), nil
}

type upperClient struct{ calls int }

func (u *upperClient) TranslateChunk(_ context.Context, text, _, _ string) (string, error) {
	u.calls++
	return strings.ToUpper(text), nil
}

func newService(t *testing.T, src *mockSource, opts ...Option) *Service {
	t.Helper()
	db, err := LoadFallbackDB()
	require.NoError(t, err)
	opts = append([]Option{WithFallback(db)}, opts...)
	return NewService(src, scraper.NewAssembler(""), cache.NewResultCache(), opts...)
}

const page = `<h1 class="term-header">Ibuprofen</h1>
<div class="box grey-box squared risk-level0"><h4>Very low risk.</h4></div>
<div class="box grey-box squared risk-comment-level0"><p>Safe product and breastfeeding is the best option for the mother.</p></div>`

func TestSearchSingleMatchLooksUpDetail(t *testing.T) {
	src := &mockSource{
		items: []entities.SearchItem{{ID: "1234", Term: entities.TermProduct, NameEN: "Ibuprofen"}},
		pages: map[string]string{"1234": page},
	}
	svc := newService(t, src)

	out, err := svc.Search(context.Background(), " ibuprofen ")
	require.NoError(t, err)
	require.NotNil(t, out.Medication)
	assert.Nil(t, out.Suggestions)

	assert.Equal(t, "Ibuprofen", out.Medication.Name)
	assert.Equal(t, entities.RiskVeryLow, out.Medication.RiskLevel)
	assert.Equal(t, "https://e-lactancia.org/buscar/?term_id=1234&term_type=producto", out.Medication.SourceURL)
	assert.Equal(t, []string{"1234"}, svc.Cache().Keys())
}

func TestSearchMultipleMatchesCapsSuggestions(t *testing.T) {
	src := &mockSource{}
	for i := 0; i < 25; i++ {
		src.items = append(src.items, entities.SearchItem{ID: fmt.Sprint(i), Term: entities.TermBrand, Name: fmt.Sprintf("Brand %02d", i)})
	}
	svc := newService(t, src)

	out, err := svc.Search(context.Background(), "brand")
	require.NoError(t, err)
	assert.Nil(t, out.Medication)
	require.Len(t, out.Suggestions, MaxSearchResults)
	assert.Equal(t, "Brand 00", out.Suggestions[0].Name)
	assert.Equal(t, "Marca", out.Suggestions[0].TypeLabel)
	assert.Zero(t, src.detailCalls)
}

func TestSearchNoMatches(t *testing.T) {
	svc := newService(t, &mockSource{})

	_, err := svc.Search(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrUpstream)
}

func TestSearchEmptyQuery(t *testing.T) {
	_, err := newService(t, &mockSource{}).Search(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchUpstreamDownUsesFallback(t *testing.T) {
	svc := newService(t, &mockSource{searchErr: errors.New("dial tcp: timeout")})

	out, err := svc.Search(context.Background(), "Dipirona")
	require.NoError(t, err)
	require.NotNil(t, out.Medication)
	assert.Equal(t, "Dipirona (Metamizol)", out.Medication.Name)
	assert.Equal(t, "Risco Moderado", out.Medication.RiskText)
	assert.Len(t, out.Medication.Alternatives, 2)
}

func TestSearchUpstreamDownWithoutFallback(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	svc := newService(t, &mockSource{searchErr: cause})

	_, err := svc.Search(context.Background(), "codeina")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
}

func TestLookupByIDFetchesOnce(t *testing.T) {
	src := &mockSource{pages: map[string]string{"1234": page}}
	svc := newService(t, src)

	first := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "Ibuprofen")
	second := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "Ibuprofen")

	assert.Equal(t, 1, src.detailCalls)
	assert.Equal(t, first, second)
}

func TestLookupByIDCancelledRequestIsNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := scraper.NewClient(scraper.ClientConfig{
		SearchURL:       srv.URL + "/megasearch/",
		DetailSearchURL: srv.URL + "/buscar/",
	})
	svc := NewService(client, scraper.NewAssembler(""), cache.NewResultCache())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	placeholder := svc.LookupByID(ctx, "1234", entities.TermProduct, "")
	assert.Equal(t, entities.DefaultMedicationName, placeholder.Name)
	assert.Equal(t, 0, svc.Cache().Size())

	record := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "")
	assert.Equal(t, "Ibuprofen", record.Name)
	assert.Equal(t, entities.RiskVeryLow, record.RiskLevel)
	assert.Equal(t, []string{"1234"}, svc.Cache().Keys())
	assert.Equal(t, int32(1), hits.Load())
}

// cancellingClient ends the request context during its first call
type cancellingClient struct {
	cancel context.CancelFunc
	calls  int
}

func (c *cancellingClient) TranslateChunk(_ context.Context, text, _, _ string) (string, error) {
	c.calls++
	if c.calls == 1 {
		c.cancel()
	}
	return strings.ToUpper(text), nil
}

func TestLookupByIDCancelledDuringTranslationIsNotCached(t *testing.T) {
	src := &mockSource{pages: map[string]string{"1234": page}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &cancellingClient{cancel: cancel}
	localizer := translation.NewLocalizer(translation.NewTranslator(client, translation.NoPacer{}), "en", "pt")
	svc := newService(t, src, WithLocalizer(localizer))

	svc.LookupByID(ctx, "1234", entities.TermProduct, "")
	assert.Equal(t, 0, svc.Cache().Size())

	record := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "")
	assert.Equal(t, "SAFE PRODUCT AND BREASTFEEDING IS THE BEST OPTION FOR THE MOTHER.", record.Recommendation)
	assert.Equal(t, 2, src.detailCalls)
	assert.Equal(t, 1, svc.Cache().Size())
}

func TestLookupByIDConcurrentCallersFetchOnce(t *testing.T) {
	src := &mockSource{pages: map[string]string{"1234": page}}
	svc := newService(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc.LookupByID(context.Background(), "1234", entities.TermProduct, "")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, svc.Cache().Size())
	assert.Equal(t, 1, src.detailCalls)
}

func TestLookupByIDDetailFailureStillYieldsRecord(t *testing.T) {
	src := &mockSource{detailErr: errors.New("connection refused")}
	svc := newService(t, src)

	record := svc.LookupByID(context.Background(), "555", entities.TermSynonym, "Metamizol")

	assert.Equal(t, "Metamizol", record.Name)
	assert.Equal(t, entities.RiskUnknown, record.RiskLevel)
	assert.Equal(t, "Informação não disponível", record.RiskText)
	assert.Equal(t, entities.ConsultSourceText, record.Recommendation)
	assert.Equal(t, "https://e-lactancia.org/buscar/?term_id=555&term_type=sinonimo", record.SourceURL)
	assert.NotNil(t, record.Alternatives)
	assert.Empty(t, record.Alternatives)
}

func TestLookupByIDLocalizesBeforeCaching(t *testing.T) {
	src := &mockSource{pages: map[string]string{"1234": page}}
	client := &upperClient{}
	localizer := translation.NewLocalizer(translation.NewTranslator(client, translation.NoPacer{}), "en", "pt")
	svc := newService(t, src, WithLocalizer(localizer))

	record := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "")
	again := svc.LookupByID(context.Background(), "1234", entities.TermProduct, "")

	assert.Equal(t, "SAFE PRODUCT AND BREASTFEEDING IS THE BEST OPTION FOR THE MOTHER.", record.Recommendation)
	assert.Equal(t, "Very low risk.", record.Compatibility, "too few keywords to translate")
	assert.Equal(t, record, again)
	assert.Equal(t, 1, client.calls)
}

func TestSuggestions(t *testing.T) {
	src := &mockSource{items: []entities.SearchItem{
		{ID: "3", Term: entities.TermProduct, NameEN: "Zolpidem"},
		{ID: "1", Term: entities.TermBrand, Name: "Écran"},
		{ID: "2", Term: entities.TermSynonym, NameES: "ácido acetilsalicílico"},
		{ID: "4", Term: entities.TermSpelling, NameEN: "Dipirona"},
	}}
	svc := newService(t, src)

	got := svc.Suggestions(context.Background(), "abc")
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"ácido acetilsalicílico", "Dipirona", "Écran", "Zolpidem"}, names)
	assert.Equal(t, "Sinônimo", got[0].TypeLabel)
}

func TestSuggestionsShortQueryAndErrors(t *testing.T) {
	svc := newService(t, &mockSource{items: []entities.SearchItem{{ID: "1", Term: entities.TermProduct, NameEN: "x"}}})
	assert.Empty(t, svc.Suggestions(context.Background(), "ab"))

	failing := newService(t, &mockSource{searchErr: errors.New("down")})
	got := failing.Suggestions(context.Background(), "abcd")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
