package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/giygas/lactancia-api/entities"
	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/metrics"
)

// ErrUpstreamStatus is returned when an upstream answers with a non-2xx status
var ErrUpstreamStatus = errors.New("upstream returned an error status")

// ClientConfig holds the upstream endpoints
type ClientConfig struct {
	ProxyURL        string // empty calls upstream directly
	SearchURL       string
	DetailSearchURL string
	Timeout         time.Duration
	UserAgent       string
}

// Client reads the e-lactancia search API and detail pages
type Client struct {
	http *resty.Client
	cfg  ClientConfig
}

func NewClient(cfg ClientConfig) *Client {
	client := resty.New()
	if cfg.UserAgent == "" {
		cfg.UserAgent = "lactancia-api/1.0"
	}
	client.SetHeader("User-Agent", cfg.UserAgent)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &Client{http: client, cfg: cfg}
}

var (
	_ interfaces.MedicationSource = (*Client)(nil)
	_ interfaces.Prober           = (*Client)(nil)
)

// searchItem is the wire form of one search result. The id arrives as a
// number or a string, nombre_paises is not always a string.
type searchItem struct {
	ID           json.RawMessage `json:"id"`
	Term         string          `json:"term"`
	NombreEN     string          `json:"nombre_en"`
	NombreES     string          `json:"nombre_es"`
	Nombre       string          `json:"nombre"`
	NombrePaises json.RawMessage `json:"nombre_paises"`
}

// Search returns the candidates for query with a known term kind, in upstream order
func (c *Client) Search(ctx context.Context, query string) (items []entities.SearchItem, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(metrics.ServiceSearch, time.Since(start).Seconds(), err)
	}()

	target := c.cfg.SearchURL + "?query=" + url.QueryEscape(query)
	body, err := c.get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var raw []searchItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("search %q: failed to decode response: %w", query, err)
	}

	items = make([]entities.SearchItem, 0, len(raw))
	for _, r := range raw {
		kind := entities.TermType(r.Term)
		if !kind.Valid() {
			continue
		}
		items = append(items, entities.SearchItem{
			ID:          rawString(r.ID),
			Term:        kind,
			NameEN:      r.NombreEN,
			NameES:      r.NombreES,
			Name:        r.Nombre,
			NameCountry: rawString(r.NombrePaises),
		})
	}
	return items, nil
}

// FetchDetail returns the detail page HTML for id, decoded to UTF-8
func (c *Client) FetchDetail(ctx context.Context, id string, kind entities.TermType) (body []byte, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(metrics.ServiceDetail, time.Since(start).Seconds(), err)
	}()

	target := fmt.Sprintf("%s?term_id=%s&term_type=%s", c.cfg.DetailSearchURL, url.QueryEscape(id), kind)
	raw, err := c.get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("detail %s/%s: %w", kind, id, err)
	}
	return decodeBody(raw)
}

// Probe checks that the search endpoint answers through the proxy
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.Search(ctx, "paracetamol")
	return err
}

// get fetches target, through the proxy when one is configured
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	req := c.http.R().SetContext(ctx)

	endpoint := target
	if c.cfg.ProxyURL != "" {
		endpoint = c.cfg.ProxyURL
		req.SetQueryParam("url", target)
	}

	res, err := req.Get(endpoint)
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamStatus, res.Status())
	}
	return res.Body(), nil
}

// decodeBody returns body as UTF-8. Pages that are not valid UTF-8 are Latin-1.
func decodeBody(body []byte) ([]byte, error) {
	if utf8.Valid(body) {
		return body, nil
	}
	decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode ISO-8859-1 body: %w", err)
	}
	return decoded, nil
}

// rawString renders a JSON scalar as text. Arrays of strings are joined with ", ".
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}

	return ""
}
