package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/metrics"
)

// MyMemoryClient calls the MyMemory translation API
type MyMemoryClient struct {
	http     *resty.Client
	endpoint string
}

type myMemoryResponse struct {
	ResponseData *struct {
		TranslatedText *string `json:"translatedText"`
	} `json:"responseData"`
}

// NewMyMemoryClient returns a client for endpoint. timeout 0 keeps the transport default.
func NewMyMemoryClient(endpoint string, timeout time.Duration) *MyMemoryClient {
	client := resty.New()
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &MyMemoryClient{http: client, endpoint: endpoint}
}

var _ interfaces.ChunkTranslator = (*MyMemoryClient)(nil)

// TranslateChunk sends one piece of text. A missing translatedText field is
// an error; an empty one is returned as "".
func (c *MyMemoryClient) TranslateChunk(ctx context.Context, text, from, to string) (out string, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveUpstream(metrics.ServiceTranslate, time.Since(start).Seconds(), err)
	}()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", from+"|"+to).
		Get(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("translation service returned %s", res.Status())
	}

	var payload myMemoryResponse
	if err := json.Unmarshal(res.Body(), &payload); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if payload.ResponseData == nil || payload.ResponseData.TranslatedText == nil {
		return "", fmt.Errorf("translation response has no translatedText")
	}

	return *payload.ResponseData.TranslatedText, nil
}
