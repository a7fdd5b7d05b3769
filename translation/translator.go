// Package translation splits, paces and translates free text through a
// remote machine translation service.
package translation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/giygas/lactancia-api/interfaces"
	"github.com/giygas/lactancia-api/logging"
	"github.com/giygas/lactancia-api/metrics"
)

// DefaultChunkSize is the largest text sent in a single remote call
const DefaultChunkSize = 500

// Translator translates text of any length. It never fails: whatever cannot
// be translated comes back as it was.
type Translator struct {
	client    interfaces.ChunkTranslator
	pacer     interfaces.Pacer
	chunkSize int
}

// NewTranslator builds a translator. A nil pacer means no pause between chunks.
func NewTranslator(client interfaces.ChunkTranslator, pacer interfaces.Pacer) *Translator {
	if pacer == nil {
		pacer = NoPacer{}
	}
	return &Translator{client: client, pacer: pacer, chunkSize: DefaultChunkSize}
}

var _ interfaces.TextTranslator = (*Translator)(nil)

// Translate returns text in the target language, or text itself on any failure
func (t *Translator) Translate(ctx context.Context, text, from, to string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if utf8.RuneCountInString(text) <= t.chunkSize {
		out, ok := t.one(ctx, text, from, to)
		if !ok {
			return text
		}
		return out
	}

	chunks := Chunk(text, t.chunkSize)
	logging.Debug("Translating long text in chunks", "runes", utf8.RuneCountInString(text), "chunks", len(chunks))

	out := make([]string, len(chunks))
	copy(out, chunks)

	for i, chunk := range chunks {
		if i > 0 {
			if err := t.pacer.Pause(ctx); err != nil {
				metrics.TranslationChunks.WithLabelValues("skipped").Add(float64(len(chunks) - i))
				logging.Warn("Translation interrupted, keeping remaining chunks untranslated",
					"translated", i, "total", len(chunks), "error", err)
				break
			}
		}
		if translated, ok := t.one(ctx, chunk, from, to); ok {
			out[i] = translated
		}
	}

	return strings.Join(out, " ")
}

// one performs a single remote call and reports whether it produced text
func (t *Translator) one(ctx context.Context, text, from, to string) (string, bool) {
	out, err := t.client.TranslateChunk(ctx, text, from, to)
	if err != nil {
		metrics.TranslationChunks.WithLabelValues("fallback").Inc()
		logging.Warn("Translation failed, keeping original text", "error", err, "runes", utf8.RuneCountInString(text))
		return "", false
	}
	if out == "" {
		metrics.TranslationChunks.WithLabelValues("fallback").Inc()
		return "", false
	}
	metrics.TranslationChunks.WithLabelValues("translated").Inc()
	return out, true
}
