package lookup

import (
	"fmt"

	"github.com/giygas/lactancia-api/cache"
	"github.com/giygas/lactancia-api/config"
	"github.com/giygas/lactancia-api/scraper"
	"github.com/giygas/lactancia-api/translation"
)

// NewFromConfig wires the upstream clients, cache, translator and fallback
// records described by cfg. The returned client doubles as upstream prober.
func NewFromConfig(cfg *config.Config) (*Service, *scraper.Client, error) {
	client := scraper.NewClient(scraper.ClientConfig{
		ProxyURL:        cfg.ProxyURL,
		SearchURL:       cfg.SearchURL,
		DetailSearchURL: cfg.DetailSearchURL,
		Timeout:         cfg.UpstreamTimeout,
	})

	fallback, err := LoadFallbackDB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fallback records: %w", err)
	}

	opts := []Option{WithFallback(fallback)}
	if cfg.TranslationEnabled {
		translator := translation.NewTranslator(
			translation.NewMyMemoryClient(cfg.TranslateURL, cfg.UpstreamTimeout),
			translation.DelayPacer{Delay: cfg.TranslationPacing},
		)
		opts = append(opts, WithLocalizer(translation.NewLocalizer(translator, cfg.SourceLang, cfg.TargetLang)))
	}

	svc := NewService(client, scraper.NewAssembler(cfg.DetailSearchURL), cache.NewResultCache(), opts...)
	return svc, client, nil
}
