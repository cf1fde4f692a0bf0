// Package fetcher implements the multi-strategy video discovery pipeline:
// three independent, failure-isolated strategies (HTML parsing, delegated
// extraction, raw-text scanning) run sequentially over a page URL, their
// outputs are merged and deduplicated by URL, and an optional enrichment
// pass layers metadata and thumbnails onto the surviving records.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/hbomb79/Trawl/pkg/logger"
)

// ErrInvalidURL is raised to the immediate caller when the input is not a
// well-formed http(s) URL. This is the only failure class that escapes
// FetchVideosFromURL; everything else is contained or reported inside the
// result envelope.
var ErrInvalidURL = errors.New("invalid URL")

type (
	Config struct {
		// TimeoutSeconds bounds each page fetch. Strategies get a single
		// attempt each; there is no retry.
		TimeoutSeconds int `yaml:"timeout_seconds" env:"FETCH_TIMEOUT_SECONDS" env-default:"10"`

		// Enrich enables the per-record enrichment pass after merging.
		// The discovery-only surface leaves this off; the download
		// oriented surface turns it on.
		Enrich bool `yaml:"enrich" env:"FETCHER_ENRICH" env-default:"false"`
	}

	// Fetcher orchestrates the discovery strategies. Construct via New;
	// the zero value is not usable.
	Fetcher struct {
		config    Config
		html      *htmlStrategy
		delegated *extractorStrategy
		direct    *regexStrategy
		enricher  *enricher
		log       logger.Logger
	}
)

func New(config Config, pages PageFetcher, extractor Extractor, thumbnailer Thumbnailer, log logger.Logger) *Fetcher {
	return &Fetcher{
		config:    config,
		html:      &htmlStrategy{pages: pages, log: log},
		delegated: &extractorStrategy{extractor: extractor, log: log},
		direct:    &regexStrategy{pages: pages, log: log},
		enricher:  &enricher{extractor: extractor, thumbnailer: thumbnailer, log: log},
		log:       log,
	}
}

// FetchVideosFromURL runs the full discovery pipeline against the page
// URL. Strategies run strictly sequentially and each failure is contained
// within its strategy, so a dead page or unsupported site yields an empty
// result rather than an error. Anything that escapes that containment is
// caught once here and reported through the envelope's Errors field with
// whatever records were accumulated beforehand.
func (fetcher *Fetcher) FetchVideosFromURL(ctx context.Context, pageURL string) (*FetchResult, error) {
	if err := validatePageURL(pageURL); err != nil {
		return nil, err
	}

	result := &FetchResult{
		URL:         pageURL,
		Videos:      []VideoRecord{},
		Errors:      []string{},
		MethodsUsed: []string{},
	}

	fetcher.runPipeline(ctx, pageURL, result)
	return result, nil
}

// runPipeline covers the whole post-validation pipeline (strategies,
// merge and the optional enrichment pass) with a single recovery: a
// panic anywhere inside lands in the result's Errors alongside whatever
// records were accumulated before it.
func (fetcher *Fetcher) runPipeline(ctx context.Context, pageURL string, result *FetchResult) {
	defer func() {
		if cause := recover(); cause != nil {
			fetcher.log.Emit(logger.ERROR, "Discovery pipeline failure for %s: %v\n", pageURL, cause)
			result.Errors = append(result.Errors, fmt.Sprintf("%v", cause))
		}
	}()

	strategies := []struct {
		name    string
		extract func(context.Context, string) []VideoRecord
	}{
		{strategyHTML, fetcher.html.extract},
		{strategyYtdlp, fetcher.delegated.extract},
		{strategyDirect, fetcher.direct.extract},
	}

	for _, strategy := range strategies {
		records := strategy.extract(ctx, pageURL)
		if len(records) == 0 {
			continue
		}

		result.Videos = append(result.Videos, records...)
		result.MethodsUsed = append(result.MethodsUsed, strategy.name)
	}

	result.Videos = DeduplicateRecords(result.Videos)

	if fetcher.config.Enrich {
		fetcher.enricher.enrichAll(ctx, result.Videos)
	}
}

func validatePageURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return nil
}
