package fetcher

import (
	"bytes"
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/hbomb79/Trawl/pkg/logger"
)

// htmlStrategy discovers videos by parsing the page markup: native <video>
// elements, <source> children, and embedded player iframes (in that fixed
// order). A fetch or parse failure is contained here; the strategy simply
// yields nothing.
type htmlStrategy struct {
	pages PageFetcher
	log   logger.Logger
}

func (strategy *htmlStrategy) extract(ctx context.Context, pageURL string) []VideoRecord {
	body, err := strategy.pages.FetchPage(ctx, pageURL)
	if err != nil {
		strategy.log.Emit(logger.WARNING, "HTML extraction for %s abandoned: %v\n", pageURL, err)
		return nil
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		strategy.log.Emit(logger.WARNING, "Failed to parse HTML from %s: %v\n", pageURL, err)
		return nil
	}

	var records []VideoRecord

	document.Find("video").Each(func(_ int, element *goquery.Selection) {
		src, ok := element.Attr("src")
		if !ok || src == "" {
			return
		}

		_, controls := element.Attr("controls")
		_, autoplay := element.Attr("autoplay")
		poster, _ := element.Attr("poster")
		records = append(records, VideoRecord{
			URL:      resolveURL(pageURL, src),
			Poster:   poster,
			Controls: &controls,
			Autoplay: &autoplay,
			Method:   MethodHTMLVideoTag,
		})
	})

	document.Find("source").Each(func(_ int, element *goquery.Selection) {
		src, ok := element.Attr("src")
		if !ok || src == "" {
			return
		}

		resolved := resolveURL(pageURL, src)
		if !IsVideoURL(resolved) {
			return
		}

		sourceType, ok := element.Attr("type")
		if !ok {
			sourceType = "unknown"
		}
		records = append(records, VideoRecord{
			URL:    resolved,
			Type:   sourceType,
			Method: MethodHTMLSourceTag,
		})
	})

	document.Find("iframe").Each(func(_ int, element *goquery.Selection) {
		src, ok := element.Attr("src")
		if !ok || src == "" || !IsVideoEmbed(src) {
			return
		}

		records = append(records, VideoRecord{
			URL:    resolveURL(pageURL, src),
			Type:   "embed",
			Method: MethodIframeEmbed,
		})
	})

	return records
}

// resolveURL resolves ref against base, returning ref untouched if either
// URL fails to parse.
func resolveURL(base string, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}
