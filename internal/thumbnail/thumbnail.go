// Package thumbnail fetches remote thumbnail images and re-encodes them
// into small, embeddable JPEG data URIs.
package thumbnail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/hbomb79/Trawl/pkg/logger"
	"golang.org/x/image/draw"
)

const (
	maxBoxWidth  = 200
	maxBoxHeight = 150
	jpegQuality  = 85

	fetchTimeout = time.Second * 10
)

type Generator struct {
	client *http.Client
	log    logger.Logger
}

func NewGenerator(log logger.Logger) *Generator {
	return &Generator{
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// FetchBase64 downloads the image at the given URL, scales it down (if
// needed) so neither dimension exceeds the 200x150 bounding box, and
// returns it as a JPEG data URI. Any failure - transport, decode or
// encode - yields an empty string; thumbnails are best-effort only and
// never fail their caller.
func (generator *Generator) FetchBase64(ctx context.Context, url string) string {
	raw, err := generator.fetch(ctx, url)
	if err != nil {
		generator.log.Emit(logger.DEBUG, "Thumbnail fetch for %s failed: %v\n", url, err)
		return ""
	}

	source, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		generator.log.Emit(logger.DEBUG, "Thumbnail decode for %s failed: %v\n", url, err)
		return ""
	}

	scaled := scaleToFit(source, maxBoxWidth, maxBoxHeight)

	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, scaled, &jpeg.Options{Quality: jpegQuality}); err != nil {
		generator.log.Emit(logger.DEBUG, "Thumbnail encode for %s failed: %v\n", url, err)
		return ""
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(encoded.Bytes())
}

func (generator *Generator) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := generator.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// scaleToFit shrinks the image, preserving aspect ratio, so that it fits
// inside the box. Images already within bounds are returned untouched.
func scaleToFit(source image.Image, boxWidth int, boxHeight int) image.Image {
	bounds := source.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= boxWidth && height <= boxHeight {
		return source
	}

	ratio := min(float64(boxWidth)/float64(width), float64(boxHeight)/float64(height))
	targetWidth := max(1, int(float64(width)*ratio))
	targetHeight := max(1, int(float64(height)*ratio))

	target := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(target, target.Bounds(), source, bounds, draw.Over, nil)
	return target
}
