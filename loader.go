package lightbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"time"

	// Decoders for the formats contact sheets ship in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// ErrNoImages is returned when every image of a sheet failed to load.
// Partial failures are not errors; failed cells render as placeholders.
var ErrNoImages = errors.New("lightbox: no images loaded")

// ErrUnknownSheet is returned when a manifest has no entry for a sheet ID.
var ErrUnknownSheet = errors.New("lightbox: unknown sheet")

// Manifest maps sheet identifiers to ordered image name lists. Cells are
// filled row-major from each list until it is exhausted; order is fixed at
// load and names must be unique within a sheet.
type Manifest struct {
	Sheets map[string][]string `json:"sheets"`
}

// ParseManifest decodes a JSON manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if len(m.Sheets) == 0 {
		return nil, fmt.Errorf("parse manifest: no sheets")
	}
	return &m, nil
}

// Images returns the ordered image names for a sheet.
func (m *Manifest) Images(sheetID string) ([]string, error) {
	names, ok := m.Sheets[sheetID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSheet, sheetID)
	}
	return names, nil
}

// ImageSource resolves an image name to a decoded image. Implementations
// must honor ctx cancellation for remote fetches.
type ImageSource interface {
	Fetch(ctx context.Context, name string) (image.Image, error)
}

// FSImageSource fetches images from an fs.FS, e.g. an os.DirFS photo
// directory or an embed.FS bundle.
type FSImageSource struct {
	FS fs.FS
}

// Fetch opens and decodes the named image file.
func (s FSImageSource) Fetch(ctx context.Context, name string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// LoaderConfig bounds the sheet load fan-out. The observed deployments put
// no limits on concurrent fetches and no timeout on any of them; these
// defaults are the documented hardening of that gap.
type LoaderConfig struct {
	// Concurrency is the maximum number of in-flight fetches. Default 4.
	Concurrency int
	// Timeout bounds a single fetch attempt. Default 10s.
	Timeout time.Duration
	// Attempts is how many times a failing fetch is tried. Default 2.
	Attempts int
	// Backoff is the pause between attempts, growing linearly. Default 250ms.
	Backoff time.Duration
}

func (c LoaderConfig) withDefaults() LoaderConfig {
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.Attempts <= 0 {
		c.Attempts = 2
	}
	if c.Backoff <= 0 {
		c.Backoff = 250 * time.Millisecond
	}
	return c
}

// LoadResult is the outcome for one cell's image. Image is nil and Err is
// set when every attempt failed; such cells render placeholders.
type LoadResult struct {
	Name  string
	Image image.Image
	Err   error
}

// LoadSheet fetches all named images with bounded concurrency, downsampling
// each to at most cellW x cellH pixels. Results are in input order. The
// returned error is non-nil only when ctx is cancelled or every single
// image failed.
func LoadSheet(ctx context.Context, src ImageSource, names []string, cellW, cellH int, cfg LoaderConfig) ([]LoadResult, error) {
	if len(names) == 0 {
		return nil, ErrNoImages
	}
	cfg = cfg.withDefaults()

	results := make([]LoadResult, len(names))
	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)

	for i, name := range names {
		g.Go(func() error {
			img, err := fetchWithRetry(ctx, src, name, cfg)
			if err != nil {
				debugf("load %s: %v", name, err)
				results[i] = LoadResult{Name: name, Err: err}
				return nil // partial failure is tolerated
			}
			if cellW > 0 && cellH > 0 {
				img = downsample(img, cellW, cellH)
			}
			results[i] = LoadResult{Name: name, Image: img}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loaded := 0
	for i := range results {
		if results[i].Err == nil {
			loaded++
		}
	}
	if loaded == 0 {
		return nil, ErrNoImages
	}
	return results, nil
}

// fetchWithRetry runs bounded attempts with linear backoff. Cancellation
// short-circuits both the attempt and the backoff sleep.
func fetchWithRetry(ctx context.Context, src ImageSource, name string, cfg LoaderConfig) (image.Image, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * cfg.Backoff):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		img, err := src.Fetch(attemptCtx, name)
		cancel()
		if err == nil {
			return img, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// downsample scales an image to fit within maxW x maxH, preserving aspect
// ratio. Images already small enough pass through untouched.
func downsample(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
