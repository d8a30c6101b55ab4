package ioutils

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService provides image processing operations for cover art.
//
// Covers arrive in whatever size the platform serves (often 1000px and up).
// The terminal browser only needs a few dozen "pixels", so ImageService
// decodes and scales them down once per cover.
//
// Example usage:
//
//	svc := NewImageService()
//	coverData, _ := client.DownloadBytes(ctx, album.CoverURL)
//	thumb, _ := svc.Thumbnail(ctx, coverData, 24, 24)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Thumbnail decodes an image and scales it to fit within maxWidth x maxHeight.
//
// The aspect ratio is preserved. Images smaller than the bounds are returned
// at their own size. The Catmull-Rom kernel is used for downscaling.
//
// Example:
//
//	// A 1500x1000 cover becomes 24x16
//	thumb, err := svc.Thumbnail(ctx, data, 24, 24)
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxWidth, maxHeight int) (*image.RGBA, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("invalid thumbnail bounds %dx%d", maxWidth, maxHeight)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}

	bounds := img.Bounds()
	width, height := FitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst, nil
}

// FitWithin returns the largest size with the aspect ratio of width x height
// that fits within maxWidth x maxHeight. Sizes that already fit are returned
// unchanged. Neither dimension is reduced below 1.
func FitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= 0 || height <= 0 {
		return 1, 1
	}

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	return max(width, 1), max(height, 1)
}
