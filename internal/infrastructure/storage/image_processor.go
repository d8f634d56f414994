package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	DefaultMaxImageSize = 5 * 1024 * 1024 // 5MB
	CoverWidth          = 600
	CoverHeight         = 900
)

var ErrImageTooLarge = errors.New("image too large")

type ImageProcessor struct {
	MaxSize int64 // bytes
	Width   int
	Height  int
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		MaxSize: DefaultMaxImageSize,
		Width:   CoverWidth,
		Height:  CoverHeight,
	}
}

// ValidateImage accepts JPEG and PNG up to MaxSize
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrImageTooLarge, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// ProcessCover fits the image inside Width x Height, keeping the aspect
// ratio, and re-encodes it as JPEG quality 90.
func (p *ImageProcessor) ProcessCover(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, p.Width, p.Height, imaging.Lanczos)
	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode cover: %w", err)
	}
	return b.Bytes(), nil
}
