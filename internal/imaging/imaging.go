// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging inspects uploaded recipe images before they are stored.
// It sniffs the real content type, rejects anything that is not a supported
// raster format, and probes dimensions without a full decode so oversized
// images are refused early.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/http"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxPixels caps width*height to prevent decompression bombs.
// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
const MaxPixels = 100_000_000

// allowedTypes are the sniffed MIME types accepted for upload.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var (
	// ErrUnsupportedType means the bytes are not a jpeg, png, gif or webp image.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrTooManyPixels means the image exceeds MaxPixels.
	ErrTooManyPixels = errors.New("image dimensions too large")
)

// Info describes an inspected image.
type Info struct {
	ContentType string
	Width       int
	Height      int
}

// Inspect validates data as an uploadable image.
func Inspect(data []byte) (Info, error) {
	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return Info{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	return Info{ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
}
