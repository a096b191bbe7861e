// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded recipe images. Two backends exist: a
// local directory served by the API itself under /uploads/, and an
// S3-compatible bucket that serves objects directly.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// Store saves image objects and hands back the URL clients fetch them from.
type Store interface {
	// Put writes body under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	// Remove deletes the object a URL returned by Put points to. URLs that
	// belong to another backend are ignored.
	Remove(ctx context.Context, url string) error
}

// NewKey builds a unique object key of the form recipes/<yyyy>/<mm>/<uuid><ext>.
func NewKey(now time.Time, ext string) string {
	return fmt.Sprintf("recipes/%d/%02d/%s%s", now.Year(), now.Month(), uuid.New().String(), ext)
}

// ExtensionFromType returns a file extension for the image types uploads accept.
func ExtensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
