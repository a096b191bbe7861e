package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func encode(t *testing.T, format string, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func TestInspectAcceptsImages(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"gif", "image/gif"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			info, err := Inspect(encode(t, tt.format, 4, 3))
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if info.ContentType != tt.want {
				t.Errorf("content type = %q, want %q", info.ContentType, tt.want)
			}
			if info.Width != 4 || info.Height != 3 {
				t.Errorf("size = %dx%d, want 4x3", info.Width, info.Height)
			}
		})
	}
}

func TestInspectRejectsNonImages(t *testing.T) {
	inputs := map[string][]byte{
		"text":      []byte("just some text, not an image"),
		"pdf":       []byte("%PDF-1.4\n%..."),
		"truncated": encode(t, "png", 2, 2)[:12],
	}
	for name, data := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := Inspect(data)
			if !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("expected ErrUnsupportedType, got %v", err)
			}
		})
	}
}

func TestInspectRejectsHugeDimensions(t *testing.T) {
	// A PNG header claiming 20000x20000 pixels; DecodeConfig reads only IHDR.
	data := encode(t, "png", 1, 1)
	// IHDR width and height live at bytes 16..24; its CRC follows the data.
	huge := append([]byte{}, data...)
	binary.BigEndian.PutUint32(huge[16:20], 20000)
	binary.BigEndian.PutUint32(huge[20:24], 20000)
	binary.BigEndian.PutUint32(huge[29:33], crc32.ChecksumIEEE(huge[12:29]))

	_, err := Inspect(huge)
	if !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("expected ErrTooManyPixels, got %v", err)
	}
}
