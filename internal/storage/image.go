package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

const (
	MaxDocumentBytes = 10 << 20
	maxImagePixels   = 40_000_000
	maxImageSide     = 2000
	webpQuality      = 82
)

type Document struct {
	Body        []byte
	ContentType string
	Extension   string
}

// NormalizeDocument accepts PDF, JPEG, PNG and WebP uploads. Images are
// re-encoded as WebP with the longest side capped; PDFs pass through.
func NormalizeDocument(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, httperr.Validation("empty_document", "Document is empty.")
	}
	if len(data) > MaxDocumentBytes {
		return nil, httperr.Validation("document_too_large", "Document exceeds 10MB.")
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		return &Document{Body: data, ContentType: "application/pdf", Extension: ".pdf"}, nil
	case mt.Is("image/jpeg"), mt.Is("image/png"), mt.Is("image/webp"):
		return normalizeImage(data)
	default:
		return nil, httperr.Validation("unsupported_document_type", "Upload a PDF, JPEG, PNG or WebP file.")
	}
}

// normalizeImage reads the header first: the byte cap does not bound the
// pixel count a decoder would allocate for.
func normalizeImage(data []byte) (*Document, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.Validation("invalid_image", "Image could not be decoded.")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, httperr.Validation("image_too_large", "Image dimensions are too large.")
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, httperr.Validation("invalid_image", "Image could not be decoded.")
	}

	img := fitWithin(src, maxImageSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return &Document{Body: buf.Bytes(), ContentType: "image/webp", Extension: ".webp"}, nil
}

func fitWithin(src image.Image, side int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= side && h <= side {
		return src
	}

	if w >= h {
		h = max(1, h*side/w)
		w = side
	} else {
		w = max(1, w*side/h)
		h = side
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
