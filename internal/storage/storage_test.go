package storage

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/marketplace-api/internal/config"
	"github.com/BruksfildServices01/marketplace-api/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeDocumentConvertsImagesToWebP(t *testing.T) {
	doc, err := NormalizeDocument(pngBytes(t, 3000, 1500))
	require.NoError(t, err)
	assert.Equal(t, "image/webp", doc.ContentType)
	assert.Equal(t, ".webp", doc.Extension)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Width)
	assert.Equal(t, 1000, cfg.Height)
}

// withDimensions rewrites the IHDR size of a PNG, fixing up its CRC.
func withDimensions(data []byte, w, h uint32) []byte {
	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestNormalizeDocumentRejectsHugeDimensions(t *testing.T) {
	bomb := withDimensions(pngBytes(t, 8, 8), 60000, 60000)

	_, err := NormalizeDocument(bomb)
	assert.True(t, httperr.IsBusiness(err, "image_too_large"))
}

func TestNormalizeDocumentKeepsThinImagesVisible(t *testing.T) {
	doc, err := NormalizeDocument(pngBytes(t, 4001, 1))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.Width)
	assert.Equal(t, 1, cfg.Height)
}

func TestNormalizeDocumentKeepsPDF(t *testing.T) {
	pdf := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

	doc, err := NormalizeDocument(pdf)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, pdf, doc.Body)
}

func TestNormalizeDocumentRejectsOtherTypes(t *testing.T) {
	_, err := NormalizeDocument([]byte("just some text"))
	assert.True(t, httperr.IsBusiness(err, "unsupported_document_type"))

	_, err = NormalizeDocument(nil)
	assert.True(t, httperr.IsBusiness(err, "empty_document"))
}

func TestLocalStorePut(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "/uploads")

	url, err := s.Put(context.Background(), "providers/1/doc.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/providers/1/doc.pdf", url)

	got, err := os.ReadFile(filepath.Join(root, "providers", "1", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), got)
}

func TestLocalStoreResolve(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "/uploads")
	_, err := s.Put(context.Background(), "providers/1/doc.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)

	full, err := s.Resolve("providers/1/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "providers", "1", "doc.pdf"), full)

	for _, key := range []string{"", "providers/1", "providers/1/missing.pdf", "../../etc/passwd"} {
		_, err = s.Resolve(key)
		assert.True(t, httperr.IsBusiness(err, "file_not_found"), key)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	s, err := New(&config.Config{StorageBackend: config.StorageLocal, LocalStoragePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, s)

	s, err = New(&config.Config{StorageBackend: config.StorageS3, S3Bucket: "docs", S3Region: "us-east-1"})
	require.NoError(t, err)
	assert.IsType(t, &S3Store{}, s)

	_, err = New(&config.Config{StorageBackend: config.StorageS3})
	assert.Error(t, err)
}

func TestObjectBaseURL(t *testing.T) {
	assert.Equal(t, "https://docs.s3.eu-west-1.amazonaws.com",
		objectBaseURL(&config.Config{S3Bucket: "docs", S3Region: "eu-west-1"}))
	assert.Equal(t, "http://minio:9000/docs",
		objectBaseURL(&config.Config{S3Bucket: "docs", S3Endpoint: "http://minio:9000/"}))
}
