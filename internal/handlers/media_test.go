package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// testImage encodes a solid-colour image of the given size.
func testImage(t *testing.T, width, height int, encode func(*bytes.Buffer, image.Image) error) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 80, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func encodePNG(buf *bytes.Buffer, img image.Image) error { return png.Encode(buf, img) }
func encodeJPEG(buf *bytes.Buffer, img image.Image) error {
	return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
}

func TestGenerateThumbnail_Downscales(t *testing.T) {
	src := testImage(t, 800, 600, encodePNG)

	thumb, err := generateThumbnail(src, thumbMaxWidth)
	if err != nil {
		t.Fatalf("generateThumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("expected thumbnail bytes for a large image")
	}

	decoded, _, err := image.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != thumbMaxWidth {
		t.Errorf("thumbnail width: got %d, want %d", bounds.Dx(), thumbMaxWidth)
	}
	// Aspect ratio preserved: 800x600 → 400x300.
	if bounds.Dy() != 300 {
		t.Errorf("thumbnail height: got %d, want 300", bounds.Dy())
	}
}

func TestGenerateThumbnail_SkipsSmallImages(t *testing.T) {
	src := testImage(t, 200, 150, encodeJPEG)

	thumb, err := generateThumbnail(src, thumbMaxWidth)
	if err != nil {
		t.Fatalf("generateThumbnail: %v", err)
	}
	if thumb != nil {
		t.Error("small image should not get a thumbnail")
	}
}

func TestGenerateThumbnail_RejectsGarbage(t *testing.T) {
	if _, err := generateThumbnail(bytes.NewReader([]byte("not an image")), thumbMaxWidth); err == nil {
		t.Error("expected error for undecodable input")
	}
}

func TestExtensionFromType(t *testing.T) {
	cases := map[string]string{
		"image/jpeg":      ".jpg",
		"image/png":       ".png",
		"image/gif":       ".gif",
		"image/webp":      ".webp",
		"application/pdf": "",
	}
	for contentType, want := range cases {
		if got := extensionFromType(contentType); got != want {
			t.Errorf("extensionFromType(%q): got %q, want %q", contentType, got, want)
		}
	}
}
