package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(tb testing.TB, width, height int) []byte {
	tb.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, G: 120, B: 40, A: 255})
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		tb.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestLocalUploaderStoresFile(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(testLogger(t), dir)
	if err != nil {
		t.Fatalf("NewLocalUploader: %v", err)
	}

	url, err := u.SaveImage(context.Background(), "studio.png", pngBytes(t, 40, 40))
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url: %s", url)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestLocalUploaderNamesAreUnique(t *testing.T) {
	u, err := NewLocalUploader(testLogger(t), t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalUploader: %v", err)
	}
	first, err := u.SaveImage(context.Background(), "same.png", pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	second, err := u.SaveImage(context.Background(), "same.png", pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("SaveImage (second): %v", err)
	}
	if first == second {
		t.Fatalf("two uploads of the same filename collided: %s", first)
	}
}

func TestNormalizeImageDownscalesWideImages(t *testing.T) {
	wide := pngBytes(t, maxImageWidth+400, 200)

	out := normalizeImage("wide.png", wide)
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode normalized image: %v", err)
	}
	if img.Bounds().Dx() != maxImageWidth {
		t.Fatalf("expected width %d, got %d", maxImageWidth, img.Bounds().Dx())
	}
}

func TestNormalizeImageKeepsSmallAndOpaqueData(t *testing.T) {
	small := pngBytes(t, 100, 100)
	if got := normalizeImage("small.png", small); !bytes.Equal(got, small) {
		t.Fatalf("small image was rewritten")
	}

	notAnImage := []byte("plain text payload")
	if got := normalizeImage("note.txt", notAnImage); !bytes.Equal(got, notAnImage) {
		t.Fatalf("undecodable data was rewritten")
	}
}
