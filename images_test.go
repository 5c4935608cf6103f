package artfolio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// makeJPEG encodes a w x h gradient as JPEG test input.
func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestResizeFitsBounds(t *testing.T) {
	src := makeJPEG(t, 2000, 1500)

	out, err := Resize(src, ThumbnailMaxWidth, ThumbnailMaxHeight)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	w, h := decodeDims(t, out)
	if w > ThumbnailMaxWidth || h > ThumbnailMaxHeight {
		t.Errorf("output %dx%d exceeds bounds %dx%d", w, h, ThumbnailMaxWidth, ThumbnailMaxHeight)
	}
	// 2000x1500 scaled by min(400/2000, 300/1500) = 0.2 gives 400x300.
	if w != 400 || h != 300 {
		t.Errorf("output = %dx%d, want 400x300", w, h)
	}
}

func TestResizePreservesAspectRatio(t *testing.T) {
	src := makeJPEG(t, 3000, 1000)

	out, err := Resize(src, DisplayMaxWidth, DisplayMaxHeight)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	w, h := decodeDims(t, out)
	if w > DisplayMaxWidth || h > DisplayMaxHeight {
		t.Errorf("output %dx%d exceeds bounds", w, h)
	}
	srcRatio := 3000.0 / 1000.0
	outRatio := float64(w) / float64(h)
	if outRatio < srcRatio*0.99 || outRatio > srcRatio*1.01 {
		t.Errorf("aspect ratio %f drifted from %f", outRatio, srcRatio)
	}
}

func TestResizeNeverUpscales(t *testing.T) {
	src := makeJPEG(t, 120, 90)

	out, err := Resize(src, ThumbnailMaxWidth, ThumbnailMaxHeight)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := decodeDims(t, out); w != 120 || h != 90 {
		t.Errorf("small image was rescaled to %dx%d, want 120x90", w, h)
	}
}

func TestResizeAcceptsPNG(t *testing.T) {
	src := makePNG(t, 800, 600)
	out, err := Resize(src, ThumbnailMaxWidth, ThumbnailMaxHeight)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if w, h := decodeDims(t, out); w != 400 || h != 300 {
		t.Errorf("output = %dx%d, want 400x300", w, h)
	}
}

func TestResizeRejectsGarbage(t *testing.T) {
	_, err := Resize([]byte("definitely not an image"), 400, 300)
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestPlaceholderIsAlwaysTiny(t *testing.T) {
	for _, dims := range [][2]int{{2000, 1500}, {1000, 3000}, {50, 50}, {19, 7}} {
		src := makeJPEG(t, dims[0], dims[1])
		out, err := Placeholder(src)
		if err != nil {
			t.Fatalf("Placeholder(%dx%d) failed: %v", dims[0], dims[1], err)
		}
		if w, h := decodeDims(t, out); w != placeholderSize || h != placeholderSize {
			t.Errorf("Placeholder(%dx%d) = %dx%d, want %dx%d", dims[0], dims[1], w, h, placeholderSize, placeholderSize)
		}
	}
}

func TestPlaceholderRejectsGarbage(t *testing.T) {
	_, err := Placeholder([]byte{0x00, 0x01})
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}
