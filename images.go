package artfolio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Bounds for the derived image variants. Every painting stores a thumbnail
// and a display variant; backgrounds store a single display-sized variant.
const (
	ThumbnailMaxWidth   = 400
	ThumbnailMaxHeight  = 300
	DisplayMaxWidth     = 1920
	DisplayMaxHeight    = 1080
	BackgroundMaxWidth  = 1920
	BackgroundMaxHeight = 1080

	jpegQuality = 85

	placeholderSize    = 20
	placeholderQuality = 30
	placeholderRadius  = 2
)

// Resize decodes src (JPEG, PNG, or GIF), scales it to fit within
// maxWidth x maxHeight preserving aspect ratio, and re-encodes it as JPEG.
// Images already within bounds are never upscaled, only re-encoded.
func Resize(src []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth || h > maxHeight {
		ratio := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
		nw := max(int(float64(w)*ratio), 1)
		nh := max(int(float64(h)*ratio), 1)
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	return encodeJPEG(img, jpegQuality)
}

// Placeholder produces a 20x20 heavily blurred low-quality JPEG used as a
// progressive-loading preview while the display image loads. The output is
// always 20x20 regardless of source size or aspect ratio.
func Placeholder(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	tiny := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.ApproxBiLinear.Scale(tiny, tiny.Bounds(), img, img.Bounds(), draw.Over, nil)
	blurred := boxBlur(tiny, placeholderRadius)

	return encodeJPEG(blurred, placeholderQuality)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// boxBlur applies a separable box blur of the given radius. Two passes
// (horizontal then vertical) over a 20x20 image are cheap enough that no
// sliding-window accumulator is needed.
func boxBlur(src *image.RGBA, radius int) *image.RGBA {
	horiz := blurPass(src, radius, true)
	return blurPass(horiz, radius, false)
}

func blurPass(src *image.RGBA, radius int, horizontal bool) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var r, g, bl, a, n int
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx += d
				} else {
					sy += d
				}
				if sx < b.Min.X || sx >= b.Max.X || sy < b.Min.Y || sy >= b.Max.Y {
					continue
				}
				i := src.PixOffset(sx, sy)
				r += int(src.Pix[i])
				g += int(src.Pix[i+1])
				bl += int(src.Pix[i+2])
				a += int(src.Pix[i+3])
				n++
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = uint8(r / n)
			dst.Pix[i+1] = uint8(g / n)
			dst.Pix[i+2] = uint8(bl / n)
			dst.Pix[i+3] = uint8(a / n)
		}
	}
	return dst
}
