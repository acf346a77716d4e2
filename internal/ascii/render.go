// internal/ascii/render.go

// Package ascii converts raster images into monochrome character art.
package ascii

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ErrImageDecode reports bytes that are not a supported raster format.
var ErrImageDecode = errors.New("unsupported image data")

// Ramp maps luminance to glyphs, darkest to lightest. The exact alphabet and
// index formula are fixed: existing clients compare rendered output.
const Ramp = "@%#*+=-:. "

// Render converts imageData into character art width columns wide. Row count
// is round(width * srcHeight/srcWidth * 0.5), at least 1; the 0.5 factor
// compensates for glyph cells being roughly twice as tall as wide. Every row,
// including the last, ends with a newline.
func Render(imageData []byte, width int) (string, error) {
	if width < 1 {
		return "", fmt.Errorf("width must be at least 1, got %d", width)
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	height := int(math.Round(float64(width) * float64(srcH) / float64(srcW) * 0.5))
	if height < 1 {
		height = 1
	}

	scaled := resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)

	var b strings.Builder
	b.Grow(height * (width + 1))
	min := scaled.Bounds().Min
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := color.GrayModel.Convert(scaled.At(min.X+x, min.Y+y)).(color.Gray)
			idx := int(gray.Y) * (len(Ramp) - 1) / 255
			b.WriteByte(Ramp[idx])
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}
