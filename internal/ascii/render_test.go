// internal/ascii/render_test.go
package ascii

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uniformImage(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return encodePNG(t, img)
}

func TestRenderDimensions(t *testing.T) {
	// 2x2 source at width 10: height = round(10 * 2/2 * 0.5) = 5
	data := uniformImage(t, 2, 2, color.Black)

	art, err := Render(data, 10)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	assert.Len(t, rows, 5)
	for _, row := range rows {
		assert.Len(t, row, 10)
	}
	assert.True(t, strings.HasSuffix(art, "\n"), "last row must end with a newline")
}

func TestRenderMinimumHeight(t *testing.T) {
	// 2x2 source at width 1: round(1 * 0.5) rounds up to a single row
	data := uniformImage(t, 2, 2, color.White)

	art, err := Render(data, 1)
	require.NoError(t, err)
	assert.Equal(t, " \n", art)
}

func TestRenderLuminanceExtremes(t *testing.T) {
	black, err := Render(uniformImage(t, 2, 2, color.Black), 4)
	require.NoError(t, err)
	assert.Equal(t, "@@@@\n@@@@\n", black)

	white, err := Render(uniformImage(t, 2, 2, color.White), 4)
	require.NoError(t, err)
	assert.Equal(t, "    \n    \n", white)
}

func TestRenderUsesOnlyRampGlyphs(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := uint8(x*16 + y)
			img.Set(x, y, color.RGBA{R: v, G: 255 - v, B: v / 2, A: 255})
		}
	}
	data := encodePNG(t, img)

	art, err := Render(data, 12)
	require.NoError(t, err)

	for _, r := range art {
		if r == '\n' {
			continue
		}
		assert.Contains(t, Ramp, string(r))
	}
}

func TestRenderDeterministic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	data := encodePNG(t, img)

	first, err := Render(data, 20)
	require.NoError(t, err)
	second, err := Render(data, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render([]byte("definitely not an image"), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImageDecode)

	_, err = Render(uniformImage(t, 2, 2, color.Black), 0)
	require.Error(t, err)
}
