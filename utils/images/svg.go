// Package images has low level helpers turning vector drawings into encoded
// raster images.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// MaxRasterDim is the maximum pixel dimension (width or height) of a single
// rasterized image, RGBA buffer for bigger images is unreasonably large.
const MaxRasterDim = 16384

// ErrTooLarge is returned when requested image exceeds MaxRasterDim.
var ErrTooLarge = errors.New("image is too large")

// RasterizeSVG renders SVG into RGBA image of w x h pixels filled with
// background first. SVG viewBox is stretched over the whole image. When
// either dimension is not positive viewBox size is used.
func RasterizeSVG(svgData []byte, w, h int, background color.Color) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("unable to parse svg: %w", err)
	}

	if w <= 0 || h <= 0 {
		w = int(math.Ceil(icon.ViewBox.W))
		h = int(math.Ceil(icon.ViewBox.H))
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no size: %vx%v", icon.ViewBox.W, icon.ViewBox.H)
	}
	if w > MaxRasterDim || h > MaxRasterDim {
		return nil, fmt.Errorf("%w: %dx%d, limit is %d", ErrTooLarge, w, h, MaxRasterDim)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if background == nil {
		background = color.White
	}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// ParseColor understands CSS hex and named colors, ok is false for anything
// else (gradients, urls, variables).
func ParseColor(s string) (color.Color, bool) {
	switch {
	case s == "", s == "none", s == "transparent", strings.HasPrefix(strings.ToLower(s), "url"):
		return nil, false
	}
	c, err := oksvg.ParseSVGColor(s)
	if err != nil || c == nil {
		return nil, false
	}
	return c, true
}
