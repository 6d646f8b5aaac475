// Package raster draws laid out report into images. Boxes with their
// backgrounds and borders are turned into SVG and rasterized, text is drawn
// on top with a fixed bitmap face. Picture is schematic, geometry is exact.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"trr/config"
	"trr/export"
	"trr/layout"
	"trr/segment"
	"trr/utils/images"
)

// Capturer implements export.RasterCapture for layout pages.
type Capturer struct {
	log        *zap.Logger
	scale      float64
	background color.Color
}

func NewCapturer(cfg *config.ExportConfig, log *zap.Logger) (*Capturer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Capturer{log: log.Named("raster"), scale: cfg.Scale, background: color.White}
	if c.scale <= 0 {
		c.scale = 1
	}
	if cfg.Background != "" {
		bg, ok := images.ParseColor(cfg.Background)
		if !ok {
			return nil, fmt.Errorf("unable to parse background color %q", cfg.Background)
		}
		c.background = bg
	}
	return c, nil
}

// Capture draws window of the page scaled by configured factor.
func (c *Capturer) Capture(ctx context.Context, m export.Measurement, window segment.Segment) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page, ok := m.(*layout.Page)
	if !ok {
		return nil, fmt.Errorf("unsupported measurement %T", m)
	}

	w := int(math.Ceil(page.Width()))
	h := int(math.Ceil(window.Height()))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty capture window %.1fx%.1f", page.Width(), window.Height())
	}
	sw, sh := int(math.Round(float64(w)*c.scale)), int(math.Round(float64(h)*c.scale))
	if sw > images.MaxRasterDim || sh > images.MaxRasterDim {
		return nil, fmt.Errorf("%w: %dx%d, limit is %d", images.ErrTooLarge, sw, sh, images.MaxRasterDim)
	}

	svg, boxes := drawing(page.Root, window, w, h)
	data, err := svg.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("unable to serialize drawing: %w", err)
	}
	img, err := images.RasterizeSVG(data, w, h, c.background)
	if err != nil {
		return nil, err
	}
	runs := drawText(img, boxes, window.Start)

	c.log.Debug("Window captured",
		zap.Float64("start", window.Start),
		zap.Float64("end", window.End),
		zap.Int("boxes", len(boxes)),
		zap.Int("runs", runs),
		zap.Int("width", sw),
		zap.Int("height", sh))

	if sw == w && sh == h {
		return img, nil
	}
	return imaging.Resize(img, sw, sh, imaging.Lanczos), nil
}

func visible(b *layout.Box, window segment.Segment) bool {
	return b.Bottom() > window.Start && b.Y < window.End
}

// drawing builds SVG of all box decorations intersecting window, positions
// are shifted so window starts at 0. Boxes in window are returned in paint
// order.
func drawing(root *layout.Box, window segment.Segment, w, h int) (*etree.Document, []*layout.Box) {
	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(w))
	svg.CreateAttr("height", strconv.Itoa(h))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", w, h))

	var boxes []*layout.Box
	root.Walk(func(b *layout.Box) bool {
		if !visible(b, window) {
			return false
		}
		boxes = append(boxes, b)
		if b.Element == nil || b.Style == nil {
			return true
		}
		y := b.Y - window.Start
		if fill, ok := images.ParseColor(b.Style.Background); ok {
			r := b.Style.Radius
			if r < 0 {
				r = math.Min(b.W, b.H) / 2
			}
			rect(svg, b.X, y, b.W, b.H, r, fill)
		}
		bw := b.Style.Borders()
		for side, width := range bw {
			if width <= 0 {
				continue
			}
			stroke, ok := images.ParseColor(b.Style.BorderColor(side))
			if !ok {
				continue
			}
			switch side {
			case 0:
				rect(svg, b.X, y, b.W, width, 0, stroke)
			case 1:
				rect(svg, b.X+b.W-width, y, width, b.H, 0, stroke)
			case 2:
				rect(svg, b.X, y+b.H-width, b.W, width, 0, stroke)
			case 3:
				rect(svg, b.X, y, width, b.H, 0, stroke)
			}
		}
		return true
	})
	return doc, boxes
}

func rect(parent *etree.Element, x, y, w, h, r float64, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	fill, opacity := hexColor(c)
	el := parent.CreateElement("rect")
	el.CreateAttr("x", num(x))
	el.CreateAttr("y", num(y))
	el.CreateAttr("width", num(w))
	el.CreateAttr("height", num(h))
	if r > 0 {
		el.CreateAttr("rx", num(r))
		el.CreateAttr("ry", num(r))
	}
	el.CreateAttr("fill", fill)
	if opacity < 1 {
		el.CreateAttr("fill-opacity", num(opacity))
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func hexColor(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// drawText paints text runs of the boxes clipped to their own width, returns
// number of runs drawn.
func drawText(dst *image.RGBA, boxes []*layout.Box, offset float64) int {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Round(), metrics.Descent.Round()

	var count int
	for _, b := range boxes {
		for _, line := range b.Lines {
			top := line.Y - offset
			baseline := int(math.Round(top + (line.Height+float64(ascent-descent))/2))
			for _, run := range line.Runs {
				clip := image.Rect(
					int(math.Floor(run.X)), int(math.Floor(top)),
					int(math.Ceil(run.X+run.Width)), int(math.Ceil(top+line.Height)),
				).Intersect(dst.Bounds())
				if clip.Empty() {
					continue
				}
				ink := color.Color(color.Black)
				if run.Style != nil {
					if c, ok := images.ParseColor(run.Style.Color); ok {
						ink = c
					}
				}
				d := &font.Drawer{
					Dst:  dst.SubImage(clip).(*image.RGBA),
					Src:  image.NewUniform(ink),
					Face: face,
					Dot:  fixed.P(int(math.Round(run.X)), baseline),
				}
				d.DrawString(run.Text)
				count++
			}
		}
	}
	return count
}
