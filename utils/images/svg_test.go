package images

import (
	"errors"
	"image/color"
	"testing"
)

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect x="0" y="0" width="50" height="50" fill="#ff0000"/></svg>`)

	t.Run("intrinsic", func(t *testing.T) {
		img, err := RasterizeSVG(svg, 0, 0, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
			t.Fatalf("unexpected bounds: %v", img.Bounds())
		}
		if c := img.RGBAAt(25, 25); c.R != 255 || c.G != 0 {
			t.Errorf("rect not drawn: %v", c)
		}
		if c := img.RGBAAt(75, 25); c != (color.RGBA{255, 255, 255, 255}) {
			t.Errorf("expected white background, got %v", c)
		}
	})

	t.Run("stretched", func(t *testing.T) {
		img, err := RasterizeSVG(svg, 300, 300, color.Black)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 300 || img.Bounds().Dy() != 300 {
			t.Fatalf("unexpected bounds: %v", img.Bounds())
		}
		if c := img.RGBAAt(250, 150); c != (color.RGBA{0, 0, 0, 255}) {
			t.Errorf("expected black background, got %v", c)
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := RasterizeSVG(svg, 10, MaxRasterDim+1, nil); !errors.Is(err, ErrTooLarge) {
			t.Errorf("expected ErrTooLarge, got %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := RasterizeSVG([]byte("not svg"), 0, 0, nil); err == nil {
			t.Error("expected error")
		}
	})
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		want color.NRGBA
	}{
		{"#ff0000", true, color.NRGBA{255, 0, 0, 255}},
		{"#fff", true, color.NRGBA{255, 255, 255, 255}},
		{"white", true, color.NRGBA{255, 255, 255, 255}},
		{"", false, color.NRGBA{}},
		{"transparent", false, color.NRGBA{}},
		{"linear-gradient(red,blue)", false, color.NRGBA{}},
		{"url(#pattern)", false, color.NRGBA{}},
	}
	for _, tt := range tests {
		c, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && color.NRGBAModel.Convert(c).(color.NRGBA) != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}
}
