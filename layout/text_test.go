package layout

import (
	"testing"
)

func TestTextWidth(t *testing.T) {
	tests := []struct {
		name string
		text string
		size float64
		bold bool
		want float64
	}{
		{"empty", "", 16, false, 0},
		{"cjk", "热点新闻", 10, false, 40},
		{"fullwidth", "ＡＢ", 10, false, 20},
		{"emoji", "🔥", 20, false, 20},
		{"digits", "12", 10, false, 11.2},
		{"bold", "热", 10, true, 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextWidth(tt.text, tt.size, tt.bold); !near(got, tt.want) {
				t.Errorf("TextWidth(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBreakLines(t *testing.T) {
	st := rootStyle()
	st.FontSize, st.LineHeight = 10, 15

	tests := []struct {
		name   string
		text   string
		avail  float64
		align  string
		lines  []string
		firstX float64
	}{
		{"fits", "热点 新闻", 100, "left", []string{"热点 新闻"}, 0},
		{"breaks between wide runes", "热点新闻", 25, "left", []string{"热点", "新闻"}, 0},
		{"drops space at line end", "热点 新闻", 25, "left", []string{"热点", "新闻"}, 0},
		{"breaks long word", "热点新闻热点", 1, "left", []string{"热", "点", "新", "闻", "热", "点"}, 0},
		{"centered", "热点", 100, "center", []string{"热点"}, 40},
		{"right", "热点", 100, "right", []string{"热点"}, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := breakLines(tokenize([]piece{{text: tt.text, style: st}}), tt.avail, tt.align)
			if len(lines) != len(tt.lines) {
				t.Fatalf("got %d lines %+v, want %v", len(lines), lines, tt.lines)
			}
			for i, ln := range lines {
				var text string
				for _, r := range ln.Runs {
					text += r.Text
				}
				if text != tt.lines[i] {
					t.Errorf("line %d = %q, want %q", i, text, tt.lines[i])
				}
				if !near(ln.Y, float64(i)*15) || ln.Height != 15 {
					t.Errorf("line %d at y=%v h=%v", i, ln.Y, ln.Height)
				}
			}
			if !near(lines[0].Runs[0].X, tt.firstX) {
				t.Errorf("first run x = %v, want %v", lines[0].Runs[0].X, tt.firstX)
			}
		})
	}
}

func TestMaxLineWidth(t *testing.T) {
	st := rootStyle()
	st.FontSize = 10
	st.PreWrap = true

	toks := tokenize([]piece{{text: "热点新闻\n热", style: st}, {br: true, style: st}, {text: "热点", style: st}})
	if got := maxLineWidth(toks); !near(got, 40) {
		t.Errorf("maxLineWidth() = %v, want 40", got)
	}
}
