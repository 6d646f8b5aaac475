package layout

import (
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"trr/css"
)

// user agent defaults, author rules always win over these
const uaStylesheet = `
html, body, div, p, ul, ol, li, h1, h2, h3, h4, h5, h6, section, article,
header, footer, nav, main, aside, blockquote, pre, table, tr, hr, figure, dl,
dt, dd, form, details, summary { display: block; }
head, style, script, title, meta, link, template { display: none; }
body { margin: 8px; }
p, ul, ol, blockquote, dl, pre, figure { margin-top: 1em; margin-bottom: 1em; }
ul, ol { padding-left: 40px; }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; font-weight: bold; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; font-weight: bold; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; font-weight: bold; }
h4, h5, h6 { margin-top: 1.33em; margin-bottom: 1.33em; font-weight: bold; }
b, strong, th, dt { font-weight: bold; }
small { font-size: smaller; }
pre { white-space: pre-wrap; }
hr { border-top: 1px solid #cccccc; margin-top: 0.5em; margin-bottom: 0.5em; }
a { color: #0000ee; }
`

// default root values
const (
	defaultFontSize   = css.RootFontSize
	defaultLineHeight = 1.2
	defaultColor      = "#000000"
)

// Style is computed style of an element: declared properties plus inherited
// text properties resolved to pixels.
type Style struct {
	props map[string]css.Value

	Display    string
	FontSize   float64
	LineHeight float64 // pixels
	Bold       bool
	Color      string
	Background string
	TextAlign  string
	PreWrap    bool
	Radius     float64

	// unitless line-height is inherited as factor
	lineFactor float64
}

func rootStyle() *Style {
	return &Style{
		Display:    "block",
		FontSize:   defaultFontSize,
		LineHeight: defaultFontSize * defaultLineHeight,
		lineFactor: defaultLineHeight,
		Color:      defaultColor,
		TextAlign:  "left",
	}
}

// keyword returns keyword value of property or empty string.
func (s *Style) keyword(name string) string {
	return s.props[name].Keyword
}

// length resolves property to pixels, percentages are resolved against base.
func (s *Style) length(name string, base float64) (float64, bool) {
	v, ok := s.props[name]
	if !ok {
		return 0, false
	}
	return v.Length(s.FontSize, base)
}

// fixed is length which does not depend on containing block.
func (s *Style) fixed(name string) (float64, bool) {
	v, ok := s.props[name]
	if !ok || v.Unit == "%" {
		return 0, false
	}
	return v.Length(s.FontSize, 0)
}

func (s *Style) px(name string, base float64) float64 {
	v, _ := s.length(name, base)
	return v
}

var sides = [4]string{"top", "right", "bottom", "left"}

// Edges order is top, right, bottom, left.
type Edges [4]float64

func (e Edges) horizontal() float64 { return e[1] + e[3] }
func (e Edges) vertical() float64   { return e[0] + e[2] }

func (s *Style) margins(base float64) Edges {
	var e Edges
	for i, side := range sides {
		e[i] = s.px("margin-"+side, base)
	}
	return e
}

func (s *Style) paddings(base float64) Edges {
	var e Edges
	for i, side := range sides {
		e[i] = max(0, s.px("padding-"+side, base))
	}
	return e
}

func (s *Style) borders() Edges {
	var e Edges
	for i, side := range sides {
		e[i] = max(0, s.px("border-"+side+"-width", 0))
	}
	return e
}

// BorderColor returns color of given side (0 - top, clockwise), falls back to
// text color as browsers do.
func (s *Style) BorderColor(side int) string {
	if c := s.keyword("border-" + sides[side] + "-color"); c != "" {
		return c
	}
	return s.Color
}

// Borders returns border widths in pixels.
func (s *Style) Borders() Edges {
	return s.borders()
}

// blockLevel reports whether element generates block-level box.
func (s *Style) blockLevel() bool {
	switch s.Display {
	case "inline", "contents", "":
		return false
	}
	return true
}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32,
}

// computeStyle resolves style of element from declared properties and
// parent style.
func computeStyle(el *etree.Element, declared map[string]css.Value, parent *Style) *Style {
	st := &Style{
		props:      declared,
		FontSize:   parent.FontSize,
		LineHeight: parent.LineHeight,
		lineFactor: parent.lineFactor,
		Bold:       parent.Bold,
		Color:      parent.Color,
		TextAlign:  parent.TextAlign,
		PreWrap:    parent.PreWrap,
	}

	if v, ok := declared["font-size"]; ok {
		switch {
		case v.Keyword == "smaller":
			st.FontSize = parent.FontSize / 1.2
		case v.Keyword == "larger":
			st.FontSize = parent.FontSize * 1.2
		case fontSizeKeywords[v.Keyword] > 0:
			st.FontSize = fontSizeKeywords[v.Keyword]
		default:
			if px, ok := v.Length(parent.FontSize, parent.FontSize); ok && px > 0 {
				st.FontSize = px
			}
		}
	}

	// line-height must be looked at after font-size is known
	if v, ok := declared["line-height"]; ok {
		switch {
		case v.Keyword == "normal":
			st.lineFactor = defaultLineHeight
		case v.IsNumeric() && v.Unit == "":
			st.lineFactor = v.Value
		default:
			if px, ok := v.Length(st.FontSize, st.FontSize); ok {
				st.lineFactor = 0
				st.LineHeight = px
			}
		}
	}
	if st.lineFactor > 0 {
		st.LineHeight = st.FontSize * st.lineFactor
	}

	if v, ok := declared["font-weight"]; ok {
		switch v.Keyword {
		case "bold", "bolder":
			st.Bold = true
		case "normal", "lighter":
			st.Bold = false
		default:
			if v.IsNumeric() {
				st.Bold = v.Value >= 600
			}
		}
	}
	if c := st.keyword("color"); c != "" && c != "inherit" {
		st.Color = c
	}
	if a := st.keyword("text-align"); a != "" {
		st.TextAlign = a
	}
	if ws := st.keyword("white-space"); ws != "" {
		st.PreWrap = ws == "pre" || ws == "pre-wrap" || ws == "pre-line"
	}

	st.Display = st.keyword("display")
	if st.Display == "" {
		st.Display = "inline"
	}
	if el.Tag == "br" {
		st.Display = "inline"
	}

	st.Background = st.keyword("background-color")
	if st.Background == "transparent" {
		st.Background = ""
	}
	if r, ok := st.fixed("border-radius"); ok {
		st.Radius = r
	} else if v := declared["border-radius"]; v.Unit == "%" && v.Value >= 50 {
		// circle, resolved against box size by renderer
		st.Radius = -1
	}
	return st
}

// gridColumns returns number of columns from grid-template-columns.
func (s *Style) gridColumns() int {
	raw := strings.TrimSpace(s.props["grid-template-columns"].Raw)
	if raw == "" || raw == "none" {
		return 1
	}
	if rest, ok := strings.CutPrefix(raw, "repeat("); ok {
		n, _, _ := strings.Cut(rest, ",")
		if v, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && v > 0 {
			return v
		}
		return 1
	}
	return max(1, len(strings.Fields(raw)))
}

// node adapts etree element for selector matching.
type node struct {
	el *etree.Element
}

func (n node) Tag() string {
	return strings.ToLower(n.el.Tag)
}

func (n node) HasClass(name string) bool {
	return slices.Contains(strings.Fields(n.el.SelectAttrValue("class", "")), name)
}

func (n node) siblings() []*etree.Element {
	if p := n.el.Parent(); p != nil {
		return p.ChildElements()
	}
	return nil
}

func (n node) IsFirstChild() bool {
	s := n.siblings()
	return len(s) == 0 || s[0] == n.el
}

func (n node) IsLastChild() bool {
	s := n.siblings()
	return len(s) == 0 || s[len(s)-1] == n.el
}

func (n node) ParentNode() css.Node {
	p := n.el.Parent()
	if p == nil || p.Tag == "" {
		// document itself
		return nil
	}
	return node{el: p}
}
