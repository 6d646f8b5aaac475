package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Glyph advances are estimated, there are no fonts to measure with. Values
// are in ems and roughly follow common sans-serif faces.
const (
	advanceSpace  = 0.28
	advanceNarrow = 0.26
	advanceDigit  = 0.56
	advanceLower  = 0.52
	advanceUpper  = 0.66
	advanceWide   = 0.84
	advanceOther  = 0.6
	boldFactor    = 1.05
)

// wideRune reports whether rune occupies full em (CJK, fullwidth forms,
// emoji).
func wideRune(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

func advance(r rune) float64 {
	switch {
	case wideRune(r):
		return 1
	case r == ' ' || r == '\u00a0':
		return advanceSpace
	case r >= '0' && r <= '9':
		return advanceDigit
	case strings.ContainsRune("ijlft.,:;'!|()[]", r):
		return advanceNarrow
	case strings.ContainsRune("mwMW@%", r):
		return advanceWide
	case unicode.IsUpper(r):
		return advanceUpper
	case unicode.IsLower(r):
		return advanceLower
	case unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf):
		// combining marks and format characters take no room
		return 0
	}
	return advanceOther
}

// TextWidth estimates rendered width of s in pixels.
func TextWidth(s string, size float64, bold bool) float64 {
	var em float64
	for _, r := range s {
		em += advance(r)
	}
	w := em * size
	if bold {
		w *= boldFactor
	}
	return w
}

// piece is text of a single inline element, breaks are forced line breaks.
type piece struct {
	text  string
	style *Style
	br    bool
}

// token is unit of line breaking.
type token struct {
	text  string
	style *Style
	space bool
	br    bool
	width float64
}

// tokenize splits pieces into words, spaces and forced breaks. Wide runes
// are separate words since lines may break between any two of them.
func tokenize(pieces []piece) []token {
	var (
		toks      []token
		lastSpace = true // collapse leading white space
	)
	emit := func(t token) {
		t.width = TextWidth(t.text, t.style.FontSize, t.style.Bold)
		toks = append(toks, t)
	}
	for _, p := range pieces {
		if p.br {
			toks = append(toks, token{br: true, style: p.style})
			lastSpace = true
			continue
		}
		var word strings.Builder
		flush := func() {
			if word.Len() > 0 {
				emit(token{text: word.String(), style: p.style})
				word.Reset()
			}
		}
		for _, r := range p.text {
			switch {
			case r == '\n' && p.style.PreWrap:
				flush()
				toks = append(toks, token{br: true, style: p.style})
				lastSpace = true
			case unicode.IsSpace(r) && r != '\u00a0':
				flush()
				if p.style.PreWrap {
					if r == '\t' {
						emit(token{text: "    ", style: p.style, space: true})
					} else {
						emit(token{text: " ", style: p.style, space: true})
					}
					continue
				}
				if !lastSpace {
					emit(token{text: " ", style: p.style, space: true})
					lastSpace = true
				}
			case wideRune(r):
				flush()
				emit(token{text: string(r), style: p.style})
				lastSpace = false
			default:
				word.WriteRune(r)
				lastSpace = false
			}
		}
		flush()
	}
	return toks
}

// Run is text fragment sharing the same style within a line.
type Run struct {
	X     float64
	Width float64
	Text  string
	Style *Style
}

// Line is a single line of inline content. Y is top of the line box.
type Line struct {
	Y      float64
	Height float64
	Width  float64
	Runs   []Run
}

// lineBuilder accumulates tokens into lines.
type lineBuilder struct {
	avail  float64
	lines  []Line
	cur    Line
	curLH  float64
	spaces []token // pending spaces, dropped at line end
}

func (lb *lineBuilder) place(t token) {
	if n := len(lb.cur.Runs); n > 0 && lb.cur.Runs[n-1].Style == t.style {
		r := &lb.cur.Runs[n-1]
		r.Text += t.text
		r.Width += t.width
	} else {
		lb.cur.Runs = append(lb.cur.Runs, Run{X: lb.cur.Width, Width: t.width, Text: t.text, Style: t.style})
	}
	lb.cur.Width += t.width
	lb.curLH = max(lb.curLH, t.style.LineHeight)
}

func (lb *lineBuilder) pendingWidth() float64 {
	var w float64
	for _, s := range lb.spaces {
		w += s.width
	}
	return w
}

func (lb *lineBuilder) newline(style *Style) {
	lb.spaces = lb.spaces[:0]
	lh := lb.curLH
	if lh == 0 && style != nil {
		lh = style.LineHeight
	}
	lb.cur.Height = lh
	lb.lines = append(lb.lines, lb.cur)
	lb.cur = Line{}
	lb.curLH = 0
}

func (lb *lineBuilder) word(t token) {
	if len(lb.cur.Runs) > 0 && lb.cur.Width+lb.pendingWidth()+t.width > lb.avail {
		lb.newline(nil)
	}
	if len(lb.cur.Runs) > 0 {
		for _, s := range lb.spaces {
			lb.place(s)
		}
	}
	lb.spaces = lb.spaces[:0]

	if t.width <= lb.avail || len(t.text) == 0 {
		lb.place(t)
		return
	}
	// word longer than line, break anywhere
	var (
		start int
		w     float64
	)
	for i, r := range t.text {
		a := advance(r) * t.style.FontSize
		if t.style.Bold {
			a *= boldFactor
		}
		if w+a > lb.avail && i > start {
			lb.place(token{text: t.text[start:i], style: t.style, width: w})
			lb.newline(nil)
			start, w = i, 0
		}
		w += a
	}
	lb.place(token{text: t.text[start:], style: t.style, width: w})
}

// breakLines wraps tokens into lines of at most avail pixels. Lines are
// positioned relative to content box origin.
func breakLines(toks []token, avail float64, align string) []Line {
	lb := &lineBuilder{avail: max(avail, 1)}
	for _, t := range toks {
		switch {
		case t.br:
			lb.newline(t.style)
		case t.space:
			if len(lb.cur.Runs) > 0 || t.style.PreWrap {
				lb.spaces = append(lb.spaces, t)
			}
		default:
			lb.word(t)
		}
	}
	if len(lb.cur.Runs) > 0 {
		lb.newline(nil)
	}

	var y float64
	for i := range lb.lines {
		l := &lb.lines[i]
		l.Y = y
		y += l.Height

		var shift float64
		switch align {
		case "center":
			shift = (avail - l.Width) / 2
		case "right", "end":
			shift = avail - l.Width
		}
		if shift > 0 {
			for j := range l.Runs {
				l.Runs[j].X += shift
			}
		}
	}
	return lb.lines
}

// maxLineWidth is width of content if lines were never wrapped.
func maxLineWidth(toks []token) float64 {
	var cur, best float64
	for _, t := range toks {
		if t.br {
			best, cur = max(best, cur), 0
			continue
		}
		cur += t.width
	}
	return max(best, cur)
}

func blank(s string) bool {
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			return false
		}
		s = s[n:]
	}
	return true
}
