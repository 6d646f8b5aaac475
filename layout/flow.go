package layout

import (
	"maps"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"trr/css"
)

// Box is laid out element. Coordinates are border box in CSS pixels relative
// to the page origin. Anonymous boxes (Element is nil) hold inline content
// which is not wrapped into an element of its own.
type Box struct {
	Element  *etree.Element
	Style    *Style
	Parent   *Box
	Children []*Box
	Lines    []Line

	X, Y, W, H float64
}

// Bottom edge of the box.
func (b *Box) Bottom() float64 {
	return b.Y + b.H
}

// Walk visits box tree in document order, returning false from fn skips
// descendants of the box.
func (b *Box) Walk(fn func(*Box) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

func (b *Box) shift(dx, dy float64) {
	b.X += dx
	b.Y += dy
	for i := range b.Lines {
		b.Lines[i].Y += dy
		for j := range b.Lines[i].Runs {
			b.Lines[i].Runs[j].X += dx
		}
	}
	for _, c := range b.Children {
		c.shift(dx, dy)
	}
}

func (b *Box) add(c *Box) *Box {
	c.Parent = b
	b.Children = append(b.Children, c)
	return c
}

// unit is either block-level element or run of inline content.
type unit struct {
	el     *etree.Element
	st     *Style
	pieces []piece
}

type layouter struct {
	log       *zap.Logger
	parser    *css.Parser
	ua        *css.Cascade
	author    *css.Cascade
	styles    map[*etree.Element]*Style
	intrinsic map[*etree.Element]float64
}

func (l *layouter) style(el *etree.Element, parent *Style) *Style {
	if st, ok := l.styles[el]; ok {
		return st
	}
	n := node{el: el}
	declared := l.ua.Compute(n)
	maps.Copy(declared, l.author.Compute(n))
	if inline := el.SelectAttrValue("style", ""); inline != "" {
		sheet := l.parser.Parse([]byte("* {" + inline + "}"))
		for _, item := range sheet.Items {
			if item.Rule != nil {
				maps.Copy(declared, item.Rule.Properties)
			}
		}
	}
	st := computeStyle(el, declared, parent)
	l.styles[el] = st
	return st
}

func hasContent(pieces []piece) bool {
	for _, p := range pieces {
		if p.br || !blank(p.text) {
			return true
		}
	}
	return false
}

// collect gathers inline content of element.
func (l *layouter) collect(el *etree.Element, st *Style, out []piece) []piece {
	if strings.EqualFold(el.Tag, "br") {
		return append(out, piece{br: true, style: st})
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			out = append(out, piece{text: t.Data, style: st})
		case *etree.Element:
			cs := l.style(t, st)
			if cs.Display != "none" {
				out = l.collect(t, cs, out)
			}
		}
	}
	return out
}

// units splits element content into layout units. When blockify is set
// (flex and grid containers) every child element becomes unit of its own,
// otherwise adjacent inline content is merged into anonymous units.
func (l *layouter) units(el *etree.Element, st *Style, blockify bool) []unit {
	var (
		units  []unit
		inline []piece
	)
	flush := func() {
		if hasContent(inline) {
			units = append(units, unit{st: st, pieces: inline})
		}
		inline = nil
	}
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			if blockify {
				if !blank(t.Data) {
					units = append(units, unit{st: st, pieces: []piece{{text: t.Data, style: st}}})
				}
				continue
			}
			inline = append(inline, piece{text: t.Data, style: st})
		case *etree.Element:
			cs := l.style(t, st)
			if cs.Display == "none" {
				continue
			}
			if blockify || cs.blockLevel() {
				flush()
				units = append(units, unit{el: t, st: cs})
				continue
			}
			inline = l.collect(t, cs, inline)
		}
	}
	flush()
	return units
}

func isFlex(st *Style) bool {
	return st.Display == "flex" || st.Display == "inline-flex"
}

func isGrid(st *Style) bool {
	return st.Display == "grid" || st.Display == "inline-grid"
}

func (l *layouter) layoutUnit(u unit, x, y, w float64) *Box {
	if u.el != nil {
		return l.box(u.el, u.st, x, y, w)
	}
	b := &Box{Style: u.st, X: x, Y: y, W: w}
	b.Lines = breakLines(tokenize(u.pieces), w, u.st.TextAlign)
	for i := range b.Lines {
		ln := &b.Lines[i]
		ln.Y += y
		for j := range ln.Runs {
			ln.Runs[j].X += x
		}
		b.H += ln.Height
	}
	return b
}

// box lays out element with border box of width w at (x, y).
func (l *layouter) box(el *etree.Element, st *Style, x, y, w float64) *Box {
	b := &Box{Element: el, Style: st, X: x, Y: y, W: w}

	pad, bor := st.paddings(w), st.borders()
	cx, cy := x+pad[3]+bor[3], y+pad[0]+bor[0]
	cw := max(0, w-pad.horizontal()-bor.horizontal())

	var ch float64
	switch {
	case isFlex(st):
		ch = l.flex(b, el, st, cx, cy, cw)
	case isGrid(st):
		ch = l.grid(b, el, st, cx, cy, cw)
	default:
		ch = l.flow(b, el, st, cx, cy, cw)
	}

	b.H = ch + pad.vertical() + bor.vertical()
	if h, ok := st.fixed("height"); ok {
		b.H = h
	}
	if h, ok := st.fixed("min-height"); ok && b.H < h {
		b.H = h
	}
	if h, ok := st.fixed("max-height"); ok && b.H > h {
		b.H = h
	}
	return b
}

// blockWidth resolves border box width and left margin of block in
// containing block of width avail.
func blockWidth(st *Style, m Edges, avail float64) (w, ml float64) {
	ml, mr := m[3], m[1]
	w, explicit := st.length("width", avail)
	if !explicit {
		w = avail - ml - mr
	}
	if mw, ok := st.length("max-width", avail); ok && w > mw {
		w, explicit = mw, true
	}
	if mn, ok := st.length("min-width", avail); ok && w < mn {
		w = mn
	}
	if explicit && st.keyword("margin-left") == "auto" {
		if st.keyword("margin-right") == "auto" {
			ml = (avail - w) / 2
		} else {
			ml = avail - w - mr
		}
	}
	return max(0, w), ml
}

// flow is normal block flow, adjacent vertical margins of siblings collapse.
func (l *layouter) flow(b *Box, el *etree.Element, st *Style, x, y, w float64) float64 {
	var (
		cy      = y
		pending float64
		first   = true
	)
	for _, u := range l.units(el, st, false) {
		if u.el == nil {
			cy += pending
			pending = 0
			cy += b.add(l.layoutUnit(u, x, cy, w)).H
			first = false
			continue
		}
		m := u.st.margins(w)
		bw, ml := blockWidth(u.st, m, w)
		if first {
			cy += m[0]
		} else {
			cy += max(pending, m[0])
		}
		cy += b.add(l.box(u.el, u.st, x+ml, cy, bw)).H
		pending = m[2]
		first = false
	}
	return cy + pending - y
}

// column is flex container with column direction.
func (l *layouter) column(b *Box, units []unit, x, y, w, gap float64) float64 {
	cy := y
	for i, u := range units {
		if i > 0 {
			cy += gap
		}
		var m Edges
		if u.el != nil {
			m = u.st.margins(w)
		}
		bw, ml := w, 0.0
		if u.el != nil {
			bw, ml = blockWidth(u.st, m, w)
		}
		c := b.add(l.layoutUnit(u, x+ml, cy+m[0], bw))
		cy += c.H + m.vertical()
	}
	return cy - y
}

type flexItem struct {
	u     unit
	m     Edges
	base  float64
	grow  float64
	fixed bool
}

func (it *flexItem) outer() float64 {
	return it.base + it.m.horizontal()
}

// justify returns offset of the first item and extra spacing between items.
func justify(mode string, free float64, n int) (off, spacing float64) {
	if free <= 0 || n == 0 {
		return 0, 0
	}
	switch mode {
	case "flex-end", "end", "right":
		return free, 0
	case "center":
		return free / 2, 0
	case "space-between":
		if n > 1 {
			return 0, free / float64(n-1)
		}
	case "space-around":
		s := free / float64(n)
		return s / 2, s
	case "space-evenly":
		s := free / float64(n+1)
		return s, s
	}
	return 0, 0
}

func (l *layouter) flexItems(units []unit, w float64) []flexItem {
	items := make([]flexItem, 0, len(units))
	for _, u := range units {
		it := flexItem{u: u}
		if u.el != nil {
			it.m = u.st.margins(w)
			it.grow = u.st.props["flex-grow"].Value
			if bw, ok := u.st.length("width", w); ok {
				it.base, it.fixed = bw, true
			} else if fb, ok := u.st.length("flex-basis", w); ok {
				it.base = fb
			} else {
				it.base = l.maxContent(u)
			}
			if mn, ok := u.st.length("min-width", w); ok && it.base < mn {
				it.base = mn
			}
		} else {
			it.base = l.maxContent(u)
		}
		it.base = max(0, min(it.base, w-it.m.horizontal()))
		items = append(items, it)
	}
	return items
}

// resolve distributes free space of a flex line among items.
func resolve(line []flexItem, w, gap float64) float64 {
	used := gap * float64(len(line)-1)
	var grow, shrinkable float64
	for i := range line {
		used += line[i].outer()
		grow += line[i].grow
		if !line[i].fixed {
			shrinkable += line[i].base
		}
	}
	free := w - used
	switch {
	case free > 0 && grow > 0:
		for i := range line {
			line[i].base += free * line[i].grow / grow
		}
		return 0
	case free < 0 && shrinkable > 0:
		deficit := min(-free, shrinkable)
		for i := range line {
			if !line[i].fixed {
				line[i].base -= deficit * line[i].base / shrinkable
			}
		}
		return free + deficit
	}
	return free
}

// flex lays out row flex container, wrapping lines when allowed.
func (l *layouter) flex(b *Box, el *etree.Element, st *Style, x, y, w float64) float64 {
	units := l.units(el, st, true)
	if len(units) == 0 {
		return 0
	}
	colGap, rowGap := st.px("column-gap", w), st.px("row-gap", 0)
	if strings.HasPrefix(st.keyword("flex-direction"), "column") {
		return l.column(b, units, x, y, w, rowGap)
	}

	items := l.flexItems(units, w)

	lines := [][]flexItem{items}
	if st.keyword("flex-wrap") == "wrap" {
		lines = lines[:0]
		var (
			cur   []flexItem
			lineW float64
		)
		for _, it := range items {
			if len(cur) > 0 && lineW+colGap+it.outer() > w {
				lines = append(lines, cur)
				cur, lineW = nil, 0
			}
			if len(cur) > 0 {
				lineW += colGap
			}
			cur = append(cur, it)
			lineW += it.outer()
		}
		lines = append(lines, cur)
	}

	align := st.keyword("align-items")
	cy := y
	for li, line := range lines {
		if li > 0 {
			cy += rowGap
		}
		free := resolve(line, w, colGap)
		off, spacing := justify(st.keyword("justify-content"), free, len(line))

		var (
			cx    = x + off
			rowH  float64
			boxes = make([]*Box, len(line))
		)
		for i := range line {
			it := &line[i]
			boxes[i] = b.add(l.layoutUnit(it.u, cx+it.m[3], cy+it.m[0], it.base))
			rowH = max(rowH, boxes[i].H+it.m.vertical())
			cx += it.outer() + colGap + spacing
		}

		for i := range line {
			it := &line[i]
			room := rowH - it.m.vertical() - boxes[i].H
			if room <= 0 || it.u.el == nil {
				continue
			}
			switch align {
			case "", "normal", "stretch":
				if _, ok := it.u.st.fixed("height"); !ok {
					boxes[i].H += room
				}
			case "center":
				boxes[i].shift(0, room/2)
			case "flex-end", "end":
				boxes[i].shift(0, room)
			}
		}
		cy += rowH
	}
	return cy - y
}

// grid supports only equal column tracks, which covers repeat(N, 1fr) and
// lists of fr units.
func (l *layouter) grid(b *Box, el *etree.Element, st *Style, x, y, w float64) float64 {
	units := l.units(el, st, true)
	if len(units) == 0 {
		return 0
	}
	cols := st.gridColumns()
	colGap, rowGap := st.px("column-gap", w), st.px("row-gap", 0)
	colW := max(0, (w-colGap*float64(cols-1))/float64(cols))

	cy := y
	for start := 0; start < len(units); start += cols {
		if start > 0 {
			cy += rowGap
		}
		row := units[start:min(start+cols, len(units))]

		var rowH float64
		boxes := make([]*Box, len(row))
		margins := make([]Edges, len(row))
		for i, u := range row {
			if u.el != nil {
				margins[i] = u.st.margins(colW)
			}
			m := margins[i]
			cx := x + float64(i)*(colW+colGap)
			boxes[i] = b.add(l.layoutUnit(u, cx+m[3], cy+m[0], max(0, colW-m.horizontal())))
			rowH = max(rowH, boxes[i].H+m.vertical())
		}
		for i, u := range row {
			if u.el == nil {
				continue
			}
			if _, ok := u.st.fixed("height"); !ok {
				boxes[i].H = max(boxes[i].H, rowH-margins[i].vertical())
			}
		}
		cy += rowH
	}
	return cy - y
}

// maxContent is preferred width of unit when nothing is wrapped.
func (l *layouter) maxContent(u unit) float64 {
	if u.el == nil {
		return maxLineWidth(tokenize(u.pieces))
	}
	if w, ok := l.intrinsic[u.el]; ok {
		return w
	}

	st := u.st
	w, ok := st.fixed("width")
	if !ok {
		var inner float64
		switch {
		case isFlex(st) && !strings.HasPrefix(st.keyword("flex-direction"), "column"):
			gap := st.px("column-gap", 0)
			for i, c := range l.units(u.el, st, true) {
				if i > 0 {
					inner += gap
				}
				inner += l.outerMax(c)
			}
		case isGrid(st):
			var widest float64
			for _, c := range l.units(u.el, st, true) {
				widest = max(widest, l.outerMax(c))
			}
			cols := float64(st.gridColumns())
			inner = widest*cols + st.px("column-gap", 0)*(cols-1)
		default:
			for _, c := range l.units(u.el, st, isFlex(st)) {
				inner = max(inner, l.outerMax(c))
			}
		}
		w = inner + st.paddings(0).horizontal() + st.borders().horizontal()
	}
	if mn, ok := st.fixed("min-width"); ok && w < mn {
		w = mn
	}
	if mx, ok := st.fixed("max-width"); ok && w > mx {
		w = mx
	}
	l.intrinsic[u.el] = w
	return w
}

func (l *layouter) outerMax(u unit) float64 {
	w := l.maxContent(u)
	if u.el != nil {
		w += u.st.margins(0).horizontal()
	}
	return w
}
