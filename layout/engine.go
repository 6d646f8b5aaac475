// Package layout estimates geometry of composed report. There is no browser
// to ask, so boxes are laid out with simplified block, flex and grid
// formatting using the document own stylesheet and estimated glyph advances.
// Results are good enough to decide where report can be split into images.
package layout

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"trr/common"
	"trr/css"
	"trr/segment"
	"trr/utils/debug"
)

// ErrNoContent is returned when document has nothing to lay out.
var ErrNoContent = errors.New("document has no content")

// ContainerClass marks element which is measured and captured instead of the
// whole body.
const ContainerClass = "container"

// Engine measures documents for viewport of fixed width. It is safe for
// concurrent use, every call works on its own state.
type Engine struct {
	log   *zap.Logger
	width float64
}

// NewEngine returns engine for viewport of given width in CSS pixels.
func NewEngine(width int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("layout"), width: float64(width)}
}

// Page is laid out document.
type Page struct {
	Root   *Box
	blocks []segment.Block
}

// Width of the page in CSS pixels.
func (p *Page) Width() float64 {
	return p.Root.W
}

// Height of the page in CSS pixels.
func (p *Page) Height() float64 {
	return p.Root.H
}

// Blocks returns atomic blocks in document order.
func (p *Page) Blocks() []segment.Block {
	return slices.Clone(p.blocks)
}

// Measure lays out document. Only the element with ContainerClass (or body
// when there is none) is measured, all offsets are relative to its top.
func (e *Engine) Measure(ctx context.Context, doc *etree.Document) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, ErrNoContent
	}

	parser := css.NewParser(e.log)
	var style strings.Builder
	for _, el := range doc.FindElements("//style") {
		style.WriteString(el.Text())
		style.WriteByte('\n')
	}
	sheet := parser.Parse([]byte(style.String()), "document")
	if len(sheet.Warnings) > 0 {
		e.log.Debug("Stylesheet has unsupported constructs", zap.Int("count", len(sheet.Warnings)))
	}

	l := &layouter{
		log:       e.log,
		parser:    parser,
		ua:        parser.Parse([]byte(uaStylesheet)).Cascade(e.width),
		author:    sheet.Cascade(e.width),
		styles:    make(map[*etree.Element]*Style),
		intrinsic: make(map[*etree.Element]float64),
	}

	st := l.style(root, rootStyle())
	body := root.SelectElement("body")
	if body == nil {
		return nil, fmt.Errorf("%w: missing body", ErrNoContent)
	}
	target, tst := body, l.style(body, st)
	for _, c := range body.ChildElements() {
		if (node{el: c}).HasClass(ContainerClass) {
			target, tst = c, l.style(c, tst)
			break
		}
	}
	if tst.Display == "none" {
		return nil, fmt.Errorf("%w: container is not displayed", ErrNoContent)
	}

	w, _ := blockWidth(tst, Edges{}, e.width)
	page := &Page{Root: l.box(target, tst, 0, 0, w)}
	page.blocks = collectBlocks(page.Root, e.log)

	e.log.Debug("Document measured",
		zap.Float64("width", page.Width()),
		zap.Float64("height", page.Height()),
		zap.Int("blocks", len(page.blocks)),
		zap.Int("elements", len(l.styles)))
	return page, nil
}

// group returns closest box which carries group attribute.
func group(b *Box) *Box {
	for p := b.Parent; p != nil; p = p.Parent {
		if p.Element != nil && p.Element.SelectAttr(common.GroupAttr) != nil {
			return p
		}
	}
	return nil
}

// collectBlocks finds marked blocks, blocks are atomic so nothing inside of
// them is looked at. Group header is measured from the top of its group.
func collectBlocks(root *Box, log *zap.Logger) []segment.Block {
	var (
		blocks []segment.Block
		counts = make(map[common.BlockType]int)
	)
	root.Walk(func(b *Box) bool {
		if b.Element == nil {
			return true
		}
		v := b.Element.SelectAttrValue(common.BlockAttr, "")
		if v == "" {
			return true
		}
		t, err := common.ParseBlockType(v)
		if err != nil {
			log.Debug("Ignoring unknown block", zap.String("type", v))
			return true
		}
		counts[t]++
		blk := segment.Block{
			ID:     b.Element.SelectAttrValue("id", fmt.Sprintf("%s-%d", t, counts[t])),
			Type:   t,
			Top:    b.Y,
			Bottom: b.Bottom(),
			Height: b.H,
		}
		if g := group(b); g != nil {
			blk.ParentGroupID = g.Element.SelectAttrValue(common.GroupAttr, "")
			if t == common.BlockTypeGroupHeader && g == b.Parent {
				blk.Top = g.Y
			}
		}
		blocks = append(blocks, blk)
		return false
	})
	return blocks
}

func (b *Box) label() string {
	if b.Element == nil {
		return "(text)"
	}
	label := b.Element.Tag
	if c := strings.Fields(b.Element.SelectAttrValue("class", "")); len(c) > 0 {
		label += "." + strings.Join(c, ".")
	}
	return label
}

// Dump renders box tree for debug report.
func (p *Page) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "page: %.1fx%.1f", p.Width(), p.Height())
	var walk func(b *Box, depth int)
	walk = func(b *Box, depth int) {
		tw.Span(depth, fmt.Sprintf("%s x=%.1f w=%.1f", b.label(), b.X, b.W), b.Y, b.Bottom())
		for _, ln := range b.Lines {
			var sb strings.Builder
			for _, r := range ln.Runs {
				sb.WriteString(r.Text)
			}
			tw.TextBlock(depth+1, "line", sb.String())
		}
		for _, c := range b.Children {
			walk(c, depth+1)
		}
	}
	walk(p.Root, 1)
	return tw.String()
}
