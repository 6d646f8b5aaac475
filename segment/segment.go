// Package segment splits measured report into height bounded slices which are
// exported as separate images. Blocks are atomic, segment boundaries always
// fall on block edges.
package segment

import (
	"fmt"

	"trr/common"
	"trr/utils/debug"
)

// Block is measured atomic element of composed document. Offsets are in CSS
// pixels relative to the top of the document.
type Block struct {
	ID            string
	Type          common.BlockType
	ParentGroupID string
	Top           float64
	Bottom        float64
	Height        float64
}

// Segment is contiguous [Start, End) slice of the document.
type Segment struct {
	Start         float64
	End           float64
	IncludeHeader bool
}

// Height of the segment.
func (s Segment) Height() float64 {
	return s.End - s.Start
}

// Plan packs blocks into segments greedily. The first block is the header
// every plan starts with. Segment is closed at the bottom of the previous
// block as soon as extending it to the current block would exceed maxHeight,
// unless the segment holds nothing but the header yet. Block taller than
// maxHeight ends up in segment of its own which exceeds the limit. The last
// segment always ends at docHeight. Non-positive maxHeight means no limit.
func Plan(blocks []Block, maxHeight, docHeight float64) []Segment {
	if len(blocks) > 0 && blocks[len(blocks)-1].Bottom > docHeight {
		docHeight = blocks[len(blocks)-1].Bottom
	}
	if docHeight <= 0 {
		return nil
	}

	var (
		segments []Segment
		cur      = Segment{IncludeHeader: true}
		// false while the first segment carries only the header
		hasContent bool
	)
	for i := 1; i < len(blocks); i++ {
		b := blocks[i]
		cut := blocks[i-1].Bottom
		if maxHeight > 0 && b.Bottom-cur.Start > maxHeight && hasContent && cut > cur.Start {
			cur.End = cut
			segments = append(segments, cur)
			cur = Segment{Start: cut}
		}
		hasContent = true
	}
	cur.End = docHeight
	if cur.End <= cur.Start {
		// blocks reported beyond document end, fold into previous segment
		if len(segments) == 0 {
			return nil
		}
		segments[len(segments)-1].End = docHeight
		return segments
	}
	return append(segments, cur)
}

// Dump renders blocks and resulting segments for debug report.
func Dump(blocks []Block, segments []Segment, maxHeight, docHeight float64) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "document: height=%.1f max-segment=%.1f", docHeight, maxHeight)
	tw.Line(1, "blocks: %d", len(blocks))
	for i, b := range blocks {
		label := fmt.Sprintf("#%d %s", i, b.Type)
		if b.ParentGroupID != "" {
			label += " group=" + b.ParentGroupID
		}
		tw.Span(2, label, b.Top, b.Bottom)
	}
	tw.Line(1, "segments: %d", len(segments))
	for i, s := range segments {
		label := fmt.Sprintf("part%d", i+1)
		if s.IncludeHeader {
			label += " +header"
		}
		tw.Span(2, label, s.Start, s.End)
	}
	return tw.String()
}
