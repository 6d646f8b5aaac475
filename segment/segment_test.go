package segment

import (
	"math/rand/v2"
	"strings"
	"testing"

	"trr/common"
)

// stack lays blocks of given heights one after another starting at 0.
func stack(types []common.BlockType, heights []float64) []Block {
	blocks := make([]Block, 0, len(heights))
	var top float64
	for i, h := range heights {
		blocks = append(blocks, Block{Type: types[i], Top: top, Bottom: top + h, Height: h})
		top += h
	}
	return blocks
}

func TestPlan_SingleOversizedBlock(t *testing.T) {
	blocks := stack([]common.BlockType{common.BlockTypeEntryItem}, []float64{6000})

	got := Plan(blocks, 3333, 6000)

	if len(got) != 1 {
		t.Fatalf("expected 1 segment, got %d: %+v", len(got), got)
	}
	if got[0].Start != 0 || got[0].End != 6000 || got[0].Height() != 6000 {
		t.Errorf("unexpected segment %+v", got[0])
	}
	if !got[0].IncludeHeader {
		t.Error("first segment must include header")
	}
}

func TestPlan_SplitAtPreviousBlock(t *testing.T) {
	blocks := stack(
		[]common.BlockType{common.BlockTypeHeader, common.BlockTypeEntryItem, common.BlockTypeEntryItem, common.BlockTypeEntryItem, common.BlockTypeFooter},
		[]float64{400, 1500, 1500, 1500, 300},
	)

	got := Plan(blocks, 3333, 5200)

	want := []Segment{
		{Start: 0, End: 1900, IncludeHeader: true},
		{Start: 1900, End: 5200},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlan_Cases(t *testing.T) {
	tests := []struct {
		name      string
		heights   []float64
		maxHeight float64
		docHeight float64
		want      []Segment
	}{
		{
			name:      "no blocks",
			maxHeight: 100,
			docHeight: 50,
			want:      []Segment{{0, 50, true}},
		},
		{
			name:      "empty document",
			maxHeight: 100,
		},
		{
			name:      "fits",
			heights:   []float64{10, 20, 30},
			maxHeight: 100,
			docHeight: 80,
			want:      []Segment{{0, 80, true}},
		},
		{
			name:      "header is never left alone",
			heights:   []float64{50, 500, 10},
			maxHeight: 100,
			docHeight: 560,
			want:      []Segment{{0, 550, true}, {550, 560, false}},
		},
		{
			name:      "oversized block stands alone",
			heights:   []float64{50, 30, 500, 30},
			maxHeight: 100,
			docHeight: 610,
			want:      []Segment{{0, 80, true}, {80, 580, false}, {580, 610, false}},
		},
		{
			name:      "unlimited",
			heights:   []float64{50, 500, 500},
			docHeight: 1050,
			want:      []Segment{{0, 1050, true}},
		},
		{
			name:      "document padding goes to last segment",
			heights:   []float64{40, 40, 40},
			maxHeight: 90,
			docHeight: 200,
			want:      []Segment{{0, 80, true}, {80, 200, false}},
		},
		{
			name:      "blocks beyond reported height",
			heights:   []float64{40, 40, 40},
			maxHeight: 90,
			docHeight: 100,
			want:      []Segment{{0, 80, true}, {80, 120, false}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			types := make([]common.BlockType, len(tt.heights))
			for i := range types {
				types[i] = common.BlockTypeEntryItem
			}
			got := Plan(stack(types, tt.heights), tt.maxHeight, tt.docHeight)
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestPlan_Properties checks coverage and block atomicity on random inputs.
func TestPlan_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for iter := range 2000 {
		n := 1 + r.IntN(40)
		heights := make([]float64, n)
		types := make([]common.BlockType, n)
		for i := range heights {
			heights[i] = float64(1 + r.IntN(1500))
			types[i] = common.BlockTypeEntryItem
		}
		types[0] = common.BlockTypeHeader
		blocks := stack(types, heights)
		maxHeight := float64(100 + r.IntN(4000))
		docHeight := blocks[n-1].Bottom + float64(r.IntN(100))

		segs := Plan(blocks, maxHeight, docHeight)

		if len(segs) == 0 || segs[0].Start != 0 || segs[len(segs)-1].End != docHeight {
			t.Fatalf("iter %d: segments do not cover document: %+v", iter, segs)
		}
		for i, s := range segs {
			if s.End <= s.Start {
				t.Fatalf("iter %d: empty segment %+v", iter, s)
			}
			if i > 0 && s.Start != segs[i-1].End {
				t.Fatalf("iter %d: segments are not contiguous: %+v", iter, segs)
			}
			if s.IncludeHeader != (i == 0) {
				t.Fatalf("iter %d: header flag on segment %d", iter, i)
			}
		}
		for _, b := range blocks {
			for _, s := range segs {
				if b.Top < s.End && b.Bottom > s.End && s.End != docHeight {
					t.Fatalf("iter %d: block [%v, %v) split at %v", iter, b.Top, b.Bottom, s.End)
				}
			}
		}
		// segment may only exceed limit when it starts with a block which
		// does not fit on its own or carries header plus such block
		for _, s := range segs[:len(segs)-1] {
			if s.Height() <= maxHeight {
				continue
			}
			var inside []Block
			for _, b := range blocks {
				if b.Top >= s.Start && b.Bottom <= s.End {
					inside = append(inside, b)
				}
			}
			last := inside[len(inside)-1]
			if last.Height <= maxHeight && len(inside) > 2 {
				t.Fatalf("iter %d: segment %+v over limit with %d blocks", iter, s, len(inside))
			}
		}
	}
}

func TestDump(t *testing.T) {
	blocks := stack(
		[]common.BlockType{common.BlockTypeHeader, common.BlockTypeGroupHeader, common.BlockTypeFooter},
		[]float64{100, 50, 30},
	)
	blocks[1].ParentGroupID = "g1"
	segs := Plan(blocks, 1000, 180)

	out := Dump(blocks, segs, 1000, 180)

	for _, want := range []string{
		"document: height=180.0 max-segment=1000.0\n",
		"    #1 group-header group=g1 [100.0, 150.0) h=50.0\n",
		"    part1 +header [0.0, 180.0) h=180.0\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump misses %q:\n%s", want, out)
		}
	}
}
