package report

import (
	"github.com/beevik/etree"

	"trr/common"
)

// Entry is a normalized headline regardless of where it came from.
type Entry struct {
	Title          string
	URL            string
	SourceName     string
	MatchedKeyword string
	Ranks          []int
	RankThreshold  int
	// RankUnknown asks for placeholder rank when Ranks is empty.
	RankUnknown bool
	TimeDisplay string
	Count       int
	IsNew       bool
}

// Rank classifies entry ranks, ok is false when there is nothing to show.
func (e *Entry) Rank() (Rank, bool) {
	r, ok := ClassifyRank(e.Ranks, e.RankThreshold)
	if !ok && e.RankUnknown {
		return Rank{Tier: common.RankTierNormal, Text: UnknownRank}, true
	}
	return r, ok
}

// ShowCount reports whether occurrence badge should be displayed.
func (e *Entry) ShowCount() bool {
	return e.Count > 1
}

// Group is an ordered collection of entries under a common header.
type Group struct {
	Title string
	// Index and Total are 1-based position label, Total is 0 when group is
	// not numbered.
	Index, Total int
	Count        int
	Heat         common.Heat
	Entries      []Entry
}

// Style selects markup used for the region.
type Style int

const (
	StyleHotlist Style = iota
	StyleNewTitles
	StyleFeeds
	StyleStandalone
	StyleAnalysis
)

// Region is a single emission step of the report, immutable once built.
type Region struct {
	Kind       common.RegionKind
	Style      Style
	Title      string
	CountLabel string
	Groups     []Group
	// Fragment holds externally rendered content, top level elements only.
	Fragment []*etree.Element
}

// Len returns number of entries in the region.
func (r *Region) Len() int {
	n := len(r.Fragment)
	for i := range r.Groups {
		n += len(r.Groups[i].Entries)
	}
	return n
}

// Empty regions are never emitted.
func (r *Region) Empty() bool {
	return r.Len() == 0
}
