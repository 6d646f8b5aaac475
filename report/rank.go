package report

import (
	"slices"
	"strconv"

	"trr/common"
)

const (
	// DefaultRankThreshold is used whenever record does not carry its own.
	DefaultRankThreshold = 10
	// TopRank and better ranks are always highlighted as top.
	TopRank = 3
	// UnknownRank is shown for new titles without rank history.
	UnknownRank = "?"
)

// Rank is a display form of rank range.
type Rank struct {
	Tier common.RankTier
	Text string
}

// RankTierOf classifies best (minimal) rank against threshold.
func RankTierOf(best, threshold int) common.RankTier {
	if threshold <= 0 {
		threshold = DefaultRankThreshold
	}
	switch {
	case best <= TopRank:
		return common.RankTierTop
	case best <= threshold:
		return common.RankTierHigh
	default:
		return common.RankTierNormal
	}
}

// ClassifyRank maps list of observed ranks to tier and text. Text is the
// best rank alone when all ranks are equal and "best-worst" otherwise. When
// there are no ranks ok is false.
func ClassifyRank(ranks []int, threshold int) (r Rank, ok bool) {
	if len(ranks) == 0 {
		return Rank{}, false
	}
	lo, hi := slices.Min(ranks), slices.Max(ranks)
	r.Tier = RankTierOf(lo, threshold)
	if lo == hi {
		r.Text = strconv.Itoa(lo)
	} else {
		r.Text = strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
	}
	return r, true
}

// HeatOf classifies keyword group by number of its titles.
func HeatOf(count int) common.Heat {
	switch {
	case count >= 10:
		return common.HeatHot
	case count >= 5:
		return common.HeatWarm
	default:
		return common.HeatPlain
	}
}
