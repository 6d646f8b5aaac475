package report

import (
	"strings"

	"trr/common"
)

// firstNonEmpty picks link to use, in order of preference.
func firstNonEmpty(links ...string) string {
	for _, l := range links {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

// NormalizeTitle converts hotlist title record. In keyword mode entries are
// annotated by source, in platform mode (where groups are sources already) by
// matched keyword.
func NormalizeTitle(rec *TitleRecord, mode common.DisplayMode) Entry {
	e := Entry{
		Title:         rec.Title,
		URL:           firstNonEmpty(rec.MobileURL, rec.URL),
		Ranks:         rec.Ranks,
		RankThreshold: rec.RankThreshold,
		TimeDisplay:   NormalizeTimeDisplay(rec.TimeDisplay),
		Count:         rec.Count,
		IsNew:         rec.IsNew,
	}
	if mode == common.DisplayModePlatform {
		e.MatchedKeyword = rec.MatchedKeyword
	} else {
		e.SourceName = rec.SourceName
	}
	return e
}

// NormalizeNewTitle converts title which appeared since the previous run.
// Such entries always show rank, placeholder if it was never observed.
func NormalizeNewTitle(rec *TitleRecord) Entry {
	return Entry{
		Title:         rec.Title,
		URL:           firstNonEmpty(rec.MobileURL, rec.URL),
		Ranks:         rec.Ranks,
		RankThreshold: rec.RankThreshold,
		RankUnknown:   true,
		Count:         rec.Count,
		IsNew:         true,
	}
}

// NormalizeFeedTitle converts grouped RSS record. Feeds carry their own
// timestamps and authors, those are kept as is.
func NormalizeFeedTitle(rec *TitleRecord) Entry {
	return Entry{
		Title:       rec.Title,
		URL:         firstNonEmpty(rec.URL, rec.MobileURL),
		SourceName:  rec.SourceName,
		TimeDisplay: rec.TimeDisplay,
		IsNew:       rec.IsNew,
	}
}

// NormalizePlatformItem converts standalone platform item. Rank history is
// preferred, single current rank is used otherwise. Threshold is fixed.
func NormalizePlatformItem(it *StandaloneItem) Entry {
	e := Entry{
		Title:         it.Title,
		URL:           firstNonEmpty(it.URL, it.MobileURL),
		Ranks:         it.Ranks,
		RankThreshold: DefaultRankThreshold,
		TimeDisplay:   FormatTimeRange(it.FirstTime, it.LastTime),
		Count:         it.Count,
	}
	if len(e.Ranks) == 0 && it.Rank > 0 {
		e.Ranks = []int{it.Rank}
	}
	return e
}

// NormalizeFeedItem converts standalone feed item.
func NormalizeFeedItem(it *StandaloneItem) Entry {
	return Entry{
		Title:       it.Title,
		URL:         firstNonEmpty(it.URL, it.MobileURL),
		SourceName:  it.Author,
		TimeDisplay: FormatISOTime(it.PublishedAt),
	}
}
