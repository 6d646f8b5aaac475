// Package common keeps enumerations shared between configuration, report
// composition, segmentation and export so none of them has to import the
// others just for a type.
package common

//go:generate go tool go-enum --marshal --names --values

// Report type, determines header label.
// ENUM(daily, current, incremental)
type ReportMode int

// How hotlist entries are annotated: by source name or by matched keyword.
// ENUM(keyword, platform)
type DisplayMode int

// Independently toggleable report section.
// ENUM(hotlist, rss, new_items, standalone, ai_analysis)
type RegionKind int

// DefaultRegionOrder is used when configuration does not specify any order.
func DefaultRegionOrder() []RegionKind {
	return []RegionKind{RegionKindHotlist, RegionKindRss, RegionKindNewItems, RegionKindStandalone, RegionKindAiAnalysis}
}

// Kind of measured block in the laid-out document.
// ENUM(header, error, group-header, entry-item, news-section, footer)
type BlockType int

// Display tier of entry rank.
// ENUM(normal, high, top)
type RankTier int

// Class reports CSS class for the tier, normal tier has none.
func (r RankTier) Class() string {
	if r == RankTierNormal {
		return ""
	}
	return r.String()
}

// Heat of the keyword group based on number of matched titles.
// ENUM(plain, warm, hot)
type Heat int

// Class reports CSS class for the heat, plain has none.
func (h Heat) Class() string {
	if h == HeatPlain {
		return ""
	}
	return h.String()
}

// Image format of exported artifacts.
// ENUM(png, jpeg)
type ExportFormat int

func (f ExportFormat) Ext() string {
	switch f {
	case ExportFormatPng:
		return ".png"
	case ExportFormatJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported export format requested")
	}
}

// State of the export driver as seen by callers.
// ENUM(ready, running, done, failed)
type ExportState int
