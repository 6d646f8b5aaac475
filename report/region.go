package report

import (
	"fmt"

	"go.uber.org/zap"

	"trr/common"
	"trr/config"
)

// Regions maps region kind to its emission steps in order. Most kinds have at
// most one step, new items have two: hotlist deltas and feed deltas.
type Regions map[common.RegionKind][]Region

// Builder turns normalized input into regions. Every builder returns region
// only when its source collection produced entries.
type Builder struct {
	log       *zap.Logger
	mode      common.DisplayMode
	showNew   bool
	labels    *config.LabelsConfig
	formatter AnalysisFormatter
}

// NewBuilder creates region builder for the report configuration. When
// formatter is nil analysis region is never produced.
func NewBuilder(cfg *config.ReportConfig, formatter AnalysisFormatter, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		log:       log.Named("regions"),
		mode:      cfg.DisplayMode,
		showNew:   cfg.ShowNewSection,
		labels:    &cfg.Labels,
		formatter: formatter,
	}
}

// Build produces all regions for the input.
func (b *Builder) Build(in *Input) Regions {
	regions := make(Regions)

	add := func(kind common.RegionKind, r Region) {
		if r.Empty() {
			return
		}
		r.Kind = kind
		regions[kind] = append(regions[kind], r)
	}

	add(common.RegionKindHotlist, b.Hotlist(in.Report.Stats))
	add(common.RegionKindRss, b.Feeds(in.RSSItems, b.labels.RSSItems))
	if b.showNew {
		add(common.RegionKindNewItems, b.NewTitles(in.Report.NewTitles, in.Report.TotalNewCount))
	}
	// feed deltas are not subject to show_new_section
	add(common.RegionKindNewItems, b.Feeds(in.RSSNewItems, b.labels.RSSNewItems))
	add(common.RegionKindStandalone, b.Standalone(in.Standalone))
	add(common.RegionKindAiAnalysis, b.Analysis(in.AIAnalysis))

	return regions
}

func (b *Builder) itemsLabel(n int) string {
	return fmt.Sprintf("%d %s", n, b.labels.ItemsSuffix)
}

// Hotlist builds keyword groups, numbered and classified by heat.
func (b *Builder) Hotlist(stats []StatGroup) Region {
	r := Region{Kind: common.RegionKindHotlist, Style: StyleHotlist}
	for i := range stats {
		s := &stats[i]
		g := Group{
			Title:   s.Word,
			Index:   i + 1,
			Total:   len(stats),
			Count:   s.Count,
			Heat:    HeatOf(s.Count),
			Entries: make([]Entry, 0, len(s.Titles)),
		}
		for j := range s.Titles {
			g.Entries = append(g.Entries, NormalizeTitle(&s.Titles[j], b.mode))
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}

// NewTitles builds per source delta groups.
func (b *Builder) NewTitles(sources []NewTitlesSource, total int) Region {
	r := Region{
		Kind:       common.RegionKindNewItems,
		Style:      StyleNewTitles,
		Title:      b.labels.NewItems,
		CountLabel: b.itemsLabel(total),
	}
	for i := range sources {
		s := &sources[i]
		g := Group{
			Title:   s.SourceName,
			Count:   len(s.Titles),
			Entries: make([]Entry, 0, len(s.Titles)),
		}
		for j := range s.Titles {
			g.Entries = append(g.Entries, NormalizeNewTitle(&s.Titles[j]))
		}
		r.Groups = append(r.Groups, g)
	}
	return r
}

// Feeds builds RSS region, used for both regular and delta feed lists.
// Groups without titles are skipped and region is empty when no group is
// left. Count label prefers upstream totals, falling back to titles present.
func (b *Builder) Feeds(stats []StatGroup, title string) Region {
	r := Region{Kind: common.RegionKindRss, Style: StyleFeeds, Title: title}

	var total, present int
	for i := range stats {
		s := &stats[i]
		total += s.Count
		if len(s.Titles) == 0 {
			continue
		}
		g := Group{
			Title:   s.Word,
			Count:   len(s.Titles),
			Entries: make([]Entry, 0, len(s.Titles)),
		}
		for j := range s.Titles {
			g.Entries = append(g.Entries, NormalizeFeedTitle(&s.Titles[j]))
		}
		present += len(s.Titles)
		r.Groups = append(r.Groups, g)
	}
	if len(r.Groups) == 0 {
		return r
	}
	if total <= 0 {
		total = present
	}
	r.CountLabel = b.itemsLabel(total)
	return r
}

// Standalone builds platform groups followed by feed groups.
func (b *Builder) Standalone(data *StandaloneData) Region {
	r := Region{Kind: common.RegionKindStandalone, Style: StyleStandalone, Title: b.labels.Standalone}
	if data == nil {
		return r
	}

	appendGroups := func(sources []StandaloneSource, normalize func(*StandaloneItem) Entry) {
		for i := range sources {
			s := &sources[i]
			if len(s.Items) == 0 {
				continue
			}
			g := Group{
				Title:   s.DisplayName(),
				Count:   len(s.Items),
				Entries: make([]Entry, 0, len(s.Items)),
			}
			for j := range s.Items {
				g.Entries = append(g.Entries, normalize(&s.Items[j]))
			}
			r.Groups = append(r.Groups, g)
		}
	}
	appendGroups(data.Platforms, NormalizePlatformItem)
	appendGroups(data.RSSFeeds, NormalizeFeedItem)

	r.CountLabel = b.itemsLabel(r.Len())
	return r
}

// Analysis delegates rendering to the formatter and grafts its output as
// opaque fragment. Formatter failures are logged and region is omitted.
func (b *Builder) Analysis(a *AIAnalysis) Region {
	r := Region{Kind: common.RegionKindAiAnalysis, Style: StyleAnalysis, Title: b.labels.AIAnalysis}
	if a == nil || b.formatter == nil {
		return r
	}
	markup, err := b.formatter.FormatAnalysis(a)
	if err != nil {
		b.log.Warn("Unable to format analysis, skipping", zap.Error(err))
		return r
	}
	frag, err := ParseFragment(markup)
	if err != nil {
		b.log.Warn("Unable to parse formatted analysis, skipping", zap.Error(err))
		return r
	}
	r.Fragment = frag
	return r
}
