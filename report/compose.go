// Package report turns upstream trend data into a single composed HTML
// document: records are normalized into entries, entries are grouped into
// regions and regions are assembled in configured order with dividers
// between the ones which produced content.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strconv"
	"text/template"
	"time"

	"github.com/beevik/etree"
	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"trr/common"
	"trr/config"
)

//go:embed default.css
var defaultStylesheet []byte

// DefaultStylesheet returns copy of built-in report stylesheet.
func DefaultStylesheet() []byte {
	return slices.Clone(defaultStylesheet)
}

// Composed is a complete report document.
type Composed struct {
	Doc      *etree.Document
	Sections []Section
	Style    []byte
}

// Render serializes document. Serialization is deterministic, composing the
// same input twice yields identical output.
func (c *Composed) Render() (string, error) {
	return c.Doc.WriteToString()
}

// Bytes is Render for callers writing files.
func (c *Composed) Bytes() ([]byte, error) {
	return c.Doc.WriteToBytes()
}

// Dividers returns number of regions marked with divider.
func (c *Composed) Dividers() int {
	var n int
	for _, s := range c.Sections {
		if s.Divider {
			n++
		}
	}
	return n
}

// Composer builds report documents, it keeps no state between calls.
type Composer struct {
	log     *zap.Logger
	cfg     *config.ReportConfig
	builder *Builder
	order   []common.RegionKind
	notice  *template.Template
	style   []byte
	now     func() time.Time
}

// NewComposer prepares composer. When style is empty built-in stylesheet is
// used, when now is nil wall clock is.
func NewComposer(cfg *config.ReportConfig, style []byte, formatter AnalysisFormatter, now func() time.Time, log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("composer")

	if len(style) == 0 {
		style = defaultStylesheet
	}
	if now == nil {
		now = time.Now
	}

	order, unknown := cfg.RegionOrder()
	if len(unknown) > 0 {
		log.Warn("Unknown regions in configured order, ignoring", zap.Strings("regions", unknown))
	}

	c := &Composer{
		log:     log,
		cfg:     cfg,
		builder: NewBuilder(cfg, formatter, log),
		order:   order,
		style:   style,
		now:     now,
	}

	if cfg.Labels.UpdateNoticeTmpl != "" {
		tmpl, err := template.New(string(config.UpdateNoticeFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.Labels.UpdateNoticeTmpl)
		if err != nil {
			log.Warn("Unable to parse update notice template, using default", zap.Error(err))
		} else {
			c.notice = tmpl
		}
	}
	return c
}

// Compose builds complete document. It never fails, missing data simply
// produces less content, down to header and footer only.
func (c *Composer) Compose(in *Input) *Composed {
	if in == nil {
		in = &Input{}
	}
	sections := Assemble(c.builder.Build(in), c.order)

	w := &writer{labels: &c.cfg.Labels}

	doc := etree.NewDocument()
	doc.WriteSettings = etree.WriteSettings{CanonicalEndTags: true, CanonicalText: true, CanonicalAttrVal: true}
	doc.CreateDirective("DOCTYPE html")

	root := doc.CreateElement("html")
	head := root.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "UTF-8")
	meta := head.CreateElement("meta")
	meta.CreateAttr("name", "viewport")
	meta.CreateAttr("content", "width=device-width, initial-scale=1.0")
	head.CreateElement("title").SetText(c.cfg.Labels.Title)
	head.CreateElement("style").SetText(string(c.style))

	container := div(root.CreateElement("body"), "container")

	generated, ok := in.Timestamp()
	if !ok {
		generated = c.now()
	}
	w.header(container, c.modeLabel(), in.TotalTitles, in.HotCount(), generated)

	content := div(container, "content")
	if len(in.Report.FailedIDs) > 0 {
		w.errors(content, in.Report.FailedIDs)
	}
	for _, s := range sections {
		w.section(content, &s)
	}

	w.footer(container, c.updateNotice(in.UpdateInfo))

	c.log.Debug("Report composed",
		zap.Int("sections", len(sections)),
		zap.Int("groups", w.groups),
		zap.Bool("errors", len(in.Report.FailedIDs) > 0))

	return &Composed{Doc: doc, Sections: sections, Style: c.style}
}

func (c *Composer) modeLabel() string {
	switch c.cfg.Mode {
	case common.ReportModeCurrent:
		return c.cfg.Labels.ModeCurrent
	case common.ReportModeIncremental:
		return c.cfg.Labels.ModeIncremental
	default:
		return c.cfg.Labels.ModeDaily
	}
}

func (c *Composer) updateNotice(info *UpdateInfo) string {
	if info == nil || (info.RemoteVersion == "" && info.CurrentVersion == "") {
		return ""
	}
	if c.notice != nil {
		buf := new(bytes.Buffer)
		err := c.notice.Execute(buf, struct{ Remote, Current string }{info.RemoteVersion, info.CurrentVersion})
		if err == nil {
			return buf.String()
		}
		c.log.Warn("Unable to expand update notice", zap.Error(err))
	}
	return fmt.Sprintf("%s -> %s", info.CurrentVersion, info.RemoteVersion)
}

// writer emits markup for a single document.
type writer struct {
	labels *config.LabelsConfig
	groups int
}

func div(parent *etree.Element, class string) *etree.Element {
	el := parent.CreateElement("div")
	if class != "" {
		el.CreateAttr("class", class)
	}
	return el
}

func span(parent *etree.Element, class, text string) *etree.Element {
	el := parent.CreateElement("span")
	el.CreateAttr("class", class)
	el.SetText(text)
	return el
}

func textDiv(parent *etree.Element, class, text string) *etree.Element {
	el := div(parent, class)
	el.SetText(text)
	return el
}

func classes(names ...string) string {
	var buf bytes.Buffer
	for _, n := range names {
		if n == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(n)
	}
	return buf.String()
}

func markBlock(el *etree.Element, t common.BlockType) {
	el.CreateAttr(common.BlockAttr, t.String())
}

func (w *writer) items(n int) string {
	return fmt.Sprintf("%d %s", n, w.labels.ItemsSuffix)
}

func (w *writer) newGroup(parent *etree.Element, class string) *etree.Element {
	w.groups++
	g := div(parent, class)
	g.CreateAttr(common.GroupAttr, "g"+strconv.Itoa(w.groups))
	return g
}

func (w *writer) header(parent *etree.Element, mode string, total, hot int, generated time.Time) {
	h := div(parent, "header")
	markBlock(h, common.BlockTypeHeader)
	textDiv(h, "header-title", w.labels.Title)

	info := div(h, "header-info")
	for _, kv := range [][2]string{
		{w.labels.ReportType, mode},
		{w.labels.TotalTitles, w.items(total)},
		{w.labels.HotTitles, w.items(hot)},
		{w.labels.GeneratedAt, generated.Format("01-02 15:04")},
	} {
		item := div(info, "info-item")
		span(item, "info-label", kv[0])
		span(item, "info-value", kv[1])
	}
}

func (w *writer) errors(parent *etree.Element, ids []string) {
	sec := div(parent, "error-section")
	markBlock(sec, common.BlockTypeError)
	textDiv(sec, "error-title", w.labels.FailedSources)
	list := sec.CreateElement("ul")
	list.CreateAttr("class", "error-list")
	for _, id := range ids {
		li := list.CreateElement("li")
		li.CreateAttr("class", "error-item")
		li.SetText(id)
	}
}

func (w *writer) section(parent *etree.Element, s *Section) {
	divider := ""
	if s.Divider {
		divider = DividerClass
	}
	r := &s.Region
	switch r.Style {
	case StyleHotlist:
		w.hotlist(div(parent, classes(divider, "hotlist-section")), r)
	case StyleNewTitles:
		w.newTitles(div(parent, classes(divider, "new-section")), r)
	case StyleFeeds:
		w.feeds(div(parent, classes(divider, "rss-section")), r)
	case StyleStandalone:
		w.standalone(div(parent, classes(divider, "standalone-section")), r)
	case StyleAnalysis:
		w.analysis(div(parent, classes(divider, "ai-section")), r)
	}
}

func (w *writer) hotlist(sec *etree.Element, r *Region) {
	for i := range r.Groups {
		g := &r.Groups[i]
		group := w.newGroup(sec, "word-group")

		hdr := div(group, "word-header")
		markBlock(hdr, common.BlockTypeGroupHeader)
		info := div(hdr, "word-info")
		textDiv(info, "word-name", g.Title)
		textDiv(info, classes("word-count", g.Heat.Class()), w.items(g.Count))
		textDiv(hdr, "word-index", fmt.Sprintf("%d/%d", g.Index, g.Total))

		for j := range g.Entries {
			w.newsItem(group, j+1, &g.Entries[j])
		}
	}
}

// newsItem is shared by hotlist and standalone regions.
func (w *writer) newsItem(group *etree.Element, n int, e *Entry) {
	newClass := ""
	if e.IsNew {
		newClass = "new"
	}
	item := div(group, classes("news-item", newClass))
	markBlock(item, common.BlockTypeEntryItem)

	textDiv(item, "news-number", strconv.Itoa(n))
	content := div(item, "news-content")

	hdr := div(content, "news-header")
	if e.SourceName != "" {
		span(hdr, "source-name", e.SourceName)
	}
	if e.MatchedKeyword != "" {
		span(hdr, "keyword-tag", "["+e.MatchedKeyword+"]")
	}
	if rank, ok := e.Rank(); ok {
		span(hdr, classes("rank-num", rank.Tier.Class()), rank.Text)
	}
	if e.TimeDisplay != "" {
		span(hdr, "time-info", e.TimeDisplay)
	}
	if e.ShowCount() {
		span(hdr, "count-info", strconv.Itoa(e.Count)+w.labels.TimesSuffix)
	}

	link(div(content, "news-title"), "news-link", e)
}

func link(parent *etree.Element, class string, e *Entry) {
	if e.URL == "" {
		parent.SetText(e.Title)
		return
	}
	a := parent.CreateElement("a")
	a.CreateAttr("href", e.URL)
	a.CreateAttr("target", "_blank")
	a.CreateAttr("class", class)
	a.SetText(e.Title)
}

func (w *writer) newTitles(sec *etree.Element, r *Region) {
	// delta section is measured as a whole
	markBlock(sec, common.BlockTypeNewsSection)
	textDiv(sec, "new-section-title", fmt.Sprintf("%s (%s)", r.Title, r.CountLabel))

	for i := range r.Groups {
		g := &r.Groups[i]
		group := div(sec, "new-source-group")
		textDiv(group, "new-source-title", fmt.Sprintf("%s · %s", g.Title, w.items(g.Count)))

		for j := range g.Entries {
			e := &g.Entries[j]
			item := div(group, "new-item")
			textDiv(item, "new-item-number", strconv.Itoa(j+1))
			if rank, ok := e.Rank(); ok {
				textDiv(item, classes("new-item-rank", rank.Tier.Class()), rank.Text)
			}
			link(div(div(item, "new-item-content"), "new-item-title"), "news-link", e)
		}
	}
}

func (w *writer) sectionHeader(sec *etree.Element, prefix string, r *Region) {
	hdr := div(sec, prefix+"-section-header")
	markBlock(hdr, common.BlockTypeGroupHeader)
	textDiv(hdr, prefix+"-section-title", r.Title)
	if r.CountLabel != "" {
		textDiv(hdr, prefix+"-section-count", r.CountLabel)
	}
}

func (w *writer) feeds(sec *etree.Element, r *Region) {
	w.sectionHeader(sec, "rss", r)

	for i := range r.Groups {
		g := &r.Groups[i]
		group := w.newGroup(sec, "feed-group")

		hdr := div(group, "feed-header")
		markBlock(hdr, common.BlockTypeGroupHeader)
		textDiv(hdr, "feed-name", g.Title)
		textDiv(hdr, "feed-count", w.items(g.Count))

		for j := range g.Entries {
			e := &g.Entries[j]
			item := div(group, "rss-item")
			markBlock(item, common.BlockTypeEntryItem)

			meta := div(item, "rss-meta")
			if e.TimeDisplay != "" {
				span(meta, "rss-time", e.TimeDisplay)
			}
			if e.SourceName != "" {
				span(meta, "rss-author", e.SourceName)
			}
			if e.IsNew {
				span(meta, "rss-new", w.labels.NewBadge)
			}
			link(div(item, "rss-title"), "rss-link", e)
		}
	}
}

func (w *writer) standalone(sec *etree.Element, r *Region) {
	w.sectionHeader(sec, "standalone", r)

	for i := range r.Groups {
		g := &r.Groups[i]
		group := w.newGroup(sec, "standalone-group")

		hdr := div(group, "standalone-header")
		markBlock(hdr, common.BlockTypeGroupHeader)
		textDiv(hdr, "standalone-name", g.Title)
		textDiv(hdr, "standalone-count", w.items(g.Count))

		for j := range g.Entries {
			w.newsItem(group, j+1, &g.Entries[j])
		}
	}
}

func (w *writer) analysis(sec *etree.Element, r *Region) {
	w.sectionHeader(sec, "ai", r)

	group := w.newGroup(sec, "ai-content")
	for _, el := range r.Fragment {
		// regions are immutable and could be composed more than once
		cp := el.Copy()
		markBlock(cp, common.BlockTypeEntryItem)
		group.AddChild(cp)
	}
}

func (w *writer) footer(parent *etree.Element, notice string) {
	f := div(parent, "footer")
	markBlock(f, common.BlockTypeFooter)

	content := div(f, "footer-content")
	content.CreateText(w.labels.GeneratedBy + " ")
	span(content, "project-name", w.labels.ProjectName)
	if w.labels.ProjectURL != "" {
		content.CreateText(" · ")
		a := content.CreateElement("a")
		a.CreateAttr("href", w.labels.ProjectURL)
		a.CreateAttr("target", "_blank")
		a.CreateAttr("class", "footer-link")
		a.SetText(w.labels.ProjectLink)
	}
	if notice != "" {
		textDiv(content, "update-notice", notice)
	}
}
