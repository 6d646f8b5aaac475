package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	yaml "gopkg.in/yaml.v3"
)

// TitleRecord is a single headline as produced by upstream matching.
type TitleRecord struct {
	Title          string `yaml:"title"`
	URL            string `yaml:"url"`
	MobileURL      string `yaml:"mobile_url"`
	SourceName     string `yaml:"source_name"`
	MatchedKeyword string `yaml:"matched_keyword"`
	Ranks          []int  `yaml:"ranks"`
	RankThreshold  int    `yaml:"rank_threshold"`
	TimeDisplay    string `yaml:"time_display"`
	Count          int    `yaml:"count"`
	IsNew          bool   `yaml:"is_new"`
}

// StatGroup is a keyword (or feed) group of matched titles.
type StatGroup struct {
	Word   string        `yaml:"word"`
	Count  int           `yaml:"count"`
	Titles []TitleRecord `yaml:"titles"`
}

// NewTitlesSource holds titles which appeared since the previous run for a
// single source.
type NewTitlesSource struct {
	SourceName string        `yaml:"source_name"`
	Titles     []TitleRecord `yaml:"titles"`
}

// Data is the main hotlist report computed upstream.
type Data struct {
	Stats         []StatGroup       `yaml:"stats"`
	NewTitles     []NewTitlesSource `yaml:"new_titles"`
	FailedIDs     []string          `yaml:"failed_ids"`
	TotalNewCount int               `yaml:"total_new_count"`
}

// StandaloneItem is either a platform hotlist item or a feed item shown
// outside of keyword grouping.
type StandaloneItem struct {
	Title       string `yaml:"title"`
	URL         string `yaml:"url"`
	MobileURL   string `yaml:"mobile_url"`
	Rank        int    `yaml:"rank"`
	Ranks       []int  `yaml:"ranks"`
	FirstTime   string `yaml:"first_time"`
	LastTime    string `yaml:"last_time"`
	Count       int    `yaml:"count"`
	PublishedAt string `yaml:"published_at"`
	Author      string `yaml:"author"`
}

type StandaloneSource struct {
	ID    string           `yaml:"id"`
	Name  string           `yaml:"name"`
	Items []StandaloneItem `yaml:"items"`
}

// DisplayName returns source name falling back to its id.
func (s *StandaloneSource) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

type StandaloneData struct {
	Platforms []StandaloneSource `yaml:"platforms"`
	RSSFeeds  []StandaloneSource `yaml:"rss_feeds"`
}

type AnalysisSection struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// AIAnalysis is opaque to composition, it is handed to AnalysisFormatter as is.
type AIAnalysis struct {
	Summary  string            `yaml:"summary"`
	Sections []AnalysisSection `yaml:"sections"`
	Error    string            `yaml:"error"`
}

type UpdateInfo struct {
	RemoteVersion  string `yaml:"remote_version"`
	CurrentVersion string `yaml:"current_version"`
}

// Input is everything needed to compose a single report.
type Input struct {
	Report      Data            `yaml:"report"`
	TotalTitles int             `yaml:"total_titles"`
	RSSItems    []StatGroup     `yaml:"rss_items"`
	RSSNewItems []StatGroup     `yaml:"rss_new_items"`
	Standalone  *StandaloneData `yaml:"standalone"`
	AIAnalysis  *AIAnalysis     `yaml:"ai_analysis"`
	UpdateInfo  *UpdateInfo     `yaml:"update_info"`
	GeneratedAt string          `yaml:"generated_at"`
}

// Timestamp returns report generation time if input carries one.
func (in *Input) Timestamp() (time.Time, bool) {
	if in.GeneratedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, in.GeneratedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HotCount is the number of titles in all keyword groups.
func (in *Input) HotCount() int {
	var n int
	for _, s := range in.Report.Stats {
		n += len(s.Titles)
	}
	return n
}

// Decode reads report input. Both JSON and YAML are accepted, optional
// UTF-8 or UTF-16 BOM is honored. Unknown fields are ignored since
// upstream records routinely carry more than we display.
func Decode(r io.Reader) (*Input, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("unable to read report input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("report input is empty")
	}

	in := &Input{}
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(in); err != nil {
		return nil, fmt.Errorf("unable to decode report input: %w", err)
	}
	return in, nil
}
