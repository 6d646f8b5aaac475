package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"trr/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// LabelsConfig carries all user visible strings of the composed report.
	LabelsConfig struct {
		Title            string `yaml:"title" validate:"required"`
		ModeDaily        string `yaml:"mode_daily"`
		ModeCurrent      string `yaml:"mode_current"`
		ModeIncremental  string `yaml:"mode_incremental"`
		ReportType       string `yaml:"report_type"`
		TotalTitles      string `yaml:"total_titles"`
		HotTitles        string `yaml:"hot_titles"`
		GeneratedAt      string `yaml:"generated_at"`
		FailedSources    string `yaml:"failed_sources"`
		NewItems         string `yaml:"new_items"`
		RSSItems         string `yaml:"rss_items"`
		RSSNewItems      string `yaml:"rss_new_items"`
		Standalone       string `yaml:"standalone"`
		AIAnalysis       string `yaml:"ai_analysis"`
		ItemsSuffix      string `yaml:"items_suffix"`
		TimesSuffix      string `yaml:"times_suffix"`
		NewBadge         string `yaml:"new_badge"`
		GeneratedBy      string `yaml:"generated_by"`
		ProjectName      string `yaml:"project_name"`
		ProjectURL       string `yaml:"project_url" validate:"omitempty,url"`
		ProjectLink      string `yaml:"project_link"`
		UpdateNoticeTmpl string `yaml:"update_notice"`
	}

	ReportConfig struct {
		Mode               common.ReportMode  `yaml:"mode" validate:"gte=0"`
		DisplayMode        common.DisplayMode `yaml:"display_mode" validate:"gte=0"`
		RegionNames        []string           `yaml:"region_order"`
		ShowNewSection     bool               `yaml:"show_new_section"`
		RankThreshold      int                `yaml:"rank_threshold" validate:"min=1,max=1000"`
		StylesheetPath     string             `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate string             `yaml:"output_name_template"`
		NameTransliterate  bool               `yaml:"name_transliterate"`
		Labels             LabelsConfig       `yaml:"labels"`
	}

	ExportConfig struct {
		Segmented        bool                `yaml:"segmented"`
		MaxSegmentHeight int                 `yaml:"max_segment_height" validate:"min=100"`
		Width            int                 `yaml:"width" validate:"min=200,max=4096"`
		Scale            float64             `yaml:"scale" validate:"gt=0,lte=4"`
		Pause            time.Duration       `yaml:"pause" validate:"gte=0"`
		ResetAfter       time.Duration       `yaml:"reset_after" validate:"gte=0"`
		Format           common.ExportFormat `yaml:"format" validate:"gte=0"`
		JPEGQuality      int                 `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		Background       string              `yaml:"background" validate:"omitempty,hexcolor"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Report    ReportConfig   `yaml:"report"`
		Export    ExportConfig   `yaml:"export"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	UpdateNoticeFieldName       TemplateFieldName = "update_notice"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(UpdateNoticeFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// RegionOrder converts configured region names into kinds. Unknown names are
// returned separately so caller could report them, duplicates are dropped
// keeping first occurrence. Empty configuration yields default order.
func (conf *ReportConfig) RegionOrder() (order []common.RegionKind, unknown []string) {
	if len(conf.RegionNames) == 0 {
		return common.DefaultRegionOrder(), nil
	}
	seen := make(map[common.RegionKind]bool, len(conf.RegionNames))
	for _, name := range conf.RegionNames {
		kind, err := common.ParseRegionKind(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		order = append(order, kind)
	}
	return order, unknown
}
