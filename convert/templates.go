package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"trr/config"
	"trr/report"
	"trr/state"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Mode       string
	Date       string
	Time       string
	Generated  time.Time
	SourceFile string
	Title      string
	Total      int
	Hot        int
}

// buildValues collects template values for report read from src. Report own
// timestamp is preferred over clock so the same input always produces the
// same name.
func buildValues(in *report.Input, src string, env *state.LocalEnv) *Values {
	generated, ok := in.Timestamp()
	if !ok {
		generated = env.Now()
	}
	return &Values{
		Mode:       env.Cfg.Report.Mode.String(),
		Date:       generated.Format("20060102"),
		Time:       generated.Format("1504"),
		Generated:  generated,
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Title:      env.Cfg.Report.Labels.Title,
		Total:      in.TotalTitles,
		Hot:        in.HotCount(),
	}
}

func expandTemplate(v *Values, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := *v
	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
