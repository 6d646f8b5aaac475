package report

import (
	"bytes"
	"fmt"
	"html/template"

	sprig "github.com/go-task/slim-sprig/v3"
)

// AnalysisFormatter renders AI analysis result into HTML fragment. Output is
// treated as opaque content.
type AnalysisFormatter interface {
	FormatAnalysis(a *AIAnalysis) (string, error)
}

const analysisTemplate = `{{- if .Error -}}
<div class="ai-error">{{ .Error | trim }}</div>
{{- else -}}
{{- with .Summary | trim }}<div class="ai-block"><div class="ai-block-content">{{ . }}</div></div>{{ end -}}
{{- range .Sections }}{{ if or (trim .Title) (trim .Content) }}
<div class="ai-block">{{ with trim .Title }}<div class="ai-block-title">{{ . }}</div>{{ end }}<div class="ai-block-content">{{ trim .Content }}</div></div>
{{- end }}{{ end -}}
{{- end -}}`

// TemplateFormatter is default AnalysisFormatter based on html/template, so
// all analysis text is escaped.
type TemplateFormatter struct {
	tmpl *template.Template
}

// NewTemplateFormatter creates formatter from template text, empty text
// selects built-in template.
func NewTemplateFormatter(text string) (*TemplateFormatter, error) {
	if text == "" {
		text = analysisTemplate
	}
	tmpl, err := template.New("ai_analysis").Funcs(sprig.HtmlFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse analysis template: %w", err)
	}
	return &TemplateFormatter{tmpl: tmpl}, nil
}

func (f *TemplateFormatter) FormatAnalysis(a *AIAnalysis) (string, error) {
	buf := new(bytes.Buffer)
	if err := f.tmpl.Execute(buf, a); err != nil {
		return "", err
	}
	return buf.String(), nil
}
