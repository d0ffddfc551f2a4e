package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"devevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// executor is satisfied by both html/template and text/template.
type executor interface {
	Execute(wr *bytes.Buffer, data any) error
}

type textExec struct{ t *texttemplate.Template }

func (e textExec) Execute(wr *bytes.Buffer, data any) error { return e.t.Execute(wr, data) }

type htmlExec struct{ t *htmltemplate.Template }

func (e htmlExec) Execute(wr *bytes.Buffer, data any) error { return e.t.Execute(wr, data) }

// templateRenderer implements domain.EmailTemplateRenderer over the embedded templates folder.
// Each template name maps to <name>_subject.txt, <name>.html and <name>.txt.
type templateRenderer struct{}

func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{}
}

func (r *templateRenderer) Render(templateName string, data any) (subject, htmlBody, textBody string, err error) {
	parts := []struct {
		file string
		html bool
		out  *string
	}{
		{templateName + "_subject.txt", false, &subject},
		{templateName + ".html", true, &htmlBody},
		{templateName + ".txt", false, &textBody},
	}
	for _, p := range parts {
		if *p.out, err = renderFile(p.file, p.html, data); err != nil {
			return "", "", "", fmt.Errorf("render %s: %w", p.file, err)
		}
	}
	return strings.TrimSpace(subject), htmlBody, textBody, nil
}

func renderFile(name string, html bool, data any) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", err
	}
	var exec executor
	if html {
		t, err := htmltemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		exec = htmlExec{t}
	} else {
		t, err := texttemplate.New(name).Parse(string(raw))
		if err != nil {
			return "", err
		}
		exec = textExec{t}
	}
	var buf bytes.Buffer
	if err := exec.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
