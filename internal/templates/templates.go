package templates

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"os"

	ferrors "git.home.luguber.info/inful/issuebuilder/internal/foundation/errors"
)

// Template and asset names every theme provides.
const (
	IssueTemplate = "issue.html"
	IndexTemplate = "index.html"
	AboutTemplate = "about.html"
	StylesAsset   = "styles.css"
	ThemeAsset    = "theme.js"
)

var requiredTemplates = []string{IssueTemplate, IndexTemplate, AboutTemplate}

//go:embed defaults
var embedded embed.FS

// defaultTheme returns the embedded theme rooted at its files.
func defaultTheme() fs.FS {
	sub, err := fs.Sub(embedded, "defaults")
	if err != nil {
		panic(err) // embedded tree is fixed at compile time
	}
	return sub
}

// Renderer renders pages from one parsed theme.
type Renderer struct {
	src fs.FS
	set *template.Template
}

// Load parses every *.html file of the theme in dir. An empty dir selects the
// embedded default theme.
func Load(dir string) (*Renderer, error) {
	src := defaultTheme()
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			if err == nil {
				err = errors.New("not a directory")
			}
			return nil, ferrors.TemplateError("templates directory unavailable").WithCause(err).
				WithContext("path", dir).Build()
		}
		src = os.DirFS(dir)
	}
	return parse(src, dir)
}

func parse(src fs.FS, dir string) (*Renderer, error) {
	set, err := template.New("").Funcs(funcMap()).ParseFS(src, "*.html")
	if err != nil {
		return nil, ferrors.TemplateError("parse templates").WithCause(err).
			WithContext("path", dir).Build()
	}
	for _, name := range requiredTemplates {
		if set.Lookup(name) == nil {
			return nil, ferrors.TemplateError("required template missing").
				WithContext("template", name).WithContext("path", dir).Build()
		}
	}
	return &Renderer{src: src, set: set}, nil
}

// RenderIssue renders issue.html.
func (r *Renderer) RenderIssue(data IssueData) (string, error) {
	return r.render(IssueTemplate, data)
}

// RenderIndex renders index.html.
func (r *Renderer) RenderIndex(data IndexData) (string, error) {
	return r.render(IndexTemplate, data)
}

// RenderAbout renders about.html. A nil About renders the page without its
// dynamic content.
func (r *Renderer) RenderAbout(data AboutData) (string, error) {
	return r.render(AboutTemplate, data)
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", ferrors.TemplateError("render template").WithCause(err).
			WithContext("template", name).Build()
	}
	return buf.String(), nil
}

// Asset reads a static theme file such as styles.css from the same source the
// templates were loaded from.
func (r *Renderer) Asset(name string) ([]byte, error) {
	data, err := fs.ReadFile(r.src, name)
	if err != nil {
		return nil, ferrors.AssetError("read theme asset").WithCause(err).
			WithContext("asset", name).Build()
	}
	return data, nil
}
