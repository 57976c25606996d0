package templates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

func funcMap() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec // explicit opt-in
		"safeCSS":  func(s string) template.CSS { return template.CSS(s) },   //nolint:gosec // explicit opt-in
		"markdown": renderMarkdown,
		"add":      func(a, b int) int { return a + b },
		"json":     toJSON,
		"field":    field,
	}
}

// renderMarkdown converts CommonMark to HTML. Raw HTML in the source is not
// passed through.
func renderMarkdown(v any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(fmt.Sprint(v)), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark omits raw HTML unless WithUnsafe is set
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// field returns m[key] when m is a JSON object and nil otherwise, so themes
// can probe free-form about content without failing on unexpected shapes.
func field(m any, key string) any {
	if obj, ok := m.(map[string]any); ok {
		return obj[key]
	}
	return nil
}
