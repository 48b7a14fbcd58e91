package release

import (
	"bytes"
	"fmt"
	"text/template"
)

type titleData struct {
	Version  string
	Previous string
	Branch   string
}

// renderTitle renders the release title template. Unknown fields are errors.
func renderTitle(tmpl string, data titleData) (string, error) {
	t, err := template.New("title").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse title template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render title template: %w", err)
	}
	return buf.String(), nil
}
