// Where: internal/domain/imports/renderer.go
// What: Terraform import commands and the sectioned command file.
// Why: Keep the generated command file format in one template.
package imports

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateCache sync.Map

// Command imports one existing object into a Terraform resource address.
type Command struct {
	Address string
	ID      int64
}

// String renders the command as a terraform CLI invocation.
func (c Command) String() string {
	return fmt.Sprintf("terraform import %s %d", c.Address, c.ID)
}

// Section groups commands of one resource type under a header.
type Section struct {
	Title    string
	Commands []Command
}

// RenderSections renders the sectioned command file. binary defaults to `terraform`.
func RenderSections(binary string, sections []Section) (string, error) {
	return renderTemplate("import_commands.tmpl", struct {
		Binary   string
		Sections []Section
	}{Binary: binary, Sections: sections})
}

// CountCommands returns the number of commands across sections.
func CountCommands(sections []Section) int {
	total := 0
	for _, s := range sections {
		total += len(s.Commands)
	}
	return total
}

// RenderLines renders commands one per line without headers.
func RenderLines(commands []Command) string {
	lines := make([]string, len(commands))
	for i, c := range commands {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}

// ParseLines returns the non-empty, non-comment lines of a command file.
func ParseLines(text string) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
