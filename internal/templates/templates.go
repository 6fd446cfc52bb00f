// Package templates provides embedded CIM templates with user override support.
// Templates are loaded with resolution order:
// 1. User override: templatesDir/{id}.toml
// 2. Embedded default: internal/templates/{id}.toml
package templates

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed *.toml
var fs embed.FS

// DefaultTemplateID is used when a generation request names no template.
const DefaultTemplateID = "standard"

// Template represents a loaded CIM template. It shapes presentation only:
// section titles, tone, and industry-flavored list content. Analysis results
// are never affected by the template.
type Template struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Tone        string `toml:"tone"`

	// SectionTitles overrides the default title per section key.
	// Missing keys keep their defaults.
	SectionTitles map[string]string `toml:"section_titles"`

	// HighlightEmphasis is appended to the investment highlights list.
	HighlightEmphasis []string `toml:"highlight_emphasis"`

	// IndustryRisks is merged into the risk factors section.
	IndustryRisks []string `toml:"industry_risks"`

	// GrowthStrategies feeds the growth strategy block of the market section.
	GrowthStrategies []string `toml:"growth_strategies"`
}

// SectionTitle returns the template's title for a section key, or the
// provided default when the template has no override.
func (t *Template) SectionTitle(key, fallback string) string {
	if t == nil {
		return fallback
	}
	if title, ok := t.SectionTitles[key]; ok && title != "" {
		return title
	}
	return fallback
}

// Registry resolves template ids against a user override directory and the
// embedded defaults. The zero directory means embedded templates only.
type Registry struct {
	dir string
}

// NewRegistry creates a template registry with the given override directory.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

// Get resolves a template id. Unknown ids are an error.
func (r *Registry) Get(id string) (*Template, error) {
	return GetTemplate(id, r.dir)
}

// List returns the ids of all embedded templates.
func (r *Registry) List() ([]string, error) {
	return ListEmbeddedTemplates()
}

// GetTemplate loads a template by id with resolution order:
// 1. User override: templatesDir/{id}.toml
// 2. Embedded default: internal/templates/{id}.toml
func GetTemplate(id string, templatesDir string) (*Template, error) {
	if id == "" {
		id = DefaultTemplateID
	}

	// Try user override first
	if templatesDir != "" {
		userPath := filepath.Join(templatesDir, id+".toml")
		if data, err := os.ReadFile(userPath); err == nil {
			return parseTemplate(data)
		}
	}

	// Fall back to embedded default
	data, err := fs.ReadFile(id + ".toml")
	if err != nil {
		return nil, fmt.Errorf("template '%s' not found (checked user override and embedded)", id)
	}
	return parseTemplate(data)
}

// ListEmbeddedTemplates returns ids of all embedded templates
func ListEmbeddedTemplates() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			name := entry.Name()
			if len(name) > 5 && name[len(name)-5:] == ".toml" {
				ids = append(ids, name[:len(name)-5])
			}
		}
	}
	return ids, nil
}

func parseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &t, nil
}
