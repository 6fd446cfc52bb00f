package interfaces

import (
	"github.com/ternarybob/memoria/internal/templates"
)

// TemplateProvider resolves template ids to template descriptors. The
// compiler treats an unknown id as fatal; it never substitutes a default
// at this boundary.
type TemplateProvider interface {
	Get(id string) (*templates.Template, error)
	List() ([]string, error)
}
