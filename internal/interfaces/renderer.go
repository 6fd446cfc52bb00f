package interfaces

import (
	"context"

	"github.com/ternarybob/memoria/internal/models"
)

// DocumentRenderer exports an assembled document to a paginated format.
// Export validates required sections before rendering and guarantees
// renderer teardown on every exit path.
type DocumentRenderer interface {
	Export(ctx context.Context, doc *models.CIMDocument) (*models.RenderedOutput, error)

	// Engine identifies the rendering backend, "chromium" or "fpdf".
	Engine() string
}
