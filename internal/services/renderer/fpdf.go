package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/arbor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/ternarybob/memoria/internal/models"
)

// fpdfEngine paginates the document without a browser. It renders the
// section markdown directly and never draws the chart; environments that
// need the chart use the chromium engine.
type fpdfEngine struct {
	logger arbor.ILogger
}

func newFpdfEngine(logger arbor.ILogger) *fpdfEngine {
	return &fpdfEngine{logger: logger}
}

func (e *fpdfEngine) name() string { return "fpdf" }

func (e *fpdfEngine) render(doc *models.CIMDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	title := doc.Title
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 6, title, "", 1, "C", false, 0, "")
		pdf.Ln(2)
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.MultiCell(0, 8, title, "", "C", false)
	pdf.Ln(6)

	for _, section := range doc.OrderedSections() {
		pdf.SetFont("Arial", "B", 13)
		pdf.MultiCell(0, 7, section.Title, "", "L", false)
		pdf.Ln(1)
		pdf.SetFont("Arial", "", 9)

		source := []byte(sectionMarkdown(section.Content))
		parsed := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

		walker := &fpdfWalker{pdf: pdf, source: source, font: "Arial", size: 9}
		if err := walker.render(parsed); err != nil {
			e.logger.Error().Err(err).Str("section", section.Title).Msg("Failed to render section")
			return nil, fmt.Errorf("failed to render section %q: %w", section.Title, err)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

// sectionMarkdown flattens a content variant into markdown. Keyed blocks
// become bold label lines with indented bodies, lists become bullets.
func sectionMarkdown(content models.SectionContent) string {
	var b strings.Builder
	writeMarkdown(&b, content, 0)
	return strings.TrimSpace(b.String())
}

func writeMarkdown(b *strings.Builder, content models.SectionContent, depth int) {
	indent := strings.Repeat("  ", depth)
	switch content.Kind {
	case models.ContentText:
		b.WriteString(content.Text)
		b.WriteString("\n\n")
	case models.ContentList:
		for _, item := range content.Items {
			if item.Kind == models.ContentText {
				fmt.Fprintf(b, "%s- %s\n", indent, item.Text)
			} else {
				writeMarkdown(b, item, depth+1)
			}
		}
		b.WriteString("\n")
	case models.ContentKeyed:
		for _, entry := range content.Block {
			fmt.Fprintf(b, "%s**%s**\n\n", indent, entry.Label)
			writeMarkdown(b, entry.Content, depth)
		}
	}
}

type fpdfWalker struct {
	pdf       *fpdf.Fpdf
	source    []byte
	font      string
	size      float64
	bold      bool
	italic    bool
	listLevel int
}

func (w *fpdfWalker) render(node ast.Node) error {
	return ast.Walk(node, w.walk)
}

func (w *fpdfWalker) updateFont() {
	style := ""
	if w.bold {
		style += "B"
	}
	if w.italic {
		style += "I"
	}
	w.pdf.SetFont(w.font, style, w.size)
}

func (w *fpdfWalker) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n.Kind() {
	case ast.KindHeading:
		if entering {
			w.pdf.Ln(4)
			size := 12.0
			if h := n.(*ast.Heading); h.Level >= 3 {
				size = 10
			}
			w.pdf.SetFont(w.font, "B", size)
		} else {
			w.pdf.Ln(6)
			w.updateFont()
		}
	case ast.KindParagraph:
		if !entering {
			w.pdf.Ln(6)
		}
	case ast.KindText:
		if entering {
			w.pdf.Write(5, string(n.(*ast.Text).Text(w.source)))
		}
	case ast.KindEmphasis:
		if n.(*ast.Emphasis).Level == 2 {
			w.bold = entering
		} else {
			w.italic = entering
		}
		w.updateFont()
	case ast.KindList:
		if entering {
			w.listLevel++
		} else {
			w.listLevel--
			if w.listLevel == 0 {
				w.pdf.Ln(2)
			}
		}
	case ast.KindListItem:
		if entering {
			w.pdf.Ln(5)
			w.pdf.SetX(15 + float64(w.listLevel)*5)
			w.pdf.Write(5, "- ")
		}
	}
	return ast.WalkContinue, nil
}
