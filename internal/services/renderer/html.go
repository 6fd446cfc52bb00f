package renderer

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ternarybob/memoria/internal/models"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// compileHTML renders the document model into a self-contained page.
// Template compilation failures are fatal; the chart markup (possibly empty)
// is injected into the financial analysis section.
func compileHTML(doc *models.CIMDocument, chartSVG string) (string, error) {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(doc.Title))
	b.WriteString("</title><style>")
	b.WriteString(pageStyles)
	b.WriteString("</style></head><body>")

	fmt.Fprintf(&b, `<header class="cover"><h1>%s</h1><p class="subtitle">%s | %s</p></header>`,
		html.EscapeString(doc.Title),
		html.EscapeString(doc.CompanyName),
		html.EscapeString(doc.Industry))

	for _, section := range doc.OrderedSections() {
		content, err := formatContent(section.Content)
		if err != nil {
			return "", fmt.Errorf("section %q: %w", section.Title, err)
		}

		fmt.Fprintf(&b, `<section><h2>%s</h2>%s`, html.EscapeString(section.Title), content)
		if chartSVG != "" && section.Order == 4 {
			fmt.Fprintf(&b, `<figure class="chart">%s<figcaption>Revenue and EBITDA by year</figcaption></figure>`, chartSVG)
		}
		b.WriteString("</section>")
	}

	// The render engine polls chartRendered before printing. The flag flips
	// after a paint frame so the SVG is committed to the page.
	b.WriteString(`<script>
window.chartRendered = false;
window.addEventListener('load', function () {
  requestAnimationFrame(function () {
    requestAnimationFrame(function () { window.chartRendered = true; });
  });
});
</script>`)

	b.WriteString("</body></html>")
	return b.String(), nil
}

// formatContent converts one content variant to HTML. Exactly one formatting
// rule per variant; nested variants recurse.
func formatContent(content models.SectionContent) (string, error) {
	switch content.Kind {
	case models.ContentText:
		return renderMarkdown(content.Text)

	case models.ContentList:
		var b strings.Builder
		b.WriteString("<ul>")
		for _, item := range content.Items {
			inner, err := formatContent(item)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "<li>%s</li>", inner)
		}
		b.WriteString("</ul>")
		return b.String(), nil

	case models.ContentKeyed:
		var b strings.Builder
		b.WriteString(`<dl class="keyed">`)
		for _, entry := range content.Block {
			inner, err := formatContent(entry.Content)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "<dt>%s</dt><dd>%s</dd>", html.EscapeString(entry.Label), inner)
		}
		b.WriteString("</dl>")
		return b.String(), nil

	default:
		return "", fmt.Errorf("unknown content kind %q", content.Kind)
	}
}

func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}
	return buf.String(), nil
}

const pageStyles = `
body { font-family: Georgia, 'Times New Roman', serif; color: #1e293b; margin: 0; line-height: 1.55; }
header.cover { text-align: center; padding: 48px 24px 24px; border-bottom: 3px double #94a3b8; }
header.cover h1 { font-size: 24px; margin: 0 0 8px; }
header.cover .subtitle { color: #64748b; font-size: 13px; margin: 0; }
section { padding: 16px 40px; page-break-inside: avoid; }
section h2 { font-size: 17px; border-bottom: 1px solid #cbd5e1; padding-bottom: 4px; color: #0f172a; }
section h3, section h2 + h2 { font-size: 14px; }
ul { margin: 6px 0; padding-left: 22px; }
li { margin: 3px 0; }
dl.keyed dt { font-weight: bold; margin-top: 10px; color: #334155; }
dl.keyed dd { margin: 2px 0 2px 16px; }
figure.chart { margin: 16px 0; text-align: center; }
figure.chart svg { width: 100%; max-width: 680px; height: auto; }
figure.chart figcaption { font-size: 11px; color: #64748b; margin-top: 4px; }
table { border-collapse: collapse; width: 100%; font-size: 12px; }
th, td { border: 1px solid #cbd5e1; padding: 4px 8px; text-align: left; }
`
