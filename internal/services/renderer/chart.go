package renderer

import (
	"fmt"
	"strings"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/models"
)

// Chart geometry in SVG user units.
const (
	chartWidth   = 680
	chartHeight  = 300
	chartPadLeft = 70
	chartPadTop  = 20
	chartPadBot  = 40
)

// buildChartSVG renders the revenue/EBITDA series as an inline SVG line
// chart. An empty series yields an empty string: the document carries no
// placeholder chart.
func buildChartSVG(series models.FinancialSeries) string {
	if series.IsEmpty() {
		return ""
	}

	n := series.Len()
	plotW := float64(chartWidth - chartPadLeft - 20)
	plotH := float64(chartHeight - chartPadTop - chartPadBot)

	maxVal := 0.0
	for _, v := range series.Revenue {
		if v > maxVal {
			maxVal = v
		}
	}
	for _, v := range series.EBITDA {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	x := func(i int) float64 {
		if n == 1 {
			return chartPadLeft + plotW/2
		}
		return chartPadLeft + plotW*float64(i)/float64(n-1)
	}
	y := func(v float64) float64 {
		if v < 0 {
			v = 0
		}
		return chartPadTop + plotH*(1-v/maxVal)
	}

	points := func(values []float64) string {
		var pts []string
		for i, v := range values {
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x(i), y(v)))
		}
		return strings.Join(pts, " ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg id="financial-chart" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`, chartWidth, chartHeight)

	// Horizontal gridlines with axis labels
	for i := 0; i <= 4; i++ {
		val := maxVal * float64(i) / 4
		gy := y(val)
		fmt.Fprintf(&b, `<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#e2e8f0" stroke-width="1"/>`, chartPadLeft, gy, chartWidth-20, gy)
		fmt.Fprintf(&b, `<text x="%d" y="%.1f" font-size="11" fill="#64748b" text-anchor="end">%s</text>`, chartPadLeft-6, gy+4, common.FormatCurrency(val))
	}

	// Year labels
	for i := 0; i < n; i++ {
		label := ""
		if len(series.Years) == n {
			label = fmt.Sprintf("%d", series.Years[i])
		} else {
			label = fmt.Sprintf("Y%d", i+1)
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" font-size="11" fill="#64748b" text-anchor="middle">%s</text>`, x(i), chartHeight-chartPadBot+20, label)
	}

	// Revenue area fill and line
	if n > 1 {
		fmt.Fprintf(&b, `<polygon points="%.1f,%.1f %s %.1f,%.1f" fill="#2563eb" fill-opacity="0.08"/>`,
			x(0), y(0), points(series.Revenue), x(n-1), y(0))
	}
	fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#2563eb" stroke-width="2.5"/>`, points(series.Revenue))

	if len(series.EBITDA) == n {
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#16a34a" stroke-width="2" stroke-dasharray="6 3"/>`, points(series.EBITDA))
	}

	// Legend
	fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="3" fill="#2563eb"/><text x="%d" y="%d" font-size="11" fill="#334155">Revenue</text>`,
		chartPadLeft, chartHeight-8, chartPadLeft+18, chartHeight-4)
	if len(series.EBITDA) == n {
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="3" fill="#16a34a"/><text x="%d" y="%d" font-size="11" fill="#334155">EBITDA</text>`,
			chartPadLeft+100, chartHeight-8, chartPadLeft+118, chartHeight-4)
	}

	b.WriteString(`</svg>`)
	return b.String()
}
