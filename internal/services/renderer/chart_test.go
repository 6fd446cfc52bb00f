package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ternarybob/memoria/internal/models"
)

func TestBuildChartSVG_EmptySeries(t *testing.T) {
	assert.Empty(t, buildChartSVG(models.FinancialSeries{}))
}

func TestBuildChartSVG_SeriesContent(t *testing.T) {
	svg := buildChartSVG(models.FinancialSeries{
		Years:   []int{2022, 2023, 2024},
		Revenue: []float64{1_000_000, 1_500_000, 2_200_000},
		EBITDA:  []float64{200_000, 320_000, 500_000},
	})

	assert.Contains(t, svg, `id="financial-chart"`)
	assert.Contains(t, svg, "2022")
	assert.Contains(t, svg, "2024")
	// One polyline each for revenue and EBITDA.
	assert.Equal(t, 2, strings.Count(svg, "<polyline"))
}

func TestBuildChartSVG_NoYearsFallsBackToIndices(t *testing.T) {
	svg := buildChartSVG(models.FinancialSeries{
		Revenue: []float64{100, 200},
	})

	assert.Contains(t, svg, "Y1")
	assert.Contains(t, svg, "Y2")
}

func TestBuildChartSVG_SingleYearRenders(t *testing.T) {
	svg := buildChartSVG(models.FinancialSeries{
		Revenue: []float64{500_000},
	})

	assert.NotEmpty(t, svg)
	assert.Contains(t, svg, `id="financial-chart"`)
}

func TestBuildChartSVG_NegativeValuesClamped(t *testing.T) {
	svg := buildChartSVG(models.FinancialSeries{
		Revenue: []float64{100, -50, 200},
	})

	assert.NotEmpty(t, svg)
	assert.NotContains(t, svg, "NaN")
}
