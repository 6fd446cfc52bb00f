package financial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/models"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(arbor.NewLogger())
}

func TestAnalyze_CAGR(t *testing.T) {
	analyzer := newTestAnalyzer()

	// 15% year-on-year growth over five years
	series := models.FinancialSeries{
		Years:   []int{2020, 2021, 2022, 2023, 2024},
		Revenue: []float64{10_000_000, 11_500_000, 13_225_000, 15_208_750, 17_490_063},
	}

	analysis, err := analyzer.Analyze(models.Company{Name: "Acme Corp"}, series)
	require.NoError(t, err)

	require.True(t, analysis.Metrics.CAGR.Valid)
	assert.InDelta(t, 0.15, analysis.Metrics.CAGR.Value, 0.001)
	assert.Equal(t, "15.0%", analysis.GrowthRate)
	assert.False(t, analysis.UsedDefaults)
}

func TestAnalyze_TrendClassification(t *testing.T) {
	tests := []struct {
		name    string
		revenue []float64
		want    string
	}{
		{
			name:    "above 15 percent is strong growth",
			revenue: []float64{100, 120, 144}, // 20% CAGR
			want:    TrendStrongGrowth,
		},
		{
			name:    "between 5 and 15 percent is moderate growth",
			revenue: []float64{100, 110, 121}, // 10% CAGR
			want:    TrendModerateGrowth,
		},
		{
			name:    "five percent boundary is moderate growth",
			revenue: []float64{100, 105},
			want:    TrendModerateGrowth,
		},
		{
			name:    "below 5 percent is steady growth",
			revenue: []float64{100, 102, 104.04},
			want:    TrendSteadyGrowth,
		},
		{
			name:    "declining revenue is steady growth",
			revenue: []float64{100, 90, 80},
			want:    TrendSteadyGrowth,
		},
	}

	analyzer := newTestAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{Revenue: tt.revenue})
			require.NoError(t, err)
			assert.Equal(t, tt.want, analysis.Trend)
		})
	}
}

func TestAnalyze_SingleYearSeries(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{
		Revenue: []float64{5_000_000},
	})
	require.NoError(t, err)

	assert.False(t, analysis.Metrics.CAGR.Valid)
	assert.Equal(t, "not applicable", analysis.GrowthRate)
	assert.Equal(t, TrendSteadyGrowth, analysis.Trend)
}

func TestAnalyze_ZeroRevenueMargins(t *testing.T) {
	analyzer := newTestAnalyzer()

	// Final-year revenue of zero makes margins undefined, not infinite.
	analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{
		Revenue:   []float64{100, 0},
		NetIncome: []float64{10, 5},
		EBITDA:    []float64{20, 10},
	})
	require.NoError(t, err)

	assert.False(t, analysis.Metrics.ProfitMargin.Valid)
	assert.False(t, analysis.Metrics.EBITDAMargin.Valid)
	assert.False(t, math.IsInf(analysis.Metrics.ProfitMargin.Value, 0))
}

func TestAnalyze_EmptySeriesUsesDefaults(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{})
	require.NoError(t, err)

	assert.True(t, analysis.UsedDefaults)
	assert.Equal(t, 5, analysis.Series.Len())
	assert.Equal(t, 3_200_000.0, analysis.Series.Revenue[4])
	assert.True(t, analysis.Metrics.CAGR.Valid)
	assert.NotEmpty(t, analysis.Content)
	assert.NotEmpty(t, analysis.Highlights)
}

func TestAnalyze_LengthMismatchFails(t *testing.T) {
	analyzer := newTestAnalyzer()

	_, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{
		Revenue:   []float64{100, 200, 300},
		NetIncome: []float64{10, 20},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestAnalyze_NegativeValuesTolerated(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{
		Revenue:   []float64{100, 200},
		NetIncome: []float64{-50, -20},
	})
	require.NoError(t, err)

	// A loss-making year yields a negative margin, not an error.
	require.True(t, analysis.Metrics.ProfitMargin.Valid)
	assert.Less(t, analysis.Metrics.ProfitMargin.Value, 0.0)
}

func TestAnalyze_NegativeStartingRevenue(t *testing.T) {
	analyzer := newTestAnalyzer()

	analysis, err := analyzer.Analyze(models.Company{Name: "Acme"}, models.FinancialSeries{
		Revenue: []float64{-100, 200},
	})
	require.NoError(t, err)

	// CAGR over a non-positive base is undefined.
	assert.False(t, analysis.Metrics.CAGR.Valid)
	assert.Equal(t, "not applicable", analysis.GrowthRate)
}

func TestProjectRevenue(t *testing.T) {
	projected := ProjectRevenue([]float64{100, 200}, 3, 0.10)
	require.Len(t, projected, 3)
	assert.InDelta(t, 220.0, projected[0], 0.001)
	assert.InDelta(t, 242.0, projected[1], 0.001)
	assert.InDelta(t, 266.2, projected[2], 0.001)
}

func TestProjectRevenue_EdgeCases(t *testing.T) {
	assert.Nil(t, ProjectRevenue(nil, 5, 0.10))
	assert.Nil(t, ProjectRevenue([]float64{100}, 0, 0.10))

	// Zero growth holds the last value flat.
	flat := ProjectRevenue([]float64{100}, 2, 0)
	require.Len(t, flat, 2)
	assert.Equal(t, 100.0, flat[0])
	assert.Equal(t, 100.0, flat[1])
}
