package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"tabula/pkg/attribute"
)

func count(s Statistics, a *attribute.Attribute, values ...float64) {
	s.StartCounting(a)
	for _, v := range values {
		s.Count(v, 1)
	}
}

func TestStartCountingWithoutValues(t *testing.T) {
	numeric := attribute.NewNumerical("x")
	nominal := attribute.NewNominal("y", "a", "b")

	unknown := NewUnknownStatistics()
	count(unknown, numeric)
	require.Equal(t, 0.0, unknown.Get(numeric, Unknown, ""))

	numerical := NewNumericalStatistics()
	count(numerical, numeric, 1, 2, 3)
	count(numerical, numeric)
	require.True(t, math.IsNaN(numerical.Get(numeric, Average, "")))
	require.True(t, math.IsNaN(numerical.Get(numeric, Variance, "")))
	require.Equal(t, 0.0, numerical.Get(numeric, Sum, ""))

	minMax := NewMinMaxStatistics()
	count(minMax, numeric, 4)
	count(minMax, numeric)
	require.True(t, math.IsInf(minMax.Get(numeric, Minimum, ""), 1))
	require.True(t, math.IsInf(minMax.Get(numeric, Maximum, ""), -1))

	nominalStatistics := NewNominalStatistics()
	count(nominalStatistics, nominal, 1)
	count(nominalStatistics, nominal)
	require.True(t, math.IsNaN(nominalStatistics.Get(nominal, Mode, "")))
	require.Equal(t, 0.0, nominalStatistics.Get(nominal, Count, "b"))
}

func TestUnknownStatistics(t *testing.T) {
	a := attribute.NewNumerical("x")
	s := NewUnknownStatistics()
	count(s, a, 1, math.NaN(), 3, math.NaN(), math.NaN())
	require.Equal(t, 3.0, s.Get(a, Unknown, ""))
}

func TestNumericalStatistics(t *testing.T) {
	a := attribute.NewNumerical("x")
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	s := NewNumericalStatistics()
	count(s, a, append(values, math.NaN())...)

	mean := stat.Mean(values, nil)
	n := float64(len(values))
	variance := stat.Variance(values, nil) * (n - 1) / n
	require.InDelta(t, mean, s.Get(a, Average, ""), 1e-12)
	require.InDelta(t, variance, s.Get(a, Variance, ""), 1e-12)
	require.Equal(t, 40.0, s.Get(a, Sum, ""))
}

func TestNumericalStatistics_Weighted(t *testing.T) {
	a := attribute.NewNumerical("x")
	values := []float64{1, 2, 3}
	weights := []float64{1, 2, 5}
	s := NewNumericalStatistics()
	s.StartCounting(a)
	for i := range values {
		s.Count(values[i], weights[i])
	}

	mean := stat.Mean(values, weights)
	totalWeight := 8.0
	variance := stat.Variance(values, weights) * (totalWeight - 1) / totalWeight
	require.InDelta(t, mean, s.Get(a, AverageWeighted, ""), 1e-12)
	require.InDelta(t, variance, s.Get(a, VarianceWeighted, ""), 1e-12)
	require.Equal(t, 20.0, s.Get(a, SumWeighted, ""))
	require.Equal(t, 2.0, s.Get(a, Average, ""))
}

func TestNominalStatistics_Growth(t *testing.T) {
	a := attribute.NewNominal("y", "v0", "v1")
	s := NewNominalStatistics()
	count(s, a, 0, 0, 3, 1)

	require.Equal(t, 0.0, s.Get(a, Mode, ""))
	require.Equal(t, 2.0, s.CountOf(0))
	require.Equal(t, 1.0, s.CountOf(1))
	require.Equal(t, 0.0, s.CountOf(2))
	require.Equal(t, 1.0, s.CountOf(3))
	require.Equal(t, 2.0, s.Get(a, Count, "v0"))
	require.Equal(t, 2.0, s.Get(a, Least, ""))
	require.True(t, math.IsNaN(s.Get(a, Count, "unmapped")))
}

func TestNominalStatistics_ModeTieKeepsFirst(t *testing.T) {
	a := attribute.NewNominal("y", "a", "b", "c")
	s := NewNominalStatistics()
	count(s, a, 2, 1, 1, 2, math.NaN())
	require.Equal(t, 1.0, s.Get(a, Mode, ""))
	require.Equal(t, 0.0, s.Get(a, Least, ""))
}

func TestMinMaxStatistics(t *testing.T) {
	a := attribute.NewNumerical("x")
	s := NewMinMaxStatistics()
	count(s, a, 3, math.NaN(), -1, 8)
	require.Equal(t, -1.0, s.Get(a, Minimum, ""))
	require.Equal(t, 8.0, s.Get(a, Maximum, ""))
}

func TestUnsupportedStatistic(t *testing.T) {
	a := attribute.NewNumerical("x")
	tests := []Statistics{
		NewUnknownStatistics(),
		NewNumericalStatistics(),
		NewNominalStatistics(),
		NewMinMaxStatistics(),
	}
	for _, s := range tests {
		count(s, a, 1)
		require.False(t, s.Handles("median"))
		require.True(t, math.IsNaN(s.Get(a, "median", "")))
	}
	require.True(t, math.IsNaN(Lookup(ForAttribute(a), a, "median", "")))
}

func TestForAttribute(t *testing.T) {
	numeric := attribute.NewNumerical("x")
	strategies := ForAttribute(numeric)
	for _, s := range strategies {
		s.StartCounting(numeric)
		s.Count(2, 1)
		s.Count(math.NaN(), 1)
		s.Count(6, 1)
	}
	require.Equal(t, 1.0, Lookup(strategies, numeric, Unknown, ""))
	require.Equal(t, 4.0, Lookup(strategies, numeric, Average, ""))
	require.Equal(t, 6.0, Lookup(strategies, numeric, Maximum, ""))

	nominal := attribute.NewNominal("y", "a")
	require.Len(t, ForAttribute(nominal), 2)
	require.True(t, ForAttribute(nominal)[1].Handles(Mode))

	date := attribute.New("d", attribute.Date)
	require.True(t, ForAttribute(date)[1].Handles(Minimum))
}

func TestClone(t *testing.T) {
	a := attribute.NewNominal("y", "a", "b")
	s := NewNominalStatistics()
	count(s, a, 0, 1, 1)
	c := s.Clone()
	c.Count(0, 1)
	c.Count(0, 1)
	require.Equal(t, 1.0, s.Get(a, Mode, ""))
	require.Equal(t, 0.0, c.Get(a, Mode, ""))
}
