// Package statistics implements incremental per attribute accumulators.
//
// A strategy is reset with StartCounting, fed every value of one pass with Count and
// queried afterwards with Get. Queries for a name a strategy does not handle, and
// statistics that are undefined for the data seen (an average of nothing), return NaN.
// Strategies are not safe for concurrent use.
package statistics

import (
	"math"

	"github.com/rs/zerolog/log"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
)

const (
	Unknown          = "unknown"
	Average          = "average"
	AverageWeighted  = "average_weighted"
	Variance         = "variance"
	VarianceWeighted = "variance_weighted"
	Sum              = "sum"
	SumWeighted      = "sum_weighted"
	Minimum          = "minimum"
	Maximum          = "maximum"
	Mode             = "mode"
	Least            = "least"
	Count            = "count"
)

type Statistics interface {
	// StartCounting resets the accumulated state for a new pass over a.
	StartCounting(a *attribute.Attribute)
	// Count feeds one value with its example weight.
	Count(value, weight float64)
	// Handles reports whether Get can answer name.
	Handles(name string) bool
	// Get returns the named statistic. The parameter is only used by nominal counts.
	Get(a *attribute.Attribute, name, parameter string) float64
	Clone() Statistics
}

// ForAttribute returns fresh strategies suited to the value type of a.
func ForAttribute(a *attribute.Attribute) []Statistics {
	switch {
	case a.IsNominal():
		return []Statistics{NewUnknownStatistics(), NewNominalStatistics()}
	case a.IsDate():
		return []Statistics{NewUnknownStatistics(), NewMinMaxStatistics()}
	default:
		return []Statistics{NewUnknownStatistics(), NewNumericalStatistics(), NewMinMaxStatistics()}
	}
}

// Lookup asks the first strategy handling name. Unsupported names yield NaN and a warning.
func Lookup(strategies []Statistics, a *attribute.Attribute, name, parameter string) float64 {
	for _, s := range strategies {
		if s.Handles(name) {
			return s.Get(a, name, parameter)
		}
	}
	return unsupported(a, name)
}

func unsupported(a *attribute.Attribute, name string) float64 {
	attributeName := ""
	if a != nil {
		attributeName = a.Name()
	}
	log.Warn().Err(errs.Unsupported("statistic %q", name)).Str("Attribute", attributeName).Msg("statistic undefined")
	return math.NaN()
}
