// Package evaluation compares the label of an example set with its prediction.
package evaluation

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/nlpodyssey/spago/pkg/ml/stats"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
	"tabula/pkg/exampleset"
)

type NoopWriter struct{}

func (x NoopWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// Result holds the metrics of one evaluation. Classification fills Classes and the F1
// scores, regression fills RSquared.
type Result struct {
	Evaluated int
	Skipped   int
	Classes   map[string]*stats.ClassMetrics
	MacroF1   float64
	MicroF1   float64
	RSquared  float64
}

type evaluator interface {
	evaluate(e *exampleset.Example, label, prediction float64)
	finish(result *Result)
}

// Evaluate compares label and prediction of every example, writing one
// "label,prediction" line per evaluated example to out. Examples where either value is
// missing are skipped.
func Evaluate(es *exampleset.ExampleSet, out io.Writer) (*Result, error) {
	label := es.Attributes().Label()
	if label == nil {
		return nil, errs.Lookup("example set has no %s attribute", exampleset.Label)
	}
	prediction := es.Attributes().PredictedLabel()
	if prediction == nil {
		return nil, errs.Lookup("example set has no %s attribute", exampleset.Prediction)
	}
	if out == nil {
		out = NoopWriter{}
	}

	var ev evaluator
	if label.IsNominal() {
		if !prediction.IsNominal() {
			return nil, errs.TypeMismatch("label %s is nominal but prediction %s is %s", label.Name(), prediction.Name(), prediction.ValueType())
		}
		ev = &classificationEvaluator{
			label:        label,
			prediction:   prediction,
			metrics:      map[string]*stats.ClassMetrics{},
			outputWriter: out,
		}
	} else {
		ev = &regressionEvaluator{
			weighted:     es.Attributes().Weight() != nil,
			outputWriter: out,
		}
	}

	result := &Result{RSquared: math.NaN(), MacroF1: math.NaN(), MicroF1: math.NaN()}
	for reader := es.Iterator(); ; {
		e, ok := reader.Next()
		if !ok {
			break
		}
		labelValue, _ := e.Label()
		predictedValue, _ := e.PredictedLabel()
		if math.IsNaN(labelValue) || math.IsNaN(predictedValue) {
			result.Skipped++
			continue
		}
		ev.evaluate(e, labelValue, predictedValue)
		result.Evaluated++
	}
	if result.Skipped > 0 {
		log.Warn().Int("Skipped", result.Skipped).Msg("examples without label or prediction")
	}
	ev.finish(result)
	return result, nil
}

type classificationEvaluator struct {
	label        *attribute.Attribute
	prediction   *attribute.Attribute
	metrics      map[string]*stats.ClassMetrics
	outputWriter io.Writer
}

func (c *classificationEvaluator) counter(class string) *stats.ClassMetrics {
	m, ok := c.metrics[class]
	if !ok {
		m = stats.NewMetricCounter()
		c.metrics[class] = m
	}
	return m
}

// Classes are compared by value so label and prediction may use different mappings.
func (c *classificationEvaluator) evaluate(_ *exampleset.Example, labelValue, predictedValue float64) {
	label := c.label.Format(labelValue)
	predicted := c.prediction.Format(predictedValue)
	fmt.Fprintf(c.outputWriter, "%s,%s\n", label, predicted)

	labelClassMetrics := c.counter(label)
	predictedClassMetrics := c.counter(predicted)
	if label == predicted {
		labelClassMetrics.IncTruePos()
	} else {
		labelClassMetrics.IncFalseNeg()
		predictedClassMetrics.IncFalsePos()
	}
}

func (c *classificationEvaluator) finish(result *Result) {
	result.Classes = c.metrics
	if len(c.metrics) == 0 {
		return
	}
	for _, class := range SortedClasses(c.metrics) {
		m := c.metrics[class]
		log.Info().Str("Class", class).
			Int("TP", m.TruePos).
			Int("FP", m.FalsePos).
			Int("FN", m.FalseNeg).
			Float64("Precision", m.Precision()).
			Float64("Recall", m.Recall()).
			Float64("F1", m.F1Score()).
			Msg("")
	}
	result.MacroF1, result.MicroF1 = computeOverallF1(c.metrics)
	log.Info().Float64("MacroF1", result.MacroF1).Float64("MicroF1", result.MicroF1).Msg("")
}

func computeOverallF1(metrics map[string]*stats.ClassMetrics) (macroF1, microF1 float64) {
	for _, metric := range metrics {
		macroF1 += metric.F1Score()
	}
	macroF1 /= float64(len(metrics))

	micro := stats.NewMetricCounter()
	for _, m := range metrics {
		micro.TruePos += m.TruePos
		micro.FalsePos += m.FalsePos
		micro.FalseNeg += m.FalseNeg
		micro.TrueNeg += m.TrueNeg
	}
	return macroF1, micro.F1Score()
}

// SortedClasses returns the class names in lexical order.
func SortedClasses(metrics map[string]*stats.ClassMetrics) []string {
	result := make([]string, 0, len(metrics))
	for class := range metrics {
		result = append(result, class)
	}
	sort.Strings(result)
	return result
}

type regressionEvaluator struct {
	weighted     bool
	estimated    []float64
	values       []float64
	weights      []float64
	outputWriter io.Writer
}

func (r *regressionEvaluator) evaluate(e *exampleset.Example, label, prediction float64) {
	log.Debug().Float64("Label", label).Float64("Prediction", prediction).Msg("")
	fmt.Fprintf(r.outputWriter, "%g,%g\n", label, prediction)

	r.estimated = append(r.estimated, prediction)
	r.values = append(r.values, label)
	if r.weighted {
		r.weights = append(r.weights, e.Weight())
	}
}

func (r *regressionEvaluator) finish(result *Result) {
	if len(r.values) == 0 {
		return
	}
	result.RSquared = stat.RSquaredFrom(r.estimated, r.values, r.weights)
	log.Info().Float64("R-squared", result.RSquared).Msg("")
}
