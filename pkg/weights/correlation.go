package weights

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"tabula/pkg/errs"
	"tabula/pkg/exampleset"
)

// ByCorrelation weights every regular numerical attribute by its Pearson correlation with
// the label, using the example weights when the set has a weight attribute. A nominal
// label enters through its value indices and must therefore have at most two values.
// Examples missing either value are ignored; attributes whose correlation is undefined,
// such as constant columns, get no weight.
func ByCorrelation(es *exampleset.ExampleSet) (*AttributeWeights, error) {
	label := es.Attributes().Label()
	if label == nil {
		return nil, errs.Lookup("example set has no %s attribute", exampleset.Label)
	}
	if label.IsNominal() && label.Mapping().Size() > 2 {
		return nil, errs.TypeMismatch("label %s has %d values, correlation needs a numerical or binominal label",
			label.Name(), label.Mapping().Size())
	}
	weight := es.Attributes().Weight()

	result := New()
	for _, a := range es.Attributes().Regular() {
		if !a.IsNumerical() {
			continue
		}
		var x, y, w []float64
		for i := 0; i < es.Size(); i++ {
			row := es.Row(i)
			xv, yv := row.Get(a), row.Get(label)
			if math.IsNaN(xv) || math.IsNaN(yv) {
				continue
			}
			x = append(x, xv)
			y = append(y, yv)
			if weight != nil {
				w = append(w, row.Get(weight))
			}
		}
		if len(x) < 2 {
			continue
		}
		result.SetWeight(a.Name(), stat.Correlation(x, y, w))
	}
	return result, nil
}
