package construction

import (
	"github.com/rs/zerolog/log"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
	"tabula/pkg/exampleset"
)

// Generate adds the attributes of generated to the example set and fills them row by row.
// Arguments must be numerical attributes of the set or appear earlier in generated. The
// example set is left untouched when an error is returned.
func Generate(es *exampleset.ExampleSet, generated []*Description) error {
	functions := make([]Function, len(generated))
	pending := map[*attribute.Attribute]bool{}
	for i, d := range generated {
		f, err := LookupFunction(d.Function())
		if err != nil {
			return err
		}
		for _, arg := range d.Arguments() {
			if pending[arg.Source()] {
				continue
			}
			if err := checkArgument(es, arg.Source()); err != nil {
				return err
			}
		}
		functions[i] = f
		pending[d.Source()] = true
	}
	for _, d := range generated {
		es.AddAttribute(d.Source())
	}

	values := make([]float64, 0, 4)
	for reader := es.Iterator(); ; {
		e, ok := reader.Next()
		if !ok {
			break
		}
		for i, d := range generated {
			values = values[:0]
			for _, arg := range d.Arguments() {
				values = append(values, e.Value(arg.Source()))
			}
			e.SetValue(d.Source(), functions[i].Apply(values))
		}
	}
	log.Debug().Int("attributes", len(generated)).Int("examples", es.Size()).Msg("generated attributes")
	return nil
}

func checkArgument(es *exampleset.ExampleSet, a *attribute.Attribute) error {
	if a.TableIndex() == attribute.UnassignedIndex || !es.Attributes().Contains(a) {
		return errs.Lookup("attribute %s is not part of the example set", a.Name())
	}
	if !a.IsNumerical() {
		return errs.TypeMismatch("attribute %s is %s, functions need numerical arguments", a.Name(), a.ValueType())
	}
	return nil
}
