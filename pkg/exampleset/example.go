package exampleset

import (
	"math"
	"strings"
	"time"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
	"tabula/pkg/table"
)

// Example is the accessor for one row of a view. It resolves attributes through the view's
// role collection and reads and writes values in the physical row.
type Example struct {
	row        table.DataRow
	attributes *Attributes
}

func NewExample(row table.DataRow, attributes *Attributes) *Example {
	return &Example{row: row, attributes: attributes}
}

func (e *Example) Attributes() *Attributes {
	return e.attributes
}

// Value returns the raw stored value. Missing values are NaN.
func (e *Example) Value(a *attribute.Attribute) float64 {
	return e.row.Get(a)
}

func (e *Example) SetValue(a *attribute.Attribute, value float64) {
	e.row.Set(a, value)
}

// ValueByName resolves name through the role collection.
func (e *Example) ValueByName(name string) (float64, error) {
	a := e.attributes.Get(name)
	if a == nil {
		return math.NaN(), errs.Lookup("unknown attribute %s", name)
	}
	return e.Value(a), nil
}

func (e *Example) NumericalValue(a *attribute.Attribute) (float64, error) {
	if a.IsNominal() {
		return math.NaN(), errs.TypeMismatch("attribute %s is %s, not numerical", a.Name(), a.ValueType())
	}
	return e.Value(a), nil
}

// NominalValue returns the nominal value of a or "?" when it is missing.
func (e *Example) NominalValue(a *attribute.Attribute) (string, error) {
	if !a.IsNominal() {
		return "", errs.TypeMismatch("attribute %s is %s, not nominal", a.Name(), a.ValueType())
	}
	return a.Format(e.Value(a)), nil
}

// SetNominalValue stores value, extending the attribute mapping when it is new.
func (e *Example) SetNominalValue(a *attribute.Attribute, value string) error {
	if !a.IsNominal() {
		return errs.TypeMismatch("attribute %s is %s, not nominal", a.Name(), a.ValueType())
	}
	if value == attribute.MissingString {
		e.SetValue(a, math.NaN())
		return nil
	}
	e.SetValue(a, float64(a.Mapping().MapString(value)))
	return nil
}

// DateValue returns the value of a date attribute. The bool is false for missing values.
func (e *Example) DateValue(a *attribute.Attribute) (time.Time, bool, error) {
	if !a.IsDate() {
		return time.Time{}, false, errs.TypeMismatch("attribute %s is %s, not a date", a.Name(), a.ValueType())
	}
	value := e.Value(a)
	if math.IsNaN(value) {
		return time.Time{}, false, nil
	}
	return attribute.DateFromValue(value), true, nil
}

func (e *Example) ValueAsString(a *attribute.Attribute) string {
	return a.Format(e.Value(a))
}

// special reads the value of a special role. ok is false when the role is unset.
func (e *Example) special(specialName string) (float64, bool) {
	a := e.attributes.GetSpecial(specialName)
	if a == nil {
		return math.NaN(), false
	}
	return e.Value(a), true
}

func (e *Example) setSpecial(specialName string, value float64) error {
	a := e.attributes.GetSpecial(specialName)
	if a == nil {
		return errs.Lookup("no %s attribute", specialName)
	}
	e.SetValue(a, value)
	return nil
}

func (e *Example) Label() (float64, bool) {
	return e.special(Label)
}

func (e *Example) SetLabel(value float64) error {
	return e.setSpecial(Label, value)
}

func (e *Example) PredictedLabel() (float64, bool) {
	return e.special(Prediction)
}

func (e *Example) SetPredictedLabel(value float64) error {
	return e.setSpecial(Prediction, value)
}

func (e *Example) ID() (float64, bool) {
	return e.special(ID)
}

// Weight returns the example weight, 1 when the view has no weight attribute.
func (e *Example) Weight() float64 {
	if w, ok := e.special(Weight); ok {
		return w
	}
	return 1
}

func (e *Example) Confidence(classValue string) (float64, bool) {
	return e.special(ConfidenceName(classValue))
}

func (e *Example) SetConfidence(classValue string, confidence float64) error {
	return e.setSpecial(ConfidenceName(classValue), confidence)
}

func (e *Example) String() string {
	var b strings.Builder
	b.WriteString("[")
	all := e.attributes.All()
	for i, a := range all {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.ValueAsString(a))
	}
	b.WriteString("]")
	return b.String()
}
