// Package attribute describes the columns of a dataset: their names, value types and,
// for nominal columns, the mapping between values and the indices stored in the rows.
//
// Attributes are shared by pointer between the physical table and every view that
// references them. Two attributes are treated as the same column when their names match.
package attribute

import (
	"math"
	"strconv"
	"time"
)

// MissingValue is the stored representation of an unknown value.
var MissingValue = math.NaN()

// MissingString is the rendering of a missing value.
const MissingString = "?"

// UnassignedIndex marks an attribute not yet bound to a physical table column.
const UnassignedIndex = -1

type Attribute struct {
	name         string
	valueType    ValueType
	tableIndex   int
	mapping      *NominalMapping
	construction string
}

// New creates an attribute of the given value type. Nominal attributes get an empty mapping.
func New(name string, valueType ValueType) *Attribute {
	a := &Attribute{
		name:       name,
		valueType:  valueType,
		tableIndex: UnassignedIndex,
	}
	if valueType.IsA(Nominal) {
		a.mapping = NewNominalMapping()
	}
	return a
}

func NewNumerical(name string) *Attribute {
	return New(name, Numerical)
}

// NewNominal creates a nominal attribute with the given values mapped in order.
func NewNominal(name string, values ...string) *Attribute {
	a := New(name, Nominal)
	for _, v := range values {
		a.mapping.MapString(v)
	}
	return a
}

func (a *Attribute) Name() string {
	return a.name
}

func (a *Attribute) SetName(name string) {
	a.name = name
}

func (a *Attribute) ValueType() ValueType {
	return a.valueType
}

func (a *Attribute) IsNominal() bool {
	return a.valueType.IsA(Nominal)
}

func (a *Attribute) IsNumerical() bool {
	return a.valueType.IsA(Numerical)
}

func (a *Attribute) IsDate() bool {
	return a.valueType.IsA(DateTime)
}

// TableIndex is the column of the physical table holding this attribute's values.
func (a *Attribute) TableIndex() int {
	return a.tableIndex
}

func (a *Attribute) SetTableIndex(index int) {
	a.tableIndex = index
}

// Mapping returns the nominal mapping, or nil for non nominal attributes.
func (a *Attribute) Mapping() *NominalMapping {
	return a.mapping
}

func (a *Attribute) SetMapping(m *NominalMapping) {
	a.mapping = m
}

// Construction is the textual description of how the attribute was derived.
// Raw attributes return their own name.
func (a *Attribute) Construction() string {
	if a.construction == "" {
		return a.name
	}
	return a.construction
}

func (a *Attribute) SetConstruction(construction string) {
	a.construction = construction
}

// Clone returns a copy bound to the same table column. The nominal mapping is shared.
func (a *Attribute) Clone() *Attribute {
	c := *a
	return &c
}

// Format renders a stored value according to the value type.
func (a *Attribute) Format(value float64) string {
	if math.IsNaN(value) {
		return MissingString
	}
	switch {
	case a.IsNominal():
		if s, ok := a.mapping.Value(int(value)); ok {
			return s
		}
		return MissingString
	case a.IsDate():
		return DateFromValue(value).Format(a.dateLayout())
	case a.valueType.IsA(Integer):
		return strconv.FormatInt(int64(value), 10)
	default:
		return strconv.FormatFloat(value, 'g', -1, 64)
	}
}

func (a *Attribute) dateLayout() string {
	switch a.valueType {
	case Date:
		return "2006-01-02"
	case Time:
		return "15:04:05"
	default:
		return time.RFC3339
	}
}

// ParseDate parses text with the layout used by Format for this attribute.
func (a *Attribute) ParseDate(text string) (time.Time, error) {
	return time.Parse(a.dateLayout(), text)
}

func (a *Attribute) String() string {
	return a.name
}

// DateFromValue converts a stored value (milliseconds since the epoch) to a time.
func DateFromValue(value float64) time.Time {
	return time.UnixMilli(int64(value)).UTC()
}

// DateToValue converts a time to its stored value.
func DateToValue(t time.Time) float64 {
	return float64(t.UnixMilli())
}
