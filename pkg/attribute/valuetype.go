package attribute

import "fmt"

// ValueType tags the kind of values an attribute holds.
type ValueType int

const (
	AttributeValue ValueType = iota
	Nominal
	Numerical
	Integer
	Real
	String
	Binominal
	Polynominal
	FilePath
	DateTime
	Date
	Time
)

var valueTypeNames = []string{
	"attribute_value",
	"nominal",
	"numeric",
	"integer",
	"real",
	"text",
	"binominal",
	"polynominal",
	"file_path",
	"date_time",
	"date",
	"time",
}

// parents holds the direct super type of every value type. AttributeValue is the root.
var parents = []ValueType{
	AttributeValue,
	AttributeValue,
	AttributeValue,
	Numerical,
	Numerical,
	Nominal,
	Nominal,
	Nominal,
	Nominal,
	AttributeValue,
	DateTime,
	DateTime,
}

func (t ValueType) String() string {
	if t < 0 || int(t) >= len(valueTypeNames) {
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
	return valueTypeNames[t]
}

// IsA reports whether t equals super or is one of its descendants.
func (t ValueType) IsA(super ValueType) bool {
	if t < 0 || int(t) >= len(parents) {
		return false
	}
	for {
		if t == super {
			return true
		}
		if t == AttributeValue {
			return false
		}
		t = parents[t]
	}
}

// ParseValueType maps a value type name back to its tag.
func ParseValueType(name string) (ValueType, bool) {
	for i, n := range valueTypeNames {
		if n == name {
			return ValueType(i), true
		}
	}
	return AttributeValue, false
}
