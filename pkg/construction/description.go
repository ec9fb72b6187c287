// Package construction records how derived attributes were built from other attributes
// and parses the textual form of those records, e.g. "a, +(b, c), sqrt(*(a, a))".
package construction

import (
	"strings"

	"tabula/pkg/attribute"
)

// Description is the expression tree of a derived attribute. A leaf stands for a raw input
// attribute; an inner node applies a function to its argument subtrees. Descriptions are
// not modified after they are built.
type Description struct {
	source    *attribute.Attribute
	function  string
	arguments []*Description
}

// NewLeaf describes the raw attribute a.
func NewLeaf(a *attribute.Attribute) *Description {
	return &Description{source: a}
}

// New describes a as the result of applying function to arguments.
func New(a *attribute.Attribute, function string, arguments ...*Description) *Description {
	return &Description{
		source:    a,
		function:  function,
		arguments: arguments,
	}
}

// Source is the attribute holding the values this description produces.
func (d *Description) Source() *attribute.Attribute {
	return d.source
}

func (d *Description) Function() string {
	return d.function
}

func (d *Description) Arguments() []*Description {
	return d.arguments
}

func (d *Description) IsLeaf() bool {
	return d.function == ""
}

// Description renders the tree. Functions of exactly two arguments are written infix,
// "(a + b)", when useInfix is set and as "+(a, b)" otherwise.
func (d *Description) Description(useInfix bool) string {
	if d.IsLeaf() {
		return d.source.Name()
	}
	if useInfix && len(d.arguments) == 2 {
		return "(" + d.arguments[0].Description(true) + " " + d.function + " " +
			d.arguments[1].Description(true) + ")"
	}
	var b strings.Builder
	b.WriteString(d.function)
	b.WriteString("(")
	for i, arg := range d.arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.Description(useInfix))
	}
	b.WriteString(")")
	return b.String()
}

func (d *Description) String() string {
	return d.Description(false)
}

// Depth is 0 for a leaf and one more than the deepest argument otherwise.
func (d *Description) Depth() int {
	depth := 0
	for _, arg := range d.arguments {
		if child := arg.Depth() + 1; child > depth {
			depth = child
		}
	}
	return depth
}

// Equals compares two trees structurally. Leaves are equal when their attributes have the
// same name; inner nodes when function names and all argument subtrees are equal.
func (d *Description) Equals(o *Description) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.IsLeaf() != o.IsLeaf() {
		return false
	}
	if d.IsLeaf() {
		return d.source.Name() == o.source.Name()
	}
	if d.function != o.function || len(d.arguments) != len(o.arguments) {
		return false
	}
	for i := range d.arguments {
		if !d.arguments[i].Equals(o.arguments[i]) {
			return false
		}
	}
	return true
}
