// Package table is the physical row store behind example sets. It owns the value storage;
// views only hold attribute references and resolve values through DataRow.
package table

import (
	"math"

	"github.com/nlpodyssey/spago/pkg/mat"

	"tabula/pkg/attribute"
)

// DataRow is the per-row value access used by examples.
type DataRow interface {
	Get(a *attribute.Attribute) float64
	Set(a *attribute.Attribute, value float64)
}

// ExampleTable enumerates the physically present attributes independently of any role.
type ExampleTable interface {
	Attributes() []*attribute.Attribute
	FindAttribute(name string) *attribute.Attribute
	AddAttribute(a *attribute.Attribute) int
	RemoveAttribute(a *attribute.Attribute)
	Size() int
	Row(i int) DataRow
}

var (
	_ ExampleTable = &MemoryTable{}
	_ DataRow      = &DenseRow{}
)

// DenseRow stores one row as a dense column vector indexed by attribute table index.
type DenseRow struct {
	values *mat.Dense
}

func NewDenseRow(size int) *DenseRow {
	values := make([]float64, size)
	for i := range values {
		values[i] = math.NaN()
	}
	return &DenseRow{values: mat.NewVecDense(values)}
}

func (r *DenseRow) Get(a *attribute.Attribute) float64 {
	index := a.TableIndex()
	if index < 0 || index >= r.values.Rows() {
		return math.NaN()
	}
	return r.values.At(index, 0)
}

func (r *DenseRow) Set(a *attribute.Attribute, value float64) {
	index := a.TableIndex()
	if index < 0 {
		return
	}
	r.ensure(index + 1)
	r.values.Set(index, 0, value)
}

// ensure grows the row to hold at least size values, filling new cells with missing values.
func (r *DenseRow) ensure(size int) {
	current := r.values.Rows()
	if current >= size {
		return
	}
	data := make([]float64, size)
	copy(data, r.values.Data())
	for i := current; i < size; i++ {
		data[i] = math.NaN()
	}
	r.values = mat.NewVecDense(data)
}

// Values returns a copy of the raw row values.
func (r *DenseRow) Values() []float64 {
	data := make([]float64, r.values.Rows())
	copy(data, r.values.Data())
	return data
}

// MemoryTable keeps all rows in memory. Removed attributes leave a nil slot so the table
// indices of the remaining attributes stay stable.
type MemoryTable struct {
	attributes []*attribute.Attribute
	rows       []*DenseRow
}

func NewMemoryTable(attributes ...*attribute.Attribute) *MemoryTable {
	t := &MemoryTable{}
	for _, a := range attributes {
		t.AddAttribute(a)
	}
	return t
}

// Attributes returns the attributes currently present in table order.
func (t *MemoryTable) Attributes() []*attribute.Attribute {
	result := make([]*attribute.Attribute, 0, len(t.attributes))
	for _, a := range t.attributes {
		if a != nil {
			result = append(result, a)
		}
	}
	return result
}

func (t *MemoryTable) FindAttribute(name string) *attribute.Attribute {
	for _, a := range t.attributes {
		if a != nil && a.Name() == name {
			return a
		}
	}
	return nil
}

// AddAttribute binds a to a new column and returns its table index.
func (t *MemoryTable) AddAttribute(a *attribute.Attribute) int {
	index := len(t.attributes)
	t.attributes = append(t.attributes, a)
	a.SetTableIndex(index)
	for _, row := range t.rows {
		row.ensure(index + 1)
	}
	return index
}

func (t *MemoryTable) RemoveAttribute(a *attribute.Attribute) {
	index := a.TableIndex()
	if index < 0 || index >= len(t.attributes) || t.attributes[index] != a {
		return
	}
	t.attributes[index] = nil
}

// AddRow appends a row. Values are given in table index order; missing trailing values
// are stored as missing.
func (t *MemoryTable) AddRow(values ...float64) *DenseRow {
	row := NewDenseRow(len(t.attributes))
	for i, v := range values {
		if i < len(t.attributes) {
			row.values.Set(i, 0, v)
		}
	}
	t.rows = append(t.rows, row)
	return row
}

func (t *MemoryTable) Size() int {
	return len(t.rows)
}

func (t *MemoryTable) Row(i int) DataRow {
	return t.rows[i]
}
