// Package exampleset implements views over a physical table: the role collection that
// decides which attributes a view exposes, filtered iteration over it, per row Example
// accessors and the statistics computed for a view.
//
// A view and its statistics belong to one goroutine at a time. Clone returns a deep copy
// of the view that can be handed to another goroutine; the physical rows stay shared and
// must then only be read, or written by one owner.
package exampleset

import (
	"math/rand"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
	"tabula/pkg/statistics"
	"tabula/pkg/table"
)

type ExampleSet struct {
	table      table.ExampleTable
	attributes *Attributes
	// mapping holds the table rows of this view in order, nil means every row.
	mapping    []int
	statistics map[*attribute.Attribute][]statistics.Statistics
}

// New creates a view exposing every attribute of t as a regular attribute.
func New(t table.ExampleTable) *ExampleSet {
	attributes := NewAttributes()
	for _, a := range t.Attributes() {
		attributes.AddRegular(a)
	}
	return NewWithAttributes(t, attributes)
}

func NewWithAttributes(t table.ExampleTable, attributes *Attributes) *ExampleSet {
	return &ExampleSet{
		table:      t,
		attributes: attributes,
		statistics: map[*attribute.Attribute][]statistics.Statistics{},
	}
}

func (s *ExampleSet) Table() table.ExampleTable {
	return s.table
}

func (s *ExampleSet) Attributes() *Attributes {
	return s.attributes
}

func (s *ExampleSet) Size() int {
	if s.mapping != nil {
		return len(s.mapping)
	}
	return s.table.Size()
}

// Row returns the physical row behind the i-th example of the view.
func (s *ExampleSet) Row(i int) table.DataRow {
	if s.mapping != nil {
		return s.table.Row(s.mapping[i])
	}
	return s.table.Row(i)
}

func (s *ExampleSet) Example(i int) *Example {
	return NewExample(s.Row(i), s.attributes)
}

// AddAttribute creates a new column in the physical table and exposes it as regular.
func (s *ExampleSet) AddAttribute(a *attribute.Attribute) {
	s.table.AddAttribute(a)
	s.attributes.AddRegular(a)
}

// Clone returns an independent view on the same physical table.
func (s *ExampleSet) Clone() *ExampleSet {
	clone := NewWithAttributes(s.table, s.attributes.Clone())
	if s.mapping != nil {
		clone.mapping = make([]int, len(s.mapping))
		copy(clone.mapping, s.mapping)
	}
	for a, strategies := range s.statistics {
		copied := make([]statistics.Statistics, len(strategies))
		for i, st := range strategies {
			copied[i] = st.Clone()
		}
		clone.statistics[a] = copied
	}
	return clone
}

// ExampleReader iterates the examples of a view.
type ExampleReader struct {
	set     *ExampleSet
	current int
}

func (s *ExampleSet) Iterator() *ExampleReader {
	return &ExampleReader{set: s}
}

func (r *ExampleReader) Next() (*Example, bool) {
	if r.current >= r.set.Size() {
		return nil, false
	}
	e := r.set.Example(r.current)
	r.current++
	return e, true
}

func (s *ExampleSet) rowIndices() []int {
	if s.mapping != nil {
		indices := make([]int, len(s.mapping))
		copy(indices, s.mapping)
		return indices
	}
	indices := make([]int, s.table.Size())
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// Shuffle returns a view of the same examples in random order.
func (s *ExampleSet) Shuffle(rnd *rand.Rand) *ExampleSet {
	indices := s.rowIndices()
	order := rnd.Perm(len(indices))
	shuffled := make([]int, len(indices))
	for i := range order {
		shuffled[i] = indices[order[i]]
	}
	clone := s.Clone()
	clone.mapping = shuffled
	return clone
}

// RandomSplit partitions the examples into disjoint views of the given sizes. Negative
// sizes, or sizes adding up to more than Size(), yield an error.
func (s *ExampleSet) RandomSplit(rnd *rand.Rand, sizes ...int) ([]*ExampleSet, error) {
	total := 0
	for _, size := range sizes {
		if size < 0 {
			return nil, errs.InvalidArgument("negative split size %d", size)
		}
		total += size
	}
	if total > s.Size() {
		return nil, errs.InvalidArgument("split sizes add up to %d, only %d examples", total, s.Size())
	}
	indices := s.rowIndices()
	rnd.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	splits := make([]*ExampleSet, len(sizes))
	idx := 0
	for i := range sizes {
		splitIndices := make([]int, sizes[i])
		for j := range splitIndices {
			splitIndices[j] = indices[idx]
			idx++
		}
		split := s.Clone()
		split.mapping = splitIndices
		splits[i] = split
	}
	return splits, nil
}

// RecalculateAttributeStatistics runs one pass over the examples for each attribute,
// every attribute of the view when none is given. Values are weighted by the weight
// attribute when the view has one.
func (s *ExampleSet) RecalculateAttributeStatistics(attributes ...*attribute.Attribute) {
	if len(attributes) == 0 {
		attributes = s.attributes.All()
	}
	weight := s.attributes.Weight()
	for _, a := range attributes {
		strategies, ok := s.statistics[a]
		if !ok {
			strategies = statistics.ForAttribute(a)
			s.statistics[a] = strategies
		}
		for _, st := range strategies {
			st.StartCounting(a)
		}
		for i := 0; i < s.Size(); i++ {
			row := s.Row(i)
			value := row.Get(a)
			w := 1.0
			if weight != nil {
				w = row.Get(weight)
			}
			for _, st := range strategies {
				st.Count(value, w)
			}
		}
	}
}

// Statistics returns a statistic computed by the last recalculation for a. Unknown names
// and attributes without statistics yield NaN.
func (s *ExampleSet) Statistics(a *attribute.Attribute, name, parameter string) float64 {
	return statistics.Lookup(s.statistics[a], a, name, parameter)
}

func (s *ExampleSet) String() string {
	return s.attributes.String()
}
