// Package weights holds per attribute weight vectors as produced by feature weighting
// and selection: an ordered name to weight mapping with sorting, normalization,
// averaging over repeated runs and a small XML file format.
package weights

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// SortType is the order in which SortedNames returns the attribute names.
type SortType int

const (
	NoSorting SortType = iota
	Increasing
	Decreasing
)

// WeightType selects how weights are compared when sorting.
type WeightType int

const (
	OriginalWeights WeightType = iota
	AbsoluteWeights
)

// AttributeWeight is one entry of the vector. Besides the current weight it accumulates
// the weights of averaged runs.
type AttributeWeight struct {
	Name          string
	Weight        float64
	meanSum       float64
	meanSquareSum float64
	averageCount  int
}

func newAttributeWeight(name string, weight float64) *AttributeWeight {
	return &AttributeWeight{
		Name:          name,
		Weight:        weight,
		meanSum:       weight,
		meanSquareSum: weight * weight,
		averageCount:  1,
	}
}

// AttributeWeights keeps its entries in insertion order.
type AttributeWeights struct {
	SortType   SortType
	WeightType WeightType
	entries    []*AttributeWeight
	index      map[string]int
}

func New() *AttributeWeights {
	return &AttributeWeights{index: map[string]int{}}
}

// SetWeight sets the weight of name. A NaN weight deletes the entry; a new name is
// appended and an existing name keeps its position.
func (w *AttributeWeights) SetWeight(name string, weight float64) {
	i, ok := w.index[name]
	if math.IsNaN(weight) {
		if ok {
			w.removeAt(i)
		}
		return
	}
	if ok {
		w.entries[i] = newAttributeWeight(name, weight)
		return
	}
	w.index[name] = len(w.entries)
	w.entries = append(w.entries, newAttributeWeight(name, weight))
}

func (w *AttributeWeights) removeAt(i int) {
	delete(w.index, w.entries[i].Name)
	copy(w.entries[i:], w.entries[i+1:])
	w.entries[len(w.entries)-1] = nil
	w.entries = w.entries[:len(w.entries)-1]
	for j := i; j < len(w.entries); j++ {
		w.index[w.entries[j].Name] = j
	}
}

// Weight returns the weight of name or NaN if it has none.
func (w *AttributeWeights) Weight(name string) float64 {
	i, ok := w.index[name]
	if !ok {
		return math.NaN()
	}
	return w.entries[i].Weight
}

func (w *AttributeWeights) Size() int {
	return len(w.entries)
}

// Names returns the attribute names in insertion order.
func (w *AttributeWeights) Names() []string {
	names := make([]string, len(w.entries))
	for i, e := range w.entries {
		names[i] = e.Name
	}
	return names
}

// SortByWeight sorts names in place by their weights. Names without a weight are moved to
// the end. The weights themselves are not changed.
func (w *AttributeWeights) SortByWeight(names []string, direction SortType, weightType WeightType) {
	if direction == NoSorting {
		return
	}
	key := func(name string) float64 {
		v := w.Weight(name)
		if weightType == AbsoluteWeights {
			v = math.Abs(v)
		}
		return v
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := key(names[i]), key(names[j])
		switch {
		case math.IsNaN(a):
			return false
		case math.IsNaN(b):
			return true
		case direction == Increasing:
			return a < b
		default:
			return a > b
		}
	})
}

// SortedNames returns all names ordered by the vector's SortType and WeightType.
func (w *AttributeWeights) SortedNames() []string {
	names := w.Names()
	w.SortByWeight(names, w.SortType, w.WeightType)
	return names
}

// Normalize maps the absolute weights linearly onto [0, 1]. When all absolute weights
// are equal every weight becomes 1.
func (w *AttributeWeights) Normalize() {
	if len(w.entries) == 0 {
		return
	}
	absolute := make([]float64, len(w.entries))
	for i, e := range w.entries {
		absolute[i] = math.Abs(e.Weight)
	}
	minWeight := floats.Min(absolute)
	diff := floats.Max(absolute) - minWeight
	for i, e := range w.entries {
		if diff == 0 {
			e.Weight = 1
		} else {
			e.Weight = (absolute[i] - minWeight) / diff
		}
	}
}

// BuildAverage adds the weights of another run. Every entry accumulates the weight it
// has in other; MeanWeight and StandardDeviation report over all accumulated runs.
// Entries missing from this vector are appended.
func (w *AttributeWeights) BuildAverage(other *AttributeWeights) {
	for _, o := range other.entries {
		i, ok := w.index[o.Name]
		if !ok {
			w.index[o.Name] = len(w.entries)
			w.entries = append(w.entries, newAttributeWeight(o.Name, o.Weight))
			continue
		}
		e := w.entries[i]
		e.meanSum += o.Weight
		e.meanSquareSum += o.Weight * o.Weight
		e.averageCount++
		e.Weight = e.meanSum / float64(e.averageCount)
	}
}

// MeanWeight is the mean over averaged runs, NaN for unknown names.
func (w *AttributeWeights) MeanWeight(name string) float64 {
	i, ok := w.index[name]
	if !ok {
		return math.NaN()
	}
	e := w.entries[i]
	return e.meanSum / float64(e.averageCount)
}

// StandardDeviation is the population standard deviation over averaged runs.
func (w *AttributeWeights) StandardDeviation(name string) float64 {
	i, ok := w.index[name]
	if !ok {
		return math.NaN()
	}
	e := w.entries[i]
	n := float64(e.averageCount)
	mean := e.meanSum / n
	variance := e.meanSquareSum/n - mean*mean
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Clone returns a deep copy.
func (w *AttributeWeights) Clone() *AttributeWeights {
	clone := &AttributeWeights{
		SortType:   w.SortType,
		WeightType: w.WeightType,
		entries:    make([]*AttributeWeight, len(w.entries)),
		index:      make(map[string]int, len(w.index)),
	}
	for i, e := range w.entries {
		c := *e
		clone.entries[i] = &c
		clone.index[e.Name] = i
	}
	return clone
}

func (w *AttributeWeights) String() string {
	var b strings.Builder
	b.WriteString("AttributeWeights:\n")
	for _, name := range w.SortedNames() {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(strconv.FormatFloat(w.Weight(name), 'g', -1, 64))
		b.WriteString("\n")
	}
	return b.String()
}
