package statistics

import (
	"math"

	"tabula/pkg/attribute"
)

var (
	_ Statistics = &UnknownStatistics{}
	_ Statistics = &NumericalStatistics{}
	_ Statistics = &NominalStatistics{}
	_ Statistics = &MinMaxStatistics{}
)

// UnknownStatistics counts missing values.
type UnknownStatistics struct {
	unknownCounter int
}

func NewUnknownStatistics() *UnknownStatistics {
	return &UnknownStatistics{}
}

func (s *UnknownStatistics) StartCounting(*attribute.Attribute) {
	s.unknownCounter = 0
}

func (s *UnknownStatistics) Count(value, _ float64) {
	if math.IsNaN(value) {
		s.unknownCounter++
	}
}

func (s *UnknownStatistics) Handles(name string) bool {
	return name == Unknown
}

func (s *UnknownStatistics) Get(a *attribute.Attribute, name, _ string) float64 {
	if !s.Handles(name) {
		return unsupported(a, name)
	}
	return float64(s.unknownCounter)
}

func (s *UnknownStatistics) Clone() Statistics {
	c := *s
	return &c
}

// NumericalStatistics accumulates sums for averages and variances.
type NumericalStatistics struct {
	sum              float64
	squaredSum       float64
	valueCounter     int
	weightedSum      float64
	squaredWeightSum float64
	totalWeight      float64
}

func NewNumericalStatistics() *NumericalStatistics {
	return &NumericalStatistics{}
}

func (s *NumericalStatistics) StartCounting(*attribute.Attribute) {
	*s = NumericalStatistics{}
}

func (s *NumericalStatistics) Count(value, weight float64) {
	if math.IsNaN(value) {
		return
	}
	if math.IsNaN(weight) {
		weight = 1
	}
	s.sum += value
	s.squaredSum += value * value
	s.valueCounter++
	s.weightedSum += weight * value
	s.squaredWeightSum += weight * value * value
	s.totalWeight += weight
}

func (s *NumericalStatistics) Handles(name string) bool {
	switch name {
	case Average, AverageWeighted, Variance, VarianceWeighted, Sum, SumWeighted:
		return true
	}
	return false
}

func (s *NumericalStatistics) Get(a *attribute.Attribute, name, _ string) float64 {
	count := float64(s.valueCounter)
	switch name {
	case Average:
		return s.sum / count
	case AverageWeighted:
		return s.weightedSum / s.totalWeight
	case Variance:
		mean := s.sum / count
		return nonNegative(s.squaredSum/count - mean*mean)
	case VarianceWeighted:
		mean := s.weightedSum / s.totalWeight
		return nonNegative(s.squaredWeightSum/s.totalWeight - mean*mean)
	case Sum:
		return s.sum
	case SumWeighted:
		return s.weightedSum
	}
	return unsupported(a, name)
}

// nonNegative clamps rounding noise below zero. NaN passes through.
func nonNegative(variance float64) float64 {
	if variance < 0 {
		return 0
	}
	return variance
}

func (s *NumericalStatistics) Clone() Statistics {
	c := *s
	return &c
}

// DefaultNominalCapacity is used when the counted attribute carries no mapping.
const DefaultNominalCapacity = 2

// NominalStatistics counts the frequency of every nominal index.
type NominalStatistics struct {
	scores    []float64
	total     float64
	mode      int
	leastMode int
}

func NewNominalStatistics() *NominalStatistics {
	return &NominalStatistics{mode: -1, leastMode: -1}
}

func (s *NominalStatistics) StartCounting(a *attribute.Attribute) {
	capacity := DefaultNominalCapacity
	if a != nil && a.Mapping() != nil && a.Mapping().Size() > 0 {
		capacity = a.Mapping().Size()
	}
	s.scores = make([]float64, capacity)
	s.total = 0
	s.mode = -1
	s.leastMode = -1
}

func (s *NominalStatistics) Count(value, weight float64) {
	if math.IsNaN(value) || value < 0 {
		return
	}
	if math.IsNaN(weight) {
		weight = 1
	}
	index := int(value)
	if index >= len(s.scores) {
		capacity := 2 * len(s.scores)
		if capacity <= index {
			capacity = index + 1
		}
		grown := make([]float64, capacity)
		copy(grown, s.scores)
		s.scores = grown
	}
	s.scores[index] += weight
	s.total += weight
	s.mode = -1
	s.leastMode = -1
}

func (s *NominalStatistics) Handles(name string) bool {
	switch name {
	case Mode, Least, Count:
		return true
	}
	return false
}

func (s *NominalStatistics) Get(a *attribute.Attribute, name, parameter string) float64 {
	switch name {
	case Mode:
		if s.total == 0 {
			return math.NaN()
		}
		if s.mode == -1 {
			maxScore := -1.0
			for i, score := range s.scores {
				if score > maxScore {
					maxScore = score
					s.mode = i
				}
			}
		}
		return float64(s.mode)
	case Least:
		if s.total == 0 {
			return math.NaN()
		}
		if s.leastMode == -1 {
			minScore := math.Inf(1)
			for i, score := range s.scores {
				if score < minScore {
					minScore = score
					s.leastMode = i
				}
			}
		}
		return float64(s.leastMode)
	case Count:
		index, ok := s.indexOf(a, parameter)
		if !ok {
			return math.NaN()
		}
		if index >= len(s.scores) {
			return 0
		}
		return s.scores[index]
	}
	return unsupported(a, name)
}

// indexOf resolves a value name through the attribute mapping.
func (s *NominalStatistics) indexOf(a *attribute.Attribute, value string) (int, bool) {
	if a == nil || a.Mapping() == nil {
		return 0, false
	}
	return a.Mapping().Index(value)
}

// CountOf returns the frequency of a nominal index.
func (s *NominalStatistics) CountOf(index int) float64 {
	if index < 0 || index >= len(s.scores) {
		return 0
	}
	return s.scores[index]
}

func (s *NominalStatistics) Clone() Statistics {
	c := *s
	c.scores = make([]float64, len(s.scores))
	copy(c.scores, s.scores)
	return &c
}

// MinMaxStatistics tracks the range of the non missing values.
type MinMaxStatistics struct {
	minimum float64
	maximum float64
}

func NewMinMaxStatistics() *MinMaxStatistics {
	return &MinMaxStatistics{minimum: math.Inf(1), maximum: math.Inf(-1)}
}

func (s *MinMaxStatistics) StartCounting(*attribute.Attribute) {
	s.minimum = math.Inf(1)
	s.maximum = math.Inf(-1)
}

func (s *MinMaxStatistics) Count(value, _ float64) {
	if math.IsNaN(value) {
		return
	}
	if value < s.minimum {
		s.minimum = value
	}
	if value > s.maximum {
		s.maximum = value
	}
}

func (s *MinMaxStatistics) Handles(name string) bool {
	return name == Minimum || name == Maximum
}

func (s *MinMaxStatistics) Get(a *attribute.Attribute, name, _ string) float64 {
	switch name {
	case Minimum:
		return s.minimum
	case Maximum:
		return s.maximum
	}
	return unsupported(a, name)
}

func (s *MinMaxStatistics) Clone() Statistics {
	c := *s
	return &c
}
