package attribute

// NominalMapping implements a bidirectional mapping between a nominal value and its index.
// Indices are assigned in the order values are first seen.
type NominalMapping struct {
	NameToIndex map[string]int
	IndexToName []string
}

func NewNominalMapping(values ...string) *NominalMapping {
	m := &NominalMapping{
		NameToIndex: map[string]int{},
	}
	for _, v := range values {
		m.MapString(v)
	}
	return m
}

// MapString returns the index of value, adding it to the mapping if needed.
func (m *NominalMapping) MapString(value string) int {
	index, ok := m.NameToIndex[value]
	if !ok {
		index = len(m.IndexToName)
		m.NameToIndex[value] = index
		m.IndexToName = append(m.IndexToName, value)
	}
	return index
}

func (m *NominalMapping) Index(value string) (int, bool) {
	index, ok := m.NameToIndex[value]
	return index, ok
}

func (m *NominalMapping) Value(index int) (string, bool) {
	if index < 0 || index >= len(m.IndexToName) {
		return "", false
	}
	return m.IndexToName[index], true
}

func (m *NominalMapping) Size() int {
	return len(m.IndexToName)
}

// Values returns a copy of the mapped values in index order.
func (m *NominalMapping) Values() []string {
	values := make([]string, len(m.IndexToName))
	copy(values, m.IndexToName)
	return values
}

func (m *NominalMapping) Clone() *NominalMapping {
	return NewNominalMapping(m.IndexToName...)
}
