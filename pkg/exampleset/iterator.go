package exampleset

import (
	"tabula/pkg/attribute"
)

// Filter selects which roles an iterator yields.
type Filter int

const (
	Regular Filter = iota
	Special
	All
)

func (f Filter) matches(r *Role) bool {
	switch f {
	case Regular:
		return !r.IsSpecial()
	case Special:
		return r.IsSpecial()
	default:
		return true
	}
}

func (f Filter) String() string {
	switch f {
	case Regular:
		return "regular"
	case Special:
		return "special"
	default:
		return "all"
	}
}

// RoleIterator walks the roles of an Attributes collection that match a filter.
//
// The iterator reads the live collection. Changing the collection while iterating other
// than through Remove gives undefined results.
type RoleIterator struct {
	attributes *Attributes
	filter     Filter
	// position is the next index to inspect.
	position int
	// found is the index of the match located by HasNext, -1 if none.
	found  int
	peeked bool
	// last is the index of the role returned by the latest Next, -1 if none.
	last int
}

func newRoleIterator(attributes *Attributes, filter Filter) *RoleIterator {
	return &RoleIterator{attributes: attributes, filter: filter, found: -1, last: -1}
}

// HasNext reports whether another matching role exists. Calling it repeatedly without
// Next does not advance the iterator.
func (it *RoleIterator) HasNext() bool {
	if it.peeked {
		return it.found >= 0
	}
	it.peeked = true
	it.found = -1
	roles := it.attributes.roles
	for it.position < len(roles) {
		index := it.position
		it.position++
		if it.filter.matches(roles[index]) {
			it.found = index
			return true
		}
	}
	return false
}

// Next returns the next matching role or nil when the iteration is exhausted.
func (it *RoleIterator) Next() *Role {
	if !it.HasNext() {
		return nil
	}
	it.peeked = false
	it.last = it.found
	it.found = -1
	return it.attributes.roles[it.last]
}

// Remove deletes the role returned by the latest Next from the collection.
func (it *RoleIterator) Remove() bool {
	if it.last < 0 {
		return false
	}
	it.attributes.removeAt(it.last)
	it.position = it.last
	it.last = -1
	it.found = -1
	it.peeked = false
	return true
}

// AttributeIterator yields the attributes of the roles matching a filter.
type AttributeIterator struct {
	roles *RoleIterator
}

func (it *AttributeIterator) HasNext() bool {
	return it.roles.HasNext()
}

// Next returns the next attribute or nil when the iteration is exhausted.
func (it *AttributeIterator) Next() *attribute.Attribute {
	r := it.roles.Next()
	if r == nil {
		return nil
	}
	return r.Attribute()
}

// Remove deletes the role of the attribute returned by the latest Next.
func (it *AttributeIterator) Remove() bool {
	return it.roles.Remove()
}
