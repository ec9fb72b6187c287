package exampleset

import (
	"strings"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
)

// Attributes is the ordered role collection of a view. It is the only authority on which
// attributes a view exposes and in which role. Roles keep their insertion order.
//
// Size, SpecialSize and AllSize walk the whole collection; do not call them per row.
type Attributes struct {
	roles []*Role
}

func NewAttributes() *Attributes {
	return &Attributes{}
}

// Clone copies every role. The attributes themselves are shared with the original.
func (a *Attributes) Clone() *Attributes {
	clone := &Attributes{roles: make([]*Role, len(a.roles))}
	for i, r := range a.roles {
		clone.roles[i] = r.Clone()
	}
	return clone
}

func (a *Attributes) Add(r *Role) {
	a.roles = append(a.roles, r)
}

func (a *Attributes) AddRegular(attr *attribute.Attribute) {
	a.Add(NewRole(attr))
}

// Remove deletes the given role value and reports whether it was present.
func (a *Attributes) Remove(r *Role) bool {
	for i, candidate := range a.roles {
		if candidate == r {
			a.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveAttribute deletes the role currently holding an attribute of the same name.
func (a *Attributes) RemoveAttribute(attr *attribute.Attribute) bool {
	r := a.Role(attr)
	if r == nil {
		return false
	}
	return a.Remove(r)
}

func (a *Attributes) removeAt(i int) {
	copy(a.roles[i:], a.roles[i+1:])
	a.roles[len(a.roles)-1] = nil
	a.roles = a.roles[:len(a.roles)-1]
}

// ClearRegular removes every regular role.
func (a *Attributes) ClearRegular() {
	a.clear(Regular)
}

// ClearSpecial removes every special role.
func (a *Attributes) ClearSpecial() {
	a.clear(Special)
}

func (a *Attributes) clear(f Filter) {
	victims := make([]*Role, 0, len(a.roles))
	for _, r := range a.roles {
		if f.matches(r) {
			victims = append(victims, r)
		}
	}
	for _, r := range victims {
		a.Remove(r)
	}
}

// Iterator returns an iterator over the regular attributes.
func (a *Attributes) Iterator() *AttributeIterator {
	return &AttributeIterator{roles: newRoleIterator(a, Regular)}
}

// AllAttributes returns an iterator over regular and special attributes.
func (a *Attributes) AllAttributes() *AttributeIterator {
	return &AttributeIterator{roles: newRoleIterator(a, All)}
}

func (a *Attributes) RegularRoles() *RoleIterator {
	return newRoleIterator(a, Regular)
}

func (a *Attributes) SpecialRoles() *RoleIterator {
	return newRoleIterator(a, Special)
}

func (a *Attributes) AllRoles() *RoleIterator {
	return newRoleIterator(a, All)
}

// Regular returns a snapshot of the regular attributes in order.
func (a *Attributes) Regular() []*attribute.Attribute {
	return a.attributes(Regular)
}

// All returns a snapshot of every attribute in order.
func (a *Attributes) All() []*attribute.Attribute {
	return a.attributes(All)
}

// Specials returns a snapshot of the special roles in order.
func (a *Attributes) Specials() []*Role {
	result := make([]*Role, 0)
	for _, r := range a.roles {
		if r.IsSpecial() {
			result = append(result, r)
		}
	}
	return result
}

func (a *Attributes) attributes(f Filter) []*attribute.Attribute {
	result := make([]*attribute.Attribute, 0, len(a.roles))
	for _, r := range a.roles {
		if f.matches(r) {
			result = append(result, r.Attribute())
		}
	}
	return result
}

// RegularNames returns the names of the regular attributes in order.
func (a *Attributes) RegularNames() []string {
	regular := a.Regular()
	names := make([]string, len(regular))
	for i, attr := range regular {
		names[i] = attr.Name()
	}
	return names
}

// Size is the number of regular attributes.
func (a *Attributes) Size() int {
	return a.count(Regular)
}

func (a *Attributes) SpecialSize() int {
	return a.count(Special)
}

func (a *Attributes) AllSize() int {
	return a.count(All)
}

func (a *Attributes) count(f Filter) int {
	n := 0
	for _, r := range a.roles {
		if f.matches(r) {
			n++
		}
	}
	return n
}

// Contains reports whether an attribute with the same name is present in any role.
func (a *Attributes) Contains(attr *attribute.Attribute) bool {
	return a.Role(attr) != nil
}

// Role finds the role of an attribute by name, regular roles first.
func (a *Attributes) Role(attr *attribute.Attribute) *Role {
	if attr == nil {
		return nil
	}
	return a.RoleByName(attr.Name())
}

// RoleByName finds a role by attribute name, regular roles first.
func (a *Attributes) RoleByName(name string) *Role {
	if r := a.find(Regular, func(r *Role) bool { return r.Attribute().Name() == name }); r != nil {
		return r
	}
	return a.find(Special, func(r *Role) bool { return r.Attribute().Name() == name })
}

// RoleBySpecialName finds the role holding a special name.
func (a *Attributes) RoleBySpecialName(specialName string) *Role {
	if specialName == "" {
		return nil
	}
	return a.find(Special, func(r *Role) bool { return r.SpecialName() == specialName })
}

func (a *Attributes) find(f Filter, match func(*Role) bool) *Role {
	for _, r := range a.roles {
		if f.matches(r) && match(r) {
			return r
		}
	}
	return nil
}

// Get looks a name up as a regular attribute name, then as a special name and finally as
// the attribute name of a special role. It returns nil when nothing matches.
func (a *Attributes) Get(name string) *attribute.Attribute {
	if attr := a.GetRegular(name); attr != nil {
		return attr
	}
	if attr := a.GetSpecial(name); attr != nil {
		return attr
	}
	r := a.find(Special, func(r *Role) bool { return r.Attribute().Name() == name })
	if r == nil {
		return nil
	}
	return r.Attribute()
}

func (a *Attributes) GetRegular(name string) *attribute.Attribute {
	r := a.find(Regular, func(r *Role) bool { return r.Attribute().Name() == name })
	if r == nil {
		return nil
	}
	return r.Attribute()
}

// GetSpecial returns the attribute holding a special name or nil.
func (a *Attributes) GetSpecial(specialName string) *attribute.Attribute {
	r := a.RoleBySpecialName(specialName)
	if r == nil {
		return nil
	}
	return r.Attribute()
}

// SetSpecialAttribute makes attr the holder of specialName. A previous holder of the name
// is removed from the collection, not demoted to a regular attribute. Any existing role
// of attr is replaced by the new special role, which is appended at the end. A nil attr
// only clears the special name.
func (a *Attributes) SetSpecialAttribute(attr *attribute.Attribute, specialName string) {
	if previous := a.RoleBySpecialName(specialName); previous != nil {
		a.Remove(previous)
	}
	if attr == nil {
		return
	}
	a.RemoveAttribute(attr)
	a.Add(NewSpecialRole(attr, specialName))
}

// Replace rebinds the role holding old to hold replacement, keeping its position and
// special name. A nil replacement is rejected.
func (a *Attributes) Replace(old, replacement *attribute.Attribute) (*attribute.Attribute, error) {
	if replacement == nil {
		return nil, errs.InvalidArgument("cannot replace attribute with nil")
	}
	r := a.Role(old)
	if r == nil {
		name := "<nil>"
		if old != nil {
			name = old.Name()
		}
		return nil, errs.Lookup("cannot replace attribute %s: not present", name)
	}
	r.SetAttribute(replacement)
	return replacement, nil
}

func (a *Attributes) Label() *attribute.Attribute {
	return a.GetSpecial(Label)
}

func (a *Attributes) SetLabel(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Label)
}

func (a *Attributes) PredictedLabel() *attribute.Attribute {
	return a.GetSpecial(Prediction)
}

func (a *Attributes) SetPredictedLabel(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Prediction)
}

func (a *Attributes) ID() *attribute.Attribute {
	return a.GetSpecial(ID)
}

func (a *Attributes) SetID(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, ID)
}

func (a *Attributes) Weight() *attribute.Attribute {
	return a.GetSpecial(Weight)
}

func (a *Attributes) SetWeight(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Weight)
}

func (a *Attributes) Cluster() *attribute.Attribute {
	return a.GetSpecial(Cluster)
}

func (a *Attributes) SetCluster(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Cluster)
}

func (a *Attributes) Outlier() *attribute.Attribute {
	return a.GetSpecial(Outlier)
}

func (a *Attributes) SetOutlier(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Outlier)
}

func (a *Attributes) Cost() *attribute.Attribute {
	return a.GetSpecial(Cost)
}

func (a *Attributes) SetCost(attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, Cost)
}

// Confidence returns the attribute holding the confidence for a class value.
func (a *Attributes) Confidence(classValue string) *attribute.Attribute {
	return a.GetSpecial(ConfidenceName(classValue))
}

func (a *Attributes) SetConfidence(classValue string, attr *attribute.Attribute) {
	a.SetSpecialAttribute(attr, ConfidenceName(classValue))
}

func (a *Attributes) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, r := range a.roles {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteString("]")
	return b.String()
}
