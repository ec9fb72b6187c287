package exampleset

import (
	"tabula/pkg/attribute"
)

// Reserved special role names.
const (
	Label            = "label"
	Prediction       = "prediction"
	ID               = "id"
	Weight           = "weight"
	Cluster          = "cluster"
	Outlier          = "outlier"
	Cost             = "cost"
	ConfidencePrefix = "confidence_"
)

// ConfidenceName is the special name holding the confidence for one class value.
func ConfidenceName(classValue string) string {
	return ConfidencePrefix + classValue
}

// Role binds an attribute to a view, either as a regular attribute or under a special name.
// The attribute is referenced, not owned; its values live in the physical table.
type Role struct {
	attribute   *attribute.Attribute
	specialName string
}

func NewRole(a *attribute.Attribute) *Role {
	return &Role{attribute: a}
}

func NewSpecialRole(a *attribute.Attribute, specialName string) *Role {
	return &Role{attribute: a, specialName: specialName}
}

func (r *Role) Attribute() *attribute.Attribute {
	return r.attribute
}

func (r *Role) SetAttribute(a *attribute.Attribute) {
	r.attribute = a
}

func (r *Role) IsSpecial() bool {
	return r.specialName != ""
}

// SpecialName returns the special name, empty for regular roles.
func (r *Role) SpecialName() string {
	return r.specialName
}

// SetSpecial marks the role special. An empty name makes it regular again.
func (r *Role) SetSpecial(name string) {
	r.specialName = name
}

func (r *Role) ChangeToRegular() {
	r.specialName = ""
}

// Clone copies the role metadata and shares the attribute.
func (r *Role) Clone() *Role {
	return &Role{attribute: r.attribute, specialName: r.specialName}
}

func (r *Role) String() string {
	if r.IsSpecial() {
		return r.specialName + " := " + r.attribute.Name()
	}
	return r.attribute.Name()
}
