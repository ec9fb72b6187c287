// Package config reads the YAML file describing how the columns of a CSV file are typed
// and which of them hold special roles:
//
//	label: play
//	weight: w
//	special:
//	  cluster: segment
//	nominal: [outlook, windy, play]
//	dates: [day]
package config

import (
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"tabula/pkg/errs"
	"tabula/pkg/exampleset"
	"tabula/pkg/table"
)

type Roles struct {
	Label      string `yaml:"label,omitempty"`
	Prediction string `yaml:"prediction,omitempty"`
	ID         string `yaml:"id,omitempty"`
	Weight     string `yaml:"weight,omitempty"`

	// Special maps further special names, such as cluster or cost, to column names.
	Special map[string]string `yaml:"special,omitempty"`
	Nominal []string          `yaml:"nominal,omitempty"`
	Dates   []string          `yaml:"dates,omitempty"`
}

// Load reads a roles file. An empty path yields an empty configuration.
func Load(path string) (*Roles, error) {
	if path == "" {
		return &Roles{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading roles file %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Roles, error) {
	var roles Roles
	if err := yaml.Unmarshal(data, &roles); err != nil {
		return nil, errs.Malformed("cannot parse roles: %s", err)
	}
	for name, column := range roles.Special {
		if name == "" || column == "" {
			return nil, errs.Malformed("special role %q needs a name and a column", name)
		}
	}
	return &roles, nil
}

// DataParameters returns the CSV parameters typing the configured columns.
func (r *Roles) DataParameters(dataFile string) table.DataParameters {
	return table.DataParameters{
		DataFile:       dataFile,
		NominalColumns: table.NewSet(r.Nominal...),
		DateColumns:    table.NewSet(r.Dates...),
	}
}

// assignments lists special name and column pairs, the named roles first and the rest
// ordered by special name.
func (r *Roles) assignments() [][2]string {
	var result [][2]string
	for _, a := range [][2]string{
		{exampleset.Label, r.Label},
		{exampleset.Prediction, r.Prediction},
		{exampleset.ID, r.ID},
		{exampleset.Weight, r.Weight},
	} {
		if a[1] != "" {
			result = append(result, a)
		}
	}
	names := make([]string, 0, len(r.Special))
	for name := range r.Special {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result = append(result, [2]string{name, r.Special[name]})
	}
	return result
}

// Apply moves the configured columns of es into their special roles.
func (r *Roles) Apply(es *exampleset.ExampleSet) error {
	attributes := es.Attributes()
	for _, a := range r.assignments() {
		attr := attributes.Get(a[1])
		if attr == nil {
			return errs.Lookup("column %s for role %s does not exist", a[1], a[0])
		}
		attributes.SetSpecialAttribute(attr, a[0])
	}
	return nil
}
