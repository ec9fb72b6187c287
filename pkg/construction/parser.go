package construction

import (
	"strings"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
)

// Finder resolves attributes that already exist, usually the physical table.
type Finder interface {
	FindAttribute(name string) *attribute.Attribute
}

// Result is the outcome of parsing a construction text.
type Result struct {
	// Descriptions holds one tree per top level term, in input order.
	Descriptions []*Description
	// Generated holds the function nodes whose attributes do not exist yet. Arguments
	// precede the nodes using them.
	Generated    []*Description
}

// Attributes returns the attributes that have to be generated.
func (r *Result) Attributes() []*attribute.Attribute {
	result := make([]*attribute.Attribute, len(r.Generated))
	for i, d := range r.Generated {
		result[i] = d.Source()
	}
	return result
}

type parser struct {
	finder    Finder
	generated map[string]*Description
	result    *Result
}

// Parse reads a comma separated list of attribute names and function terms such as
// "a, +(a, b), const[2]()". Names are looked up with finder, which may be nil; unknown
// names become new numerical attributes. Names cannot contain commas or parentheses.
func Parse(text string, finder Finder) (*Result, error) {
	p := &parser{
		finder:    finder,
		generated: map[string]*Description{},
		result:    &Result{},
	}
	terms, err := splitTopLevel(text)
	if err != nil {
		return nil, err
	}
	for _, term := range terms {
		d, err := p.parseTerm(term)
		if err != nil {
			return nil, err
		}
		p.result.Descriptions = append(p.result.Descriptions, d)
	}
	return p.result, nil
}

// splitTopLevel splits text at the commas outside of parentheses.
func splitTopLevel(text string) ([]string, error) {
	var terms []string
	depth, start := 0, 0
	for i, c := range text {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errs.Malformed("unbalanced ')' at position %d in %q", i, text)
			}
		case ',':
			if depth == 0 {
				terms = append(terms, text[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errs.Malformed("missing ')' in %q", text)
	}
	return append(terms, text[start:]), nil
}

func (p *parser) parseTerm(term string) (*Description, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errs.Malformed("empty term")
	}
	open := strings.IndexByte(term, '(')
	if open < 0 {
		return p.parseLeaf(term)
	}
	if term[len(term)-1] != ')' {
		return nil, errs.Malformed("unexpected text after ')' in %q", term)
	}
	name := strings.TrimSpace(term[:open])
	if name == "" {
		return nil, errs.Malformed("missing function name in %q", term)
	}
	function, err := LookupFunction(name)
	if err != nil {
		return nil, err
	}

	var arguments []*Description
	if inner := term[open+1 : len(term)-1]; strings.TrimSpace(inner) != "" {
		terms, err := splitTopLevel(inner)
		if err != nil {
			return nil, err
		}
		for _, t := range terms {
			arg, err := p.parseTerm(t)
			if err != nil {
				return nil, err
			}
			arguments = append(arguments, arg)
		}
	}
	if !function.accepts(len(arguments)) {
		return nil, errs.Malformed("function %s does not take %d arguments", name, len(arguments))
	}
	return p.functionNode(name, arguments), nil
}

func (p *parser) parseLeaf(name string) (*Description, error) {
	if strings.ContainsRune(name, ')') {
		return nil, errs.Malformed("unbalanced ')' in %q", name)
	}
	if strings.HasPrefix(name, ConstantMarker) {
		return nil, errs.Malformed("attribute name %q starts with the reserved %q", name, ConstantMarker)
	}
	if a := p.find(name); a != nil {
		return NewLeaf(a), nil
	}
	return NewLeaf(attribute.NewNumerical(name)), nil
}

func (p *parser) find(name string) *attribute.Attribute {
	if p.finder == nil {
		return nil
	}
	return p.finder.FindAttribute(name)
}

// functionNode reuses attributes already present or generated earlier in the same text.
func (p *parser) functionNode(function string, arguments []*Description) *Description {
	name := New(nil, function, arguments...).Description(false)
	if d, ok := p.generated[name]; ok {
		return New(d.Source(), function, arguments...)
	}
	if a := p.find(name); a != nil {
		return New(a, function, arguments...)
	}
	d := New(NewGeneratedAttribute(function, arguments), function, arguments...)
	p.generated[name] = d
	p.result.Generated = append(p.result.Generated, d)
	return d
}

// NewGeneratedAttribute creates the real valued attribute holding function(arguments).
// Its name and construction are the prefix rendering of the tree.
func NewGeneratedAttribute(function string, arguments []*Description) *attribute.Attribute {
	name := New(nil, function, arguments...).Description(false)
	a := attribute.New(name, attribute.Real)
	a.SetConstruction(name)
	return a
}
