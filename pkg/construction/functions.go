package construction

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"tabula/pkg/errs"
)

// ConstantMarker starts the name of the zero argument constant generator, "const[2.5]()".
// Attribute names may not start with it.
const ConstantMarker = "const["

// Variadic marks a function accepting one or more arguments.
const Variadic = -1

// Function computes the value of a generated attribute from its argument values.
type Function struct {
	Name  string
	Arity int
	apply func(args []float64) float64
}

func (f Function) Apply(args []float64) float64 {
	return f.apply(args)
}

func (f Function) accepts(n int) bool {
	if f.Arity == Variadic {
		return n > 0
	}
	return f.Arity == n
}

func binary(name string, op func(a, b float64) float64) Function {
	return Function{Name: name, Arity: 2, apply: func(args []float64) float64 { return op(args[0], args[1]) }}
}

func unary(name string, op func(float64) float64) Function {
	return Function{Name: name, Arity: 1, apply: func(args []float64) float64 { return op(args[0]) }}
}

var functions = map[string]Function{}

func register(f Function) {
	functions[f.Name] = f
}

func init() {
	register(binary("+", func(a, b float64) float64 { return a + b }))
	register(binary("-", func(a, b float64) float64 { return a - b }))
	register(binary("*", func(a, b float64) float64 { return a * b }))
	register(binary("/", func(a, b float64) float64 { return a / b }))
	register(binary("^", math.Pow))
	register(unary("abs", math.Abs))
	register(unary("sqrt", math.Sqrt))
	register(unary("exp", math.Exp))
	register(unary("log", math.Log))
	register(unary("sin", math.Sin))
	register(unary("cos", math.Cos))
	register(Function{Name: "min", Arity: Variadic, apply: withoutMissing(floats.Min)})
	register(Function{Name: "max", Arity: Variadic, apply: withoutMissing(floats.Max)})
}

// withoutMissing propagates a missing argument instead of letting it win the comparison.
func withoutMissing(f func([]float64) float64) func([]float64) float64 {
	return func(args []float64) float64 {
		if floats.HasNaN(args) {
			return math.NaN()
		}
		return f(args)
	}
}

// FunctionNames lists the registered functions, constant generator excluded.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupFunction resolves a function name, including the "const[value]" form.
func LookupFunction(name string) (Function, error) {
	if strings.HasPrefix(name, ConstantMarker) {
		return constant(name)
	}
	f, ok := functions[name]
	if !ok {
		return Function{}, errs.Malformed("unknown function %q", name)
	}
	return f, nil
}

func constant(name string) (Function, error) {
	if !strings.HasSuffix(name, "]") {
		return Function{}, errs.Malformed("constant %q is not closed by ']'", name)
	}
	text := name[len(ConstantMarker) : len(name)-1]
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return Function{}, errs.Malformed("constant %q is not a number", name)
	}
	return Function{Name: name, Arity: 0, apply: func([]float64) float64 { return value }}, nil
}
