package expr

import (
	"strings"
)

// BinaryOp compares two values and returns a boolean result.
type BinaryOp func(left, right any) bool

// Evaluator evaluates boolean expressions with optional custom operators.
type Evaluator struct {
	customOps map[string]BinaryOp
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOperator registers a custom binary operator.
// The name should not conflict with built-in operators.
//
// Example:
//
//	ev := expr.New(expr.WithOperator("startswith", func(l, r any) bool {
//	    return strings.HasPrefix(fmt.Sprint(l), fmt.Sprint(r))
//	}))
func WithOperator(name string, fn BinaryOp) Option {
	return func(e *Evaluator) {
		if e.customOps == nil {
			e.customOps = make(map[string]BinaryOp)
		}
		e.customOps[name] = fn
	}
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval evaluates expression against vars using the default evaluator.
func Eval(expression string, vars map[string]any) (bool, error) {
	return New().Evaluate(expression, vars)
}

// builtin operators, longest first so partial matches never win.
var builtinOps = []struct {
	op      string
	compare BinaryOp
}{
	{"==", func(l, r any) bool { return Text(l) == Text(r) }},
	{"!=", func(l, r any) bool { return Text(l) != Text(r) }},
	{">=", func(l, r any) bool { return ToFloat64(l) >= ToFloat64(r) }},
	{"<=", func(l, r any) bool { return ToFloat64(l) <= ToFloat64(r) }},
	{">", func(l, r any) bool { return ToFloat64(l) > ToFloat64(r) }},
	{"<", func(l, r any) bool { return ToFloat64(l) < ToFloat64(r) }},
	{" contains ", func(l, r any) bool { return strings.Contains(Text(l), Text(r)) }},
}

// Evaluate evaluates a boolean expression against the provided variables.
//
// Supported forms, in precedence order:
//   - "not <expr>" and "!<expr>" negation
//   - "<expr> and <expr>", "<expr> or <expr>"
//   - binary comparisons: ==, !=, <, >, <=, >=, contains, custom operators
//   - a bare value, which is truthy-tested
//
// Operands resolve through Resolve: quoted strings and number/bool literals
// are taken as written, bare identifiers are looked up in vars and fall back
// to their literal text.
func (e *Evaluator) Evaluate(expression string, vars map[string]any) (bool, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return false, nil
	}

	if inner, ok := strings.CutPrefix(expression, "not "); ok {
		result, err := e.Evaluate(inner, vars)
		return !result, err
	}
	if inner, ok := strings.CutPrefix(expression, "!"); ok {
		result, err := e.Evaluate(inner, vars)
		return !result, err
	}

	// Short-circuit on the first " and " / " or ", left associative.
	if left, right, ok := strings.Cut(expression, " and "); ok {
		return e.evalPair(left, right, vars, func(l, r bool) bool { return l && r })
	}
	if left, right, ok := strings.Cut(expression, " or "); ok {
		return e.evalPair(left, right, vars, func(l, r bool) bool { return l || r })
	}

	for _, b := range builtinOps {
		if left, right, ok := strings.Cut(expression, b.op); ok {
			l := Resolve(strings.TrimSpace(left), vars)
			r := Resolve(strings.TrimSpace(right), vars)
			return b.compare(l, r), nil
		}
	}

	// Custom operators are word-delimited.
	for name, fn := range e.customOps {
		if left, right, ok := strings.Cut(expression, " "+name+" "); ok {
			l := Resolve(strings.TrimSpace(left), vars)
			r := Resolve(strings.TrimSpace(right), vars)
			return fn(l, r), nil
		}
	}

	return IsTruthy(Resolve(expression, vars)), nil
}

// evalPair evaluates both sides of a boolean connective.
func (e *Evaluator) evalPair(left, right string, vars map[string]any, combine func(l, r bool) bool) (bool, error) {
	l, err := e.Evaluate(left, vars)
	if err != nil {
		return false, err
	}
	r, err := e.Evaluate(right, vars)
	if err != nil {
		return false, err
	}
	return combine(l, r), nil
}
