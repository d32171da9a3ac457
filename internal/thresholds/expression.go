package thresholds

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

var (
	pathX      = cue.ParsePath("x")
	pathResult = cue.ParsePath("result")

	wordOperators = strings.NewReplacer("and", "&&", "or", "||", "not", "!")
	wordPattern   = regexp.MustCompile(`\b(and|or|not)\b`)
)

// ExpressionError reports an expression that does not compile to a
// boolean predicate over x.
type ExpressionError struct {
	Expr string
	Err  error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("invalid threshold expression %q: %v", e.Expr, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

// Expression is a compiled boolean predicate over x.
//
// Thread-safety: evaluation is serialized with a mutex because CUE values
// sharing a context must not be used concurrently.
type Expression struct {
	source string

	mu    sync.Mutex
	value cue.Value
}

// Compile parses source as a predicate over x.
func Compile(source string) (*Expression, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, &ExpressionError{Expr: source, Err: fmt.Errorf("empty expression")}
	}

	body := wordPattern.ReplaceAllStringFunc(trimmed, wordOperators.Replace)
	ctx := cuecontext.New()
	value := ctx.CompileString("x: number\nresult: " + body)
	if err := value.Err(); err != nil {
		return nil, &ExpressionError{Expr: source, Err: err}
	}

	e := &Expression{source: trimmed, value: value}
	if _, err := e.Eval(0); err != nil {
		return nil, &ExpressionError{Expr: source, Err: err}
	}
	return e, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(source string) *Expression {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the expression source.
func (e *Expression) String() string {
	return e.source
}

// Eval evaluates the predicate for x.
func (e *Expression) Eval(x float64) (bool, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return false, fmt.Errorf("cannot evaluate %q for %v", e.source, x)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.value.FillPath(pathX, x).LookupPath(pathResult).Bool()
	if err != nil {
		return false, fmt.Errorf("evaluate %q for %v: %w", e.source, x, err)
	}
	return result, nil
}
