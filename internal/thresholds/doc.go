// Package thresholds classifies well readings with configurable boolean
// expressions over a single variable x: starvation ("x <= 0.2"),
// infection ("x >= 0.8") and control violation ("x > 0.06").
//
// Expressions are CUE expressions, so comparisons, arithmetic and the
// &&, || and ! operators are available. The words and, or and not are
// accepted as aliases of those operators.
package thresholds
