package ndarray

import (
	"fmt"
	"slices"
)

// All selects an entire axis in Select.
const All = -1

// IndexError reports a position outside of an axis.
type IndexError struct {
	Axis  int
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range for axis %d with size %d", e.Index, e.Axis, e.Size)
}

// Array is a dense N-dimensional array.
// A 0-dimensional array holds exactly one element (a scalar).
type Array[T any] struct {
	shape []int
	data  []T
}

// New creates a zero-filled array of the given shape.
// Panics if any dimension is negative.
func New[T any](shape ...int) *Array[T] {
	return &Array[T]{
		shape: slices.Clone(shape),
		data:  make([]T, product(shape)),
	}
}

// Full creates an array of the given shape with every element set to value.
func Full[T any](value T, shape ...int) *Array[T] {
	a := New[T](shape...)
	for i := range a.data {
		a.data[i] = value
	}
	return a
}

// FromData creates an array of the given shape from row-major data.
// The data is copied.
func FromData[T any](data []T, shape ...int) (*Array[T], error) {
	if n := product(shape); n != len(data) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, n, len(data))
	}
	return &Array[T]{
		shape: slices.Clone(shape),
		data:  slices.Clone(data),
	}, nil
}

// Shape returns a copy of the array dimensions.
func (a *Array[T]) Shape() []int {
	if a.shape == nil {
		return []int{}
	}
	return slices.Clone(a.shape)
}

// NDim returns the number of dimensions.
func (a *Array[T]) NDim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array[T]) Size() int {
	return len(a.data)
}

// Len returns the length of the first axis, or 0 for a scalar.
func (a *Array[T]) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Data returns a copy of the elements in row-major order.
func (a *Array[T]) Data() []T {
	return slices.Clone(a.data)
}

// Clone returns an independent copy of the array.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{
		shape: slices.Clone(a.shape),
		data:  slices.Clone(a.data),
	}
}

// SameShape reports whether both arrays have identical dimensions.
func SameShape[T, U any](a *Array[T], b *Array[U]) bool {
	return slices.Equal(a.shape, b.shape)
}

// Scalar returns the single element of a 0-dimensional array.
// The boolean is false when the array has one or more dimensions.
func (a *Array[T]) Scalar() (T, bool) {
	if len(a.shape) != 0 {
		var zero T
		return zero, false
	}
	return a.data[0], true
}

// At returns the element at the given full index.
// Panics if the index does not address a single element, like slice indexing.
func (a *Array[T]) At(index ...int) T {
	return a.data[a.offset(index)]
}

// Set stores value at the given full index.
// Panics if the index does not address a single element.
func (a *Array[T]) Set(value T, index ...int) {
	a.data[a.offset(index)] = value
}

// Index returns a copy of the sub-array at position i of the first axis.
// Panics if i is out of range.
func (a *Array[T]) Index(i int) *Array[T] {
	sel := make([]int, len(a.shape))
	for axis := range sel {
		sel[axis] = All
	}
	if len(sel) == 0 {
		panic("ndarray: Index on a scalar")
	}
	sel[0] = i
	sub, err := a.Select(sel...)
	if err != nil {
		panic("ndarray: " + err.Error())
	}
	return sub
}

// Select returns a copy holding the positions picked by sel.
// sel has one entry per axis: All keeps the axis, an index collapses it.
func (a *Array[T]) Select(sel ...int) (*Array[T], error) {
	if len(sel) != len(a.shape) {
		return nil, fmt.Errorf("selection has %d axes, array has %d", len(sel), len(a.shape))
	}

	outShape := []int{}
	for axis, s := range sel {
		if s == All {
			outShape = append(outShape, a.shape[axis])
			continue
		}
		if s < 0 || s >= a.shape[axis] {
			return nil, &IndexError{Axis: axis, Index: s, Size: a.shape[axis]}
		}
	}

	out := &Array[T]{
		shape: outShape,
		data:  make([]T, 0, product(outShape)),
	}
	strides := a.strides()

	var walk func(axis, offset int)
	walk = func(axis, offset int) {
		if axis == len(sel) {
			out.data = append(out.data, a.data[offset])
			return
		}
		if sel[axis] != All {
			walk(axis+1, offset+sel[axis]*strides[axis])
			return
		}
		for i := 0; i < a.shape[axis]; i++ {
			walk(axis+1, offset+i*strides[axis])
		}
	}
	walk(0, 0)

	return out, nil
}

// Map returns a new array of the same shape with f applied to every element.
func Map[T, U any](a *Array[T], f func(T) U) *Array[U] {
	out := &Array[U]{
		shape: slices.Clone(a.shape),
		data:  make([]U, len(a.data)),
	}
	for i, v := range a.data {
		out.data[i] = f(v)
	}
	return out
}

// Zip combines two arrays of identical shape element by element.
func Zip[T, U, V any](a *Array[T], b *Array[U], f func(T, U) V) (*Array[V], error) {
	if !SameShape(a, b) {
		return nil, fmt.Errorf("shape mismatch: %v vs %v", a.shape, b.shape)
	}
	out := &Array[V]{
		shape: slices.Clone(a.shape),
		data:  make([]V, len(a.data)),
	}
	for i := range a.data {
		out.data[i] = f(a.data[i], b.data[i])
	}
	return out, nil
}

func (a *Array[T]) offset(index []int) int {
	if len(index) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index has %d axes, array has %d", len(index), len(a.shape)))
	}
	strides := a.strides()
	offset := 0
	for axis, i := range index {
		if i < 0 || i >= a.shape[axis] {
			panic("ndarray: " + (&IndexError{Axis: axis, Index: i, Size: a.shape[axis]}).Error())
		}
		offset += i * strides[axis]
	}
	return offset
}

func (a *Array[T]) strides() []int {
	strides := make([]int, len(a.shape))
	step := 1
	for axis := len(a.shape) - 1; axis >= 0; axis-- {
		strides[axis] = step
		step *= a.shape[axis]
	}
	return strides
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("ndarray: negative dimension %d", d))
		}
		n *= d
	}
	return n
}
