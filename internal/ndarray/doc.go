// Package ndarray provides a small dense N-dimensional array stored in
// row-major order.
//
// The model uses it for the 4-D measurement array and the parallel control
// mask. Select picks a single position on some axes and keeps others whole,
// collapsing the picked axes out of the result shape:
//
//	a := ndarray.New[float64](2, 3, 4, 96)
//	sub, _ := a.Select(1, ndarray.All, 0, ndarray.All) // shape [3 96]
//
// Every method returning an array returns a fresh copy; arrays never share
// backing storage.
package ndarray
