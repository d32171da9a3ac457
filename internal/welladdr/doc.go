// Package welladdr converts microplate well coordinates between their
// human-readable form ("C10") and a row-major index over the 8x12 grid.
//
// Rows are the letters A..H, columns are 1-based 1..12. Index 0 is A1,
// index 11 is A12, index 12 is B1 and index 95 is H12.
package welladdr
