// Package model lays an experiment record out on four axes (iteration x
// spreadsheet x microplate x well) and answers partial-key queries over
// the measurements, the control mask and the gene annotations.
//
// Construction happens once, eagerly, in New:
//  1. the record is deep-copied
//  2. short iterations are padded with empty spreadsheets so every
//     iteration has the same spreadsheet count
//  3. the sorted microplate axis is collected from the padded copy
//  4. measurements, control mask and gene index are built on that axis
//
// Queries take a Key per axis. The zero Key is unspecified and keeps the
// axis in the result; Index(i) or Name(s) collapse it. Every returned
// array is a fresh copy.
//
// Non-fatal findings (ragged iterations, duplicate gene names, unusable
// gene annotations) are logged at Warn level on the configured
// *slog.Logger with a "model" attribute carrying the model ID.
package model
