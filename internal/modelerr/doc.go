// Package modelerr defines the error taxonomy shared by the microanalyst
// packages.
//
// Every failure surfaced by the data model is an *Error carrying a Code:
//   - MALFORMED_INPUT: the record is structurally invalid (missing keys, wrong types)
//   - OUT_OF_RANGE: an iteration, spreadsheet, microplate or well index does not exist
//   - UNKNOWN_MICROPLATE: a microplate name is absent from the experiment and the genes block
//   - INVALID_ADDRESS: a well coordinate is not of the form A1..H12
//   - INVALID_KEY: a name was used on an axis that is addressed by index only
//   - SHAPE_MISMATCH: a replacement measurement array does not fit the model
//
// Use the IsXxx helpers to classify errors; they see through wrapping.
package modelerr
