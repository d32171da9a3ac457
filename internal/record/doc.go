// Package record defines the nested experiment document consumed and
// produced by the model: iterations of spreadsheets of microplates of
// 96 well values, plus optional control and gene annotations.
//
// The codec is lossless for everything it does not interpret. Properties
// that are not part of the structure (iteration names, instrument
// metadata) are kept as raw JSON in each level's Extra map and written
// back on encode. Text is normalized to NFC on decode so that names
// compare equal regardless of how the producer composed them.
//
// Missing well values are represented as NaN and encoded as JSON null.
package record
