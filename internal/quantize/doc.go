// Package quantize replaces every reading of an experiment with a small
// integer level: control wells get one level, starved wells another and
// everything else a third. The result is written back into the caller's
// record so its layout and unknown properties are preserved.
package quantize
