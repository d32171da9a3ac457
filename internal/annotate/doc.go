// Package annotate attaches control wells and gene names to an
// experiment record.
//
// Control wells are given per iteration as a mapping from microplate name
// to well addresses:
//
//	"002": ["A4"]
//	"B001": ["H1", "H7"]
//
// Genes are given once for the whole experiment as a mapping from
// microplate name to a mapping from well address to gene name. Annotation
// files may be written in YAML or JSON.
package annotate
