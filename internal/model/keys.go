package model

import (
	"slices"
	"strconv"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

type keyKind uint8

const (
	keyUnspecified keyKind = iota
	keyIndex
	keyName
)

// Key addresses one position on an axis, either by index or by name.
// The zero Key is unspecified and selects the whole axis; Index(0) is a
// concrete key and is never confused with it.
type Key struct {
	kind  keyKind
	index int
	name  string
}

// Unspecified selects the whole axis.
var Unspecified = Key{}

// Index returns a key selecting position i.
func Index(i int) Key {
	return Key{kind: keyIndex, index: i}
}

// Name returns a key selecting the position labelled name.
// Only the microplate and well axes are labelled.
func Name(name string) Key {
	return Key{kind: keyName, name: name}
}

// Specified reports whether the key selects a single position.
func (k Key) Specified() bool {
	return k.kind != keyUnspecified
}

func (k Key) String() string {
	switch k.kind {
	case keyIndex:
		return strconv.Itoa(k.index)
	case keyName:
		return strconv.Quote(k.name)
	default:
		return "*"
	}
}

// Query selects cells of the four-axis arrays. Unspecified axes are
// retained in the result, specified ones are collapsed.
type Query struct {
	Iteration   Key
	Spreadsheet Key
	Microplate  Key
	Well        Key
}

// Full reports whether every axis is specified.
func (q Query) Full() bool {
	return q.Iteration.Specified() && q.Spreadsheet.Specified() &&
		q.Microplate.Specified() && q.Well.Specified()
}

// resolveIndex maps a key on an index-only axis to a selector.
func resolveIndex(axis string, k Key, size int) (int, error) {
	switch k.kind {
	case keyUnspecified:
		return ndarray.All, nil
	case keyName:
		return 0, modelerr.NewInvalidKey(axis, "axis is addressed by index only, got name "+strconv.Quote(k.name))
	}
	if k.index < 0 || k.index >= size {
		return 0, modelerr.NewOutOfRange(axis, k.index, size)
	}
	return k.index, nil
}

// resolveMicroplate maps a key to a position on the sorted microplate axis.
func resolveMicroplate(k Key, names []string) (int, error) {
	if k.kind == keyName {
		i, found := slices.BinarySearch(names, k.name)
		if !found {
			return 0, modelerr.NewUnknownMicroplate(k.name)
		}
		return i, nil
	}
	return resolveIndex("microplate", k, len(names))
}

// resolveWell maps a well address or index to a selector.
func resolveWell(k Key) (int, error) {
	if k.kind == keyName {
		return welladdr.ToIndex(k.name)
	}
	return resolveIndex("well", k, welladdr.Count)
}
