package model

import (
	"slices"
	"strings"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/record"
)

// nameIndex holds the filenames and microplate names of a padded record,
// grouped by iteration and spreadsheet.
type nameIndex struct {
	filenames   [][]string
	microplates [][][]string
}

func newNameIndex(rec *record.Record) *nameIndex {
	idx := &nameIndex{
		filenames:   make([][]string, len(rec.Iterations)),
		microplates: make([][][]string, len(rec.Iterations)),
	}
	for i, it := range rec.Iterations {
		idx.filenames[i] = make([]string, len(it.Spreadsheets))
		idx.microplates[i] = make([][]string, len(it.Spreadsheets))
		for s, sheet := range it.Spreadsheets {
			idx.filenames[i][s] = sheet.Filename
			names := make([]string, 0, len(sheet.Microplates))
			for name := range sheet.Microplates {
				names = append(names, name)
			}
			slices.Sort(names)
			idx.microplates[i][s] = names
		}
	}
	return idx
}

// filenamesOf returns filenames in their original order, either for one
// iteration or flattened across all of them.
func (idx *nameIndex) filenamesOf(withPath bool, iteration Key) ([]string, error) {
	var out []string
	if iteration.Specified() {
		i, err := resolveIndex("iteration", iteration, len(idx.filenames))
		if err != nil {
			return nil, err
		}
		out = slices.Clone(idx.filenames[i])
	} else {
		out = []string{}
		for _, names := range idx.filenames {
			out = append(out, names...)
		}
	}
	if out == nil {
		out = []string{}
	}
	if !withPath {
		for i, name := range out {
			out[i] = Basename(name)
		}
	}
	return out, nil
}

// microplateNamesOf returns a sorted, duplicate-free list of microplate
// names. A spreadsheet given without an iteration is looked up in every
// iteration and only fails when no iteration has that many spreadsheets.
func (idx *nameIndex) microplateNamesOf(iteration, spreadsheet Key) ([]string, error) {
	var names []string

	switch {
	case iteration.Specified():
		i, err := resolveIndex("iteration", iteration, len(idx.microplates))
		if err != nil {
			return nil, err
		}
		sheets := idx.microplates[i]
		if spreadsheet.Specified() {
			s, err := resolveIndex("spreadsheet", spreadsheet, len(sheets))
			if err != nil {
				return nil, err
			}
			names = slices.Clone(sheets[s])
		} else {
			for _, sheet := range sheets {
				names = append(names, sheet...)
			}
		}

	case spreadsheet.Specified():
		longest := 0
		for _, sheets := range idx.microplates {
			longest = max(longest, len(sheets))
		}
		s, err := resolveIndex("spreadsheet", spreadsheet, longest)
		if err != nil {
			return nil, err
		}
		for _, sheets := range idx.microplates {
			if s < len(sheets) {
				names = append(names, sheets[s]...)
			}
		}

	default:
		for _, sheets := range idx.microplates {
			for _, sheet := range sheets {
				names = append(names, sheet...)
			}
		}
	}

	slices.Sort(names)
	names = slices.Compact(names)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Basename returns the last path segment, accepting both slash and
// backslash separators regardless of the host platform.
func Basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
