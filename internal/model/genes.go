package model

import (
	"log/slog"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// Gene is a gene name annotated at a microplate well. It orders and
// prints as its name and can look up the readings at its coordinate.
type Gene struct {
	name       string
	well       string
	microplate string
	model      *Model
}

// Name returns the gene name as written in the annotation.
func (g Gene) Name() string { return g.name }

// Well returns the canonical well address.
func (g Gene) Well() string { return g.well }

// Microplate returns the microplate name.
func (g Gene) Microplate() string { return g.microplate }

// Coordinate returns the (microplate, well) pair the gene is annotated at.
func (g Gene) Coordinate() (microplate, well string) {
	return g.microplate, g.well
}

func (g Gene) String() string { return g.name }

// Values returns the readings at the gene's coordinate, selected along
// the iteration and spreadsheet axes by the given keys.
func (g Gene) Values(iteration, spreadsheet Key) (*ndarray.Array[float64], error) {
	return g.model.Values(Query{
		Iteration:   iteration,
		Spreadsheet: spreadsheet,
		Microplate:  Name(g.microplate),
		Well:        Name(g.well),
	})
}

// GeneNames returns the names of genes in order.
func GeneNames(genes []Gene) []string {
	names := make([]string, len(genes))
	for i, g := range genes {
		names[i] = g.name
	}
	return names
}

// geneIndex is a microplate x well grid over the microplates that carry
// gene annotations, plus a case-insensitive reverse index by name.
type geneIndex struct {
	defined     bool
	microplates []string // sorted microplates with genes
	grid        [][welladdr.Count]*Gene
	experiment  []string // sorted microplates that were measured
	byName      map[string]*Gene
}

func newGeneIndex(m *Model, genes record.Genes, experiment []string, logger *slog.Logger) *geneIndex {
	idx := &geneIndex{
		defined:    genes != nil,
		experiment: experiment,
		byName:     map[string]*Gene{},
	}
	if genes == nil {
		return idx
	}

	idx.microplates = slices.Sorted(maps.Keys(genes))
	idx.grid = make([][welladdr.Count]*Gene, len(idx.microplates))
	for p, plate := range idx.microplates {
		for _, address := range slices.Sorted(maps.Keys(genes[plate])) {
			w, err := welladdr.ToIndex(address)
			if err != nil || idx.grid[p][w] != nil {
				logger.Warn("gene annotation ignored", "microplate", plate, "well", address)
				continue
			}
			well, _ := welladdr.ToName(w)
			idx.grid[p][w] = &Gene{
				name:       genes[plate][address],
				well:       well,
				microplate: plate,
				model:      m,
			}
		}
	}

	idx.indexNames(logger)
	return idx
}

// indexNames fills the reverse index in microplate then well order, so the
// first-registered spelling wins, and reports every duplicated name once.
func (idx *geneIndex) indexNames(logger *slog.Logger) {
	fold := cases.Fold()
	var order []string
	occurrences := map[string][]string{}

	for p := range idx.grid {
		for _, gene := range idx.grid[p] {
			if gene == nil {
				continue
			}
			key := fold.String(gene.name)
			if _, seen := idx.byName[key]; !seen {
				idx.byName[key] = gene
				order = append(order, key)
			}
			occurrences[key] = append(occurrences[key], gene.microplate+":"+gene.well)
		}
	}

	for _, key := range order {
		if len(occurrences[key]) > 1 {
			logger.Warn("duplicate gene name",
				"gene", idx.byName[key].name,
				"occurrences", occurrences[key],
			)
		}
	}
}

// lookup returns the genes at the selected coordinates. With both keys
// given the result holds at most one gene; otherwise it is sorted and
// deduplicated by name.
func (idx *geneIndex) lookup(well, microplate Key) ([]Gene, error) {
	if !idx.defined {
		return []Gene{}, nil
	}

	rows := make([]int, 0, len(idx.microplates))
	if microplate.Specified() {
		name, err := idx.microplateName(microplate)
		if err != nil {
			return nil, err
		}
		row, found := slices.BinarySearch(idx.microplates, name)
		if !found {
			if _, measured := slices.BinarySearch(idx.experiment, name); measured {
				return []Gene{}, nil
			}
			return nil, modelerr.NewUnknownMicroplate(name)
		}
		rows = append(rows, row)
	} else {
		for row := range idx.microplates {
			rows = append(rows, row)
		}
	}

	w, err := resolveWell(well)
	if err != nil {
		return nil, err
	}

	genes := []Gene{}
	for _, row := range rows {
		for col, gene := range idx.grid[row] {
			if gene == nil || (w != ndarray.All && col != w) {
				continue
			}
			genes = append(genes, *gene)
		}
	}

	if well.Specified() && microplate.Specified() {
		return genes, nil
	}
	return sortGenes(genes), nil
}

// microplateName resolves a key to a microplate name. Indices refer to the
// measured microplate axis, the same one used by Values.
func (idx *geneIndex) microplateName(k Key) (string, error) {
	if k.kind == keyName {
		return k.name, nil
	}
	p, err := resolveIndex("microplate", k, len(idx.experiment))
	if err != nil {
		return "", err
	}
	return idx.experiment[p], nil
}

func (idx *geneIndex) byFoldedName(name string) (Gene, bool) {
	gene, ok := idx.byName[cases.Fold().String(name)]
	if !ok {
		return Gene{}, false
	}
	return *gene, true
}

// used returns the genes annotated on measured microplates.
func (idx *geneIndex) used() []Gene {
	genes := []Gene{}
	if !idx.defined {
		return genes
	}
	for _, name := range idx.experiment {
		row, found := slices.BinarySearch(idx.microplates, name)
		if !found {
			continue
		}
		for _, gene := range idx.grid[row] {
			if gene != nil {
				genes = append(genes, *gene)
			}
		}
	}
	return sortGenes(genes)
}

// sortGenes orders genes by name and keeps the first occurrence of each
// name. The input must be in registration order.
func sortGenes(genes []Gene) []Gene {
	slices.SortStableFunc(genes, func(a, b Gene) int {
		return strings.Compare(a.name, b.name)
	})
	return slices.CompactFunc(genes, func(a, b Gene) bool {
		return a.name == b.name
	})
}
