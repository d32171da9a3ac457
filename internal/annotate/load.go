package annotate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// Skip is the file argument that leaves an iteration without control
// wells.
const Skip = "-"

// LoadControl reads a control wells file. Every well must be a valid
// address.
func LoadControl(path string) (record.Control, error) {
	var raw map[string][]string
	if err := load(path, &raw); err != nil {
		return nil, err
	}

	control := record.NormalizeControl(raw)
	if control == nil {
		control = record.Control{}
	}
	for name, wells := range control {
		for _, well := range wells {
			if _, err := welladdr.ToIndex(well); err != nil {
				return nil, fmt.Errorf("%s: microplate %q: %w", path, name, err)
			}
		}
	}
	return control, nil
}

// LoadControls loads one control file per iteration. Skip yields a nil
// entry.
func LoadControls(paths []string) ([]record.Control, error) {
	controls := make([]record.Control, len(paths))
	for i, path := range paths {
		if path == Skip {
			continue
		}
		control, err := LoadControl(path)
		if err != nil {
			return nil, err
		}
		controls[i] = control
	}
	return controls, nil
}

// LoadGenes reads a genes file.
func LoadGenes(path string) (record.Genes, error) {
	var raw map[string]map[string]string
	if err := load(path, &raw); err != nil {
		return nil, err
	}

	genes := record.NormalizeGenes(raw)
	if genes == nil {
		genes = record.Genes{}
	}
	return genes, nil
}

func load(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read annotation file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
