package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
)

// Decode reads a complete document from r.
func Decode(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal parses a document. Structural problems are reported as
// MalformedInput errors whose message starts with the offending path.
func Unmarshal(data []byte) (*Record, error) {
	if !json.Valid(data) {
		return nil, modelerr.NewMalformedInput("", "invalid JSON document")
	}
	root, err := parseObject("", data)
	if err != nil {
		return nil, err
	}

	rec := &Record{}

	raw, ok := root.take("iterations")
	if !ok {
		return nil, modelerr.NewMalformedInput("", `missing "iterations"`)
	}
	items, err := parseArray("iterations", raw)
	if err != nil {
		return nil, err
	}
	rec.Iterations = make([]Iteration, len(items))
	for i, item := range items {
		it, err := decodeIteration(fmt.Sprintf("iterations[%d]", i), item)
		if err != nil {
			return nil, err
		}
		rec.Iterations[i] = it
	}

	if raw, ok := root.take("genes"); ok {
		genes, err := decodeGenes("genes", raw)
		if err != nil {
			return nil, err
		}
		rec.Genes = genes
	}

	rec.Extra = root.extra()
	return rec, nil
}

func decodeIteration(path string, data json.RawMessage) (Iteration, error) {
	var it Iteration

	obj, err := parseObject(path, data)
	if err != nil {
		return it, err
	}

	if raw, ok := obj.take("control"); ok {
		if it.Control, err = decodeControl(path+".control", raw); err != nil {
			return it, err
		}
	}

	raw, ok := obj.take("spreadsheets")
	if !ok {
		return it, modelerr.NewMalformedInput(path, `missing "spreadsheets"`)
	}
	items, err := parseArray(path+".spreadsheets", raw)
	if err != nil {
		return it, err
	}
	it.Spreadsheets = make([]Spreadsheet, len(items))
	for i, item := range items {
		s, err := decodeSpreadsheet(fmt.Sprintf("%s.spreadsheets[%d]", path, i), item)
		if err != nil {
			return it, err
		}
		it.Spreadsheets[i] = s
	}

	it.Extra = obj.extra()
	return it, nil
}

func decodeSpreadsheet(path string, data json.RawMessage) (Spreadsheet, error) {
	var s Spreadsheet

	obj, err := parseObject(path, data)
	if err != nil {
		return s, err
	}

	raw, ok := obj.take("filename")
	if !ok {
		return s, modelerr.NewMalformedInput(path, `missing "filename"`)
	}
	if err := json.Unmarshal(raw, &s.Filename); err != nil || isNull(raw) {
		return s, modelerr.NewMalformedInput(path+".filename", "expected a string")
	}
	s.Filename = norm.NFC.String(s.Filename)

	if raw, ok := obj.take("control"); ok {
		if s.Control, err = decodeControl(path+".control", raw); err != nil {
			return s, err
		}
	}

	raw, ok = obj.take("microplates")
	if !ok {
		return s, modelerr.NewMalformedInput(path, `missing "microplates"`)
	}
	plates, err := parseObject(path+".microplates", raw)
	if err != nil {
		return s, err
	}
	s.Microplates = make(map[string]Microplate, len(plates))
	for name, item := range plates {
		key := norm.NFC.String(name)
		if _, dup := s.Microplates[key]; dup {
			return s, modelerr.NewMalformedInput(path+".microplates", fmt.Sprintf("duplicate microplate %q", key))
		}
		plate, err := decodeMicroplate(fmt.Sprintf("%s.microplates[%q]", path, key), item)
		if err != nil {
			return s, err
		}
		s.Microplates[key] = plate
	}

	s.Extra = obj.extra()
	return s, nil
}

func decodeMicroplate(path string, data json.RawMessage) (Microplate, error) {
	var m Microplate

	obj, err := parseObject(path, data)
	if err != nil {
		return m, err
	}

	raw, ok := obj.take("values")
	if !ok {
		return m, modelerr.NewMalformedInput(path, `missing "values"`)
	}
	if isNull(raw) {
		return m, modelerr.NewMalformedInput(path+".values", "expected an array of numbers")
	}
	if err := json.Unmarshal(raw, &m.Values); err != nil {
		return m, modelerr.NewMalformedInput(path+".values", "expected an array of numbers")
	}

	if raw, ok := obj.take("timestamp"); ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &m.Timestamp); err != nil {
			return m, modelerr.NewMalformedInput(path+".timestamp", "expected a string")
		}
		m.Timestamp = norm.NFC.String(m.Timestamp)
	}

	if raw, ok := obj.take("temperature"); ok {
		if err := json.Unmarshal(raw, &m.Temperature); err != nil {
			return m, modelerr.NewMalformedInput(path+".temperature", "expected a number")
		}
	}

	m.Extra = obj.extra()
	return m, nil
}

func decodeControl(path string, data json.RawMessage) (Control, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, modelerr.NewMalformedInput(path, "expected an object of well lists")
	}
	return NormalizeControl(raw), nil
}

func decodeGenes(path string, data json.RawMessage) (Genes, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, modelerr.NewMalformedInput(path, "expected an object of microplates mapping wells to gene names")
	}
	return NormalizeGenes(raw), nil
}

// NormalizeControl returns a copy of a control block with every name in NFC.
func NormalizeControl(c map[string][]string) Control {
	if c == nil {
		return nil
	}
	out := make(Control, len(c))
	for name, wells := range c {
		normalized := make([]string, len(wells))
		for i, well := range wells {
			normalized[i] = norm.NFC.String(well)
		}
		key := norm.NFC.String(name)
		out[key] = append(out[key], normalized...)
	}
	return out
}

// NormalizeGenes returns a copy of a genes block with every name in NFC.
func NormalizeGenes(g map[string]map[string]string) Genes {
	if g == nil {
		return nil
	}
	out := make(Genes, len(g))
	for plate, wells := range g {
		key := norm.NFC.String(plate)
		if out[key] == nil {
			out[key] = make(map[string]string, len(wells))
		}
		for well, gene := range wells {
			out[key][norm.NFC.String(well)] = norm.NFC.String(gene)
		}
	}
	return out
}

// Encode writes the document as indented JSON with sorted keys.
func Encode(w io.Writer, r *Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r.document()); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return nil
}

// Marshal returns the encoded document.
func Marshal(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Record) document() map[string]any {
	doc := r.Extra.document()
	iterations := make([]any, len(r.Iterations))
	for i, it := range r.Iterations {
		iterations[i] = it.document()
	}
	doc["iterations"] = iterations
	if r.Genes != nil {
		doc["genes"] = r.Genes
	}
	return doc
}

func (it Iteration) document() map[string]any {
	doc := it.Extra.document()
	spreadsheets := make([]any, len(it.Spreadsheets))
	for i, s := range it.Spreadsheets {
		spreadsheets[i] = s.document()
	}
	doc["spreadsheets"] = spreadsheets
	if it.Control != nil {
		doc["control"] = it.Control
	}
	return doc
}

func (s Spreadsheet) document() map[string]any {
	doc := s.Extra.document()
	doc["filename"] = s.Filename
	plates := make(map[string]any, len(s.Microplates))
	for name, plate := range s.Microplates {
		plates[name] = plate.document()
	}
	doc["microplates"] = plates
	if s.Control != nil {
		doc["control"] = s.Control
	}
	return doc
}

func (m Microplate) document() map[string]any {
	doc := m.Extra.document()
	doc["values"] = m.Values
	if m.Timestamp != "" {
		doc["timestamp"] = m.Timestamp
	}
	if m.Temperature != nil {
		doc["temperature"] = *m.Temperature
	}
	return doc
}

func (e Extra) document() map[string]any {
	doc := make(map[string]any, len(e)+4)
	for k, v := range e {
		doc[k] = v
	}
	return doc
}

// MarshalJSON encodes missing readings as null.
func (v Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(x) {
			buf.WriteString("null")
			continue
		}
		b, err := json.Marshal(x)
		if err != nil {
			return nil, fmt.Errorf("value[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes null readings as missing.
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for i, x := range raw {
		if x == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *x
	}
	*v = out
	return nil
}

// fields is a JSON object being consumed key by key; whatever remains
// after the known keys are taken becomes Extra.
type fields map[string]json.RawMessage

func parseObject(path string, data json.RawMessage) (fields, error) {
	var obj fields
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, modelerr.NewMalformedInput(path, "expected an object")
	}
	return obj, nil
}

func parseArray(path string, data json.RawMessage) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, modelerr.NewMalformedInput(path, "expected an array")
	}
	return items, nil
}

func (f fields) take(key string) (json.RawMessage, bool) {
	raw, ok := f[key]
	delete(f, key)
	return raw, ok
}

func (f fields) extra() Extra {
	if len(f) == 0 {
		return nil
	}
	return Extra(f)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
