package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"tabula/pkg/attribute"
)

type void struct{}

var Void = void{}

type Set map[string]void

func NewSet(values ...string) Set {
	set := Set{}
	for _, val := range values {
		set[val] = Void
	}
	return set
}

func (s Set) Contains(value string) bool {
	_, ok := s[value]
	return ok
}

type DataParameters struct {
	// DataFile is read when Reader is nil.
	DataFile       string
	Reader         io.Reader
	NominalColumns Set
	DateColumns    Set
	// Comma defaults to ','.
	Comma rune
}

type DataError struct {
	Line  int
	Error string
}

// ReadCSV reads a table whose first line is a header. Columns named in NominalColumns
// become nominal attributes, DateColumns become date attributes and all other columns are
// numerical. Empty cells and "?" are stored as missing values. Lines that cannot be parsed
// are skipped and reported as DataErrors.
func ReadCSV(p DataParameters) (*MemoryTable, []DataError, error) {
	input := p.Reader
	if input == nil {
		inputFile, err := os.Open(p.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening file: %w", err)
		}
		defer inputFile.Close()
		input = inputFile
	}

	reader := csv.NewReader(input)
	reader.Comma = ','
	if p.Comma != 0 {
		reader.Comma = p.Comma
	}

	//First line is expected to be a header
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading data header: %w", err)
	}

	t := NewMemoryTable(buildAttributes(p, header)...)
	attributes := t.Attributes()

	var errors []DataError
	currentLine := 1
	for record, err := reader.Read(); err != io.EOF; record, err = reader.Read() {
		currentLine++
		if err != nil {
			errors = append(errors, DataError{Line: currentLine, Error: err.Error()})
			continue
		}
		values, err := parseRecord(attributes, record)
		if err != nil {
			errors = append(errors, DataError{Line: currentLine, Error: err.Error()})
			continue
		}
		t.AddRow(values...)
	}

	return t, errors, nil
}

func buildAttributes(p DataParameters, header []string) []*attribute.Attribute {
	attributes := make([]*attribute.Attribute, len(header))
	for i, col := range header {
		name := strings.TrimSpace(col)
		switch {
		case p.NominalColumns.Contains(name):
			attributes[i] = attribute.New(name, attribute.Polynominal)
		case p.DateColumns.Contains(name):
			attributes[i] = attribute.New(name, attribute.Date)
		default:
			attributes[i] = attribute.NewNumerical(name)
		}
	}
	return attributes
}

// parseRecord maps nominal fields only once every other field has parsed, so a rejected
// line leaves the nominal mappings unchanged.
func parseRecord(attributes []*attribute.Attribute, record []string) ([]float64, error) {
	if len(record) != len(attributes) {
		return nil, fmt.Errorf("expected %d fields, found %d", len(attributes), len(record))
	}
	values := make([]float64, len(record))
	for i, a := range attributes {
		if a.IsNominal() {
			continue
		}
		value, err := parseValue(a, strings.TrimSpace(record[i]))
		if err != nil {
			return nil, fmt.Errorf("error parsing attribute %s: %w", a.Name(), err)
		}
		values[i] = value
	}
	for i, a := range attributes {
		if a.IsNominal() {
			values[i], _ = parseValue(a, strings.TrimSpace(record[i]))
		}
	}
	return values, nil
}

// RowSource is anything that exposes rows in order.
type RowSource interface {
	Size() int
	Row(i int) DataRow
}

// WriteCSV writes a header line with the attribute names followed by one line per row.
func WriteCSV(w io.Writer, attributes []*attribute.Attribute, rows RowSource) error {
	writer := csv.NewWriter(w)
	header := make([]string, len(attributes))
	for i, a := range attributes {
		header[i] = a.Name()
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	record := make([]string, len(attributes))
	for i := 0; i < rows.Size(); i++ {
		row := rows.Row(i)
		for j, a := range attributes {
			record[j] = a.Format(row.Get(a))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// LogDataErrors reports skipped lines.
func LogDataErrors(errors []DataError) {
	for _, err := range errors {
		log.Warn().Int("Line", err.Line).Str("Error", err.Error).Msg("skipping unparsable line")
	}
}
