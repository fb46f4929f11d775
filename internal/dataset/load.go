package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names expected in the source CSV.
const (
	ColMult  = "jet_mult"
	ColPTD   = "jet_ptd"
	ColAxis2 = "jet_axis2"
	ColLabel = "is_gluon"
)

// LoadCSV parses a jet-sample CSV into a Table. The file must carry a
// header naming the three feature columns and the label column; any
// extra columns are ignored. A feature cell that is blank or not a
// number becomes NaN and is left for Clean to drop. Label cells are
// validated strictly: anything but a binary value fails with ErrParse.
func LoadCSV(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, errors.Wrapf(ErrRetrieval, "open %s: %v", path, err)
	}
	defer file.Close()

	table, err := parseCSV(file)
	if err != nil {
		return Table{}, errors.Wrapf(err, "load %s", path)
	}
	table.Source = path
	return table, nil
}

func parseCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Table{}, errors.Wrapf(ErrParse, "reading header: %v", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColMult, ColPTD, ColAxis2, ColLabel} {
		if _, ok := colIdx[required]; !ok {
			return Table{}, errors.Wrapf(ErrParse, "missing column %q", required)
		}
	}

	var records []Record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrapf(ErrParse, "row %d: %v", row, err)
		}

		rec := Record{
			Mult:  parseFeature(fields, colIdx[ColMult]),
			PTD:   parseFeature(fields, colIdx[ColPTD]),
			Axis2: parseFeature(fields, colIdx[ColAxis2]),
		}
		rec.Label, err = parseLabel(fields, colIdx[ColLabel])
		if err != nil {
			return Table{}, errors.Wrapf(err, "row %d", row)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return Table{}, errors.Wrap(ErrParse, "no data rows")
	}
	return Table{Records: records}, nil
}

// parseFeature maps a missing or malformed cell to NaN rather than an
// error; dropping such rows is the cleaner's job.
func parseFeature(fields []string, idx int) float64 {
	if idx >= len(fields) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseLabel coerces the label cell to 0 or 1. Any other value means
// the file does not hold a binary classification problem, which is a
// parse failure rather than a droppable row.
func parseLabel(fields []string, idx int) (int, error) {
	if idx >= len(fields) {
		return 0, errors.Wrap(ErrParse, "missing label cell")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrParse, "label %q is not numeric", fields[idx])
	}
	switch v {
	case 0:
		return Quark, nil
	case 1:
		return Gluon, nil
	}
	return 0, errors.Wrapf(ErrParse, "label %v is not binary", v)
}
