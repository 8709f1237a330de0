package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSVFile loads a table from a CSV file. See LoadCSV.
func LoadCSVFile(filename string) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	t, err := LoadCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filename)
	}
	return t, nil
}

// LoadCSV reads a table whose first record holds the column names and whose
// remaining records hold numeric values.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}

	if len(records) == 0 {
		return nil, errors.New("csv file is empty")
	}

	header := make([]string, len(records[0]))
	for j, name := range records[0] {
		header[j] = strings.TrimSpace(name)
	}

	values := make(map[string][]float64, len(header))
	for _, name := range header {
		values[name] = make([]float64, 0, len(records)-1)
	}

	for i := 1; i < len(records); i++ {
		for j, valStr := range records[i] {
			val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to parse value at row %d, col %d", i, j)
			}
			values[header[j]] = append(values[header[j]], val)
		}
	}

	return NewTable(header, values)
}
