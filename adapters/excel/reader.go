// Package excel reads contingency tables from spreadsheet files for the CLI.
// Expected layout: first row holds category names (the top-left cell is
// ignored), first column holds population names, the body holds counts.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"posthoc/domain/table"

	"github.com/xuri/excelize/v2"
)

// TableReader handles reading contingency tables from Excel and CSV files
type TableReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
}

// NewTableReader creates a reader for the given path, dispatching on extension
func NewTableReader(filePath, sheet string) *TableReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if sheet == "" {
		sheet = "Sheet1"
	}
	return &TableReader{filePath: filePath, fileType: fileType, sheet: sheet}
}

// Read loads and validates the contingency table from the file
func (r *TableReader) Read() (*table.Contingency, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("table file not found: %s", r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
	if err != nil {
		return nil, err
	}

	return parseTable(rows)
}

func (r *TableReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *TableReader) readCSVRows() ([][]string, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated during parsing instead
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return rows, nil
}

// parseTable turns raw sheet rows into a validated contingency table.
func parseTable(rows [][]string) (*table.Contingency, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("table file must have a header row and at least one population row")
	}
	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("header row must name at least one category")
	}

	colNames := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		colNames = append(colNames, strings.TrimSpace(name))
	}

	rowNames := make([]string, 0, len(rows)-1)
	counts := make([][]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue // trailing blank line
		}
		if len(row) != len(colNames)+1 {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+2, len(row), len(colNames)+1)
		}
		rowNames = append(rowNames, strings.TrimSpace(row[0]))

		rowCounts := make([]int, len(colNames))
		for j, cell := range row[1:] {
			count, err := strconv.Atoi(strings.TrimSpace(cell))
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: count %q is not an integer", i+2, colNames[j], cell)
			}
			rowCounts[j] = count
		}
		counts = append(counts, rowCounts)
	}

	return table.New(rowNames, colNames, counts)
}
