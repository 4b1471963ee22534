// Package importer reads item lists and avoidance zones from CSV, Excel and
// DXF files. Tables get automatic delimiter detection, flexible column
// mapping and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/scatter/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Items    []model.Item
	Avoid    []model.Rect
	Errors   []string
	Warnings []string
}

// Kind selects what a table describes.
type Kind int

const (
	KindItems Kind = iota // label, width, height, quantity
	KindAvoid             // x, y, width, height
)

func (k Kind) String() string {
	if k == KindAvoid {
		return "avoid"
	}
	return "items"
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Roles not present are -1.
type ColumnMapping struct {
	Label    int
	X        int
	Y        int
	Width    int
	Height   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "item", "description", "desc", "piece", "part", "id"},
	"x":        {"x", "left", "x0", "pos x", "position x"},
	"y":        {"y", "top", "y0", "pos y", "position y"},
	"width":    {"width", "w", "length", "len"},
	"height":   {"height", "h", "depth", "d"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

func positionalMapping(kind Kind) ColumnMapping {
	if kind == KindAvoid {
		return ColumnMapping{Label: -1, X: 0, Y: 1, Width: 2, Height: 3, Quantity: -1}
	}
	return ColumnMapping{Label: 0, X: -1, Y: -1, Width: 1, Height: 2, Quantity: 3}
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or the positional
// mapping for kind and false if no header was found.
func DetectColumns(row []string, kind Kind) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, X: -1, Y: -1, Width: -1, Height: -1, Quantity: -1}
	roles := map[string]*int{
		"label":    &mapping.Label,
		"x":        &mapping.X,
		"y":        &mapping.Y,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"quantity": &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := roles[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping(kind), false
	}
	return mapping, true
}

// missingColumns lists the required roles a header mapping lacks.
func missingColumns(m ColumnMapping, kind Kind) []string {
	var missing []string
	if kind == KindAvoid {
		if m.X == -1 {
			missing = append(missing, "X")
		}
		if m.Y == -1 {
			missing = append(missing, "Y")
		}
	}
	if m.Width == -1 {
		missing = append(missing, "Width")
	}
	if m.Height == -1 {
		missing = append(missing, "Height")
	}
	return missing
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseNumber(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, strings.ToLower(name))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, strings.ToLower(name), s)
	}
	return v, ""
}

// parseItemRow extracts the items of one row. The quantity column is
// optional and defaults to 1.
func parseItemRow(row []string, mapping ColumnMapping, rowLabel string, itemCount int) ([]model.Item, string, string) {
	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Item %d", itemCount+1)
	}

	width, errMsg := parseNumber(row, mapping.Width, "Width", rowLabel)
	if errMsg != "" {
		return nil, errMsg, ""
	}
	height, errMsg := parseNumber(row, mapping.Height, "Height", rowLabel)
	if errMsg != "" {
		return nil, errMsg, ""
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		qty = n
	}

	if width < 0 || height < 0 {
		return nil, fmt.Sprintf("%s: Width and height must not be negative", rowLabel), ""
	}
	if qty <= 0 {
		return nil, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
	}
	if qty > model.MaxQuantity {
		return nil, fmt.Sprintf("%s: Quantity %d exceeds the limit of %d", rowLabel, qty, model.MaxQuantity), ""
	}

	var warning string
	if width == 0 || height == 0 {
		warning = fmt.Sprintf("%s: Zero-size item '%s' will be placed as a point or line", rowLabel, label)
	}
	return model.ExpandQuantity(label, width, height, qty), "", warning
}

// parseAvoidRow extracts one avoidance rectangle.
func parseAvoidRow(row []string, mapping ColumnMapping, rowLabel string) (model.Rect, string) {
	x, errMsg := parseNumber(row, mapping.X, "X", rowLabel)
	if errMsg != "" {
		return model.Rect{}, errMsg
	}
	y, errMsg := parseNumber(row, mapping.Y, "Y", rowLabel)
	if errMsg != "" {
		return model.Rect{}, errMsg
	}
	width, errMsg := parseNumber(row, mapping.Width, "Width", rowLabel)
	if errMsg != "" {
		return model.Rect{}, errMsg
	}
	height, errMsg := parseNumber(row, mapping.Height, "Height", rowLabel)
	if errMsg != "" {
		return model.Rect{}, errMsg
	}
	if width <= 0 || height <= 0 {
		return model.Rect{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel)
	}
	return model.NewRect(x, y, width, height), ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportItems imports items from a CSV or Excel file, chosen by extension.
func ImportItems(path string) ImportResult {
	return importTable(path, KindItems)
}

// ImportAvoid imports avoidance rectangles from a DXF, CSV or Excel file,
// chosen by extension.
func ImportAvoid(path string) ImportResult {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		return ImportAvoidDXF(path)
	}
	return importTable(path, KindAvoid)
}

func importTable(path string, kind Kind) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path, kind)
	default:
		return ImportCSV(path, kind)
	}
}

// ImportCSV imports a table from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, kind Kind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSVRecords(bytes.NewReader(data), delimiter, kind, warnings)
}

// ImportCSVFromReader imports a table from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, kind Kind) ImportResult {
	return importCSVRecords(reader, delimiter, kind, nil)
}

func importCSVRecords(reader io.Reader, delimiter rune, kind Kind, warnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}

	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	return importFromRows(records, kind, "Line", warnings)
}

// ImportExcel imports a table from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, kind Kind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, kind, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, kind Kind, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0], kind)
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if missing := missingColumns(mapping, kind); len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if getCell(rows[0], mapping.Width) != "" {
		// A non-numeric width in the first row is an unrecognized header
		if _, err := strconv.ParseFloat(getCell(rows[0], mapping.Width), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		if kind == KindAvoid {
			r, errMsg := parseAvoidRow(row, mapping, rowLabel)
			if errMsg != "" {
				result.Errors = append(result.Errors, errMsg)
				continue
			}
			result.Avoid = append(result.Avoid, r)
			continue
		}

		items, errMsg, warning := parseItemRow(row, mapping, rowLabel, len(result.Items))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Items = append(result.Items, items...)
	}

	return result
}
