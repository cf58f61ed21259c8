// Package importer reads shape request lists from CSV files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/ShapePack/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Specs    []model.ShapeSpec
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// An index of -1 means the column is absent.
type ColumnMapping struct {
	Kind     int
	Radius   int
	Width    int
	Height   int
	Side     int
	Sides    int
	Label    int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"kind":     {"kind", "shape", "type", "geometry"},
	"radius":   {"radius", "r", "circumradius"},
	"width":    {"width", "w"},
	"height":   {"height", "h"},
	"side":     {"side", "side length", "edge", "edge length"},
	"sides":    {"sides", "n", "num sides", "vertices", "corners"},
	"label":    {"label", "name", "description", "desc", "item"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
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
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns true if at least one column name was recognized.
// Shape rows have no useful positional interpretation (which number a
// cell holds depends on the kind), so there is no positional fallback.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Kind:     -1,
		Radius:   -1,
		Width:    -1,
		Height:   -1,
		Side:     -1,
		Sides:    -1,
		Label:    -1,
		Quantity: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "kind":
						if mapping.Kind == -1 {
							mapping.Kind = i
						}
					case "radius":
						if mapping.Radius == -1 {
							mapping.Radius = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "side":
						if mapping.Side == -1 {
							mapping.Side = i
						}
					case "sides":
						if mapping.Sides == -1 {
							mapping.Sides = i
						}
					case "label":
						if mapping.Label == -1 {
							mapping.Label = i
						}
					case "quantity":
						if mapping.Quantity == -1 {
							mapping.Quantity = i
						}
					}
				}
			}
		}
	}

	return mapping, isHeader
}

// parseKind converts a kind cell to a model.ShapeKind value.
// It returns the kind and a boolean indicating whether the string was recognized.
func parseKind(s string) (model.ShapeKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "c", "disc", "disk":
		return model.KindCircle, true
	case "rectangle", "rect", "box":
		return model.KindRectangle, true
	case "triangle", "tri":
		return model.KindTriangle, true
	case "polygon", "poly", "ngon", "n-gon":
		return model.KindPolygon, true
	default:
		return "", false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseFloatCell reads a required numeric cell. Returns the value and an
// error message naming the field when the cell is missing or malformed.
func parseFloatCell(row []string, idx int, field, rowLabel string) (float64, string) {
	cell := getCell(row, idx)
	if cell == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, cell)
	}
	return v, ""
}

// parseRow extracts a ShapeSpec from a row using the given column mapping.
// Returns the spec, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.ShapeSpec, string, string) {
	kindStr := getCell(row, mapping.Kind)
	if kindStr == "" {
		return model.ShapeSpec{}, fmt.Sprintf("%s: Missing kind value", rowLabel), ""
	}
	kind, ok := parseKind(kindStr)
	if !ok {
		return model.ShapeSpec{}, fmt.Sprintf("%s: Unknown shape kind '%s'", rowLabel, kindStr), ""
	}

	spec := model.ShapeSpec{
		Kind:     kind,
		Label:    getCell(row, mapping.Label),
		Quantity: 1,
	}

	switch kind {
	case model.KindCircle:
		radius, errMsg := parseFloatCell(row, mapping.Radius, "radius", rowLabel)
		if errMsg != "" {
			return model.ShapeSpec{}, errMsg, ""
		}
		spec.Radius = radius

	case model.KindRectangle:
		width, errMsg := parseFloatCell(row, mapping.Width, "width", rowLabel)
		if errMsg != "" {
			return model.ShapeSpec{}, errMsg, ""
		}
		height, errMsg := parseFloatCell(row, mapping.Height, "height", rowLabel)
		if errMsg != "" {
			return model.ShapeSpec{}, errMsg, ""
		}
		spec.Width = width
		spec.Height = height

	case model.KindTriangle:
		side, errMsg := parseFloatCell(row, mapping.Side, "side", rowLabel)
		if errMsg != "" {
			return model.ShapeSpec{}, errMsg, ""
		}
		spec.Side = side

	case model.KindPolygon:
		sidesStr := getCell(row, mapping.Sides)
		if sidesStr == "" {
			return model.ShapeSpec{}, fmt.Sprintf("%s: Missing sides value", rowLabel), ""
		}
		sides, err := strconv.Atoi(sidesStr)
		if err != nil {
			return model.ShapeSpec{}, fmt.Sprintf("%s: Invalid sides '%s'", rowLabel, sidesStr), ""
		}
		radius, errMsg := parseFloatCell(row, mapping.Radius, "radius", rowLabel)
		if errMsg != "" {
			return model.ShapeSpec{}, errMsg, ""
		}
		spec.Sides = sides
		spec.Radius = radius
	}

	// Optional quantity; empty means one.
	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.ShapeSpec{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		if qty <= 0 {
			return model.ShapeSpec{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), ""
		}
		spec.Quantity = qty
	}

	// Run the full model validation so size errors carry its detail.
	if _, err := model.NewShape(spec); err != nil {
		return model.ShapeSpec{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	var warning string
	if ignored := ignoredColumns(kind, mapping, row); len(ignored) > 0 {
		warning = fmt.Sprintf("%s: Ignoring %s for %s", rowLabel, strings.Join(ignored, ", "), kind)
	}
	return spec, "", warning
}

// ignoredColumns lists filled size cells that the given kind does not use,
// so a mixed-up column assignment surfaces as a warning instead of silence.
func ignoredColumns(kind model.ShapeKind, mapping ColumnMapping, row []string) []string {
	relevant := map[model.ShapeKind]map[string]bool{
		model.KindCircle:    {"radius": true},
		model.KindRectangle: {"width": true, "height": true},
		model.KindTriangle:  {"side": true},
		model.KindPolygon:   {"radius": true, "sides": true},
	}[kind]

	cols := []struct {
		name string
		idx  int
	}{
		{"radius", mapping.Radius},
		{"width", mapping.Width},
		{"height", mapping.Height},
		{"side", mapping.Side},
		{"sides", mapping.Sides},
	}

	var ignored []string
	for _, c := range cols {
		if !relevant[c.name] && getCell(row, c.idx) != "" {
			ignored = append(ignored, c.name)
		}
	}
	return ignored
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

// ImportCSV imports shape specs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
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
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, result.Warnings)
}

// ImportCSVFromReader imports shape specs from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, nil)
}

// importFromRows detects the header, maps columns, and parses each row
// into shape specs, collecting per-row errors rather than aborting.
func importFromRows(rows [][]string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	mapping, hasHeader := DetectColumns(rows[0])
	if !hasHeader {
		result.Errors = append(result.Errors, "No header row found; the first line must name the columns (kind, radius, width, height, side, sides, label, quantity)")
		return result
	}
	if mapping.Kind == -1 {
		result.Errors = append(result.Errors, "Required column not found in header: kind")
		return result
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("Line %d", lineNum)
		spec, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Specs = append(result.Specs, spec)
	}

	return result
}
