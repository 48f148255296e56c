package tabular

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

const parserSpreadsheet = "spreadsheet"

var errNoSheets = errors.New("workbook has no sheets")

func readSpreadsheet(data []byte) (rows []models.RawRow, err error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, spreadsheetError("workbook", "", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			rows, err = nil, spreadsheetError("workbook", "", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, spreadsheetError("workbook", "", errNoSheets)
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, spreadsheetError("sheet", sheet, err)
	}

	date1904 := false
	if props, propErr := f.GetWorkbookProps(); propErr == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows = make([]models.RawRow, 0, len(raw))
	for r, values := range raw {
		row := make(models.RawRow, len(values))
		for c, value := range values {
			row[c] = readCell(f, sheet, c+1, r+1, value, date1904)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readCell keeps date cells as native times; everything else stays text.
func readCell(f *excelize.File, sheet string, col, row int, value string, date1904 bool) models.Cell {
	if strings.TrimSpace(value) == "" {
		return models.TextCell("")
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return models.TextCell(value)
	}

	cellType, err := f.GetCellType(sheet, ref)
	if err != nil {
		return models.TextCell(value)
	}

	switch cellType {
	case excelize.CellTypeDate:
		if t, ok := parseISOCell(value); ok {
			return models.TimeCell(t)
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if !hasDateFormat(f, sheet, ref) {
			break
		}
		serial, parseErr := strconv.ParseFloat(value, 64)
		if parseErr != nil {
			break
		}
		if t, convErr := excelize.ExcelDateToTime(serial, date1904); convErr == nil {
			return models.TimeCell(t)
		}
	}
	return models.TextCell(value)
}

func parseISOCell(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// built-in number formats that render dates
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func hasDateFormat(f *excelize.File, sheet, ref string) bool {
	styleID, err := f.GetCellStyle(sheet, ref)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return builtinDateFormats[style.NumFmt]
}

// isDateFormatCode reports whether a custom number format shows a day or a
// year. Quoted literals and bracketed sections are ignored.
func isDateFormatCode(code string) bool {
	inQuotes, inBrackets := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case inQuotes:
		case r == '[':
			inBrackets = true
		case r == ']':
			inBrackets = false
		case inBrackets:
		case r == 'd' || r == 'y':
			return true
		}
	}
	return false
}

func spreadsheetError(field, value string, err error) error {
	return &parsererror.ParseError{
		Parser: parserSpreadsheet,
		Field:  field,
		Value:  value,
		Err:    err,
	}
}
