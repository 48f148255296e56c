package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parsererror"
)

const (
	parserDelimited = "delimited"
	sniffLines      = 10
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// candidate delimiters in tie-break order
var delimiterCandidates = []rune{',', '\t', ';'}

func readDelimited(data []byte) ([]models.RawRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	delimiter := SniffDelimiter(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var rows []models.RawRow
	newlines, offset := 0, int64(0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			field := "record"
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				field = fmt.Sprintf("line %d", pe.StartLine)
			}
			return nil, &parsererror.ParseError{
				Parser: parserDelimited,
				Field:  field,
				Value:  string(delimiter),
				Err:    err,
			}
		}

		// encoding/csv drops empty lines; keep them so row positions match
		// the physical lines of the file.
		start, _ := reader.FieldPos(0)
		for l := newlines + 1; l < start; l++ {
			rows = append(rows, models.RawRow{})
		}
		rows = append(rows, models.RowFromStrings(record...))

		end := reader.InputOffset()
		newlines += bytes.Count(data[offset:end], []byte("\n"))
		offset = end
	}
	return rows, nil
}

// SniffDelimiter picks the candidate delimiter occurring most often outside
// quotes in the first non-empty lines. Comma wins ties and is the default.
func SniffDelimiter(data []byte) rune {
	counts := make(map[rune]int, len(delimiterCandidates))
	seen := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		inQuotes := false
		for _, r := range string(line) {
			if r == '"' {
				inQuotes = !inQuotes
				continue
			}
			if inQuotes {
				continue
			}
			if isCandidate(r) {
				counts[r]++
			}
		}
		seen++
		if seen == sniffLines {
			break
		}
	}

	best, bestCount := delimiterCandidates[0], 0
	for _, c := range delimiterCandidates {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

func isCandidate(r rune) bool {
	for _, c := range delimiterCandidates {
		if c == r {
			return true
		}
	}
	return false
}
