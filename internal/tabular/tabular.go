// Package tabular turns raw statement bytes into ordered rows of cells without
// interpreting them. Delimited text and spreadsheets are supported.
package tabular

import (
	"path/filepath"
	"strings"

	"fjacquet/spendlens/internal/models"
	"fjacquet/spendlens/internal/parsererror"
)

// Kind identifies the container format of a source.
type Kind int

const (
	KindDelimited Kind = iota
	KindSpreadsheet
)

func (k Kind) String() string {
	switch k {
	case KindDelimited:
		return "delimited"
	case KindSpreadsheet:
		return "spreadsheet"
	default:
		return "unknown"
	}
}

var extensionKinds = map[string]Kind{
	".csv":  KindDelimited,
	".tsv":  KindDelimited,
	".txt":  KindDelimited,
	".xlsx": KindSpreadsheet,
	".xlsm": KindSpreadsheet,
}

// SupportedExtensions lists the file extensions KindFromFilename accepts.
func SupportedExtensions() []string {
	return []string{".csv", ".tsv", ".txt", ".xlsx", ".xlsm"}
}

// KindFromFilename infers the source kind from the file extension.
func KindFromFilename(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind, nil
	}
	return 0, &parsererror.InvalidFormatError{
		FilePath:       name,
		ExpectedFormat: strings.Join(SupportedExtensions(), ", "),
		Msg:            "unsupported file extension " + ext,
	}
}

// Read parses data of the given kind into rows, in file order. A structural
// failure yields a *parsererror.ParseError and no rows.
func Read(data []byte, kind Kind) ([]models.RawRow, error) {
	switch kind {
	case KindDelimited:
		return readDelimited(data)
	case KindSpreadsheet:
		return readSpreadsheet(data)
	default:
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "delimited or spreadsheet",
			Msg:            "unknown source kind " + kind.String(),
		}
	}
}
