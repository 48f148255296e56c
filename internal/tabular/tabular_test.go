package tabular

import (
	"testing"
	"time"

	"fjacquet/spendlens/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{"statement.csv", KindDelimited, false},
		{"export.TSV", KindDelimited, false},
		{"bank.txt", KindDelimited, false},
		{"ledger.xlsx", KindSpreadsheet, false},
		{"macro.xlsm", KindSpreadsheet, false},
		{"statement.xml", 0, true},
		{"noext", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := KindFromFilename(tt.name)
			if tt.wantErr {
				var formatErr *parsererror.InvalidFormatError
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "Datum;Betrag;Text\n01.02.2024;-3,50;Kaffee\n", ';'},
		{"tab", "date\tamount\tmemo\n", '\t'},
		{"quoted commas ignored", "\"a,b,c\";x;y\n", ';'},
		{"tie goes to comma", "a,b;c\n", ','},
		{"no delimiter", "single\n", ','},
		{"empty", "", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SniffDelimiter([]byte(tt.data)))
		})
	}
}

func TestReadDelimited(t *testing.T) {
	data := "\xEF\xBB\xBFFirst National Bank\n" +
		"Date,Description,Amount\n" +
		"2024-01-05,\"Coffee, \"\"large\"\"\",-4.50\n" +
		"\n" +
		"2024-01-06,Salary,2000,extra\n"

	rows, err := Read([]byte(data), KindDelimited)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"First National Bank"}, rows[0].Strings())
	assert.Equal(t, []string{"Date", "Description", "Amount"}, rows[1].Strings())
	assert.Equal(t, []string{"2024-01-05", "Coffee, \"large\"", "-4.50"}, rows[2].Strings())
	assert.True(t, rows[3].IsBlank())
	assert.Equal(t, []string{"2024-01-06", "Salary", "2000", "extra"}, rows[4].Strings())
}

func TestReadDelimited_BlankLinesKeepPositions(t *testing.T) {
	data := "Bank\r\n\r\n\r\nDate,Memo,Amount\r\n2024-01-05,\"two\nlines\",-1\r\n\r\n2024-01-06,Tea,-2\r\n\r\n"

	rows, err := Read([]byte(data), KindDelimited)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.True(t, rows[1].IsBlank())
	assert.True(t, rows[2].IsBlank())
	assert.Equal(t, []string{"Date", "Memo", "Amount"}, rows[3].Strings())
	assert.Equal(t, []string{"2024-01-05", "two\nlines", "-1"}, rows[4].Strings())
	assert.True(t, rows[5].IsBlank())
	assert.Equal(t, []string{"2024-01-06", "Tea", "-2"}, rows[6].Strings())
}

func TestReadDelimited_Semicolon(t *testing.T) {
	rows, err := Read([]byte("Datum;Text;Betrag\r\n31.01.2024;Migros;-12,30\r\n"), KindDelimited)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"31.01.2024", "Migros", "-12,30"}, rows[1].Strings())
}

func TestReadDelimited_Malformed(t *testing.T) {
	rows, err := Read([]byte("a,b,c\n1,\"unterminated,3\n"), KindDelimited)
	assert.Nil(t, rows)

	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parserDelimited, parseErr.Parser)
}

func TestReadDelimited_Empty(t *testing.T) {
	rows, err := Read(nil, KindDelimited)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func buildWorkbook(t *testing.T, fill func(f *excelize.File, sheet string)) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	fill(f, sheet)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadSpreadsheet(t *testing.T) {
	posted := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	data := buildWorkbook(t, func(f *excelize.File, sheet string) {
		require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Account 1234"}))
		require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Posted", "Merchant", "", "Amount"}))
		require.NoError(t, f.SetCellValue(sheet, "A3", posted))
		require.NoError(t, f.SetCellValue(sheet, "B3", "Whole Foods"))
		require.NoError(t, f.SetCellValue(sheet, "D3", -82.15))
	})

	rows, err := Read(data, KindSpreadsheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Account 1234", rows[0][0].Text)
	assert.Equal(t, []string{"Posted", "Merchant", "", "Amount"}, rows[1].Strings())

	dateCell := rows[2][0]
	assert.True(t, dateCell.IsTime)
	assert.Equal(t, "2024-03-14", dateCell.Text)
	assert.Equal(t, "Whole Foods", rows[2][1].Text)
	assert.True(t, rows[2][2].IsBlank())
	assert.False(t, rows[2][3].IsTime)
	assert.Equal(t, "-82.15", rows[2][3].Text)
}

func TestReadSpreadsheet_Corrupt(t *testing.T) {
	rows, err := Read([]byte("PK\x03\x04 not really a zip"), KindSpreadsheet)
	assert.Nil(t, rows)

	var parseErr *parsererror.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, parserSpreadsheet, parseErr.Parser)
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"dd/mm/yyyy", true},
		{"#,##0.00", false},
		{"0.00\" days\"", false},
		{"[Red]0.00", false},
		{"hh:mm", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "delimited", KindDelimited.String())
	assert.Equal(t, "spreadsheet", KindSpreadsheet.String())
	assert.Equal(t, "unknown", Kind(9).String())
	_, err := Read(nil, Kind(9))
	assert.Error(t, err)
}
