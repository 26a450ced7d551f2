package importer

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/fintra/fintra/internal/apperror"
	"github.com/fintra/fintra/internal/encoding"
)

// maxSpreadsheetRows caps how many rows are read out of a workbook.
const maxSpreadsheetRows = 10000

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// normalizeStatement converts the uploaded file to the row-oriented text
// representation the classifier expects. Delimited text passes through with
// its charset normalized to UTF-8; spreadsheets are flattened to
// comma-separated rows. Anything else is rejected before the classifier is
// ever invoked.
func normalizeStatement(data []byte, filename, mimeType string) (string, error) {
	switch {
	case isDelimitedText(filename, mimeType):
		text, err := encoding.DecodeText(data)
		if err != nil {
			return "", apperror.InvalidInput("could not decode file: %v", err)
		}

		return text, nil
	case isLegacySpreadsheet(filename, mimeType):
		return xlsToText(data)
	case isWorkbook(filename, mimeType):
		return xlsxToText(data)
	default:
		return "", apperror.InvalidInput("unsupported file format, please upload a CSV, XLS, or XLSX statement")
	}
}

func isDelimitedText(filename, mimeType string) bool {
	if mimeType == "text/csv" || mimeType == "text/plain" {
		return true
	}

	ext := strings.ToLower(filepath.Ext(filename))

	return ext == ".csv" || ext == ".txt"
}

func isLegacySpreadsheet(filename, mimeType string) bool {
	if mimeType == "application/vnd.ms-excel" {
		return true
	}

	return strings.ToLower(filepath.Ext(filename)) == ".xls"
}

func isWorkbook(filename, mimeType string) bool {
	if mimeType == xlsxMimeType {
		return true
	}

	return strings.ToLower(filepath.Ext(filename)) == ".xlsx"
}

// xlsToText flattens the first sheet of a legacy Excel workbook into
// comma-separated rows.
func xlsToText(data []byte) (string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return "", apperror.InvalidInput("could not read spreadsheet: %v", err)
	}

	rows := workbook.ReadAllCells(maxSpreadsheetRows)

	return joinRows(rows)
}

// xlsxToText flattens the first sheet of an OOXML workbook into
// comma-separated rows.
func xlsxToText(data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", apperror.InvalidInput("could not read spreadsheet: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		return "", apperror.InvalidInput("could not read spreadsheet: %v", err)
	}

	if len(rows) > maxSpreadsheetRows {
		rows = rows[:maxSpreadsheetRows]
	}

	return joinRows(rows)
}

func joinRows(rows [][]string) (string, error) {
	if len(rows) == 0 {
		return "", apperror.InvalidInput("no data found in spreadsheet")
	}

	var b strings.Builder

	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String(), nil
}
