package converter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/nconklindev/shopmigrate/internal/config"
	"github.com/nconklindev/shopmigrate/internal/mapping"
	"github.com/nconklindev/shopmigrate/internal/types"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// RowDetectionLimit bounds the header search in spreadsheets.
const RowDetectionLimit = 10

// ReadFileData reads the header and all data rows from a CSV or XLSX export.
// Header cells are trimmed and stripped of a byte order mark.
func ReadFileData(filePath string, in config.InputConfig) (*types.FileData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		data *types.FileData
		err  error
	)
	switch ext {
	case ".csv":
		data, err = readCSVData(filePath, in)
	case ".xlsx":
		data, err = readXLSXData(filePath, in.Sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, ext)
	}
	if err != nil {
		return nil, err
	}

	for i, h := range data.Headers {
		data.Headers[i] = mapping.CleanHeader(h)
	}
	return data, nil
}

func readCSVData(filePath string, in config.InputConfig) (*types.FileData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(decode(file, in.Encoding))
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(unescapeQuotes(string(content), in.Comma())))
	reader.Comma = in.Comma()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	return &types.FileData{
		Headers: records[0],
		Rows:    records[1:],
		Lines:   lines[1:],
	}, nil
}

// unescapeQuotes rewrites a backslash-escaped quote inside a quoted field as
// a backslash followed by a doubled quote, so `"Heel 5\""` reads as
// `Heel 5\"`. A backslash before any other character is kept with it.
func unescapeQuotes(s string, comma rune) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/64)

	rs := []rune(s)
	quoted, fieldStart := false, true
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if quoted {
			switch {
			case r == '\\' && i+1 < len(rs):
				b.WriteRune(r)
				i++
				if rs[i] == '"' {
					b.WriteString(`""`)
				} else {
					b.WriteRune(rs[i])
				}
				continue
			case r == '"' && i+1 < len(rs) && rs[i+1] == '"':
				b.WriteString(`""`)
				i++
				continue
			case r == '"':
				quoted = false
			}
			b.WriteRune(r)
			continue
		}

		b.WriteRune(r)
		switch {
		case r == comma, r == '\n':
			fieldStart = true
		case r == '\r':
		case r == '"' && fieldStart:
			quoted, fieldStart = true, false
		default:
			fieldStart = false
		}
	}
	return b.String()
}

// decode wraps r with a decoder for single-byte encodings used by older
// spreadsheet exports.
func decode(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(encoding) {
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r)
	case "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r)
	default:
		return r
	}
}

func readXLSXData(filePath, sheet string) (*types.FileData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	// Exports sometimes carry a title block above the header.
	headerRowIdx := findHeaderRow(rows)
	if headerRowIdx == -1 {
		return nil, ErrNoHeader
	}

	return &types.FileData{
		Headers:   rows[headerRowIdx],
		Rows:      rows[headerRowIdx+1:],
		HeaderRow: headerRowIdx,
		Lines:     sheetLines(headerRowIdx, len(rows)-headerRowIdx-1),
	}, nil
}

// findHeaderRow locates the first row that appears to be a header
// by finding the row with the most non-empty text cells
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	searchLimit := min(len(rows), RowDetectionLimit*2)

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		if nonEmptyCount >= 2 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}

	return headerIdx
}

// containsLetters checks if a string contains any letter, Swedish ones included
func containsLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// rowMap pairs a record with the header, padding short records with "".
func rowMap(headers, record []string) map[string]string {
	raw := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(record) {
			raw[h] = record[i]
		} else {
			raw[h] = ""
		}
	}
	return raw
}

// blank reports whether every cell of record is empty or whitespace.
func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sheetLines numbers n data rows following the header at headerRowIdx the
// way a spreadsheet does.
func sheetLines(headerRowIdx, n int) []int {
	lines := make([]int, n)
	for i := range lines {
		lines[i] = headerRowIdx + i + 2
	}
	return lines
}
