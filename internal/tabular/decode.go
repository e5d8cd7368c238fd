package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned when a file contains no rows at all.
var ErrEmptyFile = errors.New("empty file")

// utf8BOM is the byte order mark some exporters prepend to CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses file bytes into a Table. Files named *.csv are treated as
// delimited text with delimiter sniffing and a Latin-1 fallback for bytes
// that are not valid UTF-8; anything else is decoded as a spreadsheet.
// Any parse failure is returned to the caller.
func Decode(data []byte, filename string) (*Table, error) {
	return decode(data, filename, false)
}

// DecodeLenient is Decode for reference files: malformed delimited records
// are dropped and counted on the Table instead of failing the whole file.
// File-level failures (unreadable workbook, empty file) are still errors.
func DecodeLenient(data []byte, filename string) (*Table, error) {
	return decode(data, filename, true)
}

func decode(data []byte, filename string, lenient bool) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return decodeDelimited(data, lenient)
	}
	return decodeWorkbook(data)
}

// decodeDelimited parses delimited text. The delimiter is sniffed from a
// sample of the file; bytes that fail UTF-8 validation are re-read as
// Latin-1, which accepts every byte value.
//
// Rows wider than the header row are malformed: dropped in lenient mode,
// an error otherwise. Rows narrower than the header are kept — Cell pads
// the missing trailing fields with empty strings.
func decodeDelimited(data []byte, lenient bool) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = SniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	skipped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if lenient {
				skipped++
				continue
			}
			return nil, fmt.Errorf("parse delimited text: %w", err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := records[0]
	rows := make([][]string, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) > len(headers) {
			if lenient {
				skipped++
				continue
			}
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+1, len(headers), len(rec))
		}
		rows = append(rows, rec)
	}

	return &Table{
		Headers:     headers,
		Rows:        rows,
		SkippedRows: skipped,
	}, nil
}

// decodeWorkbook parses a spreadsheet and reads the first sheet.
func decodeWorkbook(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	return &Table{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
