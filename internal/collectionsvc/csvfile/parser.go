package csvfile

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// Row is one data row of an uploaded file, keyed by the trimmed and
// lower-cased header of its column.
type Row struct {
	Index  int // 0-based, counting retained data rows only
	Fields map[string]string
}

// Line is the user-facing row number: data index plus the header line
// and the 1-based offset, i.e. the row's position in the file.
func (r Row) Line() int {
	return r.Index + 2
}

// ParseError is a structural CSV failure (unbalanced quote, inconsistent
// column count). Any ParseError makes the whole upload unprocessable.
type ParseError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (e ParseError) Error() string {
	return e.Message
}

// Parse reads delimited text using the first line as the header. Blank
// lines and rows whose every field is empty are skipped and do not
// consume a row index. Structural errors are collected per line; when
// any are present the returned rows must not be used.
func Parse(text string) ([]Row, []ParseError) {
	r := csv.NewReader(strings.NewReader(text))

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, []ParseError{toParseError(err)}
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []Row
	var perrs []ParseError
	index := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			perrs = append(perrs, toParseError(err))
			continue
		}
		if empty(record) {
			continue
		}
		fields := make(map[string]string, len(header))
		for i, h := range header {
			fields[h] = record[i]
		}
		rows = append(rows, Row{Index: index, Fields: fields})
		index++
	}
	return rows, perrs
}

func empty(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func toParseError(err error) ParseError {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return ParseError{Line: pe.Line, Message: pe.Err.Error()}
	}
	return ParseError{Line: 0, Message: err.Error()}
}
