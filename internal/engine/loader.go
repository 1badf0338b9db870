package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
)

// ErrEmptyFile is returned when the CSV has no header row.
var ErrEmptyFile = errors.New("no columns to parse from file")

// batchRows bounds the size of a single Arrow record batch.
const batchRows = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// nullTokens are the cell values read as missing.
var nullTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "<NA>": {},
}

// LoadTable reads the CSV at path into a SalesTable.
//
// Rows shorter than the header are padded with nulls and stray quotes inside
// unquoted fields are kept literally; rows longer than the header are an
// error. Line numbers in errors count from the top of the file.
func LoadTable(path string, logger *zap.Logger) (*SalesTable, error) {
	start := time.Now()
	logger.Info("loading sales data", zap.String("file", path))

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sales csv: %w", err)
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}
	header = append([]string(nil), header...)

	schema := schemaFromHeader(header)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()

	table := &SalesTable{schema: schema}
	flush := func() {
		rec := b.NewRecord()
		table.records = append(table.records, rec)
		table.rows += int(rec.NumRows())
	}

	pending := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			table.Release()
			return nil, fmt.Errorf("parse csv rows: %w", err)
		}
		if len(row) > len(header) {
			line, _ := r.FieldPos(0)
			table.Release()
			return nil, fmt.Errorf("parse csv rows: line %d: expected %d fields, saw %d", line, len(header), len(row))
		}

		for i := range header {
			sb := b.Field(i).(*array.StringBuilder)
			if i >= len(row) || isNullToken(row[i]) {
				sb.AppendNull()
				continue
			}
			sb.Append(row[i])
		}

		if pending++; pending == batchRows {
			flush()
			pending = 0
		}
	}
	if pending > 0 {
		flush()
	}

	logger.Info("load complete",
		zap.Int("rows", table.rows),
		zap.Int("columns", len(header)),
		zap.Int("batches", len(table.records)),
		zap.Duration("elapsed", time.Since(start)))
	return table, nil
}

func isNullToken(s string) bool {
	_, ok := nullTokens[s]
	return ok
}

// schemaFromHeader names blank headers "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ... so every column is addressable by name.
func schemaFromHeader(header []string) *arrow.Schema {
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	fields := make([]arrow.Field, len(header))
	for i, raw := range header {
		name := raw
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if used[name] {
			base := name
			for used[name] {
				suffix[base]++
				name = base + "." + strconv.Itoa(suffix[base])
			}
		}
		used[name] = true
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}
