// Package ingest is the data boundary in front of the pipeline: it parses
// ledger CSV files, validates their shape and synthesizes sample ledgers.
// Everything here runs strictly before analysis starts; the pipeline
// itself assumes well-formed input.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthguru/finance-coach/internal/domain"
)

// DateLayout is the date format of ledger files.
const DateLayout = "2006-01-02"

var (
	// ErrMissingColumns marks a header that lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrMalformedRow marks a data row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed row")
)

// requiredColumns must all appear in the header. Order is free and extra
// columns are tolerated and ignored.
var requiredColumns = []string{"date", "income", "spending", "category"}

// ParseCSV reads a transaction ledger. The first record is the header;
// every further record is one transaction. Row errors carry the 1-based
// data row number.
func ParseCSV(r io.Reader) (domain.Ledger, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parse csv: empty input: %w", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: reading header: %w", err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	var ledger domain.Ledger
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: row %d: %w: %v", row, ErrMalformedRow, err)
		}
		tx, err := parseRow(record, columns)
		if err != nil {
			return nil, fmt.Errorf("parse csv: row %d: %w: %v", row, ErrMalformedRow, err)
		}
		ledger = append(ledger, tx)
	}
	return ledger, nil
}

// ReadFile loads a ledger from a CSV file on disk.
func ReadFile(path string) (domain.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// WriteCSV writes a ledger in the same form ParseCSV reads.
func WriteCSV(w io.Writer, ledger domain.Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requiredColumns); err != nil {
		return fmt.Errorf("write csv: header: %w", err)
	}
	for i, tx := range ledger {
		record := []string{
			tx.Date.Format(DateLayout),
			tx.Income.String(),
			tx.Spending.String(),
			tx.Category,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv: row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// indexColumns maps lower-cased header names to their positions and
// reports every required column that is absent.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (domain.Transaction, error) {
	field := func(name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := time.Parse(DateLayout, field("date"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("date %q: want %s", field("date"), DateLayout)
	}

	income, err := parseAmount(field("income"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("income: %w", err)
	}
	spending, err := parseAmount(field("spending"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("spending: %w", err)
	}

	category := field("category")
	if category == "" {
		return domain.Transaction{}, fmt.Errorf("category is empty")
	}

	return domain.Transaction{
		Date:     date,
		Income:   income,
		Spending: spending,
		Category: category,
	}, nil
}

// parseAmount reads a money cell. Empty cells count as zero, which lets
// income rows leave the spending column blank and vice versa.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("amount %q: %w", s, err)
	}
	return d, nil
}
