// Package legacy imports the petty-cash ledgers exported from the old
// spreadsheet based cash book.
package legacy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Columns of the legacy export, in order.
var columns = []string{"date", "entity", "direction", "amount", "description", "category", "status"}

const (
	colDate = iota
	colEntity
	colDirection
	colAmount
	colDescription
	colCategory
	colStatus
)

var dateLayouts = []string{domain.DateLayout, "02/01/2006", "2/1/2006"}

// Row is one parsed line of the export.
type Row struct {
	Line        int
	Date        time.Time
	Entity      domain.EntityCode
	Direction   domain.Direction
	Amount      decimal.Decimal
	Description string
	Category    string
	Status      domain.ApprovalStatus
}

// IsCarryForward reports whether the legacy row was a "Sisa Saldo" marker.
func (r Row) IsCarryForward() bool {
	return domain.IsLegacyCarryForwardDescription(r.Description)
}

// RowError ties a parse or validation failure to its line.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Parse reads the export. Days are anchored in loc. Bad lines are collected
// in the returned RowErrors; the error result is only set when the file
// itself cannot be read.
func Parse(r io.Reader, loc *time.Location) ([]Row, []RowError, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("legacy export is empty")
		}
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i, want := range columns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, nil, fmt.Errorf("unexpected header %q in column %d, want %q", header[i], i+1, want)
		}
	}

	var (
		rows    []Row
		rowErrs []RowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
				rowErrs = append(rowErrs, RowError{Line: perr.StartLine, Err: perr.Err})
				continue
			}
			return nil, nil, fmt.Errorf("reading legacy export: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		row, err := parseRow(rec, loc)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(rec []string, loc *time.Location) (Row, error) {
	date, err := parseDate(strings.TrimSpace(rec[colDate]), loc)
	if err != nil {
		return Row{}, err
	}
	direction, err := parseDirection(rec[colDirection])
	if err != nil {
		return Row{}, err
	}
	amount, err := parseAmount(rec[colAmount])
	if err != nil {
		return Row{}, err
	}
	status, err := parseStatus(rec[colStatus])
	if err != nil {
		return Row{}, err
	}
	description := strings.TrimSpace(rec[colDescription])
	if description == "" {
		return Row{}, errors.New("description is required")
	}
	entity := domain.EntityCode(strings.ToUpper(strings.TrimSpace(rec[colEntity])))
	if entity == "" {
		return Row{}, errors.New("entity is required")
	}
	return Row{
		Date:        date,
		Entity:      entity,
		Direction:   direction,
		Amount:      amount,
		Description: description,
		Category:    strings.TrimSpace(rec[colCategory]),
		Status:      status,
	}, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func parseDirection(s string) (domain.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "masuk", "debit":
		return domain.DirectionIn, nil
	case "out", "keluar", "kredit":
		return domain.DirectionOut, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// parseAmount accepts plain numbers and Rupiah notation with "." thousands
// separators, e.g. "Rp 1.250.000" or "1.500,00". Amounts must be whole rupiah.
func parseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "Rp"), "rp")
	raw = strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.Contains(raw, ",") || thousandsGrouped(raw) {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.Replace(raw, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("amount %q must not be negative", s)
	}
	if !amount.Equal(amount.Truncate(0)) {
		return decimal.Decimal{}, fmt.Errorf("amount %q must be a whole number of rupiah", s)
	}
	return amount, nil
}

// thousandsGrouped reports whether every "." in raw separates a group of
// three digits, as in "30.000". A single "." followed by other than three
// digits is a decimal point.
func thousandsGrouped(raw string) bool {
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

func parseStatus(s string) (domain.ApprovalStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "approved", "disetujui":
		return domain.StatusApproved, nil
	case "pending", "menunggu":
		return domain.StatusPending, nil
	case "rejected", "ditolak":
		return domain.StatusRejected, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
