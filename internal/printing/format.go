package printing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	idPrinter = message.NewPrinter(language.Indonesian)
	idTitle   = cases.Title(language.Indonesian)
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatRupiah formats an amount the way Indonesian cash books print it:
// "Rp 1.234.567", with ",50" style cents only when present.
func formatRupiah(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	out := sign + "Rp " + idPrinter.Sprintf("%d", whole.IntPart())
	if frac := d.Sub(whole); !frac.IsZero() {
		cents := frac.Shift(2).Round(0).IntPart()
		out += fmt.Sprintf(",%02d", cents)
	}
	return out
}

// formatDay prints a calendar day as dd/mm/yyyy.
func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatLongDay prints a calendar day as "2 Januari 2024".
func formatLongDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

func formatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

func titleCase(s string) string {
	return idTitle.String(strings.ToLower(s))
}
