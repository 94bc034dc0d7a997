package payroll

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every displayed amount.
const CurrencySuffix = "원"

// WholeUnits floors a money amount to whole currency units and drops the sign.
// Floor, not round: 999.5 is 999.
func WholeUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Floor().Abs().IntPart()
}

// FormatWithCommas renders n with a comma every three digits.
func FormatWithCommas(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return b.String()
}

// FormatKRW is "1,234,567원".
func FormatKRW(amount float64) string {
	return FormatWithCommas(WholeUnits(amount)) + CurrencySuffix
}

// FormatTrayTitle is the menubar label, " 1,234,567원". The leading space
// separates the amount from the tray icon.
func FormatTrayTitle(amount float64) string {
	return " " + FormatKRW(amount)
}
