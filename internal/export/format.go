// Package export renders deal reports and plot statements as PDF, XLSX and CSV.
package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"plotbook/internal/domain"
)

// Options carries presentation settings shared by all renderers.
type Options struct {
	CompanyName string
	Currency    string
}

// FormatAmount renders v with two decimals and Indian digit grouping,
// e.g. 1234567.5 → "12,34,567.50".
func FormatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	if neg && strings.Trim(intPart+frac, "0") != "" {
		grouped = "-" + grouped
	}
	return grouped + "." + frac
}

// groupIndian groups the last three digits, then every two before them.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// FormatMoney prefixes FormatAmount with the configured currency symbol.
func (o Options) FormatMoney(v float64) string {
	if o.Currency == "" {
		return FormatAmount(v)
	}
	return o.Currency + " " + FormatAmount(v)
}

// FormatDate renders a date as DD-MM-YYYY, or "-" when unset.
func FormatDate(d domain.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02-01-2006")
}

func formatDatePtr(d *domain.Date) string {
	if d == nil {
		return ""
	}
	return FormatDate(*d)
}

func formatQuantity(v float64, places int32) string {
	return decimal.NewFromFloat(v).Round(places).String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
