package export

import (
	"fmt"
	"regexp"
	"strings"

	"plotbook/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// DealFilename returns Deal_<village>_<YYYY-MM-DD>.pdf.
func DealFilename(village string, on domain.Date) string {
	return fmt.Sprintf("%s.pdf", SanitizeFilename(fmt.Sprintf("Deal_%s_%s", fallback(village, "Land"), on.String())))
}

// StatementFilename returns Plot_<plotNumber>_<customer>_<village>.<ext>.
func StatementFilename(plotNumber, customer, village string, format domain.ExportFormat) string {
	base := fmt.Sprintf("Plot_%s_%s_%s", fallback(plotNumber, "NA"), fallback(customer, "Customer"), fallback(village, "Project"))
	return fmt.Sprintf("%s.%s", SanitizeFilename(base), format)
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
