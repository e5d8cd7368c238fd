package screening

import "strings"

// Normalize reduces a raw cell value to its matching form: lowercased and
// trimmed of surrounding whitespace. The literal text "nan" (any casing,
// compared before trimming) becomes the empty string, since spreadsheet
// exports write it for missing cells.
func Normalize(s string) string {
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s))
}
