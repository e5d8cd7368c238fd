package screening

import (
	"strings"

	"github.com/jdvermeer/screenlist/internal/tabular"
)

// Header vocabulary. The lists are ordered: where resolution is by alias
// priority, earlier aliases win over later ones regardless of column order.
var (
	firstNameAliases = []string{"first name", "voor naam", "naam"}
	lastNameAliases  = []string{"last name", "achternaam"}

	// referenceCompanyAliases is the priority order used when loading
	// reference files.
	referenceCompanyAliases = []string{
		"company name",
		"company",
		"huidig bedrijf",
		"currrent company", // the triple-r spelling appears in real exports
		"current company",
		"company table data",
	}

	// uploadCompanyAliases is the priority order used for uploaded tables.
	// It differs from the reference order and accepts a bare "name" column
	// as a company source.
	uploadCompanyAliases = []string{
		"company table data",
		"company name",
		"huidig bedrijf",
		"company",
		"name",
	}
)

// ColumnMap holds the resolved column index per logical field, -1 when no
// header matched. Resolution happens once per table, then applies uniformly
// to every row.
type ColumnMap struct {
	First   int
	Last    int
	Company int
}

// UploadColumns resolves the logical fields of an uploaded table. Name
// columns resolve to the leftmost column whose header is any known alias;
// the company column resolves by alias priority.
func UploadColumns(headers []string) ColumnMap {
	return ColumnMap{
		First:   findAnyOf(headers, firstNameAliases),
		Last:    findAnyOf(headers, lastNameAliases),
		Company: findByPriority(headers, uploadCompanyAliases),
	}
}

// ReferenceColumns resolves the logical fields of a reference file. All
// three fields resolve by alias priority.
func ReferenceColumns(headers []string) ColumnMap {
	return ColumnMap{
		First:   findByPriority(headers, firstNameAliases),
		Last:    findByPriority(headers, lastNameAliases),
		Company: findByPriority(headers, referenceCompanyAliases),
	}
}

// KeyAt derives the canonical key for one row of an uploaded table.
// The name key is only derived when BOTH a first-name and a last-name
// column resolved; with either missing the name is empty for every row.
func (m ColumnMap) KeyAt(t *tabular.Table, row int) Key {
	var k Key
	if m.First >= 0 && m.Last >= 0 {
		first := Normalize(t.Cell(row, m.First))
		last := Normalize(t.Cell(row, m.Last))
		k.Name = strings.TrimSpace(first + " " + last)
	}
	if m.Company >= 0 {
		k.Company = Normalize(t.Cell(row, m.Company))
	}
	return k
}

// findAnyOf returns the index of the leftmost column whose normalized
// header is any of the aliases, or -1.
func findAnyOf(headers, aliases []string) int {
	for i, h := range headers {
		norm := tabular.NormalizeHeader(h)
		for _, alias := range aliases {
			if norm == alias {
				return i
			}
		}
	}
	return -1
}

// findByPriority returns the index of the first column matching the
// earliest alias, or -1. Aliases are scanned in order; for each alias the
// leftmost matching column wins.
func findByPriority(headers, aliases []string) int {
	for _, alias := range aliases {
		for i, h := range headers {
			if tabular.NormalizeHeader(h) == alias {
				return i
			}
		}
	}
	return -1
}
