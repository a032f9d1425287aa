package metadata

import "math"

// subjectRow mirrors one row of the subject metadata table. The age columns
// are optional; a missing value stays nil so an unknown age is never read as
// zero.
type subjectRow struct {
	ID        string   `parquet:"ID"`
	Age       *float64 `parquet:"age,optional"`
	AgeMonths *float64 `parquet:"age_months,optional"`
}

// ageYears resolves the row's age in years. A direct age value wins; a
// months value is converted by dividing by 12. Rows with neither, or with a
// not-a-number value, report false and stay out of the mapping.
func (r subjectRow) ageYears() (float64, bool) {
	if r.Age != nil && !math.IsNaN(*r.Age) {
		return *r.Age, true
	}
	if r.AgeMonths != nil && !math.IsNaN(*r.AgeMonths) {
		return *r.AgeMonths / 12, true
	}
	return 0, false
}
