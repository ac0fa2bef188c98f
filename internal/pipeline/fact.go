package pipeline

import (
	"strconv"

	"admision/internal"
)

// ResolveFacts attaches surrogate keys to each cleaned row. A value missing
// from its dimension yields a nil key rather than an error; the sink's foreign
// keys decide whether that is acceptable.
func ResolveFacts(records []internal.CleanRecord, star internal.StarSchema) []internal.FactRow {
	out := make([]internal.FactRow, 0, len(records))
	for _, rec := range records {
		out = append(out, internal.FactRow{
			DNI:        rec.DNI,
			FullName:   rec.FullName,
			Year:       rec.Year,
			YearPeriod: yearPeriod(rec.Year, rec.Period),

			PeriodID:    keyOf(star.Period, rec.Period),
			ModalityID:  keyOf(star.Modality, rec.NormalizedModality),
			CareerID:    keyOf(star.Career, rec.NormalizedCareer),
			FacultyID:   keyOf(star.Faculty, rec.Faculty),
			ConditionID: keyOf(star.Condition, rec.Condition),
			ScaleID:     keyOf(star.Scale, &rec.Scale),
			AreaID:      keyOf(star.Area, rec.Area),

			Score:           rec.OriginalScore,
			NormalizedScore: rec.NormalizedScore,
		})
	}
	return out
}

// BuildStar runs the dimension and fact stages together.
func BuildStar(records []internal.CleanRecord) internal.StarSchema {
	star := BuildDimensions(records)
	star.Facts = ResolveFacts(records, star)
	return star
}

func keyOf(dim internal.DimensionTable, value *string) *int {
	if value == nil {
		return nil
	}
	key, ok := dim.KeyOf(*value)
	if !ok {
		return nil
	}
	return &key
}

func yearPeriod(year *int, period *string) *string {
	if year == nil || period == nil {
		return nil
	}
	label := strconv.Itoa(*year) + "-" + *period
	return &label
}
