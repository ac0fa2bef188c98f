package pipeline

import (
	"sort"

	"admision/internal"
)

const (
	TableApplicant = "Dim_Postulante"
	TableArea      = "Dim_Area"
	TablePeriod    = "Dim_Periodo"
	TableModality  = "Dim_Modalidad"
	TableFaculty   = "Dim_Facultad"
	TableCareer    = "Dim_Carreras"
	TableCondition = "Dim_Condicion"
	TableScale     = "Dim_Escala"
	TableCalendar  = "Calen_Año"
	TableFact      = "Fact_Admision"
)

// BuildDimensions derives every dimension from the cleaned rows. Keys are
// assigned 1..N in first-occurrence order, except the calendar which is
// sorted. Facts are left empty; see ResolveFacts.
func BuildDimensions(records []internal.CleanRecord) internal.StarSchema {
	return internal.StarSchema{
		Applicants: buildApplicants(records),
		Area:       buildDimension(TableArea, records, func(r internal.CleanRecord) *string { return r.Area }),
		Period:     buildDimension(TablePeriod, records, func(r internal.CleanRecord) *string { return r.Period }),
		Modality:   buildDimension(TableModality, records, func(r internal.CleanRecord) *string { return r.NormalizedModality }),
		Faculty:    buildDimension(TableFaculty, records, func(r internal.CleanRecord) *string { return r.Faculty }),
		Career:     buildDimension(TableCareer, records, func(r internal.CleanRecord) *string { return r.NormalizedCareer }),
		Condition:  buildDimension(TableCondition, records, func(r internal.CleanRecord) *string { return r.Condition }),
		Scale:      buildDimension(TableScale, records, func(r internal.CleanRecord) *string { return &r.Scale }),
		Calendar:   buildCalendar(records),
	}
}

func buildDimension(name string, records []internal.CleanRecord, pick func(internal.CleanRecord) *string) internal.DimensionTable {
	seen := map[string]struct{}{}
	rows := []internal.DimensionRow{}
	for _, rec := range records {
		v := pick(rec)
		if v == nil {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		rows = append(rows, internal.DimensionRow{Key: len(rows) + 1, Value: *v})
	}
	return internal.NewDimensionTable(name, rows)
}

// buildApplicants keeps the name of the first row seen for each DNI. Later
// rows with a different spelling do not overwrite it.
func buildApplicants(records []internal.CleanRecord) internal.ApplicantTable {
	seen := map[string]struct{}{}
	rows := []internal.ApplicantRow{}
	for _, rec := range records {
		if rec.DNI == "" {
			continue
		}
		if _, ok := seen[rec.DNI]; ok {
			continue
		}
		seen[rec.DNI] = struct{}{}
		rows = append(rows, internal.ApplicantRow{DNI: rec.DNI, FullName: rec.FullName})
	}
	return internal.ApplicantTable{Rows: rows}
}

func buildCalendar(records []internal.CleanRecord) internal.CalendarTable {
	seen := map[int]struct{}{}
	years := []int{}
	for _, rec := range records {
		if rec.Year == nil {
			continue
		}
		if _, ok := seen[*rec.Year]; ok {
			continue
		}
		seen[*rec.Year] = struct{}{}
		years = append(years, *rec.Year)
	}
	sort.Ints(years)
	return internal.CalendarTable{Years: years}
}
