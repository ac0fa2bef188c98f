package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"admision/internal"
	"admision/internal/util"
)

var exportHeaders = []string{
	"DNI", "APELLIDOS Y NOMBRES", "PUNTAJE", "CONDICION", "AÑO", "PERIODO",
	"MODALIDAD", "CARRERA", "Escala", "PuntajeOriginal", "Puntaje_normalizado",
	"MODALIDAD NORMALIZADA", "CARRERA NORMALIZADA", "FACULTAD", "AREA",
}

// ExportCleanToXLSX writes the cleaned dataset. Nil values become empty cells.
func ExportCleanToXLSX(records []internal.CleanRecord, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, rec := range records {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, rec.DNI)
		set(2, util.Deref(rec.FullName))
		set(3, derefFloat(rec.Score))
		set(4, util.Deref(rec.Condition))
		set(5, derefInt(rec.Year))
		set(6, util.Deref(rec.Period))
		set(7, util.Deref(rec.Modality))
		set(8, util.Deref(rec.Career))
		set(9, rec.Scale)
		set(10, derefFloat(rec.OriginalScore))
		set(11, derefFloat(rec.NormalizedScore))
		set(12, util.Deref(rec.NormalizedModality))
		set(13, util.Deref(rec.NormalizedCareer))
		set(14, util.Deref(rec.Faculty))
		set(15, util.Deref(rec.Area))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ReadCleanXLSX loads a file written by ExportCleanToXLSX.
func ReadCleanXLSX(path string) ([]internal.CleanRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := map[string]int{}
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	for _, h := range exportHeaders {
		if _, ok := idx[h]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, h)
		}
	}

	text := func(row []string, name string) *string {
		return cellAt(row, idx, name)
	}
	number := func(row []string, name string) *float64 {
		v := text(row, name)
		if v == nil {
			return nil
		}
		parsed, ok := util.ParseFloat(*v)
		if !ok {
			return nil
		}
		return &parsed
	}

	out := make([]internal.CleanRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		dni := text(row, "DNI")
		if dni == nil {
			continue
		}
		out = append(out, internal.CleanRecord{
			DNI:                *dni,
			FullName:           text(row, "APELLIDOS Y NOMBRES"),
			Score:              number(row, "PUNTAJE"),
			Condition:          text(row, "CONDICION"),
			Year:               coerceYear(text(row, "AÑO")),
			Period:             text(row, "PERIODO"),
			Modality:           text(row, "MODALIDAD"),
			Career:             text(row, "CARRERA"),
			Scale:              util.Deref(text(row, "Escala")),
			OriginalScore:      number(row, "PuntajeOriginal"),
			NormalizedScore:    number(row, "Puntaje_normalizado"),
			NormalizedModality: text(row, "MODALIDAD NORMALIZADA"),
			NormalizedCareer:   text(row, "CARRERA NORMALIZADA"),
			Faculty:            text(row, "FACULTAD"),
			Area:               text(row, "AREA"),
		})
	}
	return out, nil
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}
