package storage

import "admision/internal"

type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInt
	TypeSmallInt
	TypeFloat
)

type Column struct {
	Name string
	Type ColumnType
	Size int
	// Required columns are tightened to NOT NULL in the constraint phase.
	Required bool
}

type ForeignKey struct {
	Name      string
	Column    string
	RefTable  string
	RefColumn string
}

type Table struct {
	Name        string
	Columns     []Column
	PKName      string
	PrimaryKey  string
	ForeignKeys []ForeignKey
}

func (t Table) ColumnNames() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, c.Name)
	}
	return out
}

func (t Table) constrained() bool {
	return t.PrimaryKey != "" || len(t.ForeignKeys) > 0 || t.hasRequired()
}

func (t Table) hasRequired() bool {
	for _, c := range t.Columns {
		if c.Required {
			return true
		}
	}
	return false
}

func text(name string, size int, required bool) Column {
	return Column{Name: name, Type: TypeText, Size: size, Required: required}
}

func key(name string) Column {
	return Column{Name: name, Type: TypeInt, Required: true}
}

func dimension(name, pkName, keyColumn, valueColumn string, size int) Table {
	return Table{
		Name:       name,
		Columns:    []Column{key(keyColumn), text(valueColumn, size, true)},
		PKName:     pkName,
		PrimaryKey: keyColumn,
	}
}

var (
	applicantTable = Table{
		Name:       "Dim_Postulante",
		Columns:    []Column{text("DNI", 20, true), text("APELLIDOS Y NOMBRES", 60, false)},
		PKName:     "PK_Postulante",
		PrimaryKey: "DNI",
	}
	areaTable      = dimension("Dim_Area", "PK_Area", "ID_AREA", "AREA", 10)
	periodTable    = dimension("Dim_Periodo", "PK_Periodo", "ID_Periodo", "PERIODO", 10)
	modalityTable  = dimension("Dim_Modalidad", "PK_Modalidad", "ID_Modalidad", "MODALIDAD", 60)
	facultyTable   = dimension("Dim_Facultad", "PK_Facultad", "ID_Facultad", "FACULTAD", 60)
	careerTable    = dimension("Dim_Carreras", "PK_Carreras", "ID_Carrera", "CARRERA", 80)
	conditionTable = dimension("Dim_Condicion", "PK_Condicion", "ID_Condicion", "CONDICION", 20)
	scaleTable     = dimension("Dim_Escala", "PK_Escala", "ID_Escala", "ESCALA", 20)
	calendarTable  = Table{
		Name:    "Calen_Año",
		Columns: []Column{{Name: "Anio", Type: TypeSmallInt}},
	}

	factTable = Table{
		Name: "Fact_Admision",
		Columns: []Column{
			text("DNI", 20, false),
			text("APELLIDOS Y NOMBRES", 60, false),
			{Name: "AÑO", Type: TypeSmallInt},
			text("AñoPeriodo", 10, false),
			{Name: "ID_Periodo", Type: TypeInt},
			{Name: "ID_Modalidad", Type: TypeInt},
			{Name: "ID_Carrera", Type: TypeInt},
			{Name: "ID_Facultad", Type: TypeInt},
			{Name: "ID_Condicion", Type: TypeInt},
			{Name: "ID_Escala", Type: TypeInt},
			{Name: "ID_AREA", Type: TypeInt},
			{Name: "PUNTAJE", Type: TypeFloat},
			{Name: "Puntaje_normalizado", Type: TypeFloat},
		},
		ForeignKeys: []ForeignKey{
			{Name: "FK_Fact_Postulante", Column: "DNI", RefTable: "Dim_Postulante", RefColumn: "DNI"},
			{Name: "FK_Fact_Area", Column: "ID_AREA", RefTable: "Dim_Area", RefColumn: "ID_AREA"},
			{Name: "FK_Fact_Periodo", Column: "ID_Periodo", RefTable: "Dim_Periodo", RefColumn: "ID_Periodo"},
			{Name: "FK_Fact_Modalidad", Column: "ID_Modalidad", RefTable: "Dim_Modalidad", RefColumn: "ID_Modalidad"},
			{Name: "FK_Fact_Facultad", Column: "ID_Facultad", RefTable: "Dim_Facultad", RefColumn: "ID_Facultad"},
			{Name: "FK_Fact_Carreras", Column: "ID_Carrera", RefTable: "Dim_Carreras", RefColumn: "ID_Carrera"},
			{Name: "FK_Fact_Condicion", Column: "ID_Condicion", RefTable: "Dim_Condicion", RefColumn: "ID_Condicion"},
			{Name: "FK_Fact_Escala", Column: "ID_Escala", RefTable: "Dim_Escala", RefColumn: "ID_Escala"},
		},
	}
)

// Tables lists the sink schema with every dimension before the fact table.
func Tables() []Table {
	return []Table{
		applicantTable, areaTable, periodTable, modalityTable, facultyTable,
		careerTable, conditionTable, scaleTable, calendarTable, factTable,
	}
}

type loadSet struct {
	table Table
	rows  [][]any
}

func dimensionRows(dim internal.DimensionTable) [][]any {
	out := make([][]any, 0, len(dim.Rows))
	for _, r := range dim.Rows {
		out = append(out, []any{r.Key, r.Value})
	}
	return out
}

func loadSets(star internal.StarSchema) []loadSet {
	applicants := make([][]any, 0, len(star.Applicants.Rows))
	for _, r := range star.Applicants.Rows {
		applicants = append(applicants, []any{r.DNI, r.FullName})
	}

	years := make([][]any, 0, len(star.Calendar.Years))
	for _, y := range star.Calendar.Years {
		years = append(years, []any{y})
	}

	facts := make([][]any, 0, len(star.Facts))
	for _, f := range star.Facts {
		facts = append(facts, []any{
			f.DNI, f.FullName, f.Year, f.YearPeriod,
			f.PeriodID, f.ModalityID, f.CareerID, f.FacultyID, f.ConditionID, f.ScaleID, f.AreaID,
			f.Score, f.NormalizedScore,
		})
	}

	return []loadSet{
		{table: applicantTable, rows: applicants},
		{table: areaTable, rows: dimensionRows(star.Area)},
		{table: periodTable, rows: dimensionRows(star.Period)},
		{table: modalityTable, rows: dimensionRows(star.Modality)},
		{table: facultyTable, rows: dimensionRows(star.Faculty)},
		{table: careerTable, rows: dimensionRows(star.Career)},
		{table: conditionTable, rows: dimensionRows(star.Condition)},
		{table: scaleTable, rows: dimensionRows(star.Scale)},
		{table: calendarTable, rows: years},
		{table: factTable, rows: facts},
	}
}
