package internal

const (
	SentinelAbsent   = "AUSENTE"
	SentinelAnnulled = "ANULADO"

	ScaleLegacy  = "0-2000"
	ScaleCurrent = "0-20"

	DefaultModality = "ORDINARIA"
	DefaultPeriod   = "I"
)

func IsSentinel(v string) bool {
	return v == SentinelAbsent || v == SentinelAnnulled
}

// RawRecord is one spreadsheet row in the canonical column layout. Every
// value is kept as text exactly as read; nil means an empty cell.
type RawRecord struct {
	SourceFile string
	RowNumber  int

	DNI       *string
	FullName  *string
	Score     *string
	Condition *string
	Year      *string
	Period    *string
	Modality  *string
	Career    *string
}

type CleanRecord struct {
	DNI      string
	FullName *string
	Year     *int
	Period   *string

	Condition       *string
	Score           *float64
	OriginalScore   *float64
	NormalizedScore *float64
	Scale           string

	Modality           *string
	NormalizedModality *string
	Career             *string
	NormalizedCareer   *string
	Faculty            *string
	Area               *string
}

type DimensionRow struct {
	Key   int
	Value string
}

type DimensionTable struct {
	Name  string
	Rows  []DimensionRow
	index map[string]int
}

func NewDimensionTable(name string, rows []DimensionRow) DimensionTable {
	idx := make(map[string]int, len(rows))
	for _, r := range rows {
		idx[r.Value] = r.Key
	}
	return DimensionTable{Name: name, Rows: rows, index: idx}
}

func (t DimensionTable) KeyOf(value string) (int, bool) {
	key, ok := t.index[value]
	return key, ok
}

func (t DimensionTable) Len() int {
	return len(t.Rows)
}

type ApplicantRow struct {
	DNI      string
	FullName *string
}

type ApplicantTable struct {
	Rows []ApplicantRow
}

type CalendarTable struct {
	Years []int
}

type FactRow struct {
	DNI        string
	FullName   *string
	Year       *int
	YearPeriod *string

	PeriodID    *int
	ModalityID  *int
	CareerID    *int
	FacultyID   *int
	ConditionID *int
	ScaleID     *int
	AreaID      *int

	Score           *float64
	NormalizedScore *float64
}

type StarSchema struct {
	Applicants ApplicantTable
	Area       DimensionTable
	Period     DimensionTable
	Modality   DimensionTable
	Faculty    DimensionTable
	Career     DimensionTable
	Condition  DimensionTable
	Scale      DimensionTable
	Calendar   CalendarTable
	Facts      []FactRow
}
