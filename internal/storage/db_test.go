package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admision/internal"
	"admision/internal/config"
)

func sp(v string) *string { return &v }
func ip(v int) *int { return &v }
func fp(v float64) *float64 { return &v }

func sampleStar() internal.StarSchema {
	area := internal.NewDimensionTable("Dim_Area", []internal.DimensionRow{{Key: 1, Value: "A"}, {Key: 2, Value: "B"}})
	period := internal.NewDimensionTable("Dim_Periodo", []internal.DimensionRow{{Key: 1, Value: "I"}})
	modality := internal.NewDimensionTable("Dim_Modalidad", []internal.DimensionRow{{Key: 1, Value: "ORDINARIO"}})
	faculty := internal.NewDimensionTable("Dim_Facultad", []internal.DimensionRow{{Key: 1, Value: "FACULTAD DE INGENIERÍA CIVIL"}, {Key: 2, Value: "FACULTAD DE MEDICINA HUMANA"}})
	career := internal.NewDimensionTable("Dim_Carreras", []internal.DimensionRow{{Key: 1, Value: "INGENIERÍA CIVIL"}, {Key: 2, Value: "MEDICINA HUMANA"}})
	condition := internal.NewDimensionTable("Dim_Condicion", []internal.DimensionRow{{Key: 1, Value: "INGRESO"}, {Key: 2, Value: "AUSENTE"}})
	scale := internal.NewDimensionTable("Dim_Escala", []internal.DimensionRow{{Key: 1, Value: "0-2000"}})

	return internal.StarSchema{
		Applicants: internal.ApplicantTable{Rows: []internal.ApplicantRow{
			{DNI: "70000001", FullName: sp("QUISPE MAMANI ROSA")},
			{DNI: "70000002", FullName: nil},
			{DNI: "70000003", FullName: sp("HUAMAN TORRES LUIS")},
		}},
		Area:      area,
		Period:    period,
		Modality:  modality,
		Faculty:   faculty,
		Career:    career,
		Condition: condition,
		Scale:     scale,
		Calendar:  internal.CalendarTable{Years: []int{2019, 2020}},
		Facts: []internal.FactRow{
			{DNI: "70000001", FullName: sp("QUISPE MAMANI ROSA"), Year: ip(2020), YearPeriod: sp("2020-I"),
				PeriodID: ip(1), ModalityID: ip(1), CareerID: ip(1), FacultyID: ip(1), ConditionID: ip(1), ScaleID: ip(1), AreaID: ip(1),
				Score: fp(1500), NormalizedScore: fp(15)},
			{DNI: "70000002", Year: ip(2019), YearPeriod: sp("2019-I"),
				PeriodID: ip(1), ModalityID: ip(1), CareerID: ip(2), FacultyID: ip(2), ConditionID: ip(2), ScaleID: ip(1), AreaID: ip(2)},
			{DNI: "70000003", FullName: sp("HUAMAN TORRES LUIS"), Year: ip(2020), YearPeriod: sp("2020-I"),
				PeriodID: ip(1), ModalityID: ip(1), CareerID: nil, FacultyID: nil, ConditionID: ip(1), ScaleID: ip(1), AreaID: nil,
				Score: fp(980.5), NormalizedScore: fp(9.805)},
		},
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := config.Config{
		SinkDriver:    "sqlite",
		SinkDatabase:  filepath.Join(t.TempDir(), "sink", "BD_Unica.db"),
		SinkBatchSize: 2,
	}
	db, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableSQL(t *testing.T, db *DB, table string) string {
	t.Helper()
	var ddl string
	err := db.conn.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&ddl)
	require.NoError(t, err)
	return ddl
}

func TestPublishSQLite(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	star := sampleStar()

	for run := 0; run < 2; run++ {
		summary, err := db.Publish(ctx, star)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.Rows["Fact_Admision"])
		assert.Equal(t, 2, summary.Rows["Calen_Año"])

		expected := map[string]int{
			"Dim_Postulante": 3, "Dim_Area": 2, "Dim_Periodo": 1, "Dim_Modalidad": 1, "Dim_Facultad": 2,
			"Dim_Carreras": 2, "Dim_Condicion": 2, "Dim_Escala": 1, "Calen_Año": 2, "Fact_Admision": 3,
		}
		for table, want := range expected {
			got, err := db.CountRows(ctx, table)
			require.NoError(t, err, table)
			assert.Equal(t, want, got, table)
		}
	}

	assert.Contains(t, tableSQL(t, db, "Dim_Area"), `CONSTRAINT "PK_Area" PRIMARY KEY ("ID_AREA")`)
	assert.Contains(t, tableSQL(t, db, "Dim_Area"), `"AREA" VARCHAR(10) NOT NULL`)
	assert.NotContains(t, tableSQL(t, db, "Dim_Postulante"), `"APELLIDOS Y NOMBRES" VARCHAR(60) NOT NULL`)

	fact := tableSQL(t, db, "Fact_Admision")
	for _, fk := range factTable.ForeignKeys {
		assert.Contains(t, fact, `CONSTRAINT "`+fk.Name+`" FOREIGN KEY`)
	}
	assert.NotContains(t, tableSQL(t, db, "Calen_Año"), "PRIMARY KEY")

	var name sql.NullString
	var score, norm sql.NullFloat64
	err := db.conn.QueryRow(`SELECT "APELLIDOS Y NOMBRES", "PUNTAJE", "Puntaje_normalizado" FROM "Fact_Admision" WHERE "DNI" = ?`, "70000002").Scan(&name, &score, &norm)
	require.NoError(t, err)
	assert.False(t, name.Valid)
	assert.False(t, score.Valid)
	assert.False(t, norm.Valid)
}

func TestPublishSQLiteRollsBackConstraintsOnDanglingKey(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	star := sampleStar()
	star.Facts[0].AreaID = ip(99)

	_, err := db.Publish(ctx, star)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign key check failed")

	// Loaded data stays, constraints do not.
	n, err := db.CountRows(ctx, "Fact_Admision")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NotContains(t, tableSQL(t, db, "Dim_Area"), "PRIMARY KEY")
	assert.NotContains(t, tableSQL(t, db, "Fact_Admision"), "FOREIGN KEY")
}

func TestPublishSplitsBatchesByParameterCount(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{
		SinkDriver:    "sqlite",
		SinkDatabase:  filepath.Join(t.TempDir(), "BD_Unica.db"),
		SinkBatchSize: 5000,
	}
	db, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	const n = 3000
	star := internal.StarSchema{}
	for i := 0; i < n; i++ {
		dni := fmt.Sprintf("%08d", i+1)
		star.Applicants.Rows = append(star.Applicants.Rows, internal.ApplicantRow{DNI: dni})
		star.Facts = append(star.Facts, internal.FactRow{DNI: dni, Score: fp(1500)})
	}

	summary, err := db.Publish(ctx, star)
	require.NoError(t, err)
	assert.Equal(t, n, summary.Rows["Fact_Admision"])

	got, err := db.CountRows(ctx, "Fact_Admision")
	require.NoError(t, err)
	assert.Equal(t, n, got)
}

func TestPublishEmptyStar(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	empty := internal.StarSchema{}
	_, err := db.Publish(ctx, empty)
	require.NoError(t, err)

	n, err := db.CountRows(ctx, "Fact_Admision")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{SinkDriver: "odbc"}, nil)
	require.Error(t, err)
}

func TestOpenMySQLRequiresCredentials(t *testing.T) {
	_, err := Open(context.Background(), config.Config{SinkDriver: "mysql", SinkHost: "localhost", SinkDatabase: "bd_unica"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SINK_USER")
}

type fakeExec struct {
	failOn string
	calls  []string
}

func (f *fakeExec) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.calls = append(f.calls, query)
	if query == f.failOn {
		return nil, errors.New("boom")
	}
	return nil, nil
}

func TestApplyCompensatedUndoesAppliedSteps(t *testing.T) {
	steps := []constraintStep{
		{apply: "a1", undo: "u1"},
		{apply: "a2", undo: "u2"},
		{apply: "a3", undo: "u3"},
		{apply: "a4", undo: "u4"},
	}
	ex := &fakeExec{failOn: "a3"}

	err := applyCompensated(context.Background(), ex, steps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint step 3")
	assert.Equal(t, []string{"a1", "a2", "a3", "u2", "u1"}, ex.calls)
}

func TestApplyCompensatedSuccess(t *testing.T) {
	ex := &fakeExec{}
	err := applyCompensated(context.Background(), ex, []constraintStep{{apply: "a1", undo: "u1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, ex.calls)
}

func TestMySQLConstraintPlan(t *testing.T) {
	steps := mysqlDialect{}.constraintPlan(Tables())
	require.Len(t, steps, 15+8+8)

	assert.Equal(t, "ALTER TABLE `Dim_Postulante` MODIFY `DNI` VARCHAR(20) NOT NULL", steps[0].apply)
	assert.Equal(t, "ALTER TABLE `Dim_Postulante` ADD CONSTRAINT `PK_Postulante` PRIMARY KEY (`DNI`)", steps[1].apply)
	assert.Equal(t, "ALTER TABLE `Dim_Postulante` DROP PRIMARY KEY", steps[1].undo)

	firstFK := -1
	for i, s := range steps {
		isFK := strings.Contains(s.apply, "FOREIGN KEY")
		if isFK && firstFK < 0 {
			firstFK = i
		}
		if firstFK >= 0 {
			assert.True(t, isFK, "non-FK step after FKs: %s", s.apply)
		}
	}
	assert.Equal(t, 23, firstFK)
	assert.Equal(t, "ALTER TABLE `Fact_Admision` DROP FOREIGN KEY `FK_Fact_Escala`", steps[len(steps)-1].undo)
}
