package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"admision/internal"
	"admision/internal/util"
)

const (
	colDNI       = "dni"
	colFullName  = "apellidos_nombres"
	colScore     = "puntaje"
	colCondition = "condicion"
	colYear      = "anio"
	colPeriod    = "periodo"
	colModality  = "modalidad_ingreso"
	colCareer    = "carrera"
)

// Legacy extracts name the career column "escuela" and carry a "facultad"
// column that is recomputed downstream.
var headerAliases = map[string]string{
	"escuela": colCareer,
}

var droppedHeaders = map[string]struct{}{
	"facultad": {},
}

// Discover returns the files matching pattern whose path mentions one of the
// given years. No match is not an error.
func Discover(pattern string, years []int) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}

	out := make([]string, 0, len(matches))
	for _, path := range matches {
		for _, y := range years {
			if strings.Contains(path, strconv.Itoa(y)) {
				out = append(out, path)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// LoadFiles parses the extracts concurrently and concatenates their rows in
// the order of paths.
func LoadFiles(paths []string) ([]internal.RawRecord, error) {
	parsed := make([][]internal.RawRecord, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path // per-iteration copies (Go 1.21 loop semantics)
		g.Go(func() error {
			blob, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			records, err := parseExtract(blob, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parsed[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []internal.RawRecord{}
	for _, records := range parsed {
		out = append(out, records...)
	}
	return out, nil
}

func parseExtract(content []byte, source string) ([]internal.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	if _, ok := idx[colDNI]; !ok {
		return nil, fmt.Errorf("missing %q column", colDNI)
	}

	out := make([]internal.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		out = append(out, internal.RawRecord{
			SourceFile: source,
			RowNumber:  i + 2,
			DNI:        cellAt(row, idx, colDNI),
			FullName:   cellAt(row, idx, colFullName),
			Score:      cellAt(row, idx, colScore),
			Condition:  cellAt(row, idx, colCondition),
			Year:       cellAt(row, idx, colYear),
			Period:     cellAt(row, idx, colPeriod),
			Modality:   cellAt(row, idx, colModality),
			Career:     cellAt(row, idx, colCareer),
		})
	}
	return out, nil
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		name := strings.ToLower(util.NormalizeSpaces(h))
		if _, drop := droppedHeaders[name]; drop {
			continue
		}
		if alias, ok := headerAliases[name]; ok {
			name = alias
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	return idx
}

func cellAt(row []string, idx map[string]int, column string) *string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return nil
	}
	if strings.TrimSpace(row[i]) == "" {
		return nil
	}
	v := row[i]
	return &v
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
