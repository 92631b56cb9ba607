// Package workbook serializes flattened relation rows into an .xlsx workbook
package workbook

import (
	"fmt"
	"io"
	"time"

	"relviz-backend/models"

	"github.com/xuri/excelize/v2"
)

const (
	// MimeType is the content type announced for workbook downloads
	MimeType = "application/vnd.ms-excel"

	// DefaultPrefix is the filename prefix used when none is configured
	DefaultPrefix = "анализ_правоотношений"

	timestampLayout = "20060102_150405"
)

// Sheet names, in workbook order
const (
	SheetRights   = "Права"
	SheetDuties   = "Обязанности"
	SheetGoals    = "Потребности-цели"
	SheetObjects  = "Предметы (объекты)"
	SheetSubjects = "Субъекты"
)

// SheetOrder lists the sheets in the order they are written
var SheetOrder = []string{SheetRights, SheetDuties, SheetGoals, SheetObjects, SheetSubjects}

var (
	rightHeaders   = []string{"Источник", "Субъект права", "Право", "Встречная обязанность", "Субъект обязательств"}
	dutyHeaders    = []string{"Источник", "Субъект обязательств", "Обязанность", "Обеспечивает право", "Субъект права"}
	goalHeaders    = []string{"Потребности и цели"}
	objectHeaders  = []string{"Предметы"}
	subjectHeaders = []string{"Субъекты"}
)

// Filename returns "<prefix>_<YYYYMMDD_HHMMSS>.xlsx"
func Filename(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format(timestampLayout))
}

// Build writes the aggregate into a five-sheet workbook and returns its bytes
func Build(agg *models.Aggregate) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{SheetRights, rightHeaders, rightRows(agg.Rights)},
		{SheetDuties, dutyHeaders, dutyRows(agg.Duties)},
		{SheetGoals, goalHeaders, column(agg.Goals)},
		{SheetObjects, objectHeaders, column(agg.Objects)},
		{SheetSubjects, subjectHeaders, column(agg.Subjects)},
	}

	for i, s := range sheets {
		if i == 0 {
			// rename the default sheet so the workbook opens on the first category
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet %q: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}

		if err := writeSheet(f, s.name, s.headers, s.rows, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 32); err != nil {
		return fmt.Errorf("failed to size columns of %q: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}

// CountRows reads a workbook back and returns the number of data rows
// (header excluded) on each sheet. Rows whose cells are all empty strings
// still count.
func CountRows(r io.Reader) (map[string]int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	counts := make(map[string]int)
	for _, sheet := range f.GetSheetList() {
		n, err := countSheetRows(f, sheet)
		if err != nil {
			return nil, err
		}
		counts[sheet] = n
	}
	return counts, nil
}

// countSheetRows walks the row elements of a sheet; GetRows would drop
// trailing rows that hold only empty values.
func countSheetRows(f *excelize.File, sheet string) (int, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Error(); err != nil {
		return 0, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if n > 0 {
		n-- // header
	}
	return n, nil
}

func rightRows(rights []models.RightRow) [][]string {
	out := make([][]string, 0, len(rights))
	for _, r := range rights {
		out = append(out, []string{r.Source, r.Holder, r.Right, r.CounterDuty, r.Obligor})
	}
	return out
}

func dutyRows(duties []models.DutyRow) [][]string {
	out := make([][]string, 0, len(duties))
	for _, d := range duties {
		out = append(out, []string{d.Source, d.Obligor, d.Duty, d.SecuredRight, d.Holder})
	}
	return out
}

func column(values []string) [][]string {
	out := make([][]string, 0, len(values))
	for _, v := range values {
		out = append(out, []string{v})
	}
	return out
}
