package exchange

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/skillmatrix/skill-matrix/internal/hierarchy"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/validation"
)

// RecordSource отдаёт все оценки плоскими строками.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]models.EvaluationRecord, error)
}

// CategorySource отдаёт плоский список категорий.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
}

type Exporter struct {
	records    RecordSource
	categories CategorySource
}

func NewExporter(records RecordSource, categories CategorySource) *Exporter {
	return &Exporter{records: records, categories: categories}
}

// Rows возвращает строки выгрузки без заголовка.
func (e *Exporter) Rows(ctx context.Context) ([][]string, error) {
	records, err := e.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := e.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	paths := make(map[int64]string, len(categories))
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		path, ok := paths[r.CategoryID]
		if !ok {
			chain, err := hierarchy.Path(categories, r.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("exchange: путь категории %d: %w", r.CategoryID, err)
			}
			path = joinNames(chain)
			paths[r.CategoryID] = path
		}

		group := ""
		if r.GroupName != nil {
			group = *r.GroupName
		}
		rows = append(rows, []string{group, r.UserName, path, r.SkillName, strconv.Itoa(r.Level)})
	}
	return rows, nil
}

// Export пишет все оценки в w в заданном формате.
func (e *Exporter) Export(ctx context.Context, w io.Writer, format Format) (int, error) {
	rows, err := e.Rows(ctx)
	if err != nil {
		return 0, err
	}

	switch format {
	case FormatXLSX:
		err = writeXLSX(w, rows)
	default:
		err = writeCSV(w, rows)
	}
	if err != nil {
		return 0, err
	}

	logger.Log.WithField("format", format).WithField("rows", len(rows)).Info("exchange: оценки выгружены")
	return len(rows), nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("exchange: запись csv: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("exchange: запись csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("exchange: лист xlsx: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("exchange: заголовок xlsx: %w", err)
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, bold)
	}

	for i, row := range rows {
		level, _ := strconv.Atoi(row[4])
		values := []interface{}{row[0], row[1], row[2], row[3], level}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("exchange: строка xlsx %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheetName, "A", "D", 24)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("exchange: запись xlsx: %w", err)
	}
	return nil
}

func joinNames(chain []models.Category) string {
	path := ""
	for i, c := range chain {
		if i > 0 {
			path += validation.PathSeparator
		}
		path += c.Name
	}
	return path
}
