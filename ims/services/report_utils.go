package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"ims/ims/reports"
)

// reportSection is one named table in an exported workbook or CSV file.
// Single-table reports export one section; the full report exports one per
// top-level aggregator.
type reportSection struct {
	Name string
	Data reports.TableData
}

func writeSheet(f *excelize.File, sheet string, data reports.TableData) error {
	for col, column := range data.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("error locating header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return fmt.Errorf("error writing header cell: %w", err)
		}
	}

	for rowIdx, row := range data.Rows {
		for col, column := range data.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("error locating data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, row[column]); err != nil {
				return fmt.Errorf("error writing data cell: %w", err)
			}
		}
	}

	return nil
}

func generateExcel(sections []reportSection) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("error closing excel file", "error", err)
		}
	}()

	for i, section := range sections {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", section.Name); err != nil {
				return nil, fmt.Errorf("error renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(section.Name); err != nil {
				return nil, fmt.Errorf("error creating sheet: %w", err)
			}
		}
		if err := writeSheet(f, section.Name, section.Data); err != nil {
			return nil, err
		}
	}

	index, err := f.GetSheetIndex(sections[0].Name)
	if err != nil {
		return nil, fmt.Errorf("error getting sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error serializing excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func generateCSV(sections []reportSection) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for i, section := range sections {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return "", fmt.Errorf("error writing section separator: %w", err)
			}
		}
		if len(sections) > 1 {
			if err := writer.Write([]string{section.Name}); err != nil {
				return "", fmt.Errorf("error writing section title: %w", err)
			}
		}

		if err := writer.Write(section.Data.Columns); err != nil {
			return "", fmt.Errorf("error writing csv header: %w", err)
		}

		record := make([]string, len(section.Data.Columns))
		for _, row := range section.Data.Rows {
			for j, column := range section.Data.Columns {
				if value, ok := row[column]; ok && value != nil {
					record[j] = fmt.Sprintf("%v", value)
				} else {
					record[j] = ""
				}
			}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("error writing csv record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing csv data: %w", err)
	}
	return buf.String(), nil
}
