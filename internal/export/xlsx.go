package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"employee-app/internal/domain"
)

const SheetName = "Employees"

var headers = []string{"ID", "Name", "Department", "Salary"}

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 8},
	{"B", 24},
	{"C", 18},
	{"D", 14},
}

type Lister interface {
	ListAll(ctx context.Context) ([]domain.Employee, error)
}

// WriteWorkbook saves every employee to an .xlsx file at path and returns
// the number of rows written. A listing failure is returned unchanged.
func WriteWorkbook(ctx context.Context, lister Lister, path string) (int, error) {
	employees, err := lister.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return 0, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("header style: %w", err)
	}
	// built-in format 4 is #,##0.00
	salaryStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return 0, fmt.Errorf("salary style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return 0, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return 0, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", headerStyle); err != nil {
		return 0, err
	}

	for i, e := range employees {
		row := i + 2
		values := []interface{}{e.ID, e.Name, e.Department, e.Salary}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return 0, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return 0, err
			}
		}
	}
	if len(employees) > 0 {
		last := fmt.Sprintf("D%d", len(employees)+1)
		if err := f.SetCellStyle(SheetName, "D2", last, salaryStyle); err != nil {
			return 0, err
		}
	}

	for _, w := range columnWidths {
		if err := f.SetColWidth(SheetName, w.col, w.col, w.width); err != nil {
			return 0, fmt.Errorf("column %s width: %w", w.col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("save workbook %s: %w", path, err)
	}
	return len(employees), nil
}
