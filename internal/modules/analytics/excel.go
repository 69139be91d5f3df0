package analytics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names are fixed; downstream spreadsheets reference them.
const (
	sheetMonthly    = "Monthly Revenue"
	sheetProducts   = "Top Products"
	sheetCategories = "Categories"
	sheetByCategory = "Products by Category"
	sheetLocations  = "Locations"
)

// renderWorkbook writes the summary into a five-sheet Excel workbook.
func renderWorkbook(summary *Summary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetMonthly)
	for _, name := range []string{sheetProducts, sheetCategories, sheetByCategory, sheetLocations} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	if err := writeRows(f, sheetMonthly, [][]interface{}{{"Month", "Revenue"}}, func(rows *[][]interface{}) {
		for _, m := range summary.MonthlyRevenue {
			*rows = append(*rows, []interface{}{m.Month, m.Revenue})
		}
	}); err != nil {
		return nil, err
	}

	if err := writeRows(f, sheetProducts, [][]interface{}{{"Product", "Quantity", "Revenue"}}, func(rows *[][]interface{}) {
		for _, p := range summary.TopProducts {
			*rows = append(*rows, []interface{}{p.ProductName, p.Quantity, p.Revenue})
		}
	}); err != nil {
		return nil, err
	}

	if err := writeRows(f, sheetCategories, [][]interface{}{{"Category", "Revenue"}}, func(rows *[][]interface{}) {
		for _, c := range summary.Categories {
			*rows = append(*rows, []interface{}{c.Category, c.Revenue})
		}
	}); err != nil {
		return nil, err
	}

	if err := writeRows(f, sheetByCategory, [][]interface{}{{"Category", "Products"}}, func(rows *[][]interface{}) {
		for _, c := range summary.ProductsByCategory {
			*rows = append(*rows, []interface{}{c.Category, strings.Join(c.Products, ", ")})
		}
	}); err != nil {
		return nil, err
	}

	if err := writeRows(f, sheetLocations, [][]interface{}{{"Location", "Orders", "Revenue"}}, func(rows *[][]interface{}) {
		for _, l := range summary.Locations {
			*rows = append(*rows, []interface{}{l.Location, l.Orders, l.Revenue})
		}
	}); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, fill func(*[][]interface{})) error {
	fill(&rows)
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
