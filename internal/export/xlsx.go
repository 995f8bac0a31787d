// Package export renders a search result as a downloadable spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/shopsync/shopsync/internal/models"
)

const sheetName = "Products"

var header = []string{
	"#", "Title", "Amazon Price (₹)", "Flipkart Price (₹)",
	"Savings (₹)", "Rating", "Prime", "Matched", "Amazon Link", "Flipkart Link",
}

// WriteXLSX writes one worksheet with a header row and one row per product.
func WriteXLSX(w io.Writer, query string, products []models.UnifiedProduct) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, p := range products {
		row := []interface{}{
			p.ID,
			p.Title,
			optionalCell(p.AmazonPrice),
			optionalCell(p.FlipkartPrice),
			cellSavings(p),
			optionalCell(p.Rating),
			p.IsPrime,
			p.HasComparison,
			p.AmazonLink,
			p.FlipkartLink,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 60); err != nil {
		return fmt.Errorf("sizing title column: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "ShopSync results: " + query,
		Creator: "shopsync",
	}); err != nil {
		return fmt.Errorf("setting document properties: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// optionalCell renders optional numbers as a value or an empty cell.
func optionalCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func cellSavings(p models.UnifiedProduct) interface{} {
	if s := p.Savings(); s > 0 {
		return s
	}
	return ""
}
