// Package export turns stored contact submissions into the spreadsheet the
// admin dashboard downloads.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sunbonsys/backend/internal/models"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename is the attachment name offered to the browser.
const Filename = "leads.xlsx"

const sheetName = "Leads"

var leadColumns = []struct {
	header string
	width  float64
}{
	{"ID", 10},
	{"First Name", 20},
	{"Last Name", 20},
	{"Email", 25},
	{"Company", 20},
	{"Product", 25},
	{"Message", 40},
	{"Created At", 25},
}

// LeadsWorkbook builds the leads spreadsheet, one row per contact in the
// order given (callers pass newest first).
func LeadsWorkbook(contacts []models.Contact) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, col := range leadColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, col.width); err != nil {
			return nil, err
		}
		cell := fmt.Sprintf("%s1", name)
		if err := f.SetCellValue(sheetName, cell, col.header); err != nil {
			return nil, err
		}
	}

	for i, c := range contacts {
		row := i + 2
		values := []interface{}{
			c.ID,
			c.FirstName,
			c.LastName,
			c.Email,
			c.Company,
			c.Product,
			c.Message,
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
