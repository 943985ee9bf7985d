// Package excel renders vouchers as single sheet xlsx workbooks.
package excel

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

const (
	// SheetName is the only sheet of a rendered voucher.
	SheetName   = "Voucher"
	contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout  = "2006-01-02"

	lineItemsRow = 14
)

var titles = map[domain.DocumentType]string{
	domain.DocumentPV: "Payment Voucher",
	domain.DocumentRV: "Receipt Voucher",
	domain.DocumentJV: "Journal Voucher",
}

// Renderer fills a fixed voucher layout. Labels live in column A and values
// in column B; JV line items start at row lineItemsRow.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

var _ portssvc.DocumentRenderer = (*Renderer)(nil)

func (r *Renderer) ContentType() string   { return contentType }
func (r *Renderer) FileExtension() string { return ".xlsx" }

// Render builds the workbook for data and returns its bytes.
func (r *Renderer) Render(ctx context.Context, data domain.VoucherData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	title, ok := titles[data.Document.DocType]
	if !ok {
		return nil, fmt.Errorf("unknown document type %q", data.Document.DocType)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	r.setCell(f, "A1", data.CompanyName)
	r.setCell(f, "A2", title)
	if boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "A2", boldID)
	}

	rows := [][2]interface{}{
		{"Document No", data.Document.DocNo},
		{"Document Date", data.Document.CreatedAt.Format(dateLayout)},
		{"Case No", data.Case.CaseNo},
		{"Requester", data.Case.RequesterID},
		{"Category", data.Category.Name},
		{"Account Code", data.Case.AccountCode},
		{"Purpose", data.Case.Purpose},
		{"Amount", data.Document.Amount.StringFixed(domain.MoneyScale)},
		{"Description", data.Document.Description},
		{"Prepared By", data.Document.CreatedBy},
	}
	for i, row := range rows {
		n := i + 3
		r.setCell(f, fmt.Sprintf("A%d", n), row[0])
		r.setCell(f, fmt.Sprintf("B%d", n), row[1])
	}

	if data.Document.DocType == domain.DocumentJV {
		r.setCell(f, fmt.Sprintf("A%d", lineItemsRow), "Case")
		r.setCell(f, fmt.Sprintf("B%d", lineItemsRow), "Amount")
		for i, item := range data.LineItems {
			n := lineItemsRow + 1 + i
			r.setCell(f, fmt.Sprintf("A%d", n), item.RefCaseID)
			r.setCell(f, fmt.Sprintf("B%d", n), item.Amount.StringFixed(domain.MoneyScale))
		}
		total := lineItemsRow + 1 + len(data.LineItems)
		r.setCell(f, fmt.Sprintf("A%d", total), "Total")
		r.setCell(f, fmt.Sprintf("B%d", total), domain.SumLineItems(data.LineItems).StringFixed(domain.MoneyScale))
	}
	_ = f.SetColWidth(SheetName, "A", "A", 18)
	_ = f.SetColWidth(SheetName, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		r.logger.Warn("Failed to set cell value", slog.String("cell", cell), slog.String("error", err.Error()))
	}
}
