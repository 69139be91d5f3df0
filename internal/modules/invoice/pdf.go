package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/order"
)

// CompanyInfo is printed in the invoice header.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Render produces a fixed-layout A4 invoice for the order.
func Render(company CompanyInfo, o *order.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(120, 10, company.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(60, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(120, 5, company.Address, "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, fmt.Sprintf("Order: %s", shortID(o)), "", 1, "R", false, 0, "")
	pdf.CellFormat(120, 5, fmt.Sprintf("%s | %s", company.Phone, company.Email), "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 5, fmt.Sprintf("Date: %s", o.CreatedAt.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, o.CustomerName, "", 1, "L", false, 0, "")
	if o.CustomerCity != "" {
		pdf.CellFormat(0, 5, o.CustomerCity, "", 1, "L", false, 0, "")
	}
	if o.CustomerPhone != "" {
		pdf.CellFormat(0, 5, o.CustomerPhone, "", 1, "L", false, 0, "")
	}
	if o.DeliveryLocation != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("Delivery: %s", o.DeliveryLocation), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Unit", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range o.Items {
		amount := float64(item.Quantity) * item.Price
		pdf.CellFormat(70, 7, item.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, item.Unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%.2f", o.Total()), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Footer
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", o.Status), "", 1, "L", false, 0, "")
	if len(o.DeliveredBy) > 0 {
		pdf.CellFormat(0, 5, fmt.Sprintf("Delivered by: %s", strings.Join(o.DeliveredBy, ", ")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", time.Now().Format("02 Jan 2006 15:04")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shortID renders the first UUID block as a display order number.
func shortID(o *order.Order) string {
	id := o.ID.String()
	return "ORD-" + strings.ToUpper(id[:8])
}
