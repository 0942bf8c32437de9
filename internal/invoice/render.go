// Package invoice renders invoices as HTML documents and A5 PDFs.
package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/go-pdf/fpdf"

	"restoapi/internal/model"
)

const (
	brand      = "Maison de Flavors"
	thanks     = "Cảm ơn quý khách đã sử dụng dịch vụ của chúng tôi!"
	walkIn     = "Khách lẻ"
	dateLayout = "02/01/2006 15:04:05"
)

// Renderer formats dates in the restaurant's time zone.
type Renderer struct {
	loc *time.Location
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc}
}

type line struct {
	Name     string
	Price    string
	Quantity int
	Total    string
}

type document struct {
	Number   string
	IssuedAt string
	OrderID  string
	Customer string
	Lines    []line
	Subtotal string
	Discount string
	Tax      string
	Total    string
	Thanks   string
	Brand    string
}

func (r *Renderer) document(v model.InvoiceView) document {
	d := document{
		Number:   v.InvoiceNumber,
		IssuedAt: v.IssuedAt.In(r.loc).Format(dateLayout),
		OrderID:  v.OrderID,
		Customer: walkIn,
		Subtotal: Money(v.Subtotal),
		Discount: Money(v.Discount),
		Tax:      Money(v.Tax),
		Total:    Money(v.Total),
		Thanks:   thanks,
		Brand:    brand,
	}
	if v.Order != nil && v.Order.CustomerName != "" {
		d.Customer = v.Order.CustomerName
	}
	for _, it := range v.Items {
		d.Lines = append(d.Lines, line{
			Name:     it.Name,
			Price:    Money(it.Price),
			Quantity: it.Quantity,
			Total:    Money(it.Total),
		})
	}
	return d
}

var htmlTemplate = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Number}}</title>
<style>
  body { font-family: Arial, sans-serif; color: #333; font-size: 13px; margin: 20px; }
  h1, h3 { color: #2a2a2a; text-align: center; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; }
  th, td { border: 1px solid #ccc; padding: 6px 8px; text-align: left; }
  th { background: #f5f5f5; }
  .totals { margin-top: 10px; }
  .totals p { text-align: right; margin: 2px 0; }
  .footer { margin-top: 30px; text-align: center; font-size: 12px; color: #555; }
</style></head>
<body>
  <h1>HÓA ĐƠN THANH TOÁN</h1>
  <h3>{{.Number}}</h3>
  <p><b>Ngày in:</b> {{.IssuedAt}}</p>
  <p><b>Mã đơn hàng:</b> {{.OrderID}}</p>
  <p><b>Khách hàng:</b> {{.Customer}}</p>
  <table>
    <thead><tr><th>Tên món</th><th>Đơn giá</th><th>Số lượng</th><th>Thành tiền</th></tr></thead>
    <tbody>{{range .Lines}}
      <tr><td>{{.Name}}</td><td>{{.Price}}</td><td>{{.Quantity}}</td><td>{{.Total}}</td></tr>{{end}}
    </tbody>
  </table>
  <div class="totals">
    <p><b>Tạm tính:</b> {{.Subtotal}}</p>
    <p><b>Giảm giá:</b> {{.Discount}}</p>
    <p><b>Thuế:</b> {{.Tax}}</p>
    <p><b>Tổng cộng:</b> <b>{{.Total}}</b></p>
  </div>
  <div class="footer">
    <p>{{.Thanks}}</p>
    <p>{{.Brand}}</p>
  </div>
</body></html>
`))

// HTML renders a standalone HTML invoice. Item names are escaped.
func (r *Renderer) HTML(v model.InvoiceView) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r.document(v)); err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders an A5 portrait invoice with 8mm margins.
func (r *Renderer) PDF(v model.InvoiceView) ([]byte, error) {
	d := r.document(v)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 8)
	pdf.SetTitle(d.Number, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, foldASCII("HÓA ĐƠN THANH TOÁN"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, d.Number, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	for _, kv := range [][2]string{
		{"Ngày in", d.IssuedAt},
		{"Mã đơn hàng", d.OrderID},
		{"Khách hàng", d.Customer},
	} {
		pdf.CellFormat(0, 5, foldASCII(kv[0]+": "+kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	widths := []float64{58, 30, 14, 30}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(245, 245, 245)
	for i, h := range []string{"Tên món", "Đơn giá", "SL", "Thành tiền"} {
		pdf.CellFormat(widths[i], 6, foldASCII(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, l := range d.Lines {
		pdf.CellFormat(widths[0], 6, foldASCII(l.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, pdfMoney(l.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprint(l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, pdfMoney(l.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	for _, kv := range [][2]string{
		{"Tạm tính", d.Subtotal},
		{"Giảm giá", d.Discount},
		{"Thuế", d.Tax},
	} {
		pdf.CellFormat(0, 5, foldASCII(kv[0])+": "+pdfMoney(kv[1]), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, foldASCII("Tổng cộng")+": "+pdfMoney(d.Total), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, foldASCII(d.Thanks), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, d.Brand, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfMoney swaps the đ suffix for VND, which the core fonts can draw.
func pdfMoney(s string) string {
	if n := len(s) - len("đ"); n >= 0 && s[n:] == "đ" {
		return s[:n] + " VND"
	}
	return s
}
