package usecase

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"time"

	"tallerpro/internal/domain/entities"

	qrcode "github.com/skip2/go-qrcode"
)

const receiptQRSize = 160

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; color: #111827; max-width: 560px; margin: 0 auto;">
  <h2 style="margin-bottom: 4px;">{{.ShopName}}</h2>
  <p style="margin-top: 0; color: #6b7280;">Recibo de pago</p>
  <p>Hola {{.CustomerName}},</p>
  <p>Hemos recibido su pago para la orden <strong>{{.OrderNumber}}</strong>. Gracias por su confianza.</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Recibo</td><td style="text-align: right;"><strong>{{.ReceiptNumber}}</strong></td></tr>
    <tr><td>Fecha</td><td style="text-align: right;">{{.Date}}</td></tr>
    <tr><td>Método de pago</td><td style="text-align: right;">{{.Method}}</td></tr>
    <tr><td>Monto recibido</td><td style="text-align: right;"><strong>{{.Amount}}</strong></td></tr>
    <tr><td>Subtotal</td><td style="text-align: right;">{{.Subtotal}}</td></tr>
    <tr><td>IVU</td><td style="text-align: right;">{{.Tax}}</td></tr>
    <tr><td colspan="2"><hr></td></tr>
    <tr><td>Total de la orden (con IVU)</td><td style="text-align: right;">{{.TotalWithTax}}</td></tr>
    <tr><td>Total pagado</td><td style="text-align: right;">{{.AmountPaid}}</td></tr>
    <tr><td>Balance pendiente</td><td style="text-align: right;"><strong>{{.BalanceDue}}</strong></td></tr>
  </table>
  {{if .QRCode}}<p style="text-align: center;"><img src="{{.QRCode}}" alt="{{.ReceiptNumber}}" width="{{.QRSize}}" height="{{.QRSize}}"></p>{{end}}
  <p style="color: #6b7280; font-size: 12px;">Conserve este recibo. Presente el número de recibo al recoger su equipo.</p>
</body>
</html>`))

type receiptView struct {
	ShopName      string
	CustomerName  string
	OrderNumber   string
	ReceiptNumber string
	Date          string
	Method        string
	Amount        string
	Subtotal      string
	Tax           string
	TotalWithTax  string
	AmountPaid    string
	BalanceDue    string
	QRCode        template.URL
	QRSize        int
}

// ReceiptEmail is a rendered deposit receipt.
type ReceiptEmail struct {
	Subject string
	HTML    string
}

// RenderReceipt builds the Spanish receipt email of a deposit. The QR code
// encodes the receipt number; if it cannot be generated the receipt is sent
// without it.
func RenderReceipt(shopName string, o entities.Order, sale entities.Sale, taxRate float64, at time.Time) (ReceiptEmail, error) {
	v := receiptView{
		ShopName:      shopName,
		CustomerName:  o.CustomerName,
		OrderNumber:   o.OrderNumber,
		ReceiptNumber: sale.SaleNumber,
		Date:          at.Format("02/01/2006 15:04"),
		Method:        sale.PaymentMethod.Label(),
		Amount:        money(sale.Total),
		Subtotal:      money(sale.Subtotal),
		Tax:           money(sale.TaxAmount),
		TotalWithTax:  money(o.TotalWithTax(taxRate)),
		AmountPaid:    money(o.AmountPaid),
		BalanceDue:    money(o.BalanceDue),
		QRSize:        receiptQRSize,
	}
	if png, err := qrcode.Encode(sale.SaleNumber, qrcode.Medium, receiptQRSize); err == nil {
		v.QRCode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, v); err != nil {
		return ReceiptEmail{}, fmt.Errorf("render receipt: %w", err)
	}
	return ReceiptEmail{
		Subject: fmt.Sprintf("Recibo de pago %s - Orden %s", sale.SaleNumber, o.OrderNumber),
		HTML:    buf.String(),
	}, nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
