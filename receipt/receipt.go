package receipt

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"

	"auris/mailer"
	"auris/models"
	"auris/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// OrderSource resolves an order for the session asking for its receipt.
type OrderSource interface {
	Order(sessionID, orderID string) (models.Order, bool)
}

// Handler renders order receipts as PDF downloads.
type Handler struct {
	orders OrderSource
	secret []byte
}

func NewHandler(orders OrderSource, secret []byte) *Handler {
	return &Handler{orders: orders, secret: secret}
}

// signedPayload returns orderID|grandTotal|signature for the QR code, so a
// scanned receipt can be checked against tampering.
func (h *Handler) signedPayload(order models.Order) string {
	data := fmt.Sprintf("%s|%d", order.OrderID, order.Totals.GrandTotal)
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// Download writes the order's receipt PDF. Only the owning session can
// fetch it, and only while the order is still held in memory.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	order, ok := h.orders.Order(sid, ps.ByName("orderid"))
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	qrPNG, err := qrcode.Encode(h.signedPayload(order), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Name: %s", order.Billing.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Ship to: %s, %s %s, %s", order.Billing.Address, order.Billing.City, order.Billing.ZIP, order.Billing.Country))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.Cell(0, 8, fmt.Sprintf("%s  x%d  $ %s", item.Product.ShortName, item.Quantity, mailer.FormatAmount(item.Product.Price*item.Quantity)))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: $ %s", mailer.FormatAmount(order.Totals.Subtotal)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Shipping: $ %s", mailer.FormatAmount(order.Totals.Shipping)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("VAT (included): $ %s", mailer.FormatAmount(order.Totals.VAT)))
	pdf.Ln(7)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Grand Total: $ %s", mailer.FormatAmount(order.Totals.GrandTotal)))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
