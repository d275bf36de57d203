// Package receipts renders a PDF receipt for a persisted order, with a QR
// of the order number for pickup verification at the counter.
package receipts

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"brewhouse/kv"
	"brewhouse/models"
	"brewhouse/pricing"
	"brewhouse/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

type Handler struct {
	KV kv.Store
}

func NewHandler(store kv.Store) *Handler {
	return &Handler{KV: store}
}

// PrintReceipt handles GET /orders/:orderid/receipt
func (h *Handler) PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	var order models.Order
	err := kv.GetJSON(r.Context(), h.KV, kv.OrderPrefix+orderID, &order)
	if errors.Is(err, kv.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		log.Printf("receipts: failed to load order %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	pdfBytes, err := Render(order)
	if err != nil {
		log.Printf("receipts: failed to render receipt for %s: %v", orderID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", order.OrderNumber))
	w.Write(pdfBytes)
}

// Render builds the receipt PDF for an order.
func Render(order models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Brewhouse Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.Timestamp.Format("Jan 2, 2006 3:04 PM")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Fulfillment: %s", order.Type))
	if order.Address != "" {
		pdf.Ln(6)
		pdf.Cell(0, 8, fmt.Sprintf("Deliver to: %s", order.Address))
	}
	pdf.Ln(10)

	for _, item := range order.Items {
		line := fmt.Sprintf("%dx %s (%s)", item.Quantity, item.Drink.Name, item.Customization.Size)
		pdf.Cell(120, 7, line)
		pdf.Cell(0, 7, fmt.Sprintf("$%.2f", pricing.LineTotal(item.Drink, item.Customization, item.Quantity)))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(120, 8, "Total")
	pdf.Cell(0, 8, fmt.Sprintf("$%.2f", order.Total))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	if order.PointsUsed > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("Points redeemed: %d", order.PointsUsed))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Points earned: %d", order.PointsEarned))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
