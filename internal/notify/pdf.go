package notify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"skylink/internal/models"
)

// PDFRenderer writes boarding documents to the tmp directory. Files are kept
// until delivered so the outbox can pick them up later.
type PDFRenderer struct {
	TmpDir string
	QR     *QRGenerator
}

func NewPDFRenderer(tmpDir string, qr *QRGenerator) *PDFRenderer {
	return &PDFRenderer{TmpDir: tmpDir, QR: qr}
}

// RenderTicket produces a one-page A4 document for the ticket and returns
// the file path. The ticket must be loaded with its seat, flight and route
// relations.
func (r *PDFRenderer) RenderTicket(ticket *models.Ticket) (string, error) {
	if err := os.MkdirAll(r.TmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "SkyLink Boarding Document", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	writeLine := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	writeLine("Ticket", fmt.Sprintf("#%d", ticket.ID))
	writeLine("Order", fmt.Sprintf("#%d", ticket.OrderID))
	writeLine("Price", fmt.Sprintf("%.2f", ticket.Price))

	if fs := ticket.FlightSeat; fs != nil {
		if seat := fs.Seat; seat != nil {
			writeLine("Seat", fmt.Sprintf("row %d, seat %d", seat.Row, seat.Seat))
			if seat.TicketClass != nil {
				writeLine("Class", seat.TicketClass.Name)
			}
		}
		if flight := fs.Flight; flight != nil {
			if route := flight.Route; route != nil && route.Source != nil && route.Destination != nil {
				writeLine("Route", fmt.Sprintf("%s (%s) to %s (%s)",
					route.Source.Name, route.Source.AirportCode,
					route.Destination.Name, route.Destination.AirportCode))
			}
			writeLine("Departure", flight.DepartureTime.Format("2006-01-02 15:04 MST"))
			writeLine("Arrival", flight.ArrivalTime.Format("2006-01-02 15:04 MST"))
			writeLine("Duration", models.FormatDuration(flight.DepartureTime, flight.ArrivalTime))
		}
	}

	if r.QR != nil {
		png, err := r.QR.GenerateEncryptedQR(ticket)
		if err != nil {
			return "", fmt.Errorf("generate qr: %w", err)
		}
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("ticket-qr", 75, pdf.GetY()+8, 60, 60, false, opts, 0, "")
	}

	path := filepath.Join(r.TmpDir, fmt.Sprintf("ticket-%d-%s.pdf", ticket.ID, uuid.NewString()))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}
