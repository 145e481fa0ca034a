package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/rishikreddy7/bus-reservation/internal/models"
)

// TicketService renders e-tickets for bookings
type TicketService struct{}

// NewTicketService creates a new ticket service
func NewTicketService() *TicketService {
	return &TicketService{}
}

// RenderPDF builds a one-page A4 e-ticket listing every passenger on the
// booking. It returns the PDF bytes and a download filename.
func (s *TicketService) RenderPDF(detail *models.BookingDetail) ([]byte, string, error) {
	sch := detail.Schedule

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+detail.TicketID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	if detail.IsCancelled() {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 8, "CANCELLED")
		pdf.Ln(10)
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Ticket ID      : %s", detail.TicketID),
		fmt.Sprintf("Status         : %s", detail.Status),
		fmt.Sprintf("Route          : %s -> %s", sch.Route.Source, sch.Route.Destination),
		fmt.Sprintf("Date           : %s", sch.JourneyDate.Format("2006-01-02")),
		fmt.Sprintf("Departure      : %s", sch.DepartureTime),
		fmt.Sprintf("Arrival        : %s", sch.ArrivalTime),
		fmt.Sprintf("Bus            : %s (%s)", sch.Bus.BusNumber, sch.Bus.BusType),
		fmt.Sprintf("Booked at      : %s", detail.BookingTime.UTC().Format("2006-01-02 15:04 MST")),
	}
	if detail.User != nil {
		lines = append(lines, fmt.Sprintf("Booked by      : %s", detail.User.Name))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	widths := []float64{20, 80, 20, 30, 30}
	for i, h := range []string{"Seat", "Passenger", "Age", "Gender", "Fare"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	fare := sch.Bus.BusType.Price()
	pdf.SetFont("Helvetica", "", 11)
	for _, p := range detail.Passengers {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", p.SeatNumber), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 7, p.PassengerName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", p.Age), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, string(p.Gender), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%d", fare), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 8, fmt.Sprintf("%d", fare*len(detail.Passengers)), "1", 0, "R", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please carry a valid photo ID and show this ticket when boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render ticket: %w", err)
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", strings.ReplaceAll(detail.TicketID, "/", "_"))
	return buf.Bytes(), filename, nil
}
