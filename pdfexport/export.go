package pdfexport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wayfarer/middleware"
	"wayfarer/models"
	"wayfarer/planner"
	"wayfarer/shares"
	"wayfarer/trips"
	"wayfarer/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// Handler renders itineraries as PDF documents. The embedded QR code
// encodes the trip's share link, so anyone scanning the printout gets the
// read-only web view.
type Handler struct {
	BaseURL string
}

func NewHandler(baseURL string) *Handler {
	return &Handler{BaseURL: baseURL}
}

// GET /api/trips/:tripid/export
func (h *Handler) ExportTrip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := middleware.RequestingUserID(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tripID := ps.ByName("tripid")
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, err := trips.NewStore().Get(ctx, userID, tripID)
	if errors.Is(err, planner.ErrNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, "Trip not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching trip")
		return
	}

	link, err := shares.Ensure(ctx, tripID, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error creating share link")
		return
	}
	shareURL := h.BaseURL + "/api/shared/" + link.Token

	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	buf, err := renderPDF(it, qrPNG)
	if err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=trip-"+it.Request.Destination+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func renderPDF(it *models.Itinerary, qrPNG []byte) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "Your Trip to "+it.Request.Destination)
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("From: %s", it.Request.Origin))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Dates: %s to %s", it.Request.StartDate, it.Request.EndDate))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Travelers: %d    Version: %d", it.Request.Travelers, it.Version))
	pdf.Ln(10)

	// Share QR, top right
	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("share-qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("share-qr", 160, 15, 35, 35, false, imageOpts, 0, "")

	// Daily plan
	for _, day := range it.Days {
		pdf.Ln(3)
		pdf.SetFont("Arial", "B", 14)
		header := fmt.Sprintf("Day %d", day.DayIndex)
		if day.Theme != "" {
			header += ": " + day.Theme
		}
		if day.Date != "" {
			header += " (" + day.Date + ")"
		}
		pdf.MultiCell(0, 8, header, "", "L", false)

		for _, act := range day.Activities {
			pdf.SetFont("Arial", "B", 10)
			label := act.TimeLabel
			if label == "" {
				label = "-"
			}
			pdf.Cell(30, 6, label)

			pdf.SetFont("Arial", "", 10)
			line := act.Description
			if act.LocationHint != "" {
				line += " (" + act.LocationHint + ")"
			}
			if act.CostEstimated {
				line += fmt.Sprintf(" - INR %.0f", act.EstimatedCost)
			}
			pdf.MultiCell(0, 6, line, "", "L", false)
		}
	}

	// Cost breakdown
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Estimated Cost Breakdown")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	costs := it.CostBreakdown
	rows := []struct {
		label string
		value float64
	}{
		{"Accommodation:", costs.Accommodation},
		{"Transport:", costs.Transport},
		{"Activities:", costs.Activities},
		{"Food:", costs.Food},
	}
	for _, row := range rows {
		pdf.Cell(60, 7, row.label)
		pdf.CellFormat(0, 7, fmt.Sprintf("INR %.0f", row.value), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(60, 8, "Total Estimated Cost:")
	pdf.CellFormat(0, 8, fmt.Sprintf("INR %.0f", costs.Total), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
