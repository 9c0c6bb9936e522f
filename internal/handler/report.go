package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/domain"
	"github.com/Comprehensive-Wall28/layered-dining-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

// ReportHandler exports order and reservation history as CSV or XLSX.
type ReportHandler struct {
	Orders       repository.OrderRepository
	Reservations repository.ReservationRepository
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/orders", h.exportOrders)
	r.Get("/reports/reservations", h.exportReservations)
}

func (h ReportHandler) exportOrders(w http.ResponseWriter, r *http.Request) {
	from, to, format, ok := exportParams(w, r)
	if !ok {
		return
	}
	orders, err := h.Orders.ListCreatedBetween(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch format {
	case "csv":
		data, err := exportOrdersCSV(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveExport(w, data, "text/csv; charset=utf-8", fmt.Sprintf("orders_%s_%s.csv", from, to))
	case "xlsx", "excel":
		data, err := exportOrdersXLSX(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveExport(w, data, xlsxContentType, fmt.Sprintf("orders_%s_%s.xlsx", from, to))
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func (h ReportHandler) exportReservations(w http.ResponseWriter, r *http.Request) {
	from, to, format, ok := exportParams(w, r)
	if !ok {
		return
	}
	reservations, err := h.Reservations.ListBetween(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch format {
	case "csv":
		data, err := exportReservationsCSV(reservations)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveExport(w, data, "text/csv; charset=utf-8", fmt.Sprintf("reservations_%s_%s.csv", from, to))
	case "xlsx", "excel":
		data, err := exportReservationsXLSX(reservations)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveExport(w, data, xlsxContentType, fmt.Sprintf("reservations_%s_%s.xlsx", from, to))
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func exportParams(w http.ResponseWriter, r *http.Request) (from, to, format string, ok bool) {
	format = r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	if endDate == nil {
		now := time.Now()
		endDate = &now
	}
	if startDate == nil {
		start := endDate.AddDate(0, -1, 0)
		startDate = &start
	}
	if startDate.After(*endDate) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return
	}
	return startDate.Format(dateLayout), endDate.Format(dateLayout), format, true
}

func serveExport(w http.ResponseWriter, data []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}

func exportOrdersCSV(orders []domain.Order) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "customer", "type", "status", "payment_status", "total", "items", "created_at"})
	for _, o := range orders {
		_ = w.Write([]string{
			strconv.FormatInt(o.ID, 10),
			o.CustomerName,
			string(o.OrderType),
			string(o.Status),
			string(o.PaymentStatus),
			strconv.FormatInt(o.TotalPrice, 10),
			strconv.Itoa(len(o.Items)),
			o.CreatedAt.Format(dateLayout),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportOrdersXLSX(orders []domain.Order) ([]byte, error) {
	header := []string{"ID", "Customer", "Type", "Status", "Payment", "Total", "Items", "Created"}
	rows := make([][]any, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []any{
			o.ID,
			o.CustomerName,
			string(o.OrderType),
			string(o.Status),
			string(o.PaymentStatus),
			o.TotalPrice,
			len(o.Items),
			o.CreatedAt.Format(dateLayout),
		})
	}
	return buildSheet("Orders", header, rows)
}

func exportReservationsCSV(reservations []domain.Reservation) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "customer", "table_id", "party_size", "date", "start", "end", "status"})
	for _, res := range reservations {
		_ = w.Write([]string{
			strconv.FormatInt(res.ID, 10),
			res.CustomerName,
			strconv.FormatInt(res.TableID, 10),
			strconv.Itoa(res.PartySize),
			res.Date.Format(dateLayout),
			res.StartTime,
			res.EndTime,
			string(res.Status),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportReservationsXLSX(reservations []domain.Reservation) ([]byte, error) {
	header := []string{"ID", "Customer", "Table", "Party Size", "Date", "Start", "End", "Status"}
	rows := make([][]any, 0, len(reservations))
	for _, res := range reservations {
		rows = append(rows, []any{
			res.ID,
			res.CustomerName,
			res.TableID,
			res.PartySize,
			res.Date.Format(dateLayout),
			res.StartTime,
			res.EndTime,
			string(res.Status),
		})
	}
	return buildSheet("Reservations", header, rows)
}

func buildSheet(sheet string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, values := range rows {
		row := r + 2
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", last, style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
