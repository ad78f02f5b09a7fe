package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	domain "sales-daily-report/internal/domain/report"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"date", "status", "visit_count", "sales_total", "submitted_at", "approved_at"}

const xlsxSheet = "Reports"

func exportRow(rp *domain.Report) []string {
	return []string{
		rp.ReportDate.Format(dateLayout),
		string(rp.Status),
		fmt.Sprint(len(rp.Visits)),
		rp.SalesTotal().StringFixed(2),
		formatStamp(rp.SubmittedAt),
		formatStamp(rp.ApprovedAt),
	}
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ExportCSV renders the reports ListByUser would return as RFC 4180 CSV with
// a header row. An empty range yields the header alone.
func (u *Usecase) ExportCSV(ctx context.Context, userID string, start, end time.Time) (string, error) {
	rps, err := u.listByUser(ctx, userID, start, end)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(exportHeader); err != nil {
		return "", err
	}
	for i := range rps {
		if err := w.Write(exportRow(&rps[i])); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExportXLSX writes the same rows as ExportCSV into a single-sheet workbook.
func (u *Usecase) ExportXLSX(ctx context.Context, userID string, start, end time.Time) ([]byte, error) {
	rps, err := u.listByUser(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i := range rps {
		rp := &rps[i]
		row := []interface{}{
			rp.ReportDate.Format(dateLayout),
			string(rp.Status),
			len(rp.Visits),
			rp.SalesTotal().InexactFloat64(),
			formatStamp(rp.SubmittedAt),
			formatStamp(rp.ApprovedAt),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
