package service

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hevatrack/internal/model"
)

// ExportService renders already-fetched records into downloadable PDFs.
// It is a pure function of its input; it never touches the data model.
type ExportService interface {
	BeneficiaryReportPDF(beneficiaries []model.Beneficiary, reportType string) ([]byte, error)
	FundingReportPDF(report *FundingReport) ([]byte, error)
}

type exportService struct{}

// NewExportService creates a new PDF export service.
func NewExportService() ExportService {
	return &exportService{}
}

func (s *exportService) BeneficiaryReportPDF(beneficiaries []model.Beneficiary, reportType string) ([]byte, error) {
	pdf := newReportPDF(fmt.Sprintf("HEVA Beneficiary Report - %s", reportType))

	writeMetaTable(pdf, [][2]string{
		{"Report Type:", reportType},
		{"Generated On:", time.Now().Format("2006-01-02 15:04:05")},
		{"Total Beneficiaries:", strconv.Itoa(len(beneficiaries))},
	})

	headers := []string{"Name", "Age", "Gender", "Vulnerability", "County", "Funding Status"}
	widths := []float64{40, 15, 20, 35, 35, 35}
	writeTableHeader(pdf, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range beneficiaries {
		age := ""
		if b.Age != nil {
			age = strconv.Itoa(*b.Age)
		}
		writeTableRow(pdf, widths, []string{
			b.Name,
			age,
			b.Gender,
			string(b.VulnerabilityType),
			b.County,
			string(b.FundingStatus),
		})
	}

	return renderPDF(pdf)
}

func (s *exportService) FundingReportPDF(report *FundingReport) ([]byte, error) {
	pdf := newReportPDF("HEVA Funding Report")

	writeMetaTable(pdf, [][2]string{
		{"Generated On:", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Total Requests:", strconv.Itoa(report.Summary.TotalRequests)},
		{"Approved:", strconv.Itoa(report.Summary.ApprovedCount)},
		{"Pending:", strconv.Itoa(report.Summary.PendingCount)},
		{"Declined:", strconv.Itoa(report.Summary.DeclinedCount)},
		{"Total Approved Amount:", report.Summary.TotalApprovedAmount.StringFixed(2)},
		{"Total Pending Amount:", report.Summary.TotalPendingAmount.StringFixed(2)},
	})

	sections := []struct {
		title string
		items []model.Beneficiary
	}{
		{"Approved Requests", report.Approved},
		{"Pending Requests", report.Pending},
		{"Declined Requests", report.Declined},
	}

	headers := []string{"ID", "Name", "Vulnerability", "County", "Amount"}
	widths := []float64{15, 50, 35, 40, 30}
	for _, section := range sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, section.title, "", 1, "L", false, 0, "")
		writeTableHeader(pdf, headers, widths)
		pdf.SetFont("Helvetica", "", 9)
		for _, b := range section.items {
			amount := ""
			if b.FundingAmount != nil {
				amount = b.FundingAmount.StringFixed(2)
			}
			writeTableRow(pdf, widths, []string{
				strconv.FormatUint(uint64(b.ID), 10),
				b.Name,
				string(b.VulnerabilityType),
				b.County,
				amount,
			})
		}
		pdf.Ln(6)
	}

	return renderPDF(pdf)
}

func newReportPDF(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

func writeMetaTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(50, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(100, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTableHeader(pdf *gofpdf.Fpdf, headers []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(200, 210, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func writeTableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func renderPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
