// Package export renders aggregation results as printable PDF reports.
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Allen4fis/crewtime/pkg/aggregate"
)

func newReport(title, from, to string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)
	if from != "" || to != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", orAny(from), orAny(to)))
		pdf.Ln(10)
	}
	return pdf
}

func orAny(date string) string {
	if date == "" {
		return "any"
	}
	return date
}

// WritePayrollRegister renders the employee rollups as a payroll register.
func WritePayrollRegister(w io.Writer, rollups []aggregate.EmployeeRollup, from, to string) error {
	pdf := newReport("Payroll Register", from, to)

	pdf.SetFont("Helvetica", "B", 10)
	header := []string{"Employee", "Hours", "Eff. Hours", "Cost", "Billable", "LOA", "GST"}
	widths := []float64{50, 20, 22, 26, 26, 16, 24}
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var totalCost, totalBillable, totalGst float64
	for _, r := range rollups {
		cells := []string{
			r.Name,
			fmt.Sprintf("%.2f", r.Hours),
			fmt.Sprintf("%.2f", r.EffectiveHours),
			fmt.Sprintf("%.2f", r.TotalCost),
			fmt.Sprintf("%.2f", r.TotalBillable),
			fmt.Sprintf("%d", r.LoaCount),
			fmt.Sprintf("%.2f", r.GstAmount),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalCost += r.TotalCost
		totalBillable += r.TotalBillable
		totalGst += r.GstAmount
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", totalCost), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", totalBillable), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[5]+widths[6], 7, fmt.Sprintf("GST %.2f", totalGst), "1", 0, "L", false, 0, "")
	pdf.Ln(-1)

	return pdf.Output(w)
}

// WriteInvoiceStatement renders the job statistics as an invoice statement
// with one date grid per job.
func WriteInvoiceStatement(w io.Writer, stats []aggregate.JobStats, from, to string) error {
	pdf := newReport("Invoice Statement", from, to)

	widths := []float64{26, 18, 22, 26, 26, 26, 16, 16}
	for _, st := range stats {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Job %s - %s", st.JobNumber, st.JobName))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Invoiced %.1f%%, paid %.1f%%", st.InvoicePercentage, st.PaidPercentage))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		header := []string{"Date", "Hours", "LOA", "Labor Cost", "Labor Bill.", "Rental Bill.", "Inv.", "Paid"}
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, d := range st.Dates {
			cells := []string{
				d.Date,
				fmt.Sprintf("%.2f", d.Hours),
				fmt.Sprintf("%d", d.LoaCount),
				fmt.Sprintf("%.2f", d.LaborCost),
				fmt.Sprintf("%.2f", d.LaborBillable),
				fmt.Sprintf("%.2f", d.RentalBillable),
				yesNo(d.Invoiced),
				yesNo(d.Paid),
			}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	return pdf.Output(w)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
