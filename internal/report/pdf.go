package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

var (
	headerFill  = [3]int{41, 128, 185}
	headerText  = [3]int{255, 255, 255}
	sectionText = [3]int{41, 128, 185}
	bodyText    = [3]int{50, 50, 50}
	ruleColor   = [3]int{200, 200, 200}
	spendText   = [3]int{192, 0, 0}
)

// The core PDF fonts are cp1252; symbols outside it are spelled out.
var currencyNames = strings.NewReplacer(
	"₽", "RUB ",
	"₴", "UAH ",
	"₸", "KZT ",
	"₹", "INR ",
)

// WritePDF renders d as an A4 report.
func WritePDF(w io.Writer, d Data, money MoneyFunc) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	amount := func(v decimal.Decimal) string { return tr(currencyNames.Replace(money(v))) }

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, "Generated "+d.Generated.Format("2006-01-02 15:04"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
	pdf.SetTextColor(headerText[0], headerText[1], headerText[2])
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, tr("  Budget report: "+d.Period.Label()), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionText[0], sectionText[1], sectionText[2])
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetDrawColor(ruleColor[0], ruleColor[1], ruleColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
	}
	row := func(widths []float64, cells ...string) {
		for i, c := range cells {
			align := "L"
			if i > 0 {
				align = "R"
			}
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(widths[i], 6, tr(c), "", ln, align, false, 0, "")
		}
	}
	head := func(widths []float64, cells ...string) {
		pdf.SetFont("Arial", "B", 10)
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, tr(c), "B", ln, align, false, 0, "")
		}
		pdf.SetFont("Arial", "", 10)
	}

	section("Summary")
	summary := []float64{95, 95}
	row(summary, "Balance", amount(d.Summary.Balance))
	row(summary, "Savings", amount(d.Summary.Savings))
	pdf.SetTextColor(spendText[0], spendText[1], spendText[2])
	row(summary, "Spent ("+d.Period.Label()+")", amount(d.Summary.PeriodSpend))
	pdf.SetTextColor(bodyText[0], bodyText[1], bodyText[2])
	row(summary, "Goal targets", amount(d.Summary.GoalsTarget))
	pdf.Ln(6)

	section("Spending by category")
	if len(d.Categories) == 0 {
		pdf.Cell(0, 6, "No expenses in this period.")
		pdf.Ln(6)
	} else {
		widths := []float64{80, 50, 30, 30}
		head(widths, "Category", "Total", "Count", "Share")
		for _, c := range d.Categories {
			row(widths, c.Info.Name, amount(c.Total), fmt.Sprint(c.Count), fmt.Sprintf("%.1f%%", c.Percent))
		}
	}
	pdf.Ln(6)

	section("Expenses")
	if len(d.Expenses) == 0 {
		pdf.Cell(0, 6, "No expenses in this period.")
		pdf.Ln(6)
	} else {
		widths := []float64{30, 40, 40, 80}
		head(widths, "Date", "Category", "Amount", "Description")
		for _, e := range d.Expenses {
			row(widths, e.Date.String(), e.Category.Info().Name, amount(e.Amount), truncate(e.Description, 40))
		}
	}
	pdf.Ln(6)

	section("Savings goals")
	if len(d.Goals) == 0 {
		pdf.Cell(0, 6, "No savings goals.")
		pdf.Ln(6)
	} else {
		widths := []float64{70, 40, 40, 40}
		head(widths, "Goal", "Saved", "Target", "Deadline")
		for _, g := range d.Goals {
			row(widths, g.Name, amount(g.Current), amount(g.Target), deadline(g))
		}
	}

	if len(d.Insights) > 0 {
		pdf.Ln(6)
		section("Insights")
		for _, in := range d.Insights {
			pdf.SetFont("Arial", "B", 10)
			pdf.MultiCell(190, 5, tr(in.Title), "", "L", false)
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(190, 5, tr(currencyNames.Replace(in.Description)), "", "L", false)
			pdf.Ln(2)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
