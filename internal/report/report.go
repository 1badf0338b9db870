package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"salesanalyzer/internal/models"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders v as dollars with thousands grouping and two
// decimals, e.g. $1,234.50 or $-3.00. Non-finite values print as $inf,
// $-inf and $nan.
func FormatCurrency(v float64) string {
	switch {
	case math.IsNaN(v):
		return "$nan"
	case math.IsInf(v, 1):
		return "$inf"
	case math.IsInf(v, -1):
		return "$-inf"
	}
	return "$" + printer.Sprintf("%.2f", v)
}

// Reporter writes the human-readable analysis to the console.
// Write errors are ignored; there is nowhere else to report them.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) Loading() {
	r.printf("Loading sales data...\n")
}

func (r *Reporter) Overview(records int, columns []string) {
	r.printf("\nData Overview:\n")
	r.printf("Total records: %d\n", records)
	r.printf("Columns: %s\n", strings.Join(columns, ", "))
}

func (r *Reporter) MissingColumns(missing []string) {
	r.printf("\nWarning: Missing expected columns: %s\n", strings.Join(missing, ", "))
	r.printf("Please ensure your CSV has date, product, and amount columns (column names may differ)\n")
}

func (r *Reporter) NoData() {
	r.printf("\nWarning: No sales records to analyze\n")
}

func (r *Reporter) StatisticsHeader() {
	r.printf("\nSales Statistics:\n")
}

func (r *Reporter) Statistics(st models.Statistics) {
	r.printf("Total sales: %s\n", FormatCurrency(st.Total))
	r.printf("Average sale: %s\n", FormatCurrency(st.Average))
	r.printf("Highest sale: %s\n", FormatCurrency(st.Highest))
	r.printf("Lowest sale: %s\n", FormatCurrency(st.Lowest))
}

func (r *Reporter) TopProducts(top []models.ProductTotal) {
	r.printf("\nTop 5 Products by Sales:\n")
	for _, p := range top {
		r.printf("%s: %s\n", p.Product, FormatCurrency(p.Total))
	}
}

func (r *Reporter) CreatingCharts() {
	r.printf("\nCreating visualizations...\n")
}

// Complete lists the chart files that were written.
func (r *Reporter) Complete(files []string) {
	r.printf("\nAnalysis complete! Visualizations saved as:\n")
	for _, f := range files {
		r.printf("- %s\n", f)
	}
}

func (r *Reporter) Failure(err error) {
	r.printf("Error analyzing sales data: %v\n", err)
}
