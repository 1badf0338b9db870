package chart

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"salesanalyzer/internal/models"
)

const (
	TopProductsFile = "top_products.png"
	DailySalesFile  = "daily_sales.png"
)

// Size is a figure size in inches.
type Size struct {
	Width, Height vg.Length
}

var (
	BarSize  = Size{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
	LineSize = Size{Width: 12 * vg.Inch, Height: 6 * vg.Inch}
)

// TopProductsPlot builds a bar chart of product totals in the given order.
func TopProductsPlot(products []models.ProductTotal) (*plot.Plot, error) {
	values := make(plotter.Values, len(products))
	names := make([]string, len(products))
	for i, p := range products {
		values[i] = p.Total
		names[i] = p.Product
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p := plot.New()
	p.Title.Text = "Top 5 Products by Sales"
	p.X.Label.Text = "Product"
	p.Y.Label.Text = "Total Sales ($)"
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// DailySalesPlot builds a line chart of daily totals over calendar time.
func DailySalesPlot(days []models.DailyTotal) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(days))
	for i, d := range days {
		pts[i].X = float64(d.Day.Unix())
		pts[i].Y = d.Total
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("line chart: %w", err)
	}
	line.Color = plotutil.Color(0)

	p := plot.New()
	p.Title.Text = "Daily Sales Over Time"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Total Sales ($)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// Save writes p as a PNG to path, replacing any existing file.
func Save(p *plot.Plot, size Size, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(p, size, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

// WritePNG renders p as a PNG into w.
func WritePNG(p *plot.Plot, size Size, w io.Writer) error {
	wt, err := p.WriterTo(size.Width, size.Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
