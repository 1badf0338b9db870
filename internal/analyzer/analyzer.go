package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"salesanalyzer/internal/chart"
	"salesanalyzer/internal/engine"
	"salesanalyzer/internal/models"
	"salesanalyzer/internal/report"
)

const topN = 5

type Status int

const (
	StatusCompleted Status = iota
	StatusAborted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusAborted:
		return "aborted"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the folded result of one run.
// Reason is set when Aborted, Err when Failed.
type Outcome struct {
	Status   Status
	Reason   string
	Err      error
	Analysis *models.Analysis
	Charts   []string
}

func completed(a *models.Analysis, charts []string) Outcome {
	return Outcome{Status: StatusCompleted, Analysis: a, Charts: charts}
}

func aborted(reason string) Outcome {
	return Outcome{Status: StatusAborted, Reason: reason}
}

func failed(err error, a *models.Analysis, charts []string) Outcome {
	return Outcome{Status: StatusFailed, Err: err, Analysis: a, Charts: charts}
}

// Analyzer runs the load, validate, aggregate, report and visualize stages
// against one CSV file.
type Analyzer struct {
	logger    *zap.Logger
	report    *report.Reporter
	outputDir string
}

// New returns an Analyzer that prints to out and writes charts into the
// current working directory.
func New(logger *zap.Logger, out io.Writer) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		logger:    logger,
		report:    report.New(out),
		outputDir: ".",
	}
}

// Run never returns an error: faults are printed and folded into the
// returned Outcome.
func (a *Analyzer) Run(ctx context.Context, path string) (out Outcome) {
	log := a.logger.With(zap.String("file", path))
	defer func() {
		if r := recover(); r != nil {
			out = failed(fmt.Errorf("%v", r), out.Analysis, out.Charts)
		}
		switch out.Status {
		case StatusFailed:
			a.report.Failure(out.Err)
			log.Error("analysis failed", zap.Error(out.Err))
		case StatusAborted:
			log.Warn("analysis aborted", zap.String("reason", out.Reason))
		default:
			log.Info("analysis complete", zap.Strings("charts", out.Charts))
		}
	}()

	a.report.Loading()
	table, err := engine.LoadTable(path, log)
	if err != nil {
		return failed(err, nil, nil)
	}
	defer table.Release()

	columns := table.Columns()
	a.report.Overview(table.NumRows(), columns)

	if missing := engine.MissingColumns(columns); len(missing) > 0 {
		a.report.MissingColumns(missing)
		return aborted("missing expected columns: " + strings.Join(missing, ", "))
	}

	roles := engine.ResolveRoles(columns)
	if err := engine.RequireRoles(roles); err != nil {
		return failed(err, nil, nil)
	}
	log.Debug("resolved column roles",
		zap.String("date", roles.Date),
		zap.String("product", roles.Product),
		zap.String("amount", roles.Amount))

	// Each section is printed as soon as it is computed, so a fault in a
	// later stage leaves the earlier output on the console.
	a.report.StatisticsHeader()
	st, err := table.Statistics(roles.Amount)
	if errors.Is(err, engine.ErrNoSalesData) {
		a.report.NoData()
		return aborted(err.Error())
	}
	if err != nil {
		return failed(err, nil, nil)
	}
	a.report.Statistics(st)

	products, err := table.ProductTotals(roles.Product, roles.Amount)
	if err != nil {
		return failed(err, nil, nil)
	}
	analysis := newAnalysis(table, roles, st, products)
	a.report.TopProducts(analysis.TopProducts)

	if err := ctx.Err(); err != nil {
		return failed(err, analysis, nil)
	}

	a.report.CreatingCharts()
	charts, err := a.visualize(table, analysis)
	if err != nil {
		return failed(err, analysis, charts)
	}

	a.report.Complete(charts)
	return completed(analysis, charts)
}

// Summarize computes the full analysis, daily totals included, without
// printing or writing files.
func Summarize(table *engine.SalesTable, roles models.ColumnRoles) (*models.Analysis, error) {
	if err := engine.RequireRoles(roles); err != nil {
		return nil, err
	}
	analysis, err := aggregate(table, roles)
	if err != nil {
		return nil, err
	}
	if roles.HasDate() {
		daily, err := table.DailyTotals(roles.Date, roles.Amount)
		if err != nil {
			return nil, err
		}
		analysis.DailySales = daily
	}
	return analysis, nil
}

func aggregate(table *engine.SalesTable, roles models.ColumnRoles) (*models.Analysis, error) {
	st, err := table.Statistics(roles.Amount)
	if err != nil {
		return nil, err
	}
	products, err := table.ProductTotals(roles.Product, roles.Amount)
	if err != nil {
		return nil, err
	}
	return newAnalysis(table, roles, st, products), nil
}

func newAnalysis(table *engine.SalesTable, roles models.ColumnRoles, st models.Statistics, products []models.ProductTotal) *models.Analysis {
	return &models.Analysis{
		Records:     table.NumRows(),
		Columns:     table.Columns(),
		Roles:       roles,
		Statistics:  st,
		Products:    products,
		TopProducts: engine.TopProducts(products, topN),
	}
}

// visualize writes the bar chart, then the daily line chart when a date
// role exists. Files already written stay on disk if a later step fails.
func (a *Analyzer) visualize(table *engine.SalesTable, analysis *models.Analysis) ([]string, error) {
	var written []string

	bar, err := chart.TopProductsPlot(analysis.TopProducts)
	if err != nil {
		return written, err
	}
	if err := chart.Save(bar, chart.BarSize, filepath.Join(a.outputDir, chart.TopProductsFile)); err != nil {
		return written, err
	}
	written = append(written, chart.TopProductsFile)

	roles := analysis.Roles
	if !roles.HasDate() {
		return written, nil
	}

	daily, err := table.DailyTotals(roles.Date, roles.Amount)
	if err != nil {
		return written, err
	}
	analysis.DailySales = daily

	line, err := chart.DailySalesPlot(daily)
	if err != nil {
		return written, err
	}
	if err := chart.Save(line, chart.LineSize, filepath.Join(a.outputDir, chart.DailySalesFile)); err != nil {
		return written, err
	}
	return append(written, chart.DailySalesFile), nil
}
