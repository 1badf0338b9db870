package api

import (
	"bytes"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"gonum.org/v1/plot"

	"salesanalyzer/internal/chart"
	"salesanalyzer/internal/models"
)

// Handler serves one analysis. Until SetData or SetError is called every
// route answers 503.
type Handler struct {
	mu     sync.RWMutex
	data   *models.Analysis
	status int
	err    string
}

func NewHandler(data *models.Analysis) *Handler {
	return &Handler{data: data}
}

func (h *Handler) SetData(data *models.Analysis) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data, h.status, h.err = data, 0, ""
}

// SetError records why no analysis will arrive; status is the HTTP status
// every route answers with from then on.
func (h *Handler) SetError(status int, msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.data, h.status, h.err = nil, status, msg
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/summary", h.GetSummary)
	api.GET("/products/top", h.GetTopProducts)
	api.GET("/sales/daily", h.GetDailySales)

	charts := e.Group("/charts")
	charts.GET("/"+chart.TopProductsFile, h.GetTopProductsChart)
	charts.GET("/"+chart.DailySalesFile, h.GetDailySalesChart)
}

// current returns the analysis or writes the not-ready response.
func (h *Handler) current(c echo.Context) (*models.Analysis, bool, error) {
	h.mu.RLock()
	data, status, msg := h.data, h.status, h.err
	h.mu.RUnlock()

	if data != nil {
		return data, true, nil
	}
	if status == 0 {
		return nil, false, c.JSON(http.StatusServiceUnavailable, map[string]string{"message": "data is loading"})
	}
	return nil, false, c.JSON(status, map[string]string{"message": msg})
}

// --- HANDLERS ---
func getLimit(c echo.Context, defaultLimit int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return defaultLimit
	}
	return limit
}

func (h *Handler) GetSummary(c echo.Context) error {
	data, ok, err := h.current(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"records":    data.Records,
		"columns":    data.Columns,
		"roles":      data.Roles,
		"statistics": data.Statistics,
	})
}

// returns the top 5 products unless ?limit= asks for more
func (h *Handler) GetTopProducts(c echo.Context) error {
	data, ok, err := h.current(c)
	if !ok {
		return err
	}
	products := data.Products
	if limit := getLimit(c, len(data.TopProducts)); limit < len(products) {
		products = products[:limit]
	}
	return c.JSON(http.StatusOK, products)
}

func (h *Handler) GetDailySales(c echo.Context) error {
	data, ok, err := h.current(c)
	if !ok {
		return err
	}
	daily := data.DailySales
	if daily == nil {
		daily = []models.DailyTotal{}
	}
	return c.JSON(http.StatusOK, daily)
}

func (h *Handler) GetTopProductsChart(c echo.Context) error {
	data, ok, err := h.current(c)
	if !ok {
		return err
	}
	p, err := chart.TopProductsPlot(data.TopProducts)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return writePNG(c, p, chart.BarSize)
}

func (h *Handler) GetDailySalesChart(c echo.Context) error {
	data, ok, err := h.current(c)
	if !ok {
		return err
	}
	if !data.Roles.HasDate() {
		return echo.NewHTTPError(http.StatusNotFound, "no date column")
	}
	p, err := chart.DailySalesPlot(data.DailySales)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return writePNG(c, p, chart.LineSize)
}

func writePNG(c echo.Context, p *plot.Plot, size chart.Size) error {
	var buf bytes.Buffer
	if err := chart.WritePNG(p, size, &buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}
