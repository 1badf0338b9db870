package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"salesanalyzer/internal/analyzer"
	"salesanalyzer/internal/api"
	"salesanalyzer/internal/config"
	"salesanalyzer/internal/engine"
	"salesanalyzer/internal/models"
)

func newServeCmd(deps func() (*zap.Logger, *config.Config)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <csv>",
		Short: "Serve the analysis of a sales CSV over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg := deps()
			path := args[0]

			e := echo.New()
			e.HideBanner = true
			e.Use(middleware.CORS())
			e.Use(middleware.Recover())

			// The API is live immediately and answers 503 until the data lands.
			h := api.NewHandler(nil)
			h.RegisterRoutes(e)

			go func() {
				logger.Info("background load started", zap.String("file", path))
				t0 := time.Now()
				analysis, status, err := load(path, logger)
				if err != nil {
					logger.Error("background load failed", zap.Error(err))
					h.SetError(status, err.Error())
					return
				}
				h.SetData(analysis)
				logger.Info("background load complete", zap.Duration("elapsed", time.Since(t0)))
			}()

			logger.Info("server ready", zap.String("port", cfg.ServerPort))
			if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

// load returns the HTTP status to serve when no analysis can be produced.
func load(path string, logger *zap.Logger) (*models.Analysis, int, error) {
	table, err := engine.LoadTable(path, logger)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	defer table.Release()

	columns := table.Columns()
	if missing := engine.MissingColumns(columns); len(missing) > 0 {
		return nil, http.StatusUnprocessableEntity, fmt.Errorf("missing expected columns: %s", strings.Join(missing, ", "))
	}

	analysis, err := analyzer.Summarize(table, engine.ResolveRoles(columns))
	if errors.Is(err, engine.ErrNoSalesData) {
		return nil, http.StatusUnprocessableEntity, err
	}
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return analysis, 0, nil
}
