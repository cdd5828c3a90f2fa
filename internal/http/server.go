// Package http provides the HTTP API for clausewise.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
	"github.com/fyrsmithlabs/clausewise/internal/suggest"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// Thresholds are the configured risk-threshold percentages reported
	// alongside analysis results.
	Thresholds RiskThresholds
}

// Server exposes the compliance and clause engines over HTTP.
type Server struct {
	echo      *echo.Echo
	analyzer  compliance.Service
	clauses   clause.Service
	generator suggest.Generator
	logger    *zap.Logger
	config    *Config
}

// NewServer creates the HTTP server.
func NewServer(analyzer compliance.Service, clauses clause.Service, generator suggest.Generator, logger *zap.Logger, cfg *Config) (*Server, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("compliance service is required")
	}
	if clauses == nil {
		return nil, fmt.Errorf("clause service is required")
	}
	if generator == nil {
		return nil, fmt.Errorf("suggestion generator is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 9180}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		analyzer:  analyzer,
		clauses:   clauses,
		generator: generator,
		logger:    logger,
		config:    cfg,
	}
	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/compliance/analyze", s.handleAnalyze)
	v1.GET("/clauses/search", s.handleSearch)
	v1.POST("/clauses", s.handleAddTemplate)
	v1.POST("/clauses/usage", s.handleTrackUsage)
	v1.POST("/suggestions", s.handleSuggest)
	v1.POST("/suggestions/compare", s.handleCompare)
	v1.POST("/suggestions/sections", s.handleSections)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid analyze request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	analysis, err := s.analyzer.AnalyzeContract(c.Request().Context(), &compliance.AnalyzeRequest{
		Text:         req.Text,
		DocumentName: req.DocumentName,
		Frameworks:   req.Frameworks,
		Jurisdiction: req.Jurisdiction,
		ClientID:     req.ClientID,
		CustomRules:  req.CustomRules,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, AnalyzeResponse{
		Analysis:   analysis,
		Thresholds: s.config.Thresholds,
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	libraryID := c.QueryParam("library")
	if libraryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "library query parameter is required")
	}

	filters := &clause.SearchFilters{
		Jurisdiction: c.QueryParam("jurisdiction"),
		Language:     c.QueryParam("language"),
		Author:       c.QueryParam("author"),
		Owner:        c.QueryParam("owner"),
	}
	if v := c.QueryParam("category"); v != "" {
		filters.Categories = strings.Split(v, ",")
	}
	if v := c.QueryParam("status"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filters.Statuses = append(filters.Statuses, clause.TemplateStatus(st))
		}
	}
	if v := c.QueryParam("risk"); v != "" {
		for _, r := range strings.Split(v, ",") {
			filters.RiskLevels = append(filters.RiskLevels, compliance.RiskLevel(r))
		}
	}
	if v := c.QueryParam("framework"); v != "" {
		for _, f := range strings.Split(v, ",") {
			filters.Frameworks = append(filters.Frameworks, compliance.Framework(f))
		}
	}
	if v := c.QueryParam("tag"); v != "" {
		filters.Tags = strings.Split(v, ",")
	}
	if v := c.QueryParam("public"); v != "" {
		isPublic := v == "true"
		filters.IsPublic = &isPublic
	}

	templates, err := s.clauses.Search(c.Request().Context(), libraryID, c.QueryParam("q"), filters)
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (s *Server) handleAddTemplate(c echo.Context) error {
	var req AddTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.LibraryID == "" || req.Template == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "library_id and template are required")
	}

	if err := s.clauses.AddTemplate(c.Request().Context(), req.LibraryID, req.Template); err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusCreated, req.Template)
}

func (s *Server) handleTrackUsage(c echo.Context) error {
	var req TrackUsageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	usage, err := s.clauses.TrackUsage(c.Request().Context(), &clause.UsageRequest{
		LibraryID:     req.LibraryID,
		TemplateID:    req.TemplateID,
		ContractID:    req.ContractID,
		ContractName:  req.ContractName,
		UsedBy:        req.UsedBy,
		Context:       req.Context,
		Modifications: req.Modifications,
	})
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusCreated, usage)
}

func (s *Server) handleSuggest(c echo.Context) error {
	var req SuggestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.LibraryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "library_id is required")
	}

	suggestions, err := s.generator.GenerateSuggestions(c.Request().Context(), req.LibraryID, &suggest.Request{
		OriginalClause:       req.OriginalClause,
		Context:              req.Context,
		Category:             req.Category,
		ComplianceFrameworks: req.ComplianceFrameworks,
		Jurisdiction:         req.Jurisdiction,
		RiskLevel:            req.RiskLevel,
		DesiredImprovements:  req.DesiredImprovements,
		MaxSuggestions:       req.MaxSuggestions,
		ExcludeTemplates:     req.ExcludeTemplates,
	})
	if err != nil {
		return s.mapError(err)
	}
	return c.JSON(http.StatusOK, suggestions)
}

func (s *Server) handleCompare(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Original == "" || req.Suggested == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "original and suggested are required")
	}

	return c.JSON(http.StatusOK, suggest.CompareClauses(req.Original, req.Suggested))
}

func (s *Server) handleSections(c echo.Context) error {
	var req SectionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ContractText == "" || req.ClauseText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "contract_text and clause_text are required")
	}

	return c.JSON(http.StatusOK, suggest.FindMatchingSections(req.ContractText, req.ClauseText))
}

// mapError converts engine errors into HTTP errors.
func (s *Server) mapError(err error) error {
	if errors.Is(err, clause.ErrLibraryNotFound) || errors.Is(err, clause.ErrTemplateNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
