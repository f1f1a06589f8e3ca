package ui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"merchops/domain/sales"
	"merchops/internal/analysis/categoryops"
	"merchops/internal/report"
)

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.currentSnapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"snapshot_id": string(snap.ID),
		"facts":       len(snap.Facts),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	res, _, ok := s.runFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleSummary(c *gin.Context) {
	res, filters, ok := s.runFromQuery(c)
	if !ok {
		return
	}
	md := report.Markdown(res, filters)
	if c.Query("format") == "md" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", renderHTML(md))
}

func (s *Server) handleExport(c *gin.Context) {
	res, _, ok := s.runFromQuery(c)
	if !ok {
		return
	}
	f, err := report.Workbook(res)
	if err != nil {
		s.logger.Error().Err(err).Msg("workbook build failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	filename := fmt.Sprintf("category-ops-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		s.logger.Error().Err(err).Msg("workbook write failed")
	}
}

func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.refresh(c.Request.Context()); err != nil {
		s.logger.Error().Err(err).Msg("snapshot refresh failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed"})
		return
	}
	snap := s.currentSnapshot()
	c.JSON(http.StatusOK, gin.H{"snapshot_id": string(snap.ID), "facts": len(snap.Facts)})
}

// runFromQuery runs the engine for the request's filter and mode params.
// Writes the error response itself when the snapshot is not ready.
func (s *Server) runFromQuery(c *gin.Context) (*categoryops.Result, sales.Filters, bool) {
	snap := s.currentSnapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "snapshot not loaded"})
		return nil, sales.Filters{}, false
	}
	filters := filtersFromQuery(c)
	opts := optionsFromQuery(c)
	return categoryops.Run(snap, filters, opts), filters, true
}

// filtersFromQuery maps query params onto the filter set. Absent params stay
// open via Normalize.
func filtersFromQuery(c *gin.Context) sales.Filters {
	return sales.Filters{
		SeasonYear:     c.Query("season_year"),
		Season:         c.Query("season"),
		Wave:           c.Query("wave"),
		CategoryID:     c.Query("category_id"),
		SubCategory:    c.Query("sub_category"),
		ChannelType:    c.Query("channel_type"),
		PriceBand:      c.Query("price_band"),
		Lifecycle:      c.Query("lifecycle"),
		Region:         c.Query("region"),
		CityTier:       c.Query("city_tier"),
		StoreFormat:    c.Query("store_format"),
		TargetAudience: c.Query("target_audience"),
		Color:          c.Query("color"),
	}.Normalize()
}

// optionsFromQuery maps mode params onto engine options. Unknown values fall
// back to defaults inside the engine.
func optionsFromQuery(c *gin.Context) categoryops.Options {
	opts := categoryops.DefaultOptions()
	if v := c.Query("heatmap_x_axis"); v != "" {
		opts.HeatmapXAxis = categoryops.HeatXAxis(v)
	}
	if v := c.Query("sell_through_mode"); v != "" {
		opts.SellThroughMode = categoryops.SellThroughMode(v)
	}
	if v := c.Query("compare_mode"); v != "" {
		opts.CompareMode = categoryops.CompareMode(v)
	}
	if v := c.Query("category_level"); v != "" {
		opts.CategoryLevel = categoryops.CategoryLevel(v)
	}
	return opts
}

func renderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}
