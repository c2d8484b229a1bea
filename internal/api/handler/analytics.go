package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetHeatmapData projects all complaints onto map points, optionally
// filtered by status.
func (h *Handler) GetHeatmapData(c *gin.Context) {
	points, err := h.Store.HeatmapPoints(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve heatmap data")
		return
	}
	respondOK(c, http.StatusOK, points, "Heatmap data retrieved successfully")
}

// GetDashboardStats serves the admin dashboard aggregate, cached briefly in
// Redis because the UI polls it.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	if stats, ok := h.Store.GetCachedDashboard(); ok {
		respondOK(c, http.StatusOK, stats, "Dashboard statistics retrieved successfully")
		return
	}

	stats, err := h.Store.DashboardStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve statistics")
		return
	}
	h.Store.SetCachedDashboard(stats)
	respondOK(c, http.StatusOK, stats, "Dashboard statistics retrieved successfully")
}

// GetTrendsData returns daily complaint volume over the last N days
// (default 30).
func (h *Handler) GetTrendsData(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	points, err := h.Store.TrendPoints(days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve trends data")
		return
	}
	respondOK(c, http.StatusOK, points, "Trends data retrieved successfully")
}

// GetCategories returns complaints grouped by category and subcategory.
func (h *Handler) GetCategories(c *gin.Context) {
	groups, err := h.Store.CategoryBreakdown()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	respondOK(c, http.StatusOK, groups, "Categories retrieved successfully")
}
