package handlers

import (
	"net/http"

	"heat-optimizer/internal/analysis"
	"heat-optimizer/internal/api/models"
	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/model"

	"github.com/gin-gonic/gin"
)

// DemandHandler serves the demand series
type DemandHandler struct {
	series *demand.Series
}

func NewDemandHandler(s *demand.Series) *DemandHandler {
	return &DemandHandler{series: s}
}

// GetProfile handles GET /api/v1/demand/:profile
func (h *DemandHandler) GetProfile(c *gin.Context) {
	p, err := model.ParseProfile(c.Param("profile"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_PROFILE", err.Error()))
		return
	}
	resp := demandResponse(h.series.Profile(p))
	resp.Profile = string(p)
	c.JSON(http.StatusOK, resp)
}

// GetRange handles GET /api/v1/demand?start=...&end=...
func (h *DemandHandler) GetRange(c *gin.Context) {
	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "start and end are required"))
		return
	}
	start, err := demand.ParseTime(startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}
	end, err := demand.ParseTime(endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}
	if !start.Before(end) {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "start must be before end"))
		return
	}
	c.JSON(http.StatusOK, demandResponse(h.series.Range(start, end)))
}

func demandResponse(intervals []model.HeatDemand) models.DemandResponse {
	if intervals == nil {
		intervals = []model.HeatDemand{}
	}
	return models.DemandResponse{
		Count:     len(intervals),
		Stats:     models.DemandStats(analysis.DescribeDemand(intervals)),
		Intervals: intervals,
	}
}
