package handlers

import (
	"errors"
	"io"
	"net/http"
	"sync"

	"heat-optimizer/internal/api/models"
	"heat-optimizer/internal/ledger"
	"heat-optimizer/internal/model"
	"heat-optimizer/internal/optimizer"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OptimizeHandler handles optimisation runs and stored results
type OptimizeHandler struct {
	engine *optimizer.Engine
	store  ledger.Store
	log    zerolog.Logger

	// Shared with UnitHandler: the engine, catalog and result store assume
	// one writer at a time.
	mu *sync.Mutex
}

// NewOptimizeHandler creates a new optimize handler
func NewOptimizeHandler(engine *optimizer.Engine, store ledger.Store, mu *sync.Mutex, log zerolog.Logger) *OptimizeHandler {
	return &OptimizeHandler{engine: engine, store: store, mu: mu, log: log}
}

// Optimize handles POST /api/v1/optimize
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}

	settings, err := settingsFrom(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_SETTINGS", err.Error()))
		return
	}

	h.mu.Lock()
	result, err := h.engine.Optimize(settings)
	h.mu.Unlock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewError("OPTIMIZE_ERROR", err.Error()))
		return
	}

	schedules := make([]models.ScheduleResponse, len(result.Schedules))
	for i, s := range result.Schedules {
		schedules[i] = models.ScheduleResponse{UnitName: s.UnitName, Entries: models.Entries(s.Entries)}
	}
	shortfalls := make([]models.ShortfallResponse, len(result.Shortfalls))
	for i, s := range result.Shortfalls {
		shortfalls[i] = models.ShortfallResponse{Start: s.Start, Demand: s.Demand, Unmet: s.Unmet}
	}

	resp := models.OptimizeResponse{
		ID:         result.ID,
		Status:     "completed",
		Settings:   result.Settings,
		Summary:    models.Summary(result.Summary),
		Schedules:  schedules,
		Shortfalls: shortfalls,
	}
	if !result.Saved {
		resp.Status = "empty"
	}
	if req.IncludeEntries {
		resp.Entries = models.Entries(result.Entries)
	}
	c.JSON(http.StatusOK, resp)
}

// Results handles GET /api/v1/results
func (h *OptimizeHandler) Results(c *gin.Context) {
	h.mu.Lock()
	rows, err := h.store.Load()
	h.mu.Unlock()
	if err != nil {
		h.log.Error().Err(err).Msg("load results")
		c.JSON(http.StatusInternalServerError, models.NewError("RESULTS_ERROR", err.Error()))
		return
	}
	c.JSON(http.StatusOK, models.ResultsResponse{Count: len(rows), Entries: models.Entries(rows)})
}

func settingsFrom(req models.OptimizeRequest) (model.RunSettings, error) {
	s := model.DefaultSettings()
	var err error
	if req.Profile != "" {
		if s.Profile, err = model.ParseProfile(req.Profile); err != nil {
			return s, err
		}
	}
	if req.Criterion != "" {
		if s.Criterion, err = model.ParseCriterion(req.Criterion); err != nil {
			return s, err
		}
	}
	if req.Scenario != "" {
		if s.Scenario, err = model.ParseScenario(req.Scenario); err != nil {
			return s, err
		}
	}
	return s, nil
}
