package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"heat-optimizer/internal/api/models"
	"heat-optimizer/internal/catalog"
	"heat-optimizer/internal/model"

	"github.com/gin-gonic/gin"
)

// UnitHandler handles production unit requests
type UnitHandler struct {
	catalog  *catalog.Catalog
	defaults *catalog.Defaults
	mu       *sync.Mutex
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(c *catalog.Catalog, defaults *catalog.Defaults, mu *sync.Mutex) *UnitHandler {
	return &UnitHandler{catalog: c, defaults: defaults, mu: mu}
}

// ListUnits handles GET /api/v1/units
func (h *UnitHandler) ListUnits(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.JSON(http.StatusOK, models.UnitsResponse{Units: h.catalog.List()})
}

// UpdateUnit handles PUT /api/v1/units/:name
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := c.Param("name")
	current, ok := h.catalog.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, models.NewError("UNIT_NOT_FOUND", "unknown unit: "+name))
		return
	}

	var req models.UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", err.Error()))
		return
	}

	u := current
	u.MaxHeat = req.MaxHeat
	u.MaxElectricity = req.MaxElectricity
	u.ProductionCosts = req.ProductionCosts
	u.CO2Emissions = req.CO2Emissions
	u.FuelConsumption = req.FuelConsumption
	if req.ImagePath != nil {
		u.ImagePath = *req.ImagePath
	}
	if err := u.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_UNIT", err.Error()))
		return
	}
	if err := h.catalog.Save(u); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DisableUnit handles POST /api/v1/units/:name/disable
func (h *UnitHandler) DisableUnit(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	u, err := h.catalog.Disable(c.Param("name"))
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// EnableUnit handles POST /api/v1/units/:name/enable
func (h *UnitHandler) EnableUnit(c *gin.Context) {
	var defaults *catalog.Defaults
	if v := c.Query("defaults"); v != "" {
		use, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.NewError("INVALID_REQUEST", "defaults must be a boolean"))
			return
		}
		if use {
			defaults = h.defaults
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	u, err := h.catalog.Enable(c.Param("name"), defaults)
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ListScenarios handles GET /api/v1/scenarios
func (h *UnitHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{}
	for _, s := range []model.Scenario{model.ScenarioA, model.ScenarioB} {
		scenarios = append(scenarios, models.ScenarioInfo{
			ID:                string(s),
			Units:             s.Units(),
			TradesElectricity: s.TradesElectricity(),
		})
	}
	c.JSON(http.StatusOK, models.ScenariosResponse{Scenarios: scenarios})
}

// ApplyScenario handles POST /api/v1/scenarios/:id/apply
func (h *UnitHandler) ApplyScenario(c *gin.Context) {
	s, err := model.ParseScenario(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_SCENARIO", err.Error()))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.catalog.ApplyScenario(s); err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UnitsResponse{Units: h.catalog.List()})
}

func writeCatalogError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrUnknownUnit) {
		c.JSON(http.StatusNotFound, models.NewError("UNIT_NOT_FOUND", err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, models.NewError("CATALOG_SAVE_ERROR", err.Error()))
}
