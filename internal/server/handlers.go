package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/iitgo/internal/breakeven"
	"github.com/rgehrsitz/iitgo/internal/calculation"
	"github.com/rgehrsitz/iitgo/internal/domain"
	"go.uber.org/zap"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	engine  *calculation.Engine
	solver  *breakeven.Solver
	logger  *zap.Logger
	maxBody int64
}

// NewHandlers creates a new Handlers instance. Request bodies larger than
// maxBody bytes are refused.
func NewHandlers(engine *calculation.Engine, solver *breakeven.Solver, logger *zap.Logger, maxBody int64) *Handlers {
	return &Handlers{engine: engine, solver: solver, logger: logger, maxBody: maxBody}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	RulesVersion string `json:"rules_version"`
	TaxYear      int    `json:"tax_year"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	meta := h.engine.Rules().Metadata
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Timestamp:    time.Now().Format(time.RFC3339),
		RulesVersion: meta.Version,
		TaxYear:      meta.TaxYear,
	})
}

// Rules handles GET /rules
func (h *Handlers) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, Response{Success: true, Data: h.engine.Rules()})
}

// BonusTraps handles GET /bonus/traps
func (h *Handlers) BonusTraps(c *gin.Context) {
	traps := h.solver.BonusTraps()
	if traps == nil {
		traps = []breakeven.BonusTrap{}
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: traps})
}

// Calculate handles POST /calculate. The body is the form payload; the
// reply is a CalculationResponse.
func (h *Handlers) Calculate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)

	var req domain.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, domain.CalculationResponse{
				Success: false,
				Error:   fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		c.JSON(http.StatusBadRequest, domain.CalculationResponse{
			Success: false,
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.engine.Compute(req)
	if err != nil {
		_ = c.Error(err)
		var invalid *domain.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, domain.CalculationResponse{Success: false, Error: invalid.Error()})
			return
		}
		h.logger.Error("Calculation failed", zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))
		c.JSON(http.StatusInternalServerError, domain.CalculationResponse{Success: false, Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, domain.CalculationResponse{Success: true, Result: result})
}
