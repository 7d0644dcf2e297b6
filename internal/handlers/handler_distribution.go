package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// distributionHandler handles annual surplus distributions.
type distributionHandler struct {
	distributionService portssvc.DistributionSvcFacade
	cooperativeID       string
}

func newDistributionHandler(ds portssvc.DistributionSvcFacade, cooperativeID string) *distributionHandler {
	return &distributionHandler{distributionService: ds, cooperativeID: cooperativeID}
}

// RegisterDistributionRoutes registers surplus distribution routes. The group must only admit staff.
func RegisterDistributionRoutes(rg *gin.RouterGroup, distributionService portssvc.DistributionSvcFacade, cooperativeID string) {
	registerValidators()
	h := newDistributionHandler(distributionService, cooperativeID)

	distributions := rg.Group("/surplus-distributions")
	{
		distributions.POST("/preview", h.previewDistribution)
		distributions.POST("", h.executeDistribution)
		distributions.GET("", h.listDistributions)
		distributions.GET("/:fiscalYear", h.getDistribution)
	}
}

// previewDistribution godoc
// @Summary Preview a surplus distribution
// @Description Computes every member's share without posting anything
// @Tags surplus-distributions
// @Accept  json
// @Produce  json
// @Param   distribution body dto.SurplusDistributionRequest true "Fiscal year and distributable total"
// @Success 200 {object} dto.SurplusPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to preview distribution"
// @Security BearerAuth
// @Router /surplus-distributions/preview [post]
func (h *distributionHandler) previewDistribution(c *gin.Context) {
	var req dto.SurplusDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "distribution preview request")
		return
	}

	alloc, err := h.distributionService.PreviewDistribution(c.Request.Context(), h.cooperativeID, req.FiscalYear, req.TotalAmount)
	if err != nil {
		respondWithError(c, err, "Failed to preview distribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToSurplusPreviewResponse(alloc))
}

// executeDistribution godoc
// @Summary Execute a surplus distribution
// @Description Posts every member's share to their surplus account and records the distribution. Runs at most once per fiscal year.
// @Tags surplus-distributions
// @Accept  json
// @Produce  json
// @Param   distribution body dto.SurplusDistributionRequest true "Fiscal year, distributable total and notes"
// @Success 201 {object} dto.ExecuteDistributionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Fiscal year already distributed"
// @Failure 500 {object} map[string]string "Failed to execute distribution"
// @Security BearerAuth
// @Router /surplus-distributions [post]
func (h *distributionHandler) executeDistribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SurplusDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "distribution request")
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	result, err := h.distributionService.ExecuteDistribution(c.Request.Context(), h.cooperativeID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to execute distribution")
		return
	}

	logger.Info("Surplus distribution executed", slog.String("distribution_id", result.Distribution.DistributionID), slog.Int("fiscal_year", req.FiscalYear))
	c.JSON(http.StatusCreated, dto.ToExecuteDistributionResponse(result))
}

// listDistributions godoc
// @Summary List surplus distributions
// @Tags surplus-distributions
// @Produce  json
// @Success 200 {object} dto.ListDistributionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list distributions"
// @Security BearerAuth
// @Router /surplus-distributions [get]
func (h *distributionHandler) listDistributions(c *gin.Context) {
	ds, err := h.distributionService.ListDistributions(c.Request.Context(), h.cooperativeID)
	if err != nil {
		respondWithError(c, err, "Failed to list distributions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDistributionsResponse(ds))
}

// getDistribution godoc
// @Summary Get the distribution of a fiscal year
// @Tags surplus-distributions
// @Produce  json
// @Param   fiscalYear path int true "Fiscal year"
// @Success 200 {object} dto.SurplusDistributionResponse
// @Failure 400 {object} map[string]string "Invalid fiscal year"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No distribution for the fiscal year"
// @Failure 500 {object} map[string]string "Failed to retrieve distribution"
// @Security BearerAuth
// @Router /surplus-distributions/{fiscalYear} [get]
func (h *distributionHandler) getDistribution(c *gin.Context) {
	fiscalYear, err := strconv.Atoi(c.Param("fiscalYear"))
	if err != nil || fiscalYear <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fiscalYear must be a positive integer"})
		return
	}

	d, err := h.distributionService.GetDistribution(c.Request.Context(), h.cooperativeID, fiscalYear)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve distribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToSurplusDistributionResponse(d))
}
