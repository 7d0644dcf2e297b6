package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// withdrawalRequestHandler handles the member withdrawal request workflow.
type withdrawalRequestHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func newWithdrawalRequestHandler(ws portssvc.WithdrawalSvcFacade) *withdrawalRequestHandler {
	return &withdrawalRequestHandler{withdrawalService: ws}
}

// RegisterWithdrawalRequestRoutes registers the workflow routes. Members may only open
// requests for themselves on authenticated; review and reads go on staff.
func RegisterWithdrawalRequestRoutes(authenticated, staff *gin.RouterGroup, withdrawalService portssvc.WithdrawalSvcFacade) {
	registerValidators()
	h := newWithdrawalRequestHandler(withdrawalService)

	authenticated.POST("/members/:memberID/withdrawal-requests", h.createWithdrawalRequest)

	requests := staff.Group("/withdrawal-requests")
	{
		requests.GET("", h.listWithdrawalRequests)
		requests.GET("/:requestID", h.getWithdrawalRequest)
		requests.POST("/:requestID/approve", h.approveWithdrawalRequest)
		requests.POST("/:requestID/reject", h.rejectWithdrawalRequest)
	}
}

// createWithdrawalRequest godoc
// @Summary Request a withdrawal
// @Description Opens a pending withdrawal request on the member's savings account for staff review
// @Tags withdrawal-requests
// @Accept  json
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   request body dto.CreateWithdrawalRequestRequest true "Request details"
// @Success 201 {object} dto.WithdrawalRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Members may only request for themselves"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member inactive"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to create withdrawal request"
// @Security BearerAuth
// @Router /members/{memberID}/withdrawal-requests [post]
func (h *withdrawalRequestHandler) createWithdrawalRequest(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	memberID := c.Param("memberID")

	role, _ := middleware.GetRoleFromContext(c)
	switch role {
	case domain.RoleStaff:
	case domain.RoleMember:
		if own, _ := middleware.GetMemberIDFromContext(c); own != memberID {
			logger.Warn("Member tried to request a withdrawal for someone else", slog.String("target_member_id", memberID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Members may only request withdrawals from their own accounts"})
			return
		}
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	var req dto.CreateWithdrawalRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "withdrawal request")
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	created, err := h.withdrawalService.CreateWithdrawalRequest(c.Request.Context(), memberID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to create withdrawal request")
		return
	}

	logger.Info("Withdrawal request created", slog.String("request_id", created.RequestID))
	c.JSON(http.StatusCreated, dto.ToWithdrawalRequestResponse(created))
}

// listWithdrawalRequests godoc
// @Summary List withdrawal requests
// @Tags withdrawal-requests
// @Produce  json
// @Param   status query string false "pending, approved or rejected"
// @Param   memberID query string false "Member ID"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListWithdrawalRequestsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list withdrawal requests"
// @Security BearerAuth
// @Router /withdrawal-requests [get]
func (h *withdrawalRequestHandler) listWithdrawalRequests(c *gin.Context) {
	var params dto.ListWithdrawalRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err, "withdrawal request list query")
		return
	}

	reqs, err := h.withdrawalService.ListWithdrawalRequests(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list withdrawal requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListWithdrawalRequestsResponse(reqs))
}

// getWithdrawalRequest godoc
// @Summary Get a withdrawal request by ID
// @Tags withdrawal-requests
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Success 200 {object} dto.WithdrawalRequestResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 500 {object} map[string]string "Failed to retrieve withdrawal request"
// @Security BearerAuth
// @Router /withdrawal-requests/{requestID} [get]
func (h *withdrawalRequestHandler) getWithdrawalRequest(c *gin.Context) {
	req, err := h.withdrawalService.GetWithdrawalRequest(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve withdrawal request")
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalRequestResponse(req))
}

// approveWithdrawalRequest godoc
// @Summary Approve a withdrawal request
// @Description Posts the withdrawal and marks the request approved in one unit of work
// @Tags withdrawal-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   review body dto.ReviewWithdrawalRequestRequest false "Reviewer notes"
// @Success 200 {object} dto.WithdrawalRequestResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request no longer pending"
// @Failure 422 {object} map[string]string "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to approve withdrawal request"
// @Security BearerAuth
// @Router /withdrawal-requests/{requestID}/approve [post]
func (h *withdrawalRequestHandler) approveWithdrawalRequest(c *gin.Context) {
	h.review(c, true)
}

// rejectWithdrawalRequest godoc
// @Summary Reject a withdrawal request
// @Description Marks the request rejected. Notes are required.
// @Tags withdrawal-requests
// @Accept  json
// @Produce  json
// @Param   requestID path string true "Request ID"
// @Param   review body dto.ReviewWithdrawalRequestRequest true "Reviewer notes"
// @Success 200 {object} dto.WithdrawalRequestResponse
// @Failure 400 {object} map[string]string "Notes missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request no longer pending"
// @Failure 500 {object} map[string]string "Failed to reject withdrawal request"
// @Security BearerAuth
// @Router /withdrawal-requests/{requestID}/reject [post]
func (h *withdrawalRequestHandler) rejectWithdrawalRequest(c *gin.Context) {
	h.review(c, false)
}

func (h *withdrawalRequestHandler) review(c *gin.Context, approve bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReviewWithdrawalRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingError(c, err, "review request")
			return
		}
	}
	reviewer, ok := actorFromContext(c)
	if !ok {
		return
	}

	requestID := c.Param("requestID")
	var (
		resolved *domain.WithdrawalRequest
		err      error
	)
	if approve {
		resolved, err = h.withdrawalService.ApproveWithdrawalRequest(c.Request.Context(), requestID, reviewer, req.Notes)
	} else {
		resolved, err = h.withdrawalService.RejectWithdrawalRequest(c.Request.Context(), requestID, reviewer, req.Notes)
	}
	if err != nil {
		respondWithError(c, err, "Failed to review withdrawal request")
		return
	}

	logger.Info("Withdrawal request reviewed", slog.String("request_id", requestID), slog.String("status", string(resolved.Status)))
	c.JSON(http.StatusOK, dto.ToWithdrawalRequestResponse(resolved))
}
