package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/SscSPs/coop_savings_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests related to members.
type memberHandler struct {
	memberService  portssvc.MemberSvcFacade
	accountService portssvc.AccountSvcFacade
	cooperativeID  string
}

// newMemberHandler creates a new memberHandler.
func newMemberHandler(ms portssvc.MemberSvcFacade, as portssvc.AccountSvcFacade, cooperativeID string) *memberHandler {
	return &memberHandler{
		memberService:  ms,
		accountService: as,
		cooperativeID:  cooperativeID,
	}
}

// RegisterMemberRoutes registers routes related to the member registry. The group must only admit staff.
func RegisterMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, accountService portssvc.AccountSvcFacade, cooperativeID string) {
	registerValidators()
	h := newMemberHandler(memberService, accountService, cooperativeID)

	members := rg.Group("/members")
	{
		members.POST("", h.affiliateMember)
		members.GET("", h.listMembers)
		members.GET("/:memberID", h.getMember)
		members.GET("/:memberID/accounts", h.listMemberAccounts)
		members.POST("/:memberID/liquidation", h.liquidateMember)
	}
}

// affiliateMember godoc
// @Summary Affiliate a new member
// @Description Registers a member, assigns the next membership code and opens its four accounts at zero
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member body dto.AffiliateMemberRequest true "Member details"
// @Success 201 {object} dto.AffiliationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "National ID already registered"
// @Failure 500 {object} map[string]string "Failed to affiliate member"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) affiliateMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AffiliateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err, "affiliation request")
		return
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	affiliation, err := h.memberService.Affiliate(c.Request.Context(), h.cooperativeID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to affiliate member")
		return
	}

	logger.Info("Member affiliated", slog.String("member_id", affiliation.Member.MemberID), slog.String("member_code", affiliation.Member.MemberCode))
	c.JSON(http.StatusCreated, dto.ToAffiliationResponse(affiliation))
}

// listMembers godoc
// @Summary List members
// @Description Lists members of the cooperative ordered by membership code
// @Tags members
// @Produce  json
// @Param   activeOnly query bool false "Only active members"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err, "member list query")
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), h.cooperativeID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// getMember godoc
// @Summary Get a member by ID
// @Tags members
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to retrieve member"
// @Security BearerAuth
// @Router /members/{memberID} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	member, err := h.memberService.GetMemberByID(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// listMemberAccounts godoc
// @Summary List a member's accounts
// @Tags members
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /members/{memberID}/accounts [get]
func (h *memberHandler) listMemberAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccountsByMember(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// liquidateMember godoc
// @Summary Liquidate a member
// @Description Pays out every account of an active member and deactivates it
// @Tags members
// @Accept  json
// @Produce  json
// @Param   memberID path string true "Member ID"
// @Param   liquidation body dto.LiquidateMemberRequest false "Liquidation notes"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "Member already inactive"
// @Failure 500 {object} map[string]string "Failed to liquidate member"
// @Security BearerAuth
// @Router /members/{memberID}/liquidation [post]
func (h *memberHandler) liquidateMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LiquidateMemberRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindingError(c, err, "liquidation request")
			return
		}
	}
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	memberID := c.Param("memberID")
	result, err := h.memberService.Liquidate(c.Request.Context(), memberID, req, actor)
	if err != nil {
		respondWithError(c, err, "Failed to liquidate member")
		return
	}

	logger.Info("Member liquidated", slog.String("member_id", memberID), slog.String("total_paid_out", result.TotalPaidOut.String()))
	c.JSON(http.StatusOK, dto.ToLiquidationResponse(result))
}
