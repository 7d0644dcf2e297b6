package handlers

import (
	"net/http"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_app/internal/core/ports/services"
	"github.com/SscSPs/coop_savings_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// RegisterNotificationRoutes registers the staff inbox. The group must only admit staff.
func RegisterNotificationRoutes(rg *gin.RouterGroup, notifier portssvc.Notifier) {
	rg.GET("/notifications", func(c *gin.Context) {
		listNotifications(c, notifier)
	})
}

// listNotifications godoc
// @Summary List staff notifications
// @Description Newest first. Entries are marked processed once the request they refer to is resolved.
// @Tags notifications
// @Produce  json
// @Param   onlyPending query bool false "Only unprocessed entries"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListNotificationsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list notifications"
// @Security BearerAuth
// @Router /notifications [get]
func listNotifications(c *gin.Context, notifier portssvc.Notifier) {
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindingError(c, err, "notification list query")
		return
	}

	ns, err := notifier.ListNotifications(c.Request.Context(), domain.NotificationFilter{
		Recipient:   domain.RecipientStaff,
		OnlyPending: params.OnlyPending,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		respondWithError(c, err, "Failed to list notifications")
		return
	}
	if ns == nil {
		ns = []domain.Notification{}
	}
	c.JSON(http.StatusOK, dto.ListNotificationsResponse{Notifications: ns})
}
