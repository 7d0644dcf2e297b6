package dto

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// ListNotificationsParams defines query parameters for the staff inbox.
type ListNotificationsParams struct {
	OnlyPending bool `form:"onlyPending"`
	Limit       int  `form:"limit,default=50" binding:"min=1,max=200"`
	Offset      int  `form:"offset,default=0" binding:"min=0"`
}

// ListNotificationsResponse wraps inbox entries.
type ListNotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// ReceiptResponse is the printable receipt of a transaction.
type ReceiptResponse struct {
	domain.Receipt
}
