package domain

import "time"

// NotificationRecipient says whose inbox a notification lands in.
type NotificationRecipient string

const (
	RecipientStaff  NotificationRecipient = "staff"
	RecipientMember NotificationRecipient = "member"
)

// NotificationKind identifies the event behind a notification.
type NotificationKind string

const (
	KindWithdrawalRequested NotificationKind = "withdrawal_requested"
	KindWithdrawalApproved  NotificationKind = "withdrawal_approved"
	KindWithdrawalRejected  NotificationKind = "withdrawal_rejected"
)

// Notification is an in-app inbox entry.
type Notification struct {
	NotificationID string                `json:"notificationID"`
	Recipient      NotificationRecipient `json:"recipient"`
	MemberID       *string               `json:"memberID,omitempty"`
	Kind           NotificationKind      `json:"kind"`
	ReferenceID    string                `json:"referenceID"`
	Message        string                `json:"message"`
	Processed      bool                  `json:"processed"`
	CreatedAt      time.Time             `json:"createdAt"`
	ProcessedAt    *time.Time            `json:"processedAt,omitempty"`
}

// NotificationFilter narrows inbox listings.
type NotificationFilter struct {
	Recipient     NotificationRecipient
	MemberID      *string
	OnlyPending   bool
	Limit, Offset int
}
