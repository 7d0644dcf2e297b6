package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // actor reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Role identifies what an authenticated actor may do.
type Role string

const (
	RoleStaff  Role = "staff"
	RoleMember Role = "member"
)

// CentPlaces is the number of decimal places money is kept at.
const CentPlaces int32 = 2

// FiscalYearFor returns the fiscal year a timestamp belongs to.
// The cooperative keeps calendar fiscal years.
func FiscalYearFor(t time.Time) int {
	return t.Year()
}
