package models

import "time"

// Member represents a row of the members table.
type Member struct {
	MemberID            string     `db:"member_id"`
	CooperativeID       string     `db:"cooperative_id"`
	FullName            string     `db:"full_name"`
	NationalID          string     `db:"national_id"`
	MemberCode          string     `db:"member_code"`
	Consecutive         int        `db:"consecutive"`
	CodeYear            int        `db:"code_year"`
	IsActive            bool       `db:"is_active"`
	AffiliationDate     time.Time  `db:"affiliation_date"`
	LastLiquidationDate *time.Time `db:"last_liquidation_date"` // Nullable
	AuditFields
}
