package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Member is a cooperative member's identity record.
type Member struct {
	MemberID            string     `json:"memberID"`
	CooperativeID       string     `json:"cooperativeID"`
	FullName            string     `json:"fullName"`
	NationalID          string     `json:"nationalID"`
	MemberCode          string     `json:"memberCode"`
	Consecutive         int        `json:"consecutive"`
	CodeYear            int        `json:"codeYear"`
	IsActive            bool       `json:"isActive"`
	AffiliationDate     time.Time  `json:"affiliationDate"`
	LastLiquidationDate *time.Time `json:"lastLiquidationDate,omitempty"`
	AuditFields
}

// FormatMemberCode builds the "<n>-<year>" membership code.
func FormatMemberCode(consecutive, year int) string {
	return fmt.Sprintf("%d-%d", consecutive, year)
}

// ParseMemberCode splits a "<n>-<year>" code.
func ParseMemberCode(code string) (consecutive, year int, err error) {
	n, y, ok := strings.Cut(code, "-")
	if !ok {
		return 0, 0, fmt.Errorf("member code %q is not of the form <n>-<year>", code)
	}
	if consecutive, err = strconv.Atoi(n); err != nil || consecutive <= 0 {
		return 0, 0, fmt.Errorf("member code %q has an invalid consecutive", code)
	}
	if year, err = strconv.Atoi(y); err != nil || year <= 0 {
		return 0, 0, fmt.Errorf("member code %q has an invalid year", code)
	}
	return consecutive, year, nil
}

// SurplusCutoff is the last day (inclusive) an inactive member may have been
// liquidated and still receive surplus for fiscalYear: September 30 of the following year.
func SurplusCutoff(fiscalYear int) time.Time {
	return time.Date(fiscalYear+1, time.September, 30, 0, 0, 0, 0, time.UTC)
}

// EligibleForSurplus reports whether a member with the given status takes part in
// the fiscalYear distribution.
func EligibleForSurplus(isActive bool, lastLiquidation *time.Time, fiscalYear int) bool {
	if isActive {
		return true
	}
	if lastLiquidation == nil {
		return false
	}
	liquidated := time.Date(lastLiquidation.Year(), lastLiquidation.Month(), lastLiquidation.Day(), 0, 0, 0, 0, time.UTC)
	return !liquidated.After(SurplusCutoff(fiscalYear))
}

// EligibleForSurplus reports whether m takes part in the fiscalYear distribution.
func (m Member) EligibleForSurplus(fiscalYear int) bool {
	return EligibleForSurplus(m.IsActive, m.LastLiquidationDate, fiscalYear)
}

// MemberAffiliation is a newly registered member with its opening accounts.
type MemberAffiliation struct {
	Member   Member    `json:"member"`
	Accounts []Account `json:"accounts"`
}
