package mapping

import (
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/models"
)

// ToModelMember converts a domain Member to a model Member
func ToModelMember(d domain.Member) models.Member {
	return models.Member{
		MemberID:            d.MemberID,
		CooperativeID:       d.CooperativeID,
		FullName:            d.FullName,
		NationalID:          d.NationalID,
		MemberCode:          d.MemberCode,
		Consecutive:         d.Consecutive,
		CodeYear:            d.CodeYear,
		IsActive:            d.IsActive,
		AffiliationDate:     d.AffiliationDate,
		LastLiquidationDate: d.LastLiquidationDate,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMember converts a model Member to a domain Member
func ToDomainMember(m models.Member) domain.Member {
	return domain.Member{
		MemberID:            m.MemberID,
		CooperativeID:       m.CooperativeID,
		FullName:            m.FullName,
		NationalID:          m.NationalID,
		MemberCode:          m.MemberCode,
		Consecutive:         m.Consecutive,
		CodeYear:            m.CodeYear,
		IsActive:            m.IsActive,
		AffiliationDate:     m.AffiliationDate,
		LastLiquidationDate: m.LastLiquidationDate,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}
