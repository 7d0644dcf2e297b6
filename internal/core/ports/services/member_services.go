package services

import (
	"context"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/SscSPs/coop_savings_app/internal/dto"
)

// MemberCodeAllocatorSvc issues membership codes.
type MemberCodeAllocatorSvc interface {
	// AllocateMemberCode claims the next "<n>-<year>" code of the cooperative.
	// Called inside a unit of work, the claim is released if the unit rolls back.
	AllocateMemberCode(ctx context.Context, cooperativeID string) (string, error)
}

// MemberReaderSvc defines read operations for members
type MemberReaderSvc interface {
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, cooperativeID string, params dto.ListMembersParams) ([]domain.Member, error)
}

// MemberWriterSvc defines member lifecycle operations
type MemberWriterSvc interface {
	// Affiliate registers a member with a new code and its four zero-balance accounts.
	Affiliate(ctx context.Context, cooperativeID string, req dto.AffiliateMemberRequest, actor string) (*domain.MemberAffiliation, error)

	// Liquidate drains every account of an active member to zero and deactivates it.
	Liquidate(ctx context.Context, memberID string, req dto.LiquidateMemberRequest, actor string) (*domain.LiquidationResult, error)
}

// MemberSvcFacade combines all member service interfaces
type MemberSvcFacade interface {
	MemberCodeAllocatorSvc
	MemberReaderSvc
	MemberWriterSvc
}
