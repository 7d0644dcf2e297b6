package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
)

// MemberReader defines read operations for member data
type MemberReader interface {
	// FindMemberByID retrieves a member by its unique identifier.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembers retrieves a paginated list of members of a cooperative.
	ListMembers(ctx context.Context, cooperativeID string, activeOnly bool, limit int, offset int) ([]domain.Member, error)
}

// MemberWriter defines write operations for member data
type MemberWriter interface {
	// SaveMember persists a new member. A duplicate national ID yields apperrors.ErrDuplicate.
	SaveMember(ctx context.Context, member domain.Member) error

	// MarkMemberLiquidated deactivates a member and stamps the liquidation date.
	MarkMemberLiquidated(ctx context.Context, memberID string, liquidatedAt time.Time, userID string, now time.Time) error
}

// MemberTransactionSupport defines operations that must run inside a unit of work
type MemberTransactionSupport interface {
	// FindMemberForUpdate selects a member and locks its row.
	FindMemberForUpdate(ctx context.Context, memberID string) (*domain.Member, error)

	// NextMemberConsecutive claims the next consecutive for (cooperative, year).
	// The sequence row stays locked until the enclosing transaction ends.
	NextMemberConsecutive(ctx context.Context, cooperativeID string, year int) (int, error)
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
	MemberTransactionSupport
}
