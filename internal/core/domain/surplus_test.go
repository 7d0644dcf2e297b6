package domain_test

import (
	"testing"

	"github.com/SscSPs/coop_savings_app/internal/apperrors"
	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contribution(id, amount string) domain.MemberContribution {
	return domain.MemberContribution{
		MemberID:         id,
		Contributions:    decimal.RequireFromString(amount),
		SurplusAccountID: "surplus-" + id,
	}
}

func TestAllocateSurplus_Proportional(t *testing.T) {
	alloc, err := domain.AllocateSurplus(2024, decimal.RequireFromString("1000.00"), []domain.MemberContribution{
		contribution("a", "100"),
		contribution("b", "300"),
	})
	require.NoError(t, err)

	require.Len(t, alloc.Members, 2)
	assert.True(t, alloc.TotalContributions.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "250", alloc.Members[0].Share.String())
	assert.Equal(t, "750", alloc.Members[1].Share.String())
	assert.True(t, alloc.RoundingDifference.IsZero())
}

func TestAllocateSurplus_RoundingDifference(t *testing.T) {
	total := decimal.RequireFromString("100.00")
	alloc, err := domain.AllocateSurplus(2024, total, []domain.MemberContribution{
		contribution("a", "1"),
		contribution("b", "1"),
		contribution("c", "1"),
	})
	require.NoError(t, err)

	for _, m := range alloc.Members {
		assert.Equal(t, "33.33", m.Share.StringFixed(2))
	}
	assert.Equal(t, "0.01", alloc.RoundingDifference.StringFixed(2))
	assert.True(t, alloc.TotalShares.Add(alloc.RoundingDifference).Equal(total))
}

func TestAllocateSurplus_RoundsHalfUp(t *testing.T) {
	// 1/8 of 0.20 is 0.025, which rounds up to 0.03.
	alloc, err := domain.AllocateSurplus(2024, decimal.RequireFromString("0.20"), []domain.MemberContribution{
		contribution("a", "1"),
		contribution("b", "7"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0.03", alloc.Members[0].Share.StringFixed(2))
	assert.Equal(t, "0.18", alloc.Members[1].Share.StringFixed(2))
	assert.Equal(t, "-0.01", alloc.RoundingDifference.StringFixed(2))
}

func TestAllocateSurplus_Conservation(t *testing.T) {
	total := decimal.RequireFromString("98765.43")
	contributions := []domain.MemberContribution{
		contribution("a", "1234.56"),
		contribution("b", "0.01"),
		contribution("c", "777.77"),
		contribution("d", "31415.92"),
		contribution("e", "2.50"),
		contribution("f", "0"),
		contribution("g", "-10"),
	}

	alloc, err := domain.AllocateSurplus(2024, total, contributions)
	require.NoError(t, err)

	assert.Len(t, alloc.Members, 5, "non-positive contributors are excluded")
	sum := decimal.Zero
	for _, m := range alloc.Members {
		assert.True(t, m.Share.Equal(m.Share.Round(2)))
		sum = sum.Add(m.Share)
	}
	assert.True(t, sum.Equal(alloc.TotalShares))
	assert.True(t, sum.Add(alloc.RoundingDifference).Equal(total))
	// Rounding each of n shares moves the sum by at most n half-cents.
	assert.True(t, alloc.RoundingDifference.Abs().LessThanOrEqual(decimal.RequireFromString("0.025")))
}

func TestAllocateSurplus_NoContributors(t *testing.T) {
	alloc, err := domain.AllocateSurplus(2024, decimal.NewFromInt(500), []domain.MemberContribution{contribution("a", "0")})
	require.NoError(t, err)

	assert.Empty(t, alloc.Members)
	assert.True(t, alloc.TotalShares.IsZero())
	assert.True(t, alloc.RoundingDifference.Equal(decimal.NewFromInt(500)))
}

func TestAllocateSurplus_RejectsBadTotals(t *testing.T) {
	_, err := domain.AllocateSurplus(2024, decimal.NewFromInt(-1), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = domain.AllocateSurplus(2024, decimal.RequireFromString("1.001"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
