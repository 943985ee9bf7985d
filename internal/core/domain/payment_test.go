package domain_test

import (
	"testing"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestComputeVariance(t *testing.T) {
	base := domain.Case{CaseID: "c1", RequestedAmount: decimal.RequireFromString("1000.00")}

	t.Run("no settlement yet", func(t *testing.T) {
		v := domain.ComputeVariance(base, nil)
		assert.Nil(t, v.ExpectedType)
		assert.True(t, v.Difference.IsZero())
		assert.Empty(t, v.Adjustments)
	})

	t.Run("underspent expects refund", func(t *testing.T) {
		c := base
		c.SettledAmount = decimalPtr("850.00")
		payments := []domain.Payment{
			{Type: domain.PaymentDisburse, Amount: decimal.RequireFromString("1000.00")},
			{Type: domain.PaymentRefund, Amount: decimal.RequireFromString("100.00")},
		}
		v := domain.ComputeVariance(c, payments)
		require.NotNil(t, v.ExpectedType)
		assert.Equal(t, domain.PaymentRefund, *v.ExpectedType)
		assert.True(t, v.Difference.Equal(decimal.RequireFromString("-150.00")))
		assert.True(t, v.AdjustedAmount.Equal(decimal.RequireFromString("100.00")))
		assert.True(t, v.Outstanding.Equal(decimal.RequireFromString("50.00")))
		assert.Len(t, v.Adjustments, 1)
	})

	t.Run("overspent expects additional", func(t *testing.T) {
		c := base
		c.SettledAmount = decimalPtr("1200.00")
		v := domain.ComputeVariance(c, nil)
		require.NotNil(t, v.ExpectedType)
		assert.Equal(t, domain.PaymentAdditional, *v.ExpectedType)
		assert.True(t, v.Outstanding.Equal(decimal.RequireFromString("200.00")))
	})

	t.Run("exact settlement", func(t *testing.T) {
		c := base
		c.SettledAmount = decimalPtr("1000.00")
		v := domain.ComputeVariance(c, nil)
		assert.Nil(t, v.ExpectedType)
		assert.True(t, v.Outstanding.IsZero())
	})
}
