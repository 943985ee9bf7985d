package domain_test

import (
	"testing"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoucherTypeFor(t *testing.T) {
	pv, err := domain.VoucherTypeFor(domain.CategoryExpense)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentPV, pv)

	for _, ct := range []domain.CategoryType{domain.CategoryRevenue, domain.CategoryAsset} {
		rv, err := domain.VoucherTypeFor(ct)
		require.NoError(t, err)
		assert.Equal(t, domain.DocumentRV, rv)
	}

	_, err = domain.VoucherTypeFor(domain.CategoryType("LIABILITY"))
	assert.Error(t, err)
}

func TestPeriodKeyUsesUTC(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	// 1 March 2025 03:00 in Bangkok is still February in UTC.
	ts := time.Date(2025, time.March, 1, 3, 0, 0, 0, bangkok)
	assert.Equal(t, "2502", domain.PeriodKey(ts))
	assert.Equal(t, "2503", domain.PeriodKey(time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDocumentNumber(t *testing.T) {
	assert.Equal(t, "PV-2503-0001", domain.FormatDocumentNumber(domain.DocumentPV, "2503", 1))
	assert.Equal(t, "JV-2512-0420", domain.FormatDocumentNumber(domain.DocumentJV, "2512", 420))
	assert.Equal(t, "RV-2501-12345", domain.FormatDocumentNumber(domain.DocumentRV, "2501", 12345))
}

func TestSumLineItems(t *testing.T) {
	items := []domain.JVLineItem{
		{Amount: decimal.RequireFromString("100.00")},
		{Amount: decimal.RequireFromString("250.00")},
	}
	assert.True(t, domain.SumLineItems(items).Equal(decimal.RequireFromString("350.00")))
	assert.True(t, domain.SumLineItems(nil).IsZero())
}
