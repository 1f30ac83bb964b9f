package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driverpay/internal/domain"
)

func TestComputeSplit(t *testing.T) {
	tests := []struct {
		name    string
		pref    domain.PaymentPreference
		req     SplitRequest
		want    Split
		wantErr error
	}{
		{"batta with total", domain.PaymentPreferenceBatta, SplitRequest{TotalAmount: 1000}, Split{BattaAmount: 1000}, nil},
		{"batta sums components without total", domain.PaymentPreferenceBatta, SplitRequest{BattaAmount: 300, SalaryAmount: 200}, Split{BattaAmount: 500}, nil},
		{"batta prefers total over components", domain.PaymentPreferenceBatta, SplitRequest{BattaAmount: 300, TotalAmount: 800}, Split{BattaAmount: 800}, nil},
		{"salary with total", domain.PaymentPreferenceSalary, SplitRequest{TotalAmount: 450}, Split{SalaryAmount: 450}, nil},
		{"both keeps components", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: 500, SalaryAmount: 700}, Split{BattaAmount: 500, SalaryAmount: 700}, nil},
		{"both ignores total", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: 500, SalaryAmount: 700, TotalAmount: 5}, Split{BattaAmount: 500, SalaryAmount: 700}, nil},
		{"all zero", domain.PaymentPreferenceSalary, SplitRequest{}, Split{}, nil},
		{"unknown preference", domain.PaymentPreference("MONTHLY"), SplitRequest{TotalAmount: 10}, Split{}, ErrInvalidPaymentPreference},
		{"empty preference", "", SplitRequest{TotalAmount: 10}, Split{}, ErrInvalidPaymentPreference},
		{"negative", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: -1}, Split{}, ErrInvalidAmount},
		{"NaN", domain.PaymentPreferenceBatta, SplitRequest{TotalAmount: math.NaN()}, Split{}, ErrInvalidAmount},
		{"infinite", domain.PaymentPreferenceBatta, SplitRequest{TotalAmount: math.Inf(1)}, Split{}, ErrInvalidAmount},
		{"batta overflows sum", domain.PaymentPreferenceBatta, SplitRequest{BattaAmount: math.MaxFloat64, SalaryAmount: math.MaxFloat64}, Split{}, ErrInvalidAmount},
		{"salary overflows sum", domain.PaymentPreferenceSalary, SplitRequest{BattaAmount: math.MaxFloat64, SalaryAmount: math.MaxFloat64}, Split{}, ErrInvalidAmount},
		{"both overflows total", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: math.MaxFloat64, SalaryAmount: math.MaxFloat64}, Split{}, ErrInvalidAmount},
		{"negative total on batta", domain.PaymentPreferenceBatta, SplitRequest{BattaAmount: 10, TotalAmount: -5}, Split{}, ErrInvalidAmount},
		{"both ignores negative total", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: 500, SalaryAmount: 700, TotalAmount: -5}, Split{BattaAmount: 500, SalaryAmount: 700}, nil},
		{"both ignores NaN total", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: 1, TotalAmount: math.NaN()}, Split{BattaAmount: 1}, nil},
		{"large total kept", domain.PaymentPreferenceSalary, SplitRequest{TotalAmount: 1e11}, Split{SalaryAmount: 1e11}, nil},
		{"sub-cent component kept", domain.PaymentPreferenceBoth, SplitRequest{BattaAmount: 0.004, SalaryAmount: 10}, Split{BattaAmount: 0.004, SalaryAmount: 10}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeSplit(tt.pref, tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeSplit_TotalMatchesComponents(t *testing.T) {
	for _, pref := range []domain.PaymentPreference{
		domain.PaymentPreferenceBatta,
		domain.PaymentPreferenceSalary,
		domain.PaymentPreferenceBoth,
	} {
		split, err := ComputeSplit(pref, SplitRequest{BattaAmount: 125.5, SalaryAmount: 74.5})
		require.NoError(t, err)
		assert.Equal(t, 200.0, split.Total(), pref)
		assert.GreaterOrEqual(t, split.BattaAmount, 0.0)
		assert.GreaterOrEqual(t, split.SalaryAmount, 0.0)
	}
}

func TestComputeSplit_ResultIsFinite(t *testing.T) {
	for _, pref := range []domain.PaymentPreference{
		domain.PaymentPreferenceBatta,
		domain.PaymentPreferenceSalary,
		domain.PaymentPreferenceBoth,
	} {
		split, err := ComputeSplit(pref, SplitRequest{BattaAmount: math.MaxFloat64 / 2, SalaryAmount: math.MaxFloat64 / 2})
		require.NoError(t, err, pref)
		assert.False(t, math.IsInf(split.Total(), 0), pref)
	}
}
