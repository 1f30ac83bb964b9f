package service

import (
	"math"

	"driverpay/internal/domain"
)

// SplitRequest holds the caller-supplied candidate amounts for a trip.
// A zero field means the amount was not supplied.
type SplitRequest struct {
	BattaAmount  float64
	SalaryAmount float64
	TotalAmount  float64
}

// Split is the batta/salary division of a trip amount.
type Split struct {
	BattaAmount  float64
	SalaryAmount float64
}

// Total returns batta + salary.
func (s Split) Total() float64 {
	return s.BattaAmount + s.SalaryAmount
}

// ComputeSplit divides the requested amounts according to the driver's preference.
//
// BATTA and SALARY put the whole total (TotalAmount, or batta+salary when
// TotalAmount is zero) on one side. BOTH takes batta and salary as given and
// ignores TotalAmount. Inputs and the resulting components and total must be
// finite and non-negative; amounts are kept at full precision.
func ComputeSplit(pref domain.PaymentPreference, req SplitRequest) (Split, error) {
	if !pref.Valid() {
		return Split{}, ErrInvalidPaymentPreference
	}

	if !validAmount(req.BattaAmount) || !validAmount(req.SalaryAmount) {
		return Split{}, ErrInvalidAmount
	}

	var split Split
	if pref == domain.PaymentPreferenceBoth {
		split = Split{BattaAmount: req.BattaAmount, SalaryAmount: req.SalaryAmount}
	} else {
		if !validAmount(req.TotalAmount) {
			return Split{}, ErrInvalidAmount
		}

		total := req.TotalAmount
		if total == 0 {
			total = req.BattaAmount + req.SalaryAmount
		}

		if pref == domain.PaymentPreferenceBatta {
			split.BattaAmount = total
		} else {
			split.SalaryAmount = total
		}
	}

	// batta+salary of two large finite inputs can overflow to +Inf.
	if !validAmount(split.BattaAmount) || !validAmount(split.SalaryAmount) || !validAmount(split.Total()) {
		return Split{}, ErrInvalidAmount
	}

	return split, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
