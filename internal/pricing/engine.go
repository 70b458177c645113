// Package pricing converts a tour's pricing policy and a traveler's
// selections into a priced quote. The computation is pure: no I/O, no
// randomness, and the response timestamp is injected by the caller, so
// identical inputs always produce identical quotes.
package pricing

import (
	"time"

	"github.com/theibericoexperience-dev/last-sub001/internal/domain"
)

// cashbackPercent is applied to everything except the deposit.
const cashbackPercent = 5

// DefaultPolicy is substituted whenever a tour has no stored policy. A
// missing tour never fails a quote request.
func DefaultPolicy() domain.TourPricingPolicy {
	return domain.TourPricingPolicy{
		BasePricePerTravelerCents: 350_000,
		Deposit: domain.DepositPolicy{
			PerTravelerCents:            100_000,
			ExtraForExtensionCents:      25_000,
			ExtraForSingleTravelerCents: 50_000,
		},
		Extension:        domain.ExtensionPolicy{PerDayPerPersonCents: 15_000},
		Insurance:        domain.InsurancePolicy{TravelCents: 9_500, CancellationCents: 12_500},
		SingleSupplement: domain.SingleSupplementPolicy{PerDayCents: 7_500},
		OverridesAllowed: true,
	}
}

// ComputeQuote prices one request against a policy. A nil policy falls back
// to DefaultPolicy. Malformed inputs (non-positive traveler counts, unknown
// room types) are clamped to their nearest valid value rather than rejected;
// validation belongs to the transport layer.
func ComputeQuote(policy *domain.TourPricingPolicy, req domain.PricingRequest, now time.Time) domain.PricingQuote {
	effective := DefaultPolicy()
	if policy != nil {
		effective = *policy
	}

	applied := applyOverrides(&effective, req.Overrides)

	travelers := req.Travelers
	if travelers < 1 {
		travelers = 1
	}
	single := req.RoomType == domain.RoomTypeSingle

	// Deposit: per-traveler base, plus a flat single-traveler extra, plus a
	// per-traveler extension extra added once no matter how many extensions
	// are requested.
	deposit := domain.DepositBreakdown{
		PerTravelerCents: effective.Deposit.PerTravelerCents * int64(travelers),
	}
	if travelers == 1 && single {
		deposit.SingleTravelerExtraCents = effective.Deposit.ExtraForSingleTravelerCents
	}
	if len(req.Extensions) > 0 {
		deposit.ExtensionExtraCents = effective.Deposit.ExtraForExtensionCents * int64(travelers)
	}
	deposit.TotalCents = deposit.PerTravelerCents + deposit.ExtensionExtraCents + deposit.SingleTravelerExtraCents

	extensions := make([]domain.ExtensionLineItem, 0, len(req.Extensions))
	var extensionsTotal int64
	for _, sel := range req.Extensions {
		days := sel.Days
		if days < 1 {
			days = 1
		}
		amount := effective.Extension.PerDayPerPersonCents * int64(travelers) * int64(days)
		extensions = append(extensions, domain.ExtensionLineItem{
			ExtensionID: sel.ExtensionID,
			Days:        days,
			AmountCents: amount,
		})
		extensionsTotal += amount
	}

	insurance := make([]domain.InsuranceLineItem, 0, 2)
	var insuranceTotal int64
	if req.Insurance.Travel {
		amount := effective.Insurance.TravelCents * int64(travelers)
		insurance = append(insurance, domain.InsuranceLineItem{Kind: "travel", AmountCents: amount})
		insuranceTotal += amount
	}
	if req.Insurance.Cancellation {
		amount := effective.Insurance.CancellationCents * int64(travelers)
		insurance = append(insurance, domain.InsuranceLineItem{Kind: "cancellation", AmountCents: amount})
		insuranceTotal += amount
	}

	// The single supplement is a per-day rate surfaced as-is. Trip length is
	// not part of the request, so multiplying it out is the caller's job.
	var singleSupplement int64
	if single {
		singleSupplement = effective.SingleSupplement.PerDayCents
	}

	basePriceTotal := effective.BasePricePerTravelerCents * int64(travelers)

	total := deposit.TotalCents + extensionsTotal + insuranceTotal + singleSupplement + basePriceTotal
	cashback := roundPercentHalfUp(basePriceTotal+extensionsTotal+insuranceTotal+singleSupplement, cashbackPercent)

	return domain.PricingQuote{
		TourID:                req.TourID,
		Travelers:             travelers,
		RoomType:              req.RoomType,
		Deposit:               deposit,
		Extensions:            extensions,
		ExtensionsTotalCents:  extensionsTotal,
		Insurance:             insurance,
		InsuranceTotalCents:   insuranceTotal,
		SingleSupplementCents: singleSupplement,
		BasePriceTotalCents:   basePriceTotal,
		TotalGuaranteedCents:  total,
		CashbackCents:         cashback,
		AppliedOverrides:      applied,
		Rounding:              domain.RoundingHalfUpCents,
		GeneratedAt:           now,
	}
}

// applyOverrides merges allow-listed request overrides into the effective
// policy and reports which fields were actually replaced. Unknown keys and
// negative values are dropped silently; when the policy forbids overrides
// the whole map is ignored.
func applyOverrides(policy *domain.TourPricingPolicy, overrides map[domain.OverrideField]int64) []domain.OverrideField {
	applied := make([]domain.OverrideField, 0, len(overrides))
	if !policy.OverridesAllowed || len(overrides) == 0 {
		return applied
	}
	for _, field := range domain.OverrideFields() {
		value, ok := overrides[field]
		if !ok || value < 0 {
			continue
		}
		switch field {
		case domain.OverrideDepositPerTraveler:
			policy.Deposit.PerTravelerCents = value
		case domain.OverrideExtensionPerDayPerPerson:
			policy.Extension.PerDayPerPersonCents = value
		case domain.OverrideSingleSupplementPerDay:
			policy.SingleSupplement.PerDayCents = value
		case domain.OverrideTravelInsurance:
			policy.Insurance.TravelCents = value
		case domain.OverrideCancellationInsurance:
			policy.Insurance.CancellationCents = value
		}
		applied = append(applied, field)
	}
	return applied
}

// roundPercentHalfUp returns pct percent of amount, rounded half up to the
// nearest cent. All amounts are non-negative by policy invariant.
func roundPercentHalfUp(amountCents, pct int64) int64 {
	return (amountCents*pct + 50) / 100
}
