package domain

import "time"

type RoomType string

const (
	RoomTypeDouble RoomType = "double"
	RoomTypeSingle RoomType = "single"
)

// OverrideField names one policy value a caller may replace for a single
// quote computation. Anything outside this set is dropped, never rejected.
type OverrideField string

const (
	OverrideDepositPerTraveler       OverrideField = "deposit_per_traveler"
	OverrideExtensionPerDayPerPerson OverrideField = "extension_per_day_per_person"
	OverrideSingleSupplementPerDay   OverrideField = "single_supplement_per_day"
	OverrideTravelInsurance          OverrideField = "travel_insurance"
	OverrideCancellationInsurance    OverrideField = "cancellation_insurance"
)

// OverrideFields lists the allow-list in a fixed order so that override
// application is deterministic.
func OverrideFields() []OverrideField {
	return []OverrideField{
		OverrideDepositPerTraveler,
		OverrideExtensionPerDayPerPerson,
		OverrideSingleSupplementPerDay,
		OverrideTravelInsurance,
		OverrideCancellationInsurance,
	}
}

func (f OverrideField) Known() bool {
	switch f {
	case OverrideDepositPerTraveler, OverrideExtensionPerDayPerPerson,
		OverrideSingleSupplementPerDay, OverrideTravelInsurance, OverrideCancellationInsurance:
		return true
	}
	return false
}

type DepositPolicy struct {
	PerTravelerCents            int64 `json:"per_traveler_cents"`
	ExtraForExtensionCents      int64 `json:"extra_for_extension_cents"`
	ExtraForSingleTravelerCents int64 `json:"extra_for_single_traveler_cents"`
}

type ExtensionPolicy struct {
	PerDayPerPersonCents int64 `json:"per_day_per_person_cents"`
}

type InsurancePolicy struct {
	TravelCents       int64 `json:"travel_cents"`
	CancellationCents int64 `json:"cancellation_cents"`
}

type SingleSupplementPolicy struct {
	PerDayCents int64 `json:"per_day_cents"`
}

// TourPricingPolicy holds the per-tour pricing rules. All monetary fields are
// non-negative integer cents. OverridesAllowed=false means request-supplied
// overrides are ignored, not rejected.
type TourPricingPolicy struct {
	BasePricePerTravelerCents int64                  `json:"base_price_per_traveler_cents"`
	Deposit                   DepositPolicy          `json:"deposit"`
	Extension                 ExtensionPolicy        `json:"extension"`
	Insurance                 InsurancePolicy        `json:"insurance"`
	SingleSupplement          SingleSupplementPolicy `json:"single_supplement"`
	OverridesAllowed          bool                   `json:"overrides_allowed"`
}

type ExtensionSelection struct {
	ExtensionID string
	Days        int
}

type InsuranceSelection struct {
	Travel       bool
	Cancellation bool
}

type PricingRequest struct {
	TourID     string
	Travelers  int
	RoomType   RoomType
	Extensions []ExtensionSelection
	Insurance  InsuranceSelection
	Overrides  map[OverrideField]int64
}

// RoundingHalfUpCents identifies the rounding policy every quote is produced
// under: each line item is rounded to the nearest cent, half up, before
// summation.
const RoundingHalfUpCents = "half_up_cents"

type DepositBreakdown struct {
	PerTravelerCents         int64 `json:"per_traveler_cents"`
	ExtensionExtraCents      int64 `json:"extension_extra_cents"`
	SingleTravelerExtraCents int64 `json:"single_traveler_extra_cents"`
	TotalCents               int64 `json:"total_cents"`
}

type ExtensionLineItem struct {
	ExtensionID string `json:"extension_id"`
	Days        int    `json:"days"`
	AmountCents int64  `json:"amount_cents"`
}

type InsuranceLineItem struct {
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
}

// PricingQuote is the immutable output of one quote computation. It is never
// persisted by this subsystem; callers decide whether to store it.
type PricingQuote struct {
	TourID                string              `json:"tour_id"`
	Travelers             int                 `json:"travelers"`
	RoomType              RoomType            `json:"room_type"`
	Deposit               DepositBreakdown    `json:"deposit"`
	Extensions            []ExtensionLineItem `json:"extensions"`
	ExtensionsTotalCents  int64               `json:"extensions_total_cents"`
	Insurance             []InsuranceLineItem `json:"insurance"`
	InsuranceTotalCents   int64               `json:"insurance_total_cents"`
	SingleSupplementCents int64               `json:"single_supplement_cents"`
	BasePriceTotalCents   int64               `json:"base_price_total_cents"`
	TotalGuaranteedCents  int64               `json:"total_guaranteed_cents"`
	CashbackCents         int64               `json:"cashback_cents"`
	AppliedOverrides      []OverrideField     `json:"applied_overrides"`
	Rounding              string              `json:"rounding"`
	GeneratedAt           time.Time           `json:"generated_at"`
}
