package finance

import "bizplan-backend/utils"

// Simulators are pure arithmetic over user-entered figures; they touch no
// persisted state.

// FiscalInput describes a yearly revenue figure and the applicable rates,
// all expressed as fractions (0.22 = 22%).
type FiscalInput struct {
	AnnualRevenue      float64 `json:"annualRevenue" validate:"gte=0"`
	SocialRate         float64 `json:"socialRate" validate:"gte=0,lte=1"`
	IncomeTaxRate      float64 `json:"incomeTaxRate" validate:"gte=0,lte=1"`
	FlatDeductionRate  float64 `json:"flatDeductionRate" validate:"gte=0,lte=1"`
	OtherAnnualCharges float64 `json:"otherAnnualCharges" validate:"gte=0"`
}

type FiscalResult struct {
	SocialContributions float64 `json:"socialContributions"`
	TaxableIncome       float64 `json:"taxableIncome"`
	IncomeTax           float64 `json:"incomeTax"`
	NetAnnualIncome     float64 `json:"netAnnualIncome"`
	NetMonthlyIncome    float64 `json:"netMonthlyIncome"`
	EffectiveRate       float64 `json:"effectiveRate"` // percent of revenue
}

// SimulateFiscal estimates take-home income: social contributions apply to
// the full revenue, income tax to the revenue after the flat deduction.
func SimulateFiscal(in FiscalInput) FiscalResult {
	var r FiscalResult
	r.SocialContributions = utils.Round2(in.AnnualRevenue * in.SocialRate)
	r.TaxableIncome = utils.Round2(in.AnnualRevenue * (1 - in.FlatDeductionRate))
	r.IncomeTax = utils.Round2(r.TaxableIncome * in.IncomeTaxRate)
	r.NetAnnualIncome = utils.Round2(in.AnnualRevenue - r.SocialContributions - r.IncomeTax - in.OtherAnnualCharges)
	r.NetMonthlyIncome = utils.Round2(r.NetAnnualIncome / 12)
	if in.AnnualRevenue > 0 {
		r.EffectiveRate = utils.Round2((in.AnnualRevenue - r.NetAnnualIncome) / in.AnnualRevenue * 100)
	}
	return r
}

// PricingInput blends three revenue models on a monthly basis.
type PricingInput struct {
	HourlyRate        float64 `json:"hourlyRate" validate:"gte=0"`
	BillableHours     float64 `json:"billableHours" validate:"gte=0"` // per month
	PackagePrice      float64 `json:"packagePrice" validate:"gte=0"`
	PackagesPerMonth  float64 `json:"packagesPerMonth" validate:"gte=0"`
	SubscriptionPrice float64 `json:"subscriptionPrice" validate:"gte=0"`
	Subscribers       float64 `json:"subscribers" validate:"gte=0"`
}

type PricingResult struct {
	HourlyRevenue       float64 `json:"hourlyRevenue"`
	PackageRevenue      float64 `json:"packageRevenue"`
	SubscriptionRevenue float64 `json:"subscriptionRevenue"`
	MonthlyTotal        float64 `json:"monthlyTotal"`
	AnnualTotal         float64 `json:"annualTotal"`
	HourlyShare         float64 `json:"hourlyShare"`  // percent of monthly total
	PackageShare        float64 `json:"packageShare"` // percent
	SubscriptionShare   float64 `json:"subscriptionShare"`
}

// SimulatePricing computes the blended monthly and annual revenue and each
// model's share of the mix.
func SimulatePricing(in PricingInput) PricingResult {
	var r PricingResult
	r.HourlyRevenue = utils.Round2(in.HourlyRate * in.BillableHours)
	r.PackageRevenue = utils.Round2(in.PackagePrice * in.PackagesPerMonth)
	r.SubscriptionRevenue = utils.Round2(in.SubscriptionPrice * in.Subscribers)
	r.MonthlyTotal = utils.Round2(r.HourlyRevenue + r.PackageRevenue + r.SubscriptionRevenue)
	r.AnnualTotal = utils.Round2(r.MonthlyTotal * 12)
	if r.MonthlyTotal > 0 {
		r.HourlyShare = utils.Round2(r.HourlyRevenue / r.MonthlyTotal * 100)
		r.PackageShare = utils.Round2(r.PackageRevenue / r.MonthlyTotal * 100)
		r.SubscriptionShare = utils.Round2(r.SubscriptionRevenue / r.MonthlyTotal * 100)
	}
	return r
}
