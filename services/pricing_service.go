package services

import (
	"fmt"
	"time"

	"travomine/models"

	"github.com/shopspring/decimal"
)

// ServiceSelection is one priced line item going into a quotation. BaseCost
// comes from a rate lookup (rate x nights, rate per day x days, base fare,
// rate per person x travelers) done by the resolver before pricing.
type ServiceSelection struct {
	ServiceType models.ServiceType `json:"service_type"`
	Description string             `json:"description"`
	BaseCost    float64            `json:"base_cost"`
}

// LineItemPrice is a fully priced selection.
type LineItemPrice struct {
	ServiceType models.ServiceType `json:"service_type"`
	Description string             `json:"description"`
	BaseCost    float64            `json:"base_cost"`
	MarkedUp    float64            `json:"marked_up"`
	Taxed       float64            `json:"taxed"`
}

// PricingBreakdown is the result of pricing a set of selections. Total is
// the only rounded figure; intermediates carry full precision so rounding
// error never compounds across line items.
type PricingBreakdown struct {
	Lines          []LineItemPrice `json:"lines"`
	Subtotal       float64         `json:"subtotal"`
	TaxTotal       float64         `json:"tax_total"`
	DiscountAmount float64         `json:"discount_amount"`
	Total          float64         `json:"total"`
}

// RuleSet is the markup/tax snapshot a pricing run uses. Missing entries
// mean 0%, deliberately: administrators need not define every combination
// up front.
type RuleSet struct {
	Markups map[models.ServiceType]float64
	Taxes   map[models.ServiceType]float64
}

// Price turns selections into a fully priced breakdown. Pure and
// deterministic: identical inputs always produce identical output, no I/O.
//
// Per selection: markedUp = base x (1 + markup/100), taxed = markedUp x
// (1 + tax/100). The discount, when present, is validated against asOf
// (inclusive window) before anything else short-circuits, then applied once
// to the pre-tax subtotal. total = round2(subtotal + taxTotal - discount),
// rounded half-up at the end only.
func Price(selections []ServiceSelection, rules RuleSet, discount *models.Discount, asOf time.Time) (*PricingBreakdown, error) {
	if err := validateRules(rules); err != nil {
		return nil, err
	}

	// Discount validity is checked before the empty-selection short circuit
	// so an expired code is reported even when totals would be zero.
	if discount != nil {
		if discount.Percentage < 0 || discount.Percentage > 100 {
			return nil, &InvalidInputError{Field: "discount.percentage", Reason: fmt.Sprintf("%.2f outside [0,100]", discount.Percentage)}
		}
		if asOf.Before(discount.ValidFrom) || asOf.After(discount.ValidTo) {
			return nil, &InvalidDiscountError{
				Code: discount.Code,
				Reason: fmt.Sprintf("not valid on %s (window %s to %s)",
					asOf.Format("2006-01-02"),
					discount.ValidFrom.Format("2006-01-02"),
					discount.ValidTo.Format("2006-01-02")),
			}
		}
	}

	breakdown := &PricingBreakdown{Lines: make([]LineItemPrice, 0, len(selections))}

	var subtotal, taxTotal float64
	for i, sel := range selections {
		if !models.ValidServiceType(sel.ServiceType) {
			return nil, &InvalidInputError{Field: fmt.Sprintf("selections[%d].service_type", i), Reason: fmt.Sprintf("unknown service type %q", sel.ServiceType)}
		}
		if sel.BaseCost < 0 {
			return nil, &InvalidInputError{Field: fmt.Sprintf("selections[%d].base_cost", i), Reason: fmt.Sprintf("negative base cost %.2f", sel.BaseCost)}
		}

		markedUp := sel.BaseCost * (1 + rules.Markups[sel.ServiceType]/100)
		taxed := markedUp * (1 + rules.Taxes[sel.ServiceType]/100)

		subtotal += markedUp
		taxTotal += taxed - markedUp

		breakdown.Lines = append(breakdown.Lines, LineItemPrice{
			ServiceType: sel.ServiceType,
			Description: sel.Description,
			BaseCost:    sel.BaseCost,
			MarkedUp:    markedUp,
			Taxed:       taxed,
		})
	}

	var discountAmount float64
	if discount != nil {
		discountAmount = subtotal * discount.Percentage / 100
	}

	breakdown.Subtotal = subtotal
	breakdown.TaxTotal = taxTotal
	breakdown.DiscountAmount = discountAmount
	breakdown.Total = Round2(subtotal + taxTotal - discountAmount)

	return breakdown, nil
}

func validateRules(rules RuleSet) error {
	for st, pct := range rules.Markups {
		if pct < 0 || pct > 100 {
			return &InvalidInputError{Field: fmt.Sprintf("markup[%s]", st), Reason: fmt.Sprintf("%.2f outside [0,100]", pct)}
		}
	}
	for st, pct := range rules.Taxes {
		if pct < 0 || pct > 100 {
			return &InvalidInputError{Field: fmt.Sprintf("tax[%s]", st), Reason: fmt.Sprintf("%.2f outside [0,100]", pct)}
		}
	}
	return nil
}

// Round2 applies currency rounding: two decimal places, half up.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
