package pricing

import "math"

const (
	// PointValue is the monetary value of a single loyalty point.
	PointValue = 0.10

	// MaxPromoShare caps the promo discount at 90% of the subtotal.
	MaxPromoShare = 0.9

	// MaxLoyaltyShare caps the loyalty discount at 20% of the subtotal.
	MaxLoyaltyShare = 0.2
)

// Line is the minimal view of a cart line the engine needs.
type Line struct {
	UnitPrice float64
	Quantity  int
}

// Loyalty describes an optional points redemption.
type Loyalty struct {
	Redeem          bool
	PointsAvailable int
}

// Breakdown is the result of a quote. All amounts are non-negative.
type Breakdown struct {
	Subtotal        float64
	DeliveryFee     float64
	PromoDiscount   float64
	LoyaltyDiscount float64
	Total           float64
}

// PointsConsumed reports how many points the loyalty discount actually
// spends, after the cap has been applied.
func (b Breakdown) PointsConsumed() int {
	if b.LoyaltyDiscount <= 0 {
		return 0
	}
	return int(math.Ceil(b.LoyaltyDiscount / PointValue))
}

// Quote computes the payable total for a set of lines. It is pure:
// same inputs always produce the same breakdown.
func Quote(lines []Line, deliveryFee, promoPercent float64, loyalty Loyalty) Breakdown {
	subtotal := 0.0
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}

	promo := 0.0
	if promoPercent > 0 {
		promo = math.Min(subtotal*promoPercent/100, subtotal*MaxPromoShare)
	}

	loyaltyDiscount := 0.0
	if loyalty.Redeem && loyalty.PointsAvailable > 0 {
		loyaltyDiscount = math.Min(
			float64(loyalty.PointsAvailable)*PointValue,
			subtotal*MaxLoyaltyShare,
		)
	}

	total := subtotal + deliveryFee - promo - loyaltyDiscount
	if total < 0 {
		total = 0
	}

	return Breakdown{
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		PromoDiscount:   promo,
		LoyaltyDiscount: loyaltyDiscount,
		Total:           total,
	}
}
