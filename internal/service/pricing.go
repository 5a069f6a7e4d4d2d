package service

import "github.com/shopspring/decimal"

type orderTotals struct {
	ItemsPrice    float64
	TaxPrice      float64
	ShippingPrice float64
	TotalPrice    float64
}

// calculateTotals rounds every amount to cents. The items price is computed
// from catalog prices; tax and shipping come from checkout.
func calculateTotals(itemsPrice decimal.Decimal, taxPrice, shippingPrice float64) orderTotals {
	items := itemsPrice.Round(2)
	tax := decimal.NewFromFloat(taxPrice).Round(2)
	shipping := decimal.NewFromFloat(shippingPrice).Round(2)

	return orderTotals{
		ItemsPrice:    items.InexactFloat64(),
		TaxPrice:      tax.InexactFloat64(),
		ShippingPrice: shipping.InexactFloat64(),
		TotalPrice:    items.Add(tax).Add(shipping).InexactFloat64(),
	}
}

func lineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func sumTotals(amounts []float64) float64 {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromFloat(amount))
	}
	return total.Round(2).InexactFloat64()
}
