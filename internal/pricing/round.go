package pricing

import "math"

// Round1 rounds to 1 decimal place. Percentages are reported at this
// precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to 2 decimal places. Currency values are reported at this
// precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places, used for per-piece price.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// PctVsRRP is the percent deviation of a price from the recommended price,
// rounded to 1 decimal. Nil when either side is unknown or the recommended
// price is zero.
func PctVsRRP(price, rrp *float64) *float64 {
	if price == nil || rrp == nil || *rrp == 0 {
		return nil
	}
	pct := Round1((*price - *rrp) / *rrp * 100)
	return &pct
}
