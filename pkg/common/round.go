package common

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places, half away from zero
func Round2(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// Round2Ptr rounds a nullable value, keeping nil as nil
func Round2Ptr(value *float64) *float64 {
	if value == nil {
		return nil
	}
	rounded := Round2(*value)
	return &rounded
}

// Percentage returns numerator/denominator*100 rounded to two decimals, or 0 when the denominator is zero
func Percentage(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return Round2(numerator / denominator * 100)
}
