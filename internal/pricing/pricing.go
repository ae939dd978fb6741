// Package pricing computes line-item totals.
package pricing

// Total returns quantity * rate reduced by a percentage discount.
// Inputs are expected to be validated by the caller; discount is a
// percent in [0,100] and is not clamped here.
func Total(quantity, rate, discount float64) float64 {
	return quantity * rate * (1 - discount/100)
}
