// Package metrics derives KPIs from the transaction snapshot.
package metrics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/switchpay/switchpay-go/internal/domain"
)

// Summary holds the client-side KPIs. FailCount deliberately counts every
// non-success status, pending included.
type Summary struct {
	TotalAmount        float64 `json:"total_amount"`
	Count              int     `json:"count"`
	SuccessCount       int     `json:"success_count"`
	FailCount          int     `json:"fail_count"`
	SuccessRatePercent int     `json:"success_rate_percent"`
}

// Aggregate recomputes the summary from scratch on every call. Amounts are
// summed with decimal arithmetic; non-numeric values coerce to zero.
func Aggregate(transactions []domain.Transaction) Summary {
	total := decimal.Zero
	successCount := 0

	for _, tx := range transactions {
		total = total.Add(tx.Amount.Decimal())
		if tx.Status == domain.StatusSuccess {
			successCount++
		}
	}

	count := len(transactions)

	rate := 0
	if count > 0 {
		rate = int(math.Round(float64(successCount) / float64(count) * 100))
	}

	totalAmount, _ := total.Float64()

	return Summary{
		TotalAmount:        totalAmount,
		Count:              count,
		SuccessCount:       successCount,
		FailCount:          count - successCount,
		SuccessRatePercent: rate,
	}
}
