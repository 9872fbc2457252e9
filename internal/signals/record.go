// Package signals turns loosely shaped signal documents into display records
// and filters, sorts and pages them for the site's signal listings.
package signals

import (
	"github.com/shopspring/decimal"
)

type Type string

const (
	Buy  Type = "buy"
	Sell Type = "sell"
)

type Status string

const (
	Successful   Status = "Successful"
	Unsuccessful Status = "Unsuccessful"
	Active       Status = "Active"
)

type Premium string

const (
	Free        Premium = "free"
	PremiumTier Premium = "premium"
)

// SignalRecord is the display shape of one trading signal. It is built per
// request and never written back.
type SignalRecord struct {
	ID         string    `json:"id"`
	Pair       string    `json:"pair"`
	Type       Type      `json:"type"`
	EntryPrice float64   `json:"entryPrice"`
	StopLoss   float64   `json:"stopLoss"`
	Target     float64   `json:"target"`
	Targets    []float64 `json:"targets,omitempty"`
	Time       string    `json:"time"`
	Status     Status    `json:"status"`
	Volume     float64   `json:"volume"`
	Profit     float64   `json:"profit"`
	Premium    Premium   `json:"premium"`
}

// StatusConflict reports an explicit status that disagrees with the sign of
// the profit, e.g. "Successful" with a loss.
func (r SignalRecord) StatusConflict() bool {
	switch r.Status {
	case Successful:
		return r.Profit < 0
	case Unsuccessful:
		return r.Profit > 0
	}
	return false
}

// TotalProfit sums profits in decimal, rounded to cents.
func TotalProfit(records []SignalRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Profit))
	}
	return total.Round(2).InexactFloat64()
}
