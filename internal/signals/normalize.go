package signals

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Document is one raw store document with unknown, partial shape.
type Document map[string]any

const (
	// ContractSize is the standard forex lot used when profit is computed
	// from entry and exit prices.
	ContractSize = 100000.0

	stopLossOffset = 0.002
)

// Profile holds the fallback constants and derivations of one listing.
type Profile struct {
	DefaultVolume float64
	// DeriveStopLoss fills a missing stop-loss at a fixed offset from entry.
	DeriveStopLoss bool
	// SynthesizeProfit computes profit from entry/exit when the document has none.
	SynthesizeProfit bool
	// UnsetStatus applies when the document has no usable status and the
	// profit is zero. Empty means the profit sign decides.
	UnsetStatus Status
}

var (
	// DataProfile backs /api/signals/data.
	DataProfile = Profile{DefaultVolume: 0.01, DeriveStopLoss: true, SynthesizeProfit: true, UnsetStatus: Active}
	// DailyProfile backs /api/signals/daily.
	DailyProfile = Profile{DefaultVolume: 0.1, UnsetStatus: Active}
	// MonthlyProfile backs /api/signals/monthly.
	MonthlyProfile = Profile{DefaultVolume: 0.1}
)

// Normalize maps one document to a SignalRecord. Every field gets a value;
// ordinal is used as the id when the document has none.
func Normalize(doc Document, p Profile, ordinal int) SignalRecord {
	return normalize(doc, p, ordinal, time.Now)
}

func normalize(doc Document, p Profile, ordinal int, now func() time.Time) SignalRecord {
	rec := SignalRecord{
		ID:   documentID(doc, ordinal),
		Pair: strings.TrimSpace(stringOf(first(doc, "symbol", "pair"))),
		Type: NormalizeType(first(doc, "type", "side", "action")),
	}

	rec.EntryPrice = ParseNumber(first(doc, "entry", "entryPrice", "price"), 0)
	rec.Volume = ParseNumber(first(doc, "lot", "volume"), p.DefaultVolume)
	rec.Targets = parseTargets(first(doc, "exit", "target", "tp", "takeProfit"))
	if len(rec.Targets) > 0 {
		rec.Target = rec.Targets[0]
	}

	rec.StopLoss = ParseNumber(first(doc, "stopLoss", "sl"), 0)
	if rec.StopLoss == 0 && p.DeriveStopLoss {
		rec.StopLoss = DeriveStopLoss(rec.Type, rec.EntryPrice)
	}

	rec.Profit = ParseNumber(first(doc, "profit"), 0)
	if rec.Profit == 0 && p.SynthesizeProfit && rec.EntryPrice > 0 && rec.Target > 0 {
		rec.Profit = roundCents(SynthesizeProfit(rec.Type, rec.EntryPrice, rec.Target, rec.Volume))
	}

	rec.Status = resolveStatus(doc, p, rec.Profit)
	rec.Time = timeOf(doc, now)
	rec.Premium = premiumOf(first(doc, "premium", "isPremium"))

	return rec
}

// ParseNumber returns v when it is a finite number, the numeric value of v
// when it is a string once every character other than digits, sign and
// decimal point is removed, and fallback otherwise.
func ParseNumber(v any, fallback float64) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '+' || r == '-' {
				return r
			}
			return -1
		}, n)
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			parsed, err = parseLeadingFloat(cleaned)
			if err != nil {
				return fallback
			}
		}
		f = parsed
	default:
		return fallback
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fallback
	}
	return f
}

// parseLeadingFloat parses the longest numeric prefix, so "1.08-1.09"
// reads as 1.08.
func parseLeadingFloat(s string) (float64, error) {
	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '+' || r == '-') && i == 0:
		default:
			break scan
		}
		end = i + 1
	}
	if !seenDigit {
		return 0, fmt.Errorf("no digits in %q", s)
	}
	return strconv.ParseFloat(s[:end], 64)
}

func NormalizeType(raw any) Type {
	s := strings.ToLower(stringOf(raw))
	switch {
	case strings.Contains(s, "buy"):
		return Buy
	case strings.Contains(s, "sell"):
		return Sell
	default:
		return Buy
	}
}

// NormalizeStatus maps a raw status string. "unsucc" is checked before
// "succ" since the first contains the second.
func NormalizeStatus(raw any, profit float64) Status {
	if st, ok := matchStatus(stringOf(raw)); ok {
		return st
	}
	return statusFromProfit(profit)
}

func matchStatus(raw string) (Status, bool) {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "unsucc"), strings.Contains(s, "fail"), strings.Contains(s, "loss"):
		return Unsuccessful, true
	case strings.Contains(s, "succ"), strings.Contains(s, "win"):
		return Successful, true
	case strings.Contains(s, "activ"), strings.Contains(s, "open"), strings.Contains(s, "pending"):
		return Active, true
	}
	return "", false
}

func statusFromProfit(profit float64) Status {
	if profit < 0 {
		return Unsuccessful
	}
	return Successful
}

func resolveStatus(doc Document, p Profile, profit float64) Status {
	if raw, ok := lookup(doc, "status"); ok {
		if st, ok := matchStatus(stringOf(raw)); ok {
			return st
		}
	}
	if raw, ok := lookup(doc, "success"); ok {
		if b, ok := raw.(bool); ok {
			if b {
				return Successful
			}
			return Unsuccessful
		}
	}
	if p.UnsetStatus != "" && profit == 0 {
		return p.UnsetStatus
	}
	return statusFromProfit(profit)
}

// DeriveStopLoss places the stop 0.2% against the trade direction.
func DeriveStopLoss(t Type, entry float64) float64 {
	if entry <= 0 {
		return 0
	}
	if t == Sell {
		return entry * (1 + stopLossOffset)
	}
	return entry * (1 - stopLossOffset)
}

func SynthesizeProfit(t Type, entry, exit, volume float64) float64 {
	diff := exit - entry
	if t == Sell {
		diff = entry - exit
	}
	return diff * volume * ContractSize
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseTargets(v any) []float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		levels := make([]float64, 0, len(t))
		for _, item := range t {
			if f := ParseNumber(item, 0); f != 0 {
				levels = append(levels, f)
			}
		}
		return levels
	case []float64:
		return append([]float64(nil), t...)
	default:
		if f := ParseNumber(t, 0); f != 0 {
			return []float64{f}
		}
		return nil
	}
}

func documentID(doc Document, ordinal int) string {
	if id := stringOf(first(doc, "_id", "id")); id != "" {
		return id
	}
	return strconv.Itoa(ordinal)
}

func timeOf(doc Document, now func() time.Time) string {
	for _, key := range []string{"time", "date", "timestamp", "createdAt"} {
		v, ok := lookup(doc, key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case time.Time:
			return t.UTC().Format(time.RFC3339)
		case string:
			if t != "" {
				return t
			}
		default:
			if s := stringOf(t); s != "" {
				return s
			}
		}
	}
	return now().UTC().Format(time.RFC3339)
}

func premiumOf(v any) Premium {
	switch t := v.(type) {
	case bool:
		if t {
			return PremiumTier
		}
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "true" || s == "premium" || s == "yes" || s == "1" {
			return PremiumTier
		}
	case float64, int, int32, int64:
		if ParseNumber(t, 0) != 0 {
			return PremiumTier
		}
	}
	return Free
}

// first returns the first present, non-nil value among keys.
func first(doc Document, keys ...string) any {
	for _, k := range keys {
		if v, ok := lookup(doc, k); ok {
			return v
		}
	}
	return nil
}

func lookup(doc Document, key string) (any, bool) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
