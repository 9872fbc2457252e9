package signals

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortPair   SortKey = "pair"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// Query carries the listing parameters shared by the store adapter and the
// in-memory filter.
type Query struct {
	Search string
	Type   string
	Sort   SortKey
	Page   int
	Limit  int
}

// Normalize clamps the query into a valid page request: page >= 1,
// 1 <= limit <= maxLimit, known type and sort values.
func (q Query) Normalize(defaultLimit, maxLimit int) Query {
	q.Search = strings.TrimSpace(q.Search)

	switch t := strings.ToLower(strings.TrimSpace(q.Type)); t {
	case string(Buy), string(Sell):
		q.Type = t
	default:
		q.Type = TypeAll
	}

	switch SortKey(strings.ToLower(string(q.Sort))) {
	case SortOldest:
		q.Sort = SortOldest
	case SortPair:
		q.Sort = SortPair
	default:
		q.Sort = SortNewest
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	// Keeps Skip()+Limit within int range.
	if q.Limit > 0 && q.Page > math.MaxInt/q.Limit {
		q.Page = math.MaxInt / q.Limit
	}
	return q
}

func (q Query) Skip() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// TypeFilter returns the record type the query is restricted to.
func (q Query) TypeFilter() (Type, bool) {
	switch q.Type {
	case string(Buy):
		return Buy, true
	case string(Sell):
		return Sell, true
	}
	return "", false
}

// Matches reports whether a record passes the search and type filters.
func (q Query) Matches(r SignalRecord) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(r.Pair), strings.ToLower(q.Search)) {
		return false
	}
	if t, ok := q.TypeFilter(); ok && r.Type != t {
		return false
	}
	return true
}

// Apply filters, sorts and pages records. It returns the requested page and
// the number of records that matched before paging. The input is not modified.
func Apply(records []SignalRecord, q Query) ([]SignalRecord, int) {
	matched := make([]SignalRecord, 0, len(records))
	for _, r := range records {
		if q.Matches(r) {
			matched = append(matched, r)
		}
	}

	Sort(matched, q.Sort)

	total := len(matched)
	start := q.Skip()
	if start < 0 || start >= total {
		return []SignalRecord{}, total
	}
	end := total
	if q.Limit > 0 && q.Limit < total-start {
		end = start + q.Limit
	}
	return matched[start:end], total
}

// Sort orders records in place. Newest and oldest compare parsed times and
// fall back to numeric ids; pair is a plain lexicographic order.
func Sort(records []SignalRecord, key SortKey) {
	switch key {
	case SortPair:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Pair < records[j].Pair
		})
	case SortOldest:
		sort.SliceStable(records, func(i, j int) bool {
			return chronological(records[i], records[j])
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return chronological(records[j], records[i])
		})
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006, 03:04 PM",
	"01/02/2006 15:04",
	"2006-01-02",
}

// ParseTime reads the timestamp formats seen in signal documents.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// chronological reports whether a precedes b.
func chronological(a, b SignalRecord) bool {
	ta, okA := ParseTime(a.Time)
	tb, okB := ParseTime(b.Time)
	if okA && okB && !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return ordinalLess(a.ID, b.ID)
}

func ordinalLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a < b
}
