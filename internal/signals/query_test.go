package signals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Query
		want Query
	}{
		{
			name: "zero value gets defaults",
			in:   Query{},
			want: Query{Type: TypeAll, Sort: SortNewest, Page: 1, Limit: 20},
		},
		{
			name: "limit capped",
			in:   Query{Limit: 5000, Page: 3, Sort: "PAIR", Type: "Sell"},
			want: Query{Type: "sell", Sort: SortPair, Page: 3, Limit: 200},
		},
		{
			name: "unknown values fall back",
			in:   Query{Search: "  eur ", Type: "hold", Sort: "random", Page: -2, Limit: -1},
			want: Query{Search: "eur", Type: TypeAll, Sort: SortNewest, Page: 1, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(20, 200))
		})
	}
}

func TestQuery_Skip(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Limit: 20}.Skip())
	assert.Equal(t, 40, Query{Page: 3, Limit: 20}.Skip())
	assert.Equal(t, 0, Query{}.Skip())
	assert.Equal(t, math.MaxInt, Query{Page: math.MaxInt, Limit: 3}.Skip())
}

func TestApply_TypeFilter(t *testing.T) {
	q := Query{Type: "buy"}.Normalize(50, 200)

	page, total := Apply(MockData(), q)

	require.NotEmpty(t, page)
	assert.Equal(t, 7, total)
	for _, r := range page {
		assert.Equal(t, Buy, r.Type)
	}
}

func TestApply_SortPairIsNonDecreasing(t *testing.T) {
	q := Query{Sort: SortPair}.Normalize(50, 200)

	page, total := Apply(MockData(), q)

	require.Len(t, page, 12)
	assert.Equal(t, 12, total)
	for i := 1; i < len(page); i++ {
		assert.LessOrEqual(t, page[i-1].Pair, page[i].Pair)
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	q := Query{Search: "jpy"}.Normalize(50, 200)

	page, total := Apply(MockData(), q)

	assert.Equal(t, 4, total)
	for _, r := range page {
		assert.Contains(t, r.Pair, "JPY")
	}
}

func TestApply_Pagination(t *testing.T) {
	// Five USD-quoted sells and buys, ids 1..5; newest first means 5,4,3,2,1.
	records := []SignalRecord{
		{ID: "1", Pair: "EUR/USD", Type: Buy},
		{ID: "2", Pair: "GBP/USD", Type: Sell},
		{ID: "3", Pair: "AUD/USD", Type: Buy},
		{ID: "4", Pair: "NZD/USD", Type: Sell},
		{ID: "5", Pair: "XAU/USD", Type: Buy},
		{ID: "6", Pair: "USD/JPY", Type: Buy},
		{ID: "7", Pair: "EUR/GBP", Type: Sell},
	}
	q := Query{Search: "/usd", Page: 2, Limit: 2}.Normalize(20, 200)

	full, total := Apply(records, Query{Search: "/usd"}.Normalize(20, 200))
	require.Equal(t, 5, total)

	page, total := Apply(records, q)

	assert.Equal(t, 5, total)
	assert.Equal(t, full[2:4], page)
	assert.Equal(t, []string{"3", "2"}, ids(page))
}

func TestApply_PageBeyondEnd(t *testing.T) {
	page, total := Apply(MockDaily(), Query{Page: 9, Limit: 2}.Normalize(2, 2))

	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 3, total)
}

func TestApply_HugePageDoesNotWrap(t *testing.T) {
	q := Query{Page: 92233720368547759, Limit: 200}.Normalize(20, 200)

	assert.Equal(t, math.MaxInt/200, q.Page)
	assert.GreaterOrEqual(t, q.Skip(), 0)

	page, total := Apply(MockData(), q)
	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 12, total)

	page, total = Apply(MockData(), Query{Page: math.MaxInt, Limit: 7})
	assert.Empty(t, page)
	assert.Equal(t, 12, total)
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	records := MockData()
	Apply(records, Query{Sort: SortPair}.Normalize(50, 200))

	assert.Equal(t, MockData(), records)
}

func TestSort_ByParsedTime(t *testing.T) {
	records := []SignalRecord{
		{ID: "a", Time: "08/29/2025, 07:49 PM"},
		{ID: "b", Time: "08/30/2025, 09:15 AM"},
		{ID: "c", Time: "2025-08-28T10:00:00Z"},
	}

	Sort(records, SortNewest)
	assert.Equal(t, []string{"b", "a", "c"}, ids(records))

	Sort(records, SortOldest)
	assert.Equal(t, []string{"c", "a", "b"}, ids(records))
}

func TestSort_UnparsedTimesUseOrdinalIDs(t *testing.T) {
	records := MockData()

	Sort(records, SortNewest)
	assert.Equal(t, "12", records[0].ID)
	assert.Equal(t, "1", records[len(records)-1].ID)

	Sort(records, SortOldest)
	assert.Equal(t, "1", records[0].ID)
}

func TestMockProvider_SharesApply(t *testing.T) {
	q := Query{Search: "usd", Type: "sell", Sort: SortPair, Page: 1, Limit: 3}.Normalize(20, 200)

	got, gotTotal := NewMockProvider(MockData).Page(q)
	want, wantTotal := Apply(MockData(), q)

	assert.Equal(t, want, got)
	assert.Equal(t, wantTotal, gotTotal)
}

func TestMockSets_SatisfyInvariants(t *testing.T) {
	for _, set := range [][]SignalRecord{MockData(), MockDaily(), MockMonthly()} {
		require.NotEmpty(t, set)
		seen := map[string]bool{}
		for _, r := range set {
			assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
			seen[r.ID] = true
			assert.Contains(t, []Type{Buy, Sell}, r.Type)
			assert.Contains(t, []Status{Successful, Unsuccessful, Active}, r.Status)
			assert.False(t, r.StatusConflict(), "record %s", r.ID)
		}
	}
}

func ids(records []SignalRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}
