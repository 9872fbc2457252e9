package signals

// Mock sets served when the store is unconfigured or unreachable. They are
// rebuilt on every call so callers may modify what they get.

// MockData returns the fallback set of /api/signals/data.
func MockData() []SignalRecord {
	return []SignalRecord{
		closedMock("1", "EUR/USD", Buy, 1.0825, 1.0805, "Today - 10:30", Successful, 1.0845, 1.0865, 1.0885),
		closedMock("2", "GBP/JPY", Sell, 168.45, 168.65, "Today - 08:15", Unsuccessful, 168.25, 168.05),
		premiumMock("3", "XAU/USD", Buy, 2352.0, 2340.0, "Yesterday - 15:45", 2360.0, 2370.0, 2380.0),
		closedMock("4", "USD/JPY", Buy, 154.5, 154.2, "Yesterday - 12:20", Successful, 154.8, 155.1),
		closedMock("5", "EUR/GBP", Sell, 0.855, 0.857, "Yesterday - 09:45", Successful, 0.853, 0.851),
		premiumMock("6", "AUD/USD", Buy, 0.6625, 0.6605, "2 days ago - 14:30", 0.6645, 0.6665),
		closedMock("7", "USD/CAD", Sell, 1.365, 1.367, "2 days ago - 11:15", Unsuccessful, 1.363, 1.361, 1.359),
		closedMock("8", "NZD/USD", Buy, 0.5985, 0.5965, "3 days ago - 16:40", Successful, 0.6005, 0.6025),
		closedMock("9", "GBP/USD", Sell, 1.2485, 1.2505, "3 days ago - 13:20", Successful, 1.2465, 1.2445, 1.2425),
		closedMock("10", "USD/CHF", Buy, 0.9045, 0.9025, "4 days ago - 09:15", Successful, 0.9065, 0.9085),
		closedMock("11", "EUR/JPY", Sell, 164.75, 164.95, "4 days ago - 14:50", Unsuccessful, 164.55, 164.35, 164.15),
		premiumMock("12", "CAD/JPY", Buy, 113.25, 113.05, "5 days ago - 11:30", 113.45, 113.65),
	}
}

// closedMock builds a finished signal whose profit is taken at the first
// target when successful and at the stop otherwise.
func closedMock(id, pair string, t Type, entry, stop float64, when string, st Status, targets ...float64) SignalRecord {
	exit := stop
	if st == Successful {
		exit = targets[0]
	}
	return SignalRecord{
		ID:         id,
		Pair:       pair,
		Type:       t,
		EntryPrice: entry,
		StopLoss:   stop,
		Target:     targets[0],
		Targets:    targets,
		Time:       when,
		Status:     st,
		Volume:     DataProfile.DefaultVolume,
		Profit:     roundCents(SynthesizeProfit(t, entry, exit, DataProfile.DefaultVolume)),
		Premium:    Free,
	}
}

func premiumMock(id, pair string, t Type, entry, stop float64, when string, targets ...float64) SignalRecord {
	return SignalRecord{
		ID:         id,
		Pair:       pair,
		Type:       t,
		EntryPrice: entry,
		StopLoss:   stop,
		Target:     targets[0],
		Targets:    targets,
		Time:       when,
		Status:     Active,
		Volume:     DataProfile.DefaultVolume,
		Premium:    PremiumTier,
	}
}

// MockDaily returns the fallback set of /api/signals/daily.
func MockDaily() []SignalRecord {
	return []SignalRecord{
		{ID: "1", Pair: "EUR/USD", Type: Buy, EntryPrice: 1.1654, StopLoss: 1.1634, Target: 1.1684,
			Time: "08/30/2025, 09:15 AM", Status: Successful, Volume: 0.1, Profit: 28.5, Premium: Free},
		{ID: "2", Pair: "GBP/USD", Type: Sell, EntryPrice: 1.3485, StopLoss: 1.3505, Target: 1.3455,
			Time: "08/30/2025, 11:20 AM", Status: Successful, Volume: 0.08, Profit: 24.2, Premium: PremiumTier},
		{ID: "3", Pair: "USD/JPY", Type: Buy, EntryPrice: 153.2, StopLoss: 152.8, Target: 153.8,
			Time: "08/30/2025, 02:30 PM", Status: Active, Volume: 0.12, Profit: 0, Premium: Free},
	}
}

// MockMonthly returns the fallback set of /api/signals/monthly.
func MockMonthly() []SignalRecord {
	return []SignalRecord{
		{ID: "1", Pair: "EUR/USD", Type: Sell, EntryPrice: 1.1694, StopLoss: 1.1718, Target: 1.1687,
			Time: "08/29/2025, 11:47 PM", Status: Successful, Volume: 0.1, Profit: 7.5, Premium: Free},
		{ID: "2", Pair: "USD/CAD", Type: Buy, EntryPrice: 1.3735, StopLoss: 1.3708, Target: 1.3734,
			Time: "08/29/2025, 07:49 PM", Status: Unsuccessful, Volume: 0.01, Profit: -0.07, Premium: Free},
		{ID: "3", Pair: "USD/CAD", Type: Sell, EntryPrice: 1.3733, StopLoss: 1.3761, Target: 1.3735,
			Time: "08/29/2025, 07:42 PM", Status: Unsuccessful, Volume: 0.02, Profit: -0.2, Premium: Free},
		{ID: "4", Pair: "GBP/USD", Type: Buy, EntryPrice: 1.3514, StopLoss: 1.3487, Target: 1.3503,
			Time: "08/29/2025, 07:36 PM", Status: Unsuccessful, Volume: 0.05, Profit: -5.1, Premium: Free},
		{ID: "5", Pair: "EUR/USD", Type: Sell, EntryPrice: 1.1633, StopLoss: 1.1656, Target: 1.1651,
			Time: "08/29/2025, 03:32 PM", Status: Unsuccessful, Volume: 0.1, Profit: -18.7, Premium: Free},
		{ID: "6", Pair: "EUR/USD", Type: Sell, EntryPrice: 1.1683, StopLoss: 1.1706, Target: 1.1651,
			Time: "08/29/2025, 03:32 PM", Status: Successful, Volume: 0.11, Profit: 34.65, Premium: Free},
		{ID: "7", Pair: "GBP/USD", Type: Sell, EntryPrice: 1.3522, StopLoss: 1.3549, Target: 1.3488,
			Time: "08/29/2025, 10:20 AM", Status: Successful, Volume: 0.11, Profit: 37.73, Premium: Free},
		{ID: "8", Pair: "NZD/CHF", Type: Sell, EntryPrice: 0.4819, StopLoss: 0.4828, Target: 0.4801,
			Time: "08/29/2025, 10:20 AM", Status: Unsuccessful, Volume: 0.1, Profit: -21.9, Premium: Free},
		{ID: "9", Pair: "AUD/USD", Type: Buy, EntryPrice: 0.6625, StopLoss: 0.6605, Target: 0.6645,
			Time: "08/28/2025, 02:15 PM", Status: Successful, Volume: 0.08, Profit: 15.2, Premium: Free},
		{ID: "10", Pair: "USD/JPY", Type: Sell, EntryPrice: 154.5, StopLoss: 154.8, Target: 154.2,
			Time: "08/28/2025, 09:30 AM", Status: Successful, Volume: 0.05, Profit: 12.8, Premium: PremiumTier},
	}
}

// MockProvider serves a fixed record set through the same Apply used for
// every listing, so pages look the same whichever source produced them.
type MockProvider struct {
	records func() []SignalRecord
}

func NewMockProvider(records func() []SignalRecord) *MockProvider {
	return &MockProvider{records: records}
}

func (m *MockProvider) Page(q Query) ([]SignalRecord, int) {
	return Apply(m.records(), q)
}
