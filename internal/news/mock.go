package news

import "time"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?q=80&w=1000&auto=format&fit=crop"
}

// MockNews is served by /api/news-api when NewsAPI cannot be used. Every
// item is stamped with now.
func MockNews(now time.Time) []NewsItem {
	published := now.UTC().Format("2006-01-02T15:04:05.000Z")
	return []NewsItem{
		{
			ID:          "news-1",
			Title:       "Federal Reserve Signals Interest Rate Cut",
			Description: "The Federal Reserve has signaled a potential interest rate cut in the next meeting, impacting forex markets worldwide.",
			Source:      "Financial Times",
			PublishTime: published,
			URL:         "https://example.com/news/federal-reserve",
			ImageURL:    unsplash("photo-1611324586758-17c1192ef510"),
		},
		{
			ID:          "news-2",
			Title:       "EUR/USD Reaches 3-Month High",
			Description: "The EUR/USD pair has reached a 3-month high following strong economic data from the Eurozone.",
			Source:      "Bloomberg",
			PublishTime: published,
			URL:         "https://example.com/news/eurusd",
			ImageURL:    unsplash("photo-1627163439134-7a8c47e08208"),
		},
		{
			ID:          "news-3",
			Title:       "Oil Prices Surge Amid Middle East Tensions",
			Description: "Crude oil prices have surged amid escalating tensions in the Middle East, affecting currency pairs linked to oil-exporting nations.",
			Source:      "Reuters",
			PublishTime: published,
			URL:         "https://example.com/news/oil-prices",
			ImageURL:    unsplash("photo-1605231081543-2c22858eeaf3"),
		},
	}
}

const tradingViewNewsURL = "https://www.tradingview.com/news/reuters.com,2023:"

// TradingViewNews returns the fixed TradingView headline set.
func TradingViewNews() []NewsItem {
	return []NewsItem{
		tradingView("1", "Federal Reserve Signals Interest Rate Cut",
			"The Federal Reserve has signaled a potential interest rate cut in the next meeting, impacting forex markets worldwide.",
			"2023-10-15T14:30:00Z", "newsml_L1N3GZ0G7:0-federal-reserve-signals-interest-rate-cut/", "photo-1611324586758-17c1192ef510"),
		tradingView("2", "EUR/USD Reaches 3-Month High",
			"The EUR/USD pair has reached a 3-month high following strong economic data from the Eurozone.",
			"2023-10-14T09:45:00Z", "newsml_L1N3GY1A2:0-eur-usd-reaches-3-month-high/", "photo-1627163439134-7a8c47e08208"),
		tradingView("3", "Oil Prices Surge Amid Middle East Tensions",
			"Crude oil prices have surged amid escalating tensions in the Middle East, affecting currency pairs linked to oil-exporting nations.",
			"2023-10-13T16:20:00Z", "newsml_L1N3GX2C3:0-oil-prices-surge-amid-middle-east-tensions/", "photo-1605231081543-2c22858eeaf3"),
		tradingView("4", "Japanese Yen Weakens After Bank of Japan Decision",
			"The Japanese Yen has weakened following the Bank of Japan's decision to maintain its ultra-loose monetary policy.",
			"2023-10-12T02:15:00Z", "newsml_L1N3GW3D4:0-japanese-yen-weakens-after-bank-of-japan-decision/", "photo-1524673450801-b5aa9b621b76"),
		tradingView("5", "Gold Hits New All-Time High",
			"Gold prices have reached a new all-time high as investors seek safe-haven assets amid global economic uncertainty.",
			"2023-10-11T11:10:00Z", "newsml_L1N3GV4E5:0-gold-hits-new-all-time-high/", "photo-1610375461249-41db941ad886"),
		tradingView("6", "U.S. Dollar Index Shows Weakness Following Jobs Report",
			"The U.S. Dollar Index (DXY) has shown weakness following the release of the latest jobs report, which came in below economists' expectations.",
			"2023-10-10T13:45:00Z", "newsml_L1N3GU5F6:0-us-dollar-index-shows-weakness-following-jobs-report/", "photo-1580048915913-4f8f5cb481c4"),
		tradingView("7", "Bitcoin Surpasses $69,000, Setting New All-Time High",
			"Bitcoin has surpassed $69,000, setting a new all-time high as institutional adoption continues to increase.",
			"2023-10-09T08:30:00Z", "newsml_L1N3GT6G7:0-bitcoin-surpasses-69000-setting-new-all-time-high/", "photo-1518546305927-5a555bb7020d"),
		tradingView("8", "EU Inflation Data Impacts EUR Pairs",
			"The latest Eurozone inflation data has had a significant impact on EUR currency pairs, with the Euro strengthening against most major currencies.",
			"2023-10-08T10:15:00Z", "newsml_L1N3GS7H8:0-eu-inflation-data-impacts-eur-pairs/", "photo-1634128221889-82ed6efebfc3"),
		tradingView("9", "Bank of England Holds Interest Rates, GBP Reacts",
			"The Bank of England has decided to hold interest rates steady, causing a mixed reaction in GBP currency pairs.",
			"2023-10-07T15:00:00Z", "newsml_L1N3GR8I9:0-bank-of-england-holds-interest-rates-gbp-reacts/", "photo-1576224126089-1e2980425e2d"),
	}
}

func tradingView(id, title, description, published, slug, photo string) NewsItem {
	return NewsItem{
		ID:          id,
		Title:       title,
		Description: description,
		Source:      "TradingView",
		PublishTime: published,
		URL:         tradingViewNewsURL + slug,
		ImageURL:    unsplash(photo),
	}
}
