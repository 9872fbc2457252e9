package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoAPIKey is returned when no NewsAPI key is configured.
var ErrNoAPIKey = errors.New("news api key is not configured")

const noDescription = "No description available"

// currencyNames maps currency codes to the words headlines use for them.
var currencyNames = map[string][]string{
	"USD": {"dollar", "Federal Reserve", "DXY"},
	"EUR": {"euro", "Eurozone", "ECB"},
	"GBP": {"pound", "sterling", "Bank of England"},
	"JPY": {"yen", "Bank of Japan", "BOJ"},
	"CHF": {"franc", "SNB"},
	"AUD": {"Australian dollar", "Aussie", "RBA"},
	"NZD": {"New Zealand dollar", "Kiwi", "RBNZ"},
	"CAD": {"Canadian dollar", "loonie", "Bank of Canada"},
	"XAU": {"gold"},
	"XAG": {"silver"},
	"BTC": {"bitcoin"},
}

// FetchFinancialNews returns the latest English headlines matching the
// configured query.
func (c *Client) FetchFinancialNews(ctx context.Context) ([]NewsItem, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("q", c.query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create news request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var api apiResponse
	if err := json.Unmarshal(body, &api); err != nil {
		return nil, fmt.Errorf("parse news response: %w", err)
	}
	if api.Status == "error" {
		return nil, fmt.Errorf("news API error %s: %s", api.Code, api.Message)
	}

	items := make([]NewsItem, 0, len(api.Articles))
	for i, a := range api.Articles {
		item := NewsItem{
			ID:          fmt.Sprintf("news-%d", i),
			Title:       a.Title,
			Description: noDescription,
			Source:      a.Source.Name,
			PublishTime: a.PublishedAt,
			URL:         a.URL,
		}
		if a.Description != nil && *a.Description != "" {
			item.Description = *a.Description
		}
		if a.URLToImage != nil {
			item.ImageURL = *a.URLToImage
		}
		items = append(items, item)
	}

	c.logger.Debug("news fetched", "count", len(items), "total_results", api.TotalResults)
	return items, nil
}

// FilterNewsForPair keeps items whose title or description mentions either
// side of a currency pair, by code or by name. Codes match whole words only.
// An empty pair keeps everything.
func FilterNewsForPair(items []NewsItem, pair string) []NewsItem {
	codes, names := pairTerms(pair)
	if len(codes) == 0 {
		return items
	}

	quoted := make([]string, len(codes))
	for i, code := range codes {
		quoted[i] = regexp.QuoteMeta(code)
	}
	codeRe := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)

	result := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if mentionsPair(strings.ToUpper(item.Title+" "+item.Description), codeRe, names) {
			result = append(result, item)
		}
	}
	return result
}

func mentionsPair(text string, codeRe *regexp.Regexp, names []string) bool {
	if codeRe.MatchString(text) {
		return true
	}
	for _, name := range names {
		if strings.Contains(text, strings.ToUpper(name)) {
			return true
		}
	}
	return false
}

func pairTerms(pair string) (codes, names []string) {
	fields := strings.FieldsFunc(strings.ToUpper(pair), func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == ' '
	})
	if len(fields) == 1 && len(fields[0]) == 6 {
		fields = []string{fields[0][:3], fields[0][3:]}
	}

	for _, code := range fields {
		codes = append(codes, code)
		names = append(names, currencyNames[code]...)
	}
	return codes, names
}
