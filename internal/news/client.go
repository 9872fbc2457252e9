// Package news fetches financial headlines from NewsAPI and provides the
// static and fallback news sets shown on the site.
package news

import (
	"net/http"
	"strings"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
)

// Doer is the part of *http.Client the news client uses.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient Doer
	apiKey     string
	baseURL    string
	query      string
	pageSize   int
	logger     *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return NewClientWithDoer(cfg, &http.Client{Timeout: cfg.NewsTimeout()}, log)
}

func NewClientWithDoer(cfg *config.Config, doer Doer, log *logger.Logger) *Client {
	return &Client{
		httpClient: doer,
		apiKey:     strings.TrimSpace(cfg.News.APIKey),
		baseURL:    strings.TrimRight(cfg.News.BaseURL, "/"),
		query:      cfg.News.Query,
		pageSize:   cfg.News.PageSize,
		logger:     log,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}
