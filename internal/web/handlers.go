package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/camuig/fx-signals/internal/contact"
	"github.com/camuig/fx-signals/internal/news"
	"github.com/camuig/fx-signals/internal/signals"
)

type errorResponse struct {
	Error string `json:"error"`
}

type dataResponse struct {
	Signals         []signals.SignalRecord `json:"signals"`
	Total           int                    `json:"total"`
	Warning         string                 `json:"warning,omitempty"`
	IsUsingMockData bool                   `json:"isUsingMockData,omitempty"`
}

type dailyResponse struct {
	Signals     []signals.SignalRecord `json:"signals"`
	TotalProfit float64                `json:"totalProfit"`
}

type monthlyResponse struct {
	Signals     []signals.SignalRecord `json:"signals"`
	TotalProfit float64                `json:"totalProfit"`
	Total       int                    `json:"total"`
}

type newsResponse struct {
	News []news.NewsItem `json:"news"`
}

type messageResponse struct {
	Message   string `json:"message"`
	Reference string `json:"reference,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// Signals

func (s *Server) handleSignalsData(c *gin.Context) {
	q := signals.Query{
		Search: c.Query("search"),
		Type:   c.DefaultQuery("type", signals.TypeAll),
		Sort:   signals.SortKey(c.DefaultQuery("sort", string(signals.SortNewest))),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	page, err := s.deps.Feed.Data(c.Request.Context(), q)
	if err != nil {
		s.signalsFailed(c, "Failed to fetch signals data", err)
		return
	}

	resp := dataResponse{Signals: page.Signals, Total: page.Total}
	if page.Source == signals.SourceMock {
		resp.Warning = page.Warning
		resp.IsUsingMockData = true
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSignalsDaily(c *gin.Context) {
	page, err := s.deps.Feed.Daily(c.Request.Context(), c.Query("search"))
	if err != nil {
		s.signalsFailed(c, "Failed to fetch daily signals", err)
		return
	}
	c.JSON(http.StatusOK, dailyResponse{Signals: page.Signals, TotalProfit: page.TotalProfit})
}

func (s *Server) handleSignalsMonthly(c *gin.Context) {
	page, err := s.deps.Feed.Monthly(c.Request.Context(), c.Query("search"))
	if err != nil {
		s.signalsFailed(c, "Failed to fetch monthly signals", err)
		return
	}
	c.JSON(http.StatusOK, monthlyResponse{Signals: page.Signals, TotalProfit: page.TotalProfit, Total: page.Total})
}

func (s *Server) signalsFailed(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: message})
}

// queryInt reads a positive integer parameter; anything else is 0, which the
// query normalization turns into the default.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// News

func (s *Server) handleNews(c *gin.Context) {
	items, _ := s.deps.News.Latest(c.Request.Context(), c.Query("pair"))
	c.JSON(http.StatusOK, newsResponse{News: items})
}

func (s *Server) handleTradingViewNews(c *gin.Context) {
	c.JSON(http.StatusOK, newsResponse{News: news.TradingViewNews()})
}

// Contact

func (s *Server) handleContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		s.logger.Warn("contact body rejected", "error", err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: contact.MsgInvalidBody})
		return
	}

	res, err := s.deps.Contact.Submit(c.Request.Context(), sub, c.GetHeader("Origin"))
	var verr *contact.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, contact.ErrDelivery):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: contact.MsgSendFailed})
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: contact.MsgFailed})
	default:
		c.JSON(http.StatusOK, messageResponse{Message: res.Message, Reference: res.Reference})
	}
}

// Health

func (s *Server) handleHealth(c *gin.Context) {
	resp := healthResponse{Status: "ok", Store: "mock"}
	if s.deps.Store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		switch err := s.deps.Store.Ping(ctx); {
		case err == nil:
			resp.Store = "up"
		case errors.Is(err, signals.ErrNotConfigured):
			resp.Store = "mock"
		default:
			resp.Store = "down"
			resp.Status = "degraded"
			s.logger.Warn("signal store ping failed", "error", err)
		}
	}
	c.JSON(http.StatusOK, resp)
}
