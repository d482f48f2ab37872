package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"gainezis-fintrade/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type pulseRequest struct {
	Topic string `json:"topic"`
}

type pulseResponse struct {
	Analysis     string `json:"analysis"`
	AudioScript  string `json:"audioScript"`
	AudioDataURI string `json:"audioDataUri,omitempty"`
}

// MarketPulse godoc
// @Summary      Analyze market sentiment for a topic
// @Description  Runs the sentiment analysis and narrates the result as a WAV data URI
// @Tags         pulse
// @Accept       json
// @Produce      json
// @Param        request  body  pulseRequest  true  "Topic to analyze"
// @Success      200  {object}  pulseResponse
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/pulse [post]
func (h *Handler) MarketPulse(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.market-pulse")
	defer span.End()

	var req pulseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a topic field"})
		return
	}
	req.Topic = strings.TrimSpace(req.Topic)
	span.SetAttributes(attribute.String("topic", req.Topic))

	res, derr := h.gateway.MarketPulse(ctx, domain.PulseRequest{Topic: req.Topic})
	if derr != nil {
		abortDispatch(c, derr)
		return
	}

	out := pulseResponse{Analysis: res.Analysis, AudioScript: res.AudioScript}

	// Narration is best-effort; the text analysis stands on its own.
	speech, derr := h.gateway.SynthesizeSpeech(ctx, domain.SpeechRequest{Script: res.AudioScript})
	if derr != nil {
		log.Printf("speech synthesis failed: %v", derr)
	} else {
		out.AudioDataURI = speech.AudioDataURI
	}

	c.JSON(http.StatusOK, out)
}

// GetNews godoc
// @Summary      Get the latest financial news digest
// @Description  Returns exactly five headlines, sponsor items re-labelled as advertisements
// @Tags         news
// @Produce      json
// @Success      200  {object}  domain.NewsDigest
// @Failure      502  {object}  map[string]string
// @Router       /api/news [get]
func (h *Handler) GetNews(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-news")
	defer span.End()

	digest, derr := h.gateway.NewsDigest(ctx)
	if derr != nil {
		abortDispatch(c, derr)
		return
	}
	c.JSON(http.StatusOK, digest)
}

// GenerateStrategy godoc
// @Summary      Generate a trading strategy
// @Description  Produces a strategy with rationale, risk assessment and explainability block
// @Tags         strategy
// @Accept       json
// @Produce      json
// @Param        request  body  domain.StrategyRequest  true  "Strategy inputs"
// @Success      200  {object}  domain.StrategyResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/strategy [post]
func (h *Handler) GenerateStrategy(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.generate-strategy")
	defer span.End()

	var req domain.StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a valid strategy request"})
		return
	}
	span.SetAttributes(
		attribute.String("asset_type", string(req.AssetType)),
		attribute.String("risk_appetite", string(req.RiskAppetite)),
	)

	res, derr := h.gateway.GenerateStrategy(ctx, req)
	if derr != nil {
		abortDispatch(c, derr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// RefreshOpportunities godoc
// @Summary      Generate a fresh batch of trade opportunities
// @Description  Returns three opportunities, at least one with High potential gain
// @Tags         opportunities
// @Produce      json
// @Success      200  {object}  domain.OpportunityList
// @Failure      502  {object}  map[string]string
// @Router       /api/opportunities/refresh [post]
func (h *Handler) RefreshOpportunities(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh-opportunities")
	defer span.End()

	list, derr := h.gateway.ListOpportunities(ctx)
	if derr != nil {
		abortDispatch(c, derr)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetFeed godoc
// @Summary      Get the public opportunity feed
// @Description  Returns recently generated opportunities, newest first
// @Tags         feed
// @Produce      json
// @Param        limit  query  int  false  "Number of entries (default 30, max 100)"  default(30)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	if h.feed == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feed unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-feed")
	defer span.End()

	limit := 30
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	entries, err := h.feed.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed": entries})
}

// ExecuteTrade godoc
// @Summary      Execute a trade from a generated strategy
// @Description  Forwards the trade to the execution engine; credentials are never stored
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request  body  domain.TradeRequest  true  "Trade parameters"
// @Success      200  {object}  domain.TradeResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/trade [post]
func (h *Handler) ExecuteTrade(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.execute-trade")
	defer span.End()

	var req domain.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a valid trade request"})
		return
	}
	span.SetAttributes(attribute.String("asset", req.Asset))

	res, derr := h.gateway.ExecuteTrade(ctx, req)
	if derr != nil {
		abortDispatch(c, derr)
		return
	}
	c.JSON(http.StatusOK, res)
}
