package handler

import (
	"context"
	"net/http"

	"gainezis-fintrade/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Gateway is the slice of dispatch operations the web transport needs.
type Gateway interface {
	MarketPulse(ctx context.Context, req domain.PulseRequest) (*domain.PulseResult, *domain.DispatchError)
	NewsDigest(ctx context.Context) (*domain.NewsDigest, *domain.DispatchError)
	GenerateStrategy(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyResult, *domain.DispatchError)
	ListOpportunities(ctx context.Context) (*domain.OpportunityList, *domain.DispatchError)
	SynthesizeSpeech(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechResult, *domain.DispatchError)
	ExecuteTrade(ctx context.Context, req domain.TradeRequest) (*domain.TradeResult, *domain.DispatchError)
}

// FeedLister serves the persisted public opportunity feed.
type FeedLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.FeedEntry, error)
}

type Handler struct {
	tracer  trace.Tracer
	gateway Gateway
	feed    FeedLister
}

func New(tracer trace.Tracer, gateway Gateway, feed FeedLister) *Handler {
	return &Handler{
		tracer:  tracer,
		gateway: gateway,
		feed:    feed,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.POST("/api/pulse", h.MarketPulse)
	r.GET("/api/news", h.GetNews)
	r.POST("/api/strategy", h.GenerateStrategy)
	r.POST("/api/opportunities/refresh", h.RefreshOpportunities)
	r.GET("/api/feed", h.GetFeed)
	r.POST("/api/trade", h.ExecuteTrade)
}

// Health godoc
// @Summary      Health check
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusFor maps dispatch error kinds onto HTTP status codes. Caller
// mistakes are 400s; anything the model side caused is a 502.
func statusFor(derr *domain.DispatchError) int {
	switch derr.Kind {
	case domain.ErrInvalidArguments, domain.ErrValidationFailure:
		return http.StatusBadRequest
	case domain.ErrUnknownCommand:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func abortDispatch(c *gin.Context, derr *domain.DispatchError) {
	c.JSON(statusFor(derr), gin.H{"error": derr.HumanMessage})
}
