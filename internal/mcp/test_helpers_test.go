package mcp

import (
	"context"
	"time"

	"gainezis-fintrade/internal/domain"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type stubDispatcher struct {
	pulseRes    *domain.PulseResult
	pulseErr    *domain.DispatchError
	newsRes     *domain.NewsDigest
	strategyRes *domain.StrategyResult
	oppsRes     *domain.OpportunityList

	lastTopic       string
	lastStrategyReq domain.StrategyRequest
}

func (s *stubDispatcher) MarketPulse(_ context.Context, req domain.PulseRequest) (*domain.PulseResult, *domain.DispatchError) {
	s.lastTopic = req.Topic
	return s.pulseRes, s.pulseErr
}

func (s *stubDispatcher) NewsDigest(context.Context) (*domain.NewsDigest, *domain.DispatchError) {
	return s.newsRes, nil
}

func (s *stubDispatcher) GenerateStrategy(_ context.Context, req domain.StrategyRequest) (*domain.StrategyResult, *domain.DispatchError) {
	s.lastStrategyReq = req
	return s.strategyRes, nil
}

func (s *stubDispatcher) ListOpportunities(context.Context) (*domain.OpportunityList, *domain.DispatchError) {
	return s.oppsRes, nil
}

type stubFeedReader struct {
	entries   []domain.FeedEntry
	lastLimit int
}

func (s *stubFeedReader) ListRecent(_ context.Context, limit int) ([]domain.FeedEntry, error) {
	s.lastLimit = limit
	return append([]domain.FeedEntry(nil), s.entries...), nil
}

func testServer() (*sdkmcp.Server, *stubDispatcher, *stubFeedReader) {
	dispatcher := &stubDispatcher{
		pulseRes: &domain.PulseResult{Analysis: "bullish", AudioScript: "The market looks bullish."},
		newsRes: &domain.NewsDigest{NewsItems: []domain.NewsItem{
			{Title: "Markets rally", Source: "Bloomberg", Time: "1h ago", Category: domain.CategoryMarkets, ImageHint: "chart"},
		}},
		strategyRes: &domain.StrategyResult{
			Strategy:       "scale in",
			Rationale:      "markup",
			RiskAssessment: "medium",
			ExplainableAI:  domain.DefaultExplainableAI(),
		},
		oppsRes: &domain.OpportunityList{Opportunities: []domain.Opportunity{
			{Asset: "BTC", Action: domain.ActionBuy, Confidence: domain.GainHigh, PotentialGain: domain.GainHigh, Rationale: "breakout"},
		}},
	}
	feed := &stubFeedReader{entries: []domain.FeedEntry{{
		ID:          1,
		CreatedAt:   time.Unix(0, 0).UTC(),
		Opportunity: domain.Opportunity{Asset: "BTC", Action: domain.ActionBuy, Confidence: domain.GainHigh, PotentialGain: domain.GainHigh, Rationale: "breakout"},
	}}}

	srv := NewServer(nil, dispatcher, feed, ServerConfig{RequestTimeout: time.Second})
	return srv, dispatcher, feed
}

func connectInMemory(ctx context.Context, srv *sdkmcp.Server) (*sdkmcp.ClientSession, context.CancelFunc, error) {
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = srv.Run(runCtx, serverTransport) }()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "mcp-test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return session, cancel, nil
}
