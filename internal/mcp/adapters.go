package mcp

import (
	"context"

	"gainezis-fintrade/internal/domain"
)

// Dispatcher exposes the prompt operations the MCP tool surface needs.
// Trade execution is deliberately absent; credentials never transit MCP.
type Dispatcher interface {
	MarketPulse(ctx context.Context, req domain.PulseRequest) (*domain.PulseResult, *domain.DispatchError)
	NewsDigest(ctx context.Context) (*domain.NewsDigest, *domain.DispatchError)
	GenerateStrategy(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyResult, *domain.DispatchError)
	ListOpportunities(ctx context.Context) (*domain.OpportunityList, *domain.DispatchError)
}

// FeedReader serves the persisted opportunity feed.
type FeedReader interface {
	ListRecent(ctx context.Context, limit int) ([]domain.FeedEntry, error)
}
