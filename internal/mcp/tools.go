package mcp

import (
	"context"
	"fmt"

	"gainezis-fintrade/internal/domain"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *mcp.Server, dispatcher Dispatcher, feed FeedReader) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "market_pulse",
		Description: "Run a deep sentiment analysis on a financial topic",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in marketPulseInput) (*mcp.CallToolResult, marketPulseOutput, error) {
		if dispatcher == nil {
			return nil, marketPulseOutput{}, fmt.Errorf("dispatch gateway unavailable")
		}
		topic, err := normalizeTopic(in.Topic)
		if err != nil {
			return nil, marketPulseOutput{}, err
		}
		result, derr := dispatcher.MarketPulse(ctx, domain.PulseRequest{Topic: topic})
		if derr != nil {
			return nil, marketPulseOutput{}, derr
		}
		return nil, marketPulseOutput{Analysis: result.Analysis, AudioScript: result.AudioScript}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "news_digest",
		Description: "Get the latest five financial news headlines",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ newsDigestInput) (*mcp.CallToolResult, newsDigestOutput, error) {
		if dispatcher == nil {
			return nil, newsDigestOutput{}, fmt.Errorf("dispatch gateway unavailable")
		}
		digest, derr := dispatcher.NewsDigest(ctx)
		if derr != nil {
			return nil, newsDigestOutput{}, derr
		}
		return nil, newsDigestOutput{NewsItems: digest.NewsItems}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "strategy_generate",
		Description: "Generate a trading strategy with rationale and risk assessment",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in strategyGenerateInput) (*mcp.CallToolResult, strategyGenerateOutput, error) {
		if dispatcher == nil {
			return nil, strategyGenerateOutput{}, fmt.Errorf("dispatch gateway unavailable")
		}
		req, err := normalizeStrategyInput(in)
		if err != nil {
			return nil, strategyGenerateOutput{}, err
		}
		result, derr := dispatcher.GenerateStrategy(ctx, req)
		if derr != nil {
			return nil, strategyGenerateOutput{}, derr
		}
		return nil, strategyGenerateOutput{Strategy: result}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "opportunities_list",
		Description: "Generate a fresh batch of three trade opportunities",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, _ opportunitiesListInput) (*mcp.CallToolResult, opportunitiesListOutput, error) {
		if dispatcher == nil {
			return nil, opportunitiesListOutput{}, fmt.Errorf("dispatch gateway unavailable")
		}
		list, derr := dispatcher.ListOpportunities(ctx)
		if derr != nil {
			return nil, opportunitiesListOutput{}, derr
		}
		return nil, opportunitiesListOutput{Opportunities: list.Opportunities}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "feed_list_recent",
		Description: "Get recently generated opportunities from the public feed",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in feedListInput) (*mcp.CallToolResult, feedListOutput, error) {
		if feed == nil {
			return nil, feedListOutput{}, fmt.Errorf("feed unavailable")
		}
		entries, err := feed.ListRecent(ctx, normalizeFeedLimit(in.Limit))
		if err != nil {
			return nil, feedListOutput{}, err
		}
		return nil, feedListOutput{Entries: entries}, nil
	})
}
