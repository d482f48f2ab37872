package mcp

import (
	"fmt"
	"strings"

	"gainezis-fintrade/internal/domain"
)

const (
	defaultFeedLimit = 30
	maxFeedLimit     = 100
)

type marketPulseInput struct {
	Topic string `json:"topic" jsonschema:"financial topic to analyze (e.g. NVIDIA stock, Bitcoin)"`
}

type marketPulseOutput struct {
	Analysis    string `json:"analysis"`
	AudioScript string `json:"audioScript"`
}

type newsDigestInput struct{}

type newsDigestOutput struct {
	NewsItems []domain.NewsItem `json:"newsItems"`
}

// TechnicalIndicators and MacroeconomicFactors stay optional at the
// protocol layer so the generated schema does not reject calls that
// omit them; the dispatcher validates their content.
type strategyGenerateInput struct {
	MarketData           string `json:"marketData" jsonschema:"current market situation in free text"`
	TechnicalIndicators  string `json:"technicalIndicators,omitempty" jsonschema:"technical indicator readings"`
	MacroeconomicFactors string `json:"macroeconomicFactors,omitempty" jsonschema:"relevant macroeconomic factors"`
	AssetType            string `json:"assetType" jsonschema:"asset class: crypto, options, or forex"`
	RiskAppetite         string `json:"riskAppetite" jsonschema:"risk appetite: low, medium, or high"`
}

type strategyGenerateOutput struct {
	Strategy *domain.StrategyResult `json:"strategy"`
}

type opportunitiesListInput struct{}

type opportunitiesListOutput struct {
	Opportunities []domain.Opportunity `json:"opportunities"`
}

type feedListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of feed entries to return, max 100"`
}

type feedListOutput struct {
	Entries []domain.FeedEntry `json:"entries"`
}

func normalizeTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", fmt.Errorf("topic is required")
	}
	return topic, nil
}

func normalizeStrategyInput(in strategyGenerateInput) (domain.StrategyRequest, error) {
	req := domain.StrategyRequest{
		MarketData:           strings.TrimSpace(in.MarketData),
		TechnicalIndicators:  strings.TrimSpace(in.TechnicalIndicators),
		MacroeconomicFactors: strings.TrimSpace(in.MacroeconomicFactors),
		AssetType:            domain.AssetType(strings.ToLower(strings.TrimSpace(in.AssetType))),
		RiskAppetite:         domain.RiskAppetite(strings.ToLower(strings.TrimSpace(in.RiskAppetite))),
	}
	if !req.AssetType.IsValid() {
		return domain.StrategyRequest{}, fmt.Errorf("unsupported asset type: %s", in.AssetType)
	}
	if !req.RiskAppetite.IsValid() {
		return domain.StrategyRequest{}, fmt.Errorf("unsupported risk appetite: %s", in.RiskAppetite)
	}
	if req.MarketData == "" {
		return domain.StrategyRequest{}, fmt.Errorf("marketData is required")
	}
	return req, nil
}

func normalizeFeedLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}
