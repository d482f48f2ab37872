package schema

import (
	"strings"
	"testing"

	"gainezis-fintrade/internal/domain"
)

func validDigest() *domain.NewsDigest {
	items := make([]domain.NewsItem, 0, domain.NewsDigestSize)
	for i := 0; i < domain.NewsDigestSize; i++ {
		items = append(items, domain.NewsItem{
			Title:     "Fed holds rates steady",
			Source:    "Reuters",
			Time:      "2h ago",
			Category:  domain.CategoryEconomy,
			ImageHint: "federal reserve",
		})
	}
	return &domain.NewsDigest{NewsItems: items}
}

func TestValidateNewsDigestAccepts(t *testing.T) {
	if derr := ValidateNewsDigest(validDigest()); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
}

func TestValidateNewsDigestRejectsWrongCount(t *testing.T) {
	digest := validDigest()
	digest.NewsItems = digest.NewsItems[:4]
	derr := ValidateNewsDigest(digest)
	if derr == nil || derr.Kind != domain.ErrValidationFailure {
		t.Fatalf("expected ValidationFailure, got %v", derr)
	}
}

func TestValidateNewsDigestReportsFirstFieldPath(t *testing.T) {
	digest := validDigest()
	digest.NewsItems[2].Title = "  "
	derr := ValidateNewsDigest(digest)
	if derr == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(derr.HumanMessage, "newsItems[2].title") {
		t.Fatalf("expected field path in message, got %q", derr.HumanMessage)
	}
}

func TestValidateNewsDigestSponsorOverride(t *testing.T) {
	digest := validDigest()
	digest.NewsItems[1].Source = "GAINEZIS-fintrade"
	digest.NewsItems[1].Category = domain.CategoryMarkets
	if derr := ValidateNewsDigest(digest); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if digest.NewsItems[1].Category != domain.CategoryAdvertisement {
		t.Fatalf("expected Advertisement override, got %s", digest.NewsItems[1].Category)
	}
}

func TestValidateNewsDigestRejectsUnknownCategory(t *testing.T) {
	digest := validDigest()
	digest.NewsItems[0].Category = "Gossip"
	derr := ValidateNewsDigest(digest)
	if derr == nil || !strings.HasPrefix(derr.HumanMessage, "newsItems[0].category") {
		t.Fatalf("expected category failure, got %v", derr)
	}
}

func validOpportunities() *domain.OpportunityList {
	return &domain.OpportunityList{Opportunities: []domain.Opportunity{
		{Asset: "BTC", Action: domain.ActionBuy, EntryPoint: 64000, StopLoss: 62000, TakeProfit: 70000, Confidence: domain.GainHigh, PotentialGain: domain.GainHigh, Rationale: "breakout"},
		{Asset: "AAPL", Action: domain.ActionSell, EntryPoint: 230, StopLoss: 236, TakeProfit: 215, Confidence: domain.GainMedium, PotentialGain: domain.GainMedium, Rationale: "overbought"},
		{Asset: "EUR/USD", Action: domain.ActionBuy, EntryPoint: 1.09, StopLoss: 1.08, TakeProfit: 1.12, Confidence: domain.GainLow, PotentialGain: domain.GainLow, Rationale: "range support"},
	}}
}

func TestValidateOpportunityListAccepts(t *testing.T) {
	if derr := ValidateOpportunityList(validOpportunities()); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
}

func TestValidateOpportunityListRequiresHighGain(t *testing.T) {
	list := validOpportunities()
	list.Opportunities[0].PotentialGain = domain.GainMedium
	derr := ValidateOpportunityList(list)
	if derr == nil || derr.Kind != domain.ErrValidationFailure {
		t.Fatalf("expected ValidationFailure, got %v", derr)
	}
}

func TestValidateOpportunityListRejectsWrongCount(t *testing.T) {
	list := validOpportunities()
	list.Opportunities = list.Opportunities[:2]
	if derr := ValidateOpportunityList(list); derr == nil {
		t.Fatal("expected error for short list")
	}
}

func TestValidateOpportunityListRejectsBadAction(t *testing.T) {
	list := validOpportunities()
	list.Opportunities[1].Action = "hold"
	derr := ValidateOpportunityList(list)
	if derr == nil || !strings.HasPrefix(derr.HumanMessage, "opportunities[1].action") {
		t.Fatalf("expected action failure, got %v", derr)
	}
}

func TestValidateStrategyResultSubstitutesDefaultXAI(t *testing.T) {
	res := &domain.StrategyResult{Strategy: "scale in", Rationale: "momentum", RiskAssessment: "medium"}
	if derr := ValidateStrategyResult(res); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if res.ExplainableAI == nil {
		t.Fatal("expected default explainableAI substitution")
	}
	if res.ExplainableAI.WyckoffPhase != "Markup" || res.ExplainableAI.ConfidenceLevel != 0.75 {
		t.Fatalf("unexpected default: %+v", res.ExplainableAI)
	}
}

func TestValidateStrategyResultRejectsBadConfidence(t *testing.T) {
	res := &domain.StrategyResult{
		Strategy:       "scale in",
		Rationale:      "momentum",
		RiskAssessment: "medium",
		ExplainableAI: &domain.ExplainableAI{
			WyckoffPhase:          "Accumulation",
			KeyFactors:            []string{"volume"},
			ConfidenceLevel:       1.4,
			AlternativeStrategies: "hold",
		},
	}
	derr := ValidateStrategyResult(res)
	if derr == nil || !strings.HasPrefix(derr.HumanMessage, "explainableAI.confidenceLevel") {
		t.Fatalf("expected confidence failure, got %v", derr)
	}
}

func TestValidateStrategyRequest(t *testing.T) {
	req := domain.StrategyRequest{
		MarketData:           "BTC volatile",
		TechnicalIndicators:  "RSI 75",
		MacroeconomicFactors: "CPI release",
		AssetType:            domain.AssetCrypto,
		RiskAppetite:         domain.RiskMedium,
	}
	if derr := ValidateStrategyRequest(req); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	req.AssetType = "bonds"
	if derr := ValidateStrategyRequest(req); derr == nil {
		t.Fatal("expected assetType failure")
	}
}

func TestValidateTradeRequest(t *testing.T) {
	req := domain.TradeRequest{
		Strategy:             "momentum long",
		Asset:                "BTC",
		RiskPercentage:       1,
		StopLossPercentage:   2,
		TakeProfitPercentage: 4,
		APIKey:               "key",
		APISecret:            "secret",
	}
	if derr := ValidateTradeRequest(req); derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	req.RiskPercentage = 0
	if derr := ValidateTradeRequest(req); derr == nil {
		t.Fatal("expected riskPercentage failure")
	}
}
