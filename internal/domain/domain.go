package domain

import "time"

// Operation identifies one of the AI-backed capabilities. The catalog is
// fixed at process start; there is no dynamic registration.
type Operation string

const (
	OpSentimentAnalysis  Operation = "sentimentAnalysis"
	OpNewsDigest         Operation = "newsDigest"
	OpStrategyGeneration Operation = "strategyGeneration"
	OpOpportunityList    Operation = "opportunityList"
	OpSpeechSynthesis    Operation = "speechSynthesis"
	OpTradeExecution     Operation = "tradeExecution"
)

var Operations = []Operation{
	OpSentimentAnalysis,
	OpNewsDigest,
	OpStrategyGeneration,
	OpOpportunityList,
	OpSpeechSynthesis,
	OpTradeExecution,
}

type AssetType string

const (
	AssetCrypto  AssetType = "crypto"
	AssetOptions AssetType = "options"
	AssetForex   AssetType = "forex"
)

var SupportedAssetTypes = []AssetType{AssetCrypto, AssetOptions, AssetForex}

func (a AssetType) IsValid() bool {
	return a == AssetCrypto || a == AssetOptions || a == AssetForex
}

type RiskAppetite string

const (
	RiskLow    RiskAppetite = "low"
	RiskMedium RiskAppetite = "medium"
	RiskHigh   RiskAppetite = "high"
)

var SupportedRiskAppetites = []RiskAppetite{RiskLow, RiskMedium, RiskHigh}

func (r RiskAppetite) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

type NewsCategory string

const (
	CategoryMarkets    NewsCategory = "Markets"
	CategoryCrypto     NewsCategory = "Crypto"
	CategoryStocks     NewsCategory = "Stocks"
	CategoryEconomy    NewsCategory = "Economy"
	CategoryTechnology NewsCategory = "Technology"
	// CategoryAdvertisement is never requested from the model; it is set
	// by the sponsor override when the source matches SponsorName.
	CategoryAdvertisement NewsCategory = "Advertisement"
)

var NewsCategories = []NewsCategory{
	CategoryMarkets,
	CategoryCrypto,
	CategoryStocks,
	CategoryEconomy,
	CategoryTechnology,
}

func (c NewsCategory) IsValid() bool {
	for _, known := range NewsCategories {
		if c == known {
			return true
		}
	}
	return false
}

// SponsorName is the source string whose news items are re-labelled as
// advertisements, compared case-insensitively.
const SponsorName = "Gainezis-Fintrade"

type TradeAction string

const (
	ActionBuy  TradeAction = "buy"
	ActionSell TradeAction = "sell"
)

func (a TradeAction) IsValid() bool {
	return a == ActionBuy || a == ActionSell
}

type GainLevel string

const (
	GainLow    GainLevel = "Low"
	GainMedium GainLevel = "Medium"
	GainHigh   GainLevel = "High"
)

func (g GainLevel) IsValid() bool {
	return g == GainLow || g == GainMedium || g == GainHigh
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

func (m MediaType) IsValid() bool {
	return m == MediaImage || m == MediaVideo
}

// PulseRequest and PulseResult are the sentimentAnalysis contract.
type PulseRequest struct {
	Topic string `json:"topic"`
}

type PulseResult struct {
	Analysis    string `json:"analysis"`
	AudioScript string `json:"audioScript"`
}

type NewsItem struct {
	Title     string       `json:"title"`
	Source    string       `json:"source"`
	Time      string       `json:"time"`
	Category  NewsCategory `json:"category"`
	ImageHint string       `json:"imageHint"`
	MediaType MediaType    `json:"mediaType,omitempty"`
}

// NewsDigestSize is the exact number of items a valid digest carries.
const NewsDigestSize = 5

type NewsDigest struct {
	NewsItems []NewsItem `json:"newsItems"`
}

type StrategyRequest struct {
	MarketData           string       `json:"marketData"`
	TechnicalIndicators  string       `json:"technicalIndicators"`
	MacroeconomicFactors string       `json:"macroeconomicFactors"`
	AssetType            AssetType    `json:"assetType"`
	RiskAppetite         RiskAppetite `json:"riskAppetite"`
}

type ExplainableAI struct {
	WyckoffPhase          string   `json:"wyckoffPhase"`
	KeyFactors            []string `json:"keyFactors"`
	ConfidenceLevel       float64  `json:"confidenceLevel"`
	AlternativeStrategies string   `json:"alternativeStrategies"`
}

// DefaultExplainableAI is substituted when the model omits the
// explainability block. It is the single documented validator coercion.
func DefaultExplainableAI() *ExplainableAI {
	return &ExplainableAI{
		WyckoffPhase:          "Markup",
		KeyFactors:            []string{"Technical Alignment", "Volume Confirmation", "Sentiment Analysis"},
		ConfidenceLevel:       0.75,
		AlternativeStrategies: "Conservative (Low Risk), Moderate (Medium Risk), Aggressive (High Risk)",
	}
}

type StrategyResult struct {
	Strategy       string         `json:"strategy"`
	Rationale      string         `json:"rationale"`
	RiskAssessment string         `json:"riskAssessment"`
	ExplainableAI  *ExplainableAI `json:"explainableAI"`
}

type Opportunity struct {
	Asset         string      `json:"asset"`
	Action        TradeAction `json:"action"`
	EntryPoint    float64     `json:"entryPoint"`
	StopLoss      float64     `json:"stopLoss"`
	TakeProfit    float64     `json:"takeProfit"`
	Confidence    GainLevel   `json:"confidence"`
	PotentialGain GainLevel   `json:"potentialGain"`
	Rationale     string      `json:"rationale"`
}

// OpportunityListSize is the exact number of opportunities a valid list
// carries; at least one of them must have PotentialGain == GainHigh.
const OpportunityListSize = 3

type OpportunityList struct {
	Opportunities []Opportunity `json:"opportunities"`
}

// FeedEntry is a persisted opportunity as served by the public feed.
type FeedEntry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Opportunity
}

type SpeechRequest struct {
	Script string `json:"script"`
}

type SpeechResult struct {
	AudioDataURI string `json:"audioDataUri"`
}

type TradeRequest struct {
	Strategy             string  `json:"strategy"`
	Asset                string  `json:"asset"`
	RiskPercentage       float64 `json:"riskPercentage"`
	StopLossPercentage   float64 `json:"stopLossPercentage"`
	TakeProfitPercentage float64 `json:"takeProfitPercentage"`
	APIKey               string  `json:"apiKey"`
	APISecret            string  `json:"apiSecret"`
	IsActive             bool    `json:"isActive,omitempty"`
}

type TradeResult struct {
	TradeStatus string  `json:"tradeStatus"`
	ProfitLoss  float64 `json:"profitLoss"`
	Message     string  `json:"message"`
}
