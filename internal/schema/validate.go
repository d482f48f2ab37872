// Package schema validates operation requests before dispatch and
// operation responses after return. Checks are explicit and ordered:
// the first violated field path wins. The only coercion performed is
// the documented explainableAI default substitution; everything else is
// reported, never silently fixed.
package schema

import (
	"strconv"
	"strings"

	"gainezis-fintrade/internal/domain"
)

func ValidatePulseRequest(req domain.PulseRequest) *domain.DispatchError {
	if strings.TrimSpace(req.Topic) == "" {
		return domain.ValidationFailure("topic", "must not be empty")
	}
	return nil
}

func ValidatePulseResult(res *domain.PulseResult) *domain.DispatchError {
	if res == nil {
		return domain.ValidationFailure("pulse", "missing result")
	}
	if strings.TrimSpace(res.Analysis) == "" {
		return domain.ValidationFailure("analysis", "must not be empty")
	}
	if strings.TrimSpace(res.AudioScript) == "" {
		return domain.ValidationFailure("audioScript", "must not be empty")
	}
	return nil
}

func ValidateStrategyRequest(req domain.StrategyRequest) *domain.DispatchError {
	if strings.TrimSpace(req.MarketData) == "" {
		return domain.ValidationFailure("marketData", "must not be empty")
	}
	if strings.TrimSpace(req.TechnicalIndicators) == "" {
		return domain.ValidationFailure("technicalIndicators", "must not be empty")
	}
	if strings.TrimSpace(req.MacroeconomicFactors) == "" {
		return domain.ValidationFailure("macroeconomicFactors", "must not be empty")
	}
	if !req.AssetType.IsValid() {
		return domain.ValidationFailure("assetType", "must be one of crypto, options, forex")
	}
	if !req.RiskAppetite.IsValid() {
		return domain.ValidationFailure("riskAppetite", "must be one of low, medium, high")
	}
	return nil
}

// ValidateStrategyResult checks the generated strategy and substitutes
// the fixed explainableAI default when the model omitted the block, so
// downstream consumers never observe an absent field.
func ValidateStrategyResult(res *domain.StrategyResult) *domain.DispatchError {
	if res == nil {
		return domain.ValidationFailure("strategy", "missing result")
	}
	if strings.TrimSpace(res.Strategy) == "" {
		return domain.ValidationFailure("strategy", "must not be empty")
	}
	if strings.TrimSpace(res.Rationale) == "" {
		return domain.ValidationFailure("rationale", "must not be empty")
	}
	if strings.TrimSpace(res.RiskAssessment) == "" {
		return domain.ValidationFailure("riskAssessment", "must not be empty")
	}

	if res.ExplainableAI == nil {
		res.ExplainableAI = domain.DefaultExplainableAI()
		return nil
	}

	xai := res.ExplainableAI
	if strings.TrimSpace(xai.WyckoffPhase) == "" {
		return domain.ValidationFailure("explainableAI.wyckoffPhase", "must not be empty")
	}
	if len(xai.KeyFactors) == 0 {
		return domain.ValidationFailure("explainableAI.keyFactors", "must not be empty")
	}
	if xai.ConfidenceLevel < 0 || xai.ConfidenceLevel > 1 {
		return domain.ValidationFailure("explainableAI.confidenceLevel", "must be between 0 and 1")
	}
	if strings.TrimSpace(xai.AlternativeStrategies) == "" {
		return domain.ValidationFailure("explainableAI.alternativeStrategies", "must not be empty")
	}
	return nil
}

// ValidateNewsDigest checks the digest shape and applies the sponsor
// override: items sourced from the sponsor are re-labelled as
// advertisements before the category vocabulary check.
func ValidateNewsDigest(digest *domain.NewsDigest) *domain.DispatchError {
	if digest == nil {
		return domain.ValidationFailure("newsItems", "missing result")
	}
	if len(digest.NewsItems) != domain.NewsDigestSize {
		return domain.ValidationFailure("newsItems", "must contain exactly 5 items")
	}
	for i := range digest.NewsItems {
		item := &digest.NewsItems[i]
		path := newsItemPath(i)
		if strings.TrimSpace(item.Title) == "" {
			return domain.ValidationFailure(path+".title", "must not be empty")
		}
		if strings.TrimSpace(item.Source) == "" {
			return domain.ValidationFailure(path+".source", "must not be empty")
		}
		if strings.TrimSpace(item.Time) == "" {
			return domain.ValidationFailure(path+".time", "must not be empty")
		}
		if strings.EqualFold(strings.TrimSpace(item.Source), domain.SponsorName) {
			item.Category = domain.CategoryAdvertisement
		} else if !item.Category.IsValid() {
			return domain.ValidationFailure(path+".category", "unknown category "+string(item.Category))
		}
		if strings.TrimSpace(item.ImageHint) == "" {
			return domain.ValidationFailure(path+".imageHint", "must not be empty")
		}
		if item.MediaType != "" && !item.MediaType.IsValid() {
			return domain.ValidationFailure(path+".mediaType", "must be image or video")
		}
	}
	return nil
}

func ValidateOpportunityList(list *domain.OpportunityList) *domain.DispatchError {
	if list == nil {
		return domain.ValidationFailure("opportunities", "missing result")
	}
	if len(list.Opportunities) != domain.OpportunityListSize {
		return domain.ValidationFailure("opportunities", "must contain exactly 3 items")
	}
	highGain := false
	for i, opp := range list.Opportunities {
		path := opportunityPath(i)
		if strings.TrimSpace(opp.Asset) == "" {
			return domain.ValidationFailure(path+".asset", "must not be empty")
		}
		if !opp.Action.IsValid() {
			return domain.ValidationFailure(path+".action", "must be buy or sell")
		}
		if !opp.Confidence.IsValid() {
			return domain.ValidationFailure(path+".confidence", "must be Low, Medium, or High")
		}
		if !opp.PotentialGain.IsValid() {
			return domain.ValidationFailure(path+".potentialGain", "must be Low, Medium, or High")
		}
		if strings.TrimSpace(opp.Rationale) == "" {
			return domain.ValidationFailure(path+".rationale", "must not be empty")
		}
		if opp.PotentialGain == domain.GainHigh {
			highGain = true
		}
	}
	if !highGain {
		return domain.ValidationFailure("opportunities", "at least one opportunity must have High potential gain")
	}
	return nil
}

func ValidateSpeechRequest(req domain.SpeechRequest) *domain.DispatchError {
	if strings.TrimSpace(req.Script) == "" {
		return domain.ValidationFailure("script", "must not be empty")
	}
	return nil
}

func ValidateTradeRequest(req domain.TradeRequest) *domain.DispatchError {
	if strings.TrimSpace(req.Strategy) == "" {
		return domain.ValidationFailure("strategy", "must not be empty")
	}
	if strings.TrimSpace(req.Asset) == "" {
		return domain.ValidationFailure("asset", "must not be empty")
	}
	if req.RiskPercentage <= 0 || req.RiskPercentage > 100 {
		return domain.ValidationFailure("riskPercentage", "must be between 0 and 100")
	}
	if req.StopLossPercentage <= 0 || req.StopLossPercentage > 100 {
		return domain.ValidationFailure("stopLossPercentage", "must be between 0 and 100")
	}
	if req.TakeProfitPercentage <= 0 || req.TakeProfitPercentage > 100 {
		return domain.ValidationFailure("takeProfitPercentage", "must be between 0 and 100")
	}
	// Keys are opaque pass-through; present but never verified.
	if req.APIKey == "" {
		return domain.ValidationFailure("apiKey", "must not be empty")
	}
	if req.APISecret == "" {
		return domain.ValidationFailure("apiSecret", "must not be empty")
	}
	return nil
}

func ValidateTradeResult(res *domain.TradeResult) *domain.DispatchError {
	if res == nil {
		return domain.ValidationFailure("trade", "missing result")
	}
	if strings.TrimSpace(res.TradeStatus) == "" {
		return domain.ValidationFailure("tradeStatus", "must not be empty")
	}
	if strings.TrimSpace(res.Message) == "" {
		return domain.ValidationFailure("message", "must not be empty")
	}
	return nil
}

func newsItemPath(i int) string {
	return "newsItems[" + strconv.Itoa(i) + "]"
}

func opportunityPath(i int) string {
	return "opportunities[" + strconv.Itoa(i) + "]"
}
