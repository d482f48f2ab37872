package flow

import (
	"context"
	"fmt"

	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const strategyPromptTemplate = `You are an expert trading strategy generator with deep expertise in Wyckoff methodology and Reinforcement Learning (RL) optimization. You must provide EXPLAINABLE AI (XAI) insights for every strategy.

WYCKOFF METHODOLOGY FRAMEWORK:
The Wyckoff method identifies four market phases:
1. Accumulation: Institutional buyers accumulate at low prices (Springs, Tests)
2. Markup: Price rises with increasing volume and participation
3. Distribution: Institutional sellers distribute at high prices (Upthrusts, Tests)
4. Markdown: Price declines with decreasing participation

Key Wyckoff Concepts:
- Springs: False breakdowns below support that shake out weak longs
- Upthrusts: False breakups above resistance that shake out weak shorts
- Tests: Confirmations of support/resistance levels
- Volume Analysis: Rising volume confirms price action, declining volume shows weakness
- Law of Supply and Demand: Excess supply causes price declines, excess demand causes price rises

REINFORCEMENT LEARNING FRAMEWORK:
Apply Q-learning principles to optimize trading decisions:
- State: Current market conditions (price, volume, indicators, phase)
- Action: Buy, Sell, Hold decisions
- Reward: Profit/Loss from the action
- Policy: Optimal action selection based on state-action values
- Exploration vs Exploitation: Balance trying new strategies with proven approaches

EXPLAINABLE AI (XAI) REQUIREMENTS:
1. Identify the Wyckoff phase and explain why
2. List key factors that influenced the strategy decision
3. Provide a confidence level (0-1) based on data quality and signal strength
4. Suggest alternative strategies for different risk profiles
5. Make the decision path transparent and understandable

ANALYSIS INSTRUCTIONS:
1. Analyze sentiment and identify market catalysts
2. Identify Wyckoff phases and key events (springs, upthrusts, tests)
3. Apply RL optimization: evaluate state-action values and optimal policy
4. Synthesize all data: sentiment, Wyckoff patterns, technical indicators, macro factors
5. Generate strategy with entry/exit rules based on Wyckoff + RL insights
6. Explain rationale with specific Wyckoff patterns and RL optimization applied
7. Include XAI insights for full transparency

Market Data: %s
Technical Indicators: %s
Macroeconomic Factors: %s
Asset Type: %s
Risk Appetite: %s

Return a JSON object with strategy, rationale, riskAssessment, and explainableAI object containing wyckoffPhase, keyFactors array, confidenceLevel number, and alternativeStrategies string.`

// Strategy is the strategyGeneration operation.
type Strategy struct {
	tracer trace.Tracer
	gen    Generator
}

func NewStrategy(tracer trace.Tracer, gen Generator) *Strategy {
	return &Strategy{tracer: tracer, gen: gen}
}

func (s *Strategy) Generate(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyResult, error) {
	ctx, span := s.tracer.Start(ctx, "flow.generate-strategy")
	defer span.End()

	prompt := fmt.Sprintf(strategyPromptTemplate,
		req.MarketData,
		req.TechnicalIndicators,
		req.MacroeconomicFactors,
		req.AssetType,
		req.RiskAppetite,
	)

	var out domain.StrategyResult
	if err := s.gen.GenerateJSON(ctx, "generate-strategy", prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
