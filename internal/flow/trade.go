package flow

import (
	"context"
	"fmt"

	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const tradePromptTemplate = `You are an autonomous trading agent executing trades based on provided strategies with Reinforcement Learning (RL) optimization.

REINFORCEMENT LEARNING EXECUTION FRAMEWORK:
Apply Q-learning principles to optimize trade execution:
1. State Evaluation: Assess current market state (price, volume, indicators)
2. Action Selection: Determine optimal action (Buy, Sell, Hold) based on learned Q-values
3. Risk Management: Apply position sizing based on risk appetite and RL policy
4. Reward Optimization: Maximize expected future rewards (profit) while minimizing risk
5. Policy Learning: Continuously improve trading decisions based on historical performance
6. Exploration-Exploitation: Balance trying new strategies with proven approaches

TRADE EXECUTION PARAMETERS:
Asset: %s
Strategy: %s

Risk Management:
- Risk percentage per trade: %g%%
- Stop loss threshold: %g%%
- Take profit target: %g%%

RL OPTIMIZATION RULES:
1. Position Sizing: Calculate position size using Kelly Criterion with RL-optimized win rate
2. Entry Signals: Confirm entry based on strategy + RL confidence score
3. Exit Rules: Execute exits based on stop loss, take profit, or RL-detected regime change
4. Adaptive Learning: Adjust parameters based on recent trade performance
5. Risk Limits: Enforce maximum drawdown and daily loss limits

EXECUTION INSTRUCTIONS:
1. Validate the strategy aligns with current market conditions
2. Calculate optimal position size using RL-optimized parameters
3. Execute the trade with proper risk management
4. Monitor the trade in real-time
5. Apply RL-based exit signals (stop loss, take profit, or policy-based exit)
6. Log the trade result for RL model improvement

This is a simulated execution; the provided platform credentials are treated as opaque and never used for real orders.
Respond with a JSON object containing tradeStatus (e.g., OPEN, CLOSED, STOPPED), profitLoss number, and a descriptive message including RL metrics.`

// Trade is the tradeExecution operation. The simulation is entirely
// model-generated; API credentials pass through untouched.
type Trade struct {
	tracer trace.Tracer
	gen    Generator
}

func NewTrade(tracer trace.Tracer, gen Generator) *Trade {
	return &Trade{tracer: tracer, gen: gen}
}

func (t *Trade) Execute(ctx context.Context, req domain.TradeRequest) (*domain.TradeResult, error) {
	ctx, span := t.tracer.Start(ctx, "flow.trade-execution")
	defer span.End()

	prompt := fmt.Sprintf(tradePromptTemplate,
		req.Asset,
		req.Strategy,
		req.RiskPercentage,
		req.StopLossPercentage,
		req.TakeProfitPercentage,
	)

	var out domain.TradeResult
	if err := t.gen.GenerateJSON(ctx, "trade-execution", prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
