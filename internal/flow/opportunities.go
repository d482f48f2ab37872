package flow

import (
	"context"

	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const opportunitiesPrompt = `You are an expert financial analyst providing trading opportunities for a public Telegram channel.

Generate three trading opportunities, including one high-gain opportunity. Provide the asset, recommended action (buy or sell), entry point, stop loss, take profit, confidence (Low, Medium, High), potential gain (Low, Medium, High), and rationale for each opportunity. Ensure one opportunity has High potentialGain and provide a rationale that explains the high gain potential clearly.

Format the response as a JSON object with an "opportunities" array of three trading opportunities, each having asset, action, entryPoint, stopLoss, takeProfit, confidence, potentialGain, and rationale fields.`

// Opportunities is the opportunityList operation. It takes no input.
type Opportunities struct {
	tracer trace.Tracer
	gen    Generator
}

func NewOpportunities(tracer trace.Tracer, gen Generator) *Opportunities {
	return &Opportunities{tracer: tracer, gen: gen}
}

func (o *Opportunities) List(ctx context.Context) (*domain.OpportunityList, error) {
	ctx, span := o.tracer.Start(ctx, "flow.trading-opportunities")
	defer span.End()

	var out domain.OpportunityList
	if err := o.gen.GenerateJSON(ctx, "trading-opportunities", opportunitiesPrompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
