package flow

import (
	"context"
	"fmt"

	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const pulsePromptTemplate = `You are a sophisticated financial analyst AI called "Market Pulse". Your unique capability is to synthesize information not just from text but also from the sentiment conveyed in audio, such as earnings calls and financial news broadcasts.

For the given topic, %q, perform a deep analysis of the current market sentiment. Your analysis should:
1. Incorporate data from news articles, social media (like Reddit and Twitter), and financial reports.
2. Simulate an analysis of audio sentiment. For example, mention the "tone of voice on the latest earnings call" or "hesitation detected in the CEO's recent interview". You must invent these audio-based details to make your analysis unique.
3. Provide a concise yet comprehensive text 'analysis'.
4. Create an 'audioScript' for a multi-speaker audio report. Use "Speaker1" for the main narrator and "Speaker2" for quoting simulated sources or adding color commentary. The script should be engaging and sound like a professional news segment.

Your response must be structured as a JSON object with 'analysis' and 'audioScript' fields.`

// Pulse is the sentimentAnalysis operation.
type Pulse struct {
	tracer trace.Tracer
	gen    Generator
}

func NewPulse(tracer trace.Tracer, gen Generator) *Pulse {
	return &Pulse{tracer: tracer, gen: gen}
}

func (p *Pulse) Analyze(ctx context.Context, req domain.PulseRequest) (*domain.PulseResult, error) {
	ctx, span := p.tracer.Start(ctx, "flow.market-pulse")
	defer span.End()

	var out domain.PulseResult
	prompt := fmt.Sprintf(pulsePromptTemplate, req.Topic)
	if err := p.gen.GenerateJSON(ctx, "market-pulse", prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
