package flow

import (
	"context"

	"gainezis-fintrade/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const newsPrompt = `You are a financial news service AI. Your task is to generate a list of 5 recent and relevant financial news headlines. The news should cover a range of topics including global markets, cryptocurrency, stocks, and the economy.

For each news item, provide:
- A compelling and realistic title.
- A realistic source (e.g., Reuters, Bloomberg, CoinDesk, Wall Street Journal).
- A relative timestamp (e.g., "3h ago", "1d ago").
- A relevant category, one of: Markets, Crypto, Stocks, Economy, Technology.
- A one or two-word hint for generating a background image (e.g., "federal reserve", "stock market crash").
- Randomly include a video report for some items where it makes sense, like a CEO interview or market analysis (set mediaType to "video", otherwise "image").

Please also create one sponsored ad spot disguised as a news item about "Gainezis-Fintrade".

Format the response as a JSON object with a "newsItems" array of 5 news items, each having title, source, time, category, imageHint, and optional mediaType fields.`

// News is the newsDigest operation. It takes no input.
type News struct {
	tracer trace.Tracer
	gen    Generator
}

func NewNews(tracer trace.Tracer, gen Generator) *News {
	return &News{tracer: tracer, gen: gen}
}

func (n *News) Fetch(ctx context.Context) (*domain.NewsDigest, error) {
	ctx, span := n.tracer.Start(ctx, "flow.financial-news")
	defer span.End()

	var out domain.NewsDigest
	if err := n.gen.GenerateJSON(ctx, "financial-news", newsPrompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
