// Package gateway resolves parsed commands and directly-constructed
// requests to prompt operations. It owns input validation, chat
// defaulting, output validation, and the translation of every failure
// into a DispatchError. Per request the lifecycle is
// Received -> Parsed -> Validated -> Dispatched -> Completed | Failed,
// with no retry transition.
package gateway

import (
	"context"
	"log"
	"time"

	"gainezis-fintrade/internal/command"
	"gainezis-fintrade/internal/domain"
	"gainezis-fintrade/internal/schema"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Placeholder values filled in for strategy fields the chat transport
// does not collect. Web submissions always carry real values.
const (
	TelegramIndicatorsPlaceholder = "User is on Telegram, provide general indicators."
	TelegramMacroPlaceholder      = "User is on Telegram, provide general factors."
)

const (
	newsCacheKey          = "response:news-digest"
	opportunitiesCacheKey = "response:opportunity-list"
)

type PulseAnalyzer interface {
	Analyze(ctx context.Context, req domain.PulseRequest) (*domain.PulseResult, error)
}

type NewsFetcher interface {
	Fetch(ctx context.Context) (*domain.NewsDigest, error)
}

type StrategyGenerator interface {
	Generate(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyResult, error)
}

type OpportunityLister interface {
	List(ctx context.Context) (*domain.OpportunityList, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechResult, error)
}

type TradeExecutor interface {
	Execute(ctx context.Context, req domain.TradeRequest) (*domain.TradeResult, error)
}

// ResponseCache stores validated payloads for the parameterless
// operations. Implementations must treat errors as misses.
type ResponseCache interface {
	GetJSON(ctx context.Context, key string, out any) bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// FeedRecorder persists generated opportunity batches for the public
// feed. Recording is best-effort and never fails a request.
type FeedRecorder interface {
	RecordOpportunities(ctx context.Context, opportunities []domain.Opportunity) error
}

// Result is the transport-neutral success payload.
type Result struct {
	Operation domain.Operation
	Payload   any
}

type Gateway struct {
	tracer        trace.Tracer
	pulse         PulseAnalyzer
	news          NewsFetcher
	strategy      StrategyGenerator
	opportunities OpportunityLister
	speech        SpeechSynthesizer
	trade         TradeExecutor

	cache    ResponseCache
	feed     FeedRecorder
	cacheTTL time.Duration
}

func New(
	tracer trace.Tracer,
	pulse PulseAnalyzer,
	news NewsFetcher,
	strategy StrategyGenerator,
	opportunities OpportunityLister,
	speech SpeechSynthesizer,
	trade TradeExecutor,
) *Gateway {
	return &Gateway{
		tracer:        tracer,
		pulse:         pulse,
		news:          news,
		strategy:      strategy,
		opportunities: opportunities,
		speech:        speech,
		trade:         trade,
	}
}

// WithResponseCache enables short-TTL caching of the news digest and
// opportunity list.
func (g *Gateway) WithResponseCache(cache ResponseCache, ttl time.Duration) *Gateway {
	g.cache = cache
	g.cacheTTL = ttl
	return g
}

// WithFeedRecorder enables public-feed persistence of opportunity
// batches.
func (g *Gateway) WithFeedRecorder(feed FeedRecorder) *Gateway {
	g.feed = feed
	return g
}

// Dispatch routes a parsed chat command to its operation, applying the
// chat defaulting rule for fields the command grammar does not collect.
func (g *Gateway) Dispatch(ctx context.Context, cmd command.Command) (*Result, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("operation", string(cmd.Operation)))

	switch cmd.Operation {
	case domain.OpSentimentAnalysis:
		if len(cmd.Args) < 1 {
			return nil, domain.InvalidArguments("%s", command.PulseUsage)
		}
		res, derr := g.MarketPulse(ctx, domain.PulseRequest{Topic: cmd.Args[0]})
		if derr != nil {
			return nil, derr
		}
		return &Result{Operation: cmd.Operation, Payload: res}, nil

	case domain.OpNewsDigest:
		res, derr := g.NewsDigest(ctx)
		if derr != nil {
			return nil, derr
		}
		return &Result{Operation: cmd.Operation, Payload: res}, nil

	case domain.OpStrategyGeneration:
		if len(cmd.Args) < 3 {
			return nil, domain.InvalidArguments("strategy command requires asset type, risk appetite and market data")
		}
		req := domain.StrategyRequest{
			AssetType:            domain.AssetType(cmd.Args[0]),
			RiskAppetite:         domain.RiskAppetite(cmd.Args[1]),
			MarketData:           cmd.Args[2],
			TechnicalIndicators:  TelegramIndicatorsPlaceholder,
			MacroeconomicFactors: TelegramMacroPlaceholder,
		}
		res, derr := g.GenerateStrategy(ctx, req)
		if derr != nil {
			return nil, derr
		}
		return &Result{Operation: cmd.Operation, Payload: res}, nil

	default:
		return nil, domain.UnknownCommand("Unknown operation: %s", cmd.Operation)
	}
}

func (g *Gateway) MarketPulse(ctx context.Context, req domain.PulseRequest) (*domain.PulseResult, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.market-pulse")
	defer span.End()

	if derr := schema.ValidatePulseRequest(req); derr != nil {
		return nil, failed(span, derr)
	}
	res, err := g.pulse.Analyze(ctx, req)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if derr := schema.ValidatePulseResult(res); derr != nil {
		return nil, failed(span, upstreamInvalid(domain.OpSentimentAnalysis, derr))
	}
	return res, completed(span)
}

func (g *Gateway) NewsDigest(ctx context.Context) (*domain.NewsDigest, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.news-digest")
	defer span.End()

	if g.cache != nil {
		var cached domain.NewsDigest
		if g.cache.GetJSON(ctx, newsCacheKey, &cached) {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, nil
		}
	}

	digest, err := g.news.Fetch(ctx)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if derr := schema.ValidateNewsDigest(digest); derr != nil {
		return nil, failed(span, upstreamInvalid(domain.OpNewsDigest, derr))
	}

	if g.cache != nil {
		if err := g.cache.SetJSON(ctx, newsCacheKey, digest, g.cacheTTL); err != nil {
			log.Printf("news digest cache write failed: %v", err)
		}
	}
	return digest, completed(span)
}

func (g *Gateway) GenerateStrategy(ctx context.Context, req domain.StrategyRequest) (*domain.StrategyResult, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.generate-strategy")
	defer span.End()

	if derr := schema.ValidateStrategyRequest(req); derr != nil {
		return nil, failed(span, derr)
	}
	res, err := g.strategy.Generate(ctx, req)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if derr := schema.ValidateStrategyResult(res); derr != nil {
		return nil, failed(span, upstreamInvalid(domain.OpStrategyGeneration, derr))
	}
	return res, completed(span)
}

func (g *Gateway) ListOpportunities(ctx context.Context) (*domain.OpportunityList, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.list-opportunities")
	defer span.End()

	if g.cache != nil {
		var cached domain.OpportunityList
		if g.cache.GetJSON(ctx, opportunitiesCacheKey, &cached) {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &cached, nil
		}
	}

	list, err := g.opportunities.List(ctx)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if derr := schema.ValidateOpportunityList(list); derr != nil {
		return nil, failed(span, upstreamInvalid(domain.OpOpportunityList, derr))
	}

	if g.cache != nil {
		if err := g.cache.SetJSON(ctx, opportunitiesCacheKey, list, g.cacheTTL); err != nil {
			log.Printf("opportunity list cache write failed: %v", err)
		}
	}
	if g.feed != nil {
		if err := g.feed.RecordOpportunities(ctx, list.Opportunities); err != nil {
			log.Printf("feed record failed: %v", err)
		}
	}
	return list, completed(span)
}

func (g *Gateway) SynthesizeSpeech(ctx context.Context, req domain.SpeechRequest) (*domain.SpeechResult, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.synthesize-speech")
	defer span.End()

	if derr := schema.ValidateSpeechRequest(req); derr != nil {
		return nil, failed(span, derr)
	}
	res, err := g.speech.Synthesize(ctx, req)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if res == nil || res.AudioDataURI == "" {
		return nil, failed(span, domain.UpstreamFailure("speech synthesis produced no audio"))
	}
	return res, completed(span)
}

func (g *Gateway) ExecuteTrade(ctx context.Context, req domain.TradeRequest) (*domain.TradeResult, *domain.DispatchError) {
	ctx, span := g.tracer.Start(ctx, "gateway.execute-trade")
	defer span.End()

	if derr := schema.ValidateTradeRequest(req); derr != nil {
		return nil, failed(span, derr)
	}
	res, err := g.trade.Execute(ctx, req)
	if err != nil {
		return nil, failed(span, domain.AsDispatchError(err))
	}
	if derr := schema.ValidateTradeResult(res); derr != nil {
		return nil, failed(span, upstreamInvalid(domain.OpTradeExecution, derr))
	}
	return res, completed(span)
}

// upstreamInvalid converts an output-validation failure into an
// upstream failure: a response missing a required field is never
// forwarded as-is.
func upstreamInvalid(op domain.Operation, derr *domain.DispatchError) *domain.DispatchError {
	return domain.UpstreamFailure("%s returned an invalid response (%s)", op, derr.HumanMessage)
}

func failed(span trace.Span, derr *domain.DispatchError) *domain.DispatchError {
	span.SetAttributes(
		attribute.String("dispatch.state", "Failed"),
		attribute.String("dispatch.error_kind", string(derr.Kind)),
	)
	return derr
}

func completed(span trace.Span) *domain.DispatchError {
	span.SetAttributes(attribute.String("dispatch.state", "Completed"))
	return nil
}
