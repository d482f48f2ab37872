package bot

import (
	"strings"
	"testing"

	"gainezis-fintrade/internal/domain"
)

func TestFormatPulse(t *testing.T) {
	got := formatPulse("NVIDIA stock", &domain.PulseResult{Analysis: "Sentiment is cautiously bullish."})
	if !strings.Contains(got, "*Market Pulse Report: NVIDIA stock*") {
		t.Fatalf("missing report header: %q", got)
	}
	if !strings.Contains(got, "Sentiment is cautiously bullish.") {
		t.Fatalf("missing analysis body: %q", got)
	}
}

func TestFormatNewsListsEveryItem(t *testing.T) {
	digest := &domain.NewsDigest{NewsItems: []domain.NewsItem{
		{Title: "Fed holds rates", Source: "Reuters", Time: "1h ago", Category: domain.CategoryEconomy},
		{Title: "BTC tops 100k", Source: "CoinDesk", Time: "2h ago", Category: domain.CategoryCrypto},
	}}
	got := formatNews(digest)
	if !strings.HasPrefix(got, "*Latest Financial News:*") {
		t.Fatalf("missing header: %q", got)
	}
	for _, want := range []string{"*Fed holds rates* (Reuters) - _1h ago_", "*BTC tops 100k* (CoinDesk) - _2h ago_"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing line %q in %q", want, got)
		}
	}
}

func TestFormatStrategySections(t *testing.T) {
	got := formatStrategy(&domain.StrategyResult{
		Strategy:       "Scale into longs above resistance.",
		Rationale:      "Markup phase with volume confirmation.",
		RiskAssessment: "Medium risk, size accordingly.",
	})
	for _, want := range []string{"*Generated Trading Strategy:*", "*Strategy:*", "*Rationale:*", "*Risk Assessment:*"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing section %q in %q", want, got)
		}
	}
}

func TestApologyForKeepsArgumentErrorsVerbatim(t *testing.T) {
	derr := domain.InvalidArguments("Please provide a topic for the market pulse analysis. Usage: /pulse <topic>")
	if got := apologyFor(domain.OpSentimentAnalysis, derr); got != derr.HumanMessage {
		t.Fatalf("expected verbatim hint, got %q", got)
	}
}

func TestApologyForMapsUpstreamFailuresPerOperation(t *testing.T) {
	derr := domain.UpstreamFailure("model timeout")
	cases := []struct {
		op   domain.Operation
		want string
	}{
		{domain.OpSentimentAnalysis, pulseApology},
		{domain.OpNewsDigest, newsApology},
		{domain.OpStrategyGeneration, strategyApology},
	}
	for _, tc := range cases {
		if got := apologyFor(tc.op, derr); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.op, got, tc.want)
		}
	}
}

func TestApologyForNeverLeaksInternalDetail(t *testing.T) {
	derr := domain.UpstreamFailure("connection refused to 10.0.0.5:4317")
	got := apologyFor(domain.OpSentimentAnalysis, derr)
	if strings.Contains(got, "10.0.0.5") {
		t.Fatalf("internal detail leaked to chat: %q", got)
	}
}
