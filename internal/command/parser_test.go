package command

import (
	"reflect"
	"testing"

	"gainezis-fintrade/internal/domain"
)

func TestParseStrategyValid(t *testing.T) {
	cmd, derr := Parse("/strategy crypto;high;BTC is breaking resistance")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if cmd.Operation != domain.OpStrategyGeneration {
		t.Fatalf("expected strategyGeneration, got %s", cmd.Operation)
	}
	want := []string{"crypto", "high", "BTC is breaking resistance"}
	if !reflect.DeepEqual(cmd.Args, want) {
		t.Fatalf("expected args %v, got %v", want, cmd.Args)
	}
}

func TestParseStrategyTrimsAndUnquotes(t *testing.T) {
	cmd, derr := Parse(`/strategy crypto ; high ; "BTC breaking resistance with rising volume"`)
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if cmd.Args[2] != "BTC breaking resistance with rising volume" {
		t.Fatalf("expected unquoted market text, got %q", cmd.Args[2])
	}
}

func TestParseStrategyRejectsBadEnums(t *testing.T) {
	cases := []string{
		"/strategy stocks;high;text",
		"/strategy crypto;extreme;text",
	}
	for _, raw := range cases {
		if _, derr := Parse(raw); derr == nil || derr.Kind != domain.ErrInvalidArguments {
			t.Fatalf("expected InvalidArguments for %q, got %v", raw, derr)
		}
	}
}

func TestParseStrategyRejectsWrongFieldCount(t *testing.T) {
	for _, raw := range []string{"/strategy crypto;high", "/strategy crypto;high;;text", "/strategy crypto;high; "} {
		if _, derr := Parse(raw); derr == nil || derr.Kind != domain.ErrInvalidArguments {
			t.Fatalf("expected InvalidArguments for %q, got %v", raw, derr)
		}
	}
}

func TestParsePulse(t *testing.T) {
	cmd, derr := Parse("/pulse NVIDIA stock")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if cmd.Operation != domain.OpSentimentAnalysis {
		t.Fatalf("expected sentimentAnalysis, got %s", cmd.Operation)
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "NVIDIA stock" {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
}

func TestParsePulseWithoutTopic(t *testing.T) {
	_, derr := Parse("/pulse")
	if derr == nil || derr.Kind != domain.ErrInvalidArguments {
		t.Fatalf("expected InvalidArguments, got %v", derr)
	}
	if derr.HumanMessage != PulseUsage {
		t.Fatalf("expected verbatim usage hint, got %q", derr.HumanMessage)
	}
}

func TestParseNews(t *testing.T) {
	cmd, derr := Parse("/news")
	if derr != nil {
		t.Fatalf("unexpected error: %v", derr)
	}
	if cmd.Operation != domain.OpNewsDigest {
		t.Fatalf("expected newsDigest, got %s", cmd.Operation)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, derr := Parse("/moon BTC")
	if derr == nil || derr.Kind != domain.ErrUnknownCommand {
		t.Fatalf("expected UnknownCommand, got %v", derr)
	}
}

func TestParseIsPure(t *testing.T) {
	raw := "/strategy forex;low;EURUSD consolidating under 1.10"
	first, err1 := Parse(raw)
	second, err2 := Parse(raw)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parsing is not deterministic: %+v vs %+v", first, second)
	}
}
