// Package command parses raw slash-command text into transport-neutral
// commands. Parsing is pure: the same input always yields the same
// Command, and nothing here talks to the network.
package command

import (
	"strings"

	"gainezis-fintrade/internal/domain"
)

// Command is one parsed chat command. Raw keeps the undivided argument
// payload; Args holds the ordered sub-fields after operation-specific
// splitting.
type Command struct {
	Operation domain.Operation
	Raw       string
	Args      []string
}

const (
	PulseUsage        = "Please provide a topic for the market pulse analysis. Usage: /pulse <topic>"
	strategyNoArgs    = "Please provide arguments for the strategy. Use /strategyhelp for more info."
	strategyBadCount  = "Invalid format. Please provide all 3 arguments separated by semicolons. Use /strategyhelp for more info."
	strategyBadValues = "Invalid asset type or risk appetite. Use /strategyhelp for allowed values."
)

// strategyArgCount is fixed: asset type, risk appetite, market description.
const strategyArgCount = 3

// Parse extracts the operation and argument payload from a raw line of
// text. The line must start with a slash-prefixed token; everything
// after the first whitespace run is the payload.
func Parse(text string) (Command, *domain.DispatchError) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{}, domain.UnknownCommand("Not a command: %q. Try /help to see what I can do.", trimmed)
	}

	name, payload := splitCommand(trimmed)
	switch name {
	case "/pulse":
		return parsePulse(payload)
	case "/news":
		return Command{Operation: domain.OpNewsDigest, Raw: payload}, nil
	case "/strategy":
		return parseStrategy(payload)
	default:
		return Command{}, domain.UnknownCommand("Unknown command: %s. Try /help to see what I can do.", name)
	}
}

func splitCommand(text string) (name, payload string) {
	idx := strings.IndexFunc(text, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' })
	if idx < 0 {
		return strings.ToLower(text), ""
	}
	return strings.ToLower(text[:idx]), strings.TrimSpace(text[idx+1:])
}

func parsePulse(payload string) (Command, *domain.DispatchError) {
	topic := strings.TrimSpace(payload)
	if topic == "" {
		return Command{}, domain.InvalidArguments("%s", PulseUsage)
	}
	return Command{
		Operation: domain.OpSentimentAnalysis,
		Raw:       payload,
		Args:      []string{topic},
	}, nil
}

func parseStrategy(payload string) (Command, *domain.DispatchError) {
	if strings.TrimSpace(payload) == "" {
		return Command{}, domain.InvalidArguments("%s", strategyNoArgs)
	}

	parts := strings.Split(payload, ";")
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		args = append(args, unquote(strings.TrimSpace(part)))
	}
	if len(args) != strategyArgCount {
		return Command{}, domain.InvalidArguments("%s", strategyBadCount)
	}
	for _, arg := range args {
		if arg == "" {
			return Command{}, domain.InvalidArguments("%s", strategyBadCount)
		}
	}

	if !domain.AssetType(args[0]).IsValid() || !domain.RiskAppetite(args[1]).IsValid() {
		return Command{}, domain.InvalidArguments("%s", strategyBadValues)
	}

	return Command{
		Operation: domain.OpStrategyGeneration,
		Raw:       payload,
		Args:      args,
	}, nil
}

// unquote strips one pair of surrounding double quotes, so that
// `/strategy crypto;high;"BTC breaking out"` carries the bare text.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
