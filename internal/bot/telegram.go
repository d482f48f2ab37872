package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gainezis-fintrade/internal/command"
	"gainezis-fintrade/internal/domain"
	"gainezis-fintrade/internal/gateway"

	tele "gopkg.in/telebot.v3"
)

// Dispatcher routes parsed commands to prompt operations.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd command.Command) (*gateway.Result, *domain.DispatchError)
}

const (
	welcomeMessage = "Welcome to Gainezis-Fintrade Bot! I'm here to help you with AI-powered market insights. Try /help to see what I can do."

	helpMessage = `Here are the available commands:
/pulse <topic> - Get a deep sentiment analysis on a financial topic (e.g., /pulse NVIDIA stock).
/news - Fetches the latest 5 financial news headlines.
/strategyhelp - Shows how to use the strategy generation command.
/strategy <asset>;<risk>;<market_data> - Generate a trading strategy.
/help - Show this help message.`

	strategyHelpMessage = `*How to use the /strategy command:*

The command requires 3 parameters separated by a semicolon ';'.

*/strategy <assetType>;<riskAppetite>;<marketData>*

*Parameters:*
1.  *assetType*: Must be one of ` + "`crypto`, `options`, or `forex`" + `.
2.  *riskAppetite*: Must be one of ` + "`low`, `medium`, or `high`" + `.
3.  *marketData*: A short text describing the current market situation.

*Example:*
` + "`/strategy crypto;high;BTC is showing high volatility and breaking resistance.`"

	pulseApology    = "Sorry, I couldn't complete the analysis. Please try again later."
	newsApology     = "Sorry, I couldn't fetch the news. Please try again later."
	strategyApology = "Sorry, I couldn't generate a strategy at this time."
)

// StartTelegramBot wires the chat transport and begins long-polling.
// A missing token disables the bot without affecting the web transport.
func StartTelegramBot(dispatcher Dispatcher) *tele.Bot {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(welcomeMessage)
	})

	b.Handle("/help", func(c tele.Context) error {
		return c.Send(helpMessage)
	})

	b.Handle("/strategyhelp", func(c tele.Context) error {
		return c.Send(strategyHelpMessage, tele.ModeMarkdown)
	})

	b.Handle("/pulse", func(c tele.Context) error {
		payload := strings.TrimSpace(c.Message().Payload)
		cmd, derr := command.Parse("/pulse " + payload)
		if derr != nil {
			return c.Send(derr.HumanMessage)
		}

		// Ack first: sentiment analysis has no progress channel.
		if err := c.Send(fmt.Sprintf("🧠 Analyzing market pulse for %q... This may take a moment.", cmd.Args[0])); err != nil {
			return err
		}

		result, derr := dispatcher.Dispatch(context.Background(), cmd)
		if derr != nil {
			return c.Send(apologyFor(domain.OpSentimentAnalysis, derr))
		}
		return c.Send(formatPulse(cmd.Args[0], result.Payload.(*domain.PulseResult)), tele.ModeMarkdown)
	})

	b.Handle("/news", func(c tele.Context) error {
		if err := c.Send("📰 Fetching the latest financial news..."); err != nil {
			return err
		}
		cmd, derr := command.Parse("/news")
		if derr != nil {
			return c.Send(derr.HumanMessage)
		}
		result, derr := dispatcher.Dispatch(context.Background(), cmd)
		if derr != nil {
			return c.Send(apologyFor(domain.OpNewsDigest, derr))
		}
		return c.Send(formatNews(result.Payload.(*domain.NewsDigest)), tele.ModeMarkdown)
	})

	b.Handle("/strategy", func(c tele.Context) error {
		cmd, derr := command.Parse("/strategy " + c.Message().Payload)
		if derr != nil {
			return c.Send(derr.HumanMessage)
		}

		ack := fmt.Sprintf("🤖 Generating a *%s* risk strategy for *%s*...", cmd.Args[1], cmd.Args[0])
		if err := c.Send(ack, tele.ModeMarkdown); err != nil {
			return err
		}

		result, derr := dispatcher.Dispatch(context.Background(), cmd)
		if derr != nil {
			return c.Send(apologyFor(domain.OpStrategyGeneration, derr))
		}
		return c.Send(formatStrategy(result.Payload.(*domain.StrategyResult)), tele.ModeMarkdown)
	})

	b.Handle(tele.OnText, func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		if strings.HasPrefix(text, "/") {
			return c.Send("Unknown command. Try /help to see what I can do.")
		}
		// Non-command chatter dispatches nothing.
		log.Printf("received message from %d: %s", c.Chat().ID, text)
		return nil
	})

	log.Println("Gainezis-Fintrade bot started")
	go b.Start()
	return b
}

// apologyFor keeps argument errors verbatim and wraps everything else
// in the per-operation plain-text apology.
func apologyFor(op domain.Operation, derr *domain.DispatchError) string {
	if derr.Kind == domain.ErrInvalidArguments || derr.Kind == domain.ErrUnknownCommand {
		return derr.HumanMessage
	}
	switch op {
	case domain.OpSentimentAnalysis:
		return pulseApology
	case domain.OpNewsDigest:
		return newsApology
	case domain.OpStrategyGeneration:
		return strategyApology
	default:
		return "Sorry, something went wrong. Please try again later."
	}
}

func formatPulse(topic string, res *domain.PulseResult) string {
	return fmt.Sprintf("*Market Pulse Report: %s*\n\n*Analysis:*\n%s", topic, res.Analysis)
}

func formatNews(digest *domain.NewsDigest) string {
	var sb strings.Builder
	sb.WriteString("*Latest Financial News:*\n\n")
	for _, item := range digest.NewsItems {
		fmt.Fprintf(&sb, "*%s* (%s) - _%s_\n\n", item.Title, item.Source, item.Time)
	}
	return sb.String()
}

func formatStrategy(res *domain.StrategyResult) string {
	return fmt.Sprintf(
		"*Generated Trading Strategy:*\n\n*Strategy:*\n%s\n\n*Rationale:*\n%s\n\n*Risk Assessment:*\n%s",
		res.Strategy,
		res.Rationale,
		res.RiskAssessment,
	)
}
