package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"gainezis-fintrade/internal/bot"
	"gainezis-fintrade/internal/config"
	"gainezis-fintrade/internal/genai"
	"gainezis-fintrade/internal/handler"
	"gainezis-fintrade/internal/repository"

	"github.com/gin-gonic/gin"
	tele "gopkg.in/telebot.v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	restore := stubServerDeps()
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func TestHTTPAddr(t *testing.T) {
	if got := httpAddr(0); got != ":8080" {
		t.Fatalf("expected default :8080, got %s", got)
	}
	if got := httpAddr(9090); got != ":9090" {
		t.Fatalf("expected :9090, got %s", got)
	}
}

func stubServerDeps() func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitPostgres := initPostgresFunc
	origInitRedis := initRedisFunc
	origInitTracer := initTracerFunc
	origNewGenaiClient := newGenaiClientFunc
	origNewFeedRepo := newFeedRepoFunc
	origStartTelegram := startTelegramBotFunc
	origNewHandler := newHandlerFunc
	origNewRouter := newRouterFunc
	origSetupSignal := setupSignalNotify
	origWait := waitForSignalFunc
	origStartHTTP := startHTTPServerFunc
	origShutdownHTTP := shutdownHTTPServerFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{OpenAIModel: "gpt-4o-mini", GenerateTimeoutSecs: 1, HTTPPort: 8080}
	}
	initPostgresFunc = func(context.Context) {}
	initRedisFunc = func(context.Context) {}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	newGenaiClientFunc = func(string, string, time.Duration, trace.Tracer) *genai.Client {
		return genai.NewClient("", "gpt-4o-mini", time.Second, nil)
	}
	newFeedRepoFunc = func(repository.PgxPool, trace.Tracer) *repository.FeedRepository { return nil }
	startTelegramBotFunc = func(bot.Dispatcher) *tele.Bot { return nil }
	newHandlerFunc = handler.New
	newRouterFunc = func(...gin.OptionFunc) *gin.Engine { return gin.New() }
	setupSignalNotify = func(c chan<- os.Signal, sig ...os.Signal) {}
	waitForSignalFunc = func(<-chan os.Signal) {}
	startHTTPServerFunc = func(*http.Server) error { return http.ErrServerClosed }
	shutdownHTTPServerFunc = func(*http.Server, context.Context) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initPostgresFunc = origInitPostgres
		initRedisFunc = origInitRedis
		initTracerFunc = origInitTracer
		newGenaiClientFunc = origNewGenaiClient
		newFeedRepoFunc = origNewFeedRepo
		startTelegramBotFunc = origStartTelegram
		newHandlerFunc = origNewHandler
		newRouterFunc = origNewRouter
		setupSignalNotify = origSetupSignal
		waitForSignalFunc = origWait
		startHTTPServerFunc = origStartHTTP
		shutdownHTTPServerFunc = origShutdownHTTP
	}
}
