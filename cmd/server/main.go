package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"gainezis-fintrade/internal/bot"
	"gainezis-fintrade/internal/cache"
	"gainezis-fintrade/internal/config"
	"gainezis-fintrade/internal/db"
	"gainezis-fintrade/internal/flow"
	"gainezis-fintrade/internal/gateway"
	"gainezis-fintrade/internal/genai"
	"gainezis-fintrade/internal/handler"
	"gainezis-fintrade/internal/repository"
	"gainezis-fintrade/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "gainezis-fintrade/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initPostgresFunc       = db.InitPostgres
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newGenaiClientFunc     = genai.NewClient
	newFeedRepoFunc        = repository.NewFeedRepository
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Gainezis-Fintrade API
// @version         1.0
// @description     AI-powered market insight and trading assistant API.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	client := newGenaiClientFunc(cfg.OpenAIAPIKey, cfg.OpenAIModel, time.Duration(cfg.GenerateTimeoutSecs)*time.Second, tracer)

	gw := gateway.New(
		tracer,
		flow.NewPulse(tracer, client),
		flow.NewNews(tracer, client),
		flow.NewStrategy(tracer, client),
		flow.NewOpportunities(tracer, client),
		flow.NewSpeech(tracer, client),
		flow.NewTrade(tracer, client),
	)

	if cache.Client != nil {
		gw = gw.WithResponseCache(cache.NewResponseCache(cache.Client), time.Duration(cfg.ResponseCacheTTLSecs)*time.Second)
	}

	var feed handler.FeedLister
	if db.Pool != nil {
		feedRepo := newFeedRepoFunc(db.Pool, tracer)
		if err := feedRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run feed migrations: %v", err)
		}
		gw = gw.WithFeedRecorder(feedRepo)
		feed = feedRepo
	}

	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(gw)

	h := newHandlerFunc(tracer, gw, feed)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("gainezis-fintrade"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func httpAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}
