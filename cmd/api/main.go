package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"classattend/internal/config"
	"classattend/internal/httpmiddleware"
	"classattend/internal/journal"
	"classattend/internal/metrics"
	"classattend/internal/mockapi"
	"classattend/internal/queue"
	"classattend/internal/server"
	"classattend/internal/store"
)

func main() {
	cfg := config.Load()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mockMetrics, err := metrics.NewMock(reg)
	if err != nil {
		return err
	}

	checks := map[string]func(context.Context) bool{}
	var q queue.Queue
	if cfg.QueueBackend == "redis" {
		redisClient := store.NewRedis(cfg.RedisAddr)
		defer redisClient.Close()
		if !redisClient.Healthy(ctx) {
			log.Printf("warning: redis not reachable at %s, journal entries will be dropped until it is", cfg.RedisAddr)
		}
		checks["redis"] = redisClient.Healthy
		q = queue.NewRedisQueue(redisClient.Client, cfg.JournalKey)
	} else {
		mem := queue.NewInMemory(256)
		q = mem
		go func() {
			if err := journal.Follow(ctx, mem, journal.Logf); err != nil && ctx.Err() == nil {
				log.Printf("journal follower stopped: %v", err)
			}
		}()
	}

	svc := mockapi.NewService(mockapi.NewStore(mockapi.DefaultSeed(time.Now())), mockapi.Options{
		Delay:    cfg.MockDelay,
		BaseURL:  cfg.BaseURL,
		Metrics:  mockMetrics,
		Recorder: journal.NewRecorder(q, 2*time.Second),
	})
	log.Printf("mock API ready: delay=%s base=%s journal=%s", cfg.MockDelay, cfg.BaseURL, cfg.QueueBackend)

	r := server.NewRouter(server.Deps{
		Service:     svc,
		Gatherer:    reg,
		Limiter:     httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin),
		CORSOrigins: cfg.CORSOrigins,
		Checks:      checks,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}
	log.Println("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}
