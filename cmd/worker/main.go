package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"classattend/internal/config"
	"classattend/internal/journal"
	"classattend/internal/queue"
	"classattend/internal/store"
)

// Worker follows the request journal the API publishes to Redis and logs each entry.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	if cfg.QueueBackend != "redis" {
		log.Fatalf("worker needs QUEUE_BACKEND=redis, got %q", cfg.QueueBackend)
	}

	redisClient, err := store.OpenRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("redis connect failed: %v", err)
	}
	defer redisClient.Close()

	q := queue.NewRedisQueue(redisClient.Client, cfg.JournalKey)

	log.Printf("[worker] following %s", cfg.JournalKey)
	if err := journal.Follow(ctx, q, journal.Logf); err != nil && ctx.Err() == nil {
		log.Fatalf("[worker] follow failed: %v", err)
	}
	log.Println("[worker] stopped")
}
