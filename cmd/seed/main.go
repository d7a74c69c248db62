package main

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"posbill/internal/catalog"
	"posbill/internal/config"
	"posbill/internal/seed"
	"posbill/internal/snapshot"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatalf("connect redis: %v", err)
	}
	defer client.Close()

	svc := catalog.New(snapshot.NewRedis(client), logger)
	if err := svc.Load(ctx); err != nil {
		logger.Fatalf("load catalog: %v", err)
	}

	if err := seed.Apply(ctx, svc); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied, catalog has %d products", len(svc.List()))
}
