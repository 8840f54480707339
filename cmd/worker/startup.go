package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// startServices performs startup health checks and exposes the probe
// endpoints.
func startServices(cfg *Config) error {
	log.Println("============================================")
	log.Println("BlogHub Worker Starting...")
	log.Println("============================================")

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Checking Redis connection...")
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis check failed: %w", err)
	}
	log.Println("Redis connection: OK")

	go startHealthCheckServer(cfg.HealthPort)

	return nil
}

// startHealthCheckServer serves liveness and readiness probes.
func startHealthCheckServer(port string) {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"bloghub-worker"}`))
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	log.Printf("[Health] Starting health check server on :%s", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Printf("[Health] Failed to start: %v", err)
	}
}
