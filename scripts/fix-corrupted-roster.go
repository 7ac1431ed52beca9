package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/pokesearch/internal/config"
	"github.com/KirkDiggler/pokesearch/internal/redis"
	"github.com/KirkDiggler/pokesearch/internal/repositories/roster"
)

const defaultRedisAddr = "localhost:6379"

// storedRoster mirrors the JSON value written by the Redis roster repository
type storedRoster struct {
	Names    []string  `json:"names"`
	StoredAt time.Time `json:"stored_at"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	addr := redisAddr(cfg)
	client, err := redis.NewClient(addr, &redis.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	ctx := context.Background()

	if err := redis.Ping(ctx, client, 5*time.Second); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Printf("Connected to Redis: %s (db %d)\n", addr, cfg.Redis.DB)
	fmt.Println("Scanning stored suggestion rosters...")

	iter := client.Scan(ctx, 0, roster.KeyPattern, 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		stored, problem := inspectRoster(data)
		if problem != "" {
			fmt.Printf("✗ %s: %s\n", key, problem)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		ttl, err := client.TTL(ctx, key).Result()
		if err == nil && ttl < 0 {
			fmt.Printf("! %s has no expiry (%d names, stored %s)\n", key, len(stored.Names), stored.StoredAt.Format(time.RFC3339))
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted entries\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted rosters found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDelete these entries so the next run refetches them? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}

// redisAddr uses the tool's POKESEARCH_REDIS_ADDR, falling back to a local instance
func redisAddr(cfg *config.Config) string {
	if cfg.Redis.Addr == "" {
		return defaultRedisAddr
	}
	return cfg.Redis.Addr
}

// inspectRoster decodes a stored value and describes what is wrong with it, if anything
func inspectRoster(data string) (*storedRoster, string) {
	var stored storedRoster
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, "corrupted JSON"
	}
	if len(stored.Names) == 0 || stored.StoredAt.IsZero() {
		return &stored, fmt.Sprintf("incomplete roster: %d names, stored_at %s", len(stored.Names), stored.StoredAt.Format(time.RFC3339))
	}
	return &stored, ""
}
