package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/chamadospro/field-scheduler/internal/cache"
	"github.com/chamadospro/field-scheduler/internal/config"
	dbpkg "github.com/chamadospro/field-scheduler/internal/db"
	"github.com/chamadospro/field-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	slotCache := newSlotCache(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, slotCache)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newSlotCache conecta no Redis. Sem Redis a API sobe do mesmo jeito,
// apenas sem cache de disponibilidade (o cache aceita receiver nil).
func newSlotCache(cfg *config.Config) *cache.SlotCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis indisponível (%v), cache de slots desligado", err)
		return nil
	}

	return cache.NewSlotCache(rdb, cfg.SlotCacheTTL)
}
