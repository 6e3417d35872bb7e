package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/alysonbarber/agenda-api/internal/audit"
	"github.com/alysonbarber/agenda-api/internal/config"
	"github.com/alysonbarber/agenda-api/internal/db"
	infraRepo "github.com/alysonbarber/agenda-api/internal/infra/repository"
	"github.com/alysonbarber/agenda-api/internal/routes"
	"github.com/alysonbarber/agenda-api/internal/usecase/booking"
)

func main() {
	cfg := config.Load()

	database := db.NewDB(cfg)

	rdb := newRedis(cfg)

	r := gin.Default()
	routes.RegisterRoutes(r, database, rdb, cfg)

	go runCleanupLoop(database, cfg)

	log.Printf("🚀 %s API ouvindo em %s", cfg.ShopName, cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newRedis conecta ao Redis do snapshot de disponibilidade. Sem Redis a
// API sobe normalmente, só sem cache de exibição.
func newRedis(cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis indisponível (%v), seguindo sem cache", err)
		return nil
	}

	return rdb
}

// runCleanupLoop apaga agendamentos fora da janela de retenção, uma vez
// por hora.
func runCleanupLoop(database *gorm.DB, cfg *config.Config) {
	repo := infraRepo.NewAppointmentGormRepository(database)
	dispatcher := audit.NewDispatcher(audit.New(database))

	uc := booking.NewCleanupOldAppointments(
		repo,
		dispatcher,
		cfg.RetentionDays,
		cfg.ShopTimezone,
	)

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		deleted, err := uc.Execute(ctx)
		cancel()

		if err != nil {
			log.Printf("cleanup: %v", err)
			continue
		}

		if deleted > 0 {
			log.Printf("cleanup: %d agendamentos antigos removidos", deleted)
		}
	}
}
