package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vetlinkbr/vetlink-telehealth/internal/cache"
	"github.com/vetlinkbr/vetlink-telehealth/internal/config"
	dbpkg "github.com/vetlinkbr/vetlink-telehealth/internal/db"
	infraRepo "github.com/vetlinkbr/vetlink-telehealth/internal/infra/repository"
	"github.com/vetlinkbr/vetlink-telehealth/internal/middleware"
	"github.com/vetlinkbr/vetlink-telehealth/internal/routes"
	"github.com/vetlinkbr/vetlink-telehealth/internal/sweeper"
	ucBooking "github.com/vetlinkbr/vetlink-telehealth/internal/usecase/booking"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	redisClient := cache.NewClient(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisClient)

	// Varredura de no-show: confirma → faltou quando o slot expira sem
	// nenhuma sessão iniciada.
	markMissedUC := ucBooking.NewMarkMissedBookings(infraRepo.NewBookingGormRepository(db))
	sweeper.New(markMissedUC).Run(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
