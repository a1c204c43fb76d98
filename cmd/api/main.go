package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"jumparena/internal/database"
	"jumparena/internal/middleware"
	"jumparena/internal/modules/auth"
	"jumparena/internal/modules/booking"
	"jumparena/internal/modules/catalog"
	"jumparena/internal/modules/notification"
	"jumparena/internal/modules/payment"
	"jumparena/internal/modules/subscription"
	"jumparena/internal/modules/visit"
	jwtsvc "jumparena/internal/pkg/jwt"
	"jumparena/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	zoneRepo := repository.NewZoneRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	slotRepo := repository.NewScheduleSlotRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := notification.NewHub()
	defer hub.Close()
	notifService := notification.NewService(notifRepo, hub)
	notifHandler := notification.NewHandler(notifService, hub)

	authService := auth.NewService(accountRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(zoneRepo, serviceRepo, slotRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(db, notifService)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(db, notifService)
	paymentHandler := payment.NewHandler(paymentService)

	subscriptionService := subscription.NewService(db, notifService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	visitService := visit.NewService(db)
	visitHandler := visit.NewHandler(visitService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// front desk
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.StaffOnly())
		{
			bookingHandler.RegisterStaffRoutes(admin)
			paymentHandler.RegisterStaffRoutes(admin)
			visitHandler.RegisterStaffRoutes(admin)
		}

		// self service
		client := v1.Group("/client")
		client.Use(middleware.Auth(j), middleware.ClientOnly())
		{
			bookingHandler.RegisterClientRoutes(client)
			paymentHandler.RegisterClientRoutes(client)
			subscriptionHandler.RegisterClientRoutes(client)
			notifHandler.RegisterClientRoutes(client)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
