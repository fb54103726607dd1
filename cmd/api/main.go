package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/dineflow/dineflow/internal/adapter/handler"
	"github.com/dineflow/dineflow/internal/adapter/notifier"
	"github.com/dineflow/dineflow/internal/adapter/payment"
	"github.com/dineflow/dineflow/internal/adapter/repository/postgres"
	"github.com/dineflow/dineflow/internal/core/ports"
	"github.com/dineflow/dineflow/internal/core/services"
	"github.com/dineflow/dineflow/internal/platform/config"
	"github.com/dineflow/dineflow/internal/platform/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	scheduleRepo := postgres.NewScheduleRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	holdRepo := postgres.NewHoldRepository(db)
	waitlistRepo := postgres.NewWaitlistRepository(db)

	var gateway ports.PaymentGateway
	var verifier handler.EventVerifier
	if cfg.OmiseSecretKey != "" {
		omiseGateway, err := payment.NewOmiseGateway(cfg.OmisePublicKey, cfg.OmiseSecretKey)
		if err != nil {
			log.Fatalf("Failed to initialize payment gateway: %v", err)
		}
		gateway = omiseGateway
		verifier = omiseGateway
	} else {
		log.Println("No payment keys configured, charges will be captured offline")
		gateway = payment.NewOffline()
	}

	var notify ports.Notifier
	if cfg.MQURL != "" {
		mq, err := notifier.NewAMQP(cfg.MQURL, cfg.MQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to message broker: %v", err)
		}
		defer mq.Close()
		notify = mq
	} else {
		log.Println("No message broker configured, notifications go to the log")
		notify = notifier.NewConsole()
	}

	cache := services.NewSlotCache(redisClient, 5*time.Minute)

	waitlistService := services.NewWaitlistService(waitlistRepo, notify, redisClient, cfg.ClaimWindow())
	availabilityService := services.NewAvailabilityService(scheduleRepo, slotRepo, cache, cfg.HorizonDays)
	bookingService := services.NewBookingService(slotRepo, bookingRepo, holdRepo, gateway, notify, waitlistService, cache, cfg.HoldTTL())
	reaperService := services.NewReaperService(bookingRepo, holdRepo, waitlistRepo, slotRepo, waitlistService, cache, cfg.AbandonAfter())

	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	scheduleHandler := handler.NewScheduleHandler(availabilityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	waitlistHandler := handler.NewWaitlistHandler(waitlistService)
	webhookHandler := handler.NewWebhookHandler(bookingService, verifier)
	jobsHandler := handler.NewJobsHandler(availabilityService, reaperService)

	rootCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	go reaperService.RunBackground(rootCtx, cfg.ReapInterval())

	go func() {
		if err := availabilityService.MaterializeUpcomingSlots(rootCtx); err != nil {
			log.Printf("Initial slot materialization failed: %v", err)
		}
		ticker := time.NewTicker(cfg.MaterializeInterval())
		defer ticker.Stop()
		for {
			select {
			case <-rootCtx.Done():
				return
			case <-ticker.C:
				if err := availabilityService.MaterializeUpcomingSlots(rootCtx); err != nil {
					log.Printf("Slot materialization failed: %v", err)
				}
			}
		}
	}()

	mux := http.NewServeMux()

	mux.HandleFunc("/availability", availabilityHandler.GetAvailability)
	mux.HandleFunc("/schedules", scheduleHandler.CreateSchedule)
	mux.HandleFunc("/schedules/deactivate", scheduleHandler.DeactivateSchedule)
	mux.HandleFunc("/bookings", bookingHandler.CreateBooking)
	mux.HandleFunc("/bookings/cancel", bookingHandler.CancelBooking)
	mux.HandleFunc("/bookings/checkin", bookingHandler.CheckIn)
	mux.HandleFunc("/bookings/noshow", bookingHandler.MarkNoShow)
	mux.HandleFunc("/bookings/complete", bookingHandler.Complete)
	mux.HandleFunc("/holds", bookingHandler.CreateHold)
	mux.HandleFunc("/waitlist", waitlistHandler.Join)
	mux.HandleFunc("/webhooks/payment", webhookHandler.PaymentWebhook)
	mux.HandleFunc("/jobs/materialize", jobsHandler.Materialize)
	mux.HandleFunc("/jobs/reap", jobsHandler.Reap)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	cancelJobs()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
