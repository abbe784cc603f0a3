package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"skylink/internal/auth"
	"skylink/internal/config"
	"skylink/internal/database/migrations"
	"skylink/internal/fleet"
	fleetdb "skylink/internal/fleet/db"
	"skylink/internal/fleet/fleet_api"
	"skylink/internal/flights"
	flightdb "skylink/internal/flights/db"
	"skylink/internal/flights/flight_api"
	"skylink/internal/kafka"
	"skylink/internal/logger"
	"skylink/internal/models"
	"skylink/internal/notify"
	notifydb "skylink/internal/notify/db"
	"skylink/internal/notify/notify_api"
	"skylink/internal/orders"
	orderdb "skylink/internal/orders/db"
	"skylink/internal/orders/order_api"
	orderredis "skylink/internal/orders/redis"
	"skylink/internal/tickets"
	ticketdb "skylink/internal/tickets/db"
	"skylink/internal/tickets/ticket_api"
)

func connectPostgres(cfg *config.Config, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")

	bunDB := bun.NewDB(sqldb, pgdialect.New())
	bunDB.RegisterModel((*models.FlightCrew)(nil))
	return bunDB
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting SkyLink service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg, log)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, migrations.DefaultOptions())
	if err := runner.RunMigrations(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}
	log.Info("DATABASE", "Schema migrations applied")

	redisClient := connectRedis(ctx, cfg, log)
	defer redisClient.Close()

	var ticketEvents tickets.EventPublisher
	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.Topics.TicketIssued}); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topics.TicketIssued)
		defer producer.Close()
		ticketEvents = producer

		consumer = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.TicketIssued, cfg.Kafka.GroupID)
		defer consumer.Close()
		log.Info("KAFKA", "Kafka producer and consumer initialized")
	} else {
		log.Warn("KAFKA", "Kafka disabled, ticket events will not be streamed")
	}

	flightService := flights.NewFlightService(&flightdb.DB{Bun: bunDB})
	ticketService := tickets.NewTicketService(&ticketdb.DB{Bun: bunDB}, ticketEvents, log)
	seatHolds := orderredis.NewSeatHolds(redisClient, cfg.Redis.SeatHold, cfg.Redis.HoldPrefix)
	orderService := orders.NewOrderService(&orderdb.DB{Bun: bunDB}, seatHolds, ticketService, log)
	fleetService := fleet.NewFleetService(&fleetdb.DB{Bun: bunDB})

	var telegramSender notify.TelegramDelivery
	if cfg.Telegram.Enabled && cfg.Telegram.Token != "" {
		sender, err := notify.NewTelegramSender(cfg.Telegram.Token)
		if err != nil {
			log.Warn("TELEGRAM", fmt.Sprintf("Telegram bot unavailable: %v", err))
		} else {
			telegramSender = sender
			log.Info("TELEGRAM", "Telegram bot initialized")
		}
	}

	renderer := notify.NewPDFRenderer(cfg.Notify.TmpDir, notify.NewQRGenerator(cfg.Notify.QRSecret))
	emailSender := notify.NewEmailSender(cfg.Email)
	notifyService := notify.NewService(&notifydb.DB{Bun: bunDB}, renderer, emailSender, telegramSender, log)

	flightHandler := flight_api.NewHandler(flightService, log)
	ticketHandler := ticket_api.NewHandler(ticketService, log)
	orderHandler := order_api.NewHandler(orderService, log)
	fleetHandler := fleet_api.NewHandler(fleetService, log)
	notifyHandler := notify_api.NewHandler(notifyService, log)

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		if cfg.Auth.Enabled && cfg.Auth.OIDCIssuer != "" {
			r.Use(auth.Middleware(cfg.Auth.OIDCIssuer))
			log.Info("AUTH", "OIDC middleware applied to API routes")
		} else {
			log.Warn("AUTH", "Authentication disabled, running open")
		}

		fleetHandler.RegisterRoutes(r)
		flightHandler.RegisterRoutes(r)
		ticketHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
		notifyHandler.RegisterRoutes(r)
	})

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	if consumer != nil {
		go consumer.Start(workerCtx, notifyService.HandleTicketIssued)
		log.Info("KAFKA", "Ticket delivery consumer started")
	}
	go notifyService.RunSweeper(workerCtx, cfg.Notify.SweepInterval)
	log.Info("APP", "Outbox sweeper started")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("SkyLink service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	cancelWorkers()

	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "SkyLink service shutdown complete")
	}
}
