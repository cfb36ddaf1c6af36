package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/api"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/events"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/repository"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/schedule"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/service"
	"github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/internal/tracing"
	_ "github.com/bartoszkordek/AGH-Praca-in-ynierska-back-end-sub004/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("trainings-service")

	shutdownTracer, err := tracing.InitTracerProvider("trainings-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations()
		return
	}

	db := connectDB()
	defer db.Close()

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}
	eventPublisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	userRepo := repository.NewPostgresUserRepository(db)
	typeRepo := repository.NewPostgresTrainingTypeRepository(db)
	locationRepo := repository.NewPostgresLocationRepository(db)
	groupRepo := repository.NewPostgresGroupTrainingRepository(db)
	individualRepo := repository.NewPostgresIndividualTrainingRepository(db)

	// one locker and one checker shared by both services so a trainer busy
	// with an individual training cannot be double-booked by a group one
	locker := schedule.NewResourceLocker()
	occupancy := service.NewOccupancyChecker(groupRepo, individualRepo)

	groupService := service.NewGroupTrainingService(
		groupRepo, typeRepo, locationRepo, userRepo, occupancy, locker, eventPublisher, nil)
	individualService := service.NewIndividualTrainingService(
		individualRepo, locationRepo, userRepo, occupancy, locker, eventPublisher, nil)

	groupHandler := api.NewGroupTrainingHandler(groupService)
	individualHandler := api.NewIndividualTrainingHandler(individualService)
	catalogHandler := api.NewCatalogHandler(typeRepo, locationRepo)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "trainings-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	v1.Get("/training-types", catalogHandler.ListTrainingTypes)
	v1.Get("/locations", catalogHandler.ListLocations)

	trainings := v1.Group("/group-trainings")
	trainings.Use(api.AuthMiddleware())
	trainings.Get("/", groupHandler.List)
	trainings.Post("/", groupHandler.Create)
	trainings.Get("/mine", groupHandler.ListMine)
	trainings.Get("/:id", groupHandler.GetDetails)
	trainings.Put("/:id", groupHandler.Update)
	trainings.Delete("/:id", groupHandler.Delete)
	trainings.Post("/:id/enroll", groupHandler.Enroll)
	trainings.Delete("/:id/enroll", groupHandler.CancelEnrollment)

	individual := v1.Group("/individual-trainings")
	individual.Use(api.AuthMiddleware())
	individual.Post("/", individualHandler.Request)
	individual.Get("/mine", individualHandler.ListMine)
	individual.Get("/assigned", individualHandler.ListAssigned)
	individual.Post("/:id/accept", individualHandler.Accept)
	individual.Post("/:id/reject", individualHandler.Reject)
	individual.Delete("/:id", individualHandler.Cancel)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8003"
	}

	log.Printf("Listening trainings-service on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations() {
	fmt.Println("Running database migrations...")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPassword, dbHost, dbPort, dbName,
	)

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
