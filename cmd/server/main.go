package main // Entry point package

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hostel-room-allocation/internal/allocation"
	"github.com/iliyamo/hostel-room-allocation/internal/config"
	"github.com/iliyamo/hostel-room-allocation/internal/database"
	"github.com/iliyamo/hostel-room-allocation/internal/handler"
	"github.com/iliyamo/hostel-room-allocation/internal/queue"
	"github.com/iliyamo/hostel-room-allocation/internal/repository"
	"github.com/iliyamo/hostel-room-allocation/internal/router"
	queue_publisher "github.com/iliyamo/hostel-room-allocation/internal/service"
	"github.com/iliyamo/hostel-room-allocation/internal/worker"
)

func main() {
	// Load .env if present; real deployments set the environment
	// directly and the file is optional.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store := repository.NewStore(db)
	svc := allocation.NewService(store, logger,
		allocation.WithPublisher(func(ctx context.Context, ev queue.AllocationApprovedEvent) {
			// Best-effort: a committed pairing is never rolled back
			// because the broker is unavailable.
			_ = queue_publisher.PublishAllocationApproved(ctx, ev)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background reconciliation worker retrying stale pending requests.
	go worker.New(svc, logger, config.LoadWorkerConfig()).Run(ctx)

	// Background consumer recording approved pairings to logs/allocation.log.
	go func() {
		if err := queue.StartAllocationConsumer(); err != nil {
			log.Printf("allocation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAllocation(e, handler.NewAllocationHandler(svc), cfg.JWTSecret,
		config.LoadCacheConfig(), config.NewRedisClient())

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
