package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-stockledger/internal/config"
	"go-stockledger/internal/handler"
	"go-stockledger/internal/middleware"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/service"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// 2. Database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate schema")
	}
	logrus.Info("database connection established")

	// 3. WebSocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency injection
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(productRepo, inventoryRepo, txRepo, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, inventoryRepo, wsHub)
	authService := service.NewAuthService(userRepo)
	reportService := service.NewReportService(productRepo, inventoryRepo, txRepo)

	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stock Ledger API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	app.Post("/register-user", authHandler.Register)
	app.Post("/log-in", authHandler.Login)
	app.Post("/logout", middleware.RequireAuth(userRepo), authHandler.Logout)

	app.Post("/create-product", catalogHandler.CreateProduct)
	app.Post("/add-product", catalogHandler.AddProduct)
	app.Post("/update-stock", ledgerHandler.UpdateStock)
	app.Get("/get-all-records", catalogHandler.GetAllRecords)
	app.Get("/get-item", catalogHandler.GetItem)
	app.Delete("/delete-product", catalogHandler.DeleteProduct)

	// Reporting requires authentication; the overview is admin-only.
	reports := app.Group("/reports", middleware.RequireAuth(userRepo))
	reports.Get("/stock-movement", reportHandler.StockMovement)
	reports.Get("/overview", middleware.RequireRole("admin"), reportHandler.Overview)

	transactions := app.Group("/transactions", middleware.RequireAuth(userRepo))
	transactions.Get("/", ledgerHandler.GetTransactions)
	transactions.Get("/product/:id", ledgerHandler.GetProductHistory)

	// WebSocket feed of ledger events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Panic("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}
