package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/agencydesk/agencyflow/configs"
	"github.com/agencydesk/agencyflow/internal/api/handlers"
	"github.com/agencydesk/agencyflow/internal/api/middleware"
	job "github.com/agencydesk/agencyflow/internal/jobs"
	"github.com/agencydesk/agencyflow/internal/queue"
	"github.com/agencydesk/agencyflow/internal/repository"
	"github.com/agencydesk/agencyflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Api-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contentRepo := repository.NewContentRepository(db)
	contentMediaRepo := repository.NewContentMediaRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	requestRepo := repository.NewContentRequestRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	giveawayRepo := repository.NewGiveawayRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	r2Service := service.NewR2Service(*cfg)
	contentService := service.NewContentService(db, contentRepo, contentMediaRepo, mediaAssetRepo, socialAccountRepo, requestRepo, auditRepo, *r2Service)
	requestService := service.NewRequestService(requestRepo, auditRepo)
	schedulerService := service.NewSchedulerService(scheduledPostRepo, socialAccountRepo)
	accountService := service.NewAccountService(*cfg, socialAccountRepo)
	publisherService := service.NewPublisherService(*cfg, socialAccountRepo)
	clientService := service.NewClientService(db, clientRepo, userRepo, walletRepo)
	billingService := service.NewBillingService(db, walletRepo, invoiceRepo)
	supportService := service.NewSupportService(db, supportRepo)
	giveawayService := service.NewGiveawayService(giveawayRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService, userService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Post("/logout", auth.Logout)

	account := handlers.NewAccountHandler(*cfg, accountService)
	app.Get("/auth/:platform", account.AddSocialAccount)
	app.Get("/auth/:platform/callback", account.CallbackHandler)

	clients := handlers.NewClientHandler(clientService)
	app.Post("/access-requests", clients.RequestAccess)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())
	admin := api.Group("", authMiddleware.RequireAdmin())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Get("/agents", user.ListAgents)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	content := handlers.NewContentHandler(contentService)
	api.Post("/content/create", content.CreateContent)
	api.Post("/content/:id/update", content.UpdateContent)
	api.Post("/content/:id/submit", content.SubmitContent)
	api.Post("/content/:id/approve", content.ApproveContent)
	api.Post("/content/:id/reject", content.RejectContent)
	api.Post("/content/:id/mark-posted", content.MarkPosted)
	api.Get("/content", content.ListContent)
	api.Post("/content/remove", content.RemoveContent)

	requests := handlers.NewRequestHandler(requestService)
	api.Post("/clients/:client/requests", requests.CreateRequest)
	api.Get("/requests", requests.ListRequests)
	api.Post("/requests/:id/start-progress", requests.StartProgress)
	api.Post("/requests/:id/mark-completed", requests.CompleteRequest)
	api.Post("/requests/:id/reject", requests.RejectRequest)

	scheduler := handlers.NewSchedulerHandler(schedulerService, client)
	api.Post("/scheduler/create", scheduler.CreatePost)
	api.Get("/scheduler", scheduler.ListPosts)
	api.Post("/scheduler/:id/approve", scheduler.ApprovePost)
	api.Post("/scheduler/:id/publish", scheduler.PublishPost)
	api.Post("/scheduler/:id/cancel", scheduler.CancelPost)

	api.Get("/social-accounts", account.ListSocialAccounts)
	api.Get("/social-accounts/select", account.SelectSocialAccounts)
	api.Post("/social-accounts/remove", account.DeleteSocialAccount)

	api.Get("/clients", clients.ListClients)
	admin.Post("/clients/:id/assign-agent", clients.AssignAgent)
	admin.Get("/access-requests", clients.ListAccessRequests)
	admin.Post("/access-requests/:id/approve", clients.ApproveAccess)
	admin.Post("/access-requests/:id/deny", clients.DenyAccess)

	billing := handlers.NewBillingHandler(billingService)
	api.Get("/billing/wallet", billing.GetWallet)
	api.Post("/billing/:client/topup", billing.TopUpWallet)
	api.Get("/billing/transactions", billing.ListTransactions)
	api.Get("/billing/invoices", billing.ListInvoices)
	api.Post("/billing/:client/invoices/:id/pay", billing.PayInvoice)

	support := handlers.NewSupportHandler(supportService)
	api.Post("/support/:client/tickets", support.CreateTicket)
	api.Get("/support/tickets", support.ListTickets)
	api.Post("/support/tickets/:id/status", support.SetTicketStatus)
	api.Post("/support/tickets/:id/messages", support.AddMessage)
	api.Get("/support/tickets/:id/messages", support.ListMessages)

	giveaways := handlers.NewGiveawayHandler(giveawayService)
	api.Get("/giveaways", giveaways.ListGiveaways)
	api.Get("/giveaways/wins", giveaways.ListWins)

	// cron jobs
	refreshTokenJob := job.NewTokenRefreshJob(socialAccountRepo, publisherService)
	overdueSweepJob := job.NewOverdueSweepJob(scheduledPostRepo)

	// queue
	queueW := queue.NewQueue(scheduledPostRepo, socialAccountRepo, auditRepo, publisherService)

	c := cron.New()
	c.AddFunc(cfg.TokenRefreshSpec, refreshTokenJob.RefreshTokens)
	c.AddFunc(cfg.OverdueSweepSpec, overdueSweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: cfg.QueueConcurrency,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
