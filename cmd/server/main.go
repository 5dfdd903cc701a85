package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/ddoongjamba/autosns-api/configs"
	"github.com/ddoongjamba/autosns-api/internal/api/handlers"
	"github.com/ddoongjamba/autosns-api/internal/api/middleware"
	"github.com/ddoongjamba/autosns-api/internal/executor"
	job "github.com/ddoongjamba/autosns-api/internal/jobs"
	"github.com/ddoongjamba/autosns-api/internal/publisher/instagramimpl"
	"github.com/ddoongjamba/autosns-api/internal/repository"
	"github.com/ddoongjamba/autosns-api/internal/scheduler"
	"github.com/ddoongjamba/autosns-api/internal/service"
	"github.com/ddoongjamba/autosns-api/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
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

	store, err := storage.New(*cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

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
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	accountRepo := repository.NewIGAccountRepository(db)
	mediaRepo := repository.NewMediaFileRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	connector := instagramimpl.New(cfg.SessionsDir, cfg.PublishDelayMin, cfg.PublishDelayMax)
	secretKey := []byte(cfg.SecretKey)

	exec := executor.New(postRepo, accountRepo, connector, secretKey)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	quotaService := service.NewQuotaService(*cfg, userRepo, postRepo)
	postService := service.NewPostService(*cfg, postRepo, accountRepo, mediaRepo, quotaService, exec)
	accountService := service.NewAccountService(*cfg, accountRepo)
	mediaService := service.NewMediaService(mediaRepo, store)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	post := handlers.NewPostHandler(postService, quotaService)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/remove", post.RemovePost)
	api.Get("/usage", post.GetUsage)

	account := handlers.NewAccountHandler(accountService)
	api.Post("/accounts/link", account.LinkAccount)
	api.Get("/accounts", account.ListAccounts)
	api.Post("/accounts/remove", account.RemoveAccount)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.UploadMedia)
	api.Get("/media", media.ListMedia)
	api.Post("/media/remove", media.RemoveMedia)

	// cron jobs
	sessionRefreshJob := job.NewSessionRefreshJob(accountRepo, connector, secretKey)

	c := cron.New()
	c.AddFunc(cfg.SessionRefreshSpec, sessionRefreshJob.RefreshSessions)
	c.Start()

	sched := scheduler.New(postRepo, exec, cfg.SchedulerInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on %s", cfg.ListenAddr)

	gracefulShutdown(app, db, c, sched)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, c *cron.Cron, sched *scheduler.Scheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	c.Stop()

	if err := sched.Stop(); err != nil {
		log.Printf("Failed to stop scheduler: %v", err)
	}

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
