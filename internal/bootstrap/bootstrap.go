package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sesa/portal/docs" // Import generated swagger docs
	appAuth "github.com/sesa/portal/internal/app/auth"
	appControllers "github.com/sesa/portal/internal/app/controllers"
	appMigrations "github.com/sesa/portal/internal/app/migrations"
	appRepos "github.com/sesa/portal/internal/app/repositories"
	appRoutes "github.com/sesa/portal/internal/app/routes"
	appServices "github.com/sesa/portal/internal/app/services"
	"github.com/sesa/portal/internal/config"
	"github.com/sesa/portal/internal/db"
	appMiddleware "github.com/sesa/portal/internal/middleware"
	pkgAuth "github.com/sesa/portal/internal/pkg/auth"
	"github.com/sesa/portal/internal/pkg/cache"
	"github.com/sesa/portal/internal/pkg/filestorage"
	"github.com/sesa/portal/internal/pkg/helpers"
	"github.com/sesa/portal/internal/pkg/logger"
	"github.com/sesa/portal/internal/pkg/websocket"
	"github.com/sesa/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	DepartmentService  *appServices.DepartmentService
	ResourceService    *appServices.ResourceService
	ArticleService     *appServices.ArticleService
	InteractionService *appServices.InteractionService
	ProfileService     *appServices.ProfileService
	AdminService       *appServices.AdminService
	ChatService        *appServices.ChatService

	AuthController        *appControllers.AuthController
	DepartmentController  *appControllers.DepartmentController
	ResourceController    *appControllers.ResourceController
	ArticleController     *appControllers.ArticleController
	InteractionController *appControllers.InteractionController
	ProfileController     *appControllers.ProfileController
	AdminController       *appControllers.AdminController
	ChatController        *appControllers.ChatController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Authorizer     *appAuth.Authorizer
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	Counters       *cache.CounterCache
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, lgr); err != nil {
		// Seeding problems shouldn't block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage served statically under /uploads
	var err error
	baseURL := "http://localhost:" + cfg.Server.Port
	fileStorageBaseURL := baseURL + "/uploads"
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, fileStorageBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	// Counter cache is optional; without Redis the services fall back
	// to counting queries
	if cfg.Redis.Enabled {
		counterTTL := helpers.ParseDuration(cfg.Redis.CounterTTL, 15*time.Minute)
		deps.Counters, err = cache.NewCounterCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, counterTTL)
		if err != nil {
			lgr.Warn().Err(err).Msg("Redis unavailable, continuing without counter cache")
			deps.Counters = nil
		}
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Authorizer = appAuth.NewAuthorizer(deps.Repos.RoleRepository)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.RoleRepository,
		deps.Repos.TokenRepository,
		deps.Repos.DepartmentRepository,
		deps.JWTService,
		lgr,
	)

	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.ResourceService = appServices.NewResourceService(
		deps.Repos.ResourceRepository,
		deps.Repos.InteractionRepository,
		deps.Repos.DepartmentRepository,
		deps.FileStorage,
		deps.Counters,
		lgr,
	)
	deps.ArticleService = appServices.NewArticleService(
		deps.Repos.ArticleRepository,
		deps.Repos.InteractionRepository,
		deps.Repos.DepartmentRepository,
		deps.Counters,
		lgr,
	)
	deps.InteractionService = appServices.NewInteractionService(
		deps.Repos.InteractionRepository,
		deps.Repos.ArticleRepository,
		deps.Repos.ResourceRepository,
		deps.Counters,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, deps.Repos.DepartmentRepository)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.UserRepository,
		deps.Repos.RoleRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.TokenRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.ResourceRepository,
		deps.Repos.ArticleRepository,
		cfg.Server.StoragePath,
		lgr,
	)

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.Repos.DepartmentRepository, deps.Repos.ProfileRepository, lgr)
	deps.ChatService = appServices.NewChatService(deps.Repos.ChatRepository, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Authorizer)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DepartmentController = appControllers.NewDepartmentController(deps.DepartmentService)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService)
	deps.ArticleController = appControllers.NewArticleController(deps.ArticleService)
	deps.InteractionController = appControllers.NewInteractionController(deps.InteractionService, deps.Authorizer)
	deps.ProfileController = appControllers.NewProfileController(deps.ProfileService)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService)

	return deps, nil
}

// StartBackground launches the hub and the chat persistence listener.
// Returns after the goroutines are running; they stop with ctx.
func StartBackground(ctx context.Context, deps *Dependencies) {
	go deps.Hub.Run()
	deps.ChatService.Start(ctx)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	if origins := cfg.CorsOrigins(); len(origins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           5 * time.Minute,
		}))
		lgr.Info().Strs("origins", origins).Msg("CORS enabled")
	}

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DepartmentController,
		deps.ResourceController,
		deps.ArticleController,
		deps.InteractionController,
		deps.ProfileController,
		deps.AdminController,
		deps.ChatController,
		deps.WSHandler,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
