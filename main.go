package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"maison/internal/handlers"
	"maison/internal/middleware"
	"maison/internal/models"
	"maison/internal/repositories"
	"maison/internal/services"
	"maison/pkg/facebook"
	"maison/pkg/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "") // empty -> sqlite file
	viper.SetDefault("SQLITE_PATH", "maison.db")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")
	viper.AutomaticEnv()

	// --- Database ---
	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Brand{},
		&models.StoreLocation{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.SiteSetting{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	brandRepo := repositories.NewGORMBrandRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	wishlistRepo := repositories.NewGORMWishlistRepository(db)
	settingRepo := repositories.NewGORMSettingRepository(db)

	if err := ensureSuperAdmin(userRepo); err != nil {
		log.Fatalf("Failed to bootstrap super admin: %v", err)
	}

	// --- Outbound integrations ---
	notifier := buildNotifier()
	uploader, err := buildUploader()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, notifier)
	orderService := services.NewOrderService(orderRepo, notifier)
	catalogService := services.NewCatalogService(categoryRepo, brandRepo, storeRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	settingsService := services.NewSettingsService(settingRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	uploadHandler := handlers.NewUploadHandler(uploader)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	// Explicit allow-list; a wildcard origin is a hardening bug.
	app.Use(cors.New(cors.Config{
		AllowOrigins: viper.GetString("CORS_ORIGINS"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Static("/static", viper.GetString("UPLOAD_DIR"))

	auth := middleware.AuthRequired(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	adminOnly := middleware.AdminOnly()
	superOnly := middleware.SuperAdminOnly()

	authHandler.RegisterRoutes(app, auth)
	userHandler.RegisterRoutes(app, auth, superOnly)
	productHandler.RegisterRoutes(app, auth, adminOnly)
	catalogHandler.RegisterRoutes(app, auth, adminOnly)
	orderHandler.RegisterRoutes(app, optionalAuth, auth)
	wishlistHandler.RegisterRoutes(app, auth)
	settingsHandler.RegisterRoutes(app, auth, superOnly)
	uploadHandler.RegisterRoutes(app, auth, adminOnly)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "POS & Admin API is running"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase connects to Postgres when DATABASE_DSN is set and
// falls back to a local sqlite file otherwise.
func openDatabase() (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), cfg)
	}
	return gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), cfg)
}

// ensureSuperAdmin creates or repairs the bootstrap super admin
// account when SUPER_ADMIN_USERNAME is configured.
func ensureSuperAdmin(userRepo repositories.UserRepository) error {
	username := viper.GetString("SUPER_ADMIN_USERNAME")
	if username == "" {
		return nil
	}

	user, err := userRepo.GetByUsername(username)
	if err == nil {
		if user.IsAdmin && user.IsSuperAdmin {
			return nil
		}
		user.IsAdmin = true
		user.IsSuperAdmin = true
		log.Printf("Promoting %s to super admin", username)
		return userRepo.Update(user)
	}

	password := viper.GetString("SUPER_ADMIN_PASSWORD")
	if password == "" {
		log.Printf("SUPER_ADMIN_PASSWORD not set, skipping super admin bootstrap")
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	log.Printf("Creating super admin %s", username)
	return userRepo.Create(&models.User{
		Username:       username,
		Email:          viper.GetString("SUPER_ADMIN_EMAIL"),
		HashedPassword: string(hashed),
		IsActive:       true,
		IsAdmin:        true,
		IsSuperAdmin:   true,
	})
}

// buildNotifier returns the Facebook client when any marketing
// credential is configured, and a no-op otherwise.
func buildNotifier() services.Notifier {
	cfg := facebook.Config{
		PixelID:     viper.GetString("FACEBOOK_PIXEL_ID"),
		PageID:      viper.GetString("FACEBOOK_PAGE_ID"),
		AccessToken: viper.GetString("FACEBOOK_ACCESS_TOKEN"),
	}
	if cfg.AccessToken == "" || (cfg.PixelID == "" && cfg.PageID == "") {
		log.Println("Marketing integrations disabled (no credentials)")
		return services.NoopNotifier{}
	}
	return facebook.NewClient(cfg)
}

// buildUploader picks Cloudinary when configured, local disk otherwise.
func buildUploader() (storage.Uploader, error) {
	if cloudinaryURL := viper.GetString("CLOUDINARY_URL"); cloudinaryURL != "" {
		log.Println("Using Cloudinary storage backend")
		return storage.NewCloudinaryStorage(cloudinaryURL, "maison")
	}
	return storage.NewLocalStorage(
		viper.GetString("UPLOAD_DIR"),
		viper.GetString("PUBLIC_BASE_URL"),
	)
}
