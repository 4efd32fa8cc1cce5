package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"

	"bakeshop/internal/cart"
	"bakeshop/internal/handlers"
	"bakeshop/internal/middleware"
	"bakeshop/internal/models"
	"bakeshop/internal/remote"
	"bakeshop/internal/session"
	"bakeshop/internal/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080")
	viper.SetDefault("STORE_PATH", "bakeshop.db")
	viper.SetDefault("HTTP_TIMEOUT_SECONDS", 0) // 0 = no timeout
	viper.SetDefault("REMOTE_MODE", "http")     // "http" or "mock"
	viper.SetDefault("ADMIN_PIN", "letmebake")  // only used by the mock remote
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	remoteMode := viper.GetString("REMOTE_MODE")

	// --- Credential storage ---
	var tokens storage.TokenStore
	if remoteMode == "mock" {
		tokens = storage.NewMemoryTokenStore()
	} else {
		store, err := storage.Open(viper.GetString("STORE_PATH"))
		if err != nil {
			log.Fatalf("Failed to open local store: %v", err)
		}
		tokens = store
	}

	// --- Remote API clients ---
	var (
		authAPI    remote.AuthAPI
		cartAPI    remote.CartAPI
		productAPI remote.ProductAPI
		orderAPI   remote.OrderAPI
		addressAPI remote.AddressAPI
	)
	if remoteMode == "mock" {
		log.Println("Running against the in-memory mock remote API")
		mockProducts := NewSeededCatalog()
		mockCart := remote.NewMockCartAPI(mockProducts)
		mockAddresses := remote.NewMockAddressAPI()
		authAPI = remote.NewMockAuthAPI(tokens, viper.GetString("ADMIN_PIN"))
		cartAPI = mockCart
		productAPI = mockProducts
		orderAPI = remote.NewMockOrderAPI(mockCart, mockAddresses)
		addressAPI = mockAddresses
	} else {
		timeout := time.Duration(viper.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second
		client := remote.NewClient(viper.GetString("API_BASE_URL"), timeout, tokens)
		authAPI = remote.NewHTTPAuthAPI(client)
		cartAPI = remote.NewHTTPCartAPI(client)
		productAPI = remote.NewHTTPProductAPI(client)
		orderAPI = remote.NewHTTPOrderAPI(client)
		addressAPI = remote.NewHTTPAddressAPI(client)
	}

	// --- State providers ---
	sess := session.New(authAPI, tokens, func() {
		// The middleware now answers 401 until the shopper signs in again.
		log.Println("Stored credential rejected, sign-in required")
	})
	cartProvider := cart.New(cartAPI, sess)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go cartProvider.Run(ctx)

	// Resolve the identity; this also triggers the first cart fetch.
	sess.Initialize(ctx)

	// --- Local storefront app ---
	app := fiber.New()
	app.Use(logger.New())

	requireUser := middleware.RequireUser(sess)
	requireAdmin := middleware.RequireAdmin(sess)

	api := app.Group("/api")
	handlers.NewAuthHandler(authAPI, tokens, sess).RegisterRoutes(api, requireUser)
	handlers.NewProductHandler(productAPI).RegisterRoutes(api, requireUser, requireAdmin)
	handlers.NewCartHandler(cartProvider).RegisterRoutes(api)
	handlers.NewOrderHandler(orderAPI, cartProvider).RegisterRoutes(api, requireUser, requireAdmin)
	handlers.NewAddressHandler(addressAPI).RegisterRoutes(api, requireUser)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"ready":  sess.Ready(),
		})
	})

	// --- Start and shut down gracefully ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Storefront listening on %s", appPort)
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down...")
	stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Storefront stopped")
}

// NewSeededCatalog builds the mock catalog with a few bakery staples so the
// storefront is browsable out of the box.
func NewSeededCatalog() *remote.MockProductAPI {
	catalog := remote.NewMockProductAPI()
	products := []models.Product{
		{Name: "Sourdough Loaf", Description: "Slow-fermented country loaf", Price: 6.50, Category: "bread", Stock: 12},
		{Name: "Chocolate Fudge Cake", Description: "Three layers, dark ganache", Price: 24.00, Category: "cakes", Stock: 4},
		{Name: "Vanilla Cupcake", Description: "Madagascan vanilla buttercream", Price: 3.25, Category: "cupcakes", Stock: 30},
		{Name: "Lemon Tart", Description: "Sharp curd, torched meringue", Price: 4.75, Category: "tarts", Stock: 8},
	}
	for i := range products {
		if _, err := catalog.Create(context.Background(), &products[i]); err != nil {
			log.Printf("Error seeding product %s: %v", products[i].Name, err)
		}
	}
	return catalog
}
