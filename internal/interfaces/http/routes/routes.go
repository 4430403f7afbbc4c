// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/artstore-backend/internal/config"
	"github.com/your-org/artstore-backend/internal/interfaces/http/handlers"
	"github.com/your-org/artstore-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	setupAuthRoutes(rg, db, cfg)
	setupUserRoutes(rg, db, cfg)
	setupProductRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
	setupOrderRoutes(rg, db, cfg, log)
	setupWebhookRoutes(rg, db, cfg, log)
	setupAdminRoutes(rg, db, cfg, log)
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
	}
}

func setupUserRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	profileHandler := handlers.NewUserProfileHandler(db, cfg)
	addressHandler := handlers.NewUserAddressHandler(db, cfg)

	users := rg.Group("/users")
	users.Use(middleware.AuthMiddleware(cfg))
	{
		users.GET("/profile", profileHandler.GetProfile)
		users.PUT("/profile", profileHandler.UpdateProfile)
		users.PUT("/password", profileHandler.ChangePassword)

		users.GET("/addresses", addressHandler.ListAddresses)
		users.POST("/addresses", addressHandler.CreateAddress)
		users.PUT("/addresses/:id", addressHandler.UpdateAddress)
		users.DELETE("/addresses/:id", addressHandler.DeleteAddress)
	}
}

func setupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/latest", productHandler.GetLatest)
		products.GET("/featured", productHandler.GetFeatured)
		products.GET("/filters", productHandler.GetFilters)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.ListReviews)

		// Submitting a review requires a signed-in user
		authed := products.Group("")
		authed.Use(middleware.AuthMiddleware(cfg))
		{
			authed.POST("/:id/reviews", reviewHandler.SubmitReview)
		}
	}
}

func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	// Cart routes work for guests (session cookie) and signed-in users
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
	}

	// Merging requires the user side of the merge
	merge := rg.Group("/cart/merge")
	merge.Use(middleware.AuthMiddleware(cfg))
	{
		merge.POST("", cartHandler.MergeGuestCart)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(db, cfg)
	invoiceHandler := handlers.NewInvoiceHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, cfg, log)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
		orders.POST("/:id/paypal-capture", paymentHandler.CapturePayPal)
	}
}

func setupWebhookRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	paymentHandler := handlers.NewPaymentHandler(db, cfg, log)

	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/stripe", paymentHandler.StripeWebhook)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, log *logrus.Logger) {
	productHandler := handlers.NewProductHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, cfg, log)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)
	uploadHandler := handlers.NewUploadHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		products := admin.Group("/products")
		{
			products.POST("", productHandler.AdminCreateProduct)
			products.PUT("/:id", productHandler.AdminUpdateProduct)
			products.DELETE("/:id", productHandler.AdminDeleteProduct)
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.AdminListOrders)
			orders.PUT("/:id/deliver", orderHandler.AdminMarkDelivered)
			orders.PUT("/:id/pay", paymentHandler.AdminMarkPaid)
		}

		// User management
		users := admin.Group("/users")
		{
			users.GET("", userAdminHandler.ListUsers)
			users.PUT("/:id/role", userAdminHandler.SetRole)
			users.PUT("/:id/status", userAdminHandler.SetStatus)
		}

		// Uploaded image records
		uploads := admin.Group("/uploads")
		{
			uploads.POST("", uploadHandler.RecordUpload)
			uploads.GET("", uploadHandler.ListUploads)
			uploads.DELETE("/:id", uploadHandler.DeleteUpload)
		}
	}
}
